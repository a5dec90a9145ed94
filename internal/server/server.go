package server

// Сервер объединяет специфичные HTTP сервера, отвечающие за обработку
// конкретных сущностей.
type Server struct {
	UserServer
	ListingServer
	DealServer
}

func NewServer(
	userServer UserServer,
	listingServer ListingServer,
	dealServer DealServer,
) Server {
	return Server{
		UserServer:    userServer,
		ListingServer: listingServer,
		DealServer:    dealServer,
	}
}
