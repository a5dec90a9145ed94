// Данный файл должен быть сгенерирован из openapi спецификации и называться types.gen.go
package rest

import "time"

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Username string `json:"username" validate:"required,min=5,max=32"`
	Role     string `json:"role" validate:"required,oneof=buyer seller both"`
}

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
}

type CreateListingRequest struct {
	UserID        int64   `json:"userId" validate:"required"`
	Type          string  `json:"type" validate:"required,oneof=buy sell"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Rate          float64 `json:"rate" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,min=1,max=100"`
	Contact       string  `json:"contact" validate:"required,min=1,max=200"`
}

type Listing struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	Type          string    `json:"type"`
	Amount        float64   `json:"amount"`
	Rate          float64   `json:"rate"`
	PaymentMethod string    `json:"paymentMethod"`
	Contact       string    `json:"contact"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type CreateDealRequest struct {
	ListingID  int64   `json:"listingId" validate:"required"`
	BuyerID    int64   `json:"buyerId" validate:"required"`
	USDTAmount float64 `json:"usdtAmount" validate:"required,gt=0"`
}

type Deal struct {
	ID               int64     `json:"id"`
	ListingID        int64     `json:"listingId"`
	BuyerID          int64     `json:"buyerId"`
	SellerID         int64     `json:"sellerId"`
	USDTAmount       float64   `json:"usdtAmount"`
	ETBAmount        float64   `json:"etbAmount"`
	CommissionAmount float64   `json:"commissionAmount"`
	TradeCode        string    `json:"tradeCode"`
	EscrowWallet     string    `json:"escrowWallet"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

type ConfirmPaymentRequest struct {
	TradeCode string `json:"tradeCode" validate:"required"`
}

type ConfirmPaymentResponse struct {
	Message   string `json:"message"`
	TradeCode string `json:"tradeCode"`
}

type ReleaseFundsRequest struct {
	TradeCode string `json:"tradeCode" validate:"required"`
	Secret    string `json:"secret" validate:"required"`
}

type ReleaseFundsResponse struct {
	Message        string  `json:"message"`
	TradeCode      string  `json:"tradeCode"`
	AmountReleased float64 `json:"amountReleased"`
	Commission     float64 `json:"commission"`
}

type LogEntry struct {
	ID        int64     `json:"id"`
	DealID    int64     `json:"dealId"`
	Action    string    `json:"action"`
	Notes     string    `json:"notes"`
	Timestamp time.Time `json:"timestamp"`
}

type ServiceInfo struct {
	Name              string  `json:"name"`
	Version           string  `json:"version"`
	EscrowWallet      string  `json:"escrowWallet"`
	CommissionPercent float64 `json:"commissionPercent"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`
}

// ErrorCode Код ошибки
type ErrorCode string
