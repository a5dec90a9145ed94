package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"p2p_market/internal/domain/entity"
	service "p2p_market/internal/domain/service/listing"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/errcodes"
	"p2p_market/pkg/httpx/reply"
	"p2p_market/pkg/httpx/req"
	"p2p_market/pkg/rest"
)

type listingService interface {
	Create(ctx context.Context, params service.CreateParams) (*entity.Listing, error)
	GetByID(ctx context.Context, id int64) (*entity.Listing, error)
	ListActive(ctx context.Context, listingType *value.ListingType, limit, offset int) ([]entity.Listing, error)
}

type ListingServer struct {
	listingService listingService
}

func NewListingServer(listingService listingService) ListingServer {
	return ListingServer{
		listingService: listingService,
	}
}

func (s ListingServer) postV1Listing(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateListingRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	listingType, err := value.ParseListingType(request.Type)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseListingType: %w", err),
			failure.WithCode(errcodes.InvalidListingType),
		)
	}

	listing, err := s.listingService.Create(ctx, service.CreateParams{
		UserID:        request.UserID,
		Type:          listingType,
		Amount:        request.Amount,
		Rate:          request.Rate,
		PaymentMethod: request.PaymentMethod,
		Contact:       request.Contact,
	})
	if err != nil {
		return fmt.Errorf("listingService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTListing(*listing))

	return nil
}

func (s ListingServer) getV1Listing(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		return fmt.Errorf("pathID: %w", err)
	}

	listing, err := s.listingService.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("listingService.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTListing(*listing))

	return nil
}

func (s ListingServer) getV1Listings(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, offset, err := paging(r)
	if err != nil {
		return fmt.Errorf("paging: %w", err)
	}

	var listingType *value.ListingType

	if raw := r.URL.Query().Get("type"); raw != "" {
		parsed, err := value.ParseListingType(raw)
		if err != nil {
			return failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("value.ParseListingType: %w", err),
				failure.WithCode(errcodes.InvalidListingType),
			)
		}
		listingType = &parsed
	}

	listings, err := s.listingService.ListActive(ctx, listingType, limit, offset)
	if err != nil {
		return fmt.Errorf("listingService.ListActive: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTListings(listings))

	return nil
}
