package listing

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
)

const browseCacheTTL = 30 * time.Second

type ListingRepository interface {
	Create(ctx context.Context, listing *entity.Listing) error
	GetByID(ctx context.Context, id int64) (*entity.Listing, error)
	ListActive(ctx context.Context, listingType *value.ListingType, limit, offset int) ([]entity.Listing, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

type ListingService struct {
	listingRepo ListingRepository
	userRepo    UserRepository
	browseCache *cache.Cache
}

func NewListingService(listingRepo ListingRepository, userRepo UserRepository) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		userRepo:    userRepo,
		browseCache: cache.New(browseCacheTTL, 2*browseCacheTTL),
	}
}

type CreateParams struct {
	UserID        int64
	Type          value.ListingType
	Amount        float64
	Rate          float64
	PaymentMethod string
	Contact       string
}

// Create публикует заявку. Владелец должен существовать.
func (s *ListingService) Create(ctx context.Context, params CreateParams) (*entity.Listing, error) {
	// Владелец проверяется через GetByID: NotFound прокидывается наверх.
	if _, err := s.userRepo.GetByID(ctx, params.UserID); err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	listing := &entity.Listing{
		UserID:        params.UserID,
		Type:          params.Type,
		Amount:        params.Amount,
		Rate:          params.Rate,
		PaymentMethod: params.PaymentMethod,
		Contact:       params.Contact,
		Status:        value.ListingStatusActive,
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		return nil, fmt.Errorf("listingRepo.Create: %w", err)
	}

	// Витрина закэширована, свежая заявка должна появиться сразу.
	s.browseCache.Flush()

	return listing, nil
}

func (s *ListingService) GetByID(ctx context.Context, id int64) (*entity.Listing, error) {
	listing, err := s.listingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("listingRepo.GetByID: %w", err)
	}

	return listing, nil
}

// ListActive — витрина активных заявок с коротким кэшем поверх запроса.
func (s *ListingService) ListActive(
	ctx context.Context,
	listingType *value.ListingType,
	limit, offset int,
) ([]entity.Listing, error) {
	key := browseCacheKey(listingType, limit, offset)

	if cached, found := s.browseCache.Get(key); found {
		return cached.([]entity.Listing), nil
	}

	listings, err := s.listingRepo.ListActive(ctx, listingType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listingRepo.ListActive: %w", err)
	}

	s.browseCache.Set(key, listings, cache.DefaultExpiration)

	return listings, nil
}

func browseCacheKey(listingType *value.ListingType, limit, offset int) string {
	typ := "any"
	if listingType != nil {
		typ = listingType.String()
	}

	return fmt.Sprintf("active:%s:%d:%d", typ, limit, offset)
}
