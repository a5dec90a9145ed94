package listing_test

import (
	"context"
	"testing"

	"git.appkode.ru/pub/go/failure"
	"github.com/stretchr/testify/require"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/service/listing"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/errcodes"
)

type fakeListingRepo struct {
	listings    map[int64]*entity.Listing
	nextID      int64
	activeCalls int
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[int64]*entity.Listing)}
}

func (r *fakeListingRepo) Create(_ context.Context, l *entity.Listing) error {
	r.nextID++
	l.ID = r.nextID

	stored := *l
	r.listings[l.ID] = &stored

	return nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id int64) (*entity.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, failure.NewNotFoundError(
			"Listing not found",
			failure.WithCode(errcodes.ListingNotFound),
			failure.WithDescription("Listing not found"),
		)
	}

	found := *l

	return &found, nil
}

func (r *fakeListingRepo) ListActive(
	_ context.Context,
	listingType *value.ListingType,
	_, _ int,
) ([]entity.Listing, error) {
	r.activeCalls++

	var result []entity.Listing

	for _, l := range r.listings {
		if l.Status != value.ListingStatusActive {
			continue
		}
		if listingType != nil && l.Type != *listingType {
			continue
		}
		result = append(result, *l)
	}

	return result, nil
}

type fakeUserRepo struct {
	users map[int64]*entity.User
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, failure.NewNotFoundError(
			"User not found",
			failure.WithCode(errcodes.UserNotFound),
			failure.WithDescription("User not found"),
		)
	}

	found := *u

	return &found, nil
}

func newService(listingRepo *fakeListingRepo) *listing.ListingService {
	userRepo := &fakeUserRepo{
		users: map[int64]*entity.User{
			42: {ID: 42, Name: "Abebe", Username: "abebe_k", Role: value.UserRoleSeller},
		},
	}

	return listing.NewListingService(listingRepo, userRepo)
}

func TestCreateListing(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	svc := newService(newFakeListingRepo())

	created, err := svc.Create(ctx, listing.CreateParams{
		UserID:        42,
		Type:          value.ListingTypeSell,
		Amount:        500,
		Rate:          130,
		PaymentMethod: "CBE transfer",
		Contact:       "@abebe_k",
	})
	rq.NoError(err)
	rq.NotZero(created.ID)
	rq.Equal(value.ListingStatusActive, created.Status)
	rq.Equal(int64(42), created.UserID)
}

func TestCreateListingUnknownOwner(t *testing.T) {
	rq := require.New(t)

	svc := newService(newFakeListingRepo())

	_, err := svc.Create(context.Background(), listing.CreateParams{
		UserID: 999,
		Type:   value.ListingTypeBuy,
		Amount: 100,
		Rate:   128,
	})
	rq.Error(err)
	rq.True(failure.IsNotFoundError(err))
}

func TestListActiveCaches(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	listingRepo := newFakeListingRepo()
	svc := newService(listingRepo)

	_, err := svc.Create(ctx, listing.CreateParams{
		UserID: 42,
		Type:   value.ListingTypeSell,
		Amount: 500,
		Rate:   130,
	})
	rq.NoError(err)

	first, err := svc.ListActive(ctx, nil, 100, 0)
	rq.NoError(err)
	rq.Len(first, 1)

	// Повторный запрос обслуживается из кэша.
	second, err := svc.ListActive(ctx, nil, 100, 0)
	rq.NoError(err)
	rq.Equal(first, second)
	rq.Equal(1, listingRepo.activeCalls)
}

func TestListActiveCacheFlushedOnCreate(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	listingRepo := newFakeListingRepo()
	svc := newService(listingRepo)

	listings, err := svc.ListActive(ctx, nil, 100, 0)
	rq.NoError(err)
	rq.Empty(listings)

	_, err = svc.Create(ctx, listing.CreateParams{
		UserID: 42,
		Type:   value.ListingTypeSell,
		Amount: 500,
		Rate:   130,
	})
	rq.NoError(err)

	// Новая заявка видна сразу, кэш сброшен при создании.
	listings, err = svc.ListActive(ctx, nil, 100, 0)
	rq.NoError(err)
	rq.Len(listings, 1)
}

func TestListActiveTypeFilter(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	listingRepo := newFakeListingRepo()
	svc := newService(listingRepo)

	for _, typ := range []value.ListingType{value.ListingTypeSell, value.ListingTypeBuy} {
		_, err := svc.Create(ctx, listing.CreateParams{
			UserID: 42,
			Type:   typ,
			Amount: 100,
			Rate:   130,
		})
		rq.NoError(err)
	}

	sell := value.ListingTypeSell

	listings, err := svc.ListActive(ctx, &sell, 100, 0)
	rq.NoError(err)
	rq.Len(listings, 1)
	rq.Equal(value.ListingTypeSell, listings[0].Type)
}
