package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/errcodes"
)

type ListingRepository struct {
	db *sqlx.DB
}

func NewListingRepository(db *sqlx.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

// Create сохраняет новую заявку.
func (r *ListingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	query := `
		INSERT INTO listings (user_id, type, amount, rate, payment_method, contact, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		listing.UserID,
		listing.Type.String(),
		listing.Amount,
		listing.Rate,
		listing.PaymentMethod,
		listing.Contact,
		listing.Status.String(),
	).Scan(&listing.ID, &listing.CreatedAt, &listing.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert listing: %w", err)
	}

	return nil
}

// GetByID возвращает заявку по идентификатору.
func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*entity.Listing, error) {
	query := `
		SELECT id, user_id, type, amount, rate, payment_method, contact, status, created_at, updated_at
		FROM listings
		WHERE id = $1`

	var schema listingSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(errcodes.ListingNotFound, "Listing not found")
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}

	return schema.toDomain()
}

// ListActive возвращает активные заявки, опционально фильтруя по направлению.
func (r *ListingRepository) ListActive(
	ctx context.Context,
	listingType *value.ListingType,
	limit, offset int,
) ([]entity.Listing, error) {
	query := `
		SELECT id, user_id, type, amount, rate, payment_method, contact, status, created_at, updated_at
		FROM listings
		WHERE status = $1`
	args := []any{value.ListingStatusActive.String()}

	if listingType != nil {
		query += ` AND type = $2`
		args = append(args, listingType.String())
	}

	query += fmt.Sprintf(` ORDER BY id LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var schemas []listingSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}

	listings := make([]entity.Listing, 0, len(schemas))
	for i := range schemas {
		listing, err := schemas[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("convert listing: %w", err)
		}
		listings = append(listings, *listing)
	}

	return listings, nil
}
