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

const dealColumns = `id, listing_id, buyer_id, seller_id, usdt_amount, etb_amount,
		commission_amount, trade_code, escrow_wallet, status, created_at, updated_at`

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// Create сохраняет сделку и первую запись журнала в одной транзакции:
// читатель никогда не увидит сделку без записи о создании.
// Конфликт по trade_code возвращается с кодом TradeCodeTaken — вызывающая
// сторона перегенерирует код и повторяет вставку.
func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal, log entity.LogEntry) error {
	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO deals (listing_id, buyer_id, seller_id, usdt_amount, etb_amount,
				commission_amount, trade_code, escrow_wallet, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id, created_at, updated_at`

		err := tx.QueryRowxContext(ctx, query,
			deal.ListingID,
			deal.BuyerID,
			deal.SellerID,
			deal.USDTAmount,
			deal.ETBAmount,
			deal.CommissionAmount,
			deal.TradeCode.String(),
			deal.EscrowWallet,
			deal.Status.String(),
		).Scan(&deal.ID, &deal.CreatedAt, &deal.UpdatedAt)
		if err != nil {
			if isUniqueViolation(err, "deals_trade_code_key") {
				return conflict(errcodes.TradeCodeTaken, "Trade code already in use")
			}
			return fmt.Errorf("insert deal: %w", err)
		}

		log.DealID = deal.ID

		return appendLogTx(ctx, tx, log)
	})
}

// GetByTradeCode возвращает сделку по коду.
func (r *DealRepository) GetByTradeCode(ctx context.Context, code value.TradeCode) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE trade_code = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, code.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(errcodes.DealNotFound, "Deal not found")
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}

	return schema.toDomain()
}

// List возвращает сделки постранично.
func (r *DealRepository) List(ctx context.Context, limit, offset int) ([]entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals ORDER BY id LIMIT $1 OFFSET $2`

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	return r.toDomainList(schemas)
}

// ListByStatuses возвращает сделки в любом из перечисленных статусов.
func (r *DealRepository) ListByStatuses(
	ctx context.Context,
	statuses []value.DealStatus,
	limit, offset int,
) ([]entity.Deal, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	raw := make([]string, 0, len(statuses))
	for _, s := range statuses {
		raw = append(raw, s.String())
	}

	query, args, err := sqlx.In(
		`SELECT `+dealColumns+` FROM deals WHERE status IN (?) ORDER BY id LIMIT ? OFFSET ?`,
		raw, limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list deals by status: %w", err)
	}

	return r.toDomainList(schemas)
}

// TransitionStatus атомарно переводит сделку из статуса from в to:
// условный UPDATE вместо read-then-write, так что из двух конкурентных
// вызовов пройдёт ровно один. Запись журнала добавляется в той же
// транзакции.
func (r *DealRepository) TransitionStatus(
	ctx context.Context,
	code value.TradeCode,
	from, to value.DealStatus,
	logFor func(*entity.Deal) entity.LogEntry,
) (*entity.Deal, error) {
	var deal *entity.Deal

	err := withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		query := `
			UPDATE deals
			SET status = $1, updated_at = now()
			WHERE trade_code = $2 AND status = $3
			RETURNING ` + dealColumns

		var schema dealSchema
		err := tx.GetContext(ctx, &schema, query, to.String(), code.String(), from.String())
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return r.transitionFailureTx(ctx, tx, code, from)
			}
			return fmt.Errorf("transition deal: %w", err)
		}

		deal, err = schema.toDomain()
		if err != nil {
			return fmt.Errorf("convert deal: %w", err)
		}

		return appendLogTx(ctx, tx, logFor(deal))
	})
	if err != nil {
		return nil, err
	}

	return deal, nil
}

// transitionFailureTx различает отсутствующую сделку и сделку в
// неподходящем статусе.
func (r *DealRepository) transitionFailureTx(
	ctx context.Context,
	tx *sqlx.Tx,
	code value.TradeCode,
	from value.DealStatus,
) error {
	var exists bool

	query := `SELECT EXISTS(SELECT 1 FROM deals WHERE trade_code = $1)`
	if err := tx.GetContext(ctx, &exists, query, code.String()); err != nil {
		return fmt.Errorf("check deal existence: %w", err)
	}

	if !exists {
		return notFound(errcodes.DealNotFound, "Deal not found")
	}

	return conflict(errcodes.InvalidDealStatus, fmt.Sprintf("Deal is not in %s status", from))
}

func (r *DealRepository) toDomainList(schemas []dealSchema) ([]entity.Deal, error) {
	deals := make([]entity.Deal, 0, len(schemas))
	for i := range schemas {
		deal, err := schemas[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("convert deal: %w", err)
		}
		deals = append(deals, *deal)
	}

	return deals, nil
}
