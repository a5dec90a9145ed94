package persistence

import (
	"time"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
)

// userSchema — внутренняя структура для маппинга строки БД.
type userSchema struct {
	ID        int64     `db:"id"`
	Name      string    `db:"name"`
	Username  string    `db:"username"`
	Role      string    `db:"role"`
	Verified  bool      `db:"verified"`
	CreatedAt time.Time `db:"created_at"`
}

func (s *userSchema) toDomain() (*entity.User, error) {
	role, err := value.ParseUserRole(s.Role)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		ID:        s.ID,
		Name:      s.Name,
		Username:  value.Username(s.Username),
		Role:      role,
		Verified:  s.Verified,
		CreatedAt: s.CreatedAt,
	}, nil
}

type listingSchema struct {
	ID            int64     `db:"id"`
	UserID        int64     `db:"user_id"`
	Type          string    `db:"type"`
	Amount        float64   `db:"amount"`
	Rate          float64   `db:"rate"`
	PaymentMethod string    `db:"payment_method"`
	Contact       string    `db:"contact"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (s *listingSchema) toDomain() (*entity.Listing, error) {
	typ, err := value.ParseListingType(s.Type)
	if err != nil {
		return nil, err
	}

	status, err := value.ParseListingStatus(s.Status)
	if err != nil {
		return nil, err
	}

	return &entity.Listing{
		ID:            s.ID,
		UserID:        s.UserID,
		Type:          typ,
		Amount:        s.Amount,
		Rate:          s.Rate,
		PaymentMethod: s.PaymentMethod,
		Contact:       s.Contact,
		Status:        status,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}, nil
}

type dealSchema struct {
	ID               int64     `db:"id"`
	ListingID        int64     `db:"listing_id"`
	BuyerID          int64     `db:"buyer_id"`
	SellerID         int64     `db:"seller_id"`
	USDTAmount       float64   `db:"usdt_amount"`
	ETBAmount        float64   `db:"etb_amount"`
	CommissionAmount float64   `db:"commission_amount"`
	TradeCode        string    `db:"trade_code"`
	EscrowWallet     string    `db:"escrow_wallet"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

func (s *dealSchema) toDomain() (*entity.Deal, error) {
	status, err := value.ParseDealStatus(s.Status)
	if err != nil {
		return nil, err
	}

	return &entity.Deal{
		ID:               s.ID,
		ListingID:        s.ListingID,
		BuyerID:          s.BuyerID,
		SellerID:         s.SellerID,
		USDTAmount:       s.USDTAmount,
		ETBAmount:        s.ETBAmount,
		CommissionAmount: s.CommissionAmount,
		TradeCode:        value.TradeCode(s.TradeCode),
		EscrowWallet:     s.EscrowWallet,
		Status:           status,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}, nil
}

type logSchema struct {
	ID        int64     `db:"id"`
	DealID    int64     `db:"deal_id"`
	Action    string    `db:"action"`
	Notes     string    `db:"notes"`
	Timestamp time.Time `db:"timestamp"`
}

func (s *logSchema) toDomain() entity.LogEntry {
	return entity.LogEntry{
		ID:        s.ID,
		DealID:    s.DealID,
		Action:    s.Action,
		Notes:     s.Notes,
		Timestamp: s.Timestamp,
	}
}
