package entity

import (
	"time"

	"p2p_market/internal/domain/value"
)

// Deal — одна принятая сделка между покупателем и владельцем заявки.
// Финансовые показатели (ETBAmount, CommissionAmount) фиксируются в момент
// создания и не пересчитываются при изменении курса заявки.
type Deal struct {
	ID        int64 `json:"id" db:"id"`
	ListingID int64 `json:"listing_id" db:"listing_id"`
	BuyerID   int64 `json:"buyer_id" db:"buyer_id"`
	// SellerID копируется из заявки при создании, чтобы пережить
	// последующие изменения заявки.
	SellerID int64 `json:"seller_id" db:"seller_id"`

	USDTAmount       float64 `json:"usdt_amount" db:"usdt_amount"`
	ETBAmount        float64 `json:"etb_amount" db:"etb_amount"`
	CommissionAmount float64 `json:"commission_amount" db:"commission_amount"`

	TradeCode    value.TradeCode  `json:"trade_code" db:"trade_code"`
	EscrowWallet string           `json:"escrow_wallet" db:"escrow_wallet"`
	Status       value.DealStatus `json:"status" db:"status"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NetAmount — сумма к выдаче покупателю после вычета комиссии.
func (d Deal) NetAmount() float64 {
	return d.USDTAmount - d.CommissionAmount
}

// DealEvent — событие перехода сделки для нотификаций.
type DealEvent struct {
	Deal   Deal
	Action string
}
