package entity

import (
	"time"

	"p2p_market/internal/domain/value"
)

// Listing — заявка на покупку или продажу фиксированного объёма USDT
// по фиксированному курсу ETB.
type Listing struct {
	ID            int64               `json:"id" db:"id"`
	UserID        int64               `json:"user_id" db:"user_id"`
	Type          value.ListingType   `json:"type" db:"type"`
	Amount        float64             `json:"amount" db:"amount"`
	Rate          float64             `json:"rate" db:"rate"` // ETB за 1 USDT
	PaymentMethod string              `json:"payment_method" db:"payment_method"`
	Contact       string              `json:"contact" db:"contact"`
	Status        value.ListingStatus `json:"status" db:"status"`
	CreatedAt     time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" db:"updated_at"`
}
