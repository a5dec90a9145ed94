package value

import "fmt"

// DealStatus — состояние сделки. Переходы однонаправленные:
// pending -> paid -> released, отдельная терминальная ветка pending -> cancelled.
type DealStatus string

const (
	DealStatusPending   DealStatus = "pending"
	DealStatusPaid      DealStatus = "paid"
	DealStatusReleased  DealStatus = "released"
	DealStatusCancelled DealStatus = "cancelled"
)

func (s DealStatus) String() string {
	return string(s)
}

func ParseDealStatus(s string) (DealStatus, error) {
	switch DealStatus(s) {
	case DealStatusPending, DealStatusPaid, DealStatusReleased, DealStatusCancelled:
		return DealStatus(s), nil
	default:
		return "", fmt.Errorf("unknown deal status %q", s)
	}
}
