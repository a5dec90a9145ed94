package value

import "fmt"

// ListingType — направление заявки: покупка или продажа USDT.
type ListingType string

const (
	ListingTypeBuy  ListingType = "buy"
	ListingTypeSell ListingType = "sell"
)

func (t ListingType) String() string {
	return string(t)
}

func ParseListingType(s string) (ListingType, error) {
	switch ListingType(s) {
	case ListingTypeBuy, ListingTypeSell:
		return ListingType(s), nil
	default:
		return "", fmt.Errorf("unknown listing type %q", s)
	}
}

type ListingStatus string

const (
	ListingStatusActive    ListingStatus = "active"
	ListingStatusInactive  ListingStatus = "inactive"
	ListingStatusCompleted ListingStatus = "completed"
)

func (s ListingStatus) String() string {
	return string(s)
}

func ParseListingStatus(s string) (ListingStatus, error) {
	switch ListingStatus(s) {
	case ListingStatusActive, ListingStatusInactive, ListingStatusCompleted:
		return ListingStatus(s), nil
	default:
		return "", fmt.Errorf("unknown listing status %q", s)
	}
}
