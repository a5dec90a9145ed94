package server

import (
	"p2p_market/internal/domain/entity"
	"p2p_market/pkg/lox"
	"p2p_market/pkg/rest"
)

func newRESTUser(user entity.User) rest.User {
	return rest.User{
		ID:        user.ID,
		Name:      user.Name,
		Username:  user.Username.String(),
		Role:      user.Role.String(),
		Verified:  user.Verified,
		CreatedAt: user.CreatedAt,
	}
}

func newRESTUsers(users []entity.User) []rest.User {
	return lox.Map(users, newRESTUser)
}

func newRESTListing(listing entity.Listing) rest.Listing {
	return rest.Listing{
		ID:            listing.ID,
		UserID:        listing.UserID,
		Type:          listing.Type.String(),
		Amount:        listing.Amount,
		Rate:          listing.Rate,
		PaymentMethod: listing.PaymentMethod,
		Contact:       listing.Contact,
		Status:        listing.Status.String(),
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}

func newRESTListings(listings []entity.Listing) []rest.Listing {
	return lox.Map(listings, newRESTListing)
}

func newRESTDeal(deal entity.Deal) rest.Deal {
	return rest.Deal{
		ID:               deal.ID,
		ListingID:        deal.ListingID,
		BuyerID:          deal.BuyerID,
		SellerID:         deal.SellerID,
		USDTAmount:       deal.USDTAmount,
		ETBAmount:        deal.ETBAmount,
		CommissionAmount: deal.CommissionAmount,
		TradeCode:        deal.TradeCode.String(),
		EscrowWallet:     deal.EscrowWallet,
		Status:           deal.Status.String(),
		CreatedAt:        deal.CreatedAt,
		UpdatedAt:        deal.UpdatedAt,
	}
}

func newRESTDeals(deals []entity.Deal) []rest.Deal {
	return lox.Map(deals, newRESTDeal)
}

func newRESTLogEntry(log entity.LogEntry) rest.LogEntry {
	return rest.LogEntry{
		ID:        log.ID,
		DealID:    log.DealID,
		Action:    log.Action,
		Notes:     log.Notes,
		Timestamp: log.Timestamp,
	}
}

func newRESTLogEntries(logs []entity.LogEntry) []rest.LogEntry {
	return lox.Map(logs, newRESTLogEntry)
}
