package entity

import (
	"fmt"
	"time"
)

// Действия, фиксируемые в журнале сделки.
const (
	ActionDealCreated      = "Deal created"
	ActionPaymentConfirmed = "Payment confirmed"
	ActionFundsReleased    = "Funds released"
	ActionDealCancelled    = "Deal cancelled"
)

// LogEntry — неизменяемая запись журнала по одной сделке.
// Записи только добавляются, обновления и удаления не предусмотрены.
type LogEntry struct {
	ID        int64     `json:"id" db:"id"`
	DealID    int64     `json:"deal_id" db:"deal_id"`
	Action    string    `json:"action" db:"action"`
	Notes     string    `json:"notes" db:"notes"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

func NewDealCreatedLog(d *Deal) LogEntry {
	return LogEntry{
		DealID: d.ID,
		Action: ActionDealCreated,
		Notes:  fmt.Sprintf("Trade code: %s, Amount: %v USDT", d.TradeCode, d.USDTAmount),
	}
}

func NewPaymentConfirmedLog(d *Deal) LogEntry {
	return LogEntry{
		DealID: d.ID,
		Action: ActionPaymentConfirmed,
		Notes:  "Seller confirmed ETB payment received",
	}
}

func NewFundsReleasedLog(d *Deal) LogEntry {
	return LogEntry{
		DealID: d.ID,
		Action: ActionFundsReleased,
		Notes:  fmt.Sprintf("Admin released %v USDT to buyer", d.NetAmount()),
	}
}

func NewDealCancelledLog(d *Deal, reason string) LogEntry {
	return LogEntry{
		DealID: d.ID,
		Action: ActionDealCancelled,
		Notes:  reason,
	}
}
