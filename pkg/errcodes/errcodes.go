package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	InvalidPaging       failure.ErrorCode = "InvalidPaging"

	UserNotFound         failure.ErrorCode = "UserNotFound"
	UsernameAlreadyInUse failure.ErrorCode = "UsernameAlreadyInUse"
	InvalidUserID        failure.ErrorCode = "InvalidUserID"
	InvalidUserRole      failure.ErrorCode = "InvalidUserRole"
	InvalidUsername      failure.ErrorCode = "InvalidUsername"

	ListingNotFound    failure.ErrorCode = "ListingNotFound"
	InvalidListingID   failure.ErrorCode = "InvalidListingID"
	InvalidListingType failure.ErrorCode = "InvalidListingType"

	DealNotFound      failure.ErrorCode = "DealNotFound"
	InvalidTradeCode  failure.ErrorCode = "InvalidTradeCode"
	InvalidDealAmount failure.ErrorCode = "InvalidDealAmount"
	// InvalidDealStatus — переход конечного автомата из неподходящего
	// состояния (повторное подтверждение, release до оплаты и т.п.).
	InvalidDealStatus failure.ErrorCode = "InvalidDealStatus"
	// TradeCodeTaken — сработало ограничение уникальности кода в БД,
	// сервис сделок перегенерирует код и повторит вставку.
	TradeCodeTaken failure.ErrorCode = "TradeCodeTaken"
)
