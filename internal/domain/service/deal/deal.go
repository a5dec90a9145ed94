package deal

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math"
	"time"

	"git.appkode.ru/pub/go/failure"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/contextx"
	"p2p_market/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// maxCodeAttempts ограничивает перегенерацию trade code при коллизиях.
// Пространство кодов 36^5, так что до его насыщения лимит недостижим.
const maxCodeAttempts = 10

// ErrCodeSpaceExhausted — не удалось выделить свободный trade code за
// maxCodeAttempts попыток.
var ErrCodeSpaceExhausted = errors.New("trade code space exhausted")

type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal, log entity.LogEntry) error
	GetByTradeCode(ctx context.Context, code value.TradeCode) (*entity.Deal, error)
	List(ctx context.Context, limit, offset int) ([]entity.Deal, error)
	ListByStatuses(ctx context.Context, statuses []value.DealStatus, limit, offset int) ([]entity.Deal, error)
	TransitionStatus(
		ctx context.Context,
		code value.TradeCode,
		from, to value.DealStatus,
		logFor func(*entity.Deal) entity.LogEntry,
	) (*entity.Deal, error)
}

type ListingRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Listing, error)
}

type LogRepository interface {
	ListByDeal(ctx context.Context, dealID int64) ([]entity.LogEntry, error)
}

type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, code value.TradeCode, in time.Duration) error
}

// Config — неизменяемая конфигурация эскроу, читается один раз на старте
// процесса и инжектируется в сервис.
type Config struct {
	EscrowWallet      string
	CommissionPercent float64
	ReleaseSecret     string
	PendingTTL        time.Duration
}

// ReleaseReceipt — результат выдачи средств администратором.
type ReleaseReceipt struct {
	TradeCode      value.TradeCode
	AmountReleased float64
	Commission     float64
}

// DealService владеет конечным автоматом сделки: создание, подтверждение
// оплаты, выдача средств администратором и терминальная отмена.
type DealService struct {
	dealRepo    DealRepository
	listingRepo ListingRepository
	logRepo     LogRepository
	cfg         Config

	scheduler ExpiryScheduler
	events    chan<- entity.DealEvent
}

func NewDealService(
	dealRepo DealRepository,
	listingRepo ListingRepository,
	logRepo LogRepository,
	cfg Config,
) *DealService {
	return &DealService{
		dealRepo:    dealRepo,
		listingRepo: listingRepo,
		logRepo:     logRepo,
		cfg:         cfg,
	}
}

// WithExpiryScheduler включает отложенную отмену зависших pending-сделок.
func (s *DealService) WithExpiryScheduler(scheduler ExpiryScheduler) *DealService {
	s.scheduler = scheduler
	return s
}

// WithEvents включает публикацию событий переходов для нотификаций.
func (s *DealService) WithEvents(events chan<- entity.DealEvent) *DealService {
	s.events = events
	return s
}

// Create создаёт сделку по заявке. Курс и комиссия фиксируются здесь и
// больше не пересчитываются. Сделка и запись журнала становятся видимыми
// атомарно.
func (s *DealService) Create(
	ctx context.Context,
	listingID, buyerID int64,
	usdtAmount float64,
) (*entity.Deal, error) {
	// Граница доверия: сумма перепроверяется независимо от валидации
	// входной схемы.
	if usdtAmount <= 0 || math.IsInf(usdtAmount, 0) || math.IsNaN(usdtAmount) {
		return nil, failure.NewInvalidArgumentError(
			fmt.Sprintf("usdt amount must be a positive finite number, got %v", usdtAmount),
			failure.WithCode(errcodes.InvalidDealAmount),
			failure.WithDescription("USDT amount must be positive"),
		)
	}

	listing, err := s.listingRepo.GetByID(ctx, listingID)
	if err != nil {
		return nil, fmt.Errorf("listingRepo.GetByID: %w", err)
	}

	deal := &entity.Deal{
		ListingID:        listingID,
		BuyerID:          buyerID,
		SellerID:         listing.UserID,
		USDTAmount:       usdtAmount,
		ETBAmount:        usdtAmount * listing.Rate,
		CommissionAmount: usdtAmount * (s.cfg.CommissionPercent / 100),
		EscrowWallet:     s.cfg.EscrowWallet,
		Status:           value.DealStatusPending,
	}

	if err := s.createWithFreshCode(ctx, deal); err != nil {
		return nil, err
	}

	serviceMetrics.dealsCreated.Inc()

	s.scheduleExpiry(ctx, deal.TradeCode)
	s.publish(ctx, *deal, entity.ActionDealCreated)

	return deal, nil
}

// createWithFreshCode выделяет свободный trade code методом отбраковки:
// генерация и вставка повторяются, пока БД сигналит о нарушении
// уникальности. Предварительной проверки нет намеренно — под гонкой она
// ничего не гарантирует, источником истины служит ограничение БД.
func (s *DealService) createWithFreshCode(ctx context.Context, deal *entity.Deal) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		deal.TradeCode = value.GenerateTradeCode()

		err := s.dealRepo.Create(ctx, deal, entity.NewDealCreatedLog(deal))
		if err == nil {
			return nil
		}

		if failure.IsConflictError(err) && failure.Code(err) == errcodes.TradeCodeTaken {
			serviceMetrics.codeRetries.Inc()
			logger(ctx).Warn("trade code collision, regenerating",
				"trade_code", deal.TradeCode,
				"attempt", attempt+1,
			)
			continue
		}

		return fmt.Errorf("dealRepo.Create: %w", err)
	}

	return fmt.Errorf("%w after %d attempts", ErrCodeSpaceExhausted, maxCodeAttempts)
}

// ConfirmPayment переводит сделку pending -> paid. Повторное подтверждение
// отклоняется с конфликтом, а не принимается молча.
func (s *DealService) ConfirmPayment(ctx context.Context, code value.TradeCode) (*entity.Deal, error) {
	deal, err := s.dealRepo.TransitionStatus(
		ctx, code,
		value.DealStatusPending, value.DealStatusPaid,
		func(d *entity.Deal) entity.LogEntry { return entity.NewPaymentConfirmedLog(d) },
	)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.TransitionStatus: %w", err)
	}

	serviceMetrics.transitions.WithLabelValues(value.DealStatusPaid.String()).Inc()
	s.publish(ctx, *deal, entity.ActionPaymentConfirmed)

	return deal, nil
}

// ReleaseFunds — админский перевод paid -> released. Секрет сравнивается
// за постоянное время и ДО обращения к хранилищу: неверный секрет не
// раскрывает, существует ли код.
func (s *DealService) ReleaseFunds(
	ctx context.Context,
	code value.TradeCode,
	secret string,
) (*ReleaseReceipt, error) {
	if subtle.ConstantTimeCompare([]byte(secret), []byte(s.cfg.ReleaseSecret)) != 1 {
		return nil, failure.NewForbiddenError(
			"release secret mismatch",
			failure.WithCode(errcodes.Forbidden),
			failure.WithDescription("Invalid admin secret"),
		)
	}

	deal, err := s.dealRepo.TransitionStatus(
		ctx, code,
		value.DealStatusPaid, value.DealStatusReleased,
		func(d *entity.Deal) entity.LogEntry { return entity.NewFundsReleasedLog(d) },
	)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.TransitionStatus: %w", err)
	}

	serviceMetrics.transitions.WithLabelValues(value.DealStatusReleased.String()).Inc()
	s.publish(ctx, *deal, entity.ActionFundsReleased)

	return &ReleaseReceipt{
		TradeCode:      deal.TradeCode,
		AmountReleased: deal.NetAmount(),
		Commission:     deal.CommissionAmount,
	}, nil
}

// ExpirePending отменяет сделку, зависшую в pending. Вызывается воркером
// отложенных задач; сделка, успевшая продвинуться, не трогается.
func (s *DealService) ExpirePending(ctx context.Context, code value.TradeCode) error {
	reason := fmt.Sprintf("No payment confirmation within %s", s.cfg.PendingTTL)

	deal, err := s.dealRepo.TransitionStatus(
		ctx, code,
		value.DealStatusPending, value.DealStatusCancelled,
		func(d *entity.Deal) entity.LogEntry { return entity.NewDealCancelledLog(d, reason) },
	)
	if err != nil {
		if failure.IsNotFoundError(err) || failure.IsConflictError(err) {
			logger(ctx).Debug("expiry skipped, deal progressed", "trade_code", code)
			return nil
		}
		return fmt.Errorf("dealRepo.TransitionStatus: %w", err)
	}

	serviceMetrics.transitions.WithLabelValues(value.DealStatusCancelled.String()).Inc()
	s.publish(ctx, *deal, entity.ActionDealCancelled)

	return nil
}

// Get возвращает сделку по коду.
func (s *DealService) Get(ctx context.Context, code value.TradeCode) (*entity.Deal, error) {
	deal, err := s.dealRepo.GetByTradeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.GetByTradeCode: %w", err)
	}

	return deal, nil
}

// Logs возвращает журнал переходов сделки.
func (s *DealService) Logs(ctx context.Context, code value.TradeCode) ([]entity.LogEntry, error) {
	deal, err := s.dealRepo.GetByTradeCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.GetByTradeCode: %w", err)
	}

	logs, err := s.logRepo.ListByDeal(ctx, deal.ID)
	if err != nil {
		return nil, fmt.Errorf("logRepo.ListByDeal: %w", err)
	}

	return logs, nil
}

// List возвращает все сделки постранично.
func (s *DealService) List(ctx context.Context, limit, offset int) ([]entity.Deal, error) {
	deals, err := s.dealRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.List: %w", err)
	}

	return deals, nil
}

// ListPending возвращает незавершённые сделки (pending и paid) для
// административного обзора.
func (s *DealService) ListPending(ctx context.Context, limit, offset int) ([]entity.Deal, error) {
	deals, err := s.dealRepo.ListByStatuses(
		ctx,
		[]value.DealStatus{value.DealStatusPending, value.DealStatusPaid},
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("dealRepo.ListByStatuses: %w", err)
	}

	return deals, nil
}

// Info — публичные параметры площадки.
func (s *DealService) Info() (escrowWallet string, commissionPercent float64) {
	return s.cfg.EscrowWallet, s.cfg.CommissionPercent
}

func (s *DealService) scheduleExpiry(ctx context.Context, code value.TradeCode) {
	if s.scheduler == nil || s.cfg.PendingTTL <= 0 {
		return
	}

	if err := s.scheduler.ScheduleExpiry(ctx, code, s.cfg.PendingTTL); err != nil {
		// Сделка уже создана, падать из-за планировщика нельзя.
		logger(ctx).Error("failed to schedule deal expiry", "trade_code", code, "error", err)
	}
}

// publish отправляет событие нотификатору, никогда не блокируя запрос.
func (s *DealService) publish(ctx context.Context, deal entity.Deal, action string) {
	if s.events == nil {
		return
	}

	select {
	case s.events <- entity.DealEvent{Deal: deal, Action: action}:
	default:
		logger(ctx).Warn("deal event dropped, notifier channel full",
			"trade_code", deal.TradeCode,
			"action", action,
		)
	}
}
