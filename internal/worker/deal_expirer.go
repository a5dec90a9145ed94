package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"p2p_market/internal/domain/value"
	"p2p_market/internal/infrastructure/jobs"
	"p2p_market/pkg/contextx"
)

var (
	json   = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip
	logger = contextx.LoggerFromContextOrDefault          //nolint:gochecknoglobals
)

type dealService interface {
	ExpirePending(ctx context.Context, code value.TradeCode) error
}

// DealExpirer обрабатывает задачи deal:expire — отменяет сделки,
// зависшие в pending дольше настроенного TTL.
type DealExpirer struct {
	deals dealService
}

func NewDealExpirer(deals dealService) *DealExpirer {
	return &DealExpirer{deals: deals}
}

func (w *DealExpirer) Handle(ctx context.Context, task *asynq.Task) error {
	var payload jobs.DealExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// Битая задача бессмысленна для повтора.
		return fmt.Errorf("json.Unmarshal: %v: %w", err, asynq.SkipRetry)
	}

	code, err := value.ParseTradeCode(payload.TradeCode)
	if err != nil {
		return fmt.Errorf("value.ParseTradeCode: %v: %w", err, asynq.SkipRetry)
	}

	if err := w.deals.ExpirePending(ctx, code); err != nil {
		return fmt.Errorf("deals.ExpirePending: %w", err)
	}

	logger(ctx).Info("deal expiry processed", "trade_code", code)

	return nil
}
