package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"p2p_market/internal/domain/value"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// TaskTypeDealExpire — отложенная отмена сделки, не подтверждённой в срок.
const TaskTypeDealExpire = "deal:expire"

type DealExpirePayload struct {
	TradeCode string `json:"tradeCode"`
}

// ExpiryScheduler ставит задачу отмены через очередь asynq.
type ExpiryScheduler struct {
	client *asynq.Client
}

func NewExpiryScheduler(redisOpt asynq.RedisClientOpt) *ExpiryScheduler {
	return &ExpiryScheduler{
		client: asynq.NewClient(redisOpt),
	}
}

func (s *ExpiryScheduler) ScheduleExpiry(
	ctx context.Context,
	code value.TradeCode,
	in time.Duration,
) error {
	payload, err := json.Marshal(DealExpirePayload{TradeCode: code.String()})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	task := asynq.NewTask(TaskTypeDealExpire, payload)

	if _, err := s.client.EnqueueContext(ctx, task, asynq.ProcessIn(in)); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	return nil
}

func (s *ExpiryScheduler) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("client.Close: %w", err)
	}

	return nil
}
