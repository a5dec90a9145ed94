package persistence

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"p2p_market/internal/domain/entity"
)

// LogRepository — append-only журнал переходов сделок. Операций обновления
// и удаления нет намеренно.
type LogRepository struct {
	db *sqlx.DB
}

func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

// Append добавляет запись журнала. Метка времени назначается сервером БД.
func (r *LogRepository) Append(ctx context.Context, log entity.LogEntry) error {
	query := `
		INSERT INTO logs (deal_id, action, notes)
		VALUES ($1, $2, $3)`

	if _, err := r.db.ExecContext(ctx, query, log.DealID, log.Action, log.Notes); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}

	return nil
}

// ListByDeal возвращает журнал одной сделки в порядке добавления.
func (r *LogRepository) ListByDeal(ctx context.Context, dealID int64) ([]entity.LogEntry, error) {
	query := `
		SELECT id, deal_id, action, notes, timestamp
		FROM logs
		WHERE deal_id = $1
		ORDER BY id`

	var schemas []logSchema
	if err := r.db.SelectContext(ctx, &schemas, query, dealID); err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}

	logs := make([]entity.LogEntry, 0, len(schemas))
	for i := range schemas {
		logs = append(logs, schemas[i].toDomain())
	}

	return logs, nil
}

// appendLogTx — вставка записи журнала в рамках внешней транзакции.
func appendLogTx(ctx context.Context, tx *sqlx.Tx, log entity.LogEntry) error {
	query := `
		INSERT INTO logs (deal_id, action, notes)
		VALUES ($1, $2, $3)`

	if _, err := tx.ExecContext(ctx, query, log.DealID, log.Action, log.Notes); err != nil {
		return fmt.Errorf("insert log: %w", err)
	}

	return nil
}
