package persistence

import (
	"context"
	"errors"
	"fmt"

	"git.appkode.ru/pub/go/failure"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
)

const pgUniqueViolation = "23505"

// withTx выполняет функцию в транзакции.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w; rollback: %v", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

// isUniqueViolation проверяет, что ошибка — нарушение конкретного
// ограничения уникальности Postgres.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		pgErr.ConstraintName == constraint
}

func notFound(code failure.ErrorCode, description string) error {
	return failure.NewNotFoundError(
		description,
		failure.WithCode(code),
		failure.WithDescription(description),
	)
}

func conflict(code failure.ErrorCode, description string) error {
	return failure.NewConflictError(
		description,
		failure.WithCode(code),
		failure.WithDescription(description),
	)
}
