package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/errcodes"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create сохраняет нового пользователя. Уникальность ника обеспечивает
// ограничение users_username_key.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, username, role, verified)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		user.Name,
		user.Username.String(),
		user.Role.String(),
		user.Verified,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, "users_username_key") {
			return conflict(errcodes.UsernameAlreadyInUse, "User already exists")
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	query := `
		SELECT id, name, username, role, verified, created_at
		FROM users
		WHERE id = $1`

	var schema userSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(errcodes.UserNotFound, "User not found")
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return schema.toDomain()
}

// GetByUsername возвращает пользователя по нику.
func (r *UserRepository) GetByUsername(ctx context.Context, username value.Username) (*entity.User, error) {
	query := `
		SELECT id, name, username, role, verified, created_at
		FROM users
		WHERE username = $1`

	var schema userSchema
	if err := r.db.GetContext(ctx, &schema, query, username.String()); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, notFound(errcodes.UserNotFound, "User not found")
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	return schema.toDomain()
}

// List возвращает пользователей постранично.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	query := `
		SELECT id, name, username, role, verified, created_at
		FROM users
		ORDER BY id
		LIMIT $1 OFFSET $2`

	var schemas []userSchema
	if err := r.db.SelectContext(ctx, &schemas, query, limit, offset); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]entity.User, 0, len(schemas))
	for i := range schemas {
		user, err := schemas[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("convert user: %w", err)
		}
		users = append(users, *user)
	}

	return users, nil
}
