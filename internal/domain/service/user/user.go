package user

import (
	"context"
	"fmt"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username value.Username) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}

type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create регистрирует пользователя. Уникальность ника обеспечивает
// хранилище; конфликт возвращается как есть.
func (s *UserService) Create(
	ctx context.Context,
	name string,
	username value.Username,
	role value.UserRole,
) (*entity.User, error) {
	user := &entity.User{
		Name:     name,
		Username: username,
		Role:     role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("userRepo.Create: %w", err)
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}

	return user, nil
}

// GetByUsername — поиск пользователя по нику.
func (s *UserService) GetByUsername(ctx context.Context, username value.Username) (*entity.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("userRepo.GetByUsername: %w", err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	users, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: %w", err)
	}

	return users, nil
}
