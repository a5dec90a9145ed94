package server

import (
	"context"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"p2p_market/internal/domain/entity"
	"p2p_market/internal/domain/value"
	"p2p_market/pkg/errcodes"
	"p2p_market/pkg/httpx/reply"
	"p2p_market/pkg/httpx/req"
	"p2p_market/pkg/rest"
)

type userService interface {
	Create(ctx context.Context, name string, username value.Username, role value.UserRole) (*entity.User, error)
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByUsername(ctx context.Context, username value.Username) (*entity.User, error)
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
}

type UserServer struct {
	userService userService
}

func NewUserServer(userService userService) UserServer {
	return UserServer{
		userService: userService,
	}
}

func (s UserServer) postV1User(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CreateUserRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	username, err := value.ParseUsername(request.Username)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseUsername: %w", err),
			failure.WithCode(errcodes.InvalidUsername),
		)
	}

	role, err := value.ParseUserRole(request.Role)
	if err != nil {
		return failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("value.ParseUserRole: %w", err),
			failure.WithCode(errcodes.InvalidUserRole),
		)
	}

	user, err := s.userService.Create(ctx, request.Name, username, role)
	if err != nil {
		return fmt.Errorf("userService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTUser(*user))

	return nil
}

func (s UserServer) getV1User(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	id, err := pathID(r, "id")
	if err != nil {
		return fmt.Errorf("pathID: %w", err)
	}

	user, err := s.userService.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("userService.GetByID: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTUser(*user))

	return nil
}

func (s UserServer) getV1Users(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	// Точечный поиск по нику вместо листинга.
	if raw := r.URL.Query().Get("username"); raw != "" {
		username, err := value.ParseUsername(raw)
		if err != nil {
			return failure.NewInvalidArgumentErrorFromError(
				fmt.Errorf("value.ParseUsername: %w", err),
				failure.WithCode(errcodes.InvalidUsername),
			)
		}

		user, err := s.userService.GetByUsername(ctx, username)
		if err != nil {
			return fmt.Errorf("userService.GetByUsername: %w", err)
		}

		reply.JSON(ctx, w, http.StatusOK, []rest.User{newRESTUser(*user)})

		return nil
	}

	limit, offset, err := paging(r)
	if err != nil {
		return fmt.Errorf("paging: %w", err)
	}

	users, err := s.userService.List(ctx, limit, offset)
	if err != nil {
		return fmt.Errorf("userService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTUsers(users))

	return nil
}
