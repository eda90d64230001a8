package services

import (
	"context"

	"github.com/harentsoaR/dentist-booking-web/internal/backend"
	"github.com/harentsoaR/dentist-booking-web/internal/logging"
	"github.com/harentsoaR/dentist-booking-web/internal/models"
)

type UserAPI interface {
	ListUsers(ctx context.Context, token string) ([]models.User, error)
	GetUser(ctx context.Context, token, id string) (*models.User, error)
	UpdateUser(ctx context.Context, token, id string, update backend.UserUpdate) (*models.User, error)
}

// UserResult is an edited user with its notice.
type UserResult struct {
	User   *models.User `json:"user"`
	Notice *Notice      `json:"notice"`
}

// UserService backs the admin role management pages.
type UserService struct {
	api    UserAPI
	logger *logging.Logger
}

func NewUserService(api UserAPI, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{api: api, logger: logger}
}

func (s *UserService) List(ctx context.Context, token string) ([]models.User, error) {
	if err := requireSession(token, "You must be logged in to manage users."); err != nil {
		return nil, err
	}
	users, err := s.api.ListUsers(ctx, token)
	if err != nil {
		return nil, failed("Failed to load users.", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, token, id string) (*models.User, error) {
	if err := requireSession(token, "You must be logged in to manage users."); err != nil {
		return nil, err
	}
	user, err := s.api.GetUser(ctx, token, id)
	if err != nil {
		return nil, failed("Failed to load user data", err)
	}
	return user, nil
}

// ChangeRole assigns one of the roles an admin may hand out.
func (s *UserService) ChangeRole(ctx context.Context, token, id string, role models.Role) (*UserResult, error) {
	if !role.Assignable() {
		return nil, flowErr(KindInvalid, "Please select a role.", nil)
	}
	if err := requireSession(token, "You must be logged in to manage users."); err != nil {
		return nil, err
	}
	user, err := s.api.UpdateUser(ctx, token, id, backend.UserUpdate{Role: &role})
	if err != nil {
		return nil, failed("Failed to edit user.", err)
	}
	s.logger.Info("user role changed", "user_id", id, "role", string(role))
	return &UserResult{User: user, Notice: notice("User Edited!")}, nil
}
