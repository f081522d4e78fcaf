package service

import (
	"context"

	"skycart-api/internal/model"
)

// UserService covers profile self-service and admin account management.
type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Get(ctx context.Context, userID string) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) UpdateProfile(ctx context.Context, userID, name, avatar string) (*model.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, name, avatar); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) List(ctx context.Context, page, limit int64) ([]*model.User, int64, error) {
	return s.users.FindAll(ctx, (page-1)*limit, limit)
}

func (s *UserService) UpdateRole(ctx context.Context, userID string, role model.Role) (*model.User, error) {
	if err := s.users.UpdateRole(ctx, userID, role); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, userID)
}

func (s *UserService) Delete(ctx context.Context, userID string) error {
	return s.users.Delete(ctx, userID)
}
