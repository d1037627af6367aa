package operations

import (
	"context"

	"attendancehub/internal/crypto"
	"attendancehub/internal/model"
)

type CreateUserInput struct {
	CompanyID string `json:"companyId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=ceo discipline committee member"`
	Password  string `json:"password"`
}

type UpdateUserInput struct {
	Suspended bool `json:"suspended"`
}

func (s *Service) ListUsers(ctx context.Context, companyID string) ([]model.User, error) {
	list, err := s.store.ListUsers(ctx, companyID)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) CreateUser(ctx context.Context, in CreateUserInput) (model.User, error) {
	if err := s.check(in); err != nil {
		return model.User{}, err
	}
	role, ok := model.ParseRole(in.Role)
	if !ok {
		return model.User{}, &Error{Code: ErrInvalidPayload}
	}

	user := model.User{
		ID:        s.newID(),
		CompanyID: in.CompanyID,
		Name:      in.Name,
		Email:     in.Email,
		Role:      role,
	}
	if in.Password != "" {
		hash, err := crypto.HashPassword(in.Password)
		if err != nil {
			return model.User{}, &Error{Code: ErrServerError, Err: err}
		}
		user.PasswordHash = hash
	}

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return model.User{}, storeError(err)
	}
	return created, nil
}

func (s *Service) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (model.User, error) {
	user, err := s.store.UpdateUserSuspension(ctx, id, in.Suspended)
	if err != nil {
		return model.User{}, storeError(err)
	}
	return user, nil
}
