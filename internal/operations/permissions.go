package operations

import (
	"context"

	"attendancehub/internal/model"
)

type CreatePermissionInput struct {
	UserID   string `json:"userId" validate:"required"`
	UserName string `json:"userName"`
	Reason   string `json:"reason" validate:"required"`
	Date     string `json:"date" validate:"required"`
}

type UpdatePermissionInput struct {
	Status string `json:"status"`
}

func (s *Service) ListPermissions(ctx context.Context) ([]model.PermissionRequest, error) {
	list, err := s.store.ListPermissions(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) CreatePermission(ctx context.Context, in CreatePermissionInput) (model.PermissionRequest, error) {
	if err := s.check(in); err != nil {
		return model.PermissionRequest{}, err
	}
	req, err := s.store.CreatePermission(ctx, model.PermissionRequest{
		ID:        s.newID(),
		UserID:    in.UserID,
		UserName:  in.UserName,
		Reason:    in.Reason,
		Date:      in.Date,
		Timestamp: s.timestamp(),
		Status:    model.PermissionPending,
	})
	if err != nil {
		return model.PermissionRequest{}, storeError(err)
	}
	return req, nil
}

// UpdatePermission always writes the coerced status, so an unrecognized value
// resets the request to pending.
func (s *Service) UpdatePermission(ctx context.Context, id string, in UpdatePermissionInput) (model.PermissionRequest, error) {
	req, err := s.store.UpdatePermissionStatus(ctx, id, model.ParsePermissionStatus(in.Status))
	if err != nil {
		return model.PermissionRequest{}, storeError(err)
	}
	return req, nil
}
