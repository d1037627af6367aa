package operations

import (
	"context"

	"attendancehub/internal/model"
)

type CreateIdeaInput struct {
	UserID      string `json:"userId" validate:"required"`
	UserName    string `json:"userName"`
	Category    string `json:"category" validate:"omitempty,oneof=suggestion complaint question feedback"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
}

type UpdateIdeaInput struct {
	Status string `json:"status" validate:"required,oneof=pending reviewed resolved"`
}

func (s *Service) ListIdeas(ctx context.Context) ([]model.Idea, error) {
	list, err := s.store.ListIdeas(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) CreateIdea(ctx context.Context, in CreateIdeaInput) (model.Idea, error) {
	if err := s.check(in); err != nil {
		return model.Idea{}, err
	}
	category, ok := model.ParseIdeaCategory(in.Category)
	if !ok {
		return model.Idea{}, &Error{Code: ErrInvalidPayload}
	}
	idea, err := s.store.CreateIdea(ctx, model.Idea{
		ID:          s.newID(),
		UserID:      in.UserID,
		UserName:    in.UserName,
		Category:    category,
		Title:       in.Title,
		Description: in.Description,
		Timestamp:   s.timestamp(),
		Status:      model.IdeaPending,
	})
	if err != nil {
		return model.Idea{}, storeError(err)
	}
	return idea, nil
}

// UpdateIdea sets any valid status; ideas have no fixed transition order.
func (s *Service) UpdateIdea(ctx context.Context, id string, in UpdateIdeaInput) (model.Idea, error) {
	if err := s.check(in); err != nil {
		return model.Idea{}, err
	}
	status, ok := model.ParseIdeaStatus(in.Status)
	if !ok {
		return model.Idea{}, &Error{Code: ErrInvalidPayload}
	}
	idea, err := s.store.UpdateIdeaStatus(ctx, id, status)
	if err != nil {
		return model.Idea{}, storeError(err)
	}
	return idea, nil
}
