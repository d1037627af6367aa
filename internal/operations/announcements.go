package operations

import (
	"context"

	"attendancehub/internal/model"
)

type CreateAnnouncementInput struct {
	CommitteeID   string `json:"committeeId" validate:"required"`
	CommitteeName string `json:"committeeName"`
	Title         string `json:"title" validate:"required"`
	Content       string `json:"content" validate:"required"`
	Category      string `json:"category" validate:"omitempty,oneof=general urgent event academic"`
}

func (s *Service) ListAnnouncements(ctx context.Context) ([]model.Announcement, error) {
	list, err := s.store.ListAnnouncements(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) CreateAnnouncement(ctx context.Context, in CreateAnnouncementInput) (model.Announcement, error) {
	if err := s.check(in); err != nil {
		return model.Announcement{}, err
	}
	category, ok := model.ParseAnnouncementCategory(in.Category)
	if !ok {
		return model.Announcement{}, &Error{Code: ErrInvalidPayload}
	}
	ann, err := s.store.CreateAnnouncement(ctx, model.Announcement{
		ID:            s.newID(),
		CommitteeID:   in.CommitteeID,
		CommitteeName: in.CommitteeName,
		Title:         in.Title,
		Content:       in.Content,
		Category:      category,
		Timestamp:     s.timestamp(),
		Comments:      []model.Comment{},
	})
	if err != nil {
		return model.Announcement{}, storeError(err)
	}
	return ann, nil
}

func (s *Service) CommentOnAnnouncement(ctx context.Context, announcementID string, in CommentInput) (model.Comment, error) {
	comment, err := s.store.AddAnnouncementComment(ctx, announcementID, s.newComment(in))
	if err != nil {
		return model.Comment{}, storeError(err)
	}
	return comment, nil
}
