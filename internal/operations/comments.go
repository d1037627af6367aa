package operations

import "attendancehub/internal/model"

// CommentInput is accepted as-is; comments carry no required fields.
type CommentInput struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	Content  string `json:"content"`
}

func (s *Service) newComment(in CommentInput) model.Comment {
	return model.Comment{
		ID:        s.newID(),
		UserID:    in.UserID,
		UserName:  in.UserName,
		Content:   in.Content,
		Timestamp: s.timestamp(),
	}
}
