package operations

import (
	"context"
	"errors"

	"attendancehub/internal/model"
	"attendancehub/internal/store"
)

const defaultReporterRole = "discipline"

type CreateCaseInput struct {
	CompanyID    string `json:"companyId" validate:"required"`
	ReportedBy   string `json:"reportedBy" validate:"required"`
	ReporterName string `json:"reporterName"`
	ReporterRole string `json:"reporterRole"`
	MemberID     string `json:"memberId" validate:"required"`
	MemberName   string `json:"memberName"`
	Title        string `json:"title" validate:"required"`
	Description  string `json:"description" validate:"required"`
	Date         string `json:"date" validate:"required"`
}

type DecideCaseInput struct {
	Decision     string `json:"decision"`
	DecisionText string `json:"decisionText"`
	DecidedBy    string `json:"decidedBy"`
}

func (s *Service) ListCases(ctx context.Context, companyID string) ([]model.Case, error) {
	list, err := s.store.ListCases(ctx, companyID)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) CreateCase(ctx context.Context, in CreateCaseInput) (model.Case, error) {
	if err := s.check(in); err != nil {
		return model.Case{}, err
	}
	role := in.ReporterRole
	if role == "" {
		role = defaultReporterRole
	}
	c, err := s.store.CreateCase(ctx, model.Case{
		ID:           s.newID(),
		CompanyID:    in.CompanyID,
		ReportedBy:   in.ReportedBy,
		ReporterName: in.ReporterName,
		ReporterRole: role,
		MemberID:     in.MemberID,
		MemberName:   in.MemberName,
		Title:        in.Title,
		Description:  in.Description,
		Date:         in.Date,
		Timestamp:    s.timestamp(),
		Status:       model.CasePending,
		Comments:     []model.Comment{},
	})
	if err != nil {
		return model.Case{}, storeError(err)
	}
	return c, nil
}

func (s *Service) CommentOnCase(ctx context.Context, caseID string, in CommentInput) (model.Comment, error) {
	comment, err := s.store.AddCaseComment(ctx, caseID, s.newComment(in))
	if err != nil {
		return model.Comment{}, storeError(err)
	}
	return comment, nil
}

// DecideCase moves a pending case to suspended or forgiven. A decision that
// does not parse to a terminal status leaves the case as it is.
func (s *Service) DecideCase(ctx context.Context, id string, in DecideCaseInput) (model.Case, error) {
	status := model.ParseCaseDecision(in.Decision)
	if !status.Terminal() {
		c, err := s.store.GetCase(ctx, id)
		if err != nil {
			return model.Case{}, storeError(err)
		}
		return c, nil
	}

	c, err := s.store.DecideCase(ctx, id, store.CaseDecision{
		Status:    status,
		Decision:  in.DecisionText,
		DecidedBy: in.DecidedBy,
		DecidedAt: s.timestamp(),
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return model.Case{}, &Error{Code: ErrAlreadyDecided, Err: err}
		}
		return model.Case{}, storeError(err)
	}
	s.recorder.CaseDecided(status)
	return c, nil
}
