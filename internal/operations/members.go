package operations

import (
	"context"

	"attendancehub/internal/model"
)

type CreateMemberInput struct {
	CompanyID          string `json:"companyId" validate:"required"`
	Name               string `json:"name" validate:"required"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Department         string `json:"department"`
	JoinedYear         string `json:"joinedYear"`
	Email              string `json:"email"`
}

type UpdateMemberInput struct {
	Suspended        bool   `json:"suspended"`
	SuspensionReason string `json:"suspensionReason"`
}

func (s *Service) ListMembers(ctx context.Context, companyID string) ([]model.Member, error) {
	list, err := s.store.ListMembers(ctx, companyID)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

// CreateMember fails with ErrConflict when the registration number is taken.
func (s *Service) CreateMember(ctx context.Context, in CreateMemberInput) (model.Member, error) {
	if err := s.check(in); err != nil {
		return model.Member{}, err
	}
	member, err := s.store.CreateMember(ctx, model.Member{
		ID:                 s.newID(),
		CompanyID:          in.CompanyID,
		Name:               in.Name,
		RegistrationNumber: in.RegistrationNumber,
		Department:         in.Department,
		JoinedYear:         in.JoinedYear,
		Email:              in.Email,
	})
	if err != nil {
		return model.Member{}, storeError(err)
	}
	return member, nil
}

func (s *Service) UpdateMember(ctx context.Context, id string, in UpdateMemberInput) (model.Member, error) {
	member, err := s.store.UpdateMemberSuspension(ctx, id, in.Suspended, in.SuspensionReason)
	if err != nil {
		return model.Member{}, storeError(err)
	}
	return member, nil
}
