package operations

import (
	"context"

	"attendancehub/internal/model"
)

type CreateCompanyInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

func (s *Service) ListCompanies(ctx context.Context) ([]model.Company, error) {
	list, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, storeError(err)
	}
	return list, nil
}

func (s *Service) CreateCompany(ctx context.Context, in CreateCompanyInput) (model.Company, error) {
	if err := s.check(in); err != nil {
		return model.Company{}, err
	}
	company, err := s.store.CreateCompany(ctx, model.Company{
		ID:          s.newID(),
		Name:        in.Name,
		Email:       in.Email,
		Phone:       in.Phone,
		Type:        in.Type,
		Description: in.Description,
		Location:    in.Location,
		CreatedAt:   s.timestamp(),
	})
	if err != nil {
		return model.Company{}, storeError(err)
	}
	return company, nil
}
