package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
	appErr "github.com/vendoreval/engine/pkg/errors"
	"github.com/vendoreval/engine/pkg/logger"
	"go.uber.org/zap"
)

type CompanyService interface {
	Create(ctx context.Context, input *CreateCompanyInput) (*models.Company, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Company, error)
	List(ctx context.Context, filters repository.CompanyFilters) ([]models.Company, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates *UpdateCompanyInput) (*models.Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateCompanyInput struct {
	Name    string
	TaxID   *string
	Country string
}

// UpdateCompanyInput carries a partial update; nil fields are left untouched.
type UpdateCompanyInput struct {
	Name    *string
	TaxID   *string
	Country *string
}

type companyService struct {
	companies repository.CompanyRepository
}

var _ CompanyService = (*companyService)(nil)

func NewCompanyService(companies repository.CompanyRepository) CompanyService {
	return &companyService{companies: companies}
}

func (s *companyService) Create(ctx context.Context, input *CreateCompanyInput) (*models.Company, error) {
	country := input.Country
	if country == "" {
		country = "CL"
	}

	c := &models.Company{
		Name:    input.Name,
		TaxID:   input.TaxID,
		Country: country,
	}

	if err := s.companies.Create(ctx, c); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.New(appErr.CodeConflict, "company name already exists")
		}
		return nil, err
	}

	logger.L().Info("company created", zap.String("company_id", c.ID.String()), zap.String("name", c.Name))
	return c, nil
}

func (s *companyService) Get(ctx context.Context, id uuid.UUID) (*models.Company, error) {
	var c models.Company
	if err := s.companies.GetByID(ctx, id, &c); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "company not found")
		}
		return nil, err
	}
	return &c, nil
}

func (s *companyService) List(ctx context.Context, filters repository.CompanyFilters) ([]models.Company, int64, error) {
	return s.companies.List(ctx, filters)
}

func (s *companyService) Update(ctx context.Context, id uuid.UUID, updates *UpdateCompanyInput) (*models.Company, error) {
	var c models.Company
	if err := s.companies.GetByID(ctx, id, &c); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "company not found")
		}
		return nil, err
	}

	if updates.Name != nil {
		c.Name = *updates.Name
	}
	if updates.TaxID != nil {
		c.TaxID = updates.TaxID
	}
	if updates.Country != nil {
		c.Country = *updates.Country
	}

	if err := s.companies.Update(ctx, &c); err != nil {
		if appErr.IsCode(err, appErr.CodeConflict) {
			return nil, appErr.New(appErr.CodeConflict, "company name already exists")
		}
		return nil, err
	}

	logger.L().Info("company updated", zap.String("company_id", id.String()))
	return &c, nil
}

func (s *companyService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.companies.DeleteGuarded(ctx, id); err != nil {
		return err
	}
	logger.L().Info("company deleted", zap.String("company_id", id.String()))
	return nil
}
