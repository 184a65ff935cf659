package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/vendoreval/engine/internal/models"
	"github.com/vendoreval/engine/internal/repository"
	"github.com/vendoreval/engine/internal/risk"
	appErr "github.com/vendoreval/engine/pkg/errors"
	"github.com/vendoreval/engine/pkg/logger"
	"go.uber.org/zap"
)

type RequestService interface {
	Create(ctx context.Context, input *CreateRequestInput) (*models.Request, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Request, error)
	List(ctx context.Context, filters repository.RequestFilters) ([]models.Request, int64, error)
	Update(ctx context.Context, id uuid.UUID, updates *UpdateRequestInput) (*models.Request, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateRequestInput struct {
	CompanyID  uuid.UUID
	RiskInputs map[string]any
}

// UpdateRequestInput carries a partial update. A nil Status leaves the status
// untouched; a nil RiskInputs map leaves inputs and score untouched.
type UpdateRequestInput struct {
	Status     *models.RequestStatus
	RiskInputs map[string]any
}

type requestService struct {
	requests  repository.RequestRepository
	companies repository.CompanyRepository
}

var _ RequestService = (*requestService)(nil)

func NewRequestService(requests repository.RequestRepository, companies repository.CompanyRepository) RequestService {
	return &requestService{requests: requests, companies: companies}
}

func (s *requestService) Create(ctx context.Context, input *CreateRequestInput) (*models.Request, error) {
	var company models.Company
	if err := s.companies.GetByID(ctx, input.CompanyID, &company); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "company not found")
		}
		return nil, err
	}

	inputs := input.RiskInputs
	if inputs == nil {
		inputs = map[string]any{}
	}

	req := &models.Request{
		CompanyID:  input.CompanyID,
		Status:     models.StatusPending,
		RiskInputs: datatypes.JSONMap(inputs),
		RiskScore:  risk.Score(inputs),
	}

	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}

	logger.L().Info("request created",
		zap.String("request_id", req.ID.String()),
		zap.String("company_id", input.CompanyID.String()),
		zap.Int("risk_score", req.RiskScore),
	)
	return req, nil
}

func (s *requestService) Get(ctx context.Context, id uuid.UUID) (*models.Request, error) {
	var req models.Request
	if err := s.requests.GetByID(ctx, id, &req); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "request not found")
		}
		return nil, err
	}
	return &req, nil
}

func (s *requestService) List(ctx context.Context, filters repository.RequestFilters) ([]models.Request, int64, error) {
	return s.requests.List(ctx, filters)
}

func (s *requestService) Update(ctx context.Context, id uuid.UUID, updates *UpdateRequestInput) (*models.Request, error) {
	var req models.Request
	if err := s.requests.GetByID(ctx, id, &req); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return nil, appErr.New(appErr.CodeNotFound, "request not found")
		}
		return nil, err
	}

	// Approved and rejected requests are closed; nothing about them may change.
	if req.Status.Terminal() {
		return nil, appErr.New(appErr.CodeConflict, "request is in a terminal status").
			WithMeta("status", string(req.Status))
	}

	if updates.Status != nil {
		if !updates.Status.Valid() {
			return nil, appErr.New(appErr.CodeInvalid, "unknown request status")
		}
		req.Status = *updates.Status
	}
	if updates.RiskInputs != nil {
		req.RiskInputs = datatypes.JSONMap(updates.RiskInputs)
		req.RiskScore = risk.Score(updates.RiskInputs)
	}

	if err := s.requests.Update(ctx, &req); err != nil {
		return nil, err
	}

	logger.L().Info("request updated",
		zap.String("request_id", id.String()),
		zap.String("status", string(req.Status)),
		zap.Int("risk_score", req.RiskScore),
	)
	return &req, nil
}

func (s *requestService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.requests.Delete(ctx, id); err != nil {
		if appErr.IsCode(err, appErr.CodeNotFound) {
			return appErr.New(appErr.CodeNotFound, "request not found")
		}
		return err
	}
	logger.L().Info("request deleted", zap.String("request_id", id.String()))
	return nil
}
