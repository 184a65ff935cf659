package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendoreval/engine/internal/models"
	appErr "github.com/vendoreval/engine/pkg/errors"
	"gorm.io/gorm"
)

// RequestFilters narrows an evaluation-request listing. Nil pointer fields
// leave the corresponding filter off.
type RequestFilters struct {
	Query     string // case-insensitive substring match on the company name
	Status    models.RequestStatus
	CompanyID *uuid.UUID
	RiskMin   *int // inclusive
	RiskMax   *int // inclusive
	Page      int
	PageSize  int
}

type RequestRepository interface {
	BaseRepository[models.Request]
	List(ctx context.Context, f RequestFilters) ([]models.Request, int64, error)
}

type requestRepository struct {
	BaseRepository[models.Request]
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepository{BaseRepository: NewBaseRepository[models.Request](db), db: db}
}

func (r *requestRepository) List(ctx context.Context, f RequestFilters) ([]models.Request, int64, error) {
	page, size := normalizePage(f.Page, f.PageSize)

	q := r.db.WithContext(ctx).Model(&models.Request{})
	if f.Query != "" {
		q = q.Joins("JOIN companies ON companies.id = requests.company_id").
			Where("companies.name ILIKE ?", "%"+f.Query+"%")
	}
	if f.Status != "" {
		q = q.Where("requests.status = ?", f.Status)
	}
	if f.CompanyID != nil {
		q = q.Where("requests.company_id = ?", *f.CompanyID)
	}
	if f.RiskMin != nil {
		q = q.Where("requests.risk_score >= ?", *f.RiskMin)
	}
	if f.RiskMax != nil {
		q = q.Where("requests.risk_score <= ?", *f.RiskMax)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count requests failed")
	}

	var out []models.Request
	if err := q.Offset((page - 1) * size).Limit(size).Find(&out).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list requests failed")
	}
	return out, total, nil
}
