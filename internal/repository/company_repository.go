package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/vendoreval/engine/internal/models"
	appErr "github.com/vendoreval/engine/pkg/errors"
	"gorm.io/gorm"
)

// CompanyFilters narrows and orders a company listing.
type CompanyFilters struct {
	Query    string // case-insensitive substring match on name
	OrderBy  string // "name", "-name" or empty for insertion order
	Page     int
	PageSize int
}

type CompanyRepository interface {
	BaseRepository[models.Company]
	List(ctx context.Context, f CompanyFilters) ([]models.Company, int64, error)
	DeleteGuarded(ctx context.Context, id uuid.UUID) error
}

type companyRepository struct {
	BaseRepository[models.Company]
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{BaseRepository: NewBaseRepository[models.Company](db), db: db}
}

func (r *companyRepository) List(ctx context.Context, f CompanyFilters) ([]models.Company, int64, error) {
	page, size := normalizePage(f.Page, f.PageSize)

	q := r.db.WithContext(ctx).Model(&models.Company{})
	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}
	switch f.OrderBy {
	case "name":
		q = q.Order("name ASC")
	case "-name":
		q = q.Order("name DESC")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "count companies failed")
	}

	var out []models.Company
	if err := q.Offset((page - 1) * size).Limit(size).Find(&out).Error; err != nil {
		return nil, 0, appErr.Wrap(err, appErr.CodeInternal, "list companies failed")
	}
	return out, total, nil
}

// DeleteGuarded removes a company only when no evaluation request references
// it. The existence check, the guard and the delete run in one transaction so
// a request created concurrently cannot orphan itself.
func (r *companyRepository) DeleteGuarded(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.Company
		if err := tx.First(&c, "id = ?", id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return appErr.New(appErr.CodeNotFound, "company not found")
			}
			return appErr.Wrap(err, appErr.CodeInternal, "get company failed")
		}

		var refs int64
		if err := tx.Model(&models.Request{}).Where("company_id = ?", id).Count(&refs).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "count company requests failed")
		}
		if refs > 0 {
			return appErr.New(appErr.CodeConflict, "cannot delete a company with associated requests").
				WithMeta("requests", refs)
		}

		if err := tx.Delete(&models.Company{}, "id = ?", id).Error; err != nil {
			return appErr.Wrap(err, appErr.CodeInternal, "delete company failed")
		}
		return nil
	})
	return err
}
