package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sarisaristore/sarisari-backend/pkg/enums"
	pkgerrors "github.com/sarisaristore/sarisari-backend/pkg/errors"
)

// AnalyticsDTO is the admin dashboard counts block.
type AnalyticsDTO struct {
	TotalProducts    int `json:"total_products"`
	SafeProducts     int `json:"safe_products"`
	LowProducts      int `json:"low_products"`
	CriticalProducts int `json:"critical_products"`
	ActiveProducts   int `json:"active_products"`
	InactiveProducts int `json:"inactive_products"`
}

// Service exposes catalog-wide inventory classification reads.
type Service interface {
	Analytics(ctx context.Context) (*AnalyticsDTO, error)
	FilterByStatus(ctx context.Context, status enums.StockStatus) ([]uuid.UUID, error)
}

type totalsRepo interface {
	ProductTotals(ctx context.Context) ([]ProductTotal, error)
	ProductIDsByStatus(ctx context.Context, status enums.StockStatus) ([]uuid.UUID, error)
}

type service struct {
	repo totalsRepo
}

// NewService constructs the inventory classification service.
func NewService(repo totalsRepo) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

// Analytics recomputes the status and active/inactive counts over the
// whole catalog.
func (s *service) Analytics(ctx context.Context) (*AnalyticsDTO, error) {
	totals, err := s.repo.ProductTotals(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: aggregate product totals")
	}

	out := &AnalyticsDTO{TotalProducts: len(totals)}
	for _, rec := range totals {
		switch Classify(rec.Total) {
		case enums.StockStatusSafe:
			out.SafeProducts++
		case enums.StockStatusLow:
			out.LowProducts++
		case enums.StockStatusCritical:
			out.CriticalProducts++
		}

		if rec.Status == enums.ProductStatusActive {
			out.ActiveProducts++
		} else {
			out.InactiveProducts++
		}
	}
	return out, nil
}

// FilterByStatus returns the ids of products whose aggregate quantity
// classifies to the requested status.
func (s *service) FilterByStatus(ctx context.Context, status enums.StockStatus) ([]uuid.UUID, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid stock status")
	}

	ids, err := s.repo.ProductIDsByStatus(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: filter products by status")
	}
	return ids, nil
}
