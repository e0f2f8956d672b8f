package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/washpoint/washpoint-api/internal/domain/entity"
	"github.com/washpoint/washpoint-api/pkg/pagination"
)

// PriceCombination identifies one priced (branch, service, vehicle type) slot.
// The tenant comes from the scoped context.
type PriceCombination struct {
	BranchID      uuid.UUID
	ServiceID     uuid.UUID
	VehicleTypeID uuid.UUID
}

// PriceRepository defines the interface for price entry data access
type PriceRepository interface {
	Create(ctx context.Context, entry *entity.PriceEntry) error
	Update(ctx context.Context, entry *entity.PriceEntry) error
	// FindCovering returns active entries for the combination whose window covers
	// the date, ordered by start date descending.
	FindCovering(ctx context.Context, combo PriceCombination, date time.Time) ([]entity.PriceEntry, error)
	// GetActiveForUpdate loads all active entries for the combination under an
	// exclusive lock. Must be called inside a transaction; this is the
	// combination-scoped lock that serializes concurrent publishes.
	GetActiveForUpdate(ctx context.Context, combo PriceCombination) ([]entity.PriceEntry, error)
	List(ctx context.Context, combo *PriceCombination, params *pagination.PaginationParams) ([]entity.PriceEntry, int64, error)
}
