// Package promorepo persists the promotion override singleton in the "promo_state" table.
package promorepo

import (
	"context"
	"errors"
	"time"

	"kitchenpos/internal/core/domain/model/promo"
	"kitchenpos/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	resource    = "promo_state"
	singletonID = 1
)

// PromoStateDTO is the single row holding the override state.
type PromoStateDTO struct {
	ID                    int  `gorm:"primaryKey;autoIncrement:false"`
	ManualOverrideEnabled bool `gorm:"not null"`
	OverrideUpdatedAt     *time.Time
}

// TableName specifies the database table name for the promotion state.
func (PromoStateDTO) TableName() string {
	return "promo_state"
}

// GormPromoStateRepository implements PromoStateRepository using GORM.
type GormPromoStateRepository struct {
	db *gorm.DB
}

func NewGormPromoStateRepository(db *gorm.DB) *GormPromoStateRepository {
	return &GormPromoStateRepository{db: db}
}

// Get returns the stored state, inserting the default row when none exists.
func (r *GormPromoStateRepository) Get(ctx context.Context) (promo.State, error) {
	var dto PromoStateDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", singletonID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		state := promo.DefaultState()
		if err = r.Save(ctx, state); err != nil {
			return promo.State{}, err
		}
		return state, nil
	}
	if err != nil {
		return promo.State{}, errs.NewStorageError(resource, err)
	}

	state := promo.State{ManualOverrideEnabled: dto.ManualOverrideEnabled}
	if dto.OverrideUpdatedAt != nil {
		updatedAt := dto.OverrideUpdatedAt.UTC()
		state.UpdatedAt = &updatedAt
	}
	return state, nil
}

// Save upserts the singleton row.
func (r *GormPromoStateRepository) Save(ctx context.Context, state promo.State) error {
	dto := PromoStateDTO{
		ID:                    singletonID,
		ManualOverrideEnabled: state.ManualOverrideEnabled,
		OverrideUpdatedAt:     state.UpdatedAt,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&dto).Error
	if err != nil {
		return errs.NewStorageError(resource, err)
	}
	return nil
}
