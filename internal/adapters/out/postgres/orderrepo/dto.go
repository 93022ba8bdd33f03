// Package orderrepo persists order aggregates in the "orders" table.
// Line items are stored as a JSON document; every other field has its own column.
package orderrepo

import (
	"time"

	"kitchenpos/internal/core/domain/model/kernel"
	"kitchenpos/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status is stored by name so the table stays readable from psql.
type OrderDTO struct {
	ID             uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time        `gorm:"not null;index;autoCreateTime:false"`
	Status         string           `gorm:"size:16;not null;index"`
	Seat           string           `gorm:"size:4;not null"`
	Items          []order.LineItem `gorm:"type:jsonb;serializer:json;not null"`
	Subtotal       float64          `gorm:"not null"`
	Total          float64          `gorm:"not null"`
	Notes          string           `gorm:"not null;default:''"`
	PromoApplied   bool             `gorm:"not null"`
	PromoDiscount  float64          `gorm:"not null"`
	PromoSource    *string          `gorm:"size:16"`
	PromoType      string           `gorm:"size:32;not null"`
	PromoTimestamp time.Time        `gorm:"not null"`
	PaidAt         *time.Time
	CancelledAt    *time.Time
	CancelReason   string `gorm:"not null;default:''"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	return OrderDTO{
		ID:             s.ID.Bytes(),
		CreatedAt:      s.CreatedAt,
		Status:         s.Status.String(),
		Seat:           s.Table.String(),
		Items:          s.Items,
		Subtotal:       s.Totals.Subtotal,
		Total:          s.Totals.Total,
		Notes:          s.Notes,
		PromoApplied:   s.PromoApplied,
		PromoDiscount:  s.PromoDiscount,
		PromoSource:    s.PromoSource,
		PromoType:      s.PromoType,
		PromoTimestamp: s.PromoTimestamp,
		PaidAt:         s.PaidAt,
		CancelledAt:    s.CancelledAt,
		CancelReason:   s.CancelReason,
	}
}

// toDomain converts a database DTO to an order domain aggregate using RestoreOrder.
// Timestamps are normalized to UTC.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	table, err := order.NewTable(dto.Seat)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:             id,
		CreatedAt:      dto.CreatedAt.UTC(),
		Status:         status,
		Table:          table,
		Items:          dto.Items,
		Totals:         order.Totals{Subtotal: dto.Subtotal, Total: dto.Total},
		Notes:          dto.Notes,
		PromoApplied:   dto.PromoApplied,
		PromoType:      dto.PromoType,
		PromoSource:    dto.PromoSource,
		PromoDiscount:  dto.PromoDiscount,
		PromoTimestamp: dto.PromoTimestamp.UTC(),
		PaidAt:         utc(dto.PaidAt),
		CancelledAt:    utc(dto.CancelledAt),
		CancelReason:   dto.CancelReason,
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
