package order

import (
	"errors"
	"time"

	"kitchenpos/internal/core/domain/model/kernel"
)

const (
	// EventCreated is broadcast after a new order is persisted.
	EventCreated = "created"

	// EventUpdated is broadcast after a status change is persisted.
	EventUpdated = "updated"
)

// Snapshot is the flat record of an order. It is what observers receive, what the
// HTTP API returns and what the JSON file store writes, so all three agree byte for byte.
type Snapshot struct {
	ID             kernel.UUID `json:"id"`
	CreatedAt      time.Time   `json:"createdAt"`
	Status         Status      `json:"status"`
	Table          Table       `json:"table"`
	Items          []LineItem  `json:"items"`
	Totals         Totals      `json:"totals"`
	Notes          string      `json:"notes"`
	PromoApplied   bool        `json:"promoApplied"`
	PromoType      string      `json:"promoType"`
	PromoSource    *string     `json:"promoSource"`
	PromoDiscount  float64     `json:"promoDiscount"`
	PromoTimestamp time.Time   `json:"promoTimestamp"`
	PaidAt         *time.Time  `json:"paidAt,omitempty"`
	CancelledAt    *time.Time  `json:"cancelledAt,omitempty"`
	CancelReason   string      `json:"cancelReason,omitempty"`
}

// Snapshot returns the flat record of the order.
func (o *Order) Snapshot() Snapshot {
	var source *string
	if o.promo.Source != "" {
		s := o.promo.Source
		source = &s
	}

	return Snapshot{
		ID:             o.id,
		CreatedAt:      o.createdAt,
		Status:         o.status,
		Table:          o.table,
		Items:          cloneItems(o.items),
		Totals:         o.totals,
		Notes:          o.notes,
		PromoApplied:   o.promo.Applied,
		PromoType:      o.promo.Type,
		PromoSource:    source,
		PromoDiscount:  o.promo.Discount,
		PromoTimestamp: o.promo.Timestamp,
		PaidAt:         copyTime(o.paidAt),
		CancelledAt:    copyTime(o.cancelledAt),
		CancelReason:   o.cancelReason,
	}
}

// RestoreOrder rebuilds an order from a stored snapshot. Stored totals are taken as
// final: the promo discount is not applied a second time.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		notes:         s.Notes,
		paidAt:        copyTime(s.PaidAt),
		cancelledAt:   copyTime(s.CancelledAt),
		cancelReason:  s.CancelReason,
		isConstructed: true,
	}

	source := ""
	if s.PromoSource != nil {
		source = *s.PromoSource
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCreatedAt(s.CreatedAt),
		o.setStatus(s.Status),
		o.setTable(s.Table),
		o.setItems(s.Items),
		o.setTotals(s.Totals),
		o.setPromo(Promo{
			Applied:   s.PromoApplied,
			Discount:  s.PromoDiscount,
			Source:    source,
			Type:      s.PromoType,
			Timestamp: s.PromoTimestamp,
		}),
	); err != nil {
		return nil, err
	}

	return o, nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}
