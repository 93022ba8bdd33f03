package http

import (
	"time"

	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/model/promo"
)

// nowISOLayout matches JavaScript's Date.toISOString, which the terminals parse.
const nowISOLayout = "2006-01-02T15:04:05.000Z07:00"

// Error is the body of every non-2xx response.
type Error struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

// Totals as submitted by a waiter terminal. Both fields are optional on the wire;
// the command decides which are mandatory.
type Totals struct {
	Subtotal *float64 `json:"subtotal"`
	Total    *float64 `json:"total"`
}

// NewOrder is the body of POST /api/orders. Table is decoded loosely because terminals
// send both numbers and strings. Older terminals send "note" instead of "notes".
type NewOrder struct {
	Table  any              `json:"table"`
	Items  []order.LineItem `json:"items"`
	Totals *Totals          `json:"totals"`
	Notes  *string          `json:"notes"`
	Note   *string          `json:"note"`
}

func (o NewOrder) notes() string {
	switch {
	case o.Notes != nil:
		return *o.Notes
	case o.Note != nil:
		return *o.Note
	default:
		return ""
	}
}

// StatusChange is the body of PATCH /api/orders/{id}.
type StatusChange struct {
	Status       string `json:"status"`
	CancelReason string `json:"cancelReason"`
}

// PromoOverrideRequest is the body of POST /api/promo/override.
type PromoOverrideRequest struct {
	Enabled     bool   `json:"enabled"`
	ConfirmText string `json:"confirmText"`
}

// PromoStatus is the promotion view shared by GET /api/promo and the override endpoint.
type PromoStatus struct {
	IsPromoDayNow         bool       `json:"isPromoDayNow"`
	ManualOverrideEnabled bool       `json:"manualOverrideEnabled"`
	PromoActive           bool       `json:"promoActive"`
	PromoSource           *string    `json:"promoSource"`
	TZ                    string     `json:"tz"`
	NowISO                string     `json:"nowISO"`
	PromoType             string     `json:"promoType"`
	UpdatedAt             *time.Time `json:"updatedAt"`
}

func newPromoStatus(ev promo.Evaluation) PromoStatus {
	var source *string
	if ev.Source != promo.SourceNone {
		s := ev.Source
		source = &s
	}
	return PromoStatus{
		IsPromoDayNow:         ev.IsPromoDay,
		ManualOverrideEnabled: ev.ManualOverrideEnabled,
		PromoActive:           ev.Active,
		PromoSource:           source,
		TZ:                    ev.TZ,
		NowISO:                ev.Now.UTC().Format(nowISOLayout),
		PromoType:             ev.Type,
		UpdatedAt:             ev.UpdatedAt,
	}
}
