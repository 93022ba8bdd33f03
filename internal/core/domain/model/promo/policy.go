package promo

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"kitchenpos/internal/pkg/errs"
)

const (
	SourceNone     = ""
	SourceAuto     = "auto"
	SourceOverride = "override"

	DefaultTimeZone = "America/Mexico_City"
	DefaultWeekday  = time.Thursday
	DefaultCategory = "ramen"
	DefaultType     = "2x1"
)

// Evaluation is the outcome of applying a Policy to a State at an instant.
type Evaluation struct {
	Active                bool
	Source                string
	IsPromoDay            bool
	ManualOverrideEnabled bool
	Type                  string
	TZ                    string
	Now                   time.Time
	UpdatedAt             *time.Time
}

// Policy decides when the promotion applies and to which category.
type Policy struct {
	location *time.Location
	weekday  time.Weekday
	category string
	kind     string
}

// NewPolicy builds a policy. An empty tz, category or kind takes the default.
func NewPolicy(tz string, weekday time.Weekday, category, kind string) (*Policy, error) {
	if tz == "" {
		tz = DefaultTimeZone
	}
	location, err := time.LoadLocation(tz)
	if err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("promo time zone", err)
	}
	if weekday < time.Sunday || weekday > time.Saturday {
		return nil, errs.NewValueIsOutOfRangeError("promo weekday", int(weekday), int(time.Sunday), int(time.Saturday))
	}
	if category == "" {
		category = DefaultCategory
	}
	if kind == "" {
		kind = DefaultType
	}

	return &Policy{
		location: location,
		weekday:  weekday,
		category: category,
		kind:     kind,
	}, nil
}

// Evaluate reports whether the promotion is active at now.
// Auto activation wins over the override when both hold.
func (p *Policy) Evaluate(state State, now time.Time) Evaluation {
	isPromoDay := now.In(p.location).Weekday() == p.weekday

	source := SourceNone
	switch {
	case isPromoDay:
		source = SourceAuto
	case state.ManualOverrideEnabled:
		source = SourceOverride
	}

	return Evaluation{
		Active:                isPromoDay || state.ManualOverrideEnabled,
		Source:                source,
		IsPromoDay:            isPromoDay,
		ManualOverrideEnabled: state.ManualOverrideEnabled,
		Type:                  p.kind,
		TZ:                    p.location.String(),
		Now:                   now,
		UpdatedAt:             state.UpdatedAt,
	}
}

// EligibleCategory is the catalog category whose items are paired.
func (p *Policy) EligibleCategory() string {
	return p.category
}

// Type is the rule name frozen on discounted orders.
func (p *Policy) Type() string {
	return p.kind
}

// ParseWeekday accepts English weekday names in any case ("thursday", "Thu").
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultWeekday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] {
			return d, nil
		}
	}
	return time.Sunday, errs.NewValueIsInvalidErrorWithCause("promo weekday", fmt.Errorf("%q is not a weekday", s))
}
