package order

import (
	"errors"
	"fmt"
	"math"

	"kitchenpos/internal/pkg/errs"
)

// Extra is a nested product added on top of a customized line item.
type Extra struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Qty       int     `json:"qty"`
	UnitPrice float64 `json:"unitPrice"`
}

// Customization carries the structured options of a line item.
type Customization struct {
	Size   string  `json:"size,omitempty"`
	Spicy  *int    `json:"spicy,omitempty"`
	Extras []Extra `json:"extras,omitempty"`
}

// LineItem is one product entry of an order. UnitPrice already includes extras;
// BasePrice, when sent, is the price before extras.
type LineItem struct {
	ProductID string         `json:"productId"`
	Name      string         `json:"name,omitempty"`
	Qty       int            `json:"qty"`
	UnitPrice float64        `json:"unitPrice"`
	BasePrice *float64       `json:"basePrice,omitempty"`
	Meta      *Customization `json:"meta,omitempty"`
}

// Validate checks product reference, quantity and prices of the item and its extras.
// position is the zero-based index used in error messages.
func (i LineItem) Validate(position int) error {
	param := fmt.Sprintf("items[%d]", position)
	var problems []error

	if i.ProductID == "" {
		problems = append(problems, errs.NewValueIsRequiredError(param+".productId"))
	}
	if i.Qty <= 0 {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(param+".qty", fmt.Errorf("%d is not greater than 0", i.Qty)))
	}
	if !isPrice(i.UnitPrice) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(param+".unitPrice", fmt.Errorf("%v is not a finite non-negative amount", i.UnitPrice)))
	}
	if i.BasePrice != nil && !isPrice(*i.BasePrice) {
		problems = append(problems, errs.NewValueIsInvalidErrorWithCause(param+".basePrice", fmt.Errorf("%v is not a finite non-negative amount", *i.BasePrice)))
	}
	if i.Meta != nil {
		for j, extra := range i.Meta.Extras {
			extraParam := fmt.Sprintf("%s.meta.extras[%d]", param, j)
			if extra.ProductID == "" {
				problems = append(problems, errs.NewValueIsRequiredError(extraParam+".productId"))
			}
			if extra.Qty <= 0 {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(extraParam+".qty", fmt.Errorf("%d is not greater than 0", extra.Qty)))
			}
			if !isPrice(extra.UnitPrice) {
				problems = append(problems, errs.NewValueIsInvalidErrorWithCause(extraParam+".unitPrice", fmt.Errorf("%v is not a finite non-negative amount", extra.UnitPrice)))
			}
		}
	}

	return errors.Join(problems...)
}

// ExtrasTotal is the price of the extras attached to one unit of the item.
func (i LineItem) ExtrasTotal() float64 {
	if i.Meta == nil {
		return 0
	}
	total := 0.0
	for _, extra := range i.Meta.Extras {
		total += extra.UnitPrice * float64(extra.Qty)
	}
	return total
}

// Size returns the selected size, or "" when the item is not sized.
func (i LineItem) Size() string {
	if i.Meta == nil {
		return ""
	}
	return i.Meta.Size
}

// LineTotal is UnitPrice times Qty.
func (i LineItem) LineTotal() float64 {
	return i.UnitPrice * float64(i.Qty)
}

func cloneItems(items []LineItem) []LineItem {
	cloned := make([]LineItem, len(items))
	for idx, item := range items {
		if item.BasePrice != nil {
			base := *item.BasePrice
			item.BasePrice = &base
		}
		if item.Meta != nil {
			meta := *item.Meta
			if meta.Spicy != nil {
				spicy := *meta.Spicy
				meta.Spicy = &spicy
			}
			if meta.Extras != nil {
				meta.Extras = append([]Extra(nil), meta.Extras...)
			}
			item.Meta = &meta
		}
		cloned[idx] = item
	}
	return cloned
}

func isPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
