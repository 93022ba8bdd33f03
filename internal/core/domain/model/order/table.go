package order

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"kitchenpos/internal/pkg/errs"
)

const (
	// TakeAway is the stored designator for orders that leave the restaurant.
	TakeAway = "PL"

	// takeAwayLabel is the long form accepted from waiter terminals.
	takeAwayLabel = "Para llevar"

	MinTable = 1
	MaxTable = 10
)

var ErrTableIsNotConstructed = errors.New("Table must be created via NewTable or TableFromValue")

// Table is the normalized seating designator of an order: a dine-in table number
// stored as its decimal string ("1".."10") or the TakeAway sentinel.
type Table struct {
	value string
}

// NewTable normalizes a raw designator. Numbers may carry surrounding blanks or an
// integral fraction ("7", " 7 ", "7.0"); TakeAway and its long label are accepted.
func NewTable(raw string) (Table, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Table{}, errs.NewValueIsRequiredError("table")
	}
	if raw == TakeAway || raw == takeAwayLabel {
		return Table{value: TakeAway}, nil
	}

	number, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Table{}, errs.NewValueIsInvalidErrorWithCause("table", fmt.Errorf("%q is neither a table number nor %q", raw, TakeAway))
	}
	return tableFromNumber(number)
}

// TableFromValue normalizes a decoded JSON value: a string, any numeric type, or nil.
func TableFromValue(v any) (Table, error) {
	switch value := v.(type) {
	case nil:
		return Table{}, errs.NewValueIsRequiredError("table")
	case string:
		return NewTable(value)
	case float64:
		return tableFromNumber(value)
	case float32:
		return tableFromNumber(float64(value))
	case int:
		return tableFromNumber(float64(value))
	case int64:
		return tableFromNumber(float64(value))
	case int32:
		return tableFromNumber(float64(value))
	default:
		return Table{}, errs.NewValueIsInvalidErrorWithCause("table", fmt.Errorf("unsupported table value %v (%T)", v, v))
	}
}

func tableFromNumber(number float64) (Table, error) {
	if math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return Table{}, errs.NewValueIsInvalidErrorWithCause("table", fmt.Errorf("%v is not an integer", number))
	}
	if number < MinTable || number > MaxTable {
		return Table{}, errs.NewValueIsOutOfRangeError("table", number, MinTable, MaxTable)
	}
	return Table{value: strconv.Itoa(int(number))}, nil
}

// Validate ensures the table was produced by one of the constructors.
func (t Table) Validate() error {
	if t.value == "" {
		return ErrTableIsNotConstructed
	}
	return nil
}

// IsTakeAway reports whether the order leaves the restaurant.
func (t Table) IsTakeAway() bool {
	return t.value == TakeAway
}

func (t Table) String() string {
	return t.value
}

// MarshalText implements encoding.TextMarshaler.
func (t Table) MarshalText() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return []byte(t.value), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Table) UnmarshalText(data []byte) error {
	parsed, err := NewTable(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
