package services_test

import (
	"testing"

	"kitchenpos/internal/core/domain/model/catalog"
	"kitchenpos/internal/core/domain/model/order"
	"kitchenpos/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func testMenu() catalog.Menu {
	return catalog.Menu{Products: []catalog.Product{
		{ID: "shoyu", Name: "Shoyu", Category: "ramen", Prices: map[string]float64{"chico": 100, "grande": 150}},
		{ID: "tonkotsu", Name: "Tonkotsu", Category: "ramen", Price: ptr(120)},
		{ID: "custom", Name: "Ramen del chef", Category: "ramen"},
		{ID: "gyoza", Name: "Gyoza", Category: "entradas", Price: ptr(60)},
		{ID: "huevo", Name: "Huevo", Category: "extras", Price: ptr(20)},
	}}
}

func TestPairedDiscount(t *testing.T) {
	tests := []struct {
		name     string
		prices   []float64
		expected float64
	}{
		{name: "empty", prices: nil, expected: 0},
		{name: "single unit", prices: []float64{150}, expected: 0},
		{name: "one pair", prices: []float64{150, 100}, expected: 100},
		{name: "two pairs", prices: []float64{150, 100, 150, 120}, expected: 250},
		{name: "odd leftover is the most expensive", prices: []float64{200, 100, 150}, expected: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, services.PairedDiscount(tt.prices))
		})
	}
}

func TestPairedDiscount_DoesNotMutateInput(t *testing.T) {
	prices := []float64{3, 1, 2}

	services.PairedDiscount(prices)

	assert.Equal(t, []float64{3, 1, 2}, prices)
}

func TestResolveBasePrice(t *testing.T) {
	menu := testMenu()
	shoyu, _ := menu.ProductByID("shoyu")
	tonkotsu, _ := menu.ProductByID("tonkotsu")
	custom, _ := menu.ProductByID("custom")

	t.Run("should use catalog size price", func(t *testing.T) {
		item := order.LineItem{ProductID: "shoyu", Qty: 1, UnitPrice: 190, Meta: &order.Customization{Size: "grande"}}

		assert.Equal(t, 150.0, services.ResolveBasePrice(item, shoyu))
	})

	t.Run("should use catalog flat price", func(t *testing.T) {
		item := order.LineItem{ProductID: "tonkotsu", Qty: 1, UnitPrice: 140, BasePrice: ptr(999)}

		assert.Equal(t, 120.0, services.ResolveBasePrice(item, tonkotsu))
	})

	t.Run("should use submitted base price when catalog has none", func(t *testing.T) {
		item := order.LineItem{ProductID: "custom", Qty: 1, UnitPrice: 180, BasePrice: ptr(130)}

		assert.Equal(t, 130.0, services.ResolveBasePrice(item, custom))
	})

	t.Run("should derive from unit price minus extras", func(t *testing.T) {
		item := order.LineItem{
			ProductID: "custom", Qty: 1, UnitPrice: 180,
			Meta: &order.Customization{Extras: []order.Extra{{ProductID: "huevo", Qty: 2, UnitPrice: 20}}},
		}

		assert.Equal(t, 140.0, services.ResolveBasePrice(item, custom))
	})

	t.Run("should floor derived price at zero", func(t *testing.T) {
		item := order.LineItem{
			ProductID: "custom", Qty: 1, UnitPrice: 10,
			Meta: &order.Customization{Extras: []order.Extra{{ProductID: "huevo", Qty: 1, UnitPrice: 20}}},
		}

		assert.Equal(t, 0.0, services.ResolveBasePrice(item, custom))
	})
}

func TestPromoDiscountCalculator_Calculate(t *testing.T) {
	calc := services.NewPromoDiscountCalculator("ramen")
	menu := testMenu()

	t.Run("should pair eligible units across items", func(t *testing.T) {
		items := []order.LineItem{
			{ProductID: "shoyu", Qty: 2, UnitPrice: 150, Meta: &order.Customization{Size: "grande"}},
			{ProductID: "shoyu", Qty: 1, UnitPrice: 100, Meta: &order.Customization{Size: "chico"}},
			{ProductID: "tonkotsu", Qty: 1, UnitPrice: 120},
			{ProductID: "gyoza", Qty: 4, UnitPrice: 60},
		}

		// units: 100, 120, 150, 150
		assert.Equal(t, 250.0, calc.Calculate(items, menu))
	})

	t.Run("should ignore extras when pricing units", func(t *testing.T) {
		items := []order.LineItem{
			{
				ProductID: "tonkotsu", Qty: 1, UnitPrice: 160,
				Meta: &order.Customization{Extras: []order.Extra{{ProductID: "huevo", Qty: 2, UnitPrice: 20}}},
			},
			{ProductID: "tonkotsu", Qty: 1, UnitPrice: 120},
		}

		assert.Equal(t, 120.0, calc.Calculate(items, menu))
	})

	t.Run("should return zero without eligible pair", func(t *testing.T) {
		items := []order.LineItem{
			{ProductID: "tonkotsu", Qty: 1, UnitPrice: 120},
			{ProductID: "gyoza", Qty: 3, UnitPrice: 60},
		}

		assert.Equal(t, 0.0, calc.Calculate(items, menu))
	})

	t.Run("should skip products missing from the catalog", func(t *testing.T) {
		items := []order.LineItem{{ProductID: "ghost", Qty: 2, UnitPrice: 100}}

		assert.Equal(t, 0.0, calc.Calculate(items, menu))
	})
}
