package services

import (
	"math"
	"sort"

	"kitchenpos/internal/core/domain/model/catalog"
	"kitchenpos/internal/core/domain/model/order"
)

// PromoDiscountCalculator computes the pairing discount: among the eligible units of an
// order, sorted by base price, every cheaper unit of a pair is free.
//
// Business rules:
//   - Only items whose catalog product belongs to the eligible category take part
//   - Each item contributes qty units at its base price (before extras)
//   - Units are paired from the cheapest up; the first of each pair is discounted
//   - An odd leftover unit, the most expensive, is never discounted
//
// Example usage:
//
//	calc := services.NewPromoDiscountCalculator("ramen")
//	discount := calc.Calculate(items, menu)
type PromoDiscountCalculator struct {
	category string
}

// NewPromoDiscountCalculator creates a calculator for the given catalog category.
func NewPromoDiscountCalculator(category string) PromoDiscountCalculator {
	return PromoDiscountCalculator{category: category}
}

// Calculate returns the discount for items. Non-finite or non-positive results are 0.
func (c PromoDiscountCalculator) Calculate(items []order.LineItem, menu catalog.Menu) float64 {
	var prices []float64
	for _, item := range items {
		product, ok := menu.ProductByID(item.ProductID)
		if !ok || product.Category != c.category {
			continue
		}
		base := ResolveBasePrice(item, product)
		for range item.Qty {
			prices = append(prices, base)
		}
	}

	discount := PairedDiscount(prices)
	if math.IsNaN(discount) || math.IsInf(discount, 0) || discount <= 0 {
		return 0
	}
	return discount
}

// PairedDiscount sorts prices ascending and sums the entries at even indices that
// still have a partner at the next index.
//
//	[100, 120, 150, 150] -> 100 + 150 = 250
//	[100, 150, 200]      -> 100
func PairedDiscount(prices []float64) float64 {
	sorted := append([]float64(nil), prices...)
	sort.Float64s(sorted)

	total := 0.0
	for i := 0; i+1 < len(sorted); i += 2 {
		total += sorted[i]
	}
	return total
}

// ResolveBasePrice finds the unit price of item before extras. It prefers the catalog
// (size table, then flat price), then the submitted base price, and finally derives it
// from the unit price minus extras, floored at zero.
func ResolveBasePrice(item order.LineItem, product catalog.Product) float64 {
	if price, ok := product.BasePrice(item.Size()); ok && isFinite(price) {
		return price
	}
	if item.BasePrice != nil && isFinite(*item.BasePrice) {
		return *item.BasePrice
	}
	return math.Max(0, item.UnitPrice-item.ExtrasTotal())
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
