// Package services provides domain services that compute business results spanning
// more than one model package.
//
// The package includes:
//   - PromoDiscountCalculator: prices the pairing promotion of a set of line items
//     against the catalog
//
// Services are stateless and side-effect free; callers own persistence and time.
package services
