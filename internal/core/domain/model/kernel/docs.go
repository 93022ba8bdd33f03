// Package kernel provides core domain primitives shared by every aggregate of the
// order lifecycle service.
//
// The package includes:
//   - UUID: A time-ordered identifier value object with validation and text encoding
//   - Clock: The time source injected into handlers and policies so that weekday
//     promotions and grace periods can be tested deterministically
//
// These primitives are immutable and safe for concurrent use.
package kernel
