// Package promo models the time-limited pairing promotion.
//
// The promotion is active automatically on the configured weekday in the restaurant's
// time zone, or at any time while a back-office operator keeps the manual override on.
// Policy is pure: it evaluates a State at an instant and never touches storage.
package promo
