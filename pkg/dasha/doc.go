// Package dasha generates the Vimshottari period timeline.
//
// # Overview
//
// The timeline starts at the birth instant with the unexpired remainder of
// the Moon's nakshatra lord period (the balance), followed by the next eight
// lords of the 120-year sequence at their full lengths:
//
//	balance = lord_years × (1 − fraction_within_nakshatra)
//
// Years convert to elapsed time at 365.25 days per year.
//
// # Sub-periods
//
// Each major period of lord L and length Y splits into nine sub-periods that
// cycle the sequence starting at L itself, the sub-period of lord S lasting
// (years(S)/120) × Y. [Period.Antar] computes them on demand.
//
// # Current period
//
// [Timeline.Current] is a pure query over an explicit "now": it scans the
// major periods for the one containing now (bounds inclusive) and then its
// sub-periods. A now outside the generated horizon reports false rather than
// an error.
package dasha
