// Package synastry compares two to four natal charts.
//
// # Aspects
//
// For every cross pair of planets the shortest arc between their longitudes
// (in [0,180]) is matched against a fixed table, first match wins:
//
//	Conjunction    0°  orb 8  powerful
//	Sextile       60°  orb 4  harmonious
//	Square        90°  orb 6  challenging
//	Trine        120°  orb 6  harmonious
//	Opposition   180°  orb 8  challenging
//
// Classification depends only on the absolute separation, so swapping the
// two planets yields the same aspect with its endpoints swapped.
//
// # Tags and score
//
// Aspects are tagged romantic, karmic, emotional, mental or spiritual when
// either endpoint belongs to the matching significator list, and harmonious
// or challenging by nature. The pair score is
//
//	clamp(0, 100, 50 + 10×harmonious − 5×challenging + 5×romantic)
//
// # Overlays
//
// Each planet of one person is also placed in the whole-sign houses of the
// other person's chart.
package synastry
