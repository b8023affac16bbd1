// Package panchang computes the five daily indicators: tithi, nakshatra,
// yoga, karana and vara.
//
// All angular indicators derive from the sidereal Sun and Moon longitudes:
//
//	tithi  = ⌊((moon − sun) mod 360) / 12⌋ + 1      1..30
//	karana = ⌊((moon − sun) mod 360) / 6⌋ + 1       1..60
//	yoga   = ⌊((sun + moon) mod 360) / (360/27)⌋    0..26
//
// The vara is the lord of the civil weekday of the date passed to [Compute].
package panchang
