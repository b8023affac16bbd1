// Package varga computes the sixteen divisional charts (shodasavargas).
//
// # Overview
//
// A divisional chart of factor D splits every sign into D parts and maps the
// part a placement falls in to a new sign. For most charts the mapping is
//
//	part        = floor(degree / (30/D))
//	result_sign = (start_sign(sign) + part) mod 12
//
// and the charts differ only in how start_sign is chosen. Each choice is a
// [Rule] variant holding its own parameter table:
//
//   - [Self]: the sign itself (D1)
//   - [Hora]: Leo or Cancer only, by half and sign parity (D2)
//   - [Triplicity]: one [Anchor] per movable/fixed/dual group (D4, D16, D20, D45)
//   - [Quadruplicity]: one [Anchor] per element (D9, D27)
//   - [OddEven]: one [Anchor] for odd and one for even signs, with a step
//     between parts (D3, D7, D10, D12, D24, D40, D60)
//   - [Trimsamsa]: unequal cumulative spans mapped to fixed signs (D30)
//
// # Ascendant and houses
//
// Each divisional chart re-projects the natal ascendant with the same rule
// rather than inheriting it, then assigns whole-sign houses from that
// ascendant exactly as the natal chart does. Every placement keeps the natal
// degree it was projected from.
//
// # Usage
//
//	vargas := varga.ComputeAll(c)
//	d9 := vargas[varga.D9]
//	for _, p := range varga.Vargottama(vargas) {
//	    fmt.Println(p, "is vargottama")
//	}
//
// [Compute] and [ComputeAll] are pure. ComputeAll evaluates the sixteen
// charts independently, so callers may parallelize over [Codes] with
// [Compute] instead.
package varga
