// Package pkg provides the core libraries of jyotish, a sidereal (Vedic)
// astrology engine.
//
// # Overview
//
// jyotish turns birth data into a sidereal chart and derives the rest from
// it: dignities, the sixteen divisional charts, the Vimshottari dasha
// timeline, the daily panchang and synastry between two to four people.
// Planet positions come from an external ephemeris; everything after that is
// pure computation.
//
// # Architecture
//
// The typical data flow:
//
//	BirthData
//	     ↓
//	[ephemeris] Resolver (remote service, static table, cache)
//	     ↓
//	[chart] (positions + [zodiac] placement + [dignity])
//	     ↓
//	[varga] · [dasha] · [panchang] · [synastry]
//	     ↓
//	[render/text], [render/dot], [io] JSON
//
// # Quick Start
//
//	resolver := static.Fixed(positions)
//	runner := pipeline.NewRunner(resolver, nil, nil, nil, nil)
//	defer runner.Close()
//
//	res, err := runner.Analyze(ctx, ephemeris.BirthData{
//	    Year: 1990, Month: 3, Day: 15, Hour: 9, Minute: 30,
//	    Latitude: 28.61, Longitude: 77.21, Timezone: "Asia/Kolkata",
//	}, pipeline.Options{})
//	fmt.Println(text.Chart(text.Report{Chart: res.Chart, Vargas: res.Vargas}))
//
// # Main Packages
//
// ## Domain
//
// [zodiac] - Signs, nakshatras, planets and the placement of a longitude.
//
// [dignity] - Exaltation, mooltrikona, own sign and friendship dignities.
//
// [chart] - A natal chart: ascendant, planet placements and whole-sign houses.
//
// [varga] - The sixteen divisional charts (D1 to D60) and vargottama.
//
// [dasha] - Vimshottari major and sub-periods.
//
// [panchang] - Tithi, nakshatra, yoga, karana and vara.
//
// [synastry] - Inter-chart aspects, house overlays and compatibility scores.
//
// ## Infrastructure
//
// [ephemeris] - The Resolver interface, with remote, static and timezone
// implementations in subpackages.
//
// [cache] - File, redis, mongo and null caches for resolved positions.
//
// [pipeline] - Orchestration used by the CLI and the HTTP API.
//
// [io] - Profile files (TOML and JSON) and JSON export.
//
// [errors] - Coded errors shared by every entry point.
//
// [observability] - Hooks for logging and metrics.
//
// ## Rendering
//
// [render/text] - Markdown reports.
//
// [render/dot] - Synastry aspect graphs via Graphviz.
//
// [render] - SVG to PDF and PNG conversion.
//
// [zodiac]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/zodiac
// [dignity]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/dignity
// [chart]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/chart
// [varga]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/varga
// [dasha]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/dasha
// [panchang]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/panchang
// [synastry]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/synastry
// [ephemeris]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/ephemeris
// [cache]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/cache
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/pipeline
// [io]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/observability
// [render/text]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/render/text
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/render/dot
// [render]: https://pkg.go.dev/github.com/matzehuels/jyotish/pkg/render
package pkg
