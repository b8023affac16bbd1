// Package render converts rendered charts between output formats.
//
// # Overview
//
// Rendering lives in subpackages:
//
//   - [text]: markdown reports of charts and synastry
//   - [dot]: synastry aspect graphs as Graphviz DOT and SVG
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg).
//
//	svg, err := dot.RenderSVG(ctx, dot.Synastry(result, dot.Options{}))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [text]: github.com/matzehuels/jyotish/pkg/render/text
// [dot]: github.com/matzehuels/jyotish/pkg/render/dot
package render
