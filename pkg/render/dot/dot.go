// Package dot renders synastry results as aspect graphs.
//
// # Overview
//
// Every person becomes a cluster of planet nodes, and every inter-chart
// aspect an undirected edge colored by its nature: green for harmonious,
// red for challenging and blue for conjunctions.
//
// # Usage
//
//	src := dot.Synastry(result, dot.Options{Tags: []synastry.Tag{synastry.Romantic}})
//	svg, err := dot.RenderSVG(ctx, src)
//
// The DOT source can also be saved and processed with external Graphviz
// tools.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jyotish/pkg/synastry"
	"github.com/matzehuels/jyotish/pkg/zodiac"
)

// Options configures aspect graph rendering.
type Options struct {
	// Tags keeps only aspects carrying at least one of the tags. Empty keeps
	// every aspect.
	Tags []synastry.Tag

	// MaxOrb drops aspects looser than this many degrees. Zero keeps all.
	MaxOrb float64

	// Detailed adds the orb to edge labels.
	Detailed bool
}

var natureColors = map[synastry.Nature]string{
	synastry.Powerful:    "#4a90d9",
	synastry.Harmonious:  "#3a9d5d",
	synastry.Challenging: "#c0392b",
}

// Synastry converts a comparison to Graphviz DOT.
func Synastry(res synastry.Result, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [fontsize=10];\n")

	used := usedNodes(res, opts)
	for i, p := range res.People {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", p.Label)
		for _, pl := range zodiac.Planets {
			id := nodeID(p.Label, pl)
			if !used[id] {
				continue
			}
			fmt.Fprintf(&buf, "    %q [label=%q];\n", id, pl.String())
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for _, pair := range res.Pairs {
		for _, a := range pair.Aspects {
			if !keep(a, opts) {
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n",
				nodeID(a.Person1, a.Planet1), nodeID(a.Person2, a.Planet2),
				strings.Join(edgeAttrs(a, opts.Detailed), ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func usedNodes(res synastry.Result, opts Options) map[string]bool {
	used := make(map[string]bool)
	for _, pair := range res.Pairs {
		for _, a := range pair.Aspects {
			if keep(a, opts) {
				used[nodeID(a.Person1, a.Planet1)] = true
				used[nodeID(a.Person2, a.Planet2)] = true
			}
		}
	}
	return used
}

func keep(a synastry.Aspect, opts Options) bool {
	if opts.MaxOrb > 0 && a.Deviation > opts.MaxOrb {
		return false
	}
	if len(opts.Tags) == 0 {
		return true
	}
	return slices.ContainsFunc(opts.Tags, a.Has)
}

func nodeID(label string, p zodiac.Planet) string {
	return label + ":" + p.String()
}

func edgeAttrs(a synastry.Aspect, detailed bool) []string {
	label := a.Name
	if detailed {
		label += fmt.Sprintf(" %.1f°", a.Deviation)
	}
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("color=%q", natureColors[a.Nature]),
	}
	if a.Nature == synastry.Challenging {
		attrs = append(attrs, "style=dashed")
	}
	// Tighter orbs draw heavier edges.
	width := max(1, 3-a.Deviation/3)
	attrs = append(attrs, "penwidth="+strconv.FormatFloat(width, 'f', 1, 64))
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
