// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot renders exploratory plots of energy measurements as
// SVG.
//
// Render draws a violin plot, a box plot, and a histogram of the
// groups side by side in one document. The plots are a view of the
// data only; they play no part in the comparison.
package plot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/aclements/go-moremath/scale"
	"github.com/greensoft-lab/energystat/energyfmt"
	"github.com/greensoft-lab/energystat/energyunit"
)

// Options configures Render.
type Options struct {
	// Unit is the energy unit of the values. If empty, joules are
	// assumed.
	Unit string

	// Bins is the number of histogram bins. If zero, DefaultBins
	// is used.
	Bins int

	// Title is an optional heading for the document.
	Title string
}

// DefaultBins is the default number of histogram bins.
const DefaultBins = 10

// A Panel is one plot in the document.
type Panel interface {
	Title() string

	// Extents expands ext to cover the panel's data.
	Extents(ext *Extents)

	// Ticks returns the axis ticks for the finished extents.
	Ticks(ext *Extents, unit string) (x, y []Tick)

	Render(svg *SVG, scales *Scales)
}

// A Keyer is a Panel that labels its groups to its right.
type Keyer interface {
	RenderKey(svg *SVG, x float64, y scale.QQ, lastRight float64, unit string) (right, bot float64)
}

// A Tick is a labeled position on an axis, in data coordinates.
type Tick struct {
	At    float64
	Label string
}

// Layout, in SVG pixels.
const (
	titleFontSize = 14
	panelWidth    = 220
	panelHeight   = 260
	panelTop      = 2 * titleFontSize
	axisLeft      = 72
	axisBottom    = 36
	panelGap      = 24
)

// Render writes an SVG document plotting groups to w. Every group must
// have at least one value.
func Render(w io.Writer, groups []energyfmt.Group, opts Options) error {
	if len(groups) == 0 {
		return errors.New("plot: no groups")
	}
	for _, g := range groups {
		if len(g.Values) == 0 {
			return fmt.Errorf("plot: %s has no values", g.Label)
		}
	}
	unit := opts.Unit
	if unit == "" {
		unit = energyunit.Joules
	}
	bins := opts.Bins
	if bins <= 0 {
		bins = DefaultBins
	}

	panels := []Panel{
		NewViolins(groups),
		NewBoxes(groups),
		NewHistogram(groups, bins),
	}

	svgBuf := new(bytes.Buffer)
	svg := &SVG{w: svgBuf}

	top := 0.0
	if opts.Title != "" {
		fmt.Fprintf(svg, `  <text x="%d" y="%d" font-size="%d" font-weight="bold">%s</text>`+"\n", panelGap, titleFontSize, titleFontSize, svgText(opts.Title))
		top = titleFontSize * 3 / 2
	}

	var left, maxBot float64
	for _, p := range panels {
		var ext Extents
		p.Extents(&ext)
		// Pad the data range so marks don't touch the frame.
		pad := (ext.Y.Max - ext.Y.Min) * 0.05
		if pad == 0 {
			pad = 1
		}
		ext.Y.Min -= pad
		ext.Y.Max += pad

		var scales Scales
		scales.Outer = Box{
			Top:    top + panelTop,
			Left:   left + axisLeft,
			Right:  left + axisLeft + panelWidth,
			Bottom: top + panelTop + panelHeight,
		}
		xOut := scale.Linear{Min: scales.Outer.Left, Max: scales.Outer.Right}
		yOut := scale.Linear{Min: scales.Outer.Bottom, Max: scales.Outer.Top}
		scales.X = scale.QQ{Src: &ext.X, Dest: &xOut}
		scales.Y = scale.QQ{Src: &ext.Y, Dest: &yOut}

		fmt.Fprintf(svg, `  <g class="panel" id="%s">`+"\n", svg.GenID("panel"))
		fmt.Fprintf(svg, `  <text x="%f" y="%f" font-size="%d" text-anchor="middle">%s</text>`+"\n", mid(scales.Outer.Left, scales.Outer.Right), top+titleFontSize, titleFontSize, svgText(p.Title()))
		xTicks, yTicks := p.Ticks(&ext, unit)
		renderAxes(svg, &scales, xTicks, yTicks)
		p.Render(svg, &scales)
		fmt.Fprintf(svg, "  </g>\n")

		right := scales.Outer.Right
		if k, ok := p.(Keyer); ok {
			kr, kb := k.RenderKey(svg, right+panelGap/2, scales.Y, right, unit)
			right = kr
			if kb > maxBot {
				maxBot = kb
			}
		}
		if bot := scales.Outer.Bottom + axisBottom; bot > maxBot {
			maxBot = bot
		}
		left = right + panelGap
	}

	_, err := fmt.Fprintf(w,
		`<svg version="1.1" width="%f" height="%f" xmlns="http://www.w3.org/2000/svg">
%s</svg>
`,
		left,
		maxBot,
		svgBuf.Bytes(),
	)
	return err
}

// renderAxes draws the frame of a panel with its tick marks and
// labels.
func renderAxes(svg *SVG, scales *Scales, xTicks, yTicks []Tick) {
	o := scales.Outer
	fmt.Fprintf(svg, `  <path d="%s" fill="none" stroke="black" stroke-width="1px" />`+"\n", svgPathRect(o.Left, o.Top, o.Right, o.Bottom))
	for _, t := range xTicks {
		x := scales.X.Map(t.At)
		fmt.Fprintf(svg, `  <path d="M%f %fV%f" stroke="black" stroke-width="1px" />`+"\n", x, o.Bottom, o.Bottom+4)
		fmt.Fprintf(svg, `  <text x="%f" y="%f" font-size="%d" text-anchor="middle">%s</text>`+"\n", x, o.Bottom+4+labelFontHeight, labelFontSize, svgText(t.Label))
	}
	for _, t := range yTicks {
		y := scales.Y.Map(t.At)
		fmt.Fprintf(svg, `  <path d="M%f %fH%f" stroke="black" stroke-width="1px" />`+"\n", o.Left-4, y, o.Left)
		fmt.Fprintf(svg, `  <text x="%f" y="%f" font-size="%d" text-anchor="end" dominant-baseline="central">%s</text>`+"\n", o.Left-6, y, labelFontSize, svgText(t.Label))
	}
}

// energyTicks returns labeled ticks spanning [lo, hi] in energy
// units, sharing one SI scale.
func energyTicks(lo, hi float64, unit string) []Tick {
	at := niceTicks(lo, hi, 5)
	sc := energyunit.CommonScale(at)
	ticks := make([]Tick, len(at))
	for i, v := range at {
		ticks[i] = Tick{v, sc.FormatUnit(v, unit)}
	}
	return ticks
}

// countTicks returns integer ticks spanning [0, hi].
func countTicks(hi float64) []Tick {
	var ticks []Tick
	for _, v := range niceTicks(0, hi, 4) {
		if v != float64(int(v)) {
			continue
		}
		ticks = append(ticks, Tick{v, strconv.Itoa(int(v))})
	}
	return ticks
}

// groupTicks labels the categorical positions 0 to len(groups)-1.
func groupTicks(groups []energyfmt.Group) []Tick {
	ticks := make([]Tick, len(groups))
	for i, g := range groups {
		ticks[i] = Tick{float64(i), g.Label.String()}
	}
	return ticks
}
