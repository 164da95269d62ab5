// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"sort"

	"github.com/greensoft-lab/energystat/energyfmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Histogram overlays the distribution of each group over a common set
// of equal-width bins.
type Histogram struct {
	groups []energyfmt.Group

	// Dividers are the bin edges. Bin i covers
	// [Dividers[i], Dividers[i+1]).
	Dividers []float64

	// Counts[g][i] is the number of values of group g in bin i.
	Counts [][]float64
}

// NewHistogram bins every group into the same bins equally spaced
// over the range of all values.
func NewHistogram(groups []energyfmt.Group, bins int) *Histogram {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, g := range groups {
		lo = math.Min(lo, floats.Min(g.Values))
		hi = math.Max(hi, floats.Max(g.Values))
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	// The last bin is closed so it includes the maximum.
	dividers[bins] = math.Nextafter(hi, math.Inf(1))

	h := &Histogram{groups: groups, Dividers: dividers}
	for _, g := range groups {
		xs := append([]float64(nil), g.Values...)
		sort.Float64s(xs)
		h.Counts = append(h.Counts, stat.Histogram(nil, dividers, xs, nil))
	}
	return h
}

func (h *Histogram) Title() string {
	return "Histogram"
}

func (h *Histogram) Extents(ext *Extents) {
	expandScale(&ext.X, h.Dividers[0], h.Dividers[len(h.Dividers)-1])
	var top float64
	for _, c := range h.Counts {
		top = math.Max(top, floats.Max(c))
	}
	expandScale(&ext.Y, 0, top)
}

func (h *Histogram) Ticks(ext *Extents, unit string) (x, y []Tick) {
	return energyTicks(ext.X.Min, ext.X.Max, unit), countTicks(ext.Y.Max)
}

func (h *Histogram) Render(svg *SVG, scales *Scales) {
	for g, counts := range h.Counts {
		fill := svg.GroupColorAlpha(g, 0.5)
		for i, n := range counts {
			if n == 0 {
				continue
			}
			x1, x2 := scales.X.Map(h.Dividers[i]), scales.X.Map(h.Dividers[i+1])
			fmt.Fprintf(svg, `  <path d="%s" fill="%s" stroke="%s" stroke-width="0.5px"><title>%s: %d</title></path>`+"\n",
				svgPathRect(x1, scales.Y.Map(0), x2, scales.Y.Map(n)), fill, svg.GroupColor(g), svgText(h.groups[g].Label.String()), int(n))
		}
	}
}
