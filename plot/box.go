// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"sort"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
	"github.com/greensoft-lab/energystat/energyfmt"
	"github.com/greensoft-lab/energystat/energyunit"
)

// Boxes shows the quartiles of each group, with whiskers reaching the
// most extreme values within 1.5 interquartile ranges of the box and
// the remaining values drawn as outliers.
type Boxes struct {
	groups []energyfmt.Group
	stats  []BoxStats
}

// BoxStats summarizes one group for a box plot.
type BoxStats struct {
	Q1, Median, Q3 float64
	Lo, Hi         float64 // Whisker ends
	Outliers       []float64
}

// NewBoxStats computes box plot statistics of xs, which must not be
// empty.
func NewBoxStats(xs []float64) BoxStats {
	samp := stats.Sample{Xs: append([]float64(nil), xs...)}
	// Speed up order statistics.
	samp.Sort()
	b := BoxStats{
		Q1:     samp.Quantile(0.25),
		Median: samp.Quantile(0.5),
		Q3:     samp.Quantile(0.75),
	}
	iqr := b.Q3 - b.Q1
	loFence, hiFence := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.Lo, b.Hi = b.Q1, b.Q3
	for _, x := range samp.Xs {
		if x < loFence || x > hiFence {
			b.Outliers = append(b.Outliers, x)
			continue
		}
		if x < b.Lo {
			b.Lo = x
		}
		if x > b.Hi {
			b.Hi = x
		}
	}
	return b
}

func NewBoxes(groups []energyfmt.Group) *Boxes {
	b := &Boxes{groups: groups}
	for _, g := range groups {
		b.stats = append(b.stats, NewBoxStats(g.Values))
	}
	return b
}

func (b *Boxes) Title() string {
	return "Quartiles"
}

func (b *Boxes) Extents(ext *Extents) {
	expandScale(&ext.X, -0.5, float64(len(b.groups))-0.5)
	for _, s := range b.stats {
		lo, hi := s.Lo, s.Hi
		for _, x := range s.Outliers {
			lo, hi = min(lo, x), max(hi, x)
		}
		expandScale(&ext.Y, lo, hi)
	}
}

func (b *Boxes) Ticks(ext *Extents, unit string) (x, y []Tick) {
	return groupTicks(b.groups), energyTicks(ext.Y.Min, ext.Y.Max, unit)
}

func (b *Boxes) Render(svg *SVG, scales *Scales) {
	const halfWidth = 0.25
	for i, s := range b.stats {
		cx := float64(i)
		l, r := scales.X.Map(cx-halfWidth), scales.X.Map(cx+halfWidth)
		xm := scales.X.Map(cx)
		stroke := svg.GroupColor(i)

		// Whiskers.
		fmt.Fprintf(svg, `  <path d="M%f %fV%fM%f %fV%f" stroke="%s" stroke-width="1px" />`+"\n",
			xm, scales.Y.Map(s.Lo), scales.Y.Map(s.Q1), xm, scales.Y.Map(s.Q3), scales.Y.Map(s.Hi), stroke)
		for _, end := range []float64{s.Lo, s.Hi} {
			fmt.Fprintf(svg, `  <path d="M%f %fH%f" stroke="%s" stroke-width="1px" />`+"\n", mid(l, xm), scales.Y.Map(end), mid(xm, r), stroke)
		}

		// Box and median.
		fmt.Fprintf(svg, `  <path d="%s" fill="%s" stroke="%s" stroke-width="1px"><title>%s</title></path>`+"\n",
			svgPathRect(l, scales.Y.Map(s.Q3), r, scales.Y.Map(s.Q1)), svg.GroupColorAlpha(i, 0.4), stroke, svgText(b.groups[i].Label.String()))
		fmt.Fprintf(svg, `  <path d="M%f %fH%f" stroke="%s" stroke-width="2px" />`+"\n", l, scales.Y.Map(s.Median), r, stroke)

		for _, x := range s.Outliers {
			fmt.Fprintf(svg, `  <circle cx="%f" cy="%f" r="3" fill="none" stroke="%s" />`+"\n", xm, scales.Y.Map(x), stroke)
		}
	}
}

// RenderKey labels each group's median to the right of the panel.
func (b *Boxes) RenderKey(svg *SVG, x float64, y scale.QQ, lastRight float64, unit string) (right, bot float64) {
	const keyWidth = 150

	// Labels must be in increasing screen order to remove overlaps,
	// which is decreasing median order.
	order := make([]int, len(b.stats))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.stats[order[i]].Median > b.stats[order[j]].Median
	})

	intervals := make([]interval, len(order))
	for i, gi := range order {
		m := y.Map(b.stats[gi].Median)
		intervals[i] = interval{m - labelFontHeight/2, m + labelFontHeight/2}
	}
	spreadLabels(intervals)

	var medians []float64
	for _, s := range b.stats {
		medians = append(medians, s.Median)
	}
	sc := energyunit.CommonScale(medians)
	for i, gi := range order {
		in := intervals[i]
		m := y.Map(b.stats[gi].Median)
		label := fmt.Sprintf("%s %s", b.groups[gi].Label, sc.FormatUnit(b.stats[gi].Median, unit))
		fmt.Fprintf(svg, `  <text x="%f" y="%f" font-size="%d" dominant-baseline="central">%s</text>`+"\n", x+labelFontSize/2, in.mid(), labelFontSize, svgText(label))
		fmt.Fprintf(svg, `  <path d="M%f %fC%f %f,%f %f,%f %f" fill="none" stroke="%s" stroke-width="1px" />`+"\n",
			lastRight, m,
			mid(x, lastRight), m,
			mid(x, lastRight), in.mid(),
			x, in.mid(),
			svg.GroupColor(gi))
		if in.end > bot {
			bot = in.end
		}
	}
	return x + keyWidth, bot
}
