// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"math"
	"strings"

	"github.com/aclements/go-moremath/stats"
	"github.com/greensoft-lab/energystat/energyfmt"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// violinPoints is the number of points at which each density is
// evaluated.
const violinPoints = 64

// Violins shows a kernel density estimate of each group, mirrored
// around the group's position.
type Violins struct {
	groups []energyfmt.Group
	shapes []violinShape
}

type violinShape struct {
	ys, dens []float64 // density dens[i] at energy ys[i]
	// flat is set if the group has no spread; it is drawn as a line
	// at ys[0].
	flat bool
}

// NewViolins estimates the density of each group with a Gaussian
// kernel and Scott's rule bandwidth.
func NewViolins(groups []energyfmt.Group) *Violins {
	v := &Violins{groups: groups}
	var maxDens float64
	for _, g := range groups {
		sd := stats.StdDev(g.Values)
		if len(g.Values) < 2 || sd == 0 || math.IsNaN(sd) {
			v.shapes = append(v.shapes, violinShape{ys: []float64{g.Values[0]}, flat: true})
			continue
		}
		bw := 1.06 * sd * math.Pow(float64(len(g.Values)), -0.2)
		lo, hi := floats.Min(g.Values)-2*bw, floats.Max(g.Values)+2*bw
		ys := floats.Span(make([]float64, violinPoints), lo, hi)
		dens := make([]float64, violinPoints)
		for i, y := range ys {
			dens[i] = kde(g.Values, bw, y)
		}
		maxDens = math.Max(maxDens, floats.Max(dens))
		v.shapes = append(v.shapes, violinShape{ys: ys, dens: dens})
	}
	// Scale all densities together so widths are comparable.
	if maxDens > 0 {
		for _, s := range v.shapes {
			floats.Scale(1/maxDens, s.dens)
		}
	}
	return v
}

// kde evaluates a Gaussian kernel density estimate of xs with
// bandwidth bw at y.
func kde(xs []float64, bw, y float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += distuv.Normal{Mu: x, Sigma: bw}.Prob(y)
	}
	return sum / float64(len(xs))
}

func (v *Violins) Title() string {
	return "Density"
}

func (v *Violins) Extents(ext *Extents) {
	expandScale(&ext.X, -0.5, float64(len(v.groups))-0.5)
	for _, s := range v.shapes {
		expandScale(&ext.Y, s.ys[0], s.ys[len(s.ys)-1])
	}
}

func (v *Violins) Ticks(ext *Extents, unit string) (x, y []Tick) {
	return groupTicks(v.groups), energyTicks(ext.Y.Min, ext.Y.Max, unit)
}

func (v *Violins) Render(svg *SVG, scales *Scales) {
	const halfWidth = 0.4
	for i, s := range v.shapes {
		fill := svg.GroupColorAlpha(i, 0.6)
		stroke := svg.GroupColor(i)
		cx := float64(i)
		title := svgText(v.groups[i].Label.String())
		if s.flat {
			fmt.Fprintf(svg, `  <path d="M%f %fH%f" stroke="%s" stroke-width="2px"><title>%s</title></path>`+"\n", scales.X.Map(cx-halfWidth), scales.Y.Map(s.ys[0]), scales.X.Map(cx+halfWidth), stroke, title)
			continue
		}
		var path strings.Builder
		for j, y := range s.ys {
			op := "L"
			if j == 0 {
				op = "M"
			}
			fmt.Fprintf(&path, "%s%f %f", op, scales.X.Map(cx-halfWidth*s.dens[j]), scales.Y.Map(y))
		}
		for j := len(s.ys) - 1; j >= 0; j-- {
			fmt.Fprintf(&path, "L%f %f", scales.X.Map(cx+halfWidth*s.dens[j]), scales.Y.Map(s.ys[j]))
		}
		path.WriteString("z")
		fmt.Fprintf(svg, `  <path d="%s" fill="%s" stroke="%s" stroke-width="1px"><title>%s</title></path>`+"\n", path.String(), fill, stroke, title)

		// Mark each run.
		for _, x := range v.groups[i].Values {
			fmt.Fprintf(svg, `  <circle cx="%f" cy="%f" r="1.5" fill="black" />`+"\n", scales.X.Map(cx), scales.Y.Map(x))
		}
	}
}
