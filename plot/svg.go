// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/aclements/go-moremath/scale"
)

// Qualitative palette from Color Brewer.
var Set1_9 = []color.Color{color.RGBA{228, 26, 28, 255}, color.RGBA{55, 126, 184, 255}, color.RGBA{77, 175, 74, 255}, color.RGBA{152, 78, 163, 255}, color.RGBA{255, 127, 0, 255}, color.RGBA{255, 255, 51, 255}, color.RGBA{166, 86, 40, 255}, color.RGBA{247, 129, 191, 255}, color.RGBA{153, 153, 153, 255}}

var pal = Set1_9

type Box struct {
	Top, Right, Bottom, Left float64
}

// Extents are the data ranges a panel needs to show.
type Extents struct {
	X, Y scale.Linear
}

// Scales map a panel's data space to SVG coordinates.
type Scales struct {
	X, Y scale.QQ

	// Outer is the SVG rectangle of the plot area.
	Outer Box
}

func expandScale(s *scale.Linear, min, max float64) {
	if s.Min == 0 && s.Max == 0 {
		s.Min, s.Max = min, max
	} else {
		s.Min = math.Min(s.Min, min)
		s.Max = math.Max(s.Max, max)
	}
}

const labelFontSize = 10
const labelFontHeight = labelFontSize * 5 / 4

// SVG accumulates the body of an SVG document.
type SVG struct {
	w   io.Writer
	gen int
}

func (s *SVG) Write(x []byte) (int, error) {
	return s.w.Write(x)
}

// GroupColor returns the fill color of the i'th group.
func (s *SVG) GroupColor(i int) string {
	return svgColor(pal[i%len(pal)])
}

// GroupColorAlpha is like GroupColor, but with the given opacity.
func (s *SVG) GroupColorAlpha(i int, alpha float64) string {
	r, g, b, _ := pal[i%len(pal)].RGBA()
	return svgColor(color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(math.Round(alpha * 255))})
}

func (s *SVG) GenID(prefix string) string {
	id := fmt.Sprintf("%s%d", prefix, s.gen)
	s.gen++
	return id
}

func mid(a, b float64) float64 {
	return (a + b) / 2
}

func svgColor(c color.Color) string {
	c2 := color.NRGBAModel.Convert(c).(color.NRGBA)
	if c2.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c2.R, c2.G, c2.B)
	} else {
		return fmt.Sprintf("rgba(%d,%d,%d,%f)", c2.R, c2.G, c2.B, float64(c2.A)/255)
	}
}

func svgPathRect(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M%f %fH%fV%fH%fz", x1, y1, x2, y2, x1)
}

var svgEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// svgText escapes s for use in SVG text content.
func svgText(s string) string {
	return svgEscaper.Replace(s)
}

type interval struct {
	start, end float64
}

func (in interval) mid() float64 {
	return (in.start + in.end) / 2
}

// A labelCluster is a run of adjacent label intervals laid out
// contiguously.
type labelCluster struct {
	first, n int
	height   float64 // Total height of the members
	midSum   float64 // Sum of the members' original midpoints
}

func (c labelCluster) start() float64 {
	return c.midSum/float64(c.n) - c.height/2
}

// spreadLabels moves ints, which must be sorted by start, apart until
// none overlap. Overlapping labels are stacked around the average of
// their original midpoints.
func spreadLabels(ints []interval) {
	orig := append([]interval(nil), ints...)
	var clusters []labelCluster
	for i, in := range orig {
		clusters = append(clusters, labelCluster{i, 1, in.end - in.start, in.mid()})
		// Merging can make a cluster collide with the one before
		// it, so keep merging down the stack.
		for len(clusters) > 1 {
			a, b := clusters[len(clusters)-2], clusters[len(clusters)-1]
			if a.start()+a.height <= b.start() {
				break
			}
			clusters = append(clusters[:len(clusters)-2], labelCluster{a.first, a.n + b.n, a.height + b.height, a.midSum + b.midSum})
		}
	}
	for _, c := range clusters {
		pos := c.start()
		for i := c.first; i < c.first+c.n; i++ {
			h := orig[i].end - orig[i].start
			ints[i] = interval{pos, pos + h}
			pos += h
		}
	}
}

// niceTicks returns about n evenly spaced round values covering
// [lo, hi].
func niceTicks(lo, hi float64, n int) []float64 {
	if hi <= lo || n < 1 {
		return []float64{lo}
	}
	raw := (hi - lo) / float64(n)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step := mag
	for _, m := range []float64{2, 5, 10} {
		if step >= raw {
			break
		}
		step = m * mag
	}
	var ticks []float64
	for i := math.Ceil(lo / step); i*step <= hi+step*1e-9; i++ {
		t := i * step
		if t == 0 {
			// Avoid printing -0.
			t = 0
		}
		ticks = append(ticks, t)
	}
	return ticks
}
