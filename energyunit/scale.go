// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyunit

import (
	"math"
	"strconv"
)

// A Scaler formats numbers with a fixed SI prefix and precision.
type Scaler struct {
	Prec   int     // Digits after the decimal point
	Factor float64 // Value of one Prefix, such as 1000 for "k"
	Prefix string  // SI prefix
}

// Format formats val followed directly by the scaler's prefix, as in
// "1.20k".
func (s Scaler) Format(val float64) string {
	return string(s.append(nil, val))
}

// FormatUnit formats val followed by a space and the prefixed unit,
// as in "1.20 kJ".
func (s Scaler) FormatUnit(val float64, unit string) string {
	buf := strconv.AppendFloat(make([]byte, 0, 24), val/s.Factor, 'f', s.Prec, 64)
	if s.Prefix+unit != "" {
		buf = append(buf, ' ')
	}
	return string(append(append(buf, s.Prefix...), unit...))
}

func (s Scaler) append(buf []byte, val float64) []byte {
	buf = strconv.AppendFloat(buf, val/s.Factor, 'f', s.Prec, 64)
	return append(buf, s.Prefix...)
}

// An siPrefix is a scale together with the smallest magnitudes that
// print with three, two, and one digits before the decimal point.
type siPrefix struct {
	factor float64
	name   string
	bounds [3]float64 // Smallest values printed with 0, 1, and 2 decimals
}

var siPrefixes = func() []siPrefix {
	names := []string{"T", "G", "M", "k", "", "m", "µ", "n"}
	prefixes := make([]siPrefix, len(names))
	for i, name := range names {
		exp := 12 - 3*i
		p := siPrefix{factor: math.Pow10(exp), name: name}
		// Parse the rounding boundaries from their decimal form so
		// they agree exactly with how AppendFloat rounds.
		for prec, mant := range []string{"99.95", "9.995", ".9995"} {
			p.bounds[prec], _ = strconv.ParseFloat(mant+"e"+strconv.Itoa(exp), 64)
		}
		prefixes[i] = p
	}
	return prefixes
}()

// CommonScale returns a Scaler that shows every value in vals with at
// least three significant digits. The value closest to zero picks
// the prefix.
func CommonScale(vals []float64) Scaler {
	smallest := math.Inf(1)
	for _, v := range vals {
		if v = math.Abs(v); v != 0 {
			smallest = math.Min(smallest, v)
		}
	}
	if math.IsInf(smallest, 1) {
		return Scaler{Prec: 2, Factor: 1}
	}

	for _, p := range siPrefixes {
		for prec, min := range p.bounds {
			if smallest >= min {
				return Scaler{prec, p.factor, p.name}
			}
		}
	}
	// Below the smallest prefix.
	last := siPrefixes[len(siPrefixes)-1]
	return Scaler{2, last.factor, last.name}
}
