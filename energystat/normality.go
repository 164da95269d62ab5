// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energystat

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroWilkTest names the normality test in results.
const ShapiroWilkTest = "Shapiro-Wilk"

// Range of sample sizes over which Royston's approximation holds.
const (
	MinNormalitySamples = 3
	MaxNormalitySamples = 5000
)

// A NormalityVerdict is the outcome of testing one sample for
// normality. Normal is true when the test fails to reject normality
// at the given alpha; it is not proof that the sample is normal.
type NormalityVerdict struct {
	Sample string  `json:"sample"`
	Test   string  `json:"test"`
	N      int     `json:"n"`
	W      float64 `json:"w"`
	P      float64 `json:"p"`
	Alpha  float64 `json:"alpha"`
	Normal bool    `json:"normal"`
}

// CheckNormality tests s with the Shapiro-Wilk test. s must have at
// least MinNormalitySamples values.
func CheckNormality(s Sample, alpha float64) (NormalityVerdict, error) {
	if len(s.Xs) < MinNormalitySamples {
		return NormalityVerdict{}, &InsufficientSampleError{Sample: s.Name, N: len(s.Xs), Min: MinNormalitySamples}
	}
	w, p, err := ShapiroWilk(s.Xs)
	if err != nil {
		return NormalityVerdict{}, &TestError{Test: ShapiroWilkTest, Err: err}
	}
	return NormalityVerdict{
		Sample: s.Name,
		Test:   ShapiroWilkTest,
		N:      len(s.Xs),
		W:      w,
		P:      p,
		Alpha:  alpha,
		Normal: p >= alpha,
	}, nil
}

// Polynomial coefficients of Royston (1995), algorithm AS R94.
var (
	swC1 = []float64{0, 0.221157, -0.147981, -2.071190, 4.434685, -2.706056}
	swC2 = []float64{0, 0.042981, -0.293762, -1.752461, 5.682633, -3.582633}
	swC3 = []float64{0.5440, -0.39978, 0.025054, -6.714e-4}
	swC4 = []float64{1.3822, -0.77857, 0.062767, -0.0020322}
	swC5 = []float64{-1.5861, -0.31082, -0.083751, 0.0038915}
	swC6 = []float64{-0.4803, -0.082676, 0.0030302}
	swG  = []float64{-2.273, 0.459}
)

// swTinyP stands in for p-values too small for the approximation.
const swTinyP = 1e-99

// poly evaluates the polynomial with coefficients c (constant term
// first) at x.
func poly(c []float64, x float64) float64 {
	var r float64
	for i := len(c) - 1; i >= 0; i-- {
		r = r*x + c[i]
	}
	return r
}

// ShapiroWilk computes the Shapiro-Wilk W statistic of xs and its
// p-value under the null hypothesis that xs is drawn from a normal
// distribution, using Royston's approximation. It requires between
// MinNormalitySamples and MaxNormalitySamples values. A sample whose
// values are all equal has W = 1 and p = 1.
func ShapiroWilk(xs []float64) (w, p float64, err error) {
	n := len(xs)
	if n < MinNormalitySamples {
		return 0, 0, ErrSampleSize
	} else if n > MaxNormalitySamples {
		return 0, 0, ErrTooManySamples
	}

	x := append([]float64(nil), xs...)
	sort.Float64s(x)
	if x[n-1]-x[0] == 0 {
		return 1, 1, nil
	}

	a := swCoefficients(n)
	mean := floats.Sum(x) / float64(n)
	var ssq, num float64
	for _, v := range x {
		ssq += (v - mean) * (v - mean)
	}
	for i, ai := range a {
		num += ai * (x[n-1-i] - x[i])
	}
	w = num * num / ssq
	if w > 1 {
		w = 1
	}
	return w, swPValue(w, n), nil
}

// swCoefficients returns the first n/2 coefficients of the W
// statistic. The remaining coefficients are their negations.
func swCoefficients(n int) []float64 {
	nn2 := n / 2
	a := make([]float64, nn2)
	if n == 3 {
		a[0] = math.Sqrt(0.5)
		return a
	}

	an := float64(n)
	m := make([]float64, nn2)
	var summ2 float64
	for i := range m {
		m[i] = distuv.UnitNormal.Quantile((float64(i+1) - 0.375) / (an + 0.25))
		summ2 += m[i] * m[i]
	}
	summ2 *= 2
	ssumm2 := math.Sqrt(summ2)
	rsn := 1 / math.Sqrt(an)

	a1 := poly(swC1, rsn) - m[0]/ssumm2
	first := 1
	var fac float64
	if n > 5 {
		first = 2
		a2 := -m[1]/ssumm2 + poly(swC2, rsn)
		fac = math.Sqrt((summ2 - 2*m[0]*m[0] - 2*m[1]*m[1]) / (1 - 2*a1*a1 - 2*a2*a2))
		a[1] = a2
	} else {
		fac = math.Sqrt((summ2 - 2*m[0]*m[0]) / (1 - 2*a1*a1))
	}
	a[0] = a1
	for i := first; i < nn2; i++ {
		a[i] = -m[i] / fac
	}
	return a
}

// swPValue returns the upper-tail p-value of W for a sample of size n.
func swPValue(w float64, n int) float64 {
	if n == 3 {
		// Exact distribution for n = 3.
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Pi/3)
		return math.Max(p, 0)
	}
	if w >= 1 {
		return 1
	}

	an := float64(n)
	w1 := math.Log(1 - w)
	var m, s float64
	if n <= 11 {
		gamma := poly(swG, an)
		if w1 >= gamma {
			return swTinyP
		}
		w1 = -math.Log(gamma - w1)
		m = poly(swC3, an)
		s = math.Exp(poly(swC4, an))
	} else {
		ln := math.Log(an)
		m = poly(swC5, ln)
		s = math.Exp(poly(swC6, ln))
	}
	return distuv.UnitNormal.Survival((w1 - m) / s)
}
