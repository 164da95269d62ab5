// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package energystat compares the energy consumed by two profiles.
//
// Each profile is a Sample of per-run energy values. The comparison
// first checks each sample for normality with the Shapiro-Wilk test,
// then picks a Strategy from both verdicts: if both samples look
// normal, the Parametric strategy compares them with Welch's t-test
// and reports Cohen's d; otherwise the NonParametric strategy uses
// the Mann-Whitney U test and reports the difference of medians.
package energystat

import (
	desc "github.com/montanaflynn/stats"
)

// A Sample is the set of energy values measured for one profile,
// one value per run.
type Sample struct {
	// Name labels the sample in results and errors, for example
	// "Profile1".
	Name string

	Xs []float64
}

// Summary describes a sample.
type Summary struct {
	N      int     `json:"n"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"` // Bessel-corrected
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes descriptive statistics of s. The sample must
// have at least two values.
func (s Sample) Summarize() (Summary, error) {
	if len(s.Xs) < 2 {
		return Summary{}, &InsufficientSampleError{Sample: s.Name, N: len(s.Xs), Min: 2}
	}
	sum := Summary{N: len(s.Xs)}
	var err error
	if sum.Mean, err = desc.Mean(s.Xs); err != nil {
		return Summary{}, err
	}
	if sum.Median, err = desc.Median(s.Xs); err != nil {
		return Summary{}, err
	}
	if sum.StdDev, err = desc.StandardDeviationSample(s.Xs); err != nil {
		return Summary{}, err
	}
	if sum.Min, err = desc.Min(s.Xs); err != nil {
		return Summary{}, err
	}
	if sum.Max, err = desc.Max(s.Xs); err != nil {
		return Summary{}, err
	}
	return sum, nil
}
