// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energystat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	desc "github.com/montanaflynn/stats"
)

// EffectSize quantifies the change from a baseline sample to a
// second sample. Exactly one of CohensD and MedianDiff is set,
// depending on the Strategy that produced it.
type EffectSize struct {
	Mean1         float64 `json:"mean1"`
	Mean2         float64 `json:"mean2"`
	MeanDiff      float64 `json:"mean_diff"`      // Mean2 - Mean1
	PercentChange float64 `json:"percent_change"` // MeanDiff / Mean1 * 100

	CohensD    *float64 `json:"cohens_d,omitempty"`
	MedianDiff *float64 `json:"median_diff,omitempty"`
}

// meanChange computes the strategy-independent part of the effect
// size, treating s1 as the baseline.
func meanChange(s1, s2 Sample) (EffectSize, error) {
	if len(s1.Xs) == 0 {
		return EffectSize{}, &InsufficientSampleError{Sample: s1.Name, N: 0, Min: 1}
	}
	if len(s2.Xs) == 0 {
		return EffectSize{}, &InsufficientSampleError{Sample: s2.Name, N: 0, Min: 1}
	}
	m1, m2 := stats.Mean(s1.Xs), stats.Mean(s2.Xs)
	if m1 == 0 {
		return EffectSize{}, &DegenerateBaselineError{Sample: s1.Name}
	}
	diff := m2 - m1
	return EffectSize{
		Mean1:         m1,
		Mean2:         m2,
		MeanDiff:      diff,
		PercentChange: diff / m1 * 100,
	}, nil
}

// cohensD returns the difference of means of s2 and s1 in units of
// their pooled standard deviation, sqrt((s1² + s2²) / 2).
func cohensD(s1, s2 Sample) (float64, error) {
	for _, s := range []Sample{s1, s2} {
		if len(s.Xs) < 2 {
			return 0, &InsufficientSampleError{Sample: s.Name, N: len(s.Xs), Min: 2}
		}
	}
	sd1, sd2 := stats.StdDev(s1.Xs), stats.StdDev(s2.Xs)
	pooled := math.Sqrt((sd1*sd1 + sd2*sd2) / 2)
	if pooled == 0 {
		return 0, &DegenerateVarianceError{Sample1: s1.Name, Sample2: s2.Name}
	}
	return (stats.Mean(s2.Xs) - stats.Mean(s1.Xs)) / pooled, nil
}

// medianDiff returns median(s2) - median(s1).
func medianDiff(s1, s2 Sample) (float64, error) {
	m1, err := desc.Median(s1.Xs)
	if err != nil {
		return 0, err
	}
	m2, err := desc.Median(s2.Xs)
	if err != nil {
		return 0, err
	}
	return m2 - m1, nil
}
