// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energystat

import (
	"github.com/aclements/go-moremath/stats"
)

// Names of the significance tests.
const (
	WelchTest       = "Welch t-test"
	MannWhitneyTest = "Mann-Whitney U"
)

// A Strategy is a consistent family of methods for comparing two
// samples: a significance test and a matching effect size.
//
// A Strategy is chosen once per comparison by SelectStrategy and then
// used for both the test and the effect size.
type Strategy interface {
	// Name is the name of the strategy's significance test.
	Name() string

	// Parametric reports whether the strategy assumes the samples
	// are normally distributed.
	Parametric() bool

	// Test performs a two-sided significance test of the difference
	// in location between s1 and s2.
	Test(s1, s2 Sample, alpha float64) (Significance, error)

	// EffectSize computes the magnitude of the change from s1 to s2.
	EffectSize(s1, s2 Sample) (EffectSize, error)
}

// Parametric compares samples assumed to be normal, using Welch's
// t-test and Cohen's d.
var Parametric Strategy = parametric{}

// NonParametric compares samples without assuming a distribution,
// using the Mann-Whitney U test and the difference of medians.
var NonParametric Strategy = nonParametric{}

// SelectStrategy returns Parametric if both samples were judged
// normal and NonParametric otherwise.
func SelectStrategy(v1, v2 NormalityVerdict) Strategy {
	if v1.Normal && v2.Normal {
		return Parametric
	}
	return NonParametric
}

// Significance is the outcome of a significance test.
type Significance struct {
	Test      string  `json:"test"`
	Statistic float64 `json:"statistic"`     // t for Welch, U of the first sample for Mann-Whitney
	DoF       float64 `json:"dof,omitempty"` // Degrees of freedom; zero for Mann-Whitney
	P         float64 `json:"p"`
	Alpha     float64 `json:"alpha"`

	// Significant is P < Alpha.
	Significant bool `json:"significant"`
}

// Significant reports whether p-value p is significant at level alpha.
func Significant(p, alpha float64) bool {
	return p < alpha
}

type parametric struct{}

func (parametric) Name() string     { return WelchTest }
func (parametric) Parametric() bool { return true }

func (parametric) Test(s1, s2 Sample, alpha float64) (Significance, error) {
	res, err := stats.TwoSampleWelchTTest(stats.Sample{Xs: s1.Xs}, stats.Sample{Xs: s2.Xs}, stats.LocationDiffers)
	if err != nil {
		return Significance{}, &TestError{Test: WelchTest, Err: convertErr(err)}
	}
	return Significance{
		Test:        WelchTest,
		Statistic:   res.T,
		DoF:         res.DoF,
		P:           res.P,
		Alpha:       alpha,
		Significant: Significant(res.P, alpha),
	}, nil
}

func (parametric) EffectSize(s1, s2 Sample) (EffectSize, error) {
	es, err := meanChange(s1, s2)
	if err != nil {
		return EffectSize{}, err
	}
	d, err := cohensD(s1, s2)
	if err != nil {
		return EffectSize{}, err
	}
	es.CohensD = &d
	return es, nil
}

type nonParametric struct{}

func (nonParametric) Name() string     { return MannWhitneyTest }
func (nonParametric) Parametric() bool { return false }

func (nonParametric) Test(s1, s2 Sample, alpha float64) (Significance, error) {
	res, err := stats.MannWhitneyUTest(s1.Xs, s2.Xs, stats.LocationDiffers)
	if err != nil {
		return Significance{}, &TestError{Test: MannWhitneyTest, Err: convertErr(err)}
	}
	return Significance{
		Test:        MannWhitneyTest,
		Statistic:   res.U,
		P:           res.P,
		Alpha:       alpha,
		Significant: Significant(res.P, alpha),
	}, nil
}

func (nonParametric) EffectSize(s1, s2 Sample) (EffectSize, error) {
	es, err := meanChange(s1, s2)
	if err != nil {
		return EffectSize{}, err
	}
	d, err := medianDiff(s1, s2)
	if err != nil {
		return EffectSize{}, err
	}
	es.MedianDiff = &d
	return es, nil
}
