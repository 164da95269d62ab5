// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energystat

import (
	"errors"
	"fmt"

	"github.com/aclements/go-moremath/stats"
)

// InsufficientSampleError reports a sample too small for the
// requested computation.
type InsufficientSampleError struct {
	Sample string
	N      int // Number of values in the sample
	Min    int // Minimum number of values required
}

func (e *InsufficientSampleError) Error() string {
	return fmt.Sprintf("%s: %d samples, need at least %d", e.Sample, e.N, e.Min)
}

// DegenerateBaselineError reports a baseline sample whose mean is
// zero, which leaves the percent change undefined.
type DegenerateBaselineError struct {
	Sample string
}

func (e *DegenerateBaselineError) Error() string {
	return fmt.Sprintf("%s: mean is zero, percent change is undefined", e.Sample)
}

// DegenerateVarianceError reports two samples whose pooled standard
// deviation is zero, which leaves Cohen's d undefined.
type DegenerateVarianceError struct {
	Sample1, Sample2 string
}

func (e *DegenerateVarianceError) Error() string {
	return fmt.Sprintf("%s, %s: pooled standard deviation is zero, Cohen's d is undefined", e.Sample1, e.Sample2)
}

// TestError reports a significance test that could not be computed.
// Err is one of ErrZeroVariance, ErrSampleSize, ErrSamplesEqual, or an
// error from the underlying test.
type TestError struct {
	Test string
	Err  error
}

func (e *TestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Test, e.Err)
}

func (e *TestError) Unwrap() error {
	return e.Err
}

// Errors wrapped by TestError and returned by ShapiroWilk.
var (
	ErrSamplesEqual   = errors.New("all samples are equal")
	ErrSampleSize     = errors.New("too few samples")
	ErrZeroVariance   = errors.New("zero variance")
	ErrTooManySamples = errors.New("too many samples for the Shapiro-Wilk approximation")
)

// convertErr converts errors from the stats package to the errors
// exported by this package.
func convertErr(err error) error {
	switch err {
	case stats.ErrZeroVariance:
		return ErrZeroVariance
	case stats.ErrSampleSize:
		return ErrSampleSize
	case stats.ErrSamplesEqual:
		return ErrSamplesEqual
	}
	return err
}
