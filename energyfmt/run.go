// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package energyfmt reads per-run energy measurement files.
//
// A measurement file is a CSV table with a header row, such as the
// output of EnergiBridge, in which one column holds a cumulative
// energy counter. Each file describes one run of an experiment, and
// the energy consumed by that run is the counter's value in the last
// row minus its value in the first row.
//
// Runs are assigned to one of two profiles by a Classifier, which by
// default looks for the literal substrings "profile1" and "profile2"
// in the file's path.
package energyfmt

import "fmt"

// Label identifies the experimental profile a run belongs to.
type Label int

const (
	// Unlabeled marks a run that no profile claimed.
	Unlabeled Label = iota
	Profile1
	Profile2
)

func (l Label) String() string {
	switch l {
	case Unlabeled:
		return "Unlabeled"
	case Profile1:
		return "Profile1"
	case Profile2:
		return "Profile2"
	}
	return fmt.Sprintf("Label(%d)", int(l))
}

// Run is a single measurement file reduced to the energy it
// recorded.
type Run struct {
	// Path is the file the run was read from, exactly as it was
	// given to the reader.
	Path string

	// Label is the profile this run was classified into, or
	// Unlabeled.
	Label Label

	// Unit is the tidied unit of First, Last, and Energy. Values
	// in pre-scaled energy units such as "mJ" are converted to
	// joules.
	Unit string

	// First and Last are the energy counter values in the first
	// and last data rows.
	First, Last float64

	// Energy is Last - First.
	Energy float64

	// Rows is the number of data rows in the file.
	Rows int
}
