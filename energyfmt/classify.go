// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyfmt

import (
	"fmt"
	"strings"
)

// A Classifier assigns a measurement file to a profile based on its
// path. ok is false if the path belongs to no profile.
type Classifier interface {
	Classify(path string) (label Label, ok bool)
}

// ClassifierFunc adapts an ordinary function to a Classifier.
type ClassifierFunc func(path string) (Label, bool)

func (f ClassifierFunc) Classify(path string) (Label, bool) {
	return f(path)
}

// SubstringClassifier classifies a path by the literal substrings it
// contains. A path containing both substrings is ambiguous and is not
// classified.
type SubstringClassifier struct {
	Profile1, Profile2 string
}

// DefaultClassifier matches the file naming convention of the
// experiment scripts.
var DefaultClassifier = SubstringClassifier{Profile1: "profile1", Profile2: "profile2"}

func (c SubstringClassifier) Classify(path string) (Label, bool) {
	in1 := strings.Contains(path, c.Profile1)
	in2 := strings.Contains(path, c.Profile2)
	switch {
	case in1 && !in2:
		return Profile1, true
	case in2 && !in1:
		return Profile2, true
	}
	return Unlabeled, false
}

// UnmatchedPolicy says what to do with a measurement file that no
// profile claims.
type UnmatchedPolicy int

const (
	// SkipUnmatched drops the file from the analysis and records
	// it as skipped.
	SkipUnmatched UnmatchedPolicy = iota
	// FailUnmatched aborts loading with an *UnclassifiedFileError.
	FailUnmatched
)

// ParseUnmatchedPolicy parses the configuration spelling of a policy:
// "warn" or "fail".
func ParseUnmatchedPolicy(s string) (UnmatchedPolicy, error) {
	switch s {
	case "warn", "":
		return SkipUnmatched, nil
	case "fail":
		return FailUnmatched, nil
	}
	return 0, fmt.Errorf("unknown unmatched-file policy %q (want warn or fail)", s)
}

func (p UnmatchedPolicy) String() string {
	switch p {
	case SkipUnmatched:
		return "warn"
	case FailUnmatched:
		return "fail"
	}
	return fmt.Sprintf("UnmatchedPolicy(%d)", int(p))
}
