// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyfmt

import "os"

// Files reads runs from a sequence of measurement files.
//
// Each file is opened, fully read, and closed before Scan returns, so
// at most one file is open at a time.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// Column is the header of the energy column.
	Column string

	// Classifier assigns each run its Label. If nil,
	// DefaultClassifier is used.
	Classifier Classifier

	// pos is the position of the next file to read from in Paths.
	pos int

	reader Reader
	run    Run
	err    error
}

// Scan reads the next file in the sequence and returns true if a run
// was read. The caller should use the Run method to get the run. If
// an error occurs, or this reaches the end of the file sequence, it
// returns false and the caller should use the Err method to check for
// errors. Errors are fatal: once Scan fails, it keeps returning false.
func (f *Files) Scan() bool {
	if f.err != nil || f.pos >= len(f.Paths) {
		return false
	}
	path := f.Paths[f.pos]
	f.pos++

	run, err := f.read(path)
	if err != nil {
		f.err = err
		return false
	}

	classifier := f.Classifier
	if classifier == nil {
		classifier = DefaultClassifier
	}
	if label, ok := classifier.Classify(path); ok {
		run.Label = label
	}
	f.run = run
	return true
}

func (f *Files) read(path string) (Run, error) {
	file, err := os.Open(path)
	if err != nil {
		return Run{}, err
	}
	defer file.Close()

	f.reader.Reset(file, path, f.Column)
	return f.reader.Run()
}

// Run returns the last run read.
func (f *Files) Run() Run {
	return f.run
}

// Err returns the first error that was encountered by the Files.
func (f *Files) Err() error {
	return f.err
}
