// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyfmt

import "fmt"

// MissingColumnError reports a measurement file whose header does
// not contain the requested energy column.
type MissingColumnError struct {
	File   string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: column %q not found", e.File, e.Column)
}

// ParseError represents malformed content on a particular line of a
// measurement file.
type ParseError struct {
	File string
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
}

// NoMatchingFilesError reports a profile that no measurement file was
// classified into.
type NoMatchingFilesError struct {
	Label Label
	Dir   string
}

func (e *NoMatchingFilesError) Error() string {
	return fmt.Sprintf("%s: no measurement files for %s", e.Dir, e.Label)
}

// UnclassifiedFileError reports a measurement file that matched no
// profile, or more than one, when unmatched files are not allowed.
type UnclassifiedFileError struct {
	File string
}

func (e *UnclassifiedFileError) Error() string {
	return fmt.Sprintf("%s: file matches no profile label", e.File)
}
