// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DefaultExtension is the file extension of measurement files.
const DefaultExtension = ".csv"

// A Group is the energy of every run of one profile, in the order the
// runs were discovered.
type Group struct {
	Label  Label
	Values []float64
	Paths  []string
}

// Groups is the outcome of loading a data folder.
type Groups struct {
	Profile1, Profile2 Group

	// Unit is the tidied energy unit shared by every run.
	Unit string

	// Skipped lists files that no profile claimed.
	Skipped []string
}

// Options configures Load.
type Options struct {
	// Column is the header of the energy column.
	Column string

	// Extension selects the files in the data folder to read. If
	// empty, DefaultExtension is used.
	Extension string

	// Classifier assigns runs to profiles. If nil,
	// DefaultClassifier is used.
	Classifier Classifier

	// Unmatched says what to do with files no profile claims.
	Unmatched UnmatchedPolicy

	// Logger receives progress and warnings. If nil, nothing is
	// logged.
	Logger *zap.Logger
}

// Discover returns the regular files directly in dir whose names end
// in ext, in lexical order. The order is stable across calls on an
// unchanged directory.
func Discover(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading data folder: %w", err)
	}
	var paths []string
	for _, ent := range entries {
		if !ent.Type().IsRegular() || !strings.HasSuffix(ent.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, ent.Name()))
	}
	return paths, nil
}

// Load reads every measurement file in dir and splits the runs into
// the two profiles.
//
// Any malformed file aborts the load, including files that would not
// have been classified. A profile with no runs is reported as a
// *NoMatchingFilesError.
func Load(dir string, opts Options) (*Groups, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	paths, err := Discover(dir, ext)
	if err != nil {
		return nil, err
	}
	log.Debug("discovered measurement files", zap.String("dir", dir), zap.Int("files", len(paths)))

	g := &Groups{
		Profile1: Group{Label: Profile1},
		Profile2: Group{Label: Profile2},
	}
	files := Files{Paths: paths, Column: opts.Column, Classifier: opts.Classifier}
	for files.Scan() {
		run := files.Run()
		if g.Unit == "" {
			g.Unit = run.Unit
		} else if run.Unit != g.Unit {
			return nil, &ParseError{run.Path, 1, fmt.Sprintf("energy unit %s does not match %s of earlier files", run.Unit, g.Unit)}
		}

		var grp *Group
		switch run.Label {
		case Profile1:
			grp = &g.Profile1
		case Profile2:
			grp = &g.Profile2
		default:
			if opts.Unmatched == FailUnmatched {
				return nil, &UnclassifiedFileError{File: run.Path}
			}
			log.Warn("skipping file that matches no profile", zap.String("file", run.Path))
			g.Skipped = append(g.Skipped, run.Path)
			continue
		}
		grp.Values = append(grp.Values, run.Energy)
		grp.Paths = append(grp.Paths, run.Path)
	}
	if err := files.Err(); err != nil {
		return nil, err
	}

	for _, grp := range []*Group{&g.Profile1, &g.Profile2} {
		if len(grp.Values) == 0 {
			return nil, &NoMatchingFilesError{Label: grp.Label, Dir: dir}
		}
	}
	return g, nil
}
