// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testColumn = "PACKAGE_ENERGY (J)"

// writeRun writes a measurement file whose energy counter starts at
// start and increases by energy over a few rows.
func writeRun(t *testing.T, dir, name string, start, energy float64) string {
	t.Helper()
	var b strings.Builder
	fmt.Fprintf(&b, "Delta,Time,%s\n", testColumn)
	for i := 0; i <= 4; i++ {
		fmt.Fprintf(&b, "200,%d,%g\n", 1000+200*i, start+energy*float64(i)/4)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	p1b := writeRun(t, dir, "run_profile1_b.csv", 1000, 590)
	p1a := writeRun(t, dir, "run_profile1_a.csv", 0, 600)
	p2a := writeRun(t, dir, "run_profile2_a.csv", 50, 410)
	p2b := writeRun(t, dir, "run_profile2_b.csv", 0, 420)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a run"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "profile1.csv"), 0o755))

	g, err := Load(dir, Options{Column: testColumn})
	require.NoError(t, err)

	want := &Groups{
		Profile1: Group{Label: Profile1, Values: []float64{600, 590}, Paths: []string{p1a, p1b}},
		Profile2: Group{Label: Profile2, Values: []float64{410, 420}, Paths: []string{p2a, p2b}},
		Unit:     "J",
	}
	if diff := cmp.Diff(want, g); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadIdempotent(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 6; i++ {
		writeRun(t, dir, fmt.Sprintf("profile%d_run%02d.csv", i%2+1, i), float64(i), 400+float64(i*7))
	}

	first, err := Load(dir, Options{Column: testColumn})
	require.NoError(t, err)
	second, err := Load(dir, Options{Column: testColumn})
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reloading changed the groups (-first +second):\n%s", diff)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "profile1_a.csv", 0, 600)
	writeRun(t, dir, "profile2_a.csv", 0, 410)
	bad := filepath.Join(dir, "profile2_b.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Delta,Time,CPU_ENERGY (J)\n0,1,2\n"), 0o644))

	g, err := Load(dir, Options{Column: testColumn})
	assert.Nil(t, g)
	var mce *MissingColumnError
	require.ErrorAs(t, err, &mce)
	assert.Equal(t, bad, mce.File)
	assert.Equal(t, testColumn, mce.Column)
}

func TestLoadUnmatched(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "profile1_a.csv", 0, 600)
	writeRun(t, dir, "profile2_a.csv", 0, 410)
	stray := writeRun(t, dir, "baseline.csv", 0, 500)
	both := writeRun(t, dir, "profile1_vs_profile2.csv", 0, 500)

	g, err := Load(dir, Options{Column: testColumn})
	require.NoError(t, err)
	assert.Equal(t, []string{stray, both}, g.Skipped)
	assert.Equal(t, []float64{600}, g.Profile1.Values)
	assert.Equal(t, []float64{410}, g.Profile2.Values)

	_, err = Load(dir, Options{Column: testColumn, Unmatched: FailUnmatched})
	var ufe *UnclassifiedFileError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, stray, ufe.File)
}

func TestLoadNoMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "profile1_a.csv", 0, 600)
	writeRun(t, dir, "profile1_b.csv", 0, 610)

	_, err := Load(dir, Options{Column: testColumn})
	var nme *NoMatchingFilesError
	require.ErrorAs(t, err, &nme)
	assert.Equal(t, Profile2, nme.Label)
	assert.Equal(t, dir, nme.Dir)

	_, err = Load(filepath.Join(dir, "missing"), Options{Column: testColumn})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadUnitMismatch(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "profile1_a.csv", 0, 600)
	odd := filepath.Join(dir, "profile2_a.csv")
	require.NoError(t, os.WriteFile(odd, []byte("Time,PACKAGE_ENERGY (W)\n1,2\n2,3\n"), 0o644))

	_, err := Load(dir, Options{Column: "PACKAGE_ENERGY"})
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, odd, pe.File)
}

func TestLoadClassifier(t *testing.T) {
	dir := t.TempDir()
	writeRun(t, dir, "dark-mode-1.csv", 0, 300)
	writeRun(t, dir, "dark-mode-2.csv", 0, 310)
	writeRun(t, dir, "light-mode-1.csv", 0, 400)

	classify := ClassifierFunc(func(path string) (Label, bool) {
		switch base := filepath.Base(path); {
		case strings.HasPrefix(base, "light-"):
			return Profile1, true
		case strings.HasPrefix(base, "dark-"):
			return Profile2, true
		}
		return Unlabeled, false
	})
	g, err := Load(dir, Options{Column: testColumn, Classifier: classify})
	require.NoError(t, err)
	assert.Equal(t, []float64{400}, g.Profile1.Values)
	assert.Equal(t, []float64{300, 310}, g.Profile2.Values)
}

func TestSubstringClassifier(t *testing.T) {
	for _, test := range []struct {
		path  string
		label Label
		ok    bool
	}{
		{"out/energy_profile1_3.csv", Profile1, true},
		{"out/energy_profile2_3.csv", Profile2, true},
		{"profile1/run.csv", Profile1, true},
		{"out/energy_baseline.csv", Unlabeled, false},
		{"out/profile1-profile2.csv", Unlabeled, false},
		{"out/PROFILE1.csv", Unlabeled, false},
	} {
		label, ok := DefaultClassifier.Classify(test.path)
		assert.Equal(t, test.label, label, test.path)
		assert.Equal(t, test.ok, ok, test.path)
	}
}

func TestParseUnmatchedPolicy(t *testing.T) {
	for in, want := range map[string]UnmatchedPolicy{"": SkipUnmatched, "warn": SkipUnmatched, "fail": FailUnmatched} {
		got, err := ParseUnmatchedPolicy(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseUnmatchedPolicy("ignore")
	assert.Error(t, err)
	assert.Equal(t, "fail", FailUnmatched.String())
}

func TestFilesClosesEachFile(t *testing.T) {
	dir := t.TempDir()
	a := writeRun(t, dir, "profile1_a.csv", 0, 1)
	b := writeRun(t, dir, "profile2_a.csv", 0, 2)

	files := Files{Paths: []string{a, filepath.Join(dir, "gone.csv"), b}, Column: testColumn}
	require.True(t, files.Scan())
	assert.Equal(t, Profile1, files.Run().Label)
	require.False(t, files.Scan())
	assert.ErrorIs(t, files.Err(), os.ErrNotExist)
	// Errors are sticky.
	assert.False(t, files.Scan())
}
