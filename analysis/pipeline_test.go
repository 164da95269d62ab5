// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/greensoft-lab/energystat/config"
	"github.com/greensoft-lab/energystat/energyfmt"
	"github.com/greensoft-lab/energystat/energystat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var (
	scenarioA1 = []float64{600, 590, 595, 605, 598}
	scenarioA2 = []float64{410, 420, 415, 408, 412}
	scenarioB2 = []float64{410, 412, 415, 408, 900}
)

// writeProfile writes one measurement file per energy value into dir.
func writeProfile(t *testing.T, dir, label string, energies []float64) {
	t.Helper()
	for i, e := range energies {
		var b strings.Builder
		fmt.Fprintf(&b, "Delta,Time,CPU_USAGE_0,PACKAGE_ENERGY (J)\n")
		for row := 0; row <= 3; row++ {
			fmt.Fprintf(&b, "100,%d,12.5,%g\n", 1700000000+100*row, e*float64(row)/3)
		}
		name := filepath.Join(dir, fmt.Sprintf("energy_%s_run%02d.csv", label, i))
		require.NoError(t, os.WriteFile(name, []byte(b.String()), 0o644))
	}
}

func testConfig(dir string) config.Config {
	cfg := config.Default()
	cfg.DataFolder = dir
	return cfg
}

func TestRunScenarioA(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioA2)

	r, err := New(testConfig(dir)).Run()
	require.NoError(t, err)

	assert.Equal(t, "J", r.Unit)
	assert.Equal(t, 0.05, r.Alpha)
	assert.Equal(t, "Profile1", r.Groups[0].Label)
	assert.Equal(t, "Profile2", r.Groups[1].Label)
	assert.Equal(t, 5, r.Groups[0].Summary.N)
	assert.Len(t, r.Groups[1].Files, 5)
	assert.True(t, r.Groups[0].Normality.Normal)
	assert.True(t, r.Groups[1].Normality.Normal)

	assert.Equal(t, energystat.WelchTest, r.Strategy)
	assert.Equal(t, energystat.WelchTest, r.Significance.Test)
	assert.True(t, r.Significance.Significant)

	assert.InDelta(t, 597.6, r.Effect.Mean1, 1e-9)
	assert.InDelta(t, 413.0, r.Effect.Mean2, 1e-9)
	assert.InDelta(t, -184.6, r.Effect.MeanDiff, 1e-9)
	assert.InDelta(t, -30.89, r.Effect.PercentChange, 0.005)
	require.NotNil(t, r.Effect.CohensD)
	assert.Less(t, *r.Effect.CohensD, -10.0)
	assert.Nil(t, r.Effect.MedianDiff)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	for _, want := range []string{
		"Profile1 runs: 5\n",
		"Profile2 runs: 5\n",
		"Shapiro-Wilk test for Profile1\np-value = 0.99845\n→ Normal (assumed)\n",
		"Shapiro-Wilk test for Profile2\np-value = 0.79509\n→ Normal (assumed)\n",
		"===== Statistical Test =====\nUsing Welch t-test\np-value = 0.00000\n→ Statistically significant difference\n",
		"Mean Profile1 = 597.600 J\n",
		"Mean Profile2 = 413.000 J\n",
		"Mean Difference = -184.600 J\n",
		"Percent Change = -30.89%\n",
		"Cohen's d = -35.759\n",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Median Difference")
	assert.NotContains(t, out, "Skipped")

	// Sections appear in a fixed order.
	order := []string{"runs:", "===== Summary", "Shapiro-Wilk", "===== Statistical Test", "===== Effect Size", "Cohen's d"}
	last := -1
	for _, s := range order {
		i := strings.Index(out, s)
		assert.Greater(t, i, last, "%q out of order", s)
		last = i
	}
}

func TestRunScenarioB(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioB2)

	r, err := New(testConfig(dir)).Run()
	require.NoError(t, err)

	assert.True(t, r.Groups[0].Normality.Normal)
	assert.False(t, r.Groups[1].Normality.Normal)
	assert.Equal(t, energystat.MannWhitneyTest, r.Strategy)
	assert.Equal(t, energystat.MannWhitneyTest, r.Significance.Test)
	assert.Nil(t, r.Effect.CohensD)
	require.NotNil(t, r.Effect.MedianDiff)
	assert.InDelta(t, -186.0, *r.Effect.MedianDiff, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, "→ Not normal\n")
	assert.Contains(t, out, "Using Mann-Whitney U\n")
	assert.Contains(t, out, "→ No statistically significant difference\n")
	assert.Contains(t, out, "Median Difference = -186.000 J\n")
	assert.NotContains(t, out, "Cohen's d")
}

func TestRunScenarioC(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioA2)
	bad := filepath.Join(dir, "energy_profile2_run99.csv")
	require.NoError(t, os.WriteFile(bad, []byte("Delta,Time,DRAM_ENERGY (J)\n100,1,0\n100,2,5\n"), 0o644))

	r, err := New(testConfig(dir)).Run()
	assert.Nil(t, r)
	var mce *energyfmt.MissingColumnError
	require.True(t, errors.As(err, &mce), "got %v", err)
	assert.Equal(t, bad, mce.File)
	assert.Equal(t, "PACKAGE_ENERGY (J)", mce.Column)
}

func TestRunScenarioD(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioA2[:2])

	core, logs := observer.New(zap.DebugLevel)
	r, err := New(testConfig(dir), WithLogger(zap.New(core))).Run()
	assert.Nil(t, r)
	var ise *energystat.InsufficientSampleError
	require.True(t, errors.As(err, &ise), "got %v", err)
	assert.Equal(t, "Profile2", ise.Sample)
	assert.Equal(t, 2, ise.N)
	assert.Equal(t, 3, ise.Min)

	// Nothing was tested.
	assert.Zero(t, logs.FilterMessage("normality").Len())
	assert.Zero(t, logs.FilterMessage("selected strategy").Len())
}

func TestRunNoMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)

	r, err := New(testConfig(dir)).Run()
	assert.Nil(t, r)
	var nme *energyfmt.NoMatchingFilesError
	require.True(t, errors.As(err, &nme), "got %v", err)
	assert.Equal(t, energyfmt.Profile2, nme.Label)
}

func TestRunSkipped(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioA2)
	writeProfile(t, dir, "warmup", []float64{100})

	core, logs := observer.New(zap.InfoLevel)
	r, err := New(testConfig(dir), WithLogger(zap.New(core))).Run()
	require.NoError(t, err)
	require.Len(t, r.Skipped, 1)
	assert.Equal(t, filepath.Join(dir, "energy_warmup_run00.csv"), r.Skipped[0])
	assert.Equal(t, 1, logs.FilterMessage("skipping file that matches no profile").Len())
	assert.Equal(t, 1, logs.FilterMessage("selected strategy").Len())

	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Contains(t, buf.String(), "Skipped 1 file(s) matching no profile:\n  "+r.Skipped[0]+"\n")

	cfg := testConfig(dir)
	cfg.Unmatched = "fail"
	_, err = New(cfg).Run()
	var ufe *energyfmt.UnclassifiedFileError
	assert.True(t, errors.As(err, &ufe), "got %v", err)
}

func TestRunWithClassifier(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "light", scenarioA1)
	writeProfile(t, dir, "dark", scenarioA2)

	byTheme := energyfmt.ClassifierFunc(func(path string) (energyfmt.Label, bool) {
		switch {
		case strings.Contains(path, "light"):
			return energyfmt.Profile1, true
		case strings.Contains(path, "dark"):
			return energyfmt.Profile2, true
		}
		return energyfmt.Unlabeled, false
	})
	r, err := New(testConfig(dir), WithClassifier(byTheme)).Run()
	require.NoError(t, err)
	assert.InDelta(t, 597.6, r.Effect.Mean1, 1e-9)

	cfg := testConfig(dir)
	cfg.Labels = config.Labels{Profile1: "light", Profile2: "dark"}
	r2, err := New(cfg).Run()
	require.NoError(t, err)
	assert.Equal(t, r.Effect, r2.Effect)
}

func TestRunInvalidConfig(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Alpha = 2
	r, err := New(cfg).Run()
	assert.Nil(t, r)
	var ve *config.ValidationError
	assert.True(t, errors.As(err, &ve), "got %v", err)
}

func TestRunAlpha(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioB2)

	// Scenario B's Mann-Whitney p-value is about 0.15.
	cfg := testConfig(dir)
	cfg.Alpha = 0.2
	r, err := New(cfg).Run()
	require.NoError(t, err)
	assert.Equal(t, 0.2, r.Groups[0].Normality.Alpha)
	assert.Equal(t, 0.2, r.Significance.Alpha)
	assert.True(t, r.Significance.Significant)
}

func TestWriteJSON(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, dir, "profile1", scenarioA1)
	writeProfile(t, dir, "profile2", scenarioB2)
	r, err := New(testConfig(dir)).Run()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.WriteJSON(&buf))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, r.Strategy, got.Strategy)
	assert.Equal(t, r.Effect, got.Effect)
	assert.Equal(t, r.Groups[1].Normality, got.Groups[1].Normality)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	effect := raw["effect_size"].(map[string]any)
	assert.Contains(t, effect, "median_diff")
	assert.NotContains(t, effect, "cohens_d")
}
