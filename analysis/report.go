// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package analysis

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/greensoft-lab/energystat/energystat"
	"github.com/greensoft-lab/energystat/energyunit"
)

// A Report is the outcome of comparing two profiles. Profile 1 is the
// baseline: differences and percent changes are profile 2 relative to
// profile 1.
type Report struct {
	// Unit is the energy unit of every value in the report.
	Unit  string  `json:"unit"`
	Alpha float64 `json:"alpha"`

	Groups [2]GroupReport `json:"groups"`

	// Strategy is the name of the significance test that was
	// selected from the normality verdicts.
	Strategy     string                  `json:"strategy"`
	Significance energystat.Significance `json:"significance"`
	Effect       energystat.EffectSize   `json:"effect_size"`

	// Skipped lists files that matched no profile.
	Skipped []string `json:"skipped,omitempty"`
}

// GroupReport describes one profile's runs.
type GroupReport struct {
	Label     string                      `json:"label"`
	Files     []string                    `json:"files"`
	Summary   energystat.Summary          `json:"summary"`
	Normality energystat.NormalityVerdict `json:"normality"`
}

// WriteJSON writes r to w as an indented JSON document.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// WriteText writes r to w in human-readable form.
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	unit := r.Unit
	if unit == "" {
		unit = energyunit.Joules
	}

	for _, g := range r.Groups {
		fmt.Fprintf(bw, "%s runs: %d\n", g.Label, g.Summary.N)
	}
	if n := len(r.Skipped); n > 0 {
		fmt.Fprintf(bw, "Skipped %d file(s) matching no profile:\n", n)
		for _, path := range r.Skipped {
			fmt.Fprintf(bw, "  %s\n", path)
		}
	}

	fmt.Fprintf(bw, "\n===== Summary =====\n")
	r.writeSummary(bw, unit)

	for _, g := range r.Groups {
		v := g.Normality
		fmt.Fprintf(bw, "\n%s test for %s\n", v.Test, g.Label)
		fmt.Fprintf(bw, "p-value = %.5f\n", v.P)
		if v.Normal {
			fmt.Fprintf(bw, "→ Normal (assumed)\n")
		} else {
			fmt.Fprintf(bw, "→ Not normal\n")
		}
	}

	sig := r.Significance
	fmt.Fprintf(bw, "\n===== Statistical Test =====\n")
	fmt.Fprintf(bw, "Using %s\n", sig.Test)
	fmt.Fprintf(bw, "p-value = %.5f\n", sig.P)
	if sig.Significant {
		fmt.Fprintf(bw, "→ Statistically significant difference\n")
	} else {
		fmt.Fprintf(bw, "→ No statistically significant difference\n")
	}

	es := r.Effect
	fmt.Fprintf(bw, "\n===== Effect Size =====\n")
	fmt.Fprintf(bw, "Mean %s = %.3f %s\n", r.Groups[0].Label, es.Mean1, unit)
	fmt.Fprintf(bw, "Mean %s = %.3f %s\n", r.Groups[1].Label, es.Mean2, unit)
	fmt.Fprintf(bw, "Mean Difference = %.3f %s\n", es.MeanDiff, unit)
	fmt.Fprintf(bw, "Percent Change = %.2f%%\n", es.PercentChange)
	if es.CohensD != nil {
		fmt.Fprintf(bw, "Cohen's d = %.3f\n", *es.CohensD)
	}
	if es.MedianDiff != nil {
		fmt.Fprintf(bw, "Median Difference = %.3f %s\n", *es.MedianDiff, unit)
	}
	return bw.Flush()
}

// writeSummary writes a table of per-profile descriptive statistics
// with a common SI scale.
func (r *Report) writeSummary(w io.Writer, unit string) {
	var vals []float64
	for _, g := range r.Groups {
		s := g.Summary
		vals = append(vals, s.Mean, s.Median, s.StdDev, s.Min, s.Max)
	}
	sc := energyunit.CommonScale(vals)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "\tn\tmean\tmedian\tstddev\tmin\tmax\t\n")
	for _, g := range r.Groups {
		s := g.Summary
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t\n", g.Label, s.N,
			sc.FormatUnit(s.Mean, unit), sc.FormatUnit(s.Median, unit), sc.FormatUnit(s.StdDev, unit),
			sc.FormatUnit(s.Min, unit), sc.FormatUnit(s.Max, unit))
	}
	tw.Flush()
}
