// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package analysis runs the comparison of two energy profiles from
// measurement files to a Report.
//
// The pipeline loads both groups of runs, checks each group for
// normality, selects a single energystat.Strategy from the two
// verdicts, and uses that strategy for both the significance test and
// the effect size. Any error aborts the comparison without a partial
// report.
package analysis

import (
	"github.com/greensoft-lab/energystat/config"
	"github.com/greensoft-lab/energystat/energyfmt"
	"github.com/greensoft-lab/energystat/energystat"
	"go.uber.org/zap"
)

// A Pipeline compares the two profiles described by a Config.
type Pipeline struct {
	cfg        config.Config
	log        *zap.Logger
	classifier energyfmt.Classifier
}

// An Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for progress and warnings. By default
// nothing is logged.
func WithLogger(log *zap.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.log = log
		}
	}
}

// WithClassifier replaces the substring classifier built from the
// configured labels.
func WithClassifier(c energyfmt.Classifier) Option {
	return func(p *Pipeline) {
		p.classifier = c
	}
}

// New returns a Pipeline for cfg. cfg is copied; later changes to the
// caller's value have no effect.
func New(cfg config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	if p.classifier == nil {
		p.classifier = cfg.Classifier()
	}
	return p
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() config.Config {
	return p.cfg
}

// Load reads and classifies the runs in the configured data folder.
func (p *Pipeline) Load() (*energyfmt.Groups, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	return energyfmt.Load(p.cfg.DataFolder, energyfmt.Options{
		Column:     p.cfg.EnergyColumn,
		Extension:  p.cfg.Extension,
		Classifier: p.classifier,
		Unmatched:  p.cfg.UnmatchedPolicy(),
		Logger:     p.log,
	})
}

// Run loads the data folder and compares the two profiles.
func (p *Pipeline) Run() (*Report, error) {
	groups, err := p.Load()
	if err != nil {
		return nil, err
	}
	p.log.Info("loaded runs",
		zap.Int("profile1", len(groups.Profile1.Values)),
		zap.Int("profile2", len(groups.Profile2.Values)),
		zap.Int("skipped", len(groups.Skipped)))
	return Analyze(groups, p.cfg.Alpha, p.log)
}

// Analyze compares the two profiles in groups at significance level
// alpha. log may be nil.
func Analyze(groups *energyfmt.Groups, alpha float64, log *zap.Logger) (*Report, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s1 := energystat.Sample{Name: groups.Profile1.Label.String(), Xs: groups.Profile1.Values}
	s2 := energystat.Sample{Name: groups.Profile2.Label.String(), Xs: groups.Profile2.Values}

	// Both groups must be testable before anything is computed.
	for _, s := range []energystat.Sample{s1, s2} {
		if len(s.Xs) < energystat.MinNormalitySamples {
			return nil, &energystat.InsufficientSampleError{Sample: s.Name, N: len(s.Xs), Min: energystat.MinNormalitySamples}
		}
	}

	r := &Report{
		Unit:    groups.Unit,
		Alpha:   alpha,
		Skipped: groups.Skipped,
	}
	for i, g := range []struct {
		s     energystat.Sample
		paths []string
	}{{s1, groups.Profile1.Paths}, {s2, groups.Profile2.Paths}} {
		sum, err := g.s.Summarize()
		if err != nil {
			return nil, err
		}
		v, err := energystat.CheckNormality(g.s, alpha)
		if err != nil {
			return nil, err
		}
		log.Debug("normality",
			zap.String("sample", v.Sample),
			zap.Float64("w", v.W),
			zap.Float64("p", v.P),
			zap.Bool("normal", v.Normal))
		r.Groups[i] = GroupReport{
			Label:     g.s.Name,
			Files:     g.paths,
			Summary:   sum,
			Normality: v,
		}
	}

	strat := energystat.SelectStrategy(r.Groups[0].Normality, r.Groups[1].Normality)
	log.Info("selected strategy", zap.String("test", strat.Name()), zap.Bool("parametric", strat.Parametric()))
	r.Strategy = strat.Name()

	sig, err := strat.Test(s1, s2, alpha)
	if err != nil {
		return nil, err
	}
	r.Significance = sig

	es, err := strat.EffectSize(s1, s2)
	if err != nil {
		return nil, err
	}
	r.Effect = es
	return r, nil
}
