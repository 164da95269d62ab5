// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyunit

import (
	"strings"
	"sync"
)

type tidyEntry struct {
	tidied string
	factor float64
}

var tidyCache sync.Map // unit string -> *tidyEntry

// energyFactors maps pre-scaled energy units to their value in
// joules.
var energyFactors = map[string]float64{
	"nJ":  1e-9,
	"uJ":  1e-6,
	"µJ":  1e-6, // micro sign
	"μJ":  1e-6, // Greek mu
	"mJ":  1e-3,
	"kJ":  1e3,
	"MJ":  1e6,
	"Wh":  3600,
	"mWh": 3.6,
	"kWh": 3.6e6,
}

// TidyUnit returns the tidied version of unit and the multiplicative
// factor to convert a value in unit "unit" to a value in unit
// "tidied". Energy units in the numerator, such as "mJ" or "kWh", are
// rewritten to "J". This must happen before a Scaler is applied so
// the scaler doesn't produce nonsense like "kilomillijoules".
func TidyUnit(unit string) (tidied string, factor float64) {
	// Fast path for units with no normalization.
	switch unit {
	case "", Joules, "W", "J/s":
		return unit, 1
	}

	if tc, ok := tidyCache.Load(unit); ok {
		tc := tc.(*tidyEntry)
		return tc.tidied, tc.factor
	}

	tidied, factor = tidy(unit)
	tidyCache.Store(unit, &tidyEntry{tidied, factor})
	return
}

func tidy(unit string) (tidied string, factor float64) {
	factor = 1
	var b strings.Builder
	last := 0
	for _, t := range numeratorTerms(unit) {
		f, ok := energyFactors[unit[t.start:t.end]]
		if !ok {
			continue
		}
		factor *= f
		b.WriteString(unit[last:t.start])
		b.WriteString(Joules)
		last = t.end
	}
	if last == 0 {
		return unit, factor
	}
	b.WriteString(unit[last:])
	return b.String(), factor
}
