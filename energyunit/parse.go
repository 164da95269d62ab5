// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package energyunit works with energy measurement units.
//
// It extracts units from measurement column headers, normalizes
// pre-scaled energy units to joules, and prints numbers with SI
// prefixes.
package energyunit

import (
	"strings"
	"unicode"
)

// Joules is the base unit all energy values are normalized to.
const Joules = "J"

// ParseColumn splits a measurement column header of the form
// "NAME (unit)" into its name and unit. For example,
// "PACKAGE_ENERGY (J)" yields "PACKAGE_ENERGY" and "J". If header has
// no trailing parenthesized unit, name is the whole trimmed header
// and unit is "".
func ParseColumn(header string) (name, unit string) {
	header = strings.TrimSpace(header)
	if !strings.HasSuffix(header, ")") {
		return header, ""
	}
	open := strings.LastIndexByte(header, '(')
	if open < 0 {
		return header, ""
	}
	name = strings.TrimSpace(header[:open])
	unit = strings.TrimSpace(header[open+1 : len(header)-1])
	return name, unit
}

// A unitTerm is one factor of a compound unit such as "mJ*s".
type unitTerm struct {
	start, end int // byte range in the unit string
}

// numeratorTerms returns the factors of unit that precede the first
// "/". Factors are separated by "*", "·", or white space.
func numeratorTerms(unit string) []unitTerm {
	if i := strings.IndexByte(unit, '/'); i >= 0 {
		unit = unit[:i]
	}
	var terms []unitTerm
	start := -1
	for i, r := range unit {
		sep := r == '*' || r == '·' || unicode.IsSpace(r)
		switch {
		case sep && start >= 0:
			terms = append(terms, unitTerm{start, i})
			start = -1
		case !sep && start < 0:
			start = i
		}
	}
	if start >= 0 {
		terms = append(terms, unitTerm{start, len(unit)})
	}
	return terms
}
