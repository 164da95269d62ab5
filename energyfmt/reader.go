// Copyright 2020 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package energyfmt

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/greensoft-lab/energystat/energyunit"
)

// A Reader reads the rows of a single measurement file.
//
// Its API is modeled on bufio.Scanner. The zero value of Reader is a
// valid Reader, but the user must call Reset before using it.
type Reader struct {
	cr       *csv.Reader
	fileName string
	column   string

	col    int    // index of column in each record, or -1 before the header is read
	unit   string // unit from the column header
	line   int    // line of the current record
	record []string
	err    error
}

// NewReader constructs a reader for the measurement file r. fileName
// is used in errors; it is purely diagnostic. column is the header of
// the energy column to extract.
func NewReader(r io.Reader, fileName, column string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName, column)
	return reader
}

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName, column string) {
	r.cr = csv.NewReader(ior)
	r.cr.ReuseRecord = true
	r.cr.TrimLeadingSpace = true
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.column = column
	r.col = -1
	r.unit = ""
	r.line = 0
	r.record = nil
	r.err = nil
}

// readHeader locates the energy column in the header row. A header
// cell matches if it equals the column exactly, or if its name
// without a trailing "(unit)" does.
func (r *Reader) readHeader() error {
	header, err := r.cr.Read()
	if err == io.EOF {
		return &ParseError{r.fileName, 1, "missing header row"}
	} else if err != nil {
		return r.wrapErr(err)
	}
	r.line = 1

	for i, cell := range header {
		if cleanHeader(cell) == r.column {
			r.col = i
			_, r.unit = energyunit.ParseColumn(r.column)
			return nil
		}
	}
	for i, cell := range header {
		if name, unit := energyunit.ParseColumn(cleanHeader(cell)); name == r.column {
			r.col, r.unit = i, unit
			return nil
		}
	}
	return &MissingColumnError{File: r.fileName, Column: r.column}
}

func cleanHeader(cell string) string {
	return strings.TrimSpace(strings.TrimPrefix(cell, "\ufeff"))
}

// Scan advances the reader to the next data row and returns true if
// a row was read. If the header lacks the energy column, an I/O error
// occurs, or this reaches the end of the file, it returns false and
// the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}
	if r.col < 0 {
		if err := r.readHeader(); err != nil {
			r.err = err
			return false
		}
	}

	record, err := r.cr.Read()
	if err == io.EOF {
		return false
	} else if err != nil {
		r.err = r.wrapErr(err)
		return false
	}
	r.record = record
	r.line, _ = r.cr.FieldPos(r.col)
	return true
}

func (r *Reader) wrapErr(err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &ParseError{r.fileName, pe.Line, pe.Err.Error()}
	}
	return fmt.Errorf("%s: %w", r.fileName, err)
}

// Value returns the energy column of the current row.
func (r *Reader) Value() (float64, error) {
	field := strings.TrimSpace(r.record[r.col])
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, &ParseError{r.fileName, r.line, fmt.Sprintf("column %q: cannot parse %q as a number", r.column, field)}
	}
	return v, nil
}

// Unit returns the unit given in the energy column's header, or "" if
// the header has none. It is only valid after the first call to Scan.
func (r *Reader) Unit() string {
	return r.unit
}

// Err returns the first error that was encountered by the Reader,
// including a *MissingColumnError if the header lacks the column.
func (r *Reader) Err() error {
	return r.err
}

// Run consumes the remaining rows and returns the run they describe.
// Every row's energy value must parse, and there must be at least one
// row. The returned Run has no Label.
func (r *Reader) Run() (Run, error) {
	run := Run{Path: r.fileName}
	for r.Scan() {
		v, err := r.Value()
		if err != nil {
			return Run{}, err
		}
		if run.Rows == 0 {
			run.First = v
		}
		run.Last = v
		run.Rows++
	}
	if err := r.Err(); err != nil {
		return Run{}, err
	}
	if run.Rows == 0 {
		return Run{}, &ParseError{r.fileName, r.line, "no measurement rows"}
	}

	unit, factor := energyunit.TidyUnit(r.unit)
	if unit == "" {
		// Counters without a declared unit are taken to be joules.
		unit = energyunit.Joules
	}
	run.Unit = unit
	run.First *= factor
	run.Last *= factor
	run.Energy = run.Last - run.First
	return run, nil
}

// ReadRun reads a single measurement file from r.
func ReadRun(r io.Reader, fileName, column string) (Run, error) {
	return NewReader(r, fileName, column).Run()
}
