// Package ehx provides a fluent API for parsing EHX wall-panel framing
// files and querying panels, materials, rough openings, and report lines.
//
// Basic usage:
//
//	job, err := ehx.Open("job.ehx").Job()
//	if err != nil {
//	    // handle error
//	}
//	for _, p := range job.Panels {
//	    fmt.Println(p.DisplayLabel)
//	}
//
// With options:
//
//	lines, err := ehx.Open("job.ehx").
//	    SizeTolerance(0.5).
//	    Report(panelGuid)
//
// For advanced use cases, the lower-level reader package is also
// available.
package ehx

import (
	"github.com/tsawler/ehx/reader"
)

// Open prepares the named EHX file for parsing and returns an Extractor
// for fluent configuration. The file is not read until a terminal
// operation runs; one load parses the whole file and the resulting graph
// is immutable.
//
// Example:
//
//	job, err := ehx.Open("job.ehx").Job()
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// This is useful when the caller manages the reader lifecycle or parses
// from something other than a file path.
//
// Example:
//
//	r, err := reader.Open("job.ehx")
//	if err != nil {
//	    // handle error
//	}
//	job, err := ehx.FromReader(r).Job()
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	job := ehx.Must(ehx.Open("job.ehx").Job())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
