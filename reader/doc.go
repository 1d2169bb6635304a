// Package reader provides low-level EHX file parsing.
//
// The reader ingests one XML file, strips namespace prefixes so lookups
// use local names only, and builds the immutable [model.Job] graph: levels,
// panels with elevation polygons, and per-panel material lists with
// inherited identity GUIDs.
//
// The reader is schema tolerant. Missing children and attributes are never
// errors; field resolution walks documented fallback name lists and
// degrades to empty values, so one file always yields as many entities as
// could be parsed. Only a missing/unreadable file ([FileError]) or
// malformed XML ([ParseError]) aborts a load.
//
// Most callers should use the fluent API in the parent ehx package rather
// than using this package directly.
package reader
