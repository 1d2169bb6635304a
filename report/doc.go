// Package report renders parsed materials into human-facing report lines.
//
// Materials group by label, type, description, and rounded dimensions;
// groups sort in natural label order (numeric runs compare as numbers)
// and render one line each. Dimension values format as
// feet-inches-sixteenths carpenter notation.
//
// This package is the whole of the core's output formatting; file export
// and display are external collaborators' concerns.
package report
