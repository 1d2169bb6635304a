// Package opening classifies rough openings and infers their height above
// the finished floor (AFF).
//
// Classification is an ordered list of heuristic rules evaluated first
// match wins, so precedence is explicit and each rule is testable on its
// own. AFF inference is a pure six-stage fallback chain mixing explicit
// fields, captured sub-assembly geometry, elevation overlap, size
// matching, label defaults, and panel-level fallback; the first stage
// producing a value wins and later stages are never evaluated.
//
// The package also derives beam pocket summaries from trimmer and king
// stud members of beam-pocket sub-assemblies.
package opening
