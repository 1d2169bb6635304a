// Package model provides the intermediate representation (IR) for parsed
// EHX framing jobs.
//
// This package defines the user-facing data structures that represent the
// structure of a prefabricated wall-panel job. All parsing and extraction
// operations ultimately produce these types, making them the primary API
// for consuming parsed content.
//
// # Job Structure
//
// The [Job] type represents a complete loaded file with metadata, levels,
// panels, and the per-panel material lists:
//
//	job := model.NewJob()
//	job.AddPanel(panel)
//	mats := job.Materials(panel.Guid)
//
// Each [Panel] carries its identity GUID, display label, scalar attributes
// copied verbatim from the source file, and the panel's elevation polygons.
//
// # Materials
//
// A [Material] is one Board, Sheet, or Bracing member, or a Board re-emitted
// from a rough-opening SubAssembly. Materials carry their own identity GUID
// plus PanelGuid/BundleGuid/LevelGuid inherited from the owning panel when
// the element itself did not supply them.
//
// Optional numeric captures (AFF, elevation extents, BottomView X range)
// use pointer fields so "absent" stays distinguishable from zero.
//
// # Geometry
//
// An [ElevationView] is a 2D silhouette polygon with derived MinY, MaxY,
// and Height, used to infer opening heights above the finished floor.
//
// The whole graph is built once per file load, treated as immutable, and
// discarded on the next load. There is no incremental update.
package model
