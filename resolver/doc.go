// Package resolver associates materials with their owning panel through a
// GUID priority chain.
//
// EHX exporters differ in which identity GUIDs they stamp on material
// elements, so association falls through a fixed chain: PanelGuid, then
// LevelGuid, then BundleGuid, then fail-open inclusion when neither side
// carries a usable GUID. Each tier is consulted only when the previous
// tier could not decide; once a tier applies, its verdict is final.
package resolver
