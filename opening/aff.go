package opening

import (
	"math"
	"strconv"

	"github.com/tsawler/ehx/model"
)

// Stage identifies which rung of the AFF inference chain produced a
// value. Stages are ordered by priority; once a stage fires, later
// stages are never evaluated.
type Stage int

const (
	// StageNone means the chain exhausted without a value.
	StageNone Stage = iota
	// StageExplicit is an explicit numeric AFF field on the material.
	StageExplicit
	// StageMaterialElevation is the material's own captured elevation
	// extent, top edge preferred.
	StageMaterialElevation
	// StageOverlap picks the panel elevation with the largest horizontal
	// overlap against the material's BottomView X range.
	StageOverlap
	// StageSizeMatch picks the panel elevation whose height best matches
	// the material's ActualLength within the size tolerance.
	StageSizeMatch
	// StageLabelDefault is a fixed per-label height.
	StageLabelDefault
	// StagePanelFallback is the panel's best elevation top.
	StagePanelFallback
)

func (s Stage) String() string {
	switch s {
	case StageExplicit:
		return "explicit"
	case StageMaterialElevation:
		return "material-elevation"
	case StageOverlap:
		return "overlap"
	case StageSizeMatch:
		return "size-match"
	case StageLabelDefault:
		return "label-default"
	case StagePanelFallback:
		return "panel-fallback"
	default:
		return "none"
	}
}

// Config holds AFF inference tuning.
type Config struct {
	// SizeTolerance is the allowed difference, in inches, between a
	// material's ActualLength and an elevation height for the size-match
	// stage.
	SizeTolerance float64

	// LabelHeights maps specific labels to fixed AFF values. The
	// defaults stand in for missing geometry in known legacy jobs and
	// are not verified domain truth; override them per job rather than
	// extending the table.
	LabelHeights map[string]float64
}

// DefaultConfig returns the standard inference configuration.
func DefaultConfig() Config {
	return Config{
		SizeTolerance: 1.0,
		LabelHeights: map[string]float64{
			"BSMT-HDR": 1.5,
			"49x63-L2": 92.5,
		},
	}
}

// InferAFF computes the material's height above the finished floor using
// the default configuration. The boolean is false when every stage of the
// chain came up empty; that is an indeterminate result, not an error.
func InferAFF(panel *model.Panel, m *model.Material) (float64, bool) {
	v, _, ok := DefaultConfig().Infer(panel, m)
	return v, ok
}

// Infer runs the six-stage AFF chain and additionally reports which stage
// fired. The function is pure: it reads the panel and material and
// touches nothing else.
func (c Config) Infer(panel *model.Panel, m *model.Material) (float64, Stage, bool) {
	// 1) explicit AFF field.
	if m.AFF != nil {
		return *m.AFF, StageExplicit, true
	}

	// 2) material-level captured elevation, top edge first. A material
	// built outside the reader may carry only the bottom edge; better a
	// low reference than none.
	if m.ElevMaxY != nil {
		return *m.ElevMaxY, StageMaterialElevation, true
	}
	if m.ElevMinY != nil {
		return *m.ElevMinY, StageMaterialElevation, true
	}

	// 3) X-range overlap against the panel's elevation views. Both
	// bottom coordinates are required; a half-captured range skips the
	// stage entirely.
	if m.BottomXMin != nil && m.BottomXMax != nil {
		if v, ok := overlapElevation(panel, *m.BottomXMin, *m.BottomXMax); ok {
			return v, StageOverlap, true
		}
	}

	// 4) size match: an opening's board length often equals the height
	// of the elevation view cut for it.
	if length, err := strconv.ParseFloat(m.ActualLength, 64); err == nil {
		if v, ok := sizeMatchElevation(panel, length, c.SizeTolerance); ok {
			return v, StageSizeMatch, true
		}
	}

	// 5) label-specific defaults.
	if v, ok := c.LabelHeights[m.Label]; ok {
		return v, StageLabelDefault, true
	}

	// 6) best panel elevation.
	if v, ok := panelFallback(panel); ok {
		return v, StagePanelFallback, true
	}

	return 0, StageNone, false
}

// overlapElevation picks the elevation view with the largest horizontal
// overlap against [x0, x1], breaking ties toward the higher top edge, and
// returns that view's top.
func overlapElevation(panel *model.Panel, x0, x1 float64) (float64, bool) {
	bestOverlap := 0.0
	bestTop := 0.0
	found := false
	for _, ev := range panel.Elevations {
		overlap := ev.XOverlap(x0, x1)
		if overlap <= 0 {
			continue
		}
		if !found || overlap > bestOverlap ||
			(overlap == bestOverlap && ev.MaxY > bestTop) {
			bestOverlap = overlap
			bestTop = ev.MaxY
			found = true
		}
	}
	return bestTop, found
}

// sizeMatchElevation picks the elevation view whose height is closest to
// length within tol, and returns that view's top.
func sizeMatchElevation(panel *model.Panel, length, tol float64) (float64, bool) {
	bestDiff := 0.0
	bestTop := 0.0
	found := false
	for _, ev := range panel.Elevations {
		if ev.Height <= 0 {
			continue
		}
		diff := math.Abs(ev.Height - length)
		if diff > tol {
			continue
		}
		if !found || diff < bestDiff {
			bestDiff = diff
			bestTop = ev.MaxY
			found = true
		}
	}
	return bestTop, found
}

// panelFallback returns the top of the panel's best elevation. Some
// exporters store the opening as a delta rather than an absolute
// elevation; a top below one inch with a real height means the height is
// the value wanted.
func panelFallback(panel *model.Panel) (float64, bool) {
	best, ok := panel.BestElevation()
	if !ok {
		return 0, false
	}
	if best.MaxY < 1.0 && best.Height > 0 {
		return best.Height, true
	}
	return best.MaxY, true
}
