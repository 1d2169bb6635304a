package opening

import (
	"testing"

	"github.com/tsawler/ehx/model"
)

// view builds an ElevationView from a rectangle.
func view(t *testing.T, x0, y0, x1, y1 float64) model.ElevationView {
	t.Helper()
	v, ok := model.NewElevationView([]model.Point{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if !ok {
		t.Fatalf("NewElevationView failed for (%v,%v)-(%v,%v)", x0, y0, x1, y1)
	}
	return v
}

func TestInferExplicitAFF(t *testing.T) {
	m := &model.Material{
		AFF:      model.Float(81.625),
		ElevMaxY: model.Float(99),
	}
	v, stage, ok := DefaultConfig().Infer(&model.Panel{}, m)
	if !ok || v != 81.625 || stage != StageExplicit {
		t.Errorf("got (%v, %v, %v), want (81.625, explicit, true)", v, stage, ok)
	}
}

func TestInferMaterialElevation(t *testing.T) {
	m := &model.Material{ElevMaxY: model.Float(83.125)}
	v, stage, ok := DefaultConfig().Infer(&model.Panel{}, m)
	if !ok || v != 83.125 || stage != StageMaterialElevation {
		t.Errorf("got (%v, %v, %v), want (83.125, material-elevation, true)", v, stage, ok)
	}
}

func TestInferMaterialElevationBottomEdgeFallback(t *testing.T) {
	// A material carrying only the bottom edge still resolves at the
	// elevation stage rather than falling through the chain.
	m := &model.Material{ElevMinY: model.Float(1.5)}
	v, stage, ok := DefaultConfig().Infer(&model.Panel{}, m)
	if !ok || v != 1.5 || stage != StageMaterialElevation {
		t.Errorf("got (%v, %v, %v), want (1.5, material-elevation, true)", v, stage, ok)
	}

	both := &model.Material{ElevMinY: model.Float(1.5), ElevMaxY: model.Float(83.125)}
	if v, _, _ := DefaultConfig().Infer(&model.Panel{}, both); v != 83.125 {
		t.Errorf("top edge should win when both extents are present, got %v", v)
	}
}

func TestInferOverlap(t *testing.T) {
	// Two elevation views: the first overlaps the material's bottom X
	// range by 5 inches, the second by 2. The larger overlap wins.
	panel := &model.Panel{
		Elevations: []model.ElevationView{
			view(t, 0, 0, 15, 80),
			view(t, 18, 0, 40, 95),
		},
	}
	m := &model.Material{
		BottomXMin: model.Float(10),
		BottomXMax: model.Float(20),
	}
	v, stage, ok := DefaultConfig().Infer(panel, m)
	if !ok || v != 80 || stage != StageOverlap {
		t.Errorf("got (%v, %v, %v), want (80, overlap, true)", v, stage, ok)
	}
}

func TestInferOverlapTieBreaksHigher(t *testing.T) {
	panel := &model.Panel{
		Elevations: []model.ElevationView{
			view(t, 0, 0, 10, 80),
			view(t, 0, 0, 10, 96),
		},
	}
	m := &model.Material{
		BottomXMin: model.Float(2),
		BottomXMax: model.Float(8),
	}
	v, _, ok := DefaultConfig().Infer(panel, m)
	if !ok || v != 96 {
		t.Errorf("got (%v, %v), want the higher top 96", v, ok)
	}
}

func TestInferOverlapRequiresBothCoordinates(t *testing.T) {
	panel := &model.Panel{
		Elevations: []model.ElevationView{view(t, 0, 0, 100, 90)},
	}
	m := &model.Material{BottomXMin: model.Float(10)}
	_, stage, ok := DefaultConfig().Infer(panel, m)
	if !ok {
		t.Fatal("chain should still reach the panel fallback")
	}
	if stage == StageOverlap {
		t.Error("overlap stage ran with only one bottom coordinate")
	}
}

func TestInferSizeMatch(t *testing.T) {
	panel := &model.Panel{
		Elevations: []model.ElevationView{
			view(t, 0, 0, 10, 96),    // height 96
			view(t, 0, 36, 10, 84),   // height 48
			view(t, 0, 20, 10, 60.5), // height 40.5
		},
	}
	m := &model.Material{ActualLength: "40.75"}
	v, stage, ok := DefaultConfig().Infer(panel, m)
	if !ok || stage != StageSizeMatch {
		t.Fatalf("got (%v, %v, %v), want size-match", v, stage, ok)
	}
	if v != 60.5 {
		t.Errorf("top = %v, want 60.5 (closest height within tolerance)", v)
	}
}

func TestInferSizeMatchTolerance(t *testing.T) {
	panel := &model.Panel{
		Elevations: []model.ElevationView{view(t, 0, 0, 10, 96)},
	}
	m := &model.Material{ActualLength: "90"}

	if _, stage, _ := DefaultConfig().Infer(panel, m); stage == StageSizeMatch {
		t.Error("size-match fired outside the default tolerance")
	}

	wide := DefaultConfig()
	wide.SizeTolerance = 10
	if v, stage, ok := wide.Infer(panel, m); !ok || stage != StageSizeMatch || v != 96 {
		t.Errorf("got (%v, %v, %v), want (96, size-match, true)", v, stage, ok)
	}
}

func TestInferLabelDefaults(t *testing.T) {
	tests := []struct {
		label string
		want  float64
	}{
		{"BSMT-HDR", 1.5},
		{"49x63-L2", 92.5},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			m := &model.Material{Label: tt.label}
			v, stage, ok := DefaultConfig().Infer(&model.Panel{}, m)
			if !ok || v != tt.want || stage != StageLabelDefault {
				t.Errorf("got (%v, %v, %v), want (%v, label-default, true)", v, stage, ok, tt.want)
			}
		})
	}
}

func TestInferLabelDefaultOverride(t *testing.T) {
	c := DefaultConfig()
	c.LabelHeights = map[string]float64{"CUSTOM": 12.25}
	m := &model.Material{Label: "CUSTOM"}
	v, stage, ok := c.Infer(&model.Panel{}, m)
	if !ok || v != 12.25 || stage != StageLabelDefault {
		t.Errorf("got (%v, %v, %v), want (12.25, label-default, true)", v, stage, ok)
	}
	if _, _, ok := c.Infer(&model.Panel{}, &model.Material{Label: "BSMT-HDR"}); ok {
		t.Error("replaced table should drop the stock labels")
	}
}

func TestInferPanelFallback(t *testing.T) {
	panel := &model.Panel{
		Elevations: []model.ElevationView{
			view(t, 0, 0, 10, 80),
			view(t, 0, 0, 10, 96),
		},
	}
	m := &model.Material{Label: "A", Description: "2x4 Stud"}
	v, stage, ok := DefaultConfig().Infer(panel, m)
	if !ok || v != 96 || stage != StagePanelFallback {
		t.Errorf("got (%v, %v, %v), want (96, panel-fallback, true)", v, stage, ok)
	}
}

func TestInferPanelFallbackDeltaStorage(t *testing.T) {
	// Some exporters store openings as a delta: top below one inch with a
	// real height means the height is the wanted value.
	panel := &model.Panel{
		Elevations: []model.ElevationView{view(t, 0, -47.5, 10, 0.5)},
	}
	v, stage, ok := DefaultConfig().Infer(panel, &model.Material{})
	if !ok || stage != StagePanelFallback {
		t.Fatalf("got (%v, %v, %v), want panel-fallback", v, stage, ok)
	}
	if v != 48 {
		t.Errorf("value = %v, want the 48 height substituted for the sub-inch top", v)
	}
}

func TestInferExhausted(t *testing.T) {
	v, stage, ok := DefaultConfig().Infer(&model.Panel{}, &model.Material{Label: "A"})
	if ok || stage != StageNone || v != 0 {
		t.Errorf("got (%v, %v, %v), want (0, none, false)", v, stage, ok)
	}
}

func TestInferAFFWrapper(t *testing.T) {
	m := &model.Material{Label: "BSMT-HDR"}
	v, ok := InferAFF(&model.Panel{}, m)
	if !ok || v != 1.5 {
		t.Errorf("InferAFF = (%v, %v), want (1.5, true)", v, ok)
	}
}

func TestStageString(t *testing.T) {
	tests := []struct {
		stage Stage
		want  string
	}{
		{StageNone, "none"},
		{StageExplicit, "explicit"},
		{StageMaterialElevation, "material-elevation"},
		{StageOverlap, "overlap"},
		{StageSizeMatch, "size-match"},
		{StageLabelDefault, "label-default"},
		{StagePanelFallback, "panel-fallback"},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.want {
			t.Errorf("Stage(%d).String() = %q, want %q", tt.stage, got, tt.want)
		}
	}
}
