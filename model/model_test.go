package model

import "testing"

func TestNewElevationView(t *testing.T) {
	v, ok := NewElevationView([]Point{
		{X: 0, Y: 1.5},
		{X: 48, Y: 96},
		{X: 48, Y: 1.5},
	})
	if !ok {
		t.Fatal("NewElevationView failed for non-empty points")
	}
	if v.MinY != 1.5 || v.MaxY != 96 || v.Height != 94.5 {
		t.Errorf("extent = (%v, %v, %v)", v.MinY, v.MaxY, v.Height)
	}

	if _, ok := NewElevationView(nil); ok {
		t.Error("empty point list should not build a view")
	}
}

func TestXOverlap(t *testing.T) {
	v, _ := NewElevationView([]Point{{X: 10, Y: 0}, {X: 30, Y: 96}})

	tests := []struct {
		name   string
		x0, x1 float64
		want   float64
	}{
		{"fully inside", 15, 25, 10},
		{"partial left", 0, 15, 5},
		{"partial right", 25, 40, 5},
		{"disjoint", 40, 50, -10},
		{"touching edge", 30, 40, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.XOverlap(tt.x0, tt.x1); got != tt.want {
				t.Errorf("XOverlap(%v, %v) = %v, want %v", tt.x0, tt.x1, got, tt.want)
			}
		})
	}
}

func TestBestElevation(t *testing.T) {
	mk := func(y0, y1 float64) ElevationView {
		v, _ := NewElevationView([]Point{{Y: y0}, {Y: y1}})
		return v
	}

	p := &Panel{Elevations: []ElevationView{
		mk(0, 80),
		mk(-10, -2), // negative tops never win
		mk(0, 96),
		mk(0, 88),
	}}
	best, ok := p.BestElevation()
	if !ok || best.MaxY != 96 {
		t.Errorf("BestElevation = (%v, %v), want top 96", best.MaxY, ok)
	}

	empty := &Panel{}
	if _, ok := empty.BestElevation(); ok {
		t.Error("panel without elevations should report none")
	}
	if empty.HasElevations() {
		t.Error("HasElevations should be false for empty panel")
	}
}

func TestJobIndexing(t *testing.T) {
	j := NewJob()
	a := &Panel{Guid: "A"}
	b := &Panel{Guid: "B"}
	j.AddPanel(a)
	j.AddPanel(b)

	j.AddMaterial("A", &Material{Description: "first"})
	j.AddMaterial("B", &Material{Description: "second"})
	j.AddMaterial("A", &Material{Description: "third"})

	if j.PanelCount() != 2 {
		t.Errorf("PanelCount = %d, want 2", j.PanelCount())
	}
	if j.Panel("A") != a || j.Panel("B") != b {
		t.Error("panel lookup by guid failed")
	}
	if j.Panel("missing") != nil {
		t.Error("unknown guid should return nil")
	}
	if got := j.Materials("A"); len(got) != 2 {
		t.Errorf("materials for A = %d, want 2", len(got))
	}

	all := j.AllMaterials()
	if len(all) != 3 {
		t.Fatalf("AllMaterials = %d, want 3", len(all))
	}
	// Panel encounter order, then source order.
	want := []string{"first", "third", "second"}
	for i, m := range all {
		if m.Description != want[i] {
			t.Errorf("all[%d] = %q, want %q", i, m.Description, want[i])
		}
	}
}
