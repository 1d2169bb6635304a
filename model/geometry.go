package model

import "gonum.org/v1/gonum/floats"

// Point represents a 2D point on a panel silhouette, in inches.
type Point struct {
	X, Y float64
}

// ElevationView is one 2D polygon describing a panel silhouette. MinY,
// MaxY, and Height are derived from the point list at construction.
type ElevationView struct {
	Points []Point

	MinY   float64
	MaxY   float64
	Height float64
}

// NewElevationView builds an elevation view from a point list and derives
// its vertical extent. The boolean is false for an empty point list; such
// views are discarded by the extractor.
func NewElevationView(points []Point) (ElevationView, bool) {
	if len(points) == 0 {
		return ElevationView{}, false
	}
	ys := make([]float64, len(points))
	for i, p := range points {
		ys[i] = p.Y
	}
	minY := floats.Min(ys)
	maxY := floats.Max(ys)
	return ElevationView{
		Points: points,
		MinY:   minY,
		MaxY:   maxY,
		Height: maxY - minY,
	}, true
}

// XExtent returns the horizontal extent of the polygon. The boolean is
// false when the view has no points.
func (ev ElevationView) XExtent() (min, max float64, ok bool) {
	if len(ev.Points) == 0 {
		return 0, 0, false
	}
	xs := make([]float64, len(ev.Points))
	for i, p := range ev.Points {
		xs[i] = p.X
	}
	return floats.Min(xs), floats.Max(xs), true
}

// XOverlap returns the length of the overlap between the polygon's
// horizontal extent and the interval [x0, x1]. A non-positive result
// means the ranges do not overlap.
func (ev ElevationView) XOverlap(x0, x1 float64) float64 {
	ex0, ex1, ok := ev.XExtent()
	if !ok {
		return 0
	}
	lo := x0
	if ex0 > lo {
		lo = ex0
	}
	hi := x1
	if ex1 < hi {
		hi = ex1
	}
	return hi - lo
}
