package model

// Panel represents one wall panel. Guid is the stable identity within a
// load: PanelGuid when present, else PanelID, else PanelName, else Label,
// else a synthetic "Panel_<n>" assigned in encounter order. DisplayLabel
// is the human-facing name (Label text, falling back to Guid).
//
// Scalar attributes are copied verbatim from the source file and are all
// optional; an absent field stays "".
type Panel struct {
	Guid         string
	DisplayLabel string

	Level               string
	LevelNo             string
	LevelGuid           string
	Description         string
	LevelDescription    string
	Bundle              string
	BundleName          string
	BundleGuid          string
	Height              string
	Thickness           string
	StudSpacing         string
	WallLength          string
	LoadBearing         string
	Category            string
	OnScreenInstruction string
	Weight              string

	// SquaringInches is the diagonal squaring dimension in raw inches,
	// either read from the file or computed from Height and WallLength.
	// Nil when neither source was available.
	SquaringInches *float64

	Elevations []ElevationView
}

// HasElevations reports whether the panel carries any elevation geometry.
func (p *Panel) HasElevations() bool {
	return len(p.Elevations) > 0
}

// BestElevation returns the elevation view with the highest top edge
// among views whose MaxY is positive. The boolean is false when the
// panel has no usable elevation data.
func (p *Panel) BestElevation() (ElevationView, bool) {
	var best ElevationView
	found := false
	for _, ev := range p.Elevations {
		if ev.MaxY <= 0 {
			continue
		}
		if !found || ev.MaxY > best.MaxY {
			best = ev
			found = true
		}
	}
	return best, found
}
