package resolver

import "github.com/tsawler/ehx/model"

// Tier identifies which rung of the GUID chain decided a material's
// inclusion or exclusion.
type Tier int

const (
	// TierPanel means both sides carried a PanelGuid.
	TierPanel Tier = iota
	// TierLevel means PanelGuid was unavailable but LevelGuid decided.
	TierLevel
	// TierBundle means only BundleGuid was available on both sides.
	TierBundle
	// TierFallback means no GUID was available on either side; the
	// material is included so sparse files still report fully.
	TierFallback
)

func (t Tier) String() string {
	switch t {
	case TierPanel:
		return "panel"
	case TierLevel:
		return "level"
	case TierBundle:
		return "bundle"
	default:
		return "fallback"
	}
}

// FilterByPanel returns the materials belonging to panel. The decision
// chain per material: PanelGuid exact match when both sides have one;
// else LevelGuid; else BundleGuid; else include. A tier that applies is
// final — a PanelGuid mismatch excludes the material even if its
// LevelGuid would have matched.
func FilterByPanel(materials []*model.Material, panel *model.Panel) []*model.Material {
	out := make([]*model.Material, 0, len(materials))
	for _, m := range materials {
		if include, _ := Decide(m, panel); include {
			out = append(out, m)
		}
	}
	return out
}

// Decide reports whether the material belongs to the panel and which tier
// made the call.
func Decide(m *model.Material, panel *model.Panel) (bool, Tier) {
	switch {
	case panel.Guid != "" && m.PanelGuid != "":
		return m.PanelGuid == panel.Guid, TierPanel
	case panel.LevelGuid != "" && m.LevelGuid != "":
		return m.LevelGuid == panel.LevelGuid, TierLevel
	case panel.BundleGuid != "" && m.BundleGuid != "":
		return m.BundleGuid == panel.BundleGuid, TierBundle
	default:
		return true, TierFallback
	}
}
