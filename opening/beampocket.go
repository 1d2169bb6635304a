package opening

import (
	"sort"
	"strings"

	"github.com/tsawler/ehx/model"
)

// BeamPocket summarizes one beam pocket: a shallow opening framed by a
// trimmer between king studs, where a beam end will bear.
type BeamPocket struct {
	PanelGuid string

	// BottomAFF is the height of the pocket's bearing surface above the
	// finished floor; nil when no trimmer geometry was captured.
	BottomAFF *float64

	// OpeningWidth is the clear width between the outer king studs,
	// falling back to the sub-assembly's BottomView extent.
	OpeningWidth *float64

	// TopAFF is BottomAFF plus OpeningWidth when both are known.
	TopAFF *float64

	// Labels counts member labels inside the pocket.
	Labels map[string]int

	// Count is how many identical pockets were merged into this entry.
	Count int
}

// BeamPockets derives beam pocket summaries from a panel's materials.
// Only trimmer and king stud members of beam-pocket (or rough-opening)
// sub-assemblies participate; identical pockets merge with a count.
func BeamPockets(materials []*model.Material) []*BeamPocket {
	groups := make(map[string][]*model.Material)
	var order []string
	for _, m := range materials {
		if m.SubAssemblyGuid == "" {
			continue
		}
		name := strings.ToLower(m.SubAssembly)
		if !strings.Contains(name, "beampocket") && !strings.Contains(name, "roughopening") {
			continue
		}
		if !strings.Contains(m.Type, "Trimmer") && !strings.Contains(m.Type, "KingStud") {
			continue
		}
		if _, seen := groups[m.SubAssemblyGuid]; !seen {
			order = append(order, m.SubAssemblyGuid)
		}
		groups[m.SubAssemblyGuid] = append(groups[m.SubAssemblyGuid], m)
	}

	var raw []*BeamPocket
	for _, guid := range order {
		if bp := buildPocket(groups[guid]); bp != nil {
			raw = append(raw, bp)
		}
	}
	return mergePockets(raw)
}

// buildPocket derives one pocket from its member materials.
func buildPocket(members []*model.Material) *BeamPocket {
	bp := &BeamPocket{Labels: make(map[string]int), Count: 1}

	var kingStudXs []float64
	for _, m := range members {
		if m.Label != "" {
			bp.Labels[m.Label]++
		}
		if bp.PanelGuid == "" {
			bp.PanelGuid = m.PanelGuid
		}

		if strings.Contains(m.Type, "Trimmer") && bp.BottomAFF == nil {
			bp.BottomAFF = trimmerAFF(m)
		}
		if strings.Contains(m.Type, "KingStud") {
			switch {
			case m.BoardX != nil:
				kingStudXs = append(kingStudXs, *m.BoardX)
			case m.BottomXMin != nil:
				kingStudXs = append(kingStudXs, *m.BottomXMin)
			case m.BottomXMax != nil:
				kingStudXs = append(kingStudXs, *m.BottomXMax)
			}
		}
	}
	if len(bp.Labels) == 0 {
		return nil
	}

	// Clear width between the outer king studs; the BottomView extent of
	// any member stands in when stud positions were not captured.
	if len(kingStudXs) >= 2 {
		sort.Float64s(kingStudXs)
		bp.OpeningWidth = model.Float(kingStudXs[len(kingStudXs)-1] - kingStudXs[0])
	} else {
		for _, m := range members {
			if m.BottomXMin != nil && m.BottomXMax != nil {
				bp.OpeningWidth = model.Float(*m.BottomXMax - *m.BottomXMin)
				break
			}
		}
	}

	if bp.BottomAFF != nil && bp.OpeningWidth != nil {
		bp.TopAFF = model.Float(*bp.BottomAFF + *bp.OpeningWidth)
	}
	return bp
}

// trimmerAFF resolves a trimmer's bearing height: top Y minus the
// sub-assembly's bottom Y when both were captured, then the raw top Y,
// then the captured elevation top, then the explicit AFF field.
func trimmerAFF(m *model.Material) *float64 {
	switch {
	case m.BoardY != nil && m.ElevMinY != nil:
		return model.Float(*m.BoardY - *m.ElevMinY)
	case m.BoardY != nil:
		return m.BoardY
	case m.ElevMaxY != nil:
		return m.ElevMaxY
	case m.AFF != nil:
		return m.AFF
	default:
		return nil
	}
}

// mergePockets collapses pockets with identical label counts, bearing
// height, and width into one entry with a count.
func mergePockets(raw []*BeamPocket) []*BeamPocket {
	var out []*BeamPocket
	for _, bp := range raw {
		merged := false
		for _, existing := range out {
			if samePocket(existing, bp) {
				existing.Count++
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, bp)
		}
	}
	return out
}

func samePocket(a, b *BeamPocket) bool {
	if !sameFloat(a.BottomAFF, b.BottomAFF) || !sameFloat(a.OpeningWidth, b.OpeningWidth) {
		return false
	}
	if len(a.Labels) != len(b.Labels) {
		return false
	}
	for label, n := range a.Labels {
		if b.Labels[label] != n {
			return false
		}
	}
	return true
}

func sameFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
