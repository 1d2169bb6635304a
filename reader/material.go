package reader

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/tsawler/ehx/model"
)

// descriptionFields is the fallback list for material descriptions read
// from a nested Material child or from the element itself.
var descriptionFields = []string{"Description", "Desc", "Material", "Name"}

// parseMaterials walks all Board, Sheet, and Bracing descendants of a
// panel, plus Board descendants of rough-opening (and beam-pocket)
// SubAssemblies. A board inside such a SubAssembly is emitted only by the
// SubAssembly walk, never by the top-level Board walk, so a (guid, type)
// pair always comes from exactly one walk.
func (r *Reader) parseMaterials(panelEl *Node, p *model.Panel) []*model.Material {
	subs := openingSubAssemblies(panelEl)

	claimed := make(map[*Node]bool)
	for _, sub := range subs {
		for _, b := range sub.el.Descendants("Board") {
			claimed[b] = true
		}
	}

	var mats []*model.Material
	for _, node := range panelEl.Descendants("Board") {
		if claimed[node] {
			continue
		}
		mats = append(mats, parseBoard(node))
	}
	for _, node := range panelEl.Descendants("Sheet") {
		mats = append(mats, parseSheet(node))
	}
	for _, node := range panelEl.Descendants("Bracing") {
		mats = append(mats, parseBracing(node))
	}
	for _, sub := range subs {
		mats = append(mats, r.parseOpeningSubAssembly(sub)...)
	}

	inheritGuids(mats, p)
	return mats
}

// parseBoard extracts one top-level Board element. Descriptions and
// dimensions prefer the nested Material child when present.
func parseBoard(node *Node) *model.Material {
	typ := node.ChildText("FamilyMemberName", "Type", "Name")
	if typ == "" {
		typ = "Board"
	}
	fam := node.ChildText("FamilyMemberName", "Family", "FamilyName", "Type", "Name")
	if fam == "" {
		fam = typ
	}
	matEl := node.Child("Material")
	if matEl == nil {
		matEl = node
	}
	guid := node.ChildText("BoardGuid", "BoardID")
	if guid == "" {
		guid = matEl.ChildText("BoardGuid", "BoardID")
	}
	return &model.Material{
		Kind:             model.KindBoard,
		Type:             typ,
		FamilyMemberName: fam,
		Label:            node.ChildText("Label", "LabelText"),
		SubAssembly:      node.ChildText("SubAssembly", "SubAssemblyName"),
		Description:      matEl.ChildText(descriptionFields...),
		Quantity:         quantityOf(matEl),
		ActualLength:     matEl.ChildText("ActualLength", "Length"),
		ActualWidth:      matEl.ChildText("ActualWidth", "Width"),
		Guid:             guid,
		SubAssemblyGuid:  node.ChildText("SubAssemblyGuid", "SubAssemblyID"),
		PanelGuid:        node.ChildText("PanelGuid"),
		BundleGuid:       node.ChildText("BundleGuid"),
		LevelGuid:        node.ChildText("LevelGuid"),
	}
}

// parseSheet extracts one Sheet element. The description prefers the
// nested Material/Description, then falls back to sheet-level fields,
// TypeOfSheathing first.
func parseSheet(node *Node) *model.Material {
	typ := node.ChildText("FamilyMemberName", "Type", "Name")
	if typ == "" {
		typ = "Sheathing"
	}
	fam := node.ChildText("FamilyMemberName", "Family", "FamilyName", "Type", "Name")
	if fam == "" {
		fam = typ
	}

	matEl := node.Child("Material")
	desc := ""
	length := ""
	width := ""
	guid := ""
	if matEl != nil {
		desc = matEl.ChildText(descriptionFields...)
		length = matEl.ChildText("ActualLength", "Length")
		width = matEl.ChildText("ActualWidth", "Width")
		guid = matEl.ChildText("SheetGuid", "SheetID")
	}
	if desc == "" {
		desc = node.ChildText("TypeOfSheathing", "Description", "Desc", "Material", "Name", "TypeOfFastener")
	}
	if length == "" {
		length = node.ChildText("ActualLength", "Length")
	}
	if width == "" {
		width = node.ChildText("ActualWidth", "Width")
	}
	if g := node.ChildText("SheetGuid", "SheetID"); g != "" {
		guid = g
	}

	return &model.Material{
		Kind:             model.KindSheet,
		Type:             typ,
		FamilyMemberName: fam,
		Label:            node.ChildText("Label", "LabelText"),
		SubAssembly:      node.ChildText("SubAssembly", "SubAssemblyName"),
		Description:      desc,
		Quantity:         quantityOf(node),
		ActualLength:     length,
		ActualWidth:      width,
		Guid:             guid,
		SubAssemblyGuid:  node.ChildText("SubAssemblyGuid", "SubAssemblyID"),
		PanelGuid:        node.ChildText("PanelGuid"),
		BundleGuid:       node.ChildText("BundleGuid"),
		LevelGuid:        node.ChildText("LevelGuid"),
	}
}

// parseBracing extracts one Bracing element. Bracing follows the Board
// pattern but carries no width.
func parseBracing(node *Node) *model.Material {
	typ := node.ChildText("FamilyMemberName", "Type", "Name")
	if typ == "" {
		typ = "Bracing"
	}
	fam := node.ChildText("FamilyMemberName", "Family", "FamilyName", "Type", "Name")
	if fam == "" {
		fam = typ
	}
	return &model.Material{
		Kind:             model.KindBracing,
		Type:             typ,
		FamilyMemberName: fam,
		Label:            node.ChildText("Label", "LabelText"),
		SubAssembly:      node.ChildText("SubAssembly", "SubAssemblyName"),
		Description:      node.ChildText(descriptionFields...),
		Quantity:         quantityOf(node),
		ActualLength:     node.ChildText("ActualLength", "Length"),
		Guid:             node.ChildText("BracingGuid", "BracingID"),
		SubAssemblyGuid:  node.ChildText("SubAssemblyGuid", "SubAssemblyID"),
		PanelGuid:        node.ChildText("PanelGuid"),
		BundleGuid:       node.ChildText("BundleGuid"),
		LevelGuid:        node.ChildText("LevelGuid"),
	}
}

func quantityOf(n *Node) string {
	if q := n.ChildText("Quantity", "QNT", "Qty"); q != "" {
		return q
	}
	return "1"
}

// openingSub describes one SubAssembly consumed by the opening walk.
type openingSub struct {
	el         *Node
	family     string
	label      string
	name       string
	guid       string
	beamPocket bool
}

// openingSubAssemblies selects the SubAssemblies whose FamilyMemberName is
// RoughOpening (case-insensitive) or names a beam pocket. Sheathing
// sub-assemblies are ignored here; the Sheet walk covers them.
func openingSubAssemblies(panelEl *Node) []*openingSub {
	var out []*openingSub
	for _, el := range panelEl.Descendants("SubAssembly") {
		fam := el.ChildText("FamilyMemberName", "Family", "FamilyName", "Type", "Name")
		lower := strings.ToLower(strings.TrimSpace(fam))
		isOpening := lower == "roughopening"
		isPocket := strings.Contains(lower, "beampocket")
		if !isOpening && !isPocket {
			continue
		}
		out = append(out, &openingSub{
			el:         el,
			family:     fam,
			label:      el.ChildText("Label", "LabelText"),
			name:       el.ChildText("SubAssemblyName"),
			guid:       el.ChildText("SubAssemblyGuid", "SubAssemblyID"),
			beamPocket: isPocket,
		})
	}
	return out
}

// parseOpeningSubAssembly re-emits the Boards of a rough-opening (or
// beam-pocket) SubAssembly as Board-type materials carrying the
// SubAssembly's GUID and the captured opening geometry. A board-less
// SubAssembly with elevation data still yields one synthetic entry so the
// opening is not lost.
func (r *Reader) parseOpeningSubAssembly(sub *openingSub) []*model.Material {
	bx0, bx1, haveBottom := bottomViewExtent(sub.el)
	elevMin, elevMax, haveElev := elevationExtent(sub.el)

	var mats []*model.Material
	for _, b := range sub.el.Descendants("Board") {
		btyp := b.ChildText("FamilyMemberName", "Type", "Name")
		if btyp == "" {
			btyp = "Board"
		}
		matEl := b.Child("Material")
		if matEl == nil {
			matEl = b
		}

		fam := btyp
		if !sub.beamPocket {
			fam = "RoughOpening"
		}
		m := &model.Material{
			Kind:             model.KindSubAssemblyBoard,
			Type:             btyp,
			FamilyMemberName: fam,
			Label:            b.ChildText("Label", "LabelText"),
			SubAssembly:      sub.name,
			Description:      matEl.ChildText(descriptionFields...),
			ActualLength:     matEl.ChildText("ActualLength", "Length"),
			ActualWidth:      matEl.ChildText("ActualWidth", "Width"),
			Guid:             b.ChildText("BoardGuid", "BoardID"),
			SubAssemblyGuid:  sub.guid,
		}
		if haveBottom {
			m.BottomXMin = model.Float(bx0)
			m.BottomXMax = model.Float(bx1)
		}
		if haveElev {
			m.ElevMinY = model.Float(elevMin)
			m.ElevMaxY = model.Float(elevMax)
		}

		// Trimmers and king studs carry their own coordinates; a
		// trimmer's top Y is the opening's AFF reference edge.
		if strings.Contains(btyp, "Trimmer") || strings.Contains(btyp, "KingStud") {
			if y, ok := memberY(b); ok {
				m.BoardY = model.Float(y)
			}
			if x, ok := memberX(b); ok {
				m.BoardX = model.Float(x)
			}
		}
		switch {
		case m.BoardY != nil && strings.Contains(btyp, "Trimmer"):
			m.AFF = m.BoardY
		case m.ElevMaxY != nil:
			m.AFF = m.ElevMaxY
		}
		mats = append(mats, m)
	}

	if len(mats) == 0 && haveElev {
		desc := sub.name
		if desc == "" {
			desc = sub.family
		}
		m := &model.Material{
			Kind:             model.KindSubAssemblyBoard,
			Type:             "SubAssembly",
			FamilyMemberName: sub.family,
			Label:            sub.label,
			SubAssembly:      sub.name,
			Description:      desc,
			SubAssemblyGuid:  sub.guid,
			ElevMinY:         model.Float(elevMin),
			ElevMaxY:         model.Float(elevMax),
			AFF:              model.Float(elevMax),
		}
		mats = append(mats, m)
	}

	r.log.Debug("opening sub-assembly parsed",
		slog.String("family", sub.family),
		slog.String("name", sub.name),
		slog.Int("materials", len(mats)))
	return mats
}

// bottomViewExtent returns the X range of the SubAssembly's BottomView.
func bottomViewExtent(el *Node) (min, max float64, ok bool) {
	bv := el.FirstDescendant("BottomView")
	if bv == nil {
		return 0, 0, false
	}
	first := true
	for _, pt := range bv.Descendants("Point") {
		x, parsed := pt.ChildFloat("X")
		if !parsed {
			continue
		}
		if first || x < min {
			min = x
		}
		if first || x > max {
			max = x
		}
		first = false
	}
	return min, max, !first
}

// elevationExtent returns the Y range of the SubAssembly's own
// ElevationView, which gives the opening's local top and bottom.
func elevationExtent(el *Node) (min, max float64, ok bool) {
	ev := el.FirstDescendant("ElevationView")
	if ev == nil {
		return 0, 0, false
	}
	first := true
	for _, pt := range ev.Descendants("Point") {
		y, parsed := pt.ChildFloat("Y")
		if !parsed {
			continue
		}
		if first || y < min {
			min = y
		}
		if first || y > max {
			max = y
		}
		first = false
	}
	return min, max, !first
}

// memberY finds a board member's own vertical reference: the top of its
// ElevationView when present, else the first parseable Y anywhere under
// the board.
func memberY(b *Node) (float64, bool) {
	if ev := b.FirstDescendant("ElevationView"); ev != nil {
		best := 0.0
		found := false
		for _, yEl := range ev.Descendants("Y") {
			y, err := strconv.ParseFloat(yEl.Text, 64)
			if err != nil {
				continue
			}
			if !found || y > best {
				best = y
			}
			found = true
		}
		if found {
			return best, true
		}
	}
	for _, yEl := range b.Descendants("Y") {
		if y, err := strconv.ParseFloat(yEl.Text, 64); err == nil {
			return y, true
		}
	}
	return 0, false
}

// memberX finds a board member's own horizontal position: the first
// parseable X anywhere under the board.
func memberX(b *Node) (float64, bool) {
	for _, xEl := range b.Descendants("X") {
		if x, err := strconv.ParseFloat(xEl.Text, 64); err == nil {
			return x, true
		}
	}
	return 0, false
}

// inheritGuids copies the owning panel's identity GUIDs onto each material
// that lacks its own. Inheritance never overwrites an existing value.
func inheritGuids(mats []*model.Material, p *model.Panel) {
	for _, m := range mats {
		if m.PanelGuid == "" {
			m.PanelGuid = p.Guid
		}
		if m.BundleGuid == "" && p.BundleGuid != "" {
			m.BundleGuid = p.BundleGuid
		}
		if m.LevelGuid == "" && p.LevelGuid != "" {
			m.LevelGuid = p.LevelGuid
		}
	}
}
