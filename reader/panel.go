package reader

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/tsawler/ehx/format"
	"github.com/tsawler/ehx/model"
)

// scalar panel attributes copied verbatim when present.
var panelScalarFields = []string{
	"Level", "Description", "Bundle", "BundleName", "BundleGuid",
	"Height", "Thickness", "StudSpacing", "WallLength", "LoadBearing",
	"Category", "OnScreenInstruction", "Weight",
}

// parsePanels builds every Panel entity and its material list.
func (r *Reader) parsePanels() {
	for _, el := range r.root.Descendants("Panel") {
		p := r.parsePanel(el)
		r.job.AddPanel(p)

		mats := r.parseMaterials(el, p)
		for _, m := range mats {
			r.job.AddMaterial(p.Guid, m)
		}

		r.log.Debug("panel parsed",
			slog.String("guid", p.Guid),
			slog.String("label", p.DisplayLabel),
			slog.Int("elevations", len(p.Elevations)),
			slog.Int("materials", len(mats)))
	}
}

// parsePanel extracts one Panel. GUID resolution priority is
// PanelGuid, PanelID, PanelName, Label, then a synthetic Panel_<n>
// assigned in encounter order so identity is always unique and non-empty.
func (r *Reader) parsePanel(el *Node) *model.Panel {
	guid := el.ChildText("PanelGuid", "PanelID")
	label := el.ChildText("Label")
	if guid == "" {
		guid = el.ChildText("PanelName", "PanelID", "Label")
	}
	if guid == "" {
		guid = fmt.Sprintf("Panel_%d", r.job.PanelCount()+1)
	}
	if label == "" {
		label = guid
	}

	p := &model.Panel{Guid: guid, DisplayLabel: label}

	if no := el.ChildText("LevelNo"); no != "" {
		p.LevelNo = no
		p.Level = no
	}
	p.LevelGuid = el.ChildText("LevelGuid")

	for _, field := range panelScalarFields {
		if v := el.ChildText(field); v != "" {
			setPanelField(p, field, v)
		}
	}

	r.parseSquaring(el, p)
	if r.version == format.V2 && p.BundleName == "" {
		r.backfillBundle(el, p)
	}
	r.backfillDescription(el, p)
	p.Elevations = parseElevations(el)

	return p
}

func setPanelField(p *model.Panel, field, v string) {
	switch field {
	case "Level":
		if p.Level == "" {
			p.Level = v
		}
	case "Description":
		p.Description = v
	case "Bundle":
		p.Bundle = v
	case "BundleName":
		p.BundleName = v
	case "BundleGuid":
		p.BundleGuid = v
	case "Height":
		p.Height = v
	case "Thickness":
		p.Thickness = v
	case "StudSpacing":
		p.StudSpacing = v
	case "WallLength":
		p.WallLength = v
	case "LoadBearing":
		p.LoadBearing = v
	case "Category":
		p.Category = v
	case "OnScreenInstruction":
		p.OnScreenInstruction = v
	case "Weight":
		p.Weight = v
	}
}

// parseSquaring reads the diagonal squaring dimension, preferring the
// nested Squaring/SquareDimension element, then a direct SquareDimension,
// then computing it from Height and WallLength. The 1.5" height deduction
// accounts for the top plate, which ships loose.
func (r *Reader) parseSquaring(el *Node, p *model.Panel) {
	raw := ""
	if sq := el.Child("Squaring"); sq != nil {
		raw = sq.ChildText("SquareDimension")
	}
	if raw == "" {
		raw = el.ChildText("SquareDimension")
	}
	if raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			p.SquaringInches = model.Float(v)
			return
		}
	}
	h, errH := strconv.ParseFloat(p.Height, 64)
	l, errL := strconv.ParseFloat(p.WallLength, 64)
	if errH == nil && errL == nil {
		h -= 1.5
		p.SquaringInches = model.Float(math.Hypot(h, l))
	}
}

// backfillBundle resolves a v2.0 panel's bundle from the Junction map
// (PanelID first, then display label) and finally from BundleLayer.
func (r *Reader) backfillBundle(el *Node, p *model.Panel) {
	if name, ok := r.junctionBundles[p.Guid]; ok {
		p.BundleName = name
		return
	}
	if name, ok := r.junctionBundles[p.DisplayLabel]; ok {
		p.BundleName = name
		return
	}
	if raw := el.ChildText("BundleLayer"); raw != "" {
		if layer, err := strconv.Atoi(raw); err == nil {
			if name, ok := r.bundleLayers[layer]; ok {
				p.BundleName = name
				r.log.Debug("bundle assigned from layer",
					slog.String("panel", p.DisplayLabel),
					slog.Int("layer", layer),
					slog.String("bundle", name))
			}
		}
	}
}

// backfillDescription fills a missing panel Description from the level
// maps, preferring a LevelGuid match over a LevelNo match.
func (r *Reader) backfillDescription(el *Node, p *model.Panel) {
	if p.Description != "" {
		return
	}
	if guid := el.ChildText("LevelGuid"); guid != "" {
		if desc := r.levelByGuid[guid]; desc != "" {
			p.LevelDescription = desc
			p.Description = desc
		}
		return
	}
	no := p.LevelNo
	if no == "" {
		no = p.Level
	}
	if no != "" {
		if desc := r.levelByNo[no]; desc != "" {
			p.LevelDescription = desc
			p.Description = desc
		}
	}
}

// parseElevations collects every descendant ElevationView polygon, not
// just direct children; openings and sub-assemblies nest their own views.
// Views with no parseable points are discarded.
func parseElevations(el *Node) []model.ElevationView {
	var out []model.ElevationView
	for _, ev := range el.Descendants("ElevationView") {
		if view, ok := model.NewElevationView(parsePoints(ev)); ok {
			out = append(out, view)
		}
	}
	return out
}

// parsePoints reads the X/Y pairs of the direct Point children. A point
// missing one coordinate contributes the zero value for it, matching the
// tolerant behavior expected of EHX exports.
func parsePoints(ev *Node) []model.Point {
	var pts []model.Point
	for _, pt := range ev.Children {
		if pt.Name != "Point" {
			continue
		}
		xEl := pt.Child("X")
		yEl := pt.Child("Y")
		if xEl == nil || yEl == nil {
			continue
		}
		x, errX := strconv.ParseFloat(xEl.Text, 64)
		y, errY := strconv.ParseFloat(yEl.Text, 64)
		if errX != nil && xEl.Text != "" {
			continue
		}
		if errY != nil && yEl.Text != "" {
			continue
		}
		pts = append(pts, model.Point{X: x, Y: y})
	}
	return pts
}
