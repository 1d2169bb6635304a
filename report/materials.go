package report

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tsawler/ehx/model"
)

// labelCollator orders labels naturally: alphabetic runs compare
// case-insensitively, numeric runs compare as numbers, so A2 sorts
// before A10.
var labelCollator = collate.New(language.Und, collate.Numeric, collate.IgnoreCase)

// groupKey identifies one report line: materials with the same label,
// type, description, and rounded dimensions collapse into one group.
type groupKey struct {
	label  string
	typ    string
	desc   string
	length string
	width  string
}

// group accumulates one rendered line's worth of materials.
type group struct {
	key    groupKey
	family string
	length string
	width  string
	count  int
}

// Lines groups, sorts, and renders materials into report lines of the
// form "Label - Family - Description - (count)" with a trailing size for
// sheathing. Callers pass the non-opening materials of one panel;
// association filtering and opening classification happen upstream.
func Lines(materials []*model.Material) []string {
	groups := make(map[groupKey]*group)
	for _, m := range materials {
		key := keyFor(m)
		g, ok := groups[key]
		if !ok {
			g = &group{
				key:    key,
				family: strings.TrimSpace(m.FamilyMemberName),
				length: m.ActualLength,
				width:  m.ActualWidth,
			}
			groups[key] = g
		}
		g.count++
	}

	ordered := make([]*group, 0, len(groups))
	for _, g := range groups {
		ordered = append(ordered, g)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if c := labelCollator.CompareString(ordered[i].key.label, ordered[j].key.label); c != 0 {
			return c < 0
		}
		return ordered[i].key.desc < ordered[j].key.desc
	})

	lines := make([]string, 0, len(ordered))
	for _, g := range ordered {
		lines = append(lines, renderLine(g))
	}
	return lines
}

// keyFor computes the grouping key. Dimensions round to two decimals so
// exporter float noise does not split groups; zero dimensions key as
// empty.
func keyFor(m *model.Material) groupKey {
	return groupKey{
		label:  displayLabel(m),
		typ:    strings.TrimSpace(m.Type),
		desc:   strings.TrimSpace(m.Description),
		length: dimensionKey(m.ActualLength),
		width:  dimensionKey(m.ActualWidth),
	}
}

// displayLabel falls back to a short type-description tag for unlabeled
// materials so they still group and sort sensibly.
func displayLabel(m *model.Material) string {
	label := strings.TrimSpace(m.Label)
	if label != "" {
		return label
	}
	tag := m.Type + "-" + m.Description
	if len(tag) > 6 {
		tag = tag[:6]
	}
	return tag
}

func dimensionKey(raw string) string {
	if raw == "" {
		return ""
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return strings.TrimSpace(raw)
	}
	rounded := math.Round(v*100) / 100
	if rounded == 0 {
		return ""
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// renderLine renders one group. The middle column is the family member
// name, falling back to the type. Size renders only for sheet goods:
// boards and bracing report length through their description stock size.
func renderLine(g *group) string {
	mid := g.family
	if mid == "" {
		mid = g.key.typ
	}
	line := fmt.Sprintf("%s - %s - %s - (%d)", g.key.label, mid, g.key.desc, g.count)
	if size := sheetSize(g); size != "" {
		line += " - " + size
	}
	return line
}

// sheetSize formats "length x width" for sheathing-classified types,
// degrading to whichever single dimension is present.
func sheetSize(g *group) string {
	typ := strings.ToLower(g.key.typ)
	if !strings.Contains(typ, "sheet") && !strings.Contains(typ, "sheath") {
		return ""
	}
	lengthStr := sizeDim(g.length)
	widthStr := sizeDim(g.width)
	switch {
	case lengthStr != "" && widthStr != "":
		return lengthStr + " x " + widthStr
	case lengthStr != "":
		return lengthStr
	default:
		return widthStr
	}
}

func sizeDim(raw string) string {
	switch raw {
	case "", "0", "0.0":
		return ""
	}
	return FeetInchesSixteenthsString(raw)
}
