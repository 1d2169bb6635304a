package opening

import (
	"strings"

	"github.com/tsawler/ehx/model"
)

// matchFields holds the lowercased material fields the classifier rules
// inspect.
type matchFields struct {
	typ   string
	desc  string
	label string
	fam   string
}

// rule is one classification heuristic. Rules run in declaration order;
// the first match wins.
type rule struct {
	name  string
	match func(matchFields) bool
}

// headerTypes are excluded from the legacy label rule: a header board
// near an opening is framing, not the opening itself.
var headerTypes = map[string]bool{
	"header":        true,
	"headercap":     true,
	"headercripple": true,
}

// legacyOpeningLabels is a narrow safety net for labels observed in the
// field on openings that carry no other marker. It is deliberately not a
// general rule; do not extend it.
var legacyOpeningLabels = map[string]bool{
	"bsmt-hdr": true,
	"49x63-l2": true,
}

var classifierRules = []rule{
	{
		name: "type-exact",
		match: func(f matchFields) bool {
			return f.typ == "roughopening"
		},
	},
	{
		name: "contains-rough",
		match: func(f matchFields) bool {
			return containsAny(f, "rough")
		},
	},
	{
		name: "contains-opening",
		match: func(f matchFields) bool {
			return containsAny(f, "opening")
		},
	},
	{
		name: "legacy-label",
		match: func(f matchFields) bool {
			if headerTypes[f.typ] {
				return false
			}
			return legacyOpeningLabels[f.label] || strings.Contains(f.label, "hdr")
		},
	},
}

func containsAny(f matchFields, sub string) bool {
	return strings.Contains(f.typ, sub) ||
		strings.Contains(f.desc, sub) ||
		strings.Contains(f.label, sub) ||
		strings.Contains(f.fam, sub)
}

// IsRoughOpening reports whether the material represents a rough opening
// (a framed door/window gap) rather than stock to cut. The decision is
// pure and deterministic for identical input.
func IsRoughOpening(m *model.Material) bool {
	_, ok := ClassifyRule(m)
	return ok
}

// ClassifyRule returns the name of the first classifier rule matching the
// material, or ("", false) when none match.
func ClassifyRule(m *model.Material) (string, bool) {
	f := matchFields{
		typ:   strings.ToLower(m.Type),
		desc:  strings.ToLower(m.Description),
		label: strings.ToLower(m.Label),
		fam:   strings.ToLower(m.FamilyMemberName),
	}
	for _, r := range classifierRules {
		if r.match(f) {
			return r.name, true
		}
	}
	return "", false
}
