package model

// MaterialKind distinguishes which extraction walk produced a material.
type MaterialKind int

const (
	// KindBoard is a top-level Board element.
	KindBoard MaterialKind = iota
	// KindSheet is a Sheet (sheathing) element.
	KindSheet
	// KindBracing is a Bracing element.
	KindBracing
	// KindSubAssemblyBoard is a Board re-emitted from a rough-opening
	// SubAssembly walk. A given (Guid, Type) pair appears from exactly
	// one walk, never both.
	KindSubAssemblyBoard
)

func (k MaterialKind) String() string {
	switch k {
	case KindBoard:
		return "Board"
	case KindSheet:
		return "Sheet"
	case KindBracing:
		return "Bracing"
	case KindSubAssemblyBoard:
		return "SubAssemblyBoard"
	default:
		return "Unknown"
	}
}

// Material is one framing member: a Board, Sheet, or Bracing element, or
// a Board re-emitted from a rough-opening SubAssembly. Textual fields are
// optional and stay "" when absent; numeric captures use pointers so an
// absent value is distinguishable from zero.
type Material struct {
	Kind MaterialKind

	Type             string
	FamilyMemberName string
	Label            string
	SubAssembly      string
	Description      string
	Quantity         string
	ActualLength     string
	ActualWidth      string

	// Guid is the type-specific identity (BoardGuid/SheetGuid/BracingGuid).
	Guid            string
	SubAssemblyGuid string

	// Inherited from the owning panel only when the element itself did
	// not carry the field. Inheritance never overwrites.
	PanelGuid  string
	BundleGuid string
	LevelGuid  string

	// Geometry captured during the SubAssembly walk, feeding the AFF
	// inference chain.
	AFF        *float64
	ElevMinY   *float64
	ElevMaxY   *float64
	BottomXMin *float64
	BottomXMax *float64
	BoardX     *float64
	BoardY     *float64
}

// Float returns a pointer to v, for populating optional numeric fields.
func Float(v float64) *float64 {
	return &v
}
