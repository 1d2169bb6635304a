package model

// JobInfo contains job-level metadata read from the Job element.
// All fields are optional; absent values stay empty.
type JobInfo struct {
	JobID           string
	Customer        string
	Project         string
	Phase           string
	StructureType   string
	BuildingName    string
	LotName         string
	UnitName        string
	DesignSoftware  string
	DesignerPerson  string
	WorkStation     string
	Model           string
	DepthProjection string
	FileDate        string
	ScheduleDate    string
	JobPath         string

	// Version headers present only in v2.0 files.
	EHXVersion       string
	InterfaceVersion string
	PluginVersion    string
	Date             string
}

// Level describes one building level. Levels exist only to backfill
// a panel's Description when the panel itself did not supply one.
type Level struct {
	No          string
	Guid        string
	Description string
}

// Job represents a fully parsed EHX file.
type Job struct {
	Info   JobInfo
	Levels []Level

	Panels           []*Panel
	MaterialsByPanel map[string][]*Material

	panelsByGuid map[string]*Panel
}

// NewJob creates a new empty job.
func NewJob() *Job {
	return &Job{
		MaterialsByPanel: make(map[string][]*Material),
		panelsByGuid:     make(map[string]*Panel),
	}
}

// AddPanel appends a panel to the job and indexes it by GUID.
func (j *Job) AddPanel(p *Panel) {
	j.Panels = append(j.Panels, p)
	j.panelsByGuid[p.Guid] = p
}

// AddMaterial records a material under the owning panel's GUID.
func (j *Job) AddMaterial(panelGuid string, m *Material) {
	j.MaterialsByPanel[panelGuid] = append(j.MaterialsByPanel[panelGuid], m)
}

// Panel returns the panel with the given GUID, or nil.
func (j *Job) Panel(guid string) *Panel {
	return j.panelsByGuid[guid]
}

// Materials returns the materials extracted under the panel with the
// given GUID. The returned slice is shared with the job; callers must
// not mutate it.
func (j *Job) Materials(panelGuid string) []*Material {
	return j.MaterialsByPanel[panelGuid]
}

// PanelCount returns the number of panels in the job.
func (j *Job) PanelCount() int {
	return len(j.Panels)
}

// AllMaterials returns every material in the job in panel encounter
// order, then source order within each panel.
func (j *Job) AllMaterials() []*Material {
	var out []*Material
	for _, p := range j.Panels {
		out = append(out, j.MaterialsByPanel[p.Guid]...)
	}
	return out
}
