package ehx

import (
	"fmt"
	"log/slog"

	"github.com/tsawler/ehx/format"
	"github.com/tsawler/ehx/model"
	"github.com/tsawler/ehx/opening"
	"github.com/tsawler/ehx/reader"
	"github.com/tsawler/ehx/report"
	"github.com/tsawler/ehx/resolver"
)

// extractOptions holds Extractor configuration.
type extractOptions struct {
	affConfig opening.Config
	logger    *slog.Logger
}

func defaultOptions() extractOptions {
	return extractOptions{
		affConfig: opening.DefaultConfig(),
	}
}

func (o extractOptions) clone() extractOptions {
	heights := make(map[string]float64, len(o.affConfig.LabelHeights))
	for k, v := range o.affConfig.LabelHeights {
		heights[k] = v
	}
	clone := o
	clone.affConfig.LabelHeights = heights
	return clone
}

// Opening is one classified rough opening with its inferred height above
// the finished floor. Resolved is false when the inference chain
// exhausted without a value; that is an indeterminate result, not an
// error.
type Opening struct {
	Material *model.Material

	// Rule names the classifier rule that tagged the material.
	Rule string

	AFF      float64
	Stage    opening.Stage
	Resolved bool
}

// Extractor provides a fluent interface for parsing EHX files. Each
// configuration method returns a new Extractor instance, making chains
// safe to share and reuse.
type Extractor struct {
	filename string

	reader       *reader.Reader
	readerOpened bool

	options extractOptions

	// Accumulated error (fail-fast).
	err error
}

// clone creates a copy of the Extractor with independent options so each
// chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		reader:       e.reader,
		readerOpened: e.readerOpened,
		options:      e.options.clone(),
		err:          e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// SizeTolerance sets the allowed difference, in inches, between a
// material's length and an elevation height for the AFF size-match
// stage. The default is 1.0.
//
// Example:
//
//	openings, err := ehx.Open("job.ehx").SizeTolerance(0.5).Openings(guid)
func (e *Extractor) SizeTolerance(inches float64) *Extractor {
	newExt := e.clone()
	newExt.options.affConfig.SizeTolerance = inches
	return newExt
}

// LabelHeights overrides the fixed per-label AFF table. Entries replace
// the defaults wholesale; pass the full table wanted for the job.
//
// Example:
//
//	job := ehx.Open("job.ehx").LabelHeights(map[string]float64{"GAR-HDR": 82})
func (e *Extractor) LabelHeights(heights map[string]float64) *Extractor {
	newExt := e.clone()
	newExt.options.affConfig.LabelHeights = make(map[string]float64, len(heights))
	for k, v := range heights {
		newExt.options.affConfig.LabelHeights[k] = v
	}
	return newExt
}

// Logger attaches a structured logger; the reader records extraction
// events at debug level. Without a logger the core is silent and
// side-effect-free.
func (e *Extractor) Logger(log *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = log
	return newExt
}

// ensureReader opens and fully parses the file if not already done.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}
	var opts []reader.Option
	if e.options.logger != nil {
		opts = append(opts, reader.WithLogger(e.options.logger))
	}
	r, err := reader.Open(e.filename, opts...)
	if err != nil {
		return err
	}
	e.reader = r
	e.readerOpened = true
	return nil
}

// ============================================================================
// Terminal Operations (execute the parse and return results)
// ============================================================================

// Job parses the file and returns the full job graph: panels in encounter
// order plus the per-panel material lists. The graph is immutable.
func (e *Extractor) Job() (*model.Job, error) {
	if e.err != nil {
		return nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, err
	}
	return e.reader.Job(), nil
}

// Version parses the file and reports the detected schema version.
func (e *Extractor) Version() (format.Version, error) {
	if e.err != nil {
		return format.Unknown, e.err
	}
	if err := e.ensureReader(); err != nil {
		return format.Unknown, err
	}
	return e.reader.Version(), nil
}

// PanelMaterials returns the materials belonging to the panel with the
// given GUID, after GUID-chain association filtering.
func (e *Extractor) PanelMaterials(panelGuid string) ([]*model.Material, error) {
	job, panel, err := e.panel(panelGuid)
	if err != nil {
		return nil, err
	}
	return resolveForPanel(job, panel), nil
}

// Report returns the formatted material report lines for one panel:
// associated materials, minus rough openings, grouped and sorted.
func (e *Extractor) Report(panelGuid string) ([]string, error) {
	job, panel, err := e.panel(panelGuid)
	if err != nil {
		return nil, err
	}
	var stock []*model.Material
	for _, m := range resolveForPanel(job, panel) {
		if !opening.IsRoughOpening(m) {
			stock = append(stock, m)
		}
	}
	return report.Lines(stock), nil
}

// Openings returns the rough openings of one panel with inferred AFF
// values.
func (e *Extractor) Openings(panelGuid string) ([]Opening, error) {
	job, panel, err := e.panel(panelGuid)
	if err != nil {
		return nil, err
	}
	var out []Opening
	for _, m := range resolveForPanel(job, panel) {
		rule, ok := opening.ClassifyRule(m)
		if !ok {
			continue
		}
		o := Opening{Material: m, Rule: rule}
		o.AFF, o.Stage, o.Resolved = e.options.affConfig.Infer(panel, m)
		out = append(out, o)
	}
	return out, nil
}

// BeamPockets returns the merged beam pocket summaries of one panel.
func (e *Extractor) BeamPockets(panelGuid string) ([]*opening.BeamPocket, error) {
	job, panel, err := e.panel(panelGuid)
	if err != nil {
		return nil, err
	}
	return opening.BeamPockets(resolveForPanel(job, panel)), nil
}

// resolveForPanel runs the GUID association chain over the panel's
// extracted material list.
func resolveForPanel(job *model.Job, panel *model.Panel) []*model.Material {
	return resolver.FilterByPanel(job.Materials(panel.Guid), panel)
}

func (e *Extractor) panel(guid string) (*model.Job, *model.Panel, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	job := e.reader.Job()
	panel := job.Panel(guid)
	if panel == nil {
		return nil, nil, fmt.Errorf("no panel with guid %q", guid)
	}
	return job, panel, nil
}
