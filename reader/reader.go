package reader

import (
	"context"
	"io"
	"log/slog"
	"os"
	"regexp"
	"strconv"

	"github.com/tsawler/ehx/format"
	"github.com/tsawler/ehx/model"
)

// Reader provides access to a parsed EHX file.
type Reader struct {
	path    string
	version format.Version
	root    *Node
	log     *slog.Logger

	// Level descriptions indexed two ways; first-seen-wins on duplicates.
	levelByNo   map[string]string
	levelByGuid map[string]string

	// v2.0 bundle assignment maps.
	junctionBundles map[string]string // PanelID or Label -> BundleName
	bundleLayers    map[int]string    // BundleLayer -> BundleName

	job *model.Job
}

// Option configures a Reader.
type Option func(*Reader)

// WithLogger attaches a structured logger. The reader records extraction
// events at debug level. Without a logger the reader is silent.
func WithLogger(log *slog.Logger) Option {
	return func(r *Reader) {
		r.log = log
	}
}

// Open parses the named EHX file and builds the full job graph. A missing
// or unreadable file yields a *FileError; malformed XML yields a
// *ParseError. Missing fields within a well-formed file are never errors.
func Open(filename string, opts ...Option) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &FileError{Path: filename, Err: err}
	}
	defer f.Close()
	return fromReader(filename, f, opts...)
}

// FromReader parses EHX content from r. The path is used only for error
// reporting and job metadata.
func FromReader(path string, r io.Reader, opts ...Option) (*Reader, error) {
	return fromReader(path, r, opts...)
}

func fromReader(path string, src io.Reader, opts ...Option) (*Reader, error) {
	r := &Reader{
		path:            path,
		log:             slog.New(discardHandler{}),
		levelByNo:       make(map[string]string),
		levelByGuid:     make(map[string]string),
		junctionBundles: make(map[string]string),
		bundleLayers:    make(map[int]string),
	}
	for _, opt := range opts {
		opt(r)
	}

	root, err := parseTree(src)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	r.root = root

	r.detectVersion()
	r.buildLevelMaps()
	if r.version == format.V2 {
		r.buildJunctionMaps()
	}

	r.job = model.NewJob()
	r.job.Info = r.parseJobInfo()
	r.parseLevels()
	r.parsePanels()

	r.log.Debug("ehx load complete",
		slog.String("path", path),
		slog.String("version", r.version.String()),
		slog.Int("panels", r.job.PanelCount()))
	return r, nil
}

// Job returns the parsed job graph. The graph is immutable; a new load
// builds a new graph.
func (r *Reader) Job() *model.Job {
	return r.job
}

// Version returns the detected schema version.
func (r *Reader) Version() format.Version {
	return r.version
}

// Path returns the source path the reader was opened with.
func (r *Reader) Path() string {
	return r.path
}

func (r *Reader) detectVersion() {
	if r.root.Child("EHXVersion") != nil {
		r.version = format.V2
		return
	}
	r.version = format.Legacy
}

// parseJobInfo reads job metadata from the Job element, falling back to
// the document root for older files.
func (r *Reader) parseJobInfo() model.JobInfo {
	info := model.JobInfo{
		EHXVersion:       r.root.ChildText("EHXVersion"),
		InterfaceVersion: r.root.ChildText("InterfaceVersion"),
		PluginVersion:    r.root.ChildText("PluginVersion"),
		Date:             r.root.ChildText("Date"),
	}

	job := r.root.FirstDescendant("Job")
	if job == nil {
		job = r.root
	}
	info.JobID = job.ChildText("JobID")
	info.Customer = job.ChildText("Customer")
	info.Project = job.ChildText("Project")
	info.Phase = job.ChildText("Phase")
	info.StructureType = job.ChildText("StructureType")
	info.BuildingName = job.ChildText("BuildingName")
	info.LotName = job.ChildText("LotName")
	info.UnitName = job.ChildText("UnitName")
	info.DesignSoftware = job.ChildText("DesignSoftware")
	info.DesignerPerson = job.ChildText("DesignerPerson")
	info.WorkStation = job.ChildText("WorkStation")
	info.Model = job.ChildText("Model")
	info.DepthProjection = job.ChildText("DepthProjection")
	info.FileDate = job.ChildText("FileDate")
	info.ScheduleDate = job.ChildText("ScheduleDate")
	info.JobPath = job.ChildText("JobPath")
	return info
}

// buildLevelMaps indexes Level descriptions by LevelNo and by LevelGuid so
// panels can be associated using either field. First seen wins.
func (r *Reader) buildLevelMaps() {
	for _, lev := range r.root.Descendants("Level") {
		no := lev.ChildText("LevelNo", "LevelID", "Level")
		guid := lev.ChildText("LevelGuid", "LevelGUID", "LevelID")
		desc := lev.ChildText("Description")
		if no != "" {
			if _, seen := r.levelByNo[no]; !seen {
				r.levelByNo[no] = desc
			}
		}
		if guid != "" {
			if _, seen := r.levelByGuid[guid]; !seen {
				r.levelByGuid[guid] = desc
			}
		}
	}
}

// parseLevels records the Level entities on the job.
func (r *Reader) parseLevels() {
	for _, lev := range r.root.Descendants("Level") {
		r.job.Levels = append(r.job.Levels, model.Level{
			No:          lev.ChildText("LevelNo", "LevelID", "Level"),
			Guid:        lev.ChildText("LevelGuid", "LevelGUID", "LevelID"),
			Description: lev.ChildText("Description"),
		})
	}
}

var bundleNoRe = regexp.MustCompile(`^B(\d+)`)

// buildJunctionMaps collects the v2.0 bundle assignment tables: Junction
// elements map PanelID/Label to a BundleName, and Bundle labels of the
// form "B<n> ..." map a BundleLayer number to a BundleName.
func (r *Reader) buildJunctionMaps() {
	for _, j := range r.root.Descendants("Junction") {
		bundle := j.ChildText("BundleName")
		if bundle == "" {
			continue
		}
		if id := j.ChildText("PanelID"); id != "" {
			r.junctionBundles[id] = bundle
		}
		if label := j.ChildText("Label"); label != "" {
			r.junctionBundles[label] = bundle
		}
	}
	for _, b := range r.root.Descendants("Bundle") {
		label := b.ChildText("Label")
		m := bundleNoRe.FindStringSubmatch(label)
		if m == nil {
			continue
		}
		layer, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if _, seen := r.bundleLayers[layer]; !seen {
			r.bundleLayers[layer] = label
		}
	}
}

// discardHandler is a slog.Handler that drops every record. It keeps the
// core side-effect-free when no logger is injected.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }
