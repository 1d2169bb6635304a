// Package format provides EHX schema-version detection for the ehx library.
package format

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Version represents a recognized EHX schema generation.
type Version int

const (
	// Unknown indicates content that does not look like an EHX file.
	Unknown Version = iota
	// Legacy indicates the original schema without version headers.
	Legacy
	// V2 indicates the v2.0 schema, marked by an EHXVersion header and
	// carrying Junction/BundleLayer bundle assignment.
	V2
)

// String returns the string representation of the version.
func (v Version) String() string {
	switch v {
	case Legacy:
		return "legacy"
	case V2:
		return "v2.0"
	default:
		return "unknown"
	}
}

// sniffLimit bounds how much of the file is read for detection. The
// EHXVersion header, when present, sits in the first few elements.
const sniffLimit = 64 * 1024

// Detect determines the schema version of the named file. Files with an
// .ehx or .xml extension that parse as XML but lack an EHXVersion header
// are treated as Legacy.
func Detect(filename string) (Version, error) {
	f, err := os.Open(filename)
	if err != nil {
		return Unknown, err
	}
	defer f.Close()
	return DetectFromReader(f)
}

// DetectFromReader inspects content from r to determine the schema version.
// At most sniffLimit bytes are consumed.
func DetectFromReader(r io.Reader) (Version, error) {
	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return Unknown, err
	}
	return DetectFromBytes(head[:n]), nil
}

// DetectFromBytes classifies a content prefix.
func DetectFromBytes(data []byte) Version {
	trimmed := bytes.TrimLeft(data, " \t\r\n\uFEFF")
	if len(trimmed) == 0 || trimmed[0] != '<' {
		return Unknown
	}
	if bytes.Contains(data, []byte("<EHXVersion")) {
		return V2
	}
	return Legacy
}

// LooksLikeEHX reports whether the filename carries a recognized EHX
// extension. Detection by content is preferred; this is a cheap filter
// for directory scans.
func LooksLikeEHX(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return ext == ".ehx" || ext == ".xml"
}
