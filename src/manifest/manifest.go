// Package manifest extracts display metadata from a Unity package
// manifest (package.json). Documentation generation must never hard-fail
// on incomplete metadata, so every malformed or missing input falls back
// to a default.
package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
)

// FileName is the Unity package manifest at the package root.
const FileName = "package.json"

// DefaultVersion is substituted when the manifest carries no version.
const DefaultVersion = "1.0.0"

// Manifest holds the two fields the documentation title is built from.
type Manifest struct {
	DisplayName string
	Version     string
}

type rawManifest struct {
	DisplayName string `json:"displayName"`
	Version     string `json:"version"`
}

// Read loads the manifest from the package root. A missing file is
// treated as empty; a missing or malformed field falls back to its
// default (displayName: the package directory name, version: "1.0.0").
// Both values are sanitized before use in generated documents.
func Read(root string, log *zap.Logger) Manifest {
	m := Manifest{
		DisplayName: filepath.Base(absOrSelf(root)),
		Version:     DefaultVersion,
	}

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		log.Debug("no package manifest, using defaults",
			zap.String("displayName", m.DisplayName), zap.String("version", m.Version))
		return m
	}

	var raw rawManifest
	if err := json.Unmarshal(data, &raw); err != nil {
		log.Debug("malformed package manifest, using defaults", zap.Error(err))
		return m
	}

	if raw.DisplayName != "" {
		m.DisplayName = Sanitize(raw.DisplayName)
	}
	if raw.Version != "" {
		m.Version = normalizeVersion(Sanitize(raw.Version), log)
	}

	log.Debug("package manifest read",
		zap.String("displayName", m.DisplayName), zap.String("version", m.Version))
	return m
}

// Sanitize strips embedded newlines and escapes quote characters so the
// value can be embedded verbatim in a generated document.
func Sanitize(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	return strings.ReplaceAll(s, `"`, `\"`)
}

// normalizeVersion returns the canonical semver form when the value
// parses ("v1.2.3" becomes "1.2.3"); anything else passes through
// verbatim since the field is display-only.
func normalizeVersion(v string, log *zap.Logger) string {
	sv, err := semver.NewVersion(v)
	if err != nil {
		log.Debug("manifest version is not semver, keeping as-is", zap.String("version", v))
		return v
	}
	return sv.String()
}

func absOrSelf(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	return abs
}
