package docfx

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/soliptic/pkgdocs/src/layout"
)

// TocFileName is the root navigation document inside the docs root.
const TocFileName = "toc.yml"

// TocEntry is one root navigation entry. Order in the slice is the
// order on the site.
type TocEntry struct {
	Name     string `yaml:"name"`
	Href     string `yaml:"href"`
	Homepage string `yaml:"homepage,omitempty"`
}

// BuildToc assembles the root table of contents: Manual and Scripting
// API always lead, then one entry per discovered optional section in
// discovery order (Changelog before License).
func BuildToc(facts layout.Facts) []TocEntry {
	entries := []TocEntry{
		{Name: "Manual", Href: "manual/", Homepage: "manual/index.md"},
		{Name: "Scripting API", Href: "api/", Homepage: "api/index.md"},
	}
	if facts.HasChangelog {
		entries = append(entries, TocEntry{Name: "Changelog", Href: "changelog/", Homepage: "changelog/CHANGELOG.md"})
	}
	if facts.HasLicense {
		entries = append(entries, TocEntry{Name: "License", Href: "license/", Homepage: "license/LICENSE.md"})
	}
	return entries
}

// WriteToc serializes the entries into the docs root and returns the
// written path.
func WriteToc(root string, entries []TocEntry) (string, error) {
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, layout.DocsDirName, TocFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
