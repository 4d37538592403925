// Package docfx synthesizes the DocFX project inputs — the build
// configuration document (docfx.json) and the root table of contents
// (toc.yml) — and wraps the docfx executable.
//
// The configuration is built as a structured in-memory document and
// serialized once; conditional fields are inserted into the skeleton,
// never patched in by line position.
package docfx

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/soliptic/pkgdocs/src/config"
	"github.com/soliptic/pkgdocs/src/layout"
	"github.com/soliptic/pkgdocs/src/manifest"
)

// ConfigFileName is the compiler configuration inside the docs root.
const ConfigFileName = "docfx.json"

// MetadataDest is where the metadata stage drops its intermediate YAML,
// relative to the docs root. The second-stage conversion reads from here.
const MetadataDest = "api"

// Document is the full docfx.json. Field order is fixed by the struct
// layout and preserved through serialization.
type Document struct {
	Metadata []Metadata `json:"metadata"`
	Build    Build      `json:"build"`
}

// Metadata configures the API extraction stage.
type Metadata struct {
	Src    []SrcMapping `json:"src"`
	Dest   string       `json:"dest"`
	Filter string       `json:"filter,omitempty"`
}

// SrcMapping selects source files relative to a base directory.
type SrcMapping struct {
	Src   string   `json:"src"`
	Files []string `json:"files"`
}

// FileMapping selects content or resource files by glob.
type FileMapping struct {
	Files []string `json:"files"`
}

// Build configures the site build stage.
type Build struct {
	Content             []FileMapping  `json:"content"`
	Resource            []FileMapping  `json:"resource"`
	GlobalMetadata      GlobalMetadata `json:"globalMetadata"`
	GlobalMetadataFiles []string       `json:"globalMetadataFiles,omitempty"`
	FileMetadata        *FileMetadata  `json:"fileMetadata,omitempty"`
	Template            []string       `json:"template"`
	Sitemap             Sitemap        `json:"sitemap"`
	Xref                []string       `json:"xref"`
	Dest                string         `json:"dest"`
}

// GlobalMetadata carries the site-wide template fields.
type GlobalMetadata struct {
	AppTitle       string `json:"_appTitle"`
	AppFooter      string `json:"_appFooter"`
	EnableSearch   bool   `json:"_enableSearch"`
	AppFaviconPath string `json:"_appFaviconPath,omitempty"`
	AppLogoPath    string `json:"_appLogoPath,omitempty"`
}

// FileMetadata carries per-path overrides. It is emitted only when the
// manual section has no authored toc and renders as a landing page.
type FileMetadata struct {
	DisableContribution map[string]bool   `json:"_disableContribution"`
	Layout              map[string]string `json:"_layout"`
}

// Sitemap configures sitemap generation.
type Sitemap struct {
	BaseURL string `json:"baseUrl"`
}

// Synthesize assembles the configuration document. It is a pure
// function of the run configuration, the package manifest, and the
// layout facts; every conditional insertion is independently skipped
// when its input is absent.
func Synthesize(cfg config.BuildConfig, man manifest.Manifest, facts layout.Facts) *Document {
	doc := &Document{
		Metadata: []Metadata{{
			Src:    []SrcMapping{{Src: "..", Files: []string{"**/*.cs"}}},
			Dest:   MetadataDest,
			Filter: facts.FilterPath,
		}},
		Build: Build{
			Content:  contentMappings(facts),
			Resource: []FileMapping{{Files: []string{"manual/images/**"}}},
			GlobalMetadata: GlobalMetadata{
				AppTitle:       fmt.Sprintf("%s | %s", man.DisplayName, man.Version),
				AppFooter:      footer(cfg.GithubOwner),
				EnableSearch:   true,
				AppFaviconPath: facts.FaviconPath,
				AppLogoPath:    facts.LogoPath,
			},
			GlobalMetadataFiles: facts.MetadataFiles,
			Template:            []string{"default", "modern"},
			Sitemap:             Sitemap{BaseURL: cfg.SiteURL},
			Xref:                []string{strings.TrimRight(cfg.SiteURL, "/") + "/xrefmap.yml"},
			Dest:                siteDest(cfg.DocfxDir),
		},
	}

	// Without an authored manual toc the section is a freeform landing
	// page: contribution links off, landing layout forced per-path.
	if !facts.HasManualToc {
		doc.Build.FileMetadata = &FileMetadata{
			DisableContribution: map[string]bool{"manual/**": true},
			Layout:              map[string]string{"manual/**": "landing"},
		}
	}

	return doc
}

// contentMappings returns the content section list: the always-present
// api/manual/root entries plus one entry per discovered optional section.
func contentMappings(facts layout.Facts) []FileMapping {
	mappings := []FileMapping{
		{Files: []string{"api/**.yml", "api/index.md"}},
		{Files: []string{"manual/**.md", "manual/**/toc.yml"}},
	}
	if facts.HasChangelog {
		mappings = append(mappings, FileMapping{Files: []string{"changelog/**.md"}})
	}
	if facts.HasLicense {
		mappings = append(mappings, FileMapping{Files: []string{"license/**.md"}})
	}
	return append(mappings, FileMapping{Files: []string{"toc.yml", "*.md"}})
}

// footer renders the site footer crediting the package owner and the
// documentation compiler.
func footer(owner string) string {
	return fmt.Sprintf(
		`<span>Maintained by <a href="https://github.com/%s">%s</a>. Generated with <a href="https://dotnet.github.io/docfx">DocFX</a>.</span>`,
		owner, owner)
}

// siteDest derives the build destination from the configured site
// directory. The configuration file lives inside the docs root, so a
// root-relative directory needs one level up.
func siteDest(docfxDir string) string {
	if filepath.IsAbs(docfxDir) {
		return docfxDir
	}
	return filepath.ToSlash(filepath.Join("..", docfxDir))
}

// WriteConfig serializes the document once into the docs root and
// returns the written path.
func WriteConfig(root string, doc *Document) (string, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", err
	}
	path := filepath.Join(root, layout.DocsDirName, ConfigFileName)
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
