package layout

import (
	"image"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	// Decoder registration for logo/favicon sniffing.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Facts records the presence of every optional input that drives
// conditional configuration output. It is derived from the normalized
// tree and is, together with the manifest and the run configuration,
// the sole input of the config synthesizer.
type Facts struct {
	HasManualToc         bool
	HasManualIndex       bool
	HasChangelog         bool
	HasLicense           bool
	HasThirdPartyNotices bool

	// Paths are relative to the docs root, empty when absent.
	FaviconPath string
	LogoPath    string
	FilterPath  string

	// MetadataFiles are global metadata documents relative to the docs
	// root, projectMetadata.json before config.json when both exist.
	MetadataFiles []string
}

// Discover probes the normalized tree under root for the optional
// inputs. Absence is never an error.
func Discover(root string, log *zap.Logger) Facts {
	docs := filepath.Join(root, DocsDirName)
	f := Facts{
		HasManualToc:         fileExists(filepath.Join(docs, "manual", "toc.md")),
		HasManualIndex:       fileExists(filepath.Join(docs, "manual", "index.md")),
		HasChangelog:         fileExists(filepath.Join(docs, "changelog", "CHANGELOG.md")),
		HasLicense:           fileExists(filepath.Join(docs, "license", "LICENSE.md")),
		HasThirdPartyNotices: fileExists(filepath.Join(docs, "license", ThirdPartyNoticesName)),
	}

	f.FaviconPath = findImage(docs, "favicon", log)
	f.LogoPath = findImage(docs, "logo", log)
	f.FilterPath = findFilter(docs)
	f.MetadataFiles = findMetadataFiles(docs)

	log.Debug("layout facts",
		zap.Bool("manualToc", f.HasManualToc),
		zap.Bool("changelog", f.HasChangelog),
		zap.Bool("license", f.HasLicense),
		zap.String("favicon", f.FaviconPath),
		zap.String("logo", f.LogoPath),
		zap.String("filter", f.FilterPath),
		zap.Strings("metadataFiles", f.MetadataFiles))
	return f
}

// findImage returns the docs-relative path of the first image named
// <base>.* under manual/images, in lexicographic order so the choice is
// deterministic regardless of filesystem enumeration. Candidates are
// sniffed for dimensions at trace level; an undecodable file is still
// used, the compiler owns final validation.
func findImage(docs, base string, log *zap.Logger) string {
	matches, err := filepath.Glob(filepath.Join(docs, "manual", "images", base+".*"))
	if err != nil || len(matches) == 0 {
		return ""
	}
	sort.Strings(matches)
	chosen := matches[0]

	if fh, err := os.Open(chosen); err == nil {
		if cfg, format, err := image.DecodeConfig(fh); err == nil {
			log.Debug("image probed",
				zap.String("file", chosen), zap.String("format", format),
				zap.Int("width", cfg.Width), zap.Int("height", cfg.Height))
		} else {
			log.Debug("image not decodable, using anyway", zap.String("file", chosen))
		}
		fh.Close()
	}

	rel, err := filepath.Rel(docs, chosen)
	if err != nil {
		return ""
	}
	return filepath.ToSlash(rel)
}

// findFilter locates the compiler filter document under manual,
// preferring the .yml spelling when both exist.
func findFilter(docs string) string {
	for _, name := range []string{"filter.yml", "filter.yaml"} {
		if fileExists(filepath.Join(docs, "manual", name)) {
			return "manual/" + name
		}
	}
	return ""
}

// findMetadataFiles collects the optional global metadata documents in
// their fixed order.
func findMetadataFiles(docs string) []string {
	var files []string
	for _, name := range []string{"projectMetadata.json", "config.json"} {
		if fileExists(filepath.Join(docs, "manual", name)) {
			files = append(files, "manual/"+name)
		}
	}
	return files
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
