package docfx

import (
	"strings"
	"testing"

	"github.com/soliptic/pkgdocs/src/config"
	"github.com/soliptic/pkgdocs/src/layout"
	"github.com/soliptic/pkgdocs/src/manifest"
)

func testBuildConfig() config.BuildConfig {
	bc := config.DefaultBuildConfig()
	bc.GithubOwner = "octocat"
	return bc
}

func testManifest() manifest.Manifest {
	return manifest.Manifest{DisplayName: "My Package", Version: "2.1.0"}
}

func TestSynthesize_SkeletonOnly(t *testing.T) {
	doc := Synthesize(testBuildConfig(), testManifest(), layout.Facts{HasManualToc: true})

	if len(doc.Metadata) != 1 {
		t.Fatalf("expected one metadata block, got %d", len(doc.Metadata))
	}
	md := doc.Metadata[0]
	if md.Src[0].Src != ".." || md.Src[0].Files[0] != "**/*.cs" {
		t.Fatalf("unexpected metadata src: %+v", md.Src)
	}
	if md.Dest != MetadataDest {
		t.Fatalf("unexpected metadata dest: %q", md.Dest)
	}
	if md.Filter != "" {
		t.Fatalf("expected no filter, got %q", md.Filter)
	}

	b := doc.Build
	if b.GlobalMetadata.AppFaviconPath != "" || b.GlobalMetadata.AppLogoPath != "" {
		t.Fatalf("expected no favicon/logo, got %+v", b.GlobalMetadata)
	}
	if b.GlobalMetadataFiles != nil {
		t.Fatalf("expected no global metadata files, got %v", b.GlobalMetadataFiles)
	}
	if b.FileMetadata != nil {
		t.Fatalf("expected no file metadata with an authored manual toc")
	}
	if len(b.Content) != 3 {
		t.Fatalf("expected api/manual/root content entries only, got %v", b.Content)
	}
	if len(b.Template) != 2 || b.Template[0] != "default" || b.Template[1] != "modern" {
		t.Fatalf("unexpected template list: %v", b.Template)
	}
}

func TestSynthesize_TitleAndFooter(t *testing.T) {
	doc := Synthesize(testBuildConfig(), testManifest(), layout.Facts{})

	if got := doc.Build.GlobalMetadata.AppTitle; got != "My Package | 2.1.0" {
		t.Fatalf("unexpected title: %q", got)
	}
	footer := doc.Build.GlobalMetadata.AppFooter
	if !strings.Contains(footer, `href="https://github.com/octocat"`) {
		t.Fatalf("footer missing owner link: %q", footer)
	}
	if !strings.Contains(footer, "dotnet.github.io/docfx") {
		t.Fatalf("footer missing compiler link: %q", footer)
	}
}

func TestSynthesize_SiteURLDerivations(t *testing.T) {
	bc := testBuildConfig()
	bc.SiteURL = "https://docs.example.com/"

	doc := Synthesize(bc, testManifest(), layout.Facts{})

	if doc.Build.Sitemap.BaseURL != "https://docs.example.com/" {
		t.Fatalf("unexpected sitemap base: %q", doc.Build.Sitemap.BaseURL)
	}
	if len(doc.Build.Xref) != 1 || doc.Build.Xref[0] != "https://docs.example.com/xrefmap.yml" {
		t.Fatalf("unexpected xref: %v", doc.Build.Xref)
	}
}

func TestSynthesize_Dest(t *testing.T) {
	doc := Synthesize(testBuildConfig(), testManifest(), layout.Facts{})

	// The config lives inside the docs root; a root-relative site dir
	// needs one level up.
	if doc.Build.Dest != "../_site" {
		t.Fatalf("unexpected dest: %q", doc.Build.Dest)
	}
}

func TestSynthesize_ConditionalInsertions(t *testing.T) {
	facts := layout.Facts{
		FaviconPath:   "manual/images/favicon.ico",
		LogoPath:      "manual/images/logo.png",
		FilterPath:    "manual/filter.yml",
		MetadataFiles: []string{"manual/projectMetadata.json", "manual/config.json"},
	}

	doc := Synthesize(testBuildConfig(), testManifest(), facts)

	if doc.Metadata[0].Filter != "manual/filter.yml" {
		t.Fatalf("filter not inserted: %q", doc.Metadata[0].Filter)
	}
	if doc.Build.GlobalMetadata.AppFaviconPath != "manual/images/favicon.ico" {
		t.Fatalf("favicon not inserted")
	}
	if doc.Build.GlobalMetadata.AppLogoPath != "manual/images/logo.png" {
		t.Fatalf("logo not inserted")
	}
	if len(doc.Build.GlobalMetadataFiles) != 2 ||
		doc.Build.GlobalMetadataFiles[0] != "manual/projectMetadata.json" {
		t.Fatalf("metadata files not inserted in order: %v", doc.Build.GlobalMetadataFiles)
	}
}

func TestSynthesize_LandingPageWithoutManualToc(t *testing.T) {
	doc := Synthesize(testBuildConfig(), testManifest(), layout.Facts{HasManualToc: false})

	fm := doc.Build.FileMetadata
	if fm == nil {
		t.Fatalf("expected file metadata without an authored manual toc")
	}
	if !fm.DisableContribution["manual/**"] {
		t.Fatalf("expected contribution disabled for manual/**")
	}
	if fm.Layout["manual/**"] != "landing" {
		t.Fatalf("expected landing layout for manual/**, got %q", fm.Layout["manual/**"])
	}
}

func TestBuildToc_Order(t *testing.T) {
	entries := BuildToc(layout.Facts{HasChangelog: true, HasLicense: true})

	want := []string{"Manual", "Scripting API", "Changelog", "License"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %v", len(want), entries)
	}
	for i, name := range want {
		if entries[i].Name != name {
			t.Fatalf("entry %d = %q, want %q", i, entries[i].Name, name)
		}
	}
}

func TestBuildToc_NoOptionalSections(t *testing.T) {
	entries := BuildToc(layout.Facts{})

	if len(entries) != 2 || entries[0].Name != "Manual" || entries[1].Name != "Scripting API" {
		t.Fatalf("unexpected entries: %v", entries)
	}
}
