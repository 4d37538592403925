package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/soliptic/pkgdocs/src/config"
	"github.com/soliptic/pkgdocs/src/docfx"
	"github.com/soliptic/pkgdocs/src/docusaurus"
	"github.com/soliptic/pkgdocs/src/gitid"
	"github.com/soliptic/pkgdocs/src/layout"
	"github.com/soliptic/pkgdocs/src/manifest"
	"github.com/soliptic/pkgdocs/src/output"
	"github.com/soliptic/pkgdocs/src/site"
)

var (
	bOutputDir      string
	bDocfxDir       string
	bSiteURL        string
	bSkipDocfx      bool
	bSkipDocusaurus bool
	bGithubOwner    string
	bPythonScript   string
	bDryRun         bool
)

var buildCmd = &cobra.Command{
	Use:   "build [package-root]",
	Short: "Build the documentation site for a Unity package",
	Long: `Build documentation for the Unity package in the working directory.

Normalizes the Documentation~ tree into the canonical layout, synthesizes
the DocFX configuration from the discovered optional inputs, runs the
DocFX build, injects the landing-page redirect, and optionally converts
the API reference to markdown for Docusaurus.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVarP(&bOutputDir, "output-dir", "o", "docusaurus", "destination for the converted markdown")
	buildCmd.Flags().StringVarP(&bDocfxDir, "docfx-dir", "d", "_site", "destination for the DocFX site")
	buildCmd.Flags().StringVarP(&bSiteURL, "site-url", "u", "http://localhost:8080", "public base URL of the site")
	buildCmd.Flags().BoolVarP(&bSkipDocfx, "skip-docfx", "s", false, "skip the DocFX build stage")
	buildCmd.Flags().BoolVarP(&bSkipDocusaurus, "skip-docusaurus", "c", false, "skip the markdown conversion stage")
	buildCmd.Flags().StringVarP(&bGithubOwner, "github-owner", "g", "", "site footer owner (default: git user.name)")
	buildCmd.Flags().StringVarP(&bPythonScript, "python-script", "p", "DocFxMarkdownGen.py", "conversion script path")
	buildCmd.Flags().BoolVar(&bDryRun, "dry-run", false, "show the normalization plan without executing")

	rootCmd.AddCommand(buildCmd)
}

// resolveBuildConfig layers explicit flags over the config file values.
func resolveBuildConfig(cmd *cobra.Command) config.BuildConfig {
	bc := cfg.Build
	if cmd.Flags().Changed("output-dir") {
		bc.OutputDir = bOutputDir
	}
	if cmd.Flags().Changed("docfx-dir") {
		bc.DocfxDir = bDocfxDir
	}
	if cmd.Flags().Changed("site-url") {
		bc.SiteURL = bSiteURL
	}
	if cmd.Flags().Changed("skip-docfx") {
		bc.SkipDocfx = bSkipDocfx
	}
	if cmd.Flags().Changed("skip-docusaurus") {
		bc.SkipDocusaurus = bSkipDocusaurus
	}
	if cmd.Flags().Changed("github-owner") {
		bc.GithubOwner = bGithubOwner
	}
	if cmd.Flags().Changed("python-script") {
		bc.PythonScript = bPythonScript
	}
	return bc
}

func runBuild(cmd *cobra.Command, args []string) error {
	rootDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}
	if len(args) > 0 {
		rootDir, err = filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolving package root: %w", err)
		}
	}

	bc := resolveBuildConfig(cmd)

	// --- Dependency gate ---
	// External tools are verified before the first filesystem mutation,
	// the log file included, so a missing dependency leaves everything
	// untouched.
	if !bc.SkipDocfx {
		if err := docfx.CheckInstalled(); err != nil {
			return err
		}
	}
	if !bc.SkipDocusaurus {
		if err := docusaurus.CheckInstalled(); err != nil {
			return err
		}
	}

	lf := logFile
	if lf == "" {
		lf = cfg.LogFile
	}
	log, err := config.NewLogger(verbose, lf)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	color := output.UseColor()
	w := os.Stdout
	pipelineStart := time.Now()

	if bc.GithubOwner == "" {
		bc.GithubOwner = gitid.DefaultOwner(rootDir)
	}

	output.ContextBlock(w, buildContextKV(rootDir, bc))

	docfxRunner := docfx.NewRunner(verbose, log)
	converter := docusaurus.NewConverter(filepath.Join(rootDir, bc.PythonScript), verbose, log)
	if filepath.IsAbs(bc.PythonScript) {
		converter.Script = bc.PythonScript
	}

	// --- Manifest ---
	man := manifest.Read(rootDir, log)
	manSec := output.NewSection(w, "Manifest", 0, color)
	manSec.Row("%-16s%s", "displayName", man.DisplayName)
	manSec.Row("%-16s%s", "version", man.Version)
	manSec.Close()

	// --- Normalize ---
	normStart := time.Now()
	normalizer := layout.NewNormalizer(rootDir, log)

	if bDryRun {
		plan, err := normalizer.Plan()
		if err != nil {
			return fmt.Errorf("planning normalization: %w", err)
		}
		planSec := output.NewSection(w, "Plan (dry run)", time.Since(normStart), color)
		if len(plan) == 0 {
			planSec.Row("layout already canonical, nothing to do")
		}
		for _, a := range plan {
			planSec.Row("%s", a)
		}
		planSec.Close()
		return nil
	}

	plan, err := normalizer.Normalize()
	if err != nil {
		return fmt.Errorf("normalizing layout: %w", err)
	}
	normSec := output.NewSection(w, "Normalize", time.Since(normStart), color)
	for _, a := range plan {
		normSec.Row("%s", a)
	}
	if len(plan) == 0 {
		normSec.Row("layout already canonical")
	}
	normSec.Close()
	normSummary := fmt.Sprintf("%d action(s)", len(plan))

	// --- Synthesize ---
	synthStart := time.Now()
	facts := layout.Discover(rootDir, log)

	doc := docfx.Synthesize(bc, man, facts)
	configPath, err := docfx.WriteConfig(rootDir, doc)
	if err != nil {
		return fmt.Errorf("writing compiler config: %w", err)
	}
	entries := docfx.BuildToc(facts)
	tocPath, err := docfx.WriteToc(rootDir, entries)
	if err != nil {
		return fmt.Errorf("writing root toc: %w", err)
	}

	synthSec := output.NewSection(w, "Synthesize", time.Since(synthStart), color)
	synthSec.Row("%-16s→ %s", "config", relTo(rootDir, configPath))
	synthSec.Row("%-16s→ %s", "toc", relTo(rootDir, tocPath))
	for _, e := range entries {
		synthSec.Row("  %-14s%s", e.Name, e.Href)
	}
	synthSec.Row("%-16s%s", "favicon", orNone(facts.FaviconPath))
	synthSec.Row("%-16s%s", "logo", orNone(facts.LogoPath))
	synthSec.Row("%-16s%s", "filter", orNone(facts.FilterPath))
	synthSec.Close()
	synthSummary := fmt.Sprintf("%d toc entries", len(entries))

	// --- DocFX ---
	docfxSummary := "--skip-docfx"
	if !bc.SkipDocfx {
		docfxStart := time.Now()
		if err := docfxRunner.Build(ctx, configPath); err != nil {
			return err
		}
		docfxElapsed := time.Since(docfxStart)

		// --- Redirect ---
		// Only a freshly generated entry page is injected; with the
		// build skipped there is nothing to assert the marker on.
		indexPath := filepath.Join(rootDir, bc.DocfxDir, "index.html")
		if err := site.InjectRedirect(indexPath, bc.SiteURL); err != nil {
			return err
		}

		docfxSec := output.NewSection(w, "DocFX", docfxElapsed, color)
		docfxSec.Row("%-16s→ %s", "site", bc.DocfxDir)
		docfxSec.Row("%-16s→ %s/manual/", "redirect", bc.SiteURL)
		docfxSec.Close()
		docfxSummary = "site + redirect"
	}

	// --- Docusaurus ---
	docusaurusSummary := "--skip-docusaurus"
	if !bc.SkipDocusaurus {
		convStart := time.Now()
		bridge := docusaurus.BridgeConfig{
			YamlPath:   filepath.Join(layout.DocsDirName, docfx.MetadataDest),
			OutputPath: bc.OutputDir,
		}
		if err := converter.Run(ctx, rootDir, bridge); err != nil {
			return err
		}
		convSec := output.NewSection(w, "Docusaurus", time.Since(convStart), color)
		convSec.Row("%-16s→ %s", "markdown", bc.OutputDir)
		convSec.Close()
		docusaurusSummary = "markdown → " + bc.OutputDir
	}

	// --- Summary ---
	sumSec := output.NewSection(w, "Summary", 0, color)
	output.SummaryRow(w, "manifest", "success", fmt.Sprintf("%s | %s", man.DisplayName, man.Version), color)
	output.SummaryRow(w, "normalize", "success", normSummary, color)
	output.SummaryRow(w, "synthesize", "success", synthSummary, color)
	output.SummaryRow(w, "docfx", statusFor(bc.SkipDocfx), docfxSummary, color)
	output.SummaryRow(w, "docusaurus", statusFor(bc.SkipDocusaurus), docusaurusSummary, color)
	sumSec.Separator()
	output.SummaryTotal(w, time.Since(pipelineStart), "success", color)
	sumSec.Close()

	return nil
}

func statusFor(skipped bool) string {
	if skipped {
		return "skipped"
	}
	return "success"
}

func orNone(path string) string {
	if path == "" {
		return "(none)"
	}
	return path
}

func relTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}

// buildContextKV returns key-value pairs for the run context block.
func buildContextKV(rootDir string, bc config.BuildConfig) []output.KV {
	kv := []output.KV{
		{Key: "Package", Value: filepath.Base(rootDir)},
		{Key: "Site URL", Value: bc.SiteURL},
		{Key: "Owner", Value: bc.GithubOwner},
		{Key: "DocFX dir", Value: bc.DocfxDir},
	}
	if !bc.SkipDocusaurus {
		kv = append(kv, output.KV{Key: "Output dir", Value: bc.OutputDir})
	}
	return kv
}
