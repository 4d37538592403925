package config

// BuildConfig holds the documentation pipeline configuration.
// Values resolve in order: defaults, config file, command-line flags.
type BuildConfig struct {
	// OutputDir is the destination for the second-stage markdown output.
	OutputDir string `yaml:"output_dir"`

	// DocfxDir is the destination for the DocFX static site, relative to
	// the package root.
	DocfxDir string `yaml:"docfx_dir"`

	// SiteURL is the public base URL of the published site. It feeds the
	// sitemap, the cross-reference map, and the entry-page redirect.
	SiteURL string `yaml:"site_url"`

	// SkipDocfx disables the DocFX build stage (and the entry-page
	// redirect that depends on it).
	SkipDocfx bool `yaml:"skip_docfx"`

	// SkipDocusaurus disables the second-stage markdown conversion.
	SkipDocusaurus bool `yaml:"skip_docusaurus"`

	// GithubOwner is credited in the generated site footer. Empty means
	// "resolve from git config user.name".
	GithubOwner string `yaml:"github_owner"`

	// PythonScript is the path of the second-stage conversion script.
	PythonScript string `yaml:"python_script"`
}

// DefaultBuildConfig returns the documented flag defaults.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		OutputDir:    "docusaurus",
		DocfxDir:     "_site",
		SiteURL:      "http://localhost:8080",
		PythonScript: "DocFxMarkdownGen.py",
	}
}
