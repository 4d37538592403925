// Package layout normalizes a Unity package working tree into the
// canonical documentation source layout consumed by the config
// synthesizer: Documentation~/{manual,api,changelog,license}.
//
// Normalization is split into a plan phase (pure existence checks
// producing an ordered action list) and an apply phase (sequential
// filesystem mutation, fail-fast). The plan evaluates against the tree
// plus an overlay of its own earlier effects, so actions can depend on
// the outcome of prior ones without touching disk.
package layout

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

// DocsDirName is the Unity documentation folder at the package root.
const DocsDirName = "Documentation~"

// Action kinds. Move relocates (original removed), Copy preserves the
// original, Write creates a generated file, Rewrite transforms a
// table-of-contents variant into canonical form.
const (
	OpMkdir   = "mkdir"
	OpMove    = "move"
	OpCopy    = "copy"
	OpWrite   = "write"
	OpRewrite = "rewrite"
)

// Action is one planned filesystem mutation. Paths are relative to the
// package root.
type Action struct {
	Op      string
	Src     string // move/copy/rewrite source
	Dst     string // destination (or the directory for mkdir)
	Content string // write payload
}

func (a Action) String() string {
	switch a.Op {
	case OpMkdir:
		return fmt.Sprintf("mkdir   %s", a.Dst)
	case OpWrite:
		return fmt.Sprintf("write   %s", a.Dst)
	default:
		return fmt.Sprintf("%-7s %s → %s", a.Op, a.Src, a.Dst)
	}
}

// Normalizer plans and applies layout normalization for one package root.
type Normalizer struct {
	Root string
	Log  *zap.Logger

	overlay map[string]bool // planned path states: true=present, false=removed
}

// NewNormalizer creates a normalizer for the package root.
func NewNormalizer(root string, log *zap.Logger) *Normalizer {
	return &Normalizer{Root: root, Log: log}
}

// Normalize plans and applies in one call, returning the executed plan.
func (n *Normalizer) Normalize() ([]Action, error) {
	plan, err := n.Plan()
	if err != nil {
		return nil, err
	}
	if err := n.Apply(plan); err != nil {
		return plan, err
	}
	return plan, nil
}

// Plan computes the ordered action list for the current tree state.
// Copies and writes whose destinations already exist are skipped, so a
// tree that is already canonical plans nothing.
func (n *Normalizer) Plan() ([]Action, error) {
	n.overlay = map[string]bool{}
	var plan []Action

	plan = n.planMigration(plan)
	plan = n.planManualToc(plan)
	plan = n.planManualIndex(plan)
	plan = n.planAPI(plan)
	plan = n.planChangelog(plan)
	plan = n.planLicense(plan)

	for _, a := range plan {
		n.Log.Debug("planned", zap.String("action", a.String()))
	}
	return plan, nil
}

// planMigration handles the one-time legacy migration: a non-empty docs
// folder without a manual/ subfolder has its entire contents relocated
// one level deeper. An empty or absent docs folder just gets a fresh
// manual/ (nothing to migrate).
func (n *Normalizer) planMigration(plan []Action) []Action {
	docs := DocsDirName
	manual := filepath.Join(docs, "manual")

	entries := n.dirEntries(docs)
	if len(entries) == 0 {
		return n.mkdir(plan, manual)
	}
	if n.exists(manual) {
		return plan
	}

	plan = n.mkdir(plan, manual)
	for _, name := range entries {
		src := filepath.Join(docs, name)
		dst := filepath.Join(manual, name)
		plan = append(plan, Action{Op: OpMove, Src: src, Dst: dst})
		n.overlay[src] = false
		n.overlay[dst] = true
	}
	return plan
}

// planManualToc renames the TableOfContents.md variant to the canonical
// toc.md, rewriting its list markup to heading nesting.
func (n *Normalizer) planManualToc(plan []Action) []Action {
	variant := filepath.Join(DocsDirName, "manual", "TableOfContents.md")
	canonical := filepath.Join(DocsDirName, "manual", "toc.md")
	if !n.exists(variant) {
		return plan
	}

	plan = append(plan, Action{Op: OpRewrite, Src: variant, Dst: canonical})
	n.overlay[variant] = false
	n.overlay[canonical] = true
	return plan
}

// planManualIndex seeds manual/index.md from a root README when no index
// was authored.
func (n *Normalizer) planManualIndex(plan []Action) []Action {
	index := filepath.Join(DocsDirName, "manual", "index.md")
	if n.exists(index) || !n.exists("README.md") {
		return plan
	}
	plan = append(plan, Action{Op: OpCopy, Src: "README.md", Dst: index})
	n.overlay[index] = true
	return plan
}

// planAPI ensures the api folder and its index page. A root-level
// api_index.md override is moved in; otherwise a placeholder is written
// once.
func (n *Normalizer) planAPI(plan []Action) []Action {
	api := filepath.Join(DocsDirName, "api")
	index := filepath.Join(api, "index.md")

	plan = n.mkdir(plan, api)
	switch {
	case n.exists("api_index.md"):
		plan = append(plan, Action{Op: OpMove, Src: "api_index.md", Dst: index})
		n.overlay["api_index.md"] = false
		n.overlay[index] = true
	case !n.exists(index):
		plan = append(plan, Action{Op: OpWrite, Dst: index, Content: defaultAPIIndex})
		n.overlay[index] = true
	}
	return plan
}

// planChangelog copies a root changelog into its own section with a
// one-line toc. The original stays in place.
func (n *Normalizer) planChangelog(plan []Action) []Action {
	if !n.exists("CHANGELOG.md") {
		return plan
	}
	dir := filepath.Join(DocsDirName, "changelog")
	plan = n.mkdir(plan, dir)
	plan = n.copyOnce(plan, "CHANGELOG.md", filepath.Join(dir, "CHANGELOG.md"))
	plan = n.writeOnce(plan, filepath.Join(dir, "toc.md"), "# [Changelog](CHANGELOG.md)\n")
	return plan
}

// planLicense normalizes a bare LICENSE to LICENSE.md (move), then copies
// the license — and third-party notices when present — into its own
// section. The notices line precedes the license line in the section toc.
func (n *Normalizer) planLicense(plan []Action) []Action {
	if n.exists("LICENSE") && !n.exists("LICENSE.md") {
		plan = append(plan, Action{Op: OpMove, Src: "LICENSE", Dst: "LICENSE.md"})
		n.overlay["LICENSE"] = false
		n.overlay["LICENSE.md"] = true
	}
	if !n.exists("LICENSE.md") {
		return plan
	}

	dir := filepath.Join(DocsDirName, "license")
	plan = n.mkdir(plan, dir)
	plan = n.copyOnce(plan, "LICENSE.md", filepath.Join(dir, "LICENSE.md"))

	toc := "# [License](LICENSE.md)\n"
	if n.exists(ThirdPartyNoticesName) {
		plan = n.copyOnce(plan, ThirdPartyNoticesName, filepath.Join(dir, ThirdPartyNoticesName))
		toc = fmt.Sprintf("# [Third Party Notices](%s)\n%s", ThirdPartyNoticesName, toc)
	}
	plan = n.writeOnce(plan, filepath.Join(dir, "toc.md"), toc)
	return plan
}

// Apply executes the plan sequentially. The first failure aborts the run.
func (n *Normalizer) Apply(plan []Action) error {
	for _, a := range plan {
		if err := n.apply(a); err != nil {
			return fmt.Errorf("%s: %w", a, err)
		}
		n.Log.Debug("applied", zap.String("action", a.String()))
	}
	return nil
}

func (n *Normalizer) apply(a Action) error {
	dst := filepath.Join(n.Root, a.Dst)
	switch a.Op {
	case OpMkdir:
		return os.MkdirAll(dst, 0o755)
	case OpMove:
		return os.Rename(filepath.Join(n.Root, a.Src), dst)
	case OpCopy:
		return copyFile(filepath.Join(n.Root, a.Src), dst)
	case OpWrite:
		return os.WriteFile(dst, []byte(a.Content), 0o644)
	case OpRewrite:
		src := filepath.Join(n.Root, a.Src)
		data, err := os.ReadFile(src)
		if err != nil {
			return err
		}
		if err := os.WriteFile(dst, RewriteToc(data), 0o644); err != nil {
			return err
		}
		return os.Remove(src)
	default:
		return fmt.Errorf("unknown action op %q", a.Op)
	}
}

// exists consults the planned overlay before the real tree.
func (n *Normalizer) exists(rel string) bool {
	if present, ok := n.overlay[rel]; ok {
		return present
	}
	_, err := os.Stat(filepath.Join(n.Root, rel))
	return err == nil
}

// dirEntries lists a directory's entry names, sorted. Missing or
// unreadable directories read as empty.
func (n *Normalizer) dirEntries(rel string) []string {
	entries, err := os.ReadDir(filepath.Join(n.Root, rel))
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func (n *Normalizer) mkdir(plan []Action, rel string) []Action {
	if n.exists(rel) {
		return plan
	}
	plan = append(plan, Action{Op: OpMkdir, Dst: rel})
	n.overlay[rel] = true
	return plan
}

// copyOnce plans a copy unless the destination is already in place.
func (n *Normalizer) copyOnce(plan []Action, src, dst string) []Action {
	if n.exists(dst) {
		return plan
	}
	plan = append(plan, Action{Op: OpCopy, Src: src, Dst: dst})
	n.overlay[dst] = true
	return plan
}

// writeOnce plans a generated file unless it is already in place.
func (n *Normalizer) writeOnce(plan []Action, dst, content string) []Action {
	if n.exists(dst) {
		return plan
	}
	plan = append(plan, Action{Op: OpWrite, Dst: dst, Content: content})
	n.overlay[dst] = true
	return plan
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// ThirdPartyNoticesName is the Unity convention for bundled notices.
const ThirdPartyNoticesName = "Third Party Notices.md"

const defaultAPIIndex = `# Scripting API

Reference documentation generated from the package source.
Select a type or namespace from the table of contents.
`
