// Package docusaurus bridges the DocFX intermediate output to the
// markdown conversion tool. The tool is an opaque collaborator: this
// side only writes its config file, exports the path environment
// variables, and invokes it.
package docusaurus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the bridge configuration the conversion tool reads
// from its working directory.
const ConfigFileName = "config.yaml"

var (
	// ErrMissingPython signals the interpreter is not installed.
	ErrMissingPython = errors.New("python3 executable not found in PATH")

	// ErrScriptNotFound signals the conversion script is absent while
	// the stage was requested.
	ErrScriptNotFound = errors.New("conversion script not found")
)

// BridgeConfig carries the two resolved paths the conversion tool needs.
type BridgeConfig struct {
	// YamlPath is the DocFX metadata output directory.
	YamlPath string `yaml:"yamlPath"`

	// OutputPath is the destination for the generated markdown.
	OutputPath string `yaml:"outputPath"`
}

// Converter invokes the markdown conversion script.
type Converter struct {
	Script  string
	Verbose bool
	Stdout  io.Writer
	Stderr  io.Writer
	Log     *zap.Logger
}

// NewConverter creates a converter with default output writers.
func NewConverter(script string, verbose bool, log *zap.Logger) *Converter {
	return &Converter{
		Script:  script,
		Verbose: verbose,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Log:     log,
	}
}

// CheckInstalled verifies the interpreter is on PATH.
func CheckInstalled() error {
	if _, err := exec.LookPath("python3"); err != nil {
		return ErrMissingPython
	}
	return nil
}

// Run writes the bridge config and invokes the conversion script. The
// same two paths travel via the config file and the environment; the
// debug flag follows the run's verbosity.
func (c *Converter) Run(ctx context.Context, root string, bridge BridgeConfig) error {
	if _, err := os.Stat(c.Script); err != nil {
		return fmt.Errorf("%w: %s", ErrScriptNotFound, c.Script)
	}

	if err := WriteConfig(root, bridge); err != nil {
		return err
	}

	c.Log.Debug("exec", zap.String("cmd", "python3"), zap.String("script", c.Script))

	cmd := exec.CommandContext(ctx, "python3", c.Script)
	cmd.Dir = root
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	cmd.Env = append(os.Environ(),
		"DFMG_YAML_PATH="+bridge.YamlPath,
		"DFMG_OUTPUT_PATH="+bridge.OutputPath,
	)
	if c.Verbose {
		cmd.Env = append(cmd.Env, "JAN_DEBUG=1")
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("markdown conversion failed: %w", err)
	}
	return nil
}

// WriteConfig serializes the bridge configuration into the working
// directory.
func WriteConfig(root string, bridge BridgeConfig) error {
	data, err := yaml.Marshal(bridge)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(root, ConfigFileName), data, 0o644)
}
