package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soliptic/pkgdocs/src/config"
)

var (
	cfgFile string
	verbose bool
	logFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "pkgdocs",
	Short: "Unity package documentation pipeline",
	Long:  "pkgdocs — normalizes a Unity package's documentation tree, synthesizes the DocFX configuration, and builds the documentation site.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it.
		if cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .pkgdocs.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write a debug log to this file")

	// An unrecognized flag should still show the reader what the valid
	// flags are before the nonzero exit.
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintln(os.Stderr, cmd.UsageString())
		return err
	})
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
