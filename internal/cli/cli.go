// Package cli implements the depscout command-line interface.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/depscout/depscout/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "depscout"

	// apiKeyEnv is the credential variable for the Libraries.io API.
	// Its absence is a startup error for the collect command.
	apiKeyEnv = "LIBRARIES_IO_API_KEY"

	// rankingFile is the default ranking artifact name inside the output
	// directory.
	rankingFile = "top_npm_packages.csv"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "depscout collects metadata about the most popular npm packages",
		Long: `depscout ranks npm packages by dependent count from the public deps.dev
dataset and collects per-package registry metadata for the top entries,
producing datasets for supply-chain analysis.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "depscout.toml", "path to the optional config file")

	root.AddCommand(c.rankCommand())
	root.AddCommand(c.collectCommand())
	root.AddCommand(c.cacheCommand())

	return root
}
