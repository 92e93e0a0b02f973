// Package cli implements the srfactory command-line interface.
package cli

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/starrupture/srfactory/pkg/buildinfo"
	"github.com/starrupture/srfactory/pkg/catalogue"
	"github.com/starrupture/srfactory/pkg/factory"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "srfactory"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// ErrReported is returned by commands that already printed their failure.
// The caller should exit non-zero without printing it again.
var ErrReported = errors.New("failure already reported")

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command results, Err receives failure reports.
	Out io.Writer
	Err io.Writer

	configPath string
	dataDir    string
}

// New creates a new CLI instance with a default logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
		Err:    w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "srfactory checks StarRupture factory layouts",
		Long: `srfactory loads a StarRupture factory layout, checks it against the game's item
catalogue and reports the first problem with the JSON path where it occurs.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			c.registerHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/srfactory/config.toml)")
	root.PersistentFlags().StringVar(&c.dataDir, "data-dir", "", "directory holding the catalogue CSV files")

	root.AddCommand(c.verifyCommand())
	root.AddCommand(c.itemsCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.calcCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Loading
// =============================================================================

// loadCatalogue resolves the configuration and reads the catalogue it names.
func (c *CLI) loadCatalogue() (*catalogue.Catalogue, error) {
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.dataDir != "" {
		cfg.DataDir = c.dataDir
	}
	files := cfg.CatalogueFiles()
	c.Logger.Debug("loading catalogue", "items", files.Items, "inputs", files.Inputs,
		"raw", files.Raw, "buildings", files.Buildings)

	prog := newProgress(c.Logger)
	cat, err := catalogue.Load(files)
	if err != nil {
		return nil, err
	}
	prog.debug("Loaded catalogue", "items", len(cat.Items), "raw", len(cat.RawItems))
	return cat, nil
}

// loadNetwork loads and validates the layout at path against cat. A failure
// in the layout itself is printed in the layout error format and reported
// as [ErrReported]; environment failures are returned unchanged.
func (c *CLI) loadNetwork(cat *catalogue.Catalogue, path string) (*factory.Network, error) {
	prog := newProgress(c.Logger)
	n, err := factory.NewLoader(cat, c.Logger).Load(path)
	if err != nil {
		if isLayoutError(err) {
			printLoadError(c.Err, path, err)
			return nil, ErrReported
		}
		return nil, err
	}
	prog.debug("Loaded layout", "file", path)
	return n, nil
}
