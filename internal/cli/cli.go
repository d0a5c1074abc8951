// Package cli implements the depchecker command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depchecker/pkg/buildinfo"
	"github.com/matzehuels/depchecker/pkg/cache"
	"github.com/matzehuels/depchecker/pkg/checker"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "depchecker"

	envCacheDir = "DEPCHECKER_CACHE_DIR"
	envFormat   = "DEPCHECKER_FORMAT"
	envNoCache  = "DEPCHECKER_NO_CACHE"
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
	Logger *log.Logger
	Out    io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// Without a subcommand the root behaves like "check".
func (c *CLI) RootCommand() *cobra.Command {
	opts := &checkOptions{}
	root := &cobra.Command{
		Use:   "depchecker [path]",
		Short: "depchecker finds missing and unneeded Python requirements",
		Long: `depchecker compares the requirements a Python distribution declares with the
names its sources actually import (Python modules, ZCML, GenericSetup profiles,
Django settings and doctests) and reports what is missing or unneeded.`,
		Version:       buildinfo.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCheck(cmd, args, opts)
		},
	}
	addCheckFlags(root, opts)

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a checker runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*checker.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return checker.NewRunner(cache, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $DEPCHECKER_CACHE_DIR, or the XDG cache directory
// (~/.cache/depchecker/).
func cacheDir() (string, error) {
	if dir := os.Getenv(envCacheDir); dir != "" {
		return dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
