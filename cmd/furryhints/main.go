// Command furryhints shows keyboard hint labels over a terminal demo or a
// live web page and scans control trees from the command line.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/odvcencio/furry-hints/config"
	"github.com/odvcencio/furry-hints/logging"
)

// globals holds the settings shared by every subcommand.
type globals struct {
	configPath string
	logFile    string
	logLevel   string
	maxDepth   int
	delay      time.Duration
	menuNav    bool

	cfg      config.Config
	logger   *slog.Logger
	closeLog func() error
}

func main() {
	// Load .env if present; a missing file is fine.
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:   "furryhints",
		Short: "Keyboard hint labels for terminal and browser UIs",
		Long: `furryhints labels every visible interactive control with a short letter
sequence. Typing a label presses the control; Ctrl on the last letter focuses
it and Shift opens its menu.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.closeLog != nil {
				return g.closeLog()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/furryhints/config.toml)")
	flags.StringVar(&g.logFile, "log-file", "", "Write logs to this file")
	flags.StringVar(&g.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.IntVar(&g.maxDepth, "max-depth", 0, "Maximum traversal depth")
	flags.DurationVar(&g.delay, "delay", 0, "Disambiguation delay, e.g. 200ms")
	flags.BoolVar(&g.menuNav, "menu-nav", false, "Keep labeling submenus opened by a selection")

	root.AddCommand(newDemoCmd(g), newBrowseCmd(g), newScanCmd(g))
	return root
}

// load reads config, applies flag overrides and opens the log.
func (g *globals) load(cmd *cobra.Command) error {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-file") {
		cfg.Log.File = g.logFile
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = g.logLevel
	}
	if flags.Changed("max-depth") {
		cfg.Hints.MaxDepth = g.maxDepth
	}
	if flags.Changed("delay") {
		cfg.Hints.Delay = g.delay
	}
	if flags.Changed("menu-nav") {
		cfg.Hints.MenuNavigation = g.menuNav
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := logging.Open(cfg.Log)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	g.cfg = cfg
	g.logger = logger
	g.closeLog = closeLog
	g.logger.Debug("config loaded", "path", g.configPath, "delay", cfg.Hints.Delay, "max_depth", cfg.Hints.MaxDepth)
	return nil
}
