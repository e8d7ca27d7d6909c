package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/agent"
	"github.com/odvcencio/furry-hints/browser"
	"github.com/odvcencio/furry-hints/config"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/session"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/widgets"
)

type scanFlags struct {
	mode   string
	json   bool
	color  string
	width  int
	height int
}

func newScanCmd(g *globals) *cobra.Command {
	f := &scanFlags{}
	cmd := &cobra.Command{
		Use:   "scan [url]",
		Short: "Print the labels one scan would show",
		Long: `scan runs a single scan and prints every labeled element. Without a url
it scans the built-in demo application.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := session.ParseMode(f.mode)
			if err != nil {
				return err
			}
			var host accessibility.Host
			if len(args) == 1 {
				opts := g.browserOptions(args[0])
				opts.Headless = true
				b, err := browser.Launch(opts)
				if err != nil {
					return err
				}
				defer b.Close()
				host = browser.NewHost(b.Page(), browser.WithHostLogger(g.logger))
			} else {
				host = demoHost(f.width, f.height)
			}

			snap, err := scan(host, g.cfg, mode, g.logger)
			out := cmd.OutOrStdout()
			if f.json {
				if rerr := renderJSON(out, snap, useColor(f.color, out)); rerr != nil {
					return rerr
				}
			} else {
				renderTable(out, snap)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&f.mode, "mode", "window", "Scan mode: window or chrome")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print the snapshot as JSON")
	cmd.Flags().StringVar(&f.color, "color", "auto", "Highlight JSON: auto, always or never")
	cmd.Flags().IntVar(&f.width, "cols", 80, "Demo screen width in cells")
	cmd.Flags().IntVar(&f.height, "rows", 30, "Demo screen height in cells")
	return cmd
}

// demoHost lays the demo tree out on an offscreen screen.
func demoHost(cols, rows int) accessibility.Host {
	tree := newDemoTree(nil)
	screen := runtime.NewScreen(cols, rows)
	screen.SetRoot(tree.root)
	host := widgets.NewHost(screen, tree.bar, cellWidth, cellHeight)
	host.SetForeground(tree.content)
	return host
}

// scan runs one episode against host and returns its snapshot. Labels are
// dismissed before returning.
func scan(host accessibility.Host, cfg config.Config, mode session.Mode, logger *slog.Logger) (agent.Snapshot, error) {
	timers := state.NewManualTimers()
	c := session.New(host, nil, timers, cfg.SessionOptions(logger)...)
	defer c.Dispose()
	a := agent.New(c, agent.WithClock(timers), agent.WithDelay(cfg.Hints.Delay))
	snap, err := a.Scan(mode)
	if logger != nil {
		logger.Debug("scan finished", "mode", mode.String(), "count", len(snap.Elements))
	}
	return snap, err
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = cellStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11")).Bold(true)
)

// renderTable prints one row per labeled element.
func renderTable(w io.Writer, snap agent.Snapshot) {
	rows := make([][]string, 0, len(snap.Elements))
	for _, el := range snap.Elements {
		rows = append(rows, []string{
			el.Label,
			string(el.Role),
			el.Title,
			fmt.Sprintf("%g,%g %gx%g", el.Frame.X, el.Frame.Y, el.Frame.Width, el.Frame.Height),
		})
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("LABEL", "ROLE", "TITLE", "FRAME").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return labelStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.String())

	summary := fmt.Sprintf("%d elements, %s mode, screen %gx%g", len(snap.Elements), snap.Mode, snap.Screen.Width, snap.Screen.Height)
	if snap.Error != "" {
		summary += ", error: " + snap.Error
	}
	fmt.Fprintln(w, summary)
}

// renderJSON prints the snapshot, highlighted when color is set.
func renderJSON(w io.Writer, snap agent.Snapshot, color bool) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if !color {
		_, err = fmt.Fprintln(w, string(data))
		return err
	}
	return quick.Highlight(w, string(data)+"\n", "json", "terminal256", "monokai")
}

// useColor resolves the --color flag against whether w is a terminal.
func useColor(mode string, w io.Writer) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
