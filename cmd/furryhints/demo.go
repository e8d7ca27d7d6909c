package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	backendtcell "github.com/odvcencio/furry-hints/backend/tcell"
	"github.com/odvcencio/furry-hints/hotkey"
	"github.com/odvcencio/furry-hints/overlay"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/session"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/widgets"
)

// Logical size of one terminal cell. Badge placement and the collector's
// size thresholds work in these units.
const (
	cellWidth  = 8
	cellHeight = 16
)

// demoTree is the sample application the demo and scan commands label.
type demoTree struct {
	root    *widgets.Stack
	bar     *widgets.Menu
	content *widgets.Stack
	status  *state.Signal[string]
}

// newDemoTree builds the sample widgets. quit runs when Quit is chosen.
func newDemoTree(quit func()) *demoTree {
	d := &demoTree{status: state.NewComparable("ready")}
	report := func(what string) func() {
		return func() { d.status.Set(what) }
	}

	d.bar = widgets.NewMenuBar(
		&widgets.MenuItem{Title: "File", Children: []*widgets.MenuItem{
			{Title: "New", OnSelect: report("file: new")},
			{Title: "Open", OnSelect: report("file: open")},
		}},
		&widgets.MenuItem{Title: "Edit", Children: []*widgets.MenuItem{
			{Title: "Undo", OnSelect: report("edit: undo")},
			{Title: "Redo", OnSelect: report("edit: redo")},
		}},
		&widgets.MenuItem{Title: "Quit", OnSelect: func() {
			if quit != nil {
				quit()
			}
		}},
	)

	layout := widgets.NewRadioGroup()
	layout.OnChange(func(index int) {
		if index >= 0 {
			d.status.Set(fmt.Sprintf("layout: %s", []string{"list", "grid"}[index]))
		}
	})
	disabled := widgets.NewButton("Delete", report("deleted"))
	disabled.SetDisabled(true)

	tabs := widgets.NewTabs(
		widgets.Tab{Title: "General", Content: widgets.NewStack(
			widgets.NewButton("Apply", report("applied")),
			widgets.NewButton("Reset", report("reset")),
		)},
		widgets.Tab{Title: "Advanced", Content: widgets.NewStack(
			widgets.NewButton("Export", report("exported")),
		)},
	)
	tabs.OnChange(func(index int) {
		d.status.Set("tab: " + tabs.Tabs[index].Title)
	})

	recent := widgets.NewList[string](widgets.NewSliceAdapter([]string{"notes.txt", "todo.md", "report.pdf"}))
	recent.OnSelect(func(_ int, name string) {
		d.status.Set("opened " + name)
	})

	theme := widgets.NewSelect("Theme",
		widgets.SelectOption{Label: "Light"},
		widgets.SelectOption{Label: "Dark"},
		widgets.SelectOption{Label: "Solarized", Disabled: true},
	)
	theme.SetOnChange(func(opt widgets.SelectOption) {
		d.status.Set("theme: " + opt.Label)
	})

	search := widgets.NewInput("Search")
	search.SetPlaceholder("search files")
	search.OnSubmit(func(text string) {
		d.status.Set("search: " + text)
	})

	d.content = widgets.NewStack(
		widgets.NewLabel("Press the hint hotkey, then type a label."),
		search,
		widgets.NewButton("New document", report("new document")),
		widgets.NewButton("Save", report("saved")),
		disabled,
		widgets.NewRadio("List view", layout),
		widgets.NewRadio("Grid view", layout),
		recent,
		theme,
		tabs,
	)
	d.root = widgets.NewStack(d.bar, d.content, widgets.NewSignalLabel(d.status, nil))
	d.root.SetGap(1)
	return d
}

// watch mirrors the controller state into the status line.
func (d *demoTree) watch(c *session.Controller) func() {
	update := func() {
		switch c.State() {
		case session.ShowingLabels:
			d.status.Set(fmt.Sprintf("%s labels: %d  typed: %q", c.Mode(), len(c.Labels()), c.Prefix().Get()))
		case session.Idle:
			if err := c.LastError(); err != nil {
				d.status.Set("no labels: " + err.Error())
			}
		}
	}
	unsubState := c.StateSignal().Subscribe(update)
	unsubPrefix := c.Prefix().Subscribe(update)
	return func() {
		unsubState()
		unsubPrefix()
	}
}

func newDemoCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run the terminal demo",
		Long: `demo opens a small terminal application. The window hotkey labels its
controls, the chrome hotkey labels the menu bar and Ctrl+Q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), g)
		},
	}
}

func runDemo(ctx context.Context, g *globals) error {
	be, err := backendtcell.New()
	if err != nil {
		return fmt.Errorf("backend init failed: %w", err)
	}

	var app *runtime.App
	tree := newDemoTree(func() { app.ExecuteCommand(runtime.Quit{}) })
	app = runtime.NewApp(runtime.AppConfig{
		Backend: be,
		Root:    tree.root,
		Logger:  g.logger,
	})

	host := widgets.NewHost(app.Screen(), tree.bar, cellWidth, cellHeight)
	host.SetForeground(tree.content)
	badges := overlay.NewTerminal(app.Screen(), host, overlay.WithLogger(g.logger))
	controller := session.New(host, badges, app.Timers(), g.cfg.SessionOptions(g.logger)...)
	defer controller.Dispose()
	defer tree.watch(controller)()

	bridge := hotkey.New(controller, hotkey.WithLogger(g.logger))
	bridge.Bind("app.quit", "ctrl+q", func(app *runtime.App) bool {
		app.ExecuteCommand(runtime.Quit{})
		return false
	})
	if err := bridge.Install(app, g.cfg.Hotkeys.Window, g.cfg.Hotkeys.Chrome); err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("app run failed: %w", err)
	}
	return nil
}
