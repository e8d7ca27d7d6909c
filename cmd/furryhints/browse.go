package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	backendtcell "github.com/odvcencio/furry-hints/backend/tcell"
	"github.com/odvcencio/furry-hints/browser"
	"github.com/odvcencio/furry-hints/hotkey"
	"github.com/odvcencio/furry-hints/runtime"
	"github.com/odvcencio/furry-hints/session"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/widgets"
)

func newBrowseCmd(g *globals) *cobra.Command {
	var headless bool
	cmd := &cobra.Command{
		Use:   "browse <url>",
		Short: "Label a live web page from the terminal",
		Long: `browse opens url in Chromium and keeps the terminal as the keyboard. The
window hotkey labels the page, the chrome hotkey labels its header or
navigation, and Ctrl+Q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := g.browserOptions(args[0])
			if cmd.Flags().Changed("headless") {
				opts.Headless = headless
			}
			return runBrowse(cmd.Context(), g, opts)
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "Run the browser without a window")
	return cmd
}

func (g *globals) browserOptions(url string) browser.Options {
	return browser.Options{
		URL:        url,
		Width:      g.cfg.Browser.Width,
		Height:     g.cfg.Browser.Height,
		Headless:   g.cfg.Browser.Headless,
		ProfileDir: g.cfg.Browser.Profile,
	}
}

func runBrowse(ctx context.Context, g *globals, opts browser.Options) error {
	fmt.Printf("→ Opening %s... ", opts.URL)
	b, err := browser.Launch(opts)
	if err != nil {
		fmt.Println("failed")
		return err
	}
	defer b.Close()
	fmt.Println("done")

	be, err := backendtcell.New()
	if err != nil {
		return fmt.Errorf("backend init failed: %w", err)
	}
	status := state.NewComparable("press " + g.cfg.Hotkeys.Window + " to label the page")
	root := widgets.NewStack(
		widgets.NewLabel("furryhints: "+opts.URL),
		widgets.NewSignalLabel(status, nil),
	)
	app := runtime.NewApp(runtime.AppConfig{Backend: be, Root: root, Logger: g.logger})

	host := browser.NewHost(b.Page(), browser.WithHostLogger(g.logger))
	controller := session.New(host, browser.NewOverlay(b.Page()), app.Timers(), g.cfg.SessionOptions(g.logger)...)
	defer controller.Dispose()
	unsub := controller.StateSignal().Subscribe(func() {
		switch controller.State() {
		case session.ShowingLabels:
			status.Set(fmt.Sprintf("%d labels shown, type one (Esc cancels)", len(controller.Labels())))
		case session.Idle:
			if err := controller.LastError(); err != nil {
				status.Set("no labels: " + err.Error())
			} else {
				status.Set("ready")
			}
		}
	})
	defer unsub()

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
