// Package runtime runs a widget tree against a terminal backend on a single
// cooperative event loop.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/odvcencio/furry-hints/backend"
	"github.com/odvcencio/furry-hints/state"
	"github.com/odvcencio/furry-hints/terminal"
)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands that reach the app.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// KeyHandler sees every key before the widget tree. Returning true consumes
// the key.
type KeyHandler interface {
	HandleKey(app *App, msg KeyMsg, focused Widget) bool
}

// KeyHandlerFunc adapts a function into a KeyHandler.
type KeyHandlerFunc func(app *App, msg KeyMsg, focused Widget) bool

// HandleKey calls f.
func (f KeyHandlerFunc) HandleKey(app *App, msg KeyMsg, focused Widget) bool {
	return f(app, msg, focused)
}

// HotkeyHandler receives keys the keymap resolved to a hotkey name.
type HotkeyHandler func(app *App, msg HotkeyMsg) bool

// AppConfig configures an App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	StateQueue     *state.Queue
	FlushPolicy    QueueFlushPolicy
	KeyHandler     KeyHandler
	Keymap         *Keymap
	HotkeyHandler  HotkeyHandler
	Logger         *slog.Logger
}

// App runs a widget tree against a terminal backend.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	keyHandler     KeyHandler
	keymap         *Keymap
	hotkeyHandler  HotkeyHandler
	messages       chan Message
	tickRate       time.Duration
	stateQueue     *state.Queue
	queueScheduler *QueueScheduler
	flushPolicy    QueueFlushPolicy
	invalidator    *Invalidator
	timers         *LoopTimers
	logger         *slog.Logger

	taskMu         sync.Mutex
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingEffects []Effect

	running bool
	dirty   bool
}

// NewApp creates an App from cfg.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	queue := cfg.StateQueue
	if queue == nil {
		queue = state.NewQueue()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		keyHandler:     cfg.KeyHandler,
		keymap:         cfg.Keymap,
		hotkeyHandler:  cfg.HotkeyHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		stateQueue:     queue,
		flushPolicy:    cfg.FlushPolicy,
		logger:         logger,
	}
	app.queueScheduler = NewQueueScheduler(queue, app.tryPost)
	app.invalidator = NewInvalidator(app.tryPost)
	app.timers = NewLoopTimers(app)
	app.screen = NewScreen(0, 0)
	app.screen.SetServices(app.Services())
	return app
}

// Screen returns the app screen. It is sized to the backend when Run starts.
func (a *App) Screen() *Screen {
	if a == nil {
		return nil
	}
	return a.screen
}

// StateQueue returns the app's state queue.
func (a *App) StateQueue() *state.Queue {
	if a == nil {
		return nil
	}
	return a.stateQueue
}

// StateScheduler returns a scheduler that runs callbacks on the loop.
func (a *App) StateScheduler() state.Scheduler {
	if a == nil || a.queueScheduler == nil {
		return nil
	}
	return a.queueScheduler
}

// InvalidateScheduler returns a scheduler that invalidates the render pass.
func (a *App) InvalidateScheduler() state.Scheduler {
	if a == nil || a.invalidator == nil {
		return nil
	}
	return a.invalidator
}

// Timers returns timers whose callbacks run on the loop.
func (a *App) Timers() *LoopTimers {
	if a == nil {
		return nil
	}
	return a.timers
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Spawn starts an effect using the app task context.
// Before Run starts, the effect is queued.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	a.taskMu.Lock()
	if a.taskCtx == nil {
		a.pendingEffects = append(a.pendingEffects, effect)
		a.taskMu.Unlock()
		return
	}
	a.taskMu.Unlock()
	a.runEffect(effect)
}

// After schedules a delayed message.
func (a *App) After(delay time.Duration, msg Message) {
	a.Spawn(After(delay, msg))
}

// SetKeymap replaces the hotkey map. Call it before Run.
func (a *App) SetKeymap(km *Keymap) {
	a.keymap = km
}

// SetKeyHandler replaces the key handler. Call it before Run.
func (a *App) SetKeyHandler(h KeyHandler) {
	a.keyHandler = h
}

// SetHotkeyHandler replaces the hotkey handler. Call it before Run.
func (a *App) SetHotkeyHandler(h HotkeyHandler) {
	a.hotkeyHandler = h
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.running {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the loop, dropping it when the queue is full.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		return false
	}
}

// postWait blocks until msg is queued or ctx ends.
func (a *App) postWait(ctx context.Context, msg Message) bool {
	if a == nil || a.messages == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	case <-ctx.Done():
		return false
	}
}

// Run starts the loop and blocks until Quit or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a.backend == nil {
		return errors.New("backend is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	a.taskMu.Lock()
	a.taskCtx, a.taskCancel = taskCtx, taskCancel
	a.taskMu.Unlock()
	defer func() {
		taskCancel()
		a.timers.stopAll()
		a.taskMu.Lock()
		a.taskCtx, a.taskCancel = nil, nil
		a.taskMu.Unlock()
	}()

	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen.Resize(w, h)
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running = true
	a.dirty = true
	a.startPendingEffects()
	go a.pollEvents(taskCtx)

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running {
		var msg Message
		select {
		case <-ctx.Done():
			a.running = false
			continue
		case msg = <-a.messages:
		case now := <-ticks:
			msg = TickMsg{Time: now}
		}
		a.step(msg)
		if a.running && a.dirty {
			a.render()
			a.dirty = false
		}
	}
	return ctx.Err()
}

// step runs one message through update and the queue flush policy.
func (a *App) step(msg Message) {
	if a.update(a, msg) {
		a.dirty = true
	}
	if !a.running {
		return
	}
	if a.flushQueueIfNeeded(msg) {
		a.dirty = true
	}
	if _, ok := msg.(InvalidateMsg); ok {
		if n := a.invalidator.take(); n > 1 {
			a.logger.Debug("render requests coalesced", "count", n)
		}
	}
}

// DefaultUpdate routes input through the hotkey map, the key handler and the
// widget tree, and delivers timer expiries.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil {
		return false
	}
	switch m := msg.(type) {
	case ResizeMsg:
		if app.screen != nil {
			app.screen.Resize(m.Width, m.Height)
		}
		return true
	case KeyMsg:
		if name, ok := app.keymap.Resolve(m); ok {
			return DefaultUpdate(app, HotkeyMsg{Name: name, Key: m})
		}
		if app.keyHandler != nil {
			var focused Widget
			if scope := app.screen.FocusScope(); scope != nil {
				if f, ok := scope.Current().(Widget); ok {
					focused = f
				}
			}
			if app.keyHandler.HandleKey(app, m, focused) {
				return true
			}
		}
		return app.dispatchMessage(msg)
	case HotkeyMsg:
		if app.hotkeyHandler != nil {
			app.logger.Debug("hotkey", "name", m.Name)
			return app.hotkeyHandler(app, m)
		}
		return app.dispatchMessage(m.Key)
	case TimerMsg:
		return app.timers.fire(m.ID)
	case QueueFlushMsg:
		return false
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running = false
		a.cancelTasks()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.runEffect(c)
		return false
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents(ctx context.Context) {
	for ctx.Err() == nil {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.postWait(ctx, KeyMsg{Key: e.Key, Rune: e.Rune, Alt: e.Alt, Ctrl: e.Ctrl, Shift: e.Shift})
		case terminal.ResizeEvent:
			a.postWait(ctx, ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

// render draws the screen and writes changed cells to the backend, using
// the bulk writers when the backend offers them.
func (a *App) render() {
	if a.screen == nil {
		return
	}
	a.screen.Render()
	buf := a.screen.Buffer()
	if !buf.IsDirty() {
		return
	}
	w, h := buf.Size()
	cells := buf.Cells()
	full := buf.DirtyCount() > w*h/2
	switch b := a.backend.(type) {
	case backend.RectWriter:
		if full {
			b.SetRect(0, 0, w, h, cells)
			break
		}
		a.flushSpans(buf)
	case backend.RowWriter:
		buf.ForEachDirtySpan(func(y, startX, endX int) {
			row := y * w
			b.SetRow(y, startX, cells[row+startX:row+endX])
		})
	default:
		a.flushSpans(buf)
	}
	buf.ClearDirty()
	a.backend.Show()
}

func (a *App) flushSpans(buf *Buffer) {
	buf.ForEachDirtyCell(func(x, y int, cell Cell) {
		if cell.Rune == 0 {
			return
		}
		a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
	})
}

func (a *App) taskContext() context.Context {
	if a == nil {
		return context.Background()
	}
	a.taskMu.Lock()
	defer a.taskMu.Unlock()
	if a.taskCtx != nil {
		return a.taskCtx
	}
	return context.Background()
}

func (a *App) cancelTasks() {
	if a == nil {
		return
	}
	a.taskMu.Lock()
	cancel := a.taskCancel
	a.taskMu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (a *App) runEffect(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	go effect.Run(a.taskContext(), a.tryPost)
}

func (a *App) startPendingEffects() {
	a.taskMu.Lock()
	effects := a.pendingEffects
	a.pendingEffects = nil
	a.taskMu.Unlock()
	for _, effect := range effects {
		a.runEffect(effect)
	}
}

func (a *App) flushQueueIfNeeded(msg Message) bool {
	if a.stateQueue == nil || !shouldFlushQueue(a.flushPolicy, msg) {
		return false
	}
	return a.stateQueue.Flush() > 0
}
