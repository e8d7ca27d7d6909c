package runtime

import "testing"

// traceWidget records lifecycle calls into a shared log.
type traceWidget struct {
	name     string
	children []Widget
	log      *[]string
}

func (w *traceWidget) Measure(Constraints) Size { return Size{} }
func (w *traceWidget) Layout(Rect)              {}
func (w *traceWidget) Render(RenderContext)     {}
func (w *traceWidget) HandleMessage(Message) HandleResult {
	return Unhandled()
}
func (w *traceWidget) ChildWidgets() []Widget { return w.children }
func (w *traceWidget) Bind(Services)          { *w.log = append(*w.log, "bind "+w.name) }
func (w *traceWidget) Unbind()                { *w.log = append(*w.log, "unbind "+w.name) }
func (w *traceWidget) Mount()                 { *w.log = append(*w.log, "mount "+w.name) }
func (w *traceWidget) Unmount()               { *w.log = append(*w.log, "unmount "+w.name) }

func expectLog(t *testing.T, got []string, want ...string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestScreen_RootAttachOrder(t *testing.T) {
	var log []string
	child := &traceWidget{name: "button", log: &log}
	root := &traceWidget{name: "stack", children: []Widget{child}, log: &log}
	screen := NewScreen(10, 5)
	screen.SetServices(NewApp(AppConfig{}).Services())

	screen.SetRoot(root)
	expectLog(t, log, "bind stack", "bind button", "mount stack", "mount button")

	log = log[:0]
	screen.SetRoot(nil)
	expectLog(t, log, "unmount button", "unmount stack", "unbind button", "unbind stack")
}

func TestScreen_WithoutServicesSkipsBind(t *testing.T) {
	var log []string
	root := &traceWidget{name: "stack", log: &log}
	screen := NewScreen(10, 5)
	screen.SetRoot(root)
	expectLog(t, log, "mount stack")
}

func TestScreen_BadgeLayerComesAndGoes(t *testing.T) {
	var log []string
	root := &traceWidget{name: "stack", log: &log}
	badges := &traceWidget{name: "badges", log: &log}
	screen := NewScreen(10, 5)
	screen.SetServices(NewApp(AppConfig{}).Services())
	screen.SetRoot(root)

	log = log[:0]
	screen.PushLayer(badges, false)
	expectLog(t, log, "bind badges", "mount badges")

	log = log[:0]
	screen.RemoveLayer(badges)
	expectLog(t, log, "unmount badges", "unbind badges")
}
