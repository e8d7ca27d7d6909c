package accessibility_test

import (
	"errors"
	"testing"

	"github.com/odvcencio/furry-hints/accessibility"
	"github.com/odvcencio/furry-hints/accessibility/fake"
	"github.com/odvcencio/furry-hints/geom"
)

func TestFrame_ComposesPositionAndSize(t *testing.T) {
	n := fake.Button("ok", geom.Rect{X: 1, Y: 2, Width: 3, Height: 4})
	frame, err := accessibility.Frame(n)
	if err != nil {
		t.Fatalf("frame: %v", err)
	}
	if frame != (geom.Rect{X: 1, Y: 2, Width: 3, Height: 4}) {
		t.Fatalf("unexpected frame %+v", frame)
	}
}

func TestFrame_PropagatesReadFailure(t *testing.T) {
	n := fake.Button("ok", geom.Rect{})
	n.NoFrame = true
	if _, err := accessibility.Frame(n); !errors.Is(err, accessibility.ErrUnsupported) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestPerform_FallsBackToActivate(t *testing.T) {
	n := &fake.Node{NodeRole: "custom", Acts: []accessibility.Action{accessibility.ActionActivate}}
	if err := accessibility.Perform(n, accessibility.ActionPress); err != nil {
		t.Fatalf("perform: %v", err)
	}
	if len(n.Performed) != 1 || n.Performed[0] != accessibility.ActionActivate {
		t.Fatalf("unexpected actions %v", n.Performed)
	}
}

func TestArena_ReleasesEverything(t *testing.T) {
	a := fake.Button("a", geom.Rect{})
	b := fake.Button("b", geom.Rect{})
	var arena accessibility.Arena
	arena.Retain(a)
	arena.Retain(b)
	arena.Retain(nil)
	if arena.Len() != 2 {
		t.Fatalf("expected 2 retained, got %d", arena.Len())
	}
	arena.Release()
	if a.Released != 1 || b.Released != 1 {
		t.Fatalf("expected both released once, got a=%d b=%d", a.Released, b.Released)
	}
	if arena.Len() != 0 {
		t.Fatalf("expected empty arena after release")
	}
}

func TestIsRecoverable(t *testing.T) {
	if !accessibility.IsRecoverable(accessibility.ErrNoValue) {
		t.Fatalf("expected no-value to be recoverable")
	}
	if accessibility.IsRecoverable(accessibility.ErrUnavailable) {
		t.Fatalf("expected unavailable to be fatal")
	}
}
