package session

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/soup/soup/config"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/ir"
)

type fakeSurface struct {
	mu       sync.Mutex
	caret    CharRange
	restored []CharRange
	html     string
	overlays chan string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{overlays: make(chan string, 8)}
}

func (f *fakeSurface) SaveCharacterRange() CharRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.caret
}

func (f *fakeSurface) RestoreCharacterRange(r CharRange) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caret = r
	f.restored = append(f.restored, r)
}

func (f *fakeSurface) SetContent(html, _ string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.html = html
}

func (f *fakeSurface) SetOverlay(html string) {
	f.overlays <- html
}

func (f *fakeSurface) at(offset int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.caret = CharRange{Start: offset, End: offset}
}

func (f *fakeSurface) last() CharRange {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restored[len(f.restored)-1]
}

func TestMutationReindents(t *testing.T) {
	surf := newFakeSurface()
	s := New(surf, nil)
	// after the x on the last line
	surf.at(13)
	if err := s.mutate(Mutation{Text: "(defn f\n[x]\nx)"}); err != nil {
		t.Fatal(err)
	}
	if got, want := s.Text(), "(defn f\n  [x]\n  x)"; got != want {
		t.Errorf("text %q want %q", got, want)
	}
	if diff := cmp.Diff(CharRange{17, 17}, surf.last()); diff != "" {
		t.Errorf("caret (-want +got):\n%s", diff)
	}
	if s.Version() != 1 {
		t.Errorf("version %d", s.Version())
	}
	if !strings.Contains(surf.html, `class="indent"`) {
		t.Errorf("no indent markup in %q", surf.html)
	}
}

func TestReturnMovesToIndentEnd(t *testing.T) {
	surf := newFakeSurface()
	s := New(surf, nil)
	surf.at(11)
	if err := s.mutate(Mutation{Text: "(let [x 1]\nx)", Key: KeyReturn}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(CharRange{13, 13}, surf.last()); diff != "" {
		t.Errorf("caret (-want +got):\n%s", diff)
	}
}

func TestBackspaceJoinsIndentation(t *testing.T) {
	surf := newFakeSurface()
	s := New(surf, nil)
	if err := s.mutate(Mutation{Text: "(a\n  b)"}); err != nil {
		t.Fatal(err)
	}
	surf.at(4)
	if err := s.mutate(Mutation{Text: "(a\n b)", Key: KeyBackspace}); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "(ab)" {
		t.Errorf("text %q", got)
	}
	if diff := cmp.Diff(CharRange{2, 2}, surf.last()); diff != "" {
		t.Errorf("caret (-want +got):\n%s", diff)
	}
}

func TestBackspaceInsideString(t *testing.T) {
	surf := newFakeSurface()
	s := New(surf, nil)
	if err := s.mutate(Mutation{Text: "(def s \"a\n   b\")"}); err != nil {
		t.Fatal(err)
	}
	surf.at(12)
	if err := s.mutate(Mutation{Text: "(def s \"a\n  b\")", Key: KeyBackspace}); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "(def s \"a\n  b\")" {
		t.Errorf("text %q", got)
	}
}

func TestBackspaceAfterContent(t *testing.T) {
	surf := newFakeSurface()
	s := New(surf, nil)
	if err := s.mutate(Mutation{Text: "(a\n  bc)"}); err != nil {
		t.Fatal(err)
	}
	surf.at(6)
	if err := s.mutate(Mutation{Text: "(a\n  b)", Key: KeyBackspace}); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "(a\n  b)" {
		t.Errorf("text %q", got)
	}
}

func start(t *testing.T, s *Session) (context.CancelFunc, chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	return cancel, done
}

func overlay(t *testing.T, surf *fakeSurface) string {
	t.Helper()
	select {
	case html := <-surf.overlays:
		return html
	case <-time.After(5 * time.Second):
		t.Fatal("no overlay")
	}
	return ""
}

func TestEvaluate(t *testing.T) {
	surf := newFakeSurface()
	s := New(surf, nil)
	cancel, done := start(t, s)
	ctx := context.Background()
	if err := s.Submit(ctx, Mutation{Text: "(def x 1)\n(+ x 1)"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Submit(ctx, Evaluate{}); err != nil {
		t.Fatal(err)
	}
	want := `<div class="result" style="top: 16px; height: 16px;">1</div>` +
		`<div class="result" style="top: 16px; height: 16px;">2</div>`
	if diff := cmp.Diff(want, overlay(t, surf)); diff != "" {
		t.Errorf("overlay (-want +got):\n%s", diff)
	}
	cancel()
	<-done
}

func TestAutoEval(t *testing.T) {
	surf := newFakeSurface()
	cfg := config.Default()
	cfg.AutoEval = true
	s := New(surf, cfg)
	cancel, done := start(t, s)
	if err := s.Submit(context.Background(), Mutation{Text: "(* 6 7)"}); err != nil {
		t.Fatal(err)
	}
	if got := overlay(t, surf); !strings.Contains(got, ">42<") {
		t.Errorf("overlay %q", got)
	}
	cancel()
	<-done
}

// gated holds every form until release is closed.
type gated struct {
	release chan struct{}
}

func (g gated) EvalAsync(ctx context.Context, form *ir.Node, env *eval.Env, cb func(any, error)) {
	go func() {
		<-g.release
		eval.Interpreter{}.EvalAsync(ctx, form, env, cb)
	}()
}

func TestStaleOverlayDiscarded(t *testing.T) {
	surf := newFakeSurface()
	g := gated{release: make(chan struct{})}
	s := New(surf, nil, WithEvaluator(g))
	cancel, done := start(t, s)
	ctx := context.Background()
	for _, ev := range []Event{
		Mutation{Text: "(+ 1 1)"},
		Evaluate{},
		Mutation{Text: "(+ 40 2)"},
		Evaluate{},
	} {
		if err := s.Submit(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	close(g.release)
	if got := overlay(t, surf); !strings.Contains(got, ">42<") {
		t.Errorf("overlay %q", got)
	}
	cancel()
	<-done
	select {
	case html := <-surf.overlays:
		t.Errorf("unexpected overlay %q", html)
	default:
	}
}

func TestSharedEnv(t *testing.T) {
	surf := newFakeSurface()
	env := eval.NewEnv()
	s := New(surf, nil, WithEnv(env))
	cancel, done := start(t, s)
	ctx := context.Background()
	for _, ev := range []Event{Mutation{Text: "(def answer 42)"}, Evaluate{}} {
		if err := s.Submit(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}
	overlay(t, surf)
	cancel()
	<-done
	if _, err := env.Resolve("answer"); err != nil {
		t.Errorf("answer not defined: %v", err)
	}
}
