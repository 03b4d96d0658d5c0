// Package session drives an editing surface: it re-derives markup after
// every edit, keeps the caret in place across reindentation and runs
// evaluation of the document in the background.
package session

import (
	"context"
	"sync"

	"github.com/signadot/soup/soup"
	"github.com/signadot/soup/soup/config"
	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/indent"
	"github.com/signadot/soup/soup/render"
	"github.com/signadot/soup/soup/repl"
)

// Key codes with caret handling.
const (
	KeyBackspace = 8
	KeyReturn    = 13
)

// CharRange is a caret or selection as character offsets into the whole
// text.
type CharRange struct {
	Start int
	End   int
}

// Surface is the editable view.
type Surface interface {
	SaveCharacterRange() CharRange
	RestoreCharacterRange(CharRange)
	SetContent(html, lineNumbers string)
	SetOverlay(html string)
}

// Event is a Mutation or an Evaluate.
type Event interface {
	event()
}

// Mutation reports the text of the surface after an edit, and the key
// that caused it, if any.
type Mutation struct {
	Text string
	Key  int
}

// Evaluate requests evaluation of the current document.
type Evaluate struct{}

func (Mutation) event() {}
func (Evaluate) event() {}

type Session struct {
	cfg       *config.Config
	evaluator repl.Evaluator
	env       *eval.Env
	events    chan Event

	// mu guards the surface, version and frame.
	mu      sync.Mutex
	surface Surface
	version int
	frame   *soup.Frame

	run *evalRun
}

// evalRun is one evaluation chain.
type evalRun struct {
	version int
	cancel  context.CancelFunc
	done    chan struct{}
}

type Option func(*Session)

// WithEvaluator replaces the interpreter.
func WithEvaluator(ev repl.Evaluator) Option {
	return func(s *Session) { s.evaluator = ev }
}

// WithEnv sets the shared environment.
func WithEnv(env *eval.Env) Option {
	return func(s *Session) { s.env = env }
}

func New(surface Surface, cfg *config.Config, opts ...Option) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	s := &Session{
		cfg:       cfg,
		evaluator: eval.Interpreter{},
		events:    make(chan Event, 64),
		surface:   surface,
	}
	for _, o := range opts {
		o(s)
	}
	if s.env == nil {
		s.env = eval.NewEnv(eval.StartIn(cfg.Namespace))
	}
	return s
}

// Submit queues ev. It blocks when the queue is full.
func (s *Session) Submit(ctx context.Context, ev Event) error {
	select {
	case s.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Version is the number of mutations handled.
func (s *Session) Version() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Frame is the latest derived frame.
func (s *Session) Frame() *soup.Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame
}

// Run handles events one at a time until ctx is done, then cancels and
// waits for any evaluation in flight.
func (s *Session) Run(ctx context.Context) error {
	defer s.stopEval()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			if err := s.handle(ctx, ev); err != nil {
				return err
			}
		}
	}
}

func (s *Session) handle(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case Mutation:
		if err := s.mutate(ev); err != nil {
			return err
		}
		if s.cfg.AutoEval {
			s.startEval(ctx)
		}
	case Evaluate:
		s.startEval(ctx)
	}
	return nil
}

func (s *Session) refreshOpts() []soup.RefreshOpt {
	return []soup.RefreshOpt{
		soup.WithPalette(s.cfg.RainbowPalette()),
		soup.ClassPrefix(s.cfg.ClassPrefix),
	}
}

func (s *Session) mutate(m Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	caret := s.surface.SaveCharacterRange()
	text := m.Text
	if m.Key == KeyBackspace && s.frame != nil {
		text, caret = joinIndent(text, caret, indent.Split(s.frame.Text))
	}
	f, err := soup.Refresh(text, s.refreshOpts()...)
	if err != nil {
		return err
	}
	om := indent.NewOffsetMap(indent.Split(text), indent.Split(f.Text))
	next := CharRange{Start: om.Map(caret.Start), End: om.Map(caret.End)}
	if m.Key == KeyReturn && caret.Start == caret.End {
		line, _ := om.Line(caret.Start)
		at := om.IndentEnd(line)
		next = CharRange{Start: at, End: at}
	}
	s.version++
	s.frame = f
	if debug.Session() {
		debug.Logf("mutation v%d key %d caret %v -> %v\n", s.version, m.Key, caret, next)
	}
	s.surface.SetContent(f.HTML, f.LineNumbers)
	s.surface.RestoreCharacterRange(next)
	return nil
}

// joinIndent joins the caret line with the previous one when a backspace
// removed part of the indentation of its line, which would otherwise be
// restored. prev holds the lines before the edit. Lines inside a string
// have no enforced indentation and are left alone.
func joinIndent(text string, caret CharRange, prev []string) (string, CharRange) {
	lines := indent.Split(text)
	if caret.Start != caret.End || len(lines) != len(prev) {
		return text, caret
	}
	om := indent.NewOffsetMap(lines, lines)
	line, col := om.Line(caret.Start)
	ws := om.OldIndent(line)
	if line == 0 || col > ws || ws >= indent.Leading(prev[line]) {
		return text, caret
	}
	if indent.Protected(text)[line+1] {
		return text, caret
	}
	rs := []rune(text)
	start := om.LineStart(line)
	join := start - 1
	joined := string(rs[:join]) + string(rs[start+ws:])
	return joined, CharRange{Start: join, End: join}
}

func (s *Session) startEval(ctx context.Context) {
	s.mu.Lock()
	f := s.frame
	version := s.version
	s.mu.Unlock()
	if f == nil {
		return
	}
	prev := s.run
	if prev != nil {
		prev.cancel()
	}
	rctx, cancel := context.WithCancel(ctx)
	r := &evalRun{version: version, cancel: cancel, done: make(chan struct{})}
	s.run = r
	elems := f.Elements()
	go func() {
		defer close(r.done)
		defer cancel()
		if prev != nil {
			<-prev.done
		}
		results, err := repl.Run(rctx, elems, s.evaluator, s.env)
		if err != nil {
			if debug.Session() {
				debug.Logf("eval v%d abandoned: %v\n", version, err)
			}
			return
		}
		s.writeOverlay(version, results)
	}()
}

func (s *Session) writeOverlay(version int, results []repl.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version {
		if debug.Session() {
			debug.Logf("discarding overlay of v%d at v%d\n", version, s.version)
		}
		return
	}
	g := repl.LineGeometry{LineHeight: s.cfg.LineHeight, Top: s.cfg.ContainerTop}
	s.surface.SetOverlay(soup.Overlay(results, g, render.ClassPrefix(s.cfg.ClassPrefix)))
}

func (s *Session) stopEval() {
	if s.run == nil {
		return
	}
	s.run.cancel()
	<-s.run.done
}

// Text returns the canonical text of the latest frame.
func (s *Session) Text() string {
	f := s.Frame()
	if f == nil {
		return ""
	}
	return f.Text
}
