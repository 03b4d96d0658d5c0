package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/soup/soup/debug"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/repl"
	"go.lsp.dev/protocol"
)

const (
	evalCommand   = "soup.eval"
	overlayMethod = "soup/overlay"
)

// overlay is the evaluation state of a document as seen by the client.
// Clients keep it up to date by applying the merge patches carried by
// overlay notifications.
type overlay struct {
	URI     string `json:"uri"`
	Version int32  `json:"version"`
	// Results are keyed by the span of their form.
	Results map[string]overlayResult `json:"results"`
}

type overlayResult struct {
	Text   string `json:"text"`
	Error  bool   `json:"error,omitempty"`
	Top    int    `json:"top"`
	Height int    `json:"height"`
}

// OverlayParams is the payload of a soup/overlay notification.
type OverlayParams struct {
	URI     string          `json:"uri"`
	Version int32           `json:"version"`
	Patch   json.RawMessage `json:"patch"`
}

type evalRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// evalStore holds per document evaluation state. At most one run per
// document is in flight.
type evalStore struct {
	mu   sync.Mutex
	envs map[string]*eval.Env
	runs map[string]*evalRun
	last map[string][]byte
}

func newEvalStore() *evalStore {
	return &evalStore{
		envs: map[string]*eval.Env{},
		runs: map[string]*evalRun{},
		last: map[string][]byte{},
	}
}

func (es *evalStore) env(uri, ns string) *eval.Env {
	es.mu.Lock()
	defer es.mu.Unlock()
	env := es.envs[uri]
	if env == nil {
		env = eval.NewEnv(eval.StartIn(ns))
		es.envs[uri] = env
	}
	return env
}

// start cancels the run in flight for uri and registers a new one, which
// must wait for the returned previous run before evaluating.
func (es *evalStore) start(ctx context.Context, uri string) (context.Context, *evalRun, *evalRun) {
	es.mu.Lock()
	defer es.mu.Unlock()
	prev := es.runs[uri]
	if prev != nil {
		prev.cancel()
	}
	rctx, cancel := context.WithCancel(ctx)
	r := &evalRun{cancel: cancel, done: make(chan struct{})}
	es.runs[uri] = r
	return rctx, r, prev
}

// patch records next as the client state of uri and returns the merge
// patch leading to it.
func (es *evalStore) patch(uri string, next []byte) ([]byte, error) {
	es.mu.Lock()
	defer es.mu.Unlock()
	prev := es.last[uri]
	if prev == nil {
		prev = []byte("{}")
	}
	p, err := jsonpatch.CreateMergePatch(prev, next)
	if err != nil {
		return nil, err
	}
	es.last[uri] = next
	return p, nil
}

func (es *evalStore) forget(uri string) {
	es.mu.Lock()
	r := es.runs[uri]
	delete(es.runs, uri)
	delete(es.envs, uri)
	delete(es.last, uri)
	es.mu.Unlock()
	if r != nil {
		r.cancel()
	}
}

func (es *evalStore) stopAll() {
	es.mu.Lock()
	runs := make([]*evalRun, 0, len(es.runs))
	for _, r := range es.runs {
		runs = append(runs, r)
	}
	es.mu.Unlock()
	for _, r := range runs {
		r.cancel()
		<-r.done
	}
}

func (s *Server) ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (interface{}, error) {
	if params.Command != evalCommand {
		return nil, fmt.Errorf("unknown command %q", params.Command)
	}
	if len(params.Arguments) != 1 {
		return nil, fmt.Errorf("%s expects a document uri", evalCommand)
	}
	uri, ok := params.Arguments[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s expects a document uri, got %v", evalCommand, params.Arguments[0])
	}
	if s.docs.get(uri) == nil {
		return nil, fmt.Errorf("no open document %s", uri)
	}
	go func() {
		p, err := s.evalDocument(context.Background(), uri)
		if err != nil {
			if debug.LSP() {
				debug.Logf("%s: eval: %v\n", uri, err)
			}
			return
		}
		if p != nil && s.conn != nil {
			s.conn.Notify(context.Background(), overlayMethod, p)
		}
	}()
	return nil, nil
}

// evalDocument evaluates the current version of uri after any earlier run
// for it finished. It returns nil params when the document changed in the
// meantime.
func (s *Server) evalDocument(ctx context.Context, uri string) (*OverlayParams, error) {
	doc := s.docs.get(uri)
	if doc == nil {
		return nil, nil
	}
	rctx, r, prev := s.evals.start(ctx, uri)
	defer close(r.done)
	defer r.cancel()
	if prev != nil {
		<-prev.done
	}
	results, err := repl.Run(rctx, doc.elements(), eval.Interpreter{}, s.evals.env(uri, s.cfg.Namespace))
	if err != nil {
		return nil, err
	}
	if cur := s.docs.get(uri); cur == nil || cur.version != doc.version {
		return nil, nil
	}
	next, err := json.Marshal(newOverlay(doc, results, s.cfg.LineHeight, s.cfg.ContainerTop))
	if err != nil {
		return nil, err
	}
	p, err := s.evals.patch(uri, next)
	if err != nil {
		return nil, err
	}
	return &OverlayParams{URI: uri, Version: doc.version, Patch: p}, nil
}

func newOverlay(doc *document, results []repl.Result, lineHeight, top int) *overlay {
	ps := repl.Layout(results, repl.LineGeometry{LineHeight: lineHeight, Top: top})
	o := &overlay{URI: doc.uri, Version: doc.version, Results: map[string]overlayResult{}}
	for i, r := range results {
		o.Results[r.Span.String()] = overlayResult{
			Text:   r.Text(),
			Error:  r.Err != nil,
			Top:    ps[i].Top,
			Height: ps[i].Height,
		}
	}
	return o
}
