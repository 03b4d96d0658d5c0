package eval

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// DefaultNamespace is current in a new Env.
const DefaultNamespace = "user"

// Namespace holds definitions.
type Namespace struct {
	Name string
	vars map[string]any
}

func newNamespace(name string) *Namespace {
	return &Namespace{Name: name, vars: map[string]any{}}
}

// Env is the shared evaluation environment. It is safe for concurrent
// use, though forms mutating it should be evaluated one at a time.
type Env struct {
	mu         sync.RWMutex
	namespaces map[string]*Namespace
	current    *Namespace
	home       string
	out        io.Writer
	maxDepth   int
}

type envOpts struct {
	out      io.Writer
	ns       string
	maxDepth int
}

type EnvOption func(*envOpts)

// Output sets where println writes.
func Output(w io.Writer) EnvOption {
	return func(o *envOpts) { o.out = w }
}

// StartIn sets the namespace current in the new Env.
func StartIn(ns string) EnvOption {
	return func(o *envOpts) { o.ns = ns }
}

// MaxDepth bounds the depth of nested calls.
func MaxDepth(n int) EnvOption {
	return func(o *envOpts) { o.maxDepth = n }
}

func NewEnv(opts ...EnvOption) *Env {
	o := &envOpts{out: io.Discard, ns: DefaultNamespace, maxDepth: 2000}
	for _, f := range opts {
		f(o)
	}
	env := &Env{
		namespaces: map[string]*Namespace{},
		home:       o.ns,
		out:        o.out,
		maxDepth:   o.maxDepth,
	}
	env.InNamespace(o.ns)
	return env
}

// InNamespace makes ns current, creating it if needed.
func (e *Env) InNamespace(ns string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, ok := e.namespaces[ns]
	if !ok {
		n = newNamespace(ns)
		e.namespaces[ns] = n
	}
	e.current = n
}

// Reset makes the namespace the Env started in current again.
func (e *Env) Reset() {
	e.InNamespace(e.home)
}

// Current is the name of the current namespace.
func (e *Env) Current() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current.Name
}

// Define binds name in the current namespace.
func (e *Env) Define(name string, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.current.vars[name] = v
}

// Namespaces returns the sorted namespace names.
func (e *Env) Namespaces() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	res := make([]string, 0, len(e.namespaces))
	for n := range e.namespaces {
		res = append(res, n)
	}
	sort.Strings(res)
	return res
}

// Defs returns the sorted names defined in namespace ns.
func (e *Env) Defs(ns string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	n, ok := e.namespaces[ns]
	if !ok {
		return nil
	}
	res := make([]string, 0, len(n.vars))
	for k := range n.vars {
		res = append(res, k)
	}
	sort.Strings(res)
	return res
}

// Vars returns a copy of the definitions of the current namespace.
func (e *Env) Vars() map[string]any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	res := make(map[string]any, len(e.current.vars))
	for k, v := range e.current.vars {
		res[k] = v
	}
	return res
}

// Resolve looks up a global symbol, which may be qualified by a namespace.
func (e *Env) Resolve(name string) (any, error) {
	if ns, local, ok := strings.Cut(name, "/"); ok && ns != "" && local != "" {
		if ns == coreNamespace {
			if s := Lookup(local); s != nil {
				return s, nil
			}
			return nil, unbound(name)
		}
		e.mu.RLock()
		defer e.mu.RUnlock()
		n, ok := e.namespaces[ns]
		if !ok {
			return nil, fmt.Errorf("%w: no such namespace: %s", ErrUnbound, ns)
		}
		v, ok := n.vars[local]
		if !ok {
			return nil, unbound(name)
		}
		return v, nil
	}
	e.mu.RLock()
	v, ok := e.current.vars[name]
	e.mu.RUnlock()
	if ok {
		return v, nil
	}
	if s := Lookup(name); s != nil {
		return s, nil
	}
	return nil, unbound(name)
}

func unbound(name string) error {
	return fmt.Errorf("%w: %s in this context", ErrUnbound, name)
}

// scope holds local bindings.
type scope struct {
	vars   map[string]any
	parent *scope
}

func (s *scope) child() *scope {
	return &scope{vars: map[string]any{}, parent: s}
}

func (s *scope) lookup(name string) (any, bool) {
	for x := s; x != nil; x = x.parent {
		if v, ok := x.vars[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// flatten returns the visible local bindings, inner ones winning.
func (s *scope) flatten(dst map[string]any) {
	if s == nil {
		return
	}
	s.parent.flatten(dst)
	for k, v := range s.vars {
		dst[k] = v
	}
}
