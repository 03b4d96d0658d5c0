package eval

import (
	"fmt"
	"sort"
	"sync"
)

// coreNamespace qualifies builtins.
const coreNamespace = "clojure.core"

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func init() {
	for _, s := range coreSymbols() {
		if err := Register(s); err != nil {
			panic(err)
		}
	}
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	return res
}

// Builtins returns the sorted names of registered symbols.
func Builtins() []string {
	syms := Symbols()
	res := make([]string, len(syms))
	for i, s := range syms {
		res[i] = s.String()
	}
	sort.Strings(res)
	return res
}
