package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Read    bool
	Tags    bool
	Eval    bool
	Session bool
	LSP     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Read = boolEnv("SOUP_DEBUG_READ")
	d.Tags = boolEnv("SOUP_DEBUG_TAGS")
	d.Eval = boolEnv("SOUP_DEBUG_EVAL")
	d.Session = boolEnv("SOUP_DEBUG_SESSION")
	d.LSP = boolEnv("SOUP_DEBUG_LSP")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Read() bool {
	return d.Read
}
func Tags() bool {
	return d.Tags
}
func Eval() bool {
	return d.Eval
}
func Session() bool {
	return d.Session
}
func LSP() bool {
	return d.LSP
}

// Logf writes to stderr.
func Logf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// LogAny writes v to stderr as indented JSON.
func LogAny(v any) {
	d, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
