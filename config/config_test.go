package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
palette: [red, "#00ff00"]
lineHeight: 20
autoEval: true
`))
	if err != nil {
		t.Fatal(err)
	}
	want := Default()
	want.Palette = []string{"red", "#00ff00"}
	want.LineHeight = 20
	want.AutoEval = true
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config (-want +got):\n%s", diff)
	}
}

func TestParseInvalid(t *testing.T) {
	for _, in := range []string{
		"palette: []",
		"palette: [notacolour]",
		"lineHeight: 0",
		"namespace: ''",
	} {
		if _, err := Parse([]byte(in)); !errors.Is(err, ErrConfig) {
			t.Errorf("%q: got %v", in, err)
		}
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
	if err := os.WriteFile(filepath.Join(dir, "soup.json"), []byte(`{"namespace": "scratch"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Find(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Namespace != "scratch" {
		t.Errorf("namespace %q", cfg.Namespace)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(path, []byte("lineHeight: 12\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)
	cfg, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LineHeight != 12 {
		t.Errorf("lineHeight %d from $%s", cfg.LineHeight, EnvConfig)
	}
	t.Setenv(EnvConfig, "")
	cfg, err = Resolve("", t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("defaults (-want +got):\n%s", diff)
	}
}
