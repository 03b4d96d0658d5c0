// Package config loads editor settings.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/signadot/soup/soup/eval"
	"github.com/signadot/soup/soup/rainbow"
)

var ErrConfig = errors.New("invalid config")

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "SOUP_CONFIG"

// Names are the file names Find tries, in order.
var Names = []string{"soup.yaml", "soup.yml", "soup.json"}

type Config struct {
	// Palette colours delimiters by depth.
	Palette []string `json:"palette,omitempty"`
	// LineHeight is the height in pixels of one rendered line.
	LineHeight int `json:"lineHeight,omitempty"`
	// ContainerTop is the top edge of the result overlay container.
	ContainerTop int `json:"containerTop,omitempty"`
	// Namespace is where evaluation starts.
	Namespace string `json:"namespace,omitempty"`
	// AutoEval evaluates the document after every edit.
	AutoEval bool `json:"autoEval,omitempty"`
	// ClassPrefix prefixes the classes of generated markup.
	ClassPrefix string `json:"classPrefix,omitempty"`
}

func Default() *Config {
	return &Config{
		Palette:    append([]string{}, rainbow.DefaultPalette...),
		LineHeight: 16,
		Namespace:  eval.DefaultNamespace,
	}
}

// Parse decodes YAML or JSON over the defaults.
func Parse(d []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(d, cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Load(path string) (*Config, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read %q: %w", path, err)
	}
	cfg, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return cfg, nil
}

// Find loads the first of Names present in dir, or returns the defaults.
func Find(dir string) (*Config, error) {
	for _, name := range Names {
		path := filepath.Join(dir, name)
		_, err := os.Stat(path)
		if err == nil {
			return Load(path)
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("could not read %q: %w", path, err)
		}
	}
	return Default(), nil
}

// Resolve loads path when it is set, else the file named by $SOUP_CONFIG,
// else whatever Find locates in dir.
func Resolve(path, dir string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path != "" {
		return Load(path)
	}
	return Find(dir)
}

func (c *Config) Validate() error {
	if len(c.Palette) == 0 {
		return fmt.Errorf("%w: empty palette", ErrConfig)
	}
	for _, p := range c.Palette {
		if _, _, _, ok := rainbow.RGB(p); !ok {
			return fmt.Errorf("%w: unknown colour %q", ErrConfig, p)
		}
	}
	if c.LineHeight <= 0 {
		return fmt.Errorf("%w: lineHeight must be positive, got %d", ErrConfig, c.LineHeight)
	}
	if c.Namespace == "" {
		return fmt.Errorf("%w: empty namespace", ErrConfig)
	}
	return nil
}

func (c *Config) RainbowPalette() rainbow.Palette {
	return rainbow.Palette(c.Palette)
}
