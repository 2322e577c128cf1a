// Package config defines configuration settings for rgbcss and functions for loading them from a file.
package config

import (
	"github.com/BurntSushi/toml"
	"github.com/dpinela/rgbcss/internal/color"
	"github.com/dpinela/rgbcss/internal/palette"
	"github.com/pkg/errors"

	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type Config struct {
	Selector string // Selector of the generated rule
	Prefix   string // Prepended to every custom property name
	Output   string // Stylesheet path; "-" means standard output
	Colors   map[string]string // Color name to CSS rgb() value
}

func defaults() *Config {
	return &Config{Selector: ":root", Output: "-", Colors: make(map[string]string)}
}

// Palette returns the configured colors as a palette, ordered by name.
func (c *Config) Palette() (*palette.Palette, error) {
	names := make([]string, 0, len(c.Colors))
	for name := range c.Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	p := &palette.Palette{}
	for _, name := range names {
		if _, dup := p.Get(name); dup {
			return nil, fmt.Errorf("error in config file: color %s is defined more than once", name)
		}
		col, err := color.Parse(c.Colors[name])
		if err == nil {
			err = p.Set(name, col)
		}
		if err != nil {
			return nil, errors.WithMessage(err, "error in config file: color "+name)
		}
	}
	return p, nil
}

// Decode reads a configuration in TOML format from r. It always returns a usable *Config,
// even if it also returns a non-nil error.
func Decode(r io.Reader) (*Config, error) {
	c := defaults()
	md, err := toml.DecodeReader(r, c)
	if err != nil {
		return c, err
	}
	if md.IsDefined("Colors") && md.Type("Colors") != "Hash" {
		return c, fmt.Errorf("config: Colors must be a table, not %s", strings.ToLower(md.Type("Colors")))
	}
	if c.Selector == "" {
		c.Selector = ":root"
	}
	if c.Output == "" {
		c.Output = "-"
	}
	if c.Colors == nil {
		c.Colors = make(map[string]string)
	}
	return c, nil
}

// DefaultPath returns the location of the primary configuration file for the current user:
// rgbcss/config.toml in the user's configuration directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "rgbcss", "config.toml"), nil
}

// Load reads the configuration file at path, or at DefaultPath if path is empty.
// It always returns a usable *Config, even if it also returns a non-nil error.
func Load(path string) (c *Config, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("error loading config file: %w", err)
		}
	}()
	if path == "" {
		if path, err = DefaultPath(); err != nil {
			return defaults(), err
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return defaults(), err
	}
	defer f.Close()
	return Decode(f)
}
