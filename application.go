package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/dpinela/rgbcss/internal/atomicwrite"
	"github.com/dpinela/rgbcss/internal/clipboard"
	"github.com/dpinela/rgbcss/internal/color"
	"github.com/dpinela/rgbcss/internal/config"
	"github.com/dpinela/rgbcss/internal/palette"
	"github.com/dpinela/rgbcss/internal/pathwatch"
	"github.com/dpinela/rgbcss/internal/preview"
	"github.com/dpinela/rgbcss/internal/termesc"
)

type application struct {
	configPath string // Empty means config.DefaultPath
	output     string // Overrides the config file's Output if non-empty
	selector   string // Overrides the config file's Selector if non-empty
	prefix     *string

	stdout, stderr io.Writer
	isTerminal     bool // Whether stdout is a terminal, enabling color previews
}

// A stylesheet is a palette together with the settings for writing it as CSS.
type stylesheet struct {
	palette          *palette.Palette
	selector, prefix string
	output           string // "-" means stdout
}

func (app *application) resolvedConfigPath() (string, error) {
	if app.configPath != "" {
		return expandPath(app.configPath), nil
	}
	return config.DefaultPath()
}

func (app *application) load() (*stylesheet, error) {
	path, err := app.resolvedConfigPath()
	if err != nil {
		return nil, err
	}
	conf, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	p, err := conf.Palette()
	if err != nil {
		return nil, err
	}
	ss := &stylesheet{palette: p, selector: conf.Selector, prefix: conf.Prefix, output: conf.Output}
	// Relative outputs named in the config file are relative to the file itself;
	// ones given on the command line are relative to the working directory.
	switch {
	case app.output != "":
		ss.output = expandPath(app.output)
	case ss.output != "-":
		ss.output = expandPath(ss.output)
		if !filepath.IsAbs(ss.output) {
			ss.output = filepath.Join(filepath.Dir(path), ss.output)
		}
	}
	if app.selector != "" {
		ss.selector = app.selector
	}
	if app.prefix != nil {
		ss.prefix = *app.prefix
	}
	return ss, nil
}

// generate loads the configuration and writes the stylesheet it describes.
func (app *application) generate() error {
	ss, err := app.load()
	if err != nil {
		return err
	}
	if ss.output == "-" {
		return ss.palette.WriteCSS(app.stdout, ss.selector, ss.prefix)
	}
	return atomicwrite.Write(ss.output, func(w io.Writer) error {
		return ss.palette.WriteCSS(w, ss.selector, ss.prefix)
	})
}

// watch calls generate every time the configuration file changes, until stop is closed.
// Failures to regenerate are reported on stderr and don't end the loop.
func (app *application) watch(stop <-chan struct{}) error {
	path, err := app.resolvedConfigPath()
	if err != nil {
		return err
	}
	w, err := pathwatch.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	changes := make(chan struct{}, 1)
	w.Add(path, changes)
	for {
		select {
		case <-changes:
			if err := app.generate(); err != nil {
				app.status(err.Error(), termesc.StyleBold, termesc.ColorRed)
			} else {
				app.status("regenerated from "+path, termesc.ColorGreen)
			}
		case err := <-w.Errors():
			app.status(err.Error(), termesc.StyleBold, termesc.ColorRed)
		case <-stop:
			return nil
		}
	}
}

// status reports progress in watch mode. On a terminal, each message replaces the previous one.
// Errors are shown in bold red, other messages in green.
func (app *application) status(msg string, attrs ...termesc.GraphicAttribute) {
	if app.isTerminal {
		io.WriteString(app.stderr, "\r"+termesc.ClearLine+termesc.SetGraphicAttributes(attrs...)+msg+termesc.ResetAttributes)
		return
	}
	fmt.Fprintln(app.stderr, msg)
}

func (app *application) preview() error {
	ss, err := app.load()
	if err != nil {
		return err
	}
	return preview.Write(app.stdout, ss.palette.Entries(), app.isTerminal)
}

func (app *application) copyColor(name string) error {
	ss, err := app.load()
	if err != nil {
		return err
	}
	c, ok := ss.palette.Get(name)
	if !ok {
		return fmt.Errorf("no color named %q", name)
	}
	return clipboard.Copy(c)
}

func (app *application) pasteColor() error {
	c, err := clipboard.Paste()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(app.stdout, c)
	return err
}

// printColors parses each argument as a color and prints it back in canonical form.
// It stops at the first argument that isn't a valid color.
func (app *application) printColors(args []string) error {
	for _, arg := range args {
		c, err := color.Parse(arg)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(app.stdout, c); err != nil {
			return err
		}
	}
	return nil
}

func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if p := strings.TrimPrefix(path, "~"+string(filepath.Separator)); len(p) != len(path) {
		// In the unlikely event that the lookup fails, leave the tilde unexpanded; it will be easier
		// to detect the problem that way.
		if u, err := currentUser(); err == nil {
			path = filepath.Join(u.HomeDir, p)
		}
	}
	return path
}

// This is a variable so that it can be mocked for tests.
var currentUser = user.Current
