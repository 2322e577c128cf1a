// Package clipboard provides functions for copying and pasting colors
// across different rgbcss invocations by the same user.
//
// On macOS, this uses the system clipboard and thus works across all applications.
package clipboard

import (
	"bytes"
	"io"
	"io/ioutil"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/dpinela/rgbcss/internal/atomicwrite"
	"github.com/dpinela/rgbcss/internal/color"
	"github.com/pkg/errors"

	"github.com/tajtiattila/basedir"
)

// Copy overwrites the clipboard's contents with the CSS notation for c.
func Copy(c color.Color) error {
	return errors.WithMessage(copyGeneric(c.AppendCSS(nil)), "copy failed")
}

// Paste returns the color last stored with Copy by any rgbcss invocation of the same user,
// or the color last copied into the system clipboard if that is supported.
// The clipboard must hold a color in CSS rgb() notation.
func Paste() (color.Color, error) {
	data, err := pasteGeneric()
	if err != nil {
		return color.Color{}, errors.WithMessage(err, "paste failed")
	}
	c, err := color.Parse(string(bytes.TrimSpace(data)))
	return c, errors.WithMessage(err, "paste failed")
}

func copyGeneric(data []byte) error {
	if runtime.GOOS == "darwin" {
		if err := copyToPasteboard(data); err == nil {
			return nil
		}
	}
	return copyBuiltin(data)
}

func pasteGeneric() ([]byte, error) {
	if runtime.GOOS == "darwin" {
		if data, err := pastePasteboard(); err == nil {
			return data, nil
		}
	}
	return pasteBuiltin()
}

func clipboardFilename() (string, error) {
	dir, err := basedir.Data.EnsureDir("rgbcss", 0700)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clipboard"), nil
}

func copyBuiltin(data []byte) error {
	p, err := clipboardFilename()
	if err != nil {
		return err
	}
	return atomicwrite.Write(p, func(w io.Writer) error { _, err := w.Write(data); return err })
}

func pasteBuiltin() ([]byte, error) {
	p, err := clipboardFilename()
	if err != nil {
		return nil, err
	}
	return ioutil.ReadFile(p)
}

func copyToPasteboard(b []byte) error {
	copyCmd := exec.Command("pbcopy")
	copyCmd.Stdin = bytes.NewReader(b)
	return copyCmd.Run()
}

func pastePasteboard() ([]byte, error) {
	return exec.Command("pbpaste").Output()
}
