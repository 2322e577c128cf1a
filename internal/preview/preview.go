// Package preview renders palettes as text tables for display on a terminal.
package preview

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pkg/errors"

	"github.com/dpinela/rgbcss/internal/palette"
	"github.com/dpinela/rgbcss/internal/termesc"
)

const swatch = "    "

// Write prints one line per entry: a swatch of the color if useColor is set,
// the entry's name padded to a common width, and its CSS notation.
// useColor should only be set if w is a terminal that understands 24-bit color codes.
func Write(w io.Writer, entries []palette.Entry, useColor bool) error {
	nameWidth := 0
	for _, e := range entries {
		if n := runewidth.StringWidth(e.Name); n > nameWidth {
			nameWidth = n
		}
	}
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if useColor {
			bw.WriteString(termesc.SetGraphicAttributes(termesc.Background(e.Color)))
			bw.WriteString(swatch)
			bw.WriteString(termesc.ResetAttributes)
			bw.WriteByte(' ')
		}
		bw.WriteString(e.Name)
		bw.WriteString(strings.Repeat(" ", nameWidth-runewidth.StringWidth(e.Name)+2))
		bw.Write(e.Color.AppendCSS(nil))
		bw.WriteByte('\n')
	}
	return errors.Wrap(bw.Flush(), "preview")
}
