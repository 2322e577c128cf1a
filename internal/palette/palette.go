// Package palette implements named sets of colors and their rendering as CSS custom properties.
package palette

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/dpinela/rgbcss/internal/color"
)

// An Entry is a single named color.
type Entry struct {
	Name  string
	Color color.Color
}

// A Palette is an ordered set of named colors.
// The zero Palette is empty and ready to use.
type Palette struct {
	entries []Entry
	index   map[string]int
}

// Set assigns c to the given name. If the name is already present, its color is replaced
// without changing its position; otherwise it is added at the end.
// Names are compared after NFC normalization.
func (p *Palette) Set(name string, c color.Color) error {
	name = norm.NFC.String(name)
	if err := checkName(name); err != nil {
		return err
	}
	if i, ok := p.index[name]; ok {
		p.entries[i].Color = c
		return nil
	}
	if p.index == nil {
		p.index = make(map[string]int)
	}
	p.index[name] = len(p.entries)
	p.entries = append(p.entries, Entry{Name: name, Color: c})
	return nil
}

// Get returns the color with the given name, if there is one.
func (p *Palette) Get(name string) (color.Color, bool) {
	i, ok := p.index[norm.NFC.String(name)]
	if !ok {
		return color.Color{}, false
	}
	return p.entries[i].Color, true
}

// Len returns the number of colors in p.
func (p *Palette) Len() int { return len(p.entries) }

// Entries returns the colors in p in order. The caller must not modify the result.
func (p *Palette) Entries() []Entry { return p.entries }

// Names returns the names of the colors in p in order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.entries))
	for i, e := range p.entries {
		names[i] = e.Name
	}
	return names
}

// Name characters allowed in a CSS custom property without escaping.
func checkName(name string) error {
	if name == "" {
		return errors.New("palette: empty color name")
	}
	for _, r := range name {
		if !(r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return fmt.Errorf("palette: invalid color name %q: character %q not allowed", name, r)
		}
	}
	return nil
}

// WriteCSS writes p to w as a rule with the given selector, declaring one custom property
// per color, named --<prefix><name>. A non-empty prefix must satisfy the same rules as color names.
func (p *Palette) WriteCSS(w io.Writer, selector, prefix string) error {
	if prefix != "" {
		if err := checkName(prefix); err != nil {
			return errors.WithMessage(err, "palette: invalid prefix")
		}
	}
	bw := bufio.NewWriter(w)
	bw.WriteString(selector)
	bw.WriteString(" {\n")
	var buf []byte
	for _, e := range p.entries {
		buf = append(buf[:0], "  --"...)
		buf = append(buf, prefix...)
		buf = append(buf, e.Name...)
		buf = append(buf, ": "...)
		buf = e.Color.AppendCSS(buf)
		buf = append(buf, ";\n"...)
		bw.Write(buf)
	}
	bw.WriteString("}\n")
	return errors.Wrap(bw.Flush(), "palette: write CSS")
}
