// Package color defines an 8-bit-per-channel RGB color and its CSS rendering.
package color

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// A Color is a 8-bit-per-channel RGB color.
// The zero Color is black.
type Color struct {
	R, G, B uint8
}

// RGB returns the color with the given channel values.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b} }

// CSS returns c in CSS functional notation, e.g. "rgb(250, 128, 114)".
func (c Color) CSS() string { return string(c.AppendCSS(make([]byte, 0, len("rgb(255, 255, 255)")))) }

// AppendCSS appends the CSS notation for c to b and returns the extended buffer.
func (c Color) AppendCSS(b []byte) []byte {
	b = append(b, "rgb("...)
	b = strconv.AppendUint(b, uint64(c.R), 10)
	b = append(b, ", "...)
	b = strconv.AppendUint(b, uint64(c.G), 10)
	b = append(b, ", "...)
	b = strconv.AppendUint(b, uint64(c.B), 10)
	return append(b, ')')
}

// String returns the same text as CSS.
func (c Color) String() string { return c.CSS() }

// GoString implements fmt.GoStringer, so that %#v prints decimal channels.
func (c Color) GoString() string {
	return fmt.Sprintf("color.Color{R: %d, G: %d, B: %d}", c.R, c.G, c.B)
}

// Parse returns the color described by s, which must be in the form produced by CSS.
// Spaces around the channel values and leading zeros in them are ignored.
func Parse(s string) (Color, error) {
	body := strings.TrimSpace(s)
	if !(strings.HasPrefix(body, "rgb(") && strings.HasSuffix(body, ")")) {
		return Color{}, fmt.Errorf("color: parse %q: not in rgb(R, G, B) form", s)
	}
	fields := strings.Split(body[len("rgb("):len(body)-1], ",")
	if len(fields) != 3 {
		return Color{}, fmt.Errorf("color: parse %q: want 3 channels, got %d", s, len(fields))
	}
	var ch [3]uint8
	for i, f := range fields {
		n, err := strconv.ParseUint(strings.TrimSpace(f), 10, 8)
		if err != nil {
			return Color{}, errors.WithMessage(err, fmt.Sprintf("color: parse %q", s))
		}
		ch[i] = uint8(n)
	}
	return Color{ch[0], ch[1], ch[2]}, nil
}

func (c Color) MarshalText() ([]byte, error) { return c.AppendCSS(nil), nil }

func (c *Color) UnmarshalText(b []byte) (err error) {
	in, err := Parse(string(b))
	if err == nil {
		*c = in
	}
	return
}
