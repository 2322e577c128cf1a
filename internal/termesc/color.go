package termesc

import (
	"strconv"

	"github.com/dpinela/rgbcss/internal/color"
)

type GraphicFlag int

// StyleBold is the only non-color graphic attribute rgbcss uses.
const StyleBold GraphicFlag = 1

// Constants for the 3-bit ANSI color palette.
const (
	ColorBlack GraphicFlag = 30 + iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
)

func (c GraphicFlag) forEachSGRCode(f func(int)) { f(int(c)) }

// A TrueColor sets the foreground or background to a 24-bit color.
type TrueColor struct {
	Color      color.Color
	Background bool
}

// Foreground returns an attribute that sets the text color to c.
func Foreground(c color.Color) TrueColor { return TrueColor{Color: c} }

// Background returns an attribute that sets the background color to c.
func Background(c color.Color) TrueColor { return TrueColor{Color: c, Background: true} }

func (tc TrueColor) forEachSGRCode(f func(int)) {
	if tc.Background {
		f(48)
	} else {
		f(38)
	}
	f(2)
	f(int(tc.Color.R))
	f(int(tc.Color.G))
	f(int(tc.Color.B))
}

type GraphicAttribute interface {
	forEachSGRCode(func(int))
}

func SetGraphicAttributes(attrs ...GraphicAttribute) string {
	b := make([]byte, len(csi), 64)
	copy(b, csi)
	for _, attr := range attrs {
		attr.forEachSGRCode(func(x int) {
			if len(b) > len(csi) {
				b = append(b, ';')
			}
			b = strconv.AppendInt(b, int64(x), 10)
		})
	}
	return string(append(b, 'm'))
}
