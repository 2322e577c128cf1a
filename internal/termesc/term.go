// Package termesc abstracts terminal ANSI escape codes.
package termesc

const csi = "\x1B["

const (
	ClearLine       = csi + "2K" // Clears the line the cursor is on
	ResetAttributes = csi + "m"  // Restores the default colors and style
)
