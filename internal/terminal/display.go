package terminal

import (
	"bytes"
	"fmt"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const (
	pixelOn  = "█"
	pixelOff = " "
)

// Display renders the framebuffer as text to a writer.
type Display struct {
	w     io.Writer
	scale int
	buf   bytes.Buffer

	started bool
}

// NewDisplay returns a display writing to w. Every pixel is drawn
// scale columns wide.
func NewDisplay(w io.Writer, scale int) *Display {
	return &Display{
		w:     w,
		scale: max(scale, 1),
	}
}

// Render draws the full framebuffer, the first call clears the screen.
func (d *Display) Render(fb *chip8.Framebuffer) error {
	d.buf.Reset()
	if !d.started {
		d.buf.WriteString(clearScreen + hideCursor)
		d.started = true
	}
	d.buf.WriteString(cursorHome)

	for y := range fb.Height() {
		for x := range fb.Width() {
			cell := pixelOff
			if fb.Pixel(x, y) {
				cell = pixelOn
			}
			for range d.scale {
				d.buf.WriteString(cell)
			}
		}
		d.buf.WriteString("\r\n")
	}

	if _, err := d.w.Write(d.buf.Bytes()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// Close restores the cursor if anything was drawn.
func (d *Display) Close() error {
	if !d.started {
		return nil
	}
	if _, err := io.WriteString(d.w, showCursor); err != nil {
		return fmt.Errorf("restoring cursor: %w", err)
	}
	return nil
}
