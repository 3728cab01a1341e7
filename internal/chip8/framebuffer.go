package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Framebuffer is the monochrome 64x32 pixel grid, stored row-major.
type Framebuffer struct {
	pixels [DisplayWidth * DisplayHeight]bool
}

// Width returns the width of the framebuffer in pixels.
func (f *Framebuffer) Width() int {
	return DisplayWidth
}

// Height returns the height of the framebuffer in pixels.
func (f *Framebuffer) Height() int {
	return DisplayHeight
}

// Pixel returns whether the pixel at the given position is set.
// Coordinates wrap around on both axes.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f.pixels[index(x, y)]
}

// Rows returns a copy of the framebuffer as a slice of pixel rows.
func (f *Framebuffer) Rows() [][]bool {
	rows := make([][]bool, DisplayHeight)
	for y := range rows {
		row := make([]bool, DisplayWidth)
		copy(row, f.pixels[y*DisplayWidth:(y+1)*DisplayWidth])
		rows[y] = row
	}
	return rows
}

func (f *Framebuffer) clear() {
	clear(f.pixels[:])
}

// toggle flips the pixel at the given position and reports whether it was
// turned off by the flip.
func (f *Framebuffer) toggle(x, y int) bool {
	i := index(x, y)
	wasSet := f.pixels[i]
	f.pixels[i] = !wasSet
	return wasSet
}

// drawRow XORs the 8 pixels of a sprite row onto the framebuffer, most
// significant bit leftmost. It returns whether any set pixel got unset.
func (f *Framebuffer) drawRow(x, y int, row byte) bool {
	collision := false
	for col := range 8 {
		if row&(0x80>>col) == 0 {
			continue
		}
		if f.toggle(x+col, y) {
			collision = true
		}
	}
	return collision
}

func index(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return y*DisplayWidth + x
}
