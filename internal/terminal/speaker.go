package terminal

import "io"

// Bell is a speaker that rings the terminal bell when a tone starts.
type Bell struct {
	w io.Writer
}

// NewBell returns a bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

// SetTone rings the bell when the tone is turned on. A terminal bell can
// not be held, turning the tone off has no effect.
func (b *Bell) SetTone(on bool) {
	if on {
		_, _ = io.WriteString(b.w, bell)
	}
}
