package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/runner"
)

// DefaultReleaseDelay is the time after which a key without repeated input
// is reported as released.
const DefaultReleaseDelay = 150 * time.Millisecond

// Input translates keyboard bytes into keypad events.
type Input struct {
	r            io.Reader
	keyMap       KeyMap
	releaseDelay time.Duration
}

// NewInput returns an input reading keyboard bytes from r.
func NewInput(r io.Reader, keyMap KeyMap, releaseDelay time.Duration) *Input {
	if releaseDelay <= 0 {
		releaseDelay = DefaultReleaseDelay
	}
	return &Input{
		r:            r,
		keyMap:       keyMap,
		releaseDelay: releaseDelay,
	}
}

// Run sends key events until the reader is exhausted or the context is
// cancelled. Keys still held at the end of the input are released and the
// events channel is closed on return.
func (in *Input) Run(ctx context.Context, events chan<- runner.KeyEvent) error {
	defer close(events)

	data := make(chan byte)
	readErr := make(chan error, 1)
	go in.read(ctx, data, readErr)

	ticker := time.NewTicker(max(in.releaseDelay/4, time.Millisecond))
	defer ticker.Stop()

	// release deadline per key, zero if the key is not held
	var held [chip8.KeyCount]time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-readErr:
			if releaseErr := in.release(ctx, events, &held, time.Time{}); releaseErr != nil {
				return releaseErr
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading keyboard input: %w", err)

		case b := <-data:
			key, ok := in.keyMap.Key(b)
			if !ok {
				continue
			}
			if held[key].IsZero() {
				if err := send(ctx, events, runner.KeyEvent{Key: key, Pressed: true}); err != nil {
					return err
				}
			}
			held[key] = time.Now().Add(in.releaseDelay)

		case now := <-ticker.C:
			if err := in.release(ctx, events, &held, now); err != nil {
				return err
			}
		}
	}
}

// release sends release events for all held keys with a deadline before
// now. A zero time releases all held keys.
func (in *Input) release(ctx context.Context, events chan<- runner.KeyEvent, held *[chip8.KeyCount]time.Time, now time.Time) error {
	for key, deadline := range held {
		if deadline.IsZero() || (!now.IsZero() && now.Before(deadline)) {
			continue
		}
		held[key] = time.Time{}
		if err := send(ctx, events, runner.KeyEvent{Key: uint8(key), Pressed: false}); err != nil {
			return err
		}
	}
	return nil
}

// read forwards bytes from the reader. A Read blocked on a terminal can not
// be interrupted, so after cancellation the goroutine only exits once the
// next byte arrives or the reader is closed.
func (in *Input) read(ctx context.Context, data chan<- byte, readErr chan<- error) {
	buf := make([]byte, 16)
	for {
		n, err := in.r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case data <- b:
			case <-ctx.Done():
				return
			}
		}
		if err != nil {
			readErr <- err
			return
		}
	}
}

func send(ctx context.Context, events chan<- runner.KeyEvent, event runner.KeyEvent) error {
	select {
	case events <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
