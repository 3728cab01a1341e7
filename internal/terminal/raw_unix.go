//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// EnableRawMode switches the terminal of the file descriptor to unbuffered
// input without echo. Signal generating keys stay active. The returned
// function restores the previous terminal state.
func EnableRawMode(fd int) (func() error, error) {
	termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return nil, fmt.Errorf("getting terminal attributes: %w", err)
	}

	previous := *termios
	raw := *termios

	raw.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.INLCR | unix.ICRNL
	raw.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.IEXTEN
	raw.Cflag &^= unix.CSIZE | unix.PARENB
	raw.Cflag |= unix.CS8

	// block until at least one byte is available
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &raw); err != nil {
		return nil, fmt.Errorf("setting terminal attributes: %w", err)
	}

	restore := func() error {
		if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &previous); err != nil {
			return fmt.Errorf("restoring terminal attributes: %w", err)
		}
		return nil
	}
	return restore, nil
}
