//go:build !linux && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd

package terminal

// EnableRawMode is not available on this platform.
func EnableRawMode(int) (func() error, error) {
	return nil, ErrRawModeUnsupported
}
