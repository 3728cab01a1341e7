// Package loader handles program file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// ErrEmptyProgram is returned for a program file without any content.
var ErrEmptyProgram = errors.New("program is empty")

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load reads the program file at the given path. The file must not be
// larger than the program area of the machine memory.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte more than allowed to detect oversized files
	data, err := io.ReadAll(io.LimitReader(file, chip8.MaxProgramSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	return l.LoadFromBytes(data)
}

// LoadFromBytes validates the given program data.
func (l *Loader) LoadFromBytes(data []byte) ([]byte, error) {
	switch {
	case len(data) == 0:
		return nil, ErrEmptyProgram
	case len(data) > chip8.MaxProgramSize:
		return nil, fmt.Errorf("%w: more than %d bytes", chip8.ErrProgramTooLarge, chip8.MaxProgramSize)
	}
	return data, nil
}
