// Package detector handles system detection of program files.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector guesses the target system of a program file from its name.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect returns the system a program file was most likely built for.
// Raw binaries without a known extension are assumed to be CHIP-8 programs.
func (d *Detector) Detect(filename string) arch.System {
	system := detectFromFile(filename)
	d.logger.Debug("Detected system",
		log.Stringer("system", system),
		log.String("file", filename))
	return system
}

// IsSupported reports whether the file looks like a CHIP-8 program and logs
// a warning otherwise.
func (d *Detector) IsSupported(filename string) bool {
	system := d.Detect(filename)
	if system == arch.CHIP8System {
		return true
	}
	d.logger.Warn("Program file does not look like a CHIP-8 program",
		log.Stringer("system", system),
		log.String("file", filepath.Base(filename)))
	return false
}

func detectFromFile(filename string) arch.System {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".nes":
		return arch.NES
	default:
		return arch.CHIP8System
	}
}
