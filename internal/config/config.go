// Package config handles application configuration and setup
package config

import (
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// NewRunnerConfig returns the run loop settings for the given options.
func NewRunnerConfig(opts options.Program) runner.Config {
	return runner.Config{
		InstructionFrequency: opts.Frequency,
	}
}

// MachineOptions returns the machine options for the given program options.
// A zero seed selects a random one.
func MachineOptions(opts options.Program) []chip8.Option {
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	return []chip8.Option{chip8.WithSeed(seed)}
}

// KeyReleaseDelay returns the time after which a pressed key is reported
// as released.
func KeyReleaseDelay(opts options.Program) time.Duration {
	return time.Duration(opts.ReleaseMs) * time.Millisecond
}
