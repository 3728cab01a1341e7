// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
)

const (
	defaultScale     = 2
	defaultReleaseMs = 150
	maxScale         = 8
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	if err := validateOptions(opts); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	if e.msg == "" {
		return "invalid usage"
	}
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	if len(args) > 1 {
		return &UsageError{
			msg: fmt.Sprintf("only one program file can be run, got %d", len(args)),
		}
	}
	return nil
}

// validateOptions checks that option values are in range
func validateOptions(opts options.Program) error {
	if opts.Frequency <= 0 {
		return fmt.Errorf("invalid instruction frequency %d, must be positive", opts.Frequency)
	}
	if opts.Scale < 1 || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale %d, must be between 1 and %d", opts.Scale, maxScale)
	}
	if opts.ReleaseMs <= 0 {
		return fmt.Errorf("invalid key release time %d, must be positive", opts.ReleaseMs)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.IntVar(&opts.Frequency, "hz", runner.DefaultInstructionFrequency, "number of instructions executed per second")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed for the random number generator, a random seed is used if 0")
	flags.IntVar(&opts.Scale, "scale", defaultScale, "number of terminal columns used per display pixel")
	flags.IntVar(&opts.ReleaseMs, "release-ms", defaultReleaseMs, "milliseconds after which a pressed key is reported as released")
}
