// Package main implements the main entry point for a terminal CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/terminal"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err != nil {
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	// other systems are run anyway, raw binaries carry no header to verify
	detector.New(logger).IsSupported(opts.Input)

	program, err := loader.New().Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	logger.Info("Loaded program",
		log.Stringer("system", arch.CHIP8System),
		log.String("file", filepath.Base(opts.Input)),
		log.Int("size", len(program)))

	machine := chip8.New(config.MachineOptions(opts)...)
	if err := machine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	keys := make(chan runner.KeyEvent, chip8.KeyCount)
	restore, err := terminal.EnableRawMode(int(os.Stdin.Fd()))
	if err != nil {
		logger.Warn("Keyboard input disabled", log.Err(err))
		close(keys)
	} else {
		defer func() {
			if err := restore(); err != nil {
				logger.Error("Restoring terminal failed", log.Err(err))
			}
		}()
		go readKeys(ctx, logger, opts, keys)
	}

	display := terminal.NewDisplay(os.Stdout, opts.Scale)
	defer func() { _ = display.Close() }()

	r := runner.New(logger, machine, display, terminal.NewBell(os.Stdout), config.NewRunnerConfig(opts))
	return r.Run(ctx, keys)
}

func readKeys(ctx context.Context, logger *log.Logger, opts options.Program, keys chan<- runner.KeyEvent) {
	input := terminal.NewInput(os.Stdin, terminal.DefaultKeyMap, config.KeyReleaseDelay(opts))
	if err := input.Run(ctx, keys); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Keyboard input stopped", log.Err(err))
	}
}

// printBanner prints application version information
func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
