// Package runner drives a CHIP-8 machine in real time.
package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/log"
)

// TimerFrequency is the rate in Hz at which the delay and sound timers
// are decremented.
const TimerFrequency = 60

// DefaultInstructionFrequency is the default number of instructions
// executed per second.
const DefaultInstructionFrequency = 700

// Display renders the framebuffer of the machine.
type Display interface {
	Render(fb *chip8.Framebuffer) error
}

// Speaker produces a tone while the sound timer is active.
type Speaker interface {
	SetTone(on bool)
}

// KeyEvent reports a keypad key being pressed or released.
type KeyEvent struct {
	Key     uint8
	Pressed bool
}

// Config contains the run loop settings.
type Config struct {
	InstructionFrequency int // instructions per second
}

// Runner owns a machine and interleaves instruction execution, timer ticks
// and keypad events on a single goroutine.
type Runner struct {
	logger  *log.Logger
	machine *chip8.Machine
	display Display
	speaker Speaker
	config  Config

	toneOn bool
}

// New creates a new runner for the given machine. The speaker is optional.
func New(logger *log.Logger, machine *chip8.Machine, display Display, speaker Speaker, config Config) *Runner {
	if config.InstructionFrequency <= 0 {
		config.InstructionFrequency = DefaultInstructionFrequency
	}
	return &Runner{
		logger:  logger,
		machine: machine,
		display: display,
		speaker: speaker,
		config:  config,
	}
}

// Run executes the loaded program until the context is cancelled or the
// machine halts with a fatal error. Key events are applied to the machine
// in the order they are received; a closed channel stops key processing.
func (r *Runner) Run(ctx context.Context, keys <-chan KeyEvent) error {
	cpuTicker := time.NewTicker(time.Second / time.Duration(r.config.InstructionFrequency))
	defer cpuTicker.Stop()
	timerTicker := time.NewTicker(time.Second / TimerFrequency)
	defer timerTicker.Stop()
	defer r.setTone(false)

	r.logger.Debug("Starting emulation",
		log.Int("instruction_frequency", r.config.InstructionFrequency),
		log.Hex("pc", r.machine.PC()))

	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("Emulation stopped",
				log.Hex("pc", r.machine.PC()),
				log.Err(ctx.Err()))
			return fmt.Errorf("running program: %w", ctx.Err())

		case event, ok := <-keys:
			if !ok {
				keys = nil
				continue
			}
			if err := r.machine.SetKey(event.Key, event.Pressed); err != nil {
				return fmt.Errorf("applying key event: %w", err)
			}

		case <-cpuTicker.C:
			if err := r.step(); err != nil {
				return err
			}

		case <-timerTicker.C:
			r.machine.Tick()
			r.setTone(r.machine.SoundActive())
		}
	}
}

// step executes a single instruction and redraws the display if the
// framebuffer changed.
func (r *Runner) step() error {
	if r.machine.AwaitingKey() {
		return nil
	}

	if err := r.machine.Step(); err != nil {
		r.logHalt(err)
		return err
	}

	// timer writes take effect before the next timer tick
	r.setTone(r.machine.SoundActive())

	if !r.machine.TakeDirty() {
		return nil
	}
	if err := r.display.Render(r.machine.Framebuffer()); err != nil {
		return fmt.Errorf("rendering framebuffer: %w", err)
	}
	return nil
}

func (r *Runner) setTone(on bool) {
	if r.speaker == nil || on == r.toneOn {
		return
	}
	r.toneOn = on
	r.speaker.SetTone(on)
}

func (r *Runner) logHalt(err error) {
	var haltErr *chip8.HaltError
	switch {
	case !errors.As(err, &haltErr):
		r.logger.Error("Emulation halted", log.Err(err))

	case !haltErr.Fetched:
		r.logger.Error("Emulation halted",
			log.Hex("pc", haltErr.PC),
			log.Err(haltErr.Err))

	default:
		r.logger.Error("Emulation halted",
			log.Hex("pc", haltErr.PC),
			log.Hex("opcode", haltErr.Word),
			log.Err(haltErr.Err))
	}
}
