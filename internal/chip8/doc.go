// Package chip8 implements the CHIP-8 interpreter core.
//
// # Machine Overview
//
// CHIP-8 is an interpreted virtual machine from the 1970s designed for simple
// games on early microcomputers. The machine consists of:
//   - 4KB of memory (0x000-MaxAddress)
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - a 16-bit index register I and a program counter
//   - a call stack of StackDepth return addresses
//   - delay and sound timers decremented at 60 Hz
//   - a 64x32 monochrome framebuffer and a 16 key hexadecimal keypad
//
// # Memory Layout
//
//   - 0x000-0x1FF: Interpreter area, holds the built-in hex font
//   - ProgramStart-MaxAddress: Program and working data
//
// # Execution
//
// Decode turns a 16-bit instruction word into an Instruction value, Execute
// applies it to the Machine. Step combines fetch, decode and execute for a
// single instruction and reports fatal conditions as a *HaltError.
//
// The 60 Hz timer cadence is driven by the caller through Tick. A Machine is
// not safe for concurrent use: the owner must serialize Step, Tick and
// SetKey calls.
//
// # Usage Example
//
//	m := chip8.New()
//	if err := m.LoadProgram(rom); err != nil {
//		return fmt.Errorf("loading program: %w", err)
//	}
//	for !m.AwaitingKey() {
//		if err := m.Step(); err != nil {
//			return err
//		}
//	}
package chip8
