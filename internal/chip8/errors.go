package chip8

import (
	"errors"
	"fmt"
)

// Errors that halt the interpreter.
var (
	ErrDecodeFailure   = errors.New("decode failure")
	ErrStackOverflow   = errors.New("stack overflow")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrOutOfBounds     = errors.New("out of bounds access")
	ErrProgramTooLarge = errors.New("program too large")
)

// DecodeError is returned by Decode for instruction words that do not map
// to a supported instruction.
type DecodeError struct {
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: unsupported instruction $%04X", ErrDecodeFailure, e.Word)
}

// Unwrap returns ErrDecodeFailure.
func (e *DecodeError) Unwrap() error {
	return ErrDecodeFailure
}

// HaltError describes a fatal error raised while stepping the machine.
// PC is the address the offending instruction was fetched from.
type HaltError struct {
	PC      uint16
	Word    uint16
	Fetched bool // Word is only valid if the fetch succeeded
	Err     error
}

func (e *HaltError) Error() string {
	if !e.Fetched {
		return fmt.Sprintf("halted at $%03X: %s", e.PC, e.Err)
	}
	return fmt.Sprintf("halted at $%03X executing $%04X: %s", e.PC, e.Word, e.Err)
}

func (e *HaltError) Unwrap() error {
	return e.Err
}
