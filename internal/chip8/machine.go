package chip8

import (
	"fmt"
	"math/rand/v2"
)

// CHIP-8 memory layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// FontStart is the address of the first built-in font glyph.
	FontStart = 0x000

	// ProgramStart is the memory address programs are loaded to and where
	// execution begins.
	ProgramStart = 0x200

	// MaxAddress is the highest valid address in CHIP-8 memory space.
	MaxAddress = MemorySize - 1

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart
)

// Machine sizes.
const (
	RegisterCount = 16
	StackDepth    = 16
	KeyCount      = 16

	// InstructionSize is the size of an instruction word in bytes.
	InstructionSize = 2
)

// FlagRegister is the index of VF.
const FlagRegister = 0xF

// Machine holds the complete interpreter state.
type Machine struct {
	memory [MemorySize]byte
	v      [RegisterCount]uint8
	i      uint16
	pc     uint16

	stack [StackDepth]uint16
	sp    int // number of used stack entries

	delay uint8
	sound uint8

	display Framebuffer
	dirty   bool // framebuffer changed since the last TakeDirty

	keys [KeyCount]bool

	awaitingKey bool
	awaitReg    uint8

	rand *rand.Rand
}

// Option configures a Machine.
type Option func(*Machine)

// WithRand sets the random source used by the random number instruction.
func WithRand(r *rand.Rand) Option {
	return func(m *Machine) {
		m.rand = r
	}
}

// WithSeed seeds the random source used by the random number instruction.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// New returns a new machine with the font loaded and the program counter
// set to ProgramStart.
func New(opts ...Option) *Machine {
	m := &Machine{
		pc: ProgramStart,
	}
	copy(m.memory[FontStart:], font[:])
	for _, opt := range opts {
		opt(m)
	}
	if m.rand == nil {
		m.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// LoadProgram copies the program into memory at ProgramStart and resets the
// program counter.
func (m *Machine) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes exceed the %d bytes available", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	clear(m.memory[ProgramStart:])
	copy(m.memory[ProgramStart:], program)
	m.pc = ProgramStart
	return nil
}

// Fetch returns the instruction word at the program counter and advances
// the program counter by 2.
func (m *Machine) Fetch() (uint16, error) {
	if int(m.pc) > MemorySize-InstructionSize {
		return 0, fmt.Errorf("%w: fetching instruction at $%04X", ErrOutOfBounds, m.pc)
	}
	word := uint16(m.memory[m.pc])<<8 | uint16(m.memory[m.pc+1])
	m.pc += InstructionSize
	return word, nil
}

// Step fetches, decodes and executes a single instruction. It is a no-op
// while the machine is waiting for a key press.
func (m *Machine) Step() error {
	if m.awaitingKey {
		return nil
	}

	pc := m.pc
	word, err := m.Fetch()
	if err != nil {
		return &HaltError{PC: pc, Err: err}
	}

	ins, err := Decode(word)
	if err != nil {
		return &HaltError{PC: pc, Word: word, Fetched: true, Err: err}
	}

	if err := m.Execute(ins); err != nil {
		return &HaltError{PC: pc, Word: word, Fetched: true, Err: err}
	}
	return nil
}

// Tick decrements both timers by one unless they already reached zero.
// It is meant to be called at 60 Hz.
func (m *Machine) Tick() {
	if m.delay > 0 {
		m.delay--
	}
	if m.sound > 0 {
		m.sound--
	}
}

// SetKey sets the pressed state of a keypad key. A key transitioning to
// pressed completes a pending key wait.
func (m *Machine) SetKey(key uint8, pressed bool) error {
	if int(key) >= KeyCount {
		return fmt.Errorf("%w: key $%X", ErrOutOfBounds, key)
	}

	wasPressed := m.keys[key]
	m.keys[key] = pressed

	if m.awaitingKey && pressed && !wasPressed {
		m.v[m.awaitReg] = key
		m.awaitingKey = false
		m.pc += InstructionSize
	}
	return nil
}

// KeyPressed returns whether the given key is currently pressed.
func (m *Machine) KeyPressed(key uint8) bool {
	if int(key) >= KeyCount {
		return false
	}
	return m.keys[key]
}

// AwaitingKey returns whether execution is suspended until a key is pressed.
func (m *Machine) AwaitingKey() bool {
	return m.awaitingKey
}

// SoundActive returns whether the sound timer is running.
func (m *Machine) SoundActive() bool {
	return m.sound > 0
}

// Framebuffer returns the display framebuffer. It must only be read.
func (m *Machine) Framebuffer() *Framebuffer {
	return &m.display
}

// TakeDirty returns whether the framebuffer changed since the last call.
func (m *Machine) TakeDirty() bool {
	dirty := m.dirty
	m.dirty = false
	return dirty
}

// PC returns the program counter.
func (m *Machine) PC() uint16 {
	return m.pc
}

// I returns the index register.
func (m *Machine) I() uint16 {
	return m.i
}

// V returns the value of register Vx.
func (m *Machine) V(x uint8) uint8 {
	return m.v[x&0xF]
}

// Delay returns the delay timer.
func (m *Machine) Delay() uint8 {
	return m.delay
}

// Sound returns the sound timer.
func (m *Machine) Sound() uint8 {
	return m.sound
}

// CallDepth returns the number of return addresses on the call stack.
func (m *Machine) CallDepth() int {
	return m.sp
}

// ReadMemory returns the byte at the given address.
func (m *Machine) ReadMemory(address uint16) (byte, error) {
	if address > MaxAddress {
		return 0, fmt.Errorf("%w: reading $%04X", ErrOutOfBounds, address)
	}
	return m.memory[address], nil
}
