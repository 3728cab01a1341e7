package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.Equal(t, uint16(ProgramStart), m.PC())
	assert.Equal(t, 0, m.CallDepth())
	assert.False(t, m.AwaitingKey())
	assert.False(t, m.SoundActive())

	for i, b := range font {
		got, err := m.ReadMemory(uint16(FontStart + i))
		assert.NoError(t, err)
		assert.Equal(t, b, got)
	}
}

func TestLoadProgram(t *testing.T) {
	t.Run("program is copied to program start", func(t *testing.T) {
		m := New()
		m.pc = 0x300

		err := m.LoadProgram([]byte{0x12, 0x34, 0x56})
		assert.NoError(t, err)
		assert.Equal(t, uint16(ProgramStart), m.PC())
		assert.Equal(t, byte(0x12), m.memory[ProgramStart])
		assert.Equal(t, byte(0x34), m.memory[ProgramStart+1])
		assert.Equal(t, byte(0x56), m.memory[ProgramStart+2])
		assert.Equal(t, font[0], m.memory[FontStart])
	})

	t.Run("program filling all memory", func(t *testing.T) {
		m := New()
		program := make([]byte, MaxProgramSize)
		program[len(program)-1] = 0xAB

		assert.NoError(t, m.LoadProgram(program))
		assert.Equal(t, byte(0xAB), m.memory[MaxAddress])
	})

	t.Run("program too large", func(t *testing.T) {
		m := New()
		err := m.LoadProgram(make([]byte, MaxProgramSize+1))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, ErrProgramTooLarge))
	})
}

func TestFetch(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadProgram([]byte{0xA2, 0xF0, 0x00, 0xE0}))

	word, err := m.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xA2F0), word)
	assert.Equal(t, uint16(ProgramStart+2), m.PC())

	word, err = m.Fetch()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0x00E0), word)

	m.pc = MemorySize - InstructionSize
	_, err = m.Fetch()
	assert.NoError(t, err)

	_, err = m.Fetch()
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, uint16(MemorySize), m.PC())
}

func TestStep(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadProgram([]byte{
		0x60, 0x2A, // ld V0, $2A
		0x12, 0x00, // jp $200
	}))

	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(0x2A), m.V(0))
	assert.Equal(t, uint16(0x202), m.PC())

	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x200), m.PC())
}

func TestStep_HaltError(t *testing.T) {
	t.Run("decode failure", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.LoadProgram([]byte{0x00, 0xE0, 0x01, 0x23}))
		assert.NoError(t, m.Step())

		err := m.Step()
		assert.True(t, errors.Is(err, ErrDecodeFailure))

		var haltErr *HaltError
		assert.True(t, errors.As(err, &haltErr))
		assert.Equal(t, uint16(0x202), haltErr.PC)
		assert.Equal(t, uint16(0x0123), haltErr.Word)
		assert.ErrorContains(t, err, "$0123")
		assert.ErrorContains(t, err, "$202")
	})

	t.Run("stack underflow", func(t *testing.T) {
		m := New()
		assert.NoError(t, m.LoadProgram([]byte{0x00, 0xEE}))

		err := m.Step()
		assert.True(t, errors.Is(err, ErrStackUnderflow))
	})

	t.Run("fetch past memory", func(t *testing.T) {
		m := New()
		m.pc = MaxAddress

		err := m.Step()
		assert.True(t, errors.Is(err, ErrOutOfBounds))

		var haltErr *HaltError
		assert.True(t, errors.As(err, &haltErr))
		assert.False(t, haltErr.Fetched)
		assert.Equal(t, uint16(MaxAddress), haltErr.PC)
	})
}

func TestTick(t *testing.T) {
	m := New()
	m.delay = 2
	m.sound = 1
	assert.True(t, m.SoundActive())

	m.Tick()
	assert.Equal(t, uint8(1), m.Delay())
	assert.Equal(t, uint8(0), m.Sound())
	assert.False(t, m.SoundActive())

	for range 300 {
		m.Tick()
	}
	assert.Equal(t, uint8(0), m.Delay())
	assert.Equal(t, uint8(0), m.Sound())
}

func TestSetKey(t *testing.T) {
	m := New()

	assert.NoError(t, m.SetKey(0xA, true))
	assert.True(t, m.KeyPressed(0xA))
	assert.NoError(t, m.SetKey(0xA, false))
	assert.False(t, m.KeyPressed(0xA))

	err := m.SetKey(16, true)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.False(t, m.KeyPressed(16))
}

func TestWaitKey(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadProgram([]byte{
		0xF3, 0x0A, // ld V3, K
		0x64, 0x01, // ld V4, $01
	}))

	assert.NoError(t, m.Step())
	assert.True(t, m.AwaitingKey())
	assert.Equal(t, uint16(0x200), m.PC())

	// no forward progress while waiting
	assert.NoError(t, m.Step())
	assert.Equal(t, uint16(0x200), m.PC())
	assert.Equal(t, uint8(0), m.V(4))

	// releasing a key is not a press
	assert.NoError(t, m.SetKey(0x7, false))
	assert.True(t, m.AwaitingKey())

	assert.NoError(t, m.SetKey(0x7, true))
	assert.False(t, m.AwaitingKey())
	assert.Equal(t, uint8(0x7), m.V(3))
	assert.Equal(t, uint16(0x202), m.PC())

	// a second press is not consumed by the completed wait
	assert.NoError(t, m.SetKey(0x9, true))
	assert.Equal(t, uint8(0x7), m.V(3))

	assert.NoError(t, m.Step())
	assert.Equal(t, uint8(1), m.V(4))
}

func TestWaitKey_HeldKeyNeedsNewPress(t *testing.T) {
	m := New()
	assert.NoError(t, m.SetKey(0x5, true))
	assert.NoError(t, m.LoadProgram([]byte{0xF0, 0x0A}))

	assert.NoError(t, m.Step())
	assert.NoError(t, m.SetKey(0x5, true))
	assert.True(t, m.AwaitingKey())

	assert.NoError(t, m.SetKey(0x5, false))
	assert.NoError(t, m.SetKey(0x5, true))
	assert.False(t, m.AwaitingKey())
	assert.Equal(t, uint8(0x5), m.V(0))
}

func TestWaitKey_TimersKeepRunning(t *testing.T) {
	m := New()
	assert.NoError(t, m.LoadProgram([]byte{0xF0, 0x0A}))
	m.delay = 3

	assert.NoError(t, m.Step())
	assert.True(t, m.AwaitingKey())

	m.Tick()
	m.Tick()
	assert.Equal(t, uint8(1), m.Delay())
}

func TestTakeDirty(t *testing.T) {
	m := New()
	assert.False(t, m.TakeDirty())

	assert.NoError(t, m.Execute(Instruction{Op: OpClear}))
	assert.True(t, m.TakeDirty())
	assert.False(t, m.TakeDirty())
}
