package chip8

import (
	"fmt"
)

// Execute applies a decoded instruction to the machine. The program counter
// is expected to already point past the instruction.
func (m *Machine) Execute(ins Instruction) error {
	if err := checkRegisters(ins); err != nil {
		return err
	}

	x, y := ins.X, ins.Y

	switch ins.Op {
	case OpClear:
		m.display.clear()
		m.dirty = true

	case OpReturn:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]

	case OpJump:
		m.pc = ins.NNN

	case OpCall:
		if m.sp == StackDepth {
			return fmt.Errorf("%w: call depth limit of %d reached", ErrStackOverflow, StackDepth)
		}
		m.stack[m.sp] = m.pc
		m.sp++
		m.pc = ins.NNN

	case OpSkipEqualImm:
		m.skipIf(m.v[x] == ins.NN)

	case OpSkipNotEqualImm:
		m.skipIf(m.v[x] != ins.NN)

	case OpSkipEqualReg:
		m.skipIf(m.v[x] == m.v[y])

	case OpSkipNotEqualReg:
		m.skipIf(m.v[x] != m.v[y])

	case OpLoadImm:
		m.v[x] = ins.NN

	case OpAddImm:
		m.v[x] += ins.NN

	case OpMove, OpOr, OpAnd, OpXor, OpAdd, OpSub, OpShiftRight, OpReverseSub, OpShiftLeft:
		m.executeALU(ins.Op, x, y)

	case OpLoadIndex:
		m.i = ins.NNN

	case OpJumpAddV0:
		m.pc = ins.NNN + uint16(m.v[0])

	case OpRandom:
		m.v[x] = uint8(m.rand.UintN(256)) & ins.NN

	case OpDrawSprite:
		return m.drawSprite(x, y, ins.N)

	case OpSkipIfKeyDown, OpSkipIfKeyNotDown:
		key := m.v[x]
		if int(key) >= KeyCount {
			return fmt.Errorf("%w: key $%02X in V%X", ErrOutOfBounds, key, x)
		}
		m.skipIf(m.keys[key] == (ins.Op == OpSkipIfKeyDown))

	case OpLoadDelay:
		m.v[x] = m.delay

	case OpWaitKey:
		// stay on this instruction until SetKey reports a press
		m.pc -= InstructionSize
		m.awaitingKey = true
		m.awaitReg = x

	case OpSetDelay:
		m.delay = m.v[x]

	case OpSetSound:
		m.sound = m.v[x]

	case OpAddIndex:
		index := uint32(m.i) + uint32(m.v[x])
		if index > MaxAddress {
			return fmt.Errorf("%w: index $%04X past end of memory", ErrOutOfBounds, index)
		}
		m.i = uint16(index)

	case OpLoadGlyph:
		digit := m.v[x]
		if digit > 0xF {
			return fmt.Errorf("%w: no font glyph for $%02X in V%X", ErrOutOfBounds, digit, x)
		}
		m.i = GlyphAddress(digit)

	case OpStoreBCD:
		if err := m.checkWrite(m.i, 3); err != nil {
			return err
		}
		value := m.v[x]
		m.memory[m.i] = value / 100
		m.memory[m.i+1] = value / 10 % 10
		m.memory[m.i+2] = value % 10

	case OpCopyRegisters:
		count := int(x) + 1
		if err := m.checkWrite(m.i, count); err != nil {
			return err
		}
		copy(m.memory[m.i:], m.v[:count])
		m.i += uint16(count)

	case OpFillRegisters:
		count := int(x) + 1
		if err := m.checkRead(m.i, count); err != nil {
			return err
		}
		copy(m.v[:count], m.memory[m.i:])
		m.i += uint16(count)

	default:
		return fmt.Errorf("%w: %s", ErrDecodeFailure, ins.Op)
	}

	return nil
}

// executeALU handles the 8XY_ register arithmetic group. The flag register
// is written after the result so that it wins if x is VF.
func (m *Machine) executeALU(op Op, x, y uint8) {
	vx, vy := m.v[x], m.v[y]

	switch op {
	case OpMove:
		m.v[x] = vy

	case OpOr:
		m.v[x] = vx | vy

	case OpAnd:
		m.v[x] = vx & vy

	case OpXor:
		m.v[x] = vx ^ vy

	case OpAdd:
		sum := uint16(vx) + uint16(vy)
		m.v[x] = uint8(sum)
		m.v[FlagRegister] = boolToFlag(sum > 0xFF)

	case OpSub:
		m.v[x] = vx - vy
		m.v[FlagRegister] = boolToFlag(vx >= vy)

	case OpReverseSub:
		m.v[x] = vy - vx
		m.v[FlagRegister] = boolToFlag(vy >= vx)

	case OpShiftRight:
		m.v[x] = vy >> 1
		m.v[FlagRegister] = vy & 0x01

	case OpShiftLeft:
		m.v[x] = vy << 1
		m.v[FlagRegister] = (vy & 0x80) >> 7
	}
}

// drawSprite XORs an n byte sprite read from I onto the framebuffer at
// (Vx, Vy). VF is set to 1 if any set pixel got unset.
func (m *Machine) drawSprite(x, y, n uint8) error {
	if err := m.checkRead(m.i, int(n)); err != nil {
		return err
	}

	originX, originY := int(m.v[x]), int(m.v[y])
	collision := false
	for row := range int(n) {
		if m.display.drawRow(originX, originY+row, m.memory[int(m.i)+row]) {
			collision = true
		}
	}

	m.v[FlagRegister] = boolToFlag(collision)
	m.dirty = true
	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.pc += InstructionSize
	}
}

// checkRead verifies that count bytes starting at address are inside memory.
func (m *Machine) checkRead(address uint16, count int) error {
	if int(address)+count-1 > MaxAddress {
		return fmt.Errorf("%w: accessing %d bytes at $%04X", ErrOutOfBounds, count, address)
	}
	return nil
}

// checkWrite verifies that count bytes starting at address are inside the
// program area. The interpreter area holding the font is read only.
func (m *Machine) checkWrite(address uint16, count int) error {
	if address < ProgramStart {
		return fmt.Errorf("%w: writing to interpreter area at $%04X", ErrOutOfBounds, address)
	}
	return m.checkRead(address, count)
}

func checkRegisters(ins Instruction) error {
	if ins.X >= RegisterCount {
		return fmt.Errorf("%w: register V%d", ErrOutOfBounds, ins.X)
	}
	if ins.Y >= RegisterCount {
		return fmt.Errorf("%w: register V%d", ErrOutOfBounds, ins.Y)
	}
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
