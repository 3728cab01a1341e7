package chip8

import (
	"fmt"

	chip8cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies the instruction variant of a decoded instruction word.
type Op uint8

// Supported instructions. The comment lists the encoding.
const (
	OpInvalid         Op = iota
	OpClear              // 00E0
	OpReturn             // 00EE
	OpJump               // 1NNN
	OpCall               // 2NNN
	OpSkipEqualImm       // 3XNN
	OpSkipNotEqualImm    // 4XNN
	OpSkipEqualReg       // 5XY0
	OpLoadImm            // 6XNN
	OpAddImm             // 7XNN
	OpMove               // 8XY0
	OpOr                 // 8XY1
	OpAnd                // 8XY2
	OpXor                // 8XY3
	OpAdd                // 8XY4
	OpSub                // 8XY5
	OpShiftRight         // 8XY6
	OpReverseSub         // 8XY7
	OpShiftLeft          // 8XYE
	OpSkipNotEqualReg    // 9XY0
	OpLoadIndex          // ANNN
	OpJumpAddV0          // BNNN
	OpRandom             // CXNN
	OpDrawSprite         // DXYN
	OpSkipIfKeyDown      // EX9E
	OpSkipIfKeyNotDown   // EXA1
	OpLoadDelay          // FX07
	OpWaitKey            // FX0A
	OpSetDelay           // FX15
	OpSetSound           // FX18
	OpAddIndex           // FX1E
	OpLoadGlyph          // FX29
	OpStoreBCD           // FX33
	OpCopyRegisters      // FX55
	OpFillRegisters      // FX65

	opCount
)

// operandForm describes which operand fields an instruction encodes.
type operandForm uint8

const (
	formNone operandForm = iota
	formAddress           // nnn
	formRegImm            // x, nn
	formRegReg            // x, y
	formDraw              // x, y, n
	formReg               // x
)

// mask returns the bits of an instruction word that are fixed by the form.
func (f operandForm) mask() uint16 {
	switch f {
	case formNone:
		return 0xFFFF
	case formRegReg:
		return 0xF00F
	case formReg:
		return 0xF0FF
	default:
		return 0xF000
	}
}

type opInfo struct {
	name     string
	value    uint16 // encoding with all operand bits cleared
	form     operandForm
	mnemonic *chip8cpu.Instruction
	syntax   string // operand syntax for String, %s is replaced by the operands
}

var opInfos = [opCount]opInfo{
	OpClear:            {"Clear", 0x00E0, formNone, chip8cpu.ClsInst, ""},
	OpReturn:           {"Return", 0x00EE, formNone, chip8cpu.RetInst, ""},
	OpJump:             {"Jump", 0x1000, formAddress, chip8cpu.JpInst, "%s"},
	OpCall:             {"Call", 0x2000, formAddress, chip8cpu.CallInst, "%s"},
	OpSkipEqualImm:     {"SkipEqualImm", 0x3000, formRegImm, chip8cpu.SeInst, "%s"},
	OpSkipNotEqualImm:  {"SkipNotEqualImm", 0x4000, formRegImm, chip8cpu.SneInst, "%s"},
	OpSkipEqualReg:     {"SkipEqualReg", 0x5000, formRegReg, chip8cpu.SeInst, "%s"},
	OpLoadImm:          {"LoadImm", 0x6000, formRegImm, chip8cpu.LdInst, "%s"},
	OpAddImm:           {"AddImm", 0x7000, formRegImm, chip8cpu.AddInst, "%s"},
	OpMove:             {"Move", 0x8000, formRegReg, chip8cpu.LdInst, "%s"},
	OpOr:               {"Or", 0x8001, formRegReg, chip8cpu.OrInst, "%s"},
	OpAnd:              {"And", 0x8002, formRegReg, chip8cpu.AndInst, "%s"},
	OpXor:              {"Xor", 0x8003, formRegReg, chip8cpu.XorInst, "%s"},
	OpAdd:              {"Add", 0x8004, formRegReg, chip8cpu.AddInst, "%s"},
	OpSub:              {"Sub", 0x8005, formRegReg, chip8cpu.SubInst, "%s"},
	OpShiftRight:       {"ShiftRight", 0x8006, formRegReg, chip8cpu.ShrInst, "%s"},
	OpReverseSub:       {"ReverseSub", 0x8007, formRegReg, chip8cpu.SubnInst, "%s"},
	OpShiftLeft:        {"ShiftLeft", 0x800E, formRegReg, chip8cpu.ShlInst, "%s"},
	OpSkipNotEqualReg:  {"SkipNotEqualReg", 0x9000, formRegReg, chip8cpu.SneInst, "%s"},
	OpLoadIndex:        {"LoadIndex", 0xA000, formAddress, chip8cpu.LdInst, "I, %s"},
	OpJumpAddV0:        {"JumpAddV0", 0xB000, formAddress, chip8cpu.JpInst, "V0, %s"},
	OpRandom:           {"Random", 0xC000, formRegImm, chip8cpu.RndInst, "%s"},
	OpDrawSprite:       {"DrawSprite", 0xD000, formDraw, chip8cpu.DrwInst, "%s"},
	OpSkipIfKeyDown:    {"SkipIfKeyDown", 0xE09E, formReg, chip8cpu.SkpInst, "%s"},
	OpSkipIfKeyNotDown: {"SkipIfKeyNotDown", 0xE0A1, formReg, chip8cpu.SknpInst, "%s"},
	OpLoadDelay:        {"LoadDelay", 0xF007, formReg, chip8cpu.LdInst, "%s, DT"},
	OpWaitKey:          {"WaitKey", 0xF00A, formReg, chip8cpu.LdInst, "%s, K"},
	OpSetDelay:         {"SetDelay", 0xF015, formReg, chip8cpu.LdInst, "DT, %s"},
	OpSetSound:         {"SetSound", 0xF018, formReg, chip8cpu.LdInst, "ST, %s"},
	OpAddIndex:         {"AddIndex", 0xF01E, formReg, chip8cpu.AddInst, "I, %s"},
	OpLoadGlyph:        {"LoadGlyph", 0xF029, formReg, chip8cpu.LdInst, "F, %s"},
	OpStoreBCD:         {"StoreBCD", 0xF033, formReg, chip8cpu.LdInst, "B, %s"},
	OpCopyRegisters:    {"CopyRegisters", 0xF055, formReg, chip8cpu.LdInst, "[I], %s"},
	OpFillRegisters:    {"FillRegisters", 0xF065, formReg, chip8cpu.LdInst, "%s, [I]"},
}

// decodeTable groups the supported ops by the top nibble of their encoding.
var decodeTable = buildDecodeTable()

func buildDecodeTable() [16][]Op {
	var table [16][]Op
	for op := OpClear; op < opCount; op++ {
		nibble := opInfos[op].value >> 12
		table[nibble] = append(table[nibble], op)
	}
	return table
}

// String returns the name of the op.
func (o Op) String() string {
	if o == OpInvalid || o >= opCount {
		return fmt.Sprintf("Op(%d)", uint8(o))
	}
	return opInfos[o].name
}

// Instruction is a decoded instruction word. Only the operand fields used
// by the op are meaningful.
type Instruction struct {
	Op  Op
	X   uint8  // register index, bits 8-11
	Y   uint8  // register index, bits 4-7
	N   uint8  // sprite height, bits 0-3
	NN  uint8  // immediate byte, bits 0-7
	NNN uint16 // address, bits 0-11
}

// Decode maps an instruction word to an instruction. Words that do not
// match a supported instruction, including 0NNN, return a *DecodeError.
func Decode(word uint16) (Instruction, error) {
	for _, op := range decodeTable[word>>12] {
		info := opInfos[op]
		if word&info.form.mask() != info.value {
			continue
		}

		ins := Instruction{Op: op}
		switch info.form {
		case formAddress:
			ins.NNN = word & 0x0FFF
		case formRegImm:
			ins.X = uint8(word>>8) & 0xF
			ins.NN = uint8(word)
		case formRegReg:
			ins.X = uint8(word>>8) & 0xF
			ins.Y = uint8(word>>4) & 0xF
		case formDraw:
			ins.X = uint8(word>>8) & 0xF
			ins.Y = uint8(word>>4) & 0xF
			ins.N = uint8(word) & 0xF
		case formReg:
			ins.X = uint8(word>>8) & 0xF
		}
		return ins, nil
	}
	return Instruction{}, &DecodeError{Word: word}
}

// Encode returns the instruction word for the instruction. Operand fields
// not used by the op are ignored.
func (i Instruction) Encode() uint16 {
	if i.Op == OpInvalid || i.Op >= opCount {
		return 0
	}

	info := opInfos[i.Op]
	x := uint16(i.X&0xF) << 8
	y := uint16(i.Y&0xF) << 4

	switch info.form {
	case formAddress:
		return info.value | i.NNN&0x0FFF
	case formRegImm:
		return info.value | x | uint16(i.NN)
	case formRegReg:
		return info.value | x | y
	case formDraw:
		return info.value | x | y | uint16(i.N&0xF)
	case formReg:
		return info.value | x
	default:
		return info.value
	}
}

// IsSkip returns true if the instruction conditionally skips the next one.
func (i Instruction) IsSkip() bool {
	if i.Op == OpInvalid || i.Op >= opCount {
		return false
	}
	return chip8cpu.SkipInstructions.Contains(opInfos[i.Op].mnemonic.Name)
}

// String returns the instruction in assembly syntax, for example
// "drw V1, V2, $5".
func (i Instruction) String() string {
	if i.Op == OpInvalid || i.Op >= opCount {
		return i.Op.String()
	}

	info := opInfos[i.Op]
	name := info.mnemonic.Name
	if info.syntax == "" {
		return name
	}

	var operands string
	switch info.form {
	case formAddress:
		operands = fmt.Sprintf("$%03X", i.NNN)
	case formRegImm:
		operands = fmt.Sprintf("V%X, $%02X", i.X, i.NN)
	case formRegReg:
		operands = fmt.Sprintf("V%X, V%X", i.X, i.Y)
	case formDraw:
		operands = fmt.Sprintf("V%X, V%X, $%X", i.X, i.Y, i.N)
	case formReg:
		operands = fmt.Sprintf("V%X", i.X)
	}
	return name + " " + fmt.Sprintf(info.syntax, operands)
}
