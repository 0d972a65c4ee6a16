package cpu

import (
	"fmt"
	"regexp"
	"strings"
)

// Instruction is an encoded instruction, possibly waiting on a label.
type Instruction struct {
	Mnemonic  string    // Lower case mnemonic.
	Operands  []Operand // Classified operands.
	Canonical string    // Instruction table lookup key.
	Opcode    Opcode    // Resolved table entry.
	Constants []byte    // Constant bytes following the opcode, little endian.
	Label     string    // Pending label reference, cleared by Resolve.
	Width     Width     // Width of the pending label's constant.
}

// NewInstruction canonicalizes a mnemonic and its operand tokens against
// the instruction table.
func NewInstruction(mnemonic string, args ...string) (inst *Instruction, err error) {
	mnemonic = strings.ToLower(mnemonic)
	fam, ok := mnemonicMap[mnemonic]
	if !ok {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	want := fam.Operands()
	if want < 0 {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}
	if len(args) != want {
		err = ErrOperandCount{Mnemonic: mnemonic, Want: want, Got: len(args)}
		return
	}

	ops := make([]Operand, len(args))
	for n, arg := range args {
		ops[n], err = Classify(arg)
		if err != nil {
			return
		}
	}

	switch fam {
	case FAMILY_ONE, FAMILY_TWO:
		// Arithmetic forms name registers only; a constant in them simply
		// fails the table lookup below.
		for n := range ops {
			if ops[n].Width != WIDTH_NONE {
				ops[n] = Operand{Text: ops[n].Text, Canonical: ops[n].Text, Mode: ops[n].Mode}
			}
		}
	case FAMILY_JUMP:
		if ops[0].Width == WIDTH_WIDE {
			ops[0].narrow(WIDTH_WORD)
		}
	case FAMILY_MOVE:
		dst, src := &ops[0], &ops[1]
		if dst.Width == WIDTH_WIDE {
			dst.narrow(WIDTH_WORD)
		}
		if src.Width == WIDTH_WIDE {
			if src.Mode == MODE_IMMEDIATE && IsByteRegister(dst.Canonical) {
				if src.Value > 0xff {
					err = ErrByteRange(src.Value)
					return
				}
				src.narrow(WIDTH_BYTE)
			} else {
				src.narrow(WIDTH_WORD)
			}
		}
	case FAMILY_PORT:
		for n := range ops {
			if ops[n].Width == WIDTH_WIDE {
				if ops[n].Value > 0xff {
					err = ErrByteRange(ops[n].Value)
					return
				}
				ops[n].narrow(WIDTH_BYTE)
			}
		}
	}

	inst = &Instruction{
		Mnemonic: mnemonic,
		Operands: ops,
	}

	forms := make([]string, len(ops))
	for n, op := range ops {
		forms[n] = op.Canonical
		switch {
		case op.Width == WIDTH_NONE:
		case len(op.Label) != 0:
			inst.Label = op.Label
			inst.Width = op.Width
		default:
			inst.Constants = append(inst.Constants, split(op.Value, op.Width)...)
		}
	}

	inst.Canonical = mnemonic
	if len(forms) > 0 {
		inst.Canonical += " " + strings.Join(forms, ",")
	}

	inst.Opcode, ok = LookupOpcode(inst.Canonical)
	if !ok {
		err = ErrOpcodeUndefined(inst.Canonical)
		inst = nil
		return
	}

	if have := inst.constantBytes(); have != inst.Opcode.Constants() {
		err = ErrWidthMismatch{Canonical: inst.Canonical, Want: inst.Opcode.Constants(), Got: have}
		inst = nil
		return
	}

	return
}

// split encodes a value as little endian bytes.
func split(value int, width Width) (data []byte) {
	for n := range width.Bytes() {
		data = append(data, byte(value>>(8*n)))
	}
	return
}

// constantBytes counts the constant bytes, resolved or pending.
func (inst *Instruction) constantBytes() int {
	have := len(inst.Constants)
	if len(inst.Label) != 0 {
		have += inst.Width.Bytes()
	}
	return have
}

// Size returns the encoded size in bytes.
func (inst *Instruction) Size() int {
	return inst.Opcode.Size
}

// Pending returns true while the instruction waits on a label.
func (inst *Instruction) Pending() bool {
	return len(inst.Label) != 0
}

// Resolve returns a copy of the instruction with its label reference
// replaced by the label's value.
func (inst *Instruction) Resolve(labels LabelLookup) (resolved *Instruction, err error) {
	copied := *inst
	copied.Constants = append([]byte(nil), inst.Constants...)
	resolved = &copied

	if !inst.Pending() {
		return
	}

	value, ok := labels.Lookup(inst.Label)
	if !ok {
		err = ErrLabelMissing(inst.Label)
		resolved = nil
		return
	}

	resolved.Constants = append(resolved.Constants, split(value, inst.Width)...)
	resolved.Label = ""
	resolved.Width = WIDTH_NONE

	return
}

// Encode returns the opcode and constant bytes of a resolved instruction.
func (inst *Instruction) Encode() (data []byte, err error) {
	if inst.Pending() {
		err = ErrLabelMissing(inst.Label)
		return
	}

	if len(inst.Constants) != inst.Opcode.Constants() {
		err = ErrWidthMismatch{Canonical: inst.Canonical, Want: inst.Opcode.Constants(), Got: len(inst.Constants)}
		return
	}

	data = append([]byte{inst.Opcode.Code}, inst.Constants...)
	return
}

var rePlaceholder = regexp.MustCompile(`%0[24]x`)

// String renders the instruction with its constant or label filled in.
func (inst *Instruction) String() string {
	placeholder := rePlaceholder.FindString(inst.Canonical)
	switch {
	case len(placeholder) == 0:
		return inst.Canonical
	case inst.Pending():
		for _, op := range inst.Operands {
			if op.Label == inst.Label {
				return strings.Replace(inst.Canonical, op.Canonical, op.Text, 1)
			}
		}
		return strings.Replace(inst.Canonical, placeholder, inst.Label, 1)
	default:
		var value int
		for n, b := range inst.Constants {
			value |= int(b) << (8 * n)
		}
		return fmt.Sprintf(inst.Canonical, value)
	}
}
