package cpu

import (
	"regexp"
	"strconv"
	"strings"
)

// Mode is an operand addressing mode.
type Mode int

const (
	MODE_REGISTER        = Mode(0) // register
	MODE_IMMEDIATE       = Mode(1) // immediate
	MODE_IMMEDIATE_LABEL = Mode(2) // immediate label
	MODE_DIRECT          = Mode(3) // direct
	MODE_DIRECT_LABEL    = Mode(4) // direct label
	MODE_INDIRECT        = Mode(5) // indirect
)

var modeNames = [...]string{"register", "immediate", "immediate label", "direct", "direct label", "indirect"}

func (mode Mode) String() string {
	if mode < 0 || int(mode) >= len(modeNames) {
		return "Mode(" + strconv.Itoa(int(mode)) + ")"
	}
	return modeNames[mode]
}

// Width is the number of constant bytes an operand contributes.
type Width int

const (
	WIDTH_NONE = Width(0)  // Registers carry no constant.
	WIDTH_BYTE = Width(1)  // 8-bit constant.
	WIDTH_WORD = Width(2)  // 16-bit constant, little endian.
	WIDTH_WIDE = Width(-1) // Numeric constant whose width the encoder decides.
)

// Bytes returns the number of encoded bytes, treating an undecided width as 16 bits.
func (width Width) Bytes() int {
	if width == WIDTH_WIDE {
		return int(WIDTH_WORD)
	}
	return int(width)
}

// Operand is a classified instruction operand.
type Operand struct {
	Text      string // Operand as written.
	Mode      Mode   // Addressing mode.
	Canonical string // Canonical form: register name, or prefix and placeholder.
	Width     Width  // Constant width.
	Value     int    // Constant value, when numeric.
	Label     string // Referenced label, when symbolic.
}

// Numeric returns true if the operand carries a literal constant.
func (op Operand) Numeric() bool {
	return op.Mode == MODE_IMMEDIATE || op.Mode == MODE_DIRECT
}

// narrow pins an undecided width, and rewrites the placeholder to match.
func (op *Operand) narrow(width Width) {
	op.Width = width
	prefix := op.Canonical[:1]
	switch width {
	case WIDTH_BYTE:
		op.Canonical = prefix + "%02x"
	case WIDTH_WORD:
		op.Canonical = prefix + "%04x"
	}
}

var (
	reOperandHex   = regexp.MustCompile(`^([*#])(?:\$|0[xX])([0-9A-Fa-f]{1,4})$`)
	reOperandDec   = regexp.MustCompile(`^([*#])([0-9]{1,5})$`)
	reOperandIdent = regexp.MustCompile(`^([*#]?)([A-Za-z_][A-Za-z0-9_]*)$`)
)

// Classify determines the addressing mode of an operand.
func Classify(text string) (op Operand, err error) {
	op = Operand{
		Text:      text,
		Canonical: text,
	}

	literal := func(prefix string, value int64) {
		op.Value = int(value)
		op.Width = WIDTH_WIDE
		op.Canonical = prefix + "%04x"
		op.Mode = MODE_IMMEDIATE
		if prefix == "*" {
			op.Mode = MODE_DIRECT
		}
	}

	if m := reOperandHex.FindStringSubmatch(text); m != nil {
		value, _ := strconv.ParseInt(m[2], 16, 32)
		literal(m[1], value)
		return
	}

	if m := reOperandDec.FindStringSubmatch(text); m != nil {
		value, _ := strconv.ParseInt(m[2], 10, 32)
		if value > ADDRESS_MAX {
			err = ErrValueInvalid(text)
			return
		}
		literal(m[1], value)
		return
	}

	if m := reOperandIdent.FindStringSubmatch(text); m != nil {
		prefix, ident := m[1], m[2]
		reg := strings.ToLower(ident)
		if IsReserved(reg) {
			op.Canonical = prefix + reg
			op.Mode = MODE_REGISTER
			if prefix == "*" {
				op.Mode = MODE_INDIRECT
			}
			return
		}

		if len(prefix) == 0 {
			prefix = "#"
		}
		op.Label = ident
		op.Width = WIDTH_WORD
		op.Canonical = prefix + "%04x"
		op.Mode = MODE_IMMEDIATE_LABEL
		if prefix == "*" {
			op.Mode = MODE_DIRECT_LABEL
		}
		return
	}

	err = ErrOperandInvalid(text)
	return
}
