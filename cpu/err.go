package cpu

import (
	"errors"

	"github.com/JanDeVisser/jv80/translate"
)

var f = translate.From

var (
	// Directive errors
	ErrSegmentSyntax = errors.New(f(".segment directive must specify start address"))
	ErrDefineSyntax  = errors.New(f(".define directive must specify name and value"))
	ErrIncludeSyntax = errors.New(f(".include directive must specify file name"))

	// Output errors
	ErrCannotWrite    = errors.New(f("cannot write assembled output due to assembly errors"))
	ErrCannotAssemble = errors.New(f("cannot assemble binary due to parsing errors"))

	// Source errors
	ErrSourceMissing = errors.New(f("no source provider for .include"))
)

// ErrMismatchedQuote is the lexer error for a quoted span left open at end of line.
type ErrMismatchedQuote struct {
	Quote rune
	Line  string
}

func (err ErrMismatchedQuote) Error() string {
	return f("mismatched quote %c in %v", err.Quote, err.Line)
}

type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("mnemonic %v not defined", string(err))
}

type ErrDirectiveUnknown string

func (err ErrDirectiveUnknown) Error() string {
	return f("invalid directive .%v", string(err))
}

// ErrOperandCount reports a mnemonic given the wrong number of operands.
type ErrOperandCount struct {
	Mnemonic string
	Want     int
	Got      int
}

func (err ErrOperandCount) Error() string {
	switch err.Want {
	case 0:
		return f("%v takes no arguments, got %d", err.Mnemonic, err.Got)
	case 1:
		return f("%v takes exactly one argument, got %d", err.Mnemonic, err.Got)
	default:
		return f("%v takes exactly %d arguments, got %d", err.Mnemonic, err.Want, err.Got)
	}
}

type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("'%v' is not a register, value or label", string(err))
}

type ErrOpcodeUndefined string

func (err ErrOpcodeUndefined) Error() string {
	return f("canonical opcode %v not defined", string(err))
}

type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("label %v not defined", string(err))
}

type ErrLabelDuplicate string

func (err ErrLabelDuplicate) Error() string {
	return f("label %v already defined", string(err))
}

type ErrLabelReserved string

func (err ErrLabelReserved) Error() string {
	return f("cannot use reserved value '%v' as label", string(err))
}

type ErrLabelInvalid string

func (err ErrLabelInvalid) Error() string {
	return f("'%v' is not a valid label name", string(err))
}

// ErrAddressOverlap reports a segment starting before the write cursor.
type ErrAddressOverlap struct {
	Address int
	Cursor  int
}

func (err ErrAddressOverlap) Error() string {
	return f("overlapping segments at address 0x%04x (current address 0x%04x)", err.Address, err.Cursor)
}

type ErrAddressRange int

func (err ErrAddressRange) Error() string {
	return f("address 0x%x outside of the 16-bit address space", int(err))
}

type ErrByteRange int

func (err ErrByteRange) Error() string {
	return f("byte value %v out of range", int(err))
}

// ErrByteCount reports a data value that does not encode to the expected number of bytes.
type ErrByteCount struct {
	Text string
	Want int
	Got  int
}

func (err ErrByteCount) Error() string {
	return f("expected %v bytes in %v, got %v", err.Want, err.Text, err.Got)
}

type ErrValueInvalid string

func (err ErrValueInvalid) Error() string {
	return f("invalid value %v", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrIncludeCycle string

func (err ErrIncludeCycle) Error() string {
	return f("%v includes itself", string(err))
}

// ErrWidthMismatch is an internal consistency failure between an
// instruction's table width and its encoded constants.
type ErrWidthMismatch struct {
	Canonical string
	Want      int
	Got       int
}

func (err ErrWidthMismatch) Error() string {
	return f("opcode '%v' needs %v constant bytes, has %v", err.Canonical, err.Want, err.Got)
}

// ErrSyntax locates a parse error in the source.
type ErrSyntax struct {
	File   string
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	if len(err.File) == 0 {
		return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
	}
	return f("%v:%d '%v' %v", err.File, err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrEntry locates an assembly error at an entry's address.
type ErrEntry struct {
	Address int
	Entry   string
	Err     error
}

func (err ErrEntry) Error() string {
	return f("0x%04x '%v' %v", err.Address, err.Entry, err.Err)
}

func (err ErrEntry) Unwrap() error {
	return err.Err
}
