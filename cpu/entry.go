package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the variant of an Entry.
type Kind int

const (
	KIND_INSTRUCTION = Kind(0) // instruction
	KIND_BYTES       = Kind(1) // bytes
	KIND_STRING      = Kind(2) // string
	KIND_LABEL       = Kind(3) // label
	KIND_DEFINE      = Kind(4) // define
	KIND_INCLUDE     = Kind(5) // include
)

var kindNames = [...]string{"instruction", "bytes", "string", "label", "define", "include"}

func (kind Kind) String() string {
	if kind < 0 || int(kind) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(kind)) + ")"
	}
	return kindNames[kind]
}

// Entry is one parsed unit of source queued in a segment. Only the fields
// of its Kind are set.
type Entry struct {
	Kind   Kind
	File   string // Source file, empty for the main input.
	LineNo int    // Source line.

	Instruction *Instruction // KIND_INSTRUCTION.

	Mnemonic string // KIND_BYTES and KIND_STRING directive name.
	Values   []int  // KIND_BYTES values, one per byte.
	Text     string // KIND_STRING text, KIND_INCLUDE file name.

	Name  string // KIND_LABEL and KIND_DEFINE name.
	Value int    // KIND_LABEL address, KIND_DEFINE value.
}

// NewData builds a db, dw or data entry from its value tokens.
func NewData(mnemonic string, args ...string) (entry Entry, err error) {
	mnemonic = strings.ToLower(mnemonic)
	count := 0
	switch mnemonic {
	case "db":
		count = 1
	case "dw":
		count = 2
	case "data":
		count = 0
	default:
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	entry = Entry{Kind: KIND_BYTES, Mnemonic: mnemonic}
	for _, arg := range args {
		var values []int
		values, err = dataValues(count, arg)
		if err != nil {
			return
		}
		entry.Values = append(entry.Values, values...)
	}

	return
}

// NewString builds a str or asciz entry. Tokens are joined by single spaces.
func NewString(mnemonic string, args ...string) (entry Entry, err error) {
	mnemonic = strings.ToLower(mnemonic)
	if mnemonic != "str" && mnemonic != "asciz" {
		err = ErrMnemonicUnknown(mnemonic)
		return
	}

	words := make([]string, len(args))
	for n, arg := range args {
		words[n], _ = unquote(arg)
	}

	entry = Entry{Kind: KIND_STRING, Mnemonic: mnemonic, Text: strings.Join(words, " ")}
	return
}

// Terminated returns true for zero terminated strings.
func (entry *Entry) Terminated() bool {
	return entry.Kind == KIND_STRING && entry.Mnemonic == "asciz"
}

// Size returns the number of bytes the entry occupies in the image.
func (entry *Entry) Size() int {
	switch entry.Kind {
	case KIND_INSTRUCTION:
		return entry.Instruction.Size()
	case KIND_BYTES:
		return len(entry.Values)
	case KIND_STRING:
		size := len(entry.Text)
		if entry.Terminated() {
			size++
		}
		return size
	default:
		return 0
	}
}

// Directive returns true for entries listed as section headers.
func (entry *Entry) Directive() bool {
	return entry.Kind == KIND_LABEL || entry.Kind == KIND_INCLUDE
}

// Resolve returns a copy of the entry with any label reference replaced.
func (entry *Entry) Resolve(labels LabelLookup) (resolved Entry, err error) {
	resolved = *entry
	if entry.Kind != KIND_INSTRUCTION {
		return
	}

	resolved.Instruction, err = entry.Instruction.Resolve(labels)
	return
}

// Bytes returns the final encoding of a resolved entry.
//
// Byte values outside of -128..255 are reported, and encoded as zero
// so the entry keeps its size.
func (entry *Entry) Bytes() (data []byte, errs []error) {
	switch entry.Kind {
	case KIND_INSTRUCTION:
		code, err := entry.Instruction.Encode()
		if err != nil {
			errs = append(errs, err)
			return
		}
		data = code
	case KIND_BYTES:
		data = make([]byte, len(entry.Values))
		for n, value := range entry.Values {
			if value < -128 || value > 255 {
				errs = append(errs, ErrByteRange(value))
				continue
			}
			data[n] = byte(value)
		}
	case KIND_STRING:
		data = []byte(entry.Text)
		if entry.Terminated() {
			data = append(data, 0)
		}
	}

	return
}

// String renders the entry for a listing.
func (entry *Entry) String() string {
	switch entry.Kind {
	case KIND_INSTRUCTION:
		return entry.Instruction.String()
	case KIND_BYTES:
		words := make([]string, len(entry.Values))
		for n, value := range entry.Values {
			words[n] = fmt.Sprintf("0x%02x", byte(value))
		}
		if len(words) == 0 {
			return entry.Mnemonic
		}
		return entry.Mnemonic + " " + strings.Join(words, " ")
	case KIND_STRING:
		return fmt.Sprintf("%v %q", entry.Mnemonic, entry.Text)
	case KIND_LABEL:
		return entry.Name + ":"
	case KIND_DEFINE:
		return fmt.Sprintf("%v = 0x%04x", entry.Name, entry.Value)
	case KIND_INCLUDE:
		return ".include " + entry.Text
	default:
		return entry.Kind.String()
	}
}
