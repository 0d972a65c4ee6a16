package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewData(t *testing.T) {
	assert := assert.New(t)

	entry, err := NewData("DB", "'a'", "2")
	assert.NoError(err)
	assert.Equal(KIND_BYTES, entry.Kind)
	assert.Equal("db", entry.Mnemonic)
	assert.Equal([]int{0x61, 2}, entry.Values)
	assert.Equal(2, entry.Size())
	assert.Equal("db 0x61 0x02", entry.String())

	entry, err = NewData("dw", "$1234")
	assert.NoError(err)
	assert.Equal([]int{0x34, 0x12}, entry.Values)

	entry, err = NewData("data")
	assert.NoError(err)
	assert.Equal(0, entry.Size())
	assert.Equal("data", entry.String())

	_, err = NewData("dq", "1")
	assert.ErrorIs(err, ErrMnemonicUnknown("dq"))
}

func TestNewString(t *testing.T) {
	assert := assert.New(t)

	entry, err := NewString("str", "\"hello\"", "world")
	assert.NoError(err)
	assert.Equal(KIND_STRING, entry.Kind)
	assert.Equal("hello world", entry.Text)
	assert.False(entry.Terminated())
	assert.Equal(11, entry.Size())
	assert.Equal(`str "hello world"`, entry.String())

	entry, err = NewString("ASCIZ", "'hi'")
	assert.NoError(err)
	assert.True(entry.Terminated())
	assert.Equal(3, entry.Size())

	data, errs := entry.Bytes()
	assert.Empty(errs)
	assert.Equal([]byte{'h', 'i', 0}, data)

	_, err = NewString("db", "x")
	assert.Error(err)
}

func TestEntry_Bytes(t *testing.T) {
	assert := assert.New(t)

	entry := Entry{Kind: KIND_BYTES, Mnemonic: "db", Values: []int{1, -1, 256, -129}}
	data, errs := entry.Bytes()
	assert.Equal([]byte{0x01, 0xff, 0x00, 0x00}, data)
	assert.Equal([]error{ErrByteRange(256), ErrByteRange(-129)}, errs)

	label := Entry{Kind: KIND_LABEL, Name: "loop", Value: 4}
	data, errs = label.Bytes()
	assert.Empty(data)
	assert.Empty(errs)
	assert.Equal(0, label.Size())
	assert.True(label.Directive())
	assert.Equal("loop:", label.String())

	define := Entry{Kind: KIND_DEFINE, Name: "PORT", Value: 0x10}
	assert.False(define.Directive())
	assert.Equal("PORT = 0x0010", define.String())

	include := Entry{Kind: KIND_INCLUDE, Text: "lib.s"}
	assert.True(include.Directive())
	assert.Equal(".include lib.s", include.String())
}

func TestEntry_Resolve(t *testing.T) {
	assert := assert.New(t)

	inst, err := NewInstruction("call", "sub")
	assert.NoError(err)
	entry := Entry{Kind: KIND_INSTRUCTION, Instruction: inst}
	assert.Equal(3, entry.Size())

	var labels LabelTable
	_, err = entry.Resolve(&labels)
	assert.ErrorIs(err, ErrLabelMissing("sub"))

	assert.NoError(labels.Define("sub", 0x0420))
	resolved, err := entry.Resolve(&labels)
	assert.NoError(err)

	data, errs := resolved.Bytes()
	assert.Empty(errs)
	assert.Equal([]byte{0x2b, 0x20, 0x04}, data)

	// Non-instructions resolve to themselves.
	bytes := Entry{Kind: KIND_BYTES, Mnemonic: "db", Values: []int{1}}
	same, err := bytes.Resolve(&labels)
	assert.NoError(err)
	assert.Equal(bytes, same)
}

func TestKind_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("instruction", KIND_INSTRUCTION.String())
	assert.Equal("include", KIND_INCLUDE.String())
	assert.Equal("Kind(-1)", Kind(-1).String())
}
