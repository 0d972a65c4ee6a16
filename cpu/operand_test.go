package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	table := [](struct {
		text     string
		expected Operand
	}){
		{"a", Operand{Text: "a", Mode: MODE_REGISTER, Canonical: "a"}},
		{"SI", Operand{Text: "SI", Mode: MODE_REGISTER, Canonical: "si"}},
		{"*di", Operand{Text: "*di", Mode: MODE_INDIRECT, Canonical: "*di"}},
		{"#10", Operand{Text: "#10", Mode: MODE_IMMEDIATE, Canonical: "#%04x", Width: WIDTH_WIDE, Value: 10}},
		{"#$ff", Operand{Text: "#$ff", Mode: MODE_IMMEDIATE, Canonical: "#%04x", Width: WIDTH_WIDE, Value: 0xff}},
		{"*0x1234", Operand{Text: "*0x1234", Mode: MODE_DIRECT, Canonical: "*%04x", Width: WIDTH_WIDE, Value: 0x1234}},
		{"*65535", Operand{Text: "*65535", Mode: MODE_DIRECT, Canonical: "*%04x", Width: WIDTH_WIDE, Value: 0xffff}},
		{"loop", Operand{Text: "loop", Mode: MODE_IMMEDIATE_LABEL, Canonical: "#%04x", Width: WIDTH_WORD, Label: "loop"}},
		{"#loop", Operand{Text: "#loop", Mode: MODE_IMMEDIATE_LABEL, Canonical: "#%04x", Width: WIDTH_WORD, Label: "loop"}},
		{"*Data_1", Operand{Text: "*Data_1", Mode: MODE_DIRECT_LABEL, Canonical: "*%04x", Width: WIDTH_WORD, Label: "Data_1"}},
	}

	for _, entry := range table {
		t.Run(entry.text, func(t *testing.T) {
			assert := assert.New(t)

			op, err := Classify(entry.text)
			assert.NoError(err)
			assert.Equal(entry.expected, op)
		})
	}
}

func TestClassify_Invalid(t *testing.T) {
	assert := assert.New(t)

	for _, text := range []string{"", "#", "#$12345", "*$", "1abc", "#-1", "a+b", "**a"} {
		_, err := Classify(text)
		var target ErrOperandInvalid
		assert.ErrorAs(err, &target, text)
	}

	_, err := Classify("#70000")
	var target ErrValueInvalid
	assert.ErrorAs(err, &target)
}

func TestOperand_Narrow(t *testing.T) {
	assert := assert.New(t)

	op, err := Classify("#$12")
	assert.NoError(err)
	assert.True(op.Numeric())

	op.narrow(WIDTH_BYTE)
	assert.Equal("#%02x", op.Canonical)
	assert.Equal(1, op.Width.Bytes())

	op.narrow(WIDTH_WORD)
	assert.Equal("#%04x", op.Canonical)
	assert.Equal(2, op.Width.Bytes())

	assert.Equal(2, WIDTH_WIDE.Bytes())
	assert.Equal(0, WIDTH_NONE.Bytes())
}

func TestMode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("register", MODE_REGISTER.String())
	assert.Equal("direct label", MODE_DIRECT_LABEL.String())
	assert.Equal("Mode(9)", Mode(9).String())
}
