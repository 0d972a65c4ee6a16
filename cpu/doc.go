// Package cpu implements the instruction set and assembler for the JV-80 system.
//
// The JV-80 is an 8-bit processor with four byte registers (a, b, c, d),
// the 16-bit pairs ab and cd, and the 16-bit si, di, sp and pc registers,
// addressing a 64KiB memory. Instructions are a single opcode byte followed
// by zero, one or two little endian constant bytes.
//
// The assembler reads line oriented source with labels, .segment, .define
// and .include directives, db/dw/data/str/asciz data, and compile-time
// $(...) expressions, and produces a flat binary image.
package cpu
