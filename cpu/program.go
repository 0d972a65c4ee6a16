package cpu

import (
	"fmt"
	"iter"
	"strings"
)

// Program is an assembled, error free image.
type Program struct {
	Start  int      // Address of the first byte of Binary.
	Binary []byte   // Flat machine code image.
	Placed []Placed // Resolved entries with their addresses.
}

// Placed is a resolved entry at its address.
type Placed struct {
	Address int
	Entry   Entry
}

type Debug struct {
	*Placed
	Index int // Offset of the address within the entry.
}

// Debug finds the entry that covers an address.
func (prog *Program) Debug(addr int) (dbg Debug) {
	for n, placed := range prog.Placed {
		size := placed.Entry.Size()
		if addr >= placed.Address && addr < placed.Address+size {
			dbg = Debug{
				Placed: &prog.Placed[n],
				Index:  addr - placed.Address,
			}
			break
		}
	}

	return
}

// Bytes iterates the image with the address of every byte.
func (prog *Program) Bytes() iter.Seq2[int, byte] {
	return func(yield func(addr int, b byte) bool) {
		for n, b := range prog.Binary {
			if !yield(prog.Start+n, b) {
				return
			}
		}
	}
}

// Dump renders the image as hex, eight bytes per line.
func (prog *Program) Dump() string {
	var lines []string
	var line []string
	addr := prog.Start
	for n, b := range prog.Binary {
		if n%8 == 0 {
			if len(line) > 0 {
				lines = append(lines, fmt.Sprintf("%04x  %v", addr, strings.Join(line, " ")))
				addr += 8
			}
			line = line[:0]
		}
		line = append(line, fmt.Sprintf("%02x", b))
	}
	if len(line) > 0 {
		lines = append(lines, fmt.Sprintf("%04x  %v", addr, strings.Join(line, " ")))
	}

	return strings.Join(lines, "\n")
}
