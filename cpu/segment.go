package cpu

import (
	"fmt"
	"iter"
)

// Segment is a contiguous run of entries starting at a fixed address.
type Segment struct {
	Start   int     // Start address.
	Entries []Entry // Entries in source order.

	size int
}

// NewSegment creates an empty segment at an address.
func NewSegment(start int) *Segment {
	return &Segment{Start: start}
}

// Add appends an entry and grows the segment by its size.
func (seg *Segment) Add(entry Entry) {
	seg.Entries = append(seg.Entries, entry)
	seg.size += entry.Size()
}

// Size returns the number of bytes in the segment.
func (seg *Segment) Size() int {
	return seg.size
}

// CurrentAddress returns the address the next entry will be placed at.
func (seg *Segment) CurrentAddress() int {
	return seg.Start + seg.size
}

// Placed iterates the entries together with their addresses.
func (seg *Segment) Placed() iter.Seq2[int, *Entry] {
	return func(yield func(int, *Entry) bool) {
		addr := seg.Start
		for n := range seg.Entries {
			entry := &seg.Entries[n]
			if !yield(addr, entry) {
				return
			}
			addr += entry.Size()
		}
	}
}

func (seg *Segment) String() string {
	return fmt.Sprintf(".segment 0x%04x", seg.Start)
}
