package cpu

import (
	"fmt"
	"iter"

	"github.com/JanDeVisser/jv80/internal"
)

// Listing is one display line of the parsed program.
type Listing struct {
	Address   int    // Address of the entry.
	Directive bool   // Segment, label and include headers.
	Text      string // Rendered entry.
}

// Format renders a listing line. Directives start a new paragraph and are
// never prefixed with their address.
func (ls Listing) Format(address bool) string {
	if ls.Directive {
		return "\n" + ls.Text
	}
	if address {
		return fmt.Sprintf("%04x\t%v", ls.Address, ls.Text)
	}
	return "\t" + ls.Text
}

// segmentListing yields a segment header followed by its entries.
func segmentListing(seg *Segment) iter.Seq[Listing] {
	return func(yield func(Listing) bool) {
		if !yield(Listing{Address: seg.Start, Directive: true, Text: seg.String()}) {
			return
		}
		for addr, entry := range seg.Placed() {
			ls := Listing{Address: addr, Directive: entry.Directive(), Text: entry.String()}
			if !yield(ls) {
				return
			}
		}
	}
}

// Listing iterates the display lines of every segment.
func (img *Image) Listing() iter.Seq[Listing] {
	seqs := make([]iter.Seq[Listing], len(img.Segments))
	for n, seg := range img.Segments {
		seqs[n] = segmentListing(seg)
	}
	return internal.IterSeqConcat(seqs...)
}

// ListingLines iterates the formatted listing.
func (img *Image) ListingLines(address bool) iter.Seq[string] {
	return internal.IterSeqMap(img.Listing(), func(ls Listing) string {
		return ls.Format(address)
	})
}
