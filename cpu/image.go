package cpu

import (
	"fmt"
	"io"
	"slices"

	"github.com/hashicorp/go-multierror"
)

// Image is one assembly unit: its segments, the global label table, the
// collected errors, and the output buffer.
type Image struct {
	Segments []*Segment // Segments in declaration order.
	Labels   LabelTable // Labels and defines of every segment and include.

	current *Segment
	errs    *multierror.Error // Parse errors.
	asmErrs *multierror.Error // Errors of the last assembly.

	image     []byte
	address   int // Write cursor.
	assembled bool
	program   *Program
}

// NewImage creates an image with an empty segment at address 0.
func NewImage() (img *Image) {
	seg := NewSegment(0)
	img = &Image{
		Segments: []*Segment{seg},
		current:  seg,
	}
	return
}

// Current returns the segment entries are added to.
func (img *Image) Current() *Segment {
	return img.current
}

// CurrentAddress returns the address of the next entry.
func (img *Image) CurrentAddress() int {
	return img.current.CurrentAddress()
}

// Add appends an entry to the current segment. Labels are bound to the
// current address, and defines to their value, before the entry is added.
func (img *Image) Add(entry Entry) (err error) {
	switch entry.Kind {
	case KIND_LABEL:
		entry.Value = img.CurrentAddress()
		err = img.Labels.Define(entry.Name, entry.Value)
	case KIND_DEFINE:
		err = img.Labels.Define(entry.Name, entry.Value)
	}
	if err != nil {
		return
	}

	img.current.Add(entry)
	img.modified()
	return
}

// modified drops the result of an earlier assembly.
func (img *Image) modified() {
	img.assembled = false
	img.program = nil
	img.asmErrs = nil
}

// NewSegment starts a new segment. A current segment that holds no bytes
// is dropped, and its zero-width entries move to the new segment.
func (img *Image) NewSegment(addr int) (seg *Segment) {
	seg = NewSegment(addr)

	if img.current.Size() == 0 {
		img.Segments = img.Segments[:len(img.Segments)-1]
		for _, entry := range img.current.Entries {
			seg.Add(entry)
		}
	}

	img.Segments = append(img.Segments, seg)
	img.current = seg
	img.modified()

	return
}

// Error records a parse error. Errors are kept in the order they are
// recorded.
func (img *Image) Error(err error) {
	img.errs = multierror.Append(img.errs, err)
	img.modified()
}

// assemblyError records an error of the running assembly.
func (img *Image) assemblyError(err error) {
	img.asmErrs = multierror.Append(img.asmErrs, err)
}

// Errors returns the parse errors followed by the assembly errors.
func (img *Image) Errors() (errs []error) {
	if img.errs != nil {
		errs = append(errs, img.errs.WrappedErrors()...)
	}
	if img.asmErrs != nil {
		errs = append(errs, img.asmErrs.WrappedErrors()...)
	}
	return
}

// Err returns all recorded errors as one, or nil.
func (img *Image) Err() error {
	var all *multierror.Error
	all = multierror.Append(all, img.Errors()...)
	return all.ErrorOrNil()
}

// Diagnostics returns one human readable line per recorded error.
func (img *Image) Diagnostics() (lines []string) {
	for _, err := range img.Errors() {
		lines = append(lines, err.Error())
	}
	return
}

// SetAddress moves the write cursor forward to addr, padding with zeros.
// The cursor starts at address 0 and never moves backwards.
func (img *Image) SetAddress(addr int) (err error) {
	if addr < ADDRESS_MIN || addr > ADDRESS_SIZE {
		err = ErrAddressRange(addr)
		return
	}

	if addr < img.address {
		err = ErrAddressOverlap{Address: addr, Cursor: img.address}
		return
	}

	img.pad(addr - img.address)

	return
}

// pad appends count zero bytes.
func (img *Image) pad(count int) {
	for range count {
		img.image = append(img.image, 0)
	}
	img.address += count
}

// append adds bytes at the write cursor.
func (img *Image) append(data []byte) (err error) {
	if img.address+len(data) > ADDRESS_SIZE {
		err = ErrAddressRange(img.address + len(data) - 1)
		return
	}

	img.image = append(img.image, data...)
	img.address += len(data)

	return
}

// Assemble walks the segments in order, resolving label references and
// emitting every entry into the output buffer. All errors are collected;
// the program is only returned when there are none.
//
// An image with parse errors is not assembled. The result is kept until
// the image is changed.
func (img *Image) Assemble() (prog *Program, err error) {
	if img.assembled {
		return img.program, img.Err()
	}

	err = img.errs.ErrorOrNil()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCannotAssemble, err)
		return
	}

	img.assembled = true
	img.asmErrs = nil
	img.image = img.image[:0]
	img.address = 0

	prog = &Program{}

	for _, seg := range img.Segments {
		err = img.SetAddress(seg.Start)
		if err != nil {
			img.assemblyError(&ErrEntry{Address: seg.Start, Entry: seg.String(), Err: err})
			continue
		}

		for addr, entry := range seg.Placed() {
			size := entry.Size()

			resolved, err := entry.Resolve(&img.Labels)
			if err != nil {
				img.assemblyError(&ErrEntry{Address: addr, Entry: entry.String(), Err: err})
				img.pad(size)
				continue
			}

			data, errs := resolved.Bytes()
			for _, err := range errs {
				img.assemblyError(&ErrEntry{Address: addr, Entry: entry.String(), Err: err})
			}
			if len(data) != size {
				img.pad(size)
				continue
			}

			err = img.append(data)
			if err != nil {
				img.assemblyError(&ErrEntry{Address: addr, Entry: entry.String(), Err: err})
				continue
			}

			prog.Placed = append(prog.Placed, Placed{Address: addr, Entry: resolved})
		}
	}

	err = img.Err()
	if err != nil {
		prog = nil
		return
	}

	prog.Binary = slices.Clone(img.image)
	img.program = prog

	return
}

// Write assembles the image if needed and writes the binary. Nothing is
// written if any error was recorded.
func (img *Image) Write(w io.Writer) (err error) {
	prog, err := img.Assemble()
	if err != nil {
		err = fmt.Errorf("%w: %w", ErrCannotWrite, err)
		return
	}

	_, err = w.Write(prog.Binary)
	return
}
