package memory

import "fmt"

// Buffer implements AddressSpace for a single contiguous region held in
// memory, typically the contents of a file image loaded at a base address.
type Buffer struct {
	base uint64
	data []byte
}

// NewBuffer creates a buffer-backed address space for data loaded at base.
func NewBuffer(base uint64, data []byte) *Buffer {
	return &Buffer{base: base, data: data}
}

// Segments returns the single segment covering the buffer.
func (b *Buffer) Segments() []Segment {
	return []Segment{{Start: b.base, Length: uint64(len(b.data))}}
}

// ReadMemory implements AddressSpace. Reads past the end of the buffer are
// truncated to the bytes available.
func (b *Buffer) ReadMemory(addr uint64, buf []byte) (int, error) {
	if addr < b.base {
		return 0, fmt.Errorf("address 0x%X is before buffer base 0x%X", addr, b.base)
	}

	offset := addr - b.base
	if offset >= uint64(len(b.data)) {
		return 0, fmt.Errorf("address 0x%X is beyond buffer range [0x%X-0x%X)",
			addr, b.base, b.base+uint64(len(b.data)))
	}

	return copy(buf, b.data[offset:]), nil
}

// Image implements AddressSpace over multiple disjoint buffers, modelling a
// sparse image with gaps between segments. Overlapping regions are the
// caller's error; the scan contract does not deduplicate across them.
type Image struct {
	regions []*Buffer
}

// NewImage creates an empty multi-region address space.
func NewImage() *Image {
	return &Image{}
}

// Add appends a region backed by data at base. Regions may be added in any
// order; segment enumeration does not sort them.
func (im *Image) Add(base uint64, data []byte) {
	im.regions = append(im.regions, NewBuffer(base, data))
}

// Segments returns one segment per region, in insertion order.
func (im *Image) Segments() []Segment {
	segs := make([]Segment, len(im.regions))
	for i, r := range im.regions {
		segs[i] = Segment{Start: r.base, Length: uint64(len(r.data))}
	}
	return segs
}

// ReadMemory reads from the region containing addr.
func (im *Image) ReadMemory(addr uint64, buf []byte) (int, error) {
	for _, r := range im.regions {
		if addr >= r.base && addr < r.base+uint64(len(r.data)) {
			return r.ReadMemory(addr, buf)
		}
	}
	return 0, fmt.Errorf("address 0x%X not found in any region", addr)
}
