// Package memory models a segmented address space: one logical range of
// addresses backed by disjoint, independently readable segments.
//
// Backends include in-memory buffers (for file images and tests) and, on
// Windows, live process memory. All backends must tolerate concurrent
// readers; scans never write.
package memory

import "fmt"

// Segment is a contiguous region of the logical address space. Segments may
// have gaps between them and are not guaranteed to arrive sorted.
type Segment struct {
	Start  uint64
	Length uint64
}

// End returns the address one past the last byte of the segment.
func (s Segment) End() uint64 {
	return s.Start + s.Length
}

// Contains reports whether addr falls within the segment.
func (s Segment) Contains(addr uint64) bool {
	return addr >= s.Start && addr < s.End()
}

func (s Segment) String() string {
	return fmt.Sprintf("[0x%X-0x%X)", s.Start, s.End())
}

// AddressSpace is the read-only view of a segmented memory image.
//
// ReadMemory reads bytes starting at addr into buf and returns the number of
// bytes actually available, which may be less than len(buf) when addr is
// near the end of a segment. A short read is not an error; callers scan only
// the bytes returned. Reads never cross segment boundaries.
type AddressSpace interface {
	// Segments enumerates the readable segments of the space.
	Segments() []Segment

	// ReadMemory reads bytes from the space at the specified address.
	ReadMemory(addr uint64, buf []byte) (int, error)
}
