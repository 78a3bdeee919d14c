package scan

import (
	"slices"

	"binpat/memory"
	"binpat/pattern"
)

// ScanAll runs the matcher over every segment of the address space and
// returns the absolute addresses of all matches, plus whether the result was
// truncated at max.
//
// Segments are processed in ascending start-address order regardless of
// enumeration order, so truncation behaviour is deterministic for a given
// space. Per segment the driver reads the bytes actually available (a short
// read scans the returned prefix, never an error), runs the matcher, and
// translates each relative offset to segment start + offset.
//
// The task's cancellation flag is observed before each segment read and
// after each segment's results; a cancelled scan keeps the addresses already
// collected but starts no further segments. max <= 0 means unbounded.
func ScanAll(space memory.AddressSpace, p *pattern.Pattern, task *Task, max int) ([]uint64, bool) {
	segments := slices.Clone(space.Segments())
	slices.SortStableFunc(segments, func(a, b memory.Segment) int {
		switch {
		case a.Start < b.Start:
			return -1
		case a.Start > b.Start:
			return 1
		default:
			return 0
		}
	})

	var results []uint64
	truncated := false

	for _, seg := range segments {
		if task != nil && task.Cancelled() {
			break
		}
		if seg.Length == 0 {
			continue
		}

		buf := make([]byte, seg.Length)
		n, err := space.ReadMemory(seg.Start, buf)
		if err != nil || n == 0 {
			// Unreadable segments are skipped, not escalated.
			continue
		}

		p.Scan(buf[:n], func(offset int) bool {
			results = append(results, seg.Start+uint64(offset))
			if max > 0 && len(results) >= max {
				truncated = true
				return false
			}
			return true
		})

		if truncated {
			break
		}
		if task != nil && task.Cancelled() {
			break
		}
	}

	return results, truncated
}
