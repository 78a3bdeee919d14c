package pattern

import "bytes"

// Scan reports every offset o in [0, len(data)-p.Len()] where data matches
// the pattern: each concrete cell i requires data[o+i] == p.Byte(i), wildcard
// cells match anything. Overlapping matches are reported.
//
// fn is invoked once per match; returning false stops the scan immediately.
// The return value counts the matches reported so far. An empty pattern, or
// one longer than data, yields zero matches.
//
// This is the hot path. The first concrete cell anchors the search so runs
// of non-candidate bytes are skipped with bytes.IndexByte rather than a
// cell-by-cell compare at every offset.
func (p *Pattern) Scan(data []byte, fn func(offset int) bool) int {
	n, m := len(data), p.Len()
	if m == 0 || m > n {
		return 0
	}

	count := 0

	if p.head == p.tail {
		// All wildcards: every window matches.
		for o := 0; o <= n-m; o++ {
			count++
			if fn != nil && !fn(o) {
				return count
			}
		}
		return count
	}

	anchor := p.bytes[p.head]

	// The anchor cell for a match at offset o sits at data[o+head], so
	// candidate anchor positions lie in [head, n-m+head].
	for o := 0; o <= n-m; {
		idx := bytes.IndexByte(data[o+p.head:n-m+p.head+1], anchor)
		if idx < 0 {
			return count
		}
		o += idx

		if p.matchAt(data, o) {
			count++
			if fn != nil && !fn(o) {
				return count
			}
		}
		o++
	}

	return count
}

// ScanInto fills out with match offsets relative to the start of data,
// stopping once out is full, and returns the number of entries written.
// A zero-length out is a no-op returning 0.
//
// This is the embedding boundary for callers that want the matcher without
// the scan-task machinery: parse once, then feed buffers and an output slice.
func (p *Pattern) ScanInto(data []byte, out []int) int {
	if len(out) == 0 {
		return 0
	}
	total := 0
	p.Scan(data, func(o int) bool {
		out[total] = o
		total++
		return total < len(out)
	})
	return total
}

// matchAt checks the concrete span [head, tail) at offset o. Cells outside
// the span are wildcards and need no check; interior wildcards are skipped.
func (p *Pattern) matchAt(data []byte, o int) bool {
	for i := p.head; i < p.tail; i++ {
		if !p.wild[i] && data[o+i] != p.bytes[i] {
			return false
		}
	}
	return true
}
