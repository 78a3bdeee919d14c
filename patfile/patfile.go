// Package patfile loads pattern files: text records that each describe one
// scan request.
//
// One record per line, either a bare pattern or a pattern and mask separated
// by a comma:
//
//	48 8B ?? 05
//	\x48\x8B\x00\x05, xx?x
//
// Comments start with ';' or '#' anywhere on a line; blank lines are
// skipped. Whether a record compiles is the caller's concern — a bad record
// fails that one scan, not the whole file.
package patfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one scan request from a pattern file.
type Record struct {
	// Pattern is the pattern string: token form, or an escaped byte
	// string when Mask is set.
	Pattern string

	// Mask is the optional parallel mask; empty selects the token form.
	Mask string

	// Line is the 1-based source line, for diagnostics.
	Line int
}

// Load reads pattern records from r.
func Load(r io.Reader) ([]Record, error) {
	var records []Record

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(stripComment(scanner.Text()))
		if text == "" {
			continue
		}

		pat, mask, _ := strings.Cut(text, ",")
		records = append(records, Record{
			Pattern: strings.TrimSpace(pat),
			Mask:    strings.TrimSpace(mask),
			Line:    line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}

	return records, nil
}

// LoadFile reads pattern records from the file at path.
func LoadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern file: %w", err)
	}
	defer f.Close()

	records, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

func stripComment(line string) string {
	if idx := strings.IndexAny(line, ";#"); idx >= 0 {
		return line[:idx]
	}
	return line
}
