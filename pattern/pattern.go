// Package pattern compiles textual byte patterns into executable matchers.
//
// A pattern is an ordered sequence of cells, each either a concrete byte
// value or a wildcard that matches any byte. Two source forms compile to the
// same representation:
//
//   - token form: whitespace-separated tokens, each two hex digits
//     ("48 8B ?? 05") or a wildcard marker "?" / "??"
//   - byte+mask form: raw bytes plus a parallel mask string where '?'
//     marks the corresponding byte as a wildcard
package pattern

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformed reports a pattern with no parseable cells or an
	// unrecognized token. The whole pattern is rejected; tokens are never
	// silently skipped.
	ErrMalformed = errors.New("pattern is empty or malformed")

	// ErrLengthMismatch reports a byte sequence and mask of different
	// lengths in the byte+mask form.
	ErrLengthMismatch = errors.New("pattern/mask length mismatch")
)

// Pattern is a compiled byte pattern.
//
// Leading and trailing wildcard runs are trimmed internally so the matcher
// can anchor on a concrete byte; Len still reports the logical cell count
// including the trimmed runs.
type Pattern struct {
	bytes []byte // cell values; zero for wildcard cells
	wild  []bool // true marks a wildcard cell

	// Concrete cells live in [head, tail). head == tail means the pattern
	// is entirely wildcards.
	head, tail int
}

// Parse compiles the token form. Each token must be exactly two hex digits
// (case-insensitive) or a wildcard marker. Any other token shape fails the
// whole pattern with ErrMalformed.
func Parse(text string) (*Pattern, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, ErrMalformed
	}

	cells := make([]byte, len(tokens))
	wild := make([]bool, len(tokens))

	for i, tok := range tokens {
		switch {
		case tok == "?" || tok == "??":
			wild[i] = true
		case len(tok) == 2:
			hi, ok1 := hexValue(tok[0])
			lo, ok2 := hexValue(tok[1])
			if !ok1 || !ok2 {
				return nil, fmt.Errorf("%w: bad token %q", ErrMalformed, tok)
			}
			cells[i] = hi<<4 | lo
		default:
			return nil, fmt.Errorf("%w: bad token %q", ErrMalformed, tok)
		}
	}

	return compile(cells, wild), nil
}

// New compiles the byte+mask form. The mask must be exactly as long as the
// byte sequence; '?' marks a wildcard cell, any other character marks the
// corresponding byte concrete.
func New(data []byte, mask string) (*Pattern, error) {
	if len(data) != len(mask) {
		return nil, fmt.Errorf("%w (%d != %d)", ErrLengthMismatch, len(data), len(mask))
	}
	if len(data) == 0 {
		return nil, ErrMalformed
	}

	cells := make([]byte, len(data))
	wild := make([]bool, len(data))

	for i := range data {
		if mask[i] == '?' {
			wild[i] = true
		} else {
			cells[i] = data[i]
		}
	}

	return compile(cells, wild), nil
}

func compile(cells []byte, wild []bool) *Pattern {
	head, tail := 0, len(cells)
	for head < tail && wild[head] {
		head++
	}
	for tail > head && wild[tail-1] {
		tail--
	}
	return &Pattern{bytes: cells, wild: wild, head: head, tail: tail}
}

// Len returns the logical cell count, including any leading or trailing
// wildcard cells trimmed for matching.
func (p *Pattern) Len() int {
	return len(p.bytes)
}

// Wildcard reports whether the cell at index i is a wildcard.
func (p *Pattern) Wildcard(i int) bool {
	return p.wild[i]
}

// Byte returns the concrete value of the cell at index i. It is zero for
// wildcard cells.
func (p *Pattern) Byte(i int) byte {
	return p.bytes[i]
}

// String renders the canonical token form, e.g. "48 8B ?? 05".
func (p *Pattern) String() string {
	var b strings.Builder
	for i := range p.bytes {
		if i > 0 {
			b.WriteByte(' ')
		}
		if p.wild[i] {
			b.WriteString("??")
		} else {
			fmt.Fprintf(&b, "%02X", p.bytes[i])
		}
	}
	return b.String()
}

// Unescape decodes backslash escape sequences in a pattern byte string.
// "\xNN" inserts the byte with hex value NN; "\n", "\r", "\t" and "\0"
// insert their usual values; a backslash before any other character inserts
// that character. Everything else passes through as literal bytes.
//
// Pattern files carry raw byte sequences for the byte+mask form in this
// escaped shape.
func Unescape(s string) []byte {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			out = append(out, s[i])
			continue
		}
		i++
		switch s[i] {
		case 'x':
			var v byte
			n := 0
			for n < 2 && i+1 < len(s) {
				d, ok := hexValue(s[i+1])
				if !ok {
					break
				}
				v = v<<4 | d
				i++
				n++
			}
			if n == 0 {
				out = append(out, 'x')
			} else {
				out = append(out, v)
			}
		case 'n':
			out = append(out, '\n')
		case 'r':
			out = append(out, '\r')
		case 't':
			out = append(out, '\t')
		case '0':
			out = append(out, 0)
		default:
			out = append(out, s[i])
		}
	}
	return out
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
