package pattern

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLen  int
		wantWild []bool
	}{
		{
			name:     "plain bytes",
			text:     "48 8B 05",
			wantLen:  3,
			wantWild: []bool{false, false, false},
		},
		{
			name:     "single wildcard marker",
			text:     "48 ? 05",
			wantLen:  3,
			wantWild: []bool{false, true, false},
		},
		{
			name:     "double wildcard marker",
			text:     "48 ?? 05",
			wantLen:  3,
			wantWild: []bool{false, true, false},
		},
		{
			name:     "lowercase hex",
			text:     "de ad be ef",
			wantLen:  4,
			wantWild: []bool{false, false, false, false},
		},
		{
			name:     "extra whitespace",
			text:     "  48\t8B  ??   05 ",
			wantLen:  4,
			wantWild: []bool{false, false, true, false},
		},
		{
			name:     "all wildcards",
			text:     "?? ?? ??",
			wantLen:  3,
			wantWild: []bool{true, true, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.text)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.text, err)
			}
			if p.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", p.Len(), tt.wantLen)
			}
			got := make([]bool, p.Len())
			for i := range got {
				got[i] = p.Wildcard(i)
			}
			if diff := cmp.Diff(tt.wantWild, got); diff != "" {
				t.Errorf("wildcard cells mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty string", ""},
		{"whitespace only", "   \t "},
		{"odd token", "48 8"},
		{"three digit token", "48 8B0 05"},
		{"non-hex token", "48 GG 05"},
		{"triple question mark", "48 ??? 05"},
		{"stray punctuation", "48, 8B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(tt.text); !errors.Is(err, ErrMalformed) {
				t.Errorf("Parse(%q) error = %v, want ErrMalformed", tt.text, err)
			}
		})
	}
}

func TestNew(t *testing.T) {
	p, err := New([]byte{0x48, 0x8B, 0x00, 0x05}, "xx?x")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", p.Len())
	}
	if !p.Wildcard(2) || p.Wildcard(0) || p.Wildcard(1) || p.Wildcard(3) {
		t.Errorf("wildcard cells wrong: %s", p)
	}
	if p.Byte(3) != 0x05 {
		t.Errorf("Byte(3) = 0x%02X, want 0x05", p.Byte(3))
	}
}

func TestNew_LengthMismatch(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mask string
	}{
		{"mask too short", []byte{0x48, 0x8B, 0x05}, "xx"},
		{"mask too long", []byte{0x48}, "xx"},
		{"empty mask", []byte{0x48}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.data, tt.mask); !errors.Is(err, ErrLengthMismatch) {
				t.Errorf("New() error = %v, want ErrLengthMismatch", err)
			}
		})
	}
}

func TestNew_Empty(t *testing.T) {
	if _, err := New(nil, ""); !errors.Is(err, ErrMalformed) {
		t.Errorf("New(nil, \"\") error = %v, want ErrMalformed", err)
	}
}

// The two construction forms must produce equivalent patterns for the same
// match semantics.
func TestFormEquivalence(t *testing.T) {
	fromTokens, err := Parse("48 8B ?? 05")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	fromMask, err := New([]byte{0x48, 0x8B, 0x00, 0x05}, "xx?x")
	if err != nil {
		t.Fatalf("New error = %v", err)
	}

	if fromTokens.String() != fromMask.String() {
		t.Errorf("forms diverge: token %q, mask %q", fromTokens, fromMask)
	}

	data := []byte{0x00, 0x48, 0x8B, 0xFF, 0x05, 0x48}
	var a, b []int
	fromTokens.Scan(data, func(o int) bool { a = append(a, o); return true })
	fromMask.Scan(data, func(o int) bool { b = append(b, o); return true })
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("match sets diverge (-token +mask):\n%s", diff)
	}
}

func TestString(t *testing.T) {
	p, err := Parse("de AD ?? ef")
	if err != nil {
		t.Fatalf("Parse error = %v", err)
	}
	if got, want := p.String(), "DE AD ?? EF"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []byte
	}{
		{"plain", "abc", []byte("abc")},
		{"hex escapes", `\x48\x8B\x05`, []byte{0x48, 0x8B, 0x05}},
		{"single digit hex", `\x5!`, []byte{0x05, '!'}},
		{"mixed", `A\x00B`, []byte{'A', 0x00, 'B'}},
		{"control escapes", `\n\r\t\0`, []byte{'\n', '\r', '\t', 0}},
		{"escaped backslash", `\\x41`, []byte{'\\', 'x', '4', '1'}},
		{"trailing backslash", `A\`, []byte{'A', '\\'}},
		{"bare x escape", `\xZZ`, []byte{'x', 'Z', 'Z'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Unescape(tt.in)); diff != "" {
				t.Errorf("Unescape(%q) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}
