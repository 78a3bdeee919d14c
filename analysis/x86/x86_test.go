package x86

import (
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		bits     int
		wantName string
		wantErr  bool
	}{
		{64, "x86_64", false},
		{32, "x86", false},
		{16, "", true},
		{0, "", true},
	}

	for _, tt := range tests {
		a, err := New(tt.bits)
		if (err != nil) != tt.wantErr {
			t.Errorf("New(%d) error = %v, wantErr %v", tt.bits, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if a.Name() != tt.wantName {
			t.Errorf("New(%d).Name() = %q, want %q", tt.bits, a.Name(), tt.wantName)
		}
		if a.MaxInstructionLength() != 15 {
			t.Errorf("MaxInstructionLength() = %d, want 15", a.MaxInstructionLength())
		}
	}
}

func TestDecode(t *testing.T) {
	a, err := New(64)
	if err != nil {
		t.Fatalf("New(64) error = %v", err)
	}

	tests := []struct {
		name       string
		buf        []byte
		wantLen    int
		wantPrefix string
	}{
		{"nop", []byte{0x90}, 1, "nop"},
		{"mov rax rbx", []byte{0x48, 0x89, 0xD8}, 3, "mov"},
		{"ret", []byte{0xC3}, 1, "ret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst, err := a.Decode(tt.buf, 0x1000)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if inst.Length != tt.wantLen {
				t.Errorf("Length = %d, want %d", inst.Length, tt.wantLen)
			}
			if !strings.HasPrefix(strings.ToLower(inst.Text), tt.wantPrefix) {
				t.Errorf("Text = %q, want prefix %q", inst.Text, tt.wantPrefix)
			}
		})
	}
}

func TestDecode_Invalid(t *testing.T) {
	a, err := New(64)
	if err != nil {
		t.Fatalf("New(64) error = %v", err)
	}
	if _, err := a.Decode(nil, 0); err == nil {
		t.Error("Decode(nil) expected error")
	}
}
