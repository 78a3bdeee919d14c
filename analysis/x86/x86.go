// Package x86 implements the analysis.Architecture interface for x86 and
// x86-64 using the golang.org/x/arch decoder.
package x86

import (
	"fmt"

	"golang.org/x/arch/x86/x86asm"

	"binpat/analysis"
)

// x86 instruction encodings never exceed 15 bytes.
const maxInstructionLength = 15

// Arch decodes x86 family instructions in 32- or 64-bit mode.
type Arch struct {
	bits int
}

// New creates an architecture backend for the given mode (32 or 64).
func New(bits int) (*Arch, error) {
	if bits != 32 && bits != 64 {
		return nil, fmt.Errorf("unsupported x86 mode: %d", bits)
	}
	return &Arch{bits: bits}, nil
}

// Name implements analysis.Architecture.
func (a *Arch) Name() string {
	if a.bits == 32 {
		return "x86"
	}
	return "x86_64"
}

// MaxInstructionLength implements analysis.Architecture.
func (a *Arch) MaxInstructionLength() int {
	return maxInstructionLength
}

// Decode decodes the instruction at the start of buf and renders it in
// Intel syntax.
func (a *Arch) Decode(buf []byte, addr uint64) (analysis.Instruction, error) {
	inst, err := x86asm.Decode(buf, a.bits)
	if err != nil {
		return analysis.Instruction{}, fmt.Errorf("decode at 0x%X: %w", addr, err)
	}
	return analysis.Instruction{
		Length: inst.Len,
		Text:   x86asm.IntelSyntax(inst, addr, nil),
	}, nil
}
