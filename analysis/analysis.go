// Package analysis defines the host collaborator interfaces the scanner
// consumes: a view of the analysed binary with code-block and architecture
// lookups, and per-architecture instruction decoding. The scanner core never
// depends on a concrete backend; each backend implements these interfaces
// once.
package analysis

import "binpat/memory"

// Instruction is one decoded instruction: its byte length and display text.
type Instruction struct {
	Length int
	Text   string
}

// Architecture decodes instructions for one machine architecture.
type Architecture interface {
	// Name identifies the architecture, e.g. "x86_64".
	Name() string

	// MaxInstructionLength is the longest possible instruction encoding,
	// used to size read buffers when walking code.
	MaxInstructionLength() int

	// Decode decodes the instruction at the start of buf. addr is the
	// instruction's address, used for address-relative operand text.
	Decode(buf []byte, addr uint64) (Instruction, error)
}

// Block is a basic block of analysed code covering [Start, End).
type Block struct {
	Start uint64
	End   uint64

	// Function is the display name of the enclosing function.
	Function string

	// Arch decodes this block's instructions.
	Arch Architecture
}

// View is the host analysis environment's view of the binary under scan.
type View interface {
	memory.AddressSpace

	// BlocksAt returns the basic blocks covering addr, empty when the
	// address is not inside analysed code.
	BlocksAt(addr uint64) []Block

	// DefaultArchitecture returns the view's architecture, nil when
	// unknown.
	DefaultArchitecture() Architecture

	// ExecutableAt reports whether addr lies in an executable region.
	ExecutableAt(addr uint64) bool
}

// Reporter displays a rendered report to the user.
type Reporter interface {
	ShowReport(title, contents string)
}

// CanCreateSignature is the applicability predicate for the signature
// command: only offered on x86/x86-64 views at executable addresses.
// Signature generation itself lives with the host.
func CanCreateSignature(v View, addr uint64) bool {
	arch := v.DefaultArchitecture()
	if arch == nil {
		return false
	}
	if name := arch.Name(); name != "x86" && name != "x86_64" {
		return false
	}
	return v.ExecutableAt(addr)
}
