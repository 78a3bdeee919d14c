//go:build !windows

package memory

// ProcessSpace is a stub on non-Windows platforms; OpenProcess always fails
// with ErrUnsupported.
type ProcessSpace struct{}

// OpenProcess fails with ErrUnsupported.
func OpenProcess(pid uint32) (*ProcessSpace, error) {
	return nil, ErrUnsupported
}

// Pid returns 0.
func (p *ProcessSpace) Pid() uint32 { return 0 }

// Close is a no-op.
func (p *ProcessSpace) Close() error { return nil }

// Segments returns nil.
func (p *ProcessSpace) Segments() []Segment { return nil }

// ReadMemory fails with ErrUnsupported.
func (p *ProcessSpace) ReadMemory(addr uint64, buf []byte) (int, error) {
	return 0, ErrUnsupported
}
