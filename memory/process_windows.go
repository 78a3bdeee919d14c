//go:build windows

package memory

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Userland addresses on 64-bit Windows end here.
const maxProcessAddress = 0x7FFF_FFFF_FFFF

// ProcessSpace implements AddressSpace over the memory of a live process.
// Committed, readable regions become segments; everything else is a gap.
type ProcessSpace struct {
	pid    uint32
	handle windows.Handle
}

// OpenProcess attaches to the process with the given ID for reading.
func OpenProcess(pid uint32) (*ProcessSpace, error) {
	handle, err := windows.OpenProcess(
		windows.PROCESS_VM_READ|windows.PROCESS_QUERY_INFORMATION,
		false,
		pid,
	)
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", pid, err)
	}
	return &ProcessSpace{pid: pid, handle: handle}, nil
}

// Pid returns the attached process ID.
func (p *ProcessSpace) Pid() uint32 {
	return p.pid
}

// Close releases the process handle.
func (p *ProcessSpace) Close() error {
	if p.handle != 0 {
		windows.CloseHandle(p.handle)
		p.handle = 0
	}
	return nil
}

// Segments walks the process address space with VirtualQueryEx and returns
// one segment per committed readable region, in ascending address order.
func (p *ProcessSpace) Segments() []Segment {
	var segs []Segment
	var mbi windows.MemoryBasicInformation

	addr := uint64(0)
	for addr < maxProcessAddress {
		err := windows.VirtualQueryEx(p.handle, uintptr(addr), &mbi, unsafe.Sizeof(mbi))
		if err != nil {
			break
		}

		base := uint64(mbi.BaseAddress)
		size := uint64(mbi.RegionSize)

		if readableRegion(&mbi) {
			segs = append(segs, Segment{Start: base, Length: size})
		}

		addr = base + size
		if size == 0 {
			addr++
		}
	}

	return segs
}

// ReadMemory implements AddressSpace. ReadProcessMemory may return fewer
// bytes than requested near region boundaries; the short count is returned
// without error.
func (p *ProcessSpace) ReadMemory(addr uint64, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}

	var bytesRead uintptr
	err := windows.ReadProcessMemory(p.handle, uintptr(addr), &buf[0], uintptr(len(buf)), &bytesRead)
	if err != nil && bytesRead == 0 {
		return 0, fmt.Errorf("read process %d memory at 0x%X: %w", p.pid, addr, err)
	}

	return int(bytesRead), nil
}

func readableRegion(mbi *windows.MemoryBasicInformation) bool {
	readable := mbi.Protect&(windows.PAGE_READONLY|windows.PAGE_READWRITE|
		windows.PAGE_EXECUTE_READ|windows.PAGE_EXECUTE_READWRITE) != 0
	return readable && mbi.State == windows.MEM_COMMIT
}
