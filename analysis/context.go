package analysis

// InstructionAt walks the block from its start, decoding one instruction at
// a time, until it finds the instruction covering addr, and returns its
// display text. It returns "" when decoding fails or nothing in the block
// covers the address; a missing context line is not an error.
func InstructionAt(v View, block Block, addr uint64) string {
	arch := block.Arch
	if arch == nil {
		arch = v.DefaultArchitecture()
	}
	if arch == nil {
		return ""
	}

	buf := make([]byte, arch.MaxInstructionLength())

	for i := block.Start; i < block.End; {
		n, err := v.ReadMemory(i, buf)
		if err != nil || n == 0 {
			return ""
		}

		inst, err := arch.Decode(buf[:n], i)
		if err != nil || inst.Length <= 0 {
			return ""
		}

		if addr >= i && addr < i+uint64(inst.Length) {
			return inst.Text
		}

		i += uint64(inst.Length)
	}

	return ""
}
