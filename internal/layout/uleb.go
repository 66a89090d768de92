package layout

// DWARF expression opcodes accepted as member offset expressions.
const (
	opPlusUconst = 0x23 // DW_OP_plus_uconst
	opConstu     = 0x10 // DW_OP_constu
)

// DecodeULEB128 decodes one unsigned LEB128 value from the front of b:
// little-endian groups of 7 bits, continuation flagged in bit 7 of each
// byte. It returns the value and the number of bytes consumed, or n=0
// when b ends before a terminating byte. Values wider than 64 bits
// overflow silently; that matches the producer-side encoders this tool
// reads and is a known limitation.
func DecodeULEB128(b []byte) (v uint64, n int) {
	var shift uint
	for i, c := range b {
		v |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return v, i + 1
		}
		shift += 7
	}
	return 0, 0
}

// AppendULEB128 appends the canonical minimal-length LEB128 encoding of
// v to dst and returns the extended slice.
func AppendULEB128(dst []byte, v uint64) []byte {
	for {
		c := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			c |= 0x80
		}
		dst = append(dst, c)
		if v == 0 {
			return dst
		}
	}
}
