package h264

// EmulationPreventionEncode escapes a raw byte sequence payload so it can be
// carried inside a NAL unit: whenever two consecutive zero bytes are followed
// by a byte valued 0x00-0x03, an emulation prevention byte 0x03 is inserted
// before it.
//
//	0x00 0x00 0x00 -> 0x00 0x00 0x03 0x00
//	0x00 0x00 0x01 -> 0x00 0x00 0x03 0x01
//	0x00 0x00 0x02 -> 0x00 0x00 0x03 0x02
//	0x00 0x00 0x03 -> 0x00 0x00 0x03 0x03
func EmulationPreventionEncode(rbsp []byte) []byte {
	out := make([]byte, 0, len(rbsp)+len(rbsp)/16+4)
	zeros := 0
	for _, b := range rbsp {
		if zeros >= 2 && b <= 0x03 {
			out = append(out, 0x03)
			zeros = 0
		}
		out = append(out, b)
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

// EmulationPreventionDecode removes emulation prevention bytes: a 0x03
// following two consecutive zero bytes is dropped, and the zero run resets so
// the byte after it is taken as real data.
func EmulationPreventionDecode(rbsp []byte) []byte {
	out := make([]byte, 0, len(rbsp))
	zeros := 0
	for _, b := range rbsp {
		if zeros >= 2 && b == 0x03 {
			zeros = 0
			continue
		}
		out = append(out, b)
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}
