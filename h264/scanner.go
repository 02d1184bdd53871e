package h264

import (
	"bytes"
	"encoding/binary"
)

var startCode3 = []byte{0x00, 0x00, 0x01}

// Scanner walks the NAL units of a single buffer. It is a forward-only
// cursor: once exhausted it stays exhausted, and re-scanning a buffer means
// creating a new Scanner. Truncated trailing data ends the sequence silently,
// it is never an error.
type Scanner struct {
	data    []byte
	framing Framing
	pos     int
	done    bool
}

// NewScanner creates a scanner over data. FramingAuto applies the
// length-prefix heuristic once, up front.
func NewScanner(data []byte, f Framing) *Scanner {
	if f == FramingAuto {
		f = DetectFraming(data)
	}
	return &Scanner{data: data, framing: f}
}

// DetectFraming guesses how a buffer is delimited. A leading start code wins
// outright: a 4-byte start code would otherwise read as length 1 and
// misclassify every Annex-B access unit. Beyond that the heuristic can still
// misread Annex-B data whose first bytes happen to form a plausible length,
// so hosts that know their framing should not rely on it.
func DetectFraming(data []byte) Framing {
	if start, _ := findStartCode(data, 0); start == 0 {
		return FramingAnnexB
	}
	if len(data) > 4 {
		if l := binary.BigEndian.Uint32(data[:4]); l > 0 && int(l) < len(data) {
			return FramingLengthPrefixed
		}
	}
	return FramingAnnexB
}

// Next returns the next NAL unit view, or ok=false once the buffer is
// exhausted or the remaining bytes are too short to form a unit.
func (s *Scanner) Next() (NalUnit, bool) {
	if s.done {
		return NalUnit{}, false
	}
	if s.framing == FramingLengthPrefixed {
		return s.nextLengthPrefixed()
	}
	return s.nextAnnexB()
}

func (s *Scanner) nextAnnexB() (NalUnit, bool) {
	start, sc := findStartCode(s.data, s.pos)
	if start == -1 || start+sc >= len(s.data) {
		s.done = true
		return NalUnit{}, false
	}

	payload := start + sc
	end := len(s.data)
	if k := bytes.Index(s.data[payload:], startCode3); k != -1 {
		k += payload
		// prefer the 4-byte form: the zero before 00 00 01 belongs to the
		// next start code, not to this unit's payload
		if k > payload && s.data[k-1] == 0x00 {
			k--
		}
		end = k
	}
	s.pos = end

	return NalUnit{
		StartOffset:     start,
		PayloadOffset:   payload,
		EndOffset:       end,
		StartCodeLength: sc,
		Type:            NALUnitType(s.data[payload] & 0x1f),
	}, true
}

func (s *Scanner) nextLengthPrefixed() (NalUnit, bool) {
	if s.pos+4 > len(s.data) {
		s.done = true
		return NalUnit{}, false
	}
	n := int(binary.BigEndian.Uint32(s.data[s.pos : s.pos+4]))
	if n <= 0 || s.pos+4+n > len(s.data) {
		s.done = true
		return NalUnit{}, false
	}

	start := s.pos
	payload := start + 4
	s.pos = payload + n

	return NalUnit{
		StartOffset:     start,
		PayloadOffset:   payload,
		EndOffset:       payload + n,
		StartCodeLength: 4,
		Type:            NALUnitType(s.data[payload] & 0x1f),
	}, true
}

// findStartCode locates the next 00 00 01 at or after pos, stepping back one
// byte when a leading zero turns it into the 4-byte form.
func findStartCode(data []byte, pos int) (int, int) {
	j := bytes.Index(data[pos:], startCode3)
	if j == -1 {
		return -1, 0
	}
	j += pos
	if j > 0 && data[j-1] == 0x00 {
		return j - 1, 4
	}
	return j, 3
}

// ScanAll collects every NAL unit of the buffer.
func ScanAll(data []byte, f Framing) []NalUnit {
	s := NewScanner(data, f)
	var units []NalUnit
	for u, ok := s.Next(); ok; u, ok = s.Next() {
		units = append(units, u)
	}
	return units
}
