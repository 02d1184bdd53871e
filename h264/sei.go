package h264

import (
	"bytes"
	"encoding/json"

	"github.com/seicast/seicast/internal/entities"
)

// PayloadTypeUserDataUnregistered is the only SEI payload type this package
// builds or extracts.
const PayloadTypeUserDataUnregistered = 5

// seiNALHeader is forbidden_zero_bit=0, nal_ref_idc=0, nal_unit_type=6.
const seiNALHeader = 0x06

var startCode4 = []byte{0x00, 0x00, 0x00, 0x01}

// BuildUserDataUnregisteredSEI builds a complete SEI NAL unit, start code
// included, carrying uuid and body as a single user_data_unregistered
// message. Rec. ITU-T H.264 7.3.2.3.1: payload type and size use 0xFF
// extension coding; the type is always the single byte 0x05 here since 5 < 255.
func BuildUserDataUnregisteredSEI(uuid [16]byte, body []byte) []byte {
	size := len(uuid) + len(body)

	rbsp := make([]byte, 0, size+8)
	rbsp = append(rbsp, PayloadTypeUserDataUnregistered)
	for ; size >= 255; size -= 255 {
		rbsp = append(rbsp, 0xff)
	}
	rbsp = append(rbsp, byte(size))
	rbsp = append(rbsp, uuid[:]...)
	rbsp = append(rbsp, body...)
	rbsp = append(rbsp, 0x80) // rbsp_trailing_bits: stop bit, byte-aligned
	rbsp = EmulationPreventionEncode(rbsp)

	out := make([]byte, 0, len(startCode4)+1+len(rbsp))
	out = append(out, startCode4...)
	out = append(out, seiNALHeader)
	out = append(out, rbsp...)
	return out
}

// ExtractUserDataUnregistered scans data for SEI NAL units and returns every
// metadata record whose UUID matches wantUUID, in bitstream order. Malformed
// NAL units, foreign UUIDs and bodies that fail to decode as JSON are skipped
// silently: this runs over live, possibly lossy captures and must degrade
// rather than abort.
func ExtractUserDataUnregistered(data []byte, f Framing, wantUUID [16]byte) []entities.MetadataRecord {
	var records []entities.MetadataRecord

	s := NewScanner(data, f)
	for u, ok := s.Next(); ok; u, ok = s.Next() {
		if u.Type != SupplementalEnhancementInformation {
			continue
		}
		rbsp := EmulationPreventionDecode(u.RBSPBytes(data))
		for _, msg := range parseSEIMessages(rbsp) {
			if msg.payloadType != PayloadTypeUserDataUnregistered || len(msg.payload) < 16 {
				continue
			}
			if !bytes.Equal(msg.payload[:16], wantUUID[:]) {
				continue
			}
			body := bytes.TrimRight(msg.payload[16:], "\x00\x80")
			var rec entities.MetadataRecord
			if err := json.Unmarshal(body, &rec); err != nil {
				continue
			}
			records = append(records, rec)
		}
	}
	return records
}

type seiMessage struct {
	payloadType int
	payloadSize int
	payload     []byte
}

// parseSEIMessages iterates the (payloadType, payloadSize, payload) tuples of
// a decoded SEI RBSP. It stops at the rbsp_trailing_bits byte or as soon as
// the coding runs past the buffer, abandoning the remainder.
func parseSEIMessages(rbsp []byte) []seiMessage {
	var msgs []seiMessage
	i := 0
	for i < len(rbsp) {
		pt, next, ok := readFFCoded(rbsp, i)
		if !ok {
			break
		}
		ps, next, ok := readFFCoded(rbsp, next)
		if !ok || next+ps > len(rbsp) {
			break
		}
		msgs = append(msgs, seiMessage{
			payloadType: pt,
			payloadSize: ps,
			payload:     rbsp[next : next+ps],
		})
		i = next + ps
	}
	return msgs
}

// readFFCoded reads one 0xFF-extension-coded value: accumulate 255 per 0xFF
// byte, then add the final byte.
func readFFCoded(b []byte, i int) (v, next int, ok bool) {
	for i < len(b) && b[i] == 0xff {
		v += 255
		i++
	}
	if i >= len(b) {
		return 0, i, false
	}
	return v + int(b[i]), i + 1, true
}
