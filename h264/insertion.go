package h264

// FindInsertionPoint chooses a safe byte offset at which a new SEI NAL unit
// can be spliced into an access unit: after any leading AUD/SEI/SPS/PPS, and
// right before the first coded slice so decoders see it as in-band SEI for
// that access unit. An access unit that starts directly with a slice yields
// 0, and so does a buffer with no recognizable NAL units at all.
func FindInsertionPoint(units []NalUnit) int {
	at := 0
	for _, u := range units {
		if u.IsVCL() {
			return u.StartOffset
		}
		at = u.EndOffset
	}
	return at
}
