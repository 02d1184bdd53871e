package h264

// Framing tells the scanner how NAL units are delimited inside a buffer.
type Framing int

const (
	// FramingAuto guesses between the two formats: when the first 4 bytes,
	// read as a big-endian unsigned integer, form a value strictly between 0
	// and the buffer length, the buffer is treated as length-prefixed.
	// Hosts that know their framing should pass it explicitly instead.
	FramingAuto Framing = iota
	// FramingAnnexB delimits NAL units with 00 00 01 / 00 00 00 01 start codes.
	FramingAnnexB
	// FramingLengthPrefixed delimits NAL units with 4-byte big-endian lengths,
	// as produced by some depayloaders.
	FramingLengthPrefixed
)

// NalUnit is a transient view into a scanned buffer. Offsets are only
// meaningful against the buffer the scanner was created with.
type NalUnit struct {
	// StartOffset is the first byte of the start code (or length prefix).
	StartOffset int
	// PayloadOffset is the NAL header byte, right after the start code.
	PayloadOffset int
	// EndOffset is one past the last payload byte.
	EndOffset int
	// StartCodeLength is 3 or 4 (always 4 for length-prefixed buffers).
	StartCodeLength int

	Type NALUnitType
}

// RBSPBytes returns the emulation-prevented payload after the NAL header.
func (n NalUnit) RBSPBytes(data []byte) []byte {
	if n.PayloadOffset+1 >= n.EndOffset {
		return nil
	}
	return data[n.PayloadOffset+1 : n.EndOffset]
}

// IsVCL reports whether the unit is a coded slice.
func (n NalUnit) IsVCL() bool {
	return n.Type == CodedSliceNonIDRPicture || n.Type == CodedSliceIDRPicture
}

type NALUnitType byte

const (
	// Rec. ITU-T H.264 (08/2021) p.65
	Unspecified0                       = NALUnitType(0)  //	Unspecified
	CodedSliceNonIDRPicture            = NALUnitType(1)  //	Coded slice of a non-IDR picture
	CodedSliceDataPartitionA           = NALUnitType(2)  //	Coded slice data partition A
	CodedSliceDataPartitionB           = NALUnitType(3)  //	Coded slice data partition B
	CodedSliceDataPartitionC           = NALUnitType(4)  //	Coded slice data partition C
	CodedSliceIDRPicture               = NALUnitType(5)  //	Coded slice of an IDR picture
	SupplementalEnhancementInformation = NALUnitType(6)  //	Supplemental enhancement information (SEI)
	SequenceParameterSet               = NALUnitType(7)  //	Sequence parameter set
	PictureParameterSet                = NALUnitType(8)  //	Picture parameter set
	AccessUnitDelimiter                = NALUnitType(9)  //	Access unit delimiter
	EndOfSequence                      = NALUnitType(10) //	End of sequence
	EndOfStream                        = NALUnitType(11) //	End of stream
	FillerData                         = NALUnitType(12) //	Filler data
	SequenceParameterSetExtension      = NALUnitType(13) //	Sequence parameter set extension
	PrefixNALUnit                      = NALUnitType(14) //	Prefix NAL unit
	SubsetSequenceParameterSet         = NALUnitType(15) //	Subset sequence parameter set
)
