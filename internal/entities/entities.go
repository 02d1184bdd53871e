package entities

import (
	"github.com/asticode/go-astits"
	"github.com/google/uuid"
)

const (
	MetadataChannelID string = "metadata"

	// FrameIndexKey is the reserved metadata key carrying the running frame
	// index merged in by the injector.
	FrameIndexKey string = "frame"
)

// MetadataRecord is the application payload carried inside a SEI message:
// a JSON object of arbitrary (JSON-serializable) values.
type MetadataRecord map[string]interface{}

type MessageType string

const (
	MessageTypeMetadata MessageType = "metadata"
)

type Message struct {
	Type    MessageType
	Message string
}

// Cue is what gets published on the metadata channel: one extracted record,
// stamped with the PTS of the PES packet it rode in on.
type Cue struct {
	Type      string
	StartTime int64
	Text      string
}

type Codec string
type MediaType string

const (
	UnknownCodec Codec = "unknownCodec"
	H264         Codec = "h264"
	H265         Codec = "h265"
	AAC          Codec = "aac"
)

const (
	UnknownType MediaType = "unknownMediaType"
	VideoType   MediaType = "video"
	AudioType   MediaType = "audio"
)

type Stream struct {
	Codec Codec
	Type  MediaType
	Id    uint16
}

type StreamInfo struct {
	Streams []Stream
}

func (s *StreamInfo) VideoStreams() []Stream {
	var result []Stream
	for _, st := range s.Streams {
		if st.Type == VideoType {
			result = append(result, st)
		}
	}
	return result
}

// MetadataSink receives extracted metadata messages, typically backed by a
// WebRTC data channel.
type MetadataSink interface {
	SendText(text string) error
}

type StreamParameters struct {
	StreamInfo    *StreamInfo
	MetadataTrack MetadataSink
}

// StreamMiddleware acts on each demuxed mpeg-ts unit of a stream.
type StreamMiddleware interface {
	Act(mpegTSDemuxData *astits.DemuxerData, sp *StreamParameters) error
}

type Config struct {
	HTTPPort       int32  `required:"true" default:"8080"`
	HTTPHost       string `required:"true" default:"0.0.0.0"`
	PproffHTTPPort int32  `required:"true" default:"6060"`

	// SEIUUID identifies this application's user_data_unregistered payloads.
	// Sender and receiver must agree on it or extraction silently finds
	// nothing. Accepts an RFC-4122 UUID string or a raw 16-character tag.
	SEIUUID string `required:"true" default:"12345678-1234-1234-1234-1234567890ab"`

	// InjectEveryNFrames additionally injects on every Nth frame.
	// 0 means keyframes only.
	InjectEveryNFrames int `default:"0"`
}

// SEIUUIDBytes validates and resolves the configured UUID. It fails here, at
// configuration time, never per-frame.
func (c *Config) SEIUUIDBytes() ([16]byte, error) {
	if u, err := uuid.Parse(c.SEIUUID); err == nil {
		return u, nil
	}
	if len(c.SEIUUID) == 16 {
		var out [16]byte
		copy(out[:], c.SEIUUID)
		return out, nil
	}
	return [16]byte{}, ErrInvalidSEIUUID
}
