package mapper

import (
	"encoding/json"

	"github.com/asticode/go-astits"
	"go.uber.org/zap"

	"github.com/seicast/seicast/internal/entities"
)

type Mapper struct {
	l *zap.SugaredLogger
}

func NewMapper(l *zap.SugaredLogger) *Mapper {
	return &Mapper{l: l}
}

func (m *Mapper) FromMpegTsStreamTypeToCodec(st astits.StreamType) entities.Codec {
	if st == astits.StreamTypeH264Video {
		return entities.H264
	}
	if st == astits.StreamTypeH265Video {
		return entities.H265
	}
	if st == astits.StreamTypeAACAudio {
		return entities.AAC
	}
	m.l.Infow("unmapped mpeg-ts stream type", "streamType", st)
	return entities.UnknownCodec
}

func (m *Mapper) FromMpegTsStreamTypeToType(st astits.StreamType) entities.MediaType {
	if st.IsVideo() {
		return entities.VideoType
	}
	if st.IsAudio() {
		return entities.AudioType
	}
	return entities.UnknownType
}

func (m *Mapper) FromElementaryStreamToEntityStream(es *astits.PMTElementaryStream) entities.Stream {
	return entities.Stream{
		Codec: m.FromMpegTsStreamTypeToCodec(es.StreamType),
		Type:  m.FromMpegTsStreamTypeToType(es.StreamType),
		Id:    es.ElementaryPID,
	}
}

// FromRecordToEntityCue wraps one extracted metadata record for the metadata
// channel, stamped with the PES presentation timestamp when there is one.
func (m *Mapper) FromRecordToEntityCue(rec entities.MetadataRecord, pts *astits.ClockReference) (entities.Cue, error) {
	text, err := json.Marshal(rec)
	if err != nil {
		return entities.Cue{}, err
	}
	cue := entities.Cue{
		Type: string(entities.MessageTypeMetadata),
		Text: string(text),
	}
	if pts != nil {
		cue.StartTime = pts.Base
	}
	return cue, nil
}

// FromCueToMetadataMessage wraps a cue in the envelope published on the
// metadata channel.
func (m *Mapper) FromCueToMetadataMessage(cue entities.Cue) (string, error) {
	text, err := json.Marshal(cue)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(entities.Message{
		Type:    entities.MessageTypeMetadata,
		Message: string(text),
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
