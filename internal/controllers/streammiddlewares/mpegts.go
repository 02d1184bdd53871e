package streammiddlewares

import (
	"encoding/json"

	"github.com/asticode/go-astits"
	"go.uber.org/fx"

	"github.com/seicast/seicast/internal/controllers"
	"github.com/seicast/seicast/internal/entities"
	"github.com/seicast/seicast/internal/mapper"
)

type seiMetadataMiddleware struct {
	extractor *controllers.SEIExtractorController
	m         *mapper.Mapper

	lastKey string
}

type SEIMetadataResponse struct {
	fx.Out
	SEIMetadataMiddleware entities.StreamMiddleware `group:"middlewares"`
}

// NewSEIMetadata creates a middleware that surfaces SEI metadata records from
// mpeg-ts to the metadata channel.
func NewSEIMetadata(extractor *controllers.SEIExtractorController, m *mapper.Mapper) SEIMetadataResponse {
	return SEIMetadataResponse{
		SEIMetadataMiddleware: &seiMetadataMiddleware{extractor: extractor, m: m},
	}
}

// Act keeps the stream info current from PMT data and extracts metadata from
// h264 PES payloads. The injector re-emits the same record on every keyframe,
// so consecutive duplicates are suppressed here, on the consuming side.
func (s *seiMetadataMiddleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if mpegTSDemuxData.PMT != nil {
		var streams []entities.Stream
		for _, es := range mpegTSDemuxData.PMT.ElementaryStreams {
			streams = append(streams, s.m.FromElementaryStreamToEntityStream(es))
		}
		sp.StreamInfo.Streams = streams
	}

	if mpegTSDemuxData.PES == nil {
		return nil
	}

	for _, v := range sp.StreamInfo.VideoStreams() {
		if v.Codec != entities.H264 || v.Id != mpegTSDemuxData.PID {
			continue
		}

		var pts *astits.ClockReference
		if mpegTSDemuxData.PES.Header != nil && mpegTSDemuxData.PES.Header.OptionalHeader != nil {
			pts = mpegTSDemuxData.PES.Header.OptionalHeader.PTS
		}

		for _, rec := range s.extractor.Extract(mpegTSDemuxData.PES.Data) {
			key, err := recordKey(rec)
			if err != nil {
				return err
			}
			if key == s.lastKey {
				continue
			}
			s.lastKey = key

			cue, err := s.m.FromRecordToEntityCue(rec, pts)
			if err != nil {
				return err
			}
			msg, err := s.m.FromCueToMetadataMessage(cue)
			if err != nil {
				return err
			}
			if err := sp.MetadataTrack.SendText(msg); err != nil {
				return err
			}
		}
	}
	return nil
}

// recordKey identifies a record for duplicate suppression. The injector
// merges a running frame index into every record, so that key is left out of
// the comparison.
func recordKey(rec entities.MetadataRecord) (string, error) {
	if _, ok := rec[entities.FrameIndexKey]; ok {
		stripped := make(entities.MetadataRecord, len(rec))
		for k, v := range rec {
			if k != entities.FrameIndexKey {
				stripped[k] = v
			}
		}
		rec = stripped
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
