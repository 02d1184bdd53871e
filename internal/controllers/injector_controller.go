package controllers

import (
	"encoding/json"

	"github.com/pion/webrtc/v3/pkg/media"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/seicast/seicast/h264"
	"github.com/seicast/seicast/internal/entities"
)

// SEIInjectorController splices metadata into H.264 access units as
// user_data_unregistered SEI messages. Hosts must own one instance per
// logical stream: the frame counter is per-instance state.
type SEIInjectorController struct {
	c *entities.Config
	l *zap.SugaredLogger

	uuid     [16]byte
	everyN   int
	frameIdx atomic.Uint64
}

func NewSEIInjectorController(
	c *entities.Config,
	l *zap.SugaredLogger,
) (*SEIInjectorController, error) {
	u, err := c.SEIUUIDBytes()
	if err != nil {
		return nil, err
	}
	return &SEIInjectorController{
		c:      c,
		l:      l,
		uuid:   u,
		everyN: c.InjectEveryNFrames,
	}, nil
}

// Inject returns data with a SEI NAL unit spliced in before the first coded
// slice, carrying meta plus the running frame index under the reserved
// "frame" key. Frames that don't qualify for injection (non-keyframes,
// unless the every-N cadence hits) are returned untouched, same backing
// array. The counter advances on every call, qualifying or not.
//
// The only error path is metadata that cannot be JSON-marshaled, which is a
// caller bug; malformed video data never errors.
func (s *SEIInjectorController) Inject(data []byte, isKeyframe bool, meta entities.MetadataRecord) ([]byte, error) {
	idx := s.frameIdx.Inc()

	if !isKeyframe && (s.everyN <= 0 || idx%uint64(s.everyN) != 0) {
		return data, nil
	}

	merged := make(entities.MetadataRecord, len(meta)+1)
	for k, v := range meta {
		merged[k] = v
	}
	merged[entities.FrameIndexKey] = idx

	payload, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}

	sei := h264.BuildUserDataUnregisteredSEI(s.uuid, payload)
	at := h264.FindInsertionPoint(h264.ScanAll(data, h264.FramingAnnexB))

	out := make([]byte, 0, len(data)+len(sei))
	out = append(out, data[:at]...)
	out = append(out, sei...)
	out = append(out, data[at:]...)

	s.l.Debugw("injected SEI metadata",
		"frame", idx,
		"keyframe", isKeyframe,
		"offset", at,
		"seiSize", len(sei),
	)
	return out, nil
}

// InjectSample is Inject for pion media samples. Everything but the payload
// bytes (timestamp, duration, packet timestamp) is carried over verbatim.
func (s *SEIInjectorController) InjectSample(sample media.Sample, isKeyframe bool, meta entities.MetadataRecord) (media.Sample, error) {
	data, err := s.Inject(sample.Data, isKeyframe, meta)
	if err != nil {
		return sample, err
	}
	sample.Data = data
	return sample, nil
}
