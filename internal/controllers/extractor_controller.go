package controllers

import (
	"go.uber.org/zap"

	"github.com/seicast/seicast/h264"
	"github.com/seicast/seicast/internal/entities"
)

// SEIExtractorController recovers metadata records injected by a matching
// SEIInjectorController from raw bitstream buffers. Safe for concurrent use,
// it holds no mutable state.
type SEIExtractorController struct {
	c *entities.Config
	l *zap.SugaredLogger

	uuid [16]byte
}

func NewSEIExtractorController(
	c *entities.Config,
	l *zap.SugaredLogger,
) (*SEIExtractorController, error) {
	u, err := c.SEIUUIDBytes()
	if err != nil {
		return nil, err
	}
	return &SEIExtractorController{c: c, l: l, uuid: u}, nil
}

// Extract returns every matching metadata record in the buffer, guessing the
// framing. The same record typically rides on every keyframe, so callers
// consuming frame-by-frame are expected to de-duplicate.
func (s *SEIExtractorController) Extract(data []byte) []entities.MetadataRecord {
	return h264.ExtractUserDataUnregistered(data, h264.FramingAuto, s.uuid)
}

// ExtractWithFraming is Extract for hosts that know how their buffers are
// delimited and don't want the heuristic.
func (s *SEIExtractorController) ExtractWithFraming(data []byte, f h264.Framing) []entities.MetadataRecord {
	return h264.ExtractUserDataUnregistered(data, f, s.uuid)
}
