package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/asticode/go-astits"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/seicast/seicast/internal/entities"
)

// ExtractMpegTSHandler runs the stream middlewares over an uploaded mpeg-ts
// capture and returns everything they published to the metadata channel.
// Useful for digging metadata out of recorded transport streams offline.
type ExtractMpegTSHandler struct {
	l           *zap.SugaredLogger
	middlewares []entities.StreamMiddleware
}

type ExtractMpegTSParams struct {
	fx.In
	L           *zap.SugaredLogger
	Middlewares []entities.StreamMiddleware `group:"middlewares"`
}

func NewExtractMpegTSHandler(p ExtractMpegTSParams) *ExtractMpegTSHandler {
	return &ExtractMpegTSHandler{
		l:           p.L,
		middlewares: p.Middlewares,
	}
}

type ExtractMpegTSResponse struct {
	Messages []string
}

func (h *ExtractMpegTSHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return entities.ErrHTTPPostOnly
	}

	ts, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(ts) == 0 {
		return entities.ErrMissingPayload
	}

	sink := &collectingSink{}
	sp := &entities.StreamParameters{
		StreamInfo:    &entities.StreamInfo{},
		MetadataTrack: sink,
	}

	dmx := astits.NewDemuxer(r.Context(), bytes.NewReader(ts))
	for {
		d, err := dmx.NextData()
		if err != nil {
			// end of capture, or garbage past this point
			break
		}
		for _, mw := range h.middlewares {
			if err := mw.Act(d, sp); err != nil {
				return err
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(ExtractMpegTSResponse{Messages: sink.messages})
}

type collectingSink struct {
	messages []string
}

func (c *collectingSink) SendText(text string) error {
	c.messages = append(c.messages, text)
	return nil
}
