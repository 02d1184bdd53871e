package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/seicast/seicast/h264"
	"github.com/seicast/seicast/internal/controllers"
	"github.com/seicast/seicast/internal/entities"
)

type ExtractHandler struct {
	l         *zap.SugaredLogger
	extractor *controllers.SEIExtractorController
}

func NewExtractHandler(
	l *zap.SugaredLogger,
	extractor *controllers.SEIExtractorController,
) *ExtractHandler {
	return &ExtractHandler{
		l:         l,
		extractor: extractor,
	}
}

type ExtractRequest struct {
	// Payload is the raw bitstream bytes, base64 in JSON.
	Payload []byte
	// Framing is "auto", "annexb" or "length-prefixed". Empty means auto.
	Framing string
}

type ExtractResponse struct {
	Records []entities.MetadataRecord
}

func (h *ExtractHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return entities.ErrHTTPPostOnly
	}

	req := ExtractRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return err
	}
	if len(req.Payload) == 0 {
		return entities.ErrMissingPayload
	}

	f, err := framingFromString(req.Framing)
	if err != nil {
		return err
	}

	records := h.extractor.ExtractWithFraming(req.Payload, f)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(ExtractResponse{Records: records})
}

func framingFromString(s string) (h264.Framing, error) {
	switch s {
	case "", "auto":
		return h264.FramingAuto, nil
	case "annexb":
		return h264.FramingAnnexB, nil
	case "length-prefixed":
		return h264.FramingLengthPrefixed, nil
	}
	return h264.FramingAuto, entities.ErrUnknownFraming
}
