package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/seicast/seicast/internal/controllers"
	"github.com/seicast/seicast/internal/entities"
)

type InjectHandler struct {
	l        *zap.SugaredLogger
	injector *controllers.SEIInjectorController
}

func NewInjectHandler(
	l *zap.SugaredLogger,
	injector *controllers.SEIInjectorController,
) *InjectHandler {
	return &InjectHandler{
		l:        l,
		injector: injector,
	}
}

type InjectRequest struct {
	// Payload is the access unit bytes, base64 in JSON.
	Payload  []byte
	Keyframe bool
	Metadata entities.MetadataRecord
}

type InjectResponse struct {
	Payload []byte
}

func (h *InjectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return entities.ErrHTTPPostOnly
	}

	req := InjectRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return err
	}
	if len(req.Payload) == 0 {
		return entities.ErrMissingPayload
	}

	out, err := h.injector.Inject(req.Payload, req.Keyframe, req.Metadata)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(InjectResponse{Payload: out})
}
