package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/seicast/seicast/internal/entities"
)

// AboutHandler describes this instance: the metadata channel hosts should
// subscribe to, and the injection settings in effect.
type AboutHandler struct {
	c *entities.Config
	l *zap.SugaredLogger
}

func NewAboutHandler(c *entities.Config, l *zap.SugaredLogger) *AboutHandler {
	return &AboutHandler{c: c, l: l}
}

type AboutResponse struct {
	MetadataChannel    string
	SEIUUID            string
	InjectEveryNFrames int
}

func (h *AboutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(AboutResponse{
		MetadataChannel:    entities.MetadataChannelID,
		SEIUUID:            h.c.SEIUUID,
		InjectEveryNFrames: h.c.InjectEveryNFrames,
	})
}
