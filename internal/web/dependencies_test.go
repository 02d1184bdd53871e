package web_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"

	"github.com/seicast/seicast/internal/entities"
	"github.com/seicast/seicast/internal/web"
	"github.com/seicast/seicast/internal/web/handlers"
)

var mux *http.ServeMux

func serveMux(t *testing.T) *http.ServeMux {
	if mux == nil {
		fxtest.New(t,
			web.Dependencies(),
			fx.Populate(&mux),
		)
	}
	return mux
}

func post(t *testing.T, path string, body interface{}) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	assert.Nil(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	rr := httptest.NewRecorder()
	serveMux(t).ServeHTTP(rr, req)
	return rr
}

func keyframeAU() []byte {
	return []byte{
		0x00, 0x00, 0x00, 0x01, 0x09, 0xf0,
		0x00, 0x00, 0x00, 0x01, 0x65, 0x88, 0x84,
	}
}

func TestInjectThenExtractOverHTTP(t *testing.T) {
	rr := post(t, "/inject", handlers.InjectRequest{
		Payload:  keyframeAU(),
		Keyframe: true,
		Metadata: entities.MetadataRecord{"user": "a"},
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	injectResp := handlers.InjectResponse{}
	assert.Nil(t, json.NewDecoder(rr.Body).Decode(&injectResp))
	assert.Greater(t, len(injectResp.Payload), len(keyframeAU()))

	rr = post(t, "/extract", handlers.ExtractRequest{
		Payload: injectResp.Payload,
		Framing: "annexb",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	extractResp := handlers.ExtractResponse{}
	assert.Nil(t, json.NewDecoder(rr.Body).Decode(&extractResp))
	assert.Len(t, extractResp.Records, 1)
	assert.Equal(t, "a", extractResp.Records[0]["user"])
	assert.Contains(t, extractResp.Records[0], entities.FrameIndexKey)
}

func TestAboutReportsMetadataChannel(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rr := httptest.NewRecorder()
	serveMux(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	aboutResp := handlers.AboutResponse{}
	assert.Nil(t, json.NewDecoder(rr.Body).Decode(&aboutResp))
	assert.Equal(t, entities.MetadataChannelID, aboutResp.MetadataChannel)
	assert.NotEmpty(t, aboutResp.SEIUUID)
}

func TestAboutRejectsWrongVerb(t *testing.T) {
	rr := post(t, "/about", nil)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), entities.ErrHTTPGetOnly.Error())
}

func TestInjectRejectsWrongVerb(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/inject", nil)
	rr := httptest.NewRecorder()
	serveMux(t).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), entities.ErrHTTPPostOnly.Error())
}

func TestInjectRejectsEmptyPayload(t *testing.T) {
	rr := post(t, "/inject", handlers.InjectRequest{Keyframe: true})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), entities.ErrMissingPayload.Error())
}

func TestExtractRejectsUnknownFraming(t *testing.T) {
	rr := post(t, "/extract", handlers.ExtractRequest{
		Payload: keyframeAU(),
		Framing: "avcc",
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), entities.ErrUnknownFraming.Error())
}

func TestExtractEmptyResultIsOK(t *testing.T) {
	rr := post(t, "/extract", handlers.ExtractRequest{Payload: keyframeAU()})
	assert.Equal(t, http.StatusOK, rr.Code)

	extractResp := handlers.ExtractResponse{}
	assert.Nil(t, json.NewDecoder(rr.Body).Decode(&extractResp))
	assert.Empty(t, extractResp.Records)
}
