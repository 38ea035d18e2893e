package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guardvision/localocr"
	"github.com/guardvision/localocr/ocr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoWorker struct {
	lang       string
	terminated *int
}

func (w *echoWorker) Recognize(ctx context.Context, dataURI string) (ocr.Result, error) {
	if dataURI == "data:image/png;base64,broken" || dataURI == "data:image/png;base64," {
		return ocr.Result{}, errors.Join(ocr.ErrDecode, errors.New("broken image"))
	}
	return ocr.Result{Text: w.lang + ":" + dataURI}, nil
}

func (w *echoWorker) Terminate() error {
	*w.terminated++
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *localocr.Adapter, *int) {
	gin.SetMode(gin.TestMode)
	terminated := 0
	factory := ocr.WorkerFactoryFunc(func(ctx context.Context, lang string) (ocr.Worker, error) {
		return &echoWorker{lang: lang, terminated: &terminated}, nil
	})
	adapter := localocr.New(factory, localocr.Config{DefaultLanguage: "eng"})
	t.Cleanup(adapter.Terminate)
	return newRouter(adapter), adapter, &terminated
}

func doJSON(t *testing.T, router http.Handler, method string, path string, body any) (int, map[string]any) {
	var payload bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return recorder.Code, response
}

func TestServeOCR(t *testing.T) {
	router, adapter, _ := newTestRouter(t)

	code, response := doJSON(t, router, http.MethodPost, "/ocr", map[string]string{"image": "aW1n", "lang": "deu"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, response["status"])
	assert.Equal(t, "deu:data:image/png;base64,aW1n", response["result"])
	assert.Equal(t, "deu", adapter.Language())

	code, response = doJSON(t, router, http.MethodPost, "/ocr", map[string]string{"image": "aW1n"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "eng:data:image/png;base64,aW1n", response["result"])
}

func TestServeOCRMalformedRequest(t *testing.T) {
	router, _, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/ocr", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var response map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, false, response["status"])
}

func TestServeOCREmptyImageReachesAdapter(t *testing.T) {
	router, _, terminated := newTestRouter(t)

	code, response := doJSON(t, router, http.MethodPost, "/ocr", map[string]string{"lang": "eng"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, localocr.StartupFailureMessage, response["error"])
	assert.Equal(t, string(localocr.FailureDecode), response["kind"])
	assert.Equal(t, 1, *terminated)
}

func TestServeOCRFailure(t *testing.T) {
	router, adapter, terminated := newTestRouter(t)

	code, response := doJSON(t, router, http.MethodPost, "/ocr", map[string]string{"image": "broken"})
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, false, response["status"])
	assert.Equal(t, localocr.StartupFailureMessage, response["error"])
	assert.Equal(t, string(localocr.FailureDecode), response["kind"])
	assert.Equal(t, 1, *terminated)
	assert.Equal(t, "", adapter.Language())
}

func TestServeTerminateAndStatus(t *testing.T) {
	router, _, terminated := newTestRouter(t)

	_, _ = doJSON(t, router, http.MethodPost, "/ocr", map[string]string{"image": "aW1n", "lang": "eng"})
	code, response := doJSON(t, router, http.MethodGet, "/status", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "eng", response["language"])

	code, response = doJSON(t, router, http.MethodPost, "/terminate", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, response["status"])
	assert.Equal(t, 1, *terminated)

	_, response = doJSON(t, router, http.MethodGet, "/status", nil)
	assert.Equal(t, "", response["language"])
}
