package handler_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pdfworker/internal/config"
	"pdfworker/internal/domain"
	"pdfworker/internal/handler"
	"pdfworker/internal/router"
	"pdfworker/internal/service"
	mocks "pdfworker/mocks/servicemocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(extractSvc service.ExtractionService, textLayerSvc service.TextLayerService) *gin.Engine {
	cfg := &config.ExtractionConfig{
		TitleFontSizeThreshold:   18,
		HeadingFontSizeThreshold: 14,
		TextLayerCharThreshold:   50,
		MaxFileSizeMB:            1,
	}
	extractH := handler.NewExtractHandler(extractSvc, textLayerSvc, cfg)
	healthH := handler.NewHealthHandler("test")
	return router.Setup(extractH, healthH)
}

// multipartBody builds a multipart form with a "file" field and extra form
// fields, returning the body and its content type.
func multipartBody(t *testing.T, fileContent []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", "document.pdf")
	require.NoError(t, err)
	_, err = fw.Write(fileContent)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func doRequest(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestExtract_Success(t *testing.T) {
	extractSvc := new(mocks.MockExtractionService)
	textLayerSvc := new(mocks.MockTextLayerService)

	extractSvc.On("Extract", mock.Anything, mock.MatchedBy(func(in service.ExtractInput) bool {
		return string(in.Data) == "%PDF-1.7" &&
			in.Options.OutputFormat == "json" &&
			in.Options.Pages == "1-2" &&
			!in.Options.IncludeImages
	})).Return(&service.ExtractOutput{
		Body:     []byte(`{"pages":2,"full_text":"hello"}`),
		Format:   service.FormatJSON,
		Metadata: map[string]string{"pages_processed": "2"},
	}, nil)

	r := testRouter(extractSvc, textLayerSvc)
	body, ct := multipartBody(t, []byte("%PDF-1.7"), map[string]string{"pages": "1-2"})
	rec := doRequest(r, http.MethodPost, "/api/extract", body, ct)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "application/json", resp.Format)
	assert.Equal(t, "2", resp.Metadata["pages_processed"])

	// JSON output embeds as a structured object, not a string.
	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "hello", result["full_text"])

	extractSvc.AssertExpectations(t)
}

func TestExtract_HTMLFormatReturnsString(t *testing.T) {
	extractSvc := new(mocks.MockExtractionService)
	extractSvc.On("Extract", mock.Anything, mock.Anything).Return(&service.ExtractOutput{
		Body:   []byte("<html><body><p>hi</p></body></html>"),
		Format: service.FormatHTML,
	}, nil)

	r := testRouter(extractSvc, new(mocks.MockTextLayerService))
	body, ct := multipartBody(t, []byte("%PDF"), map[string]string{"output_format": "html"})
	rec := doRequest(r, http.MethodPost, "/api/extract", body, ct)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "text/html", resp.Format)
	result, ok := resp.Result.(string)
	require.True(t, ok)
	assert.Contains(t, result, "<p>hi</p>")
}

func TestExtract_MissingFile(t *testing.T) {
	r := testRouter(new(mocks.MockExtractionService), new(mocks.MockTextLayerService))

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("output_format", "json"))
	require.NoError(t, w.Close())

	rec := doRequest(r, http.MethodPost, "/api/extract", &buf, w.FormDataContentType())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
}

func TestExtract_FileTooLarge(t *testing.T) {
	r := testRouter(new(mocks.MockExtractionService), new(mocks.MockTextLayerService))

	// One byte over the 1 MB test limit.
	body, ct := multipartBody(t, bytes.Repeat([]byte("a"), 1<<20+1), nil)
	rec := doRequest(r, http.MethodPost, "/api/extract", body, ct)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "FILE_TOO_LARGE", resp.Error.Code)
}

func TestExtract_InvalidPageRangeMapsTo400(t *testing.T) {
	extractSvc := new(mocks.MockExtractionService)
	extractSvc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, domain.ErrInvalidPageRange)

	r := testRouter(extractSvc, new(mocks.MockTextLayerService))
	body, ct := multipartBody(t, []byte("%PDF"), map[string]string{"pages": "9-1"})
	rec := doRequest(r, http.MethodPost, "/api/extract", body, ct)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestExtract_UnexpectedErrorMapsTo500(t *testing.T) {
	extractSvc := new(mocks.MockExtractionService)
	extractSvc.On("Extract", mock.Anything, mock.Anything).
		Return(nil, errors.New("engine crashed"))

	r := testRouter(extractSvc, new(mocks.MockTextLayerService))
	body, ct := multipartBody(t, []byte("%PDF"), nil)
	rec := doRequest(r, http.MethodPost, "/api/extract", body, ct)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "PROCESSING_FAILED", resp.Error.Code)
	// Internal details never leak to the caller.
	assert.NotContains(t, resp.Error.Message, "engine crashed")
}

func TestDetectTextLayer_Success(t *testing.T) {
	textLayerSvc := new(mocks.MockTextLayerService)
	textLayerSvc.On("Detect", mock.Anything, []byte("%PDF"), 25).Return(
		&service.TextLayerReport{
			TotalPages: 1,
			Pages:      []service.PageTextLayer{{Page: 1, HasTextLayer: true, CharCount: 120}},
		},
		map[string]string{"pages_with_text": "1"},
		nil,
	)

	r := testRouter(new(mocks.MockExtractionService), textLayerSvc)
	body, ct := multipartBody(t, []byte("%PDF"), map[string]string{"char_threshold": "25"})
	rec := doRequest(r, http.MethodPost, "/api/detect-text-layer", body, ct)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "1", resp.Metadata["pages_with_text"])

	result, ok := resp.Result.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), result["total_pages"])

	textLayerSvc.AssertExpectations(t)
}

func TestProcess_Extract(t *testing.T) {
	extractSvc := new(mocks.MockExtractionService)
	extractSvc.On("Extract", mock.Anything, mock.MatchedBy(func(in service.ExtractInput) bool {
		return string(in.Data) == "%PDF-1.7" && in.Options.OutputFormat == "markdown"
	})).Return(&service.ExtractOutput{
		Body:   []byte("# Title"),
		Format: service.FormatMarkdown,
	}, nil)

	r := testRouter(extractSvc, new(mocks.MockTextLayerService))

	payload, _ := json.Marshal(gin.H{
		"operation": "extract",
		"data":      base64.StdEncoding.EncodeToString([]byte("%PDF-1.7")),
		"options":   gin.H{"output_format": "markdown"},
	})
	rec := doRequest(r, http.MethodPost, "/process", bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "text/markdown", resp.Format)
	assert.Equal(t, "# Title", resp.Result)
}

func TestProcess_DetectTextLayer(t *testing.T) {
	textLayerSvc := new(mocks.MockTextLayerService)
	textLayerSvc.On("Detect", mock.Anything, []byte("%PDF"), 0).Return(
		&service.TextLayerReport{TotalPages: 2},
		map[string]string{"total_pages": "2"},
		nil,
	)

	r := testRouter(new(mocks.MockExtractionService), textLayerSvc)

	payload, _ := json.Marshal(gin.H{
		"operation": "detect_text_layer",
		"data":      base64.StdEncoding.EncodeToString([]byte("%PDF")),
	})
	rec := doRequest(r, http.MethodPost, "/process", bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "2", resp.Metadata["total_pages"])
}

func TestProcess_InvalidBase64(t *testing.T) {
	r := testRouter(new(mocks.MockExtractionService), new(mocks.MockTextLayerService))

	payload, _ := json.Marshal(gin.H{"operation": "extract", "data": "!!not-base64!!"})
	rec := doRequest(r, http.MethodPost, "/process", bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "INVALID_BASE64", resp.Error.Code)
}

func TestProcess_UnknownOperation(t *testing.T) {
	r := testRouter(new(mocks.MockExtractionService), new(mocks.MockTextLayerService))

	payload, _ := json.Marshal(gin.H{
		"operation": "ocr",
		"data":      base64.StdEncoding.EncodeToString([]byte("%PDF")),
	})
	rec := doRequest(r, http.MethodPost, "/process", bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_OPERATION", resp.Error.Code)

	details, ok := resp.Error.Details.(map[string]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"detect_text_layer", "extract"}, details["supported_operations"])
}

func TestProcess_MissingFields(t *testing.T) {
	r := testRouter(new(mocks.MockExtractionService), new(mocks.MockTextLayerService))

	payload, _ := json.Marshal(gin.H{"operation": "extract"})
	rec := doRequest(r, http.MethodPost, "/process", bytes.NewBuffer(payload), "application/json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestHealthEndpoints(t *testing.T) {
	r := testRouter(new(mocks.MockExtractionService), new(mocks.MockTextLayerService))

	rec := doRequest(r, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var live map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &live))
	assert.Equal(t, "ok", live["status"])
	assert.Equal(t, "test", live["version"])

	rec = doRequest(r, http.MethodGet, "/readyz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var ready map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ready))
	assert.Equal(t, "ready", ready["status"])
}

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"page range", domain.ErrInvalidPageRange, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"invalid document", domain.ErrInvalidDocument, http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"bad base64", domain.ErrInvalidBase64, http.StatusBadRequest, "INVALID_BASE64"},
		{"too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unsupported op", domain.ErrUnsupportedOperation, http.StatusBadRequest, "INVALID_OPERATION"},
		{"wrapped", fmtWrap(domain.ErrInvalidDocument), http.StatusBadRequest, "INVALID_DOCUMENT"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "PROCESSING_FAILED"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tc.err)
			assert.Equal(t, tc.wantStatus, status)
			assert.Equal(t, tc.wantCode, code)
		})
	}
}

func fmtWrap(err error) error {
	return errors.Join(errors.New("opening document"), err)
}
