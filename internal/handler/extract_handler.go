package handler

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pdfworker/internal/config"
	"pdfworker/internal/service"
)

// Operations the worker accepts on the generic /process endpoint.
const (
	OpExtract         = "extract"
	OpDetectTextLayer = "detect_text_layer"
)

// SupportedOperations lists the worker's operations in stable order.
var SupportedOperations = []string{OpDetectTextLayer, OpExtract}

// ProcessRequest is the body of POST /process (base64 mode).
type ProcessRequest struct {
	Operation string            `json:"operation" binding:"required"`
	Data      string            `json:"data" binding:"required"`
	Options   map[string]string `json:"options"`
}

// ExtractHandler handles document processing endpoints.
type ExtractHandler struct {
	extractSvc   service.ExtractionService
	textLayerSvc service.TextLayerService
	maxFileSize  int64
}

// NewExtractHandler creates a new ExtractHandler.
func NewExtractHandler(extractSvc service.ExtractionService, textLayerSvc service.TextLayerService, cfg *config.ExtractionConfig) *ExtractHandler {
	return &ExtractHandler{
		extractSvc:   extractSvc,
		textLayerSvc: textLayerSvc,
		maxFileSize:  cfg.MaxFileSizeBytes(),
	}
}

// Extract handles POST /api/extract: multipart upload with output_format,
// pages, and include_images form fields.
func (h *ExtractHandler) Extract(c *gin.Context) {
	start := time.Now()

	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	opts := service.ExtractOptions{
		OutputFormat:  c.DefaultPostForm("output_format", service.FormatJSON),
		Pages:         c.PostForm("pages"),
		IncludeImages: c.PostForm("include_images") == "true",
	}

	log.Printf("extractHandler: extract request, size=%d bytes, format=%s", len(data), opts.OutputFormat)

	out, err := h.extractSvc.Extract(c.Request.Context(), service.ExtractInput{Data: data, Options: opts})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondResult(c, resultPayload(out), contentType(out.Format), out.Metadata, time.Since(start).Milliseconds())
}

// DetectTextLayer handles POST /api/detect-text-layer: multipart upload,
// optional char_threshold form field.
func (h *ExtractHandler) DetectTextLayer(c *gin.Context) {
	start := time.Now()

	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	threshold, _ := strconv.Atoi(c.PostForm("char_threshold"))

	log.Printf("extractHandler: detect-text-layer request, size=%d bytes", len(data))

	report, metadata, err := h.textLayerSvc.Detect(c.Request.Context(), data, threshold)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondResult(c, report, "application/json", metadata, time.Since(start).Milliseconds())
}

// Process handles POST /process: the generic worker envelope carrying a
// base64 payload and an operation name.
func (h *ExtractHandler) Process(c *gin.Context) {
	start := time.Now()

	var req ProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "operation and data fields are required")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BASE64", "request data is not valid base64")
		return
	}

	if int64(len(data)) > h.maxFileSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return
	}

	log.Printf("extractHandler: process request, operation=%s, size=%d bytes", req.Operation, len(data))

	switch req.Operation {
	case OpExtract:
		opts := service.ExtractOptions{
			OutputFormat:  req.Options["output_format"],
			Pages:         req.Options["pages"],
			IncludeImages: req.Options["include_images"] == "true",
		}
		if opts.OutputFormat == "" {
			opts.OutputFormat = service.FormatJSON
		}
		out, err := h.extractSvc.Extract(c.Request.Context(), service.ExtractInput{Data: data, Options: opts})
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondResult(c, resultPayload(out), contentType(out.Format), out.Metadata, time.Since(start).Milliseconds())

	case OpDetectTextLayer:
		threshold, _ := strconv.Atoi(req.Options["char_threshold"])
		report, metadata, err := h.textLayerSvc.Detect(c.Request.Context(), data, threshold)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondResult(c, report, "application/json", metadata, time.Since(start).Milliseconds())

	default:
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Error: &APIError{
				Code:    "INVALID_OPERATION",
				Message: "operation '" + req.Operation + "' is not supported",
				Details: gin.H{"supported_operations": SupportedOperations},
			},
		})
	}
}

// readUpload pulls the multipart "file" field and enforces the size limit.
// On failure the error response is already written.
func (h *ExtractHandler) readUpload(c *gin.Context) ([]byte, bool) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return nil, false
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxFileSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxFileSize+1))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file")
		return nil, false
	}
	if int64(len(data)) > h.maxFileSize {
		RespondError(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size")
		return nil, false
	}

	return data, true
}

// resultPayload embeds JSON output as a structured object and everything
// else as a string.
func resultPayload(out *service.ExtractOutput) interface{} {
	if out.Format == service.FormatJSON {
		return json.RawMessage(out.Body)
	}
	return string(out.Body)
}
