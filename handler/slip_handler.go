package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/logging"
)

// SlipAnalyzer is the part of the pipeline the HTTP layer needs.
type SlipAnalyzer interface {
	AnalyzeText(ctx context.Context, source, text string) (*dto.AnalysisResult, error)
	AnalyzeFile(ctx context.Context, filename string, data []byte, password string) (*dto.AnalysisResult, error)
	AnalyzeBatch(ctx context.Context, docs []dto.UploadedDocument) (*dto.BatchAnalysisResponse, error)
}

type SlipHandler struct {
	slipService SlipAnalyzer
	logger      *slog.Logger
}

func NewSlipHandler(slipService SlipAnalyzer, logger *slog.Logger) *SlipHandler {
	return &SlipHandler{
		slipService: slipService,
		logger:      logging.Or(logger, "http"),
	}
}

// Register mounts the slip routes on group.
func (h *SlipHandler) Register(group *gin.RouterGroup) {
	slips := group.Group("/slips")
	{
		slips.POST("/analyze", h.AnalyzeFile)
		slips.POST("/analyze-text", h.AnalyzeText)
		slips.POST("/batch", h.AnalyzeBatch)
	}
}

// AnalyzeFile handles POST /slips/analyze
func (h *SlipHandler) AnalyzeFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		h.sendUploadError(c, "Failed to parse multipart form", err)
		return
	}

	request := &dto.AnalyzeFileRequest{
		File:     file,
		Password: c.PostForm("password"),
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	data, err := readUpload(request.File)
	if err != nil {
		h.sendUploadError(c, "Failed to read upload", err)
		return
	}

	h.logger.Info("analysing slip", "file", request.File.Filename, "bytes", len(data))

	result, err := h.slipService.AnalyzeFile(c.Request.Context(), request.File.Filename, data, request.Password)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AnalyzeText handles POST /slips/analyze-text
func (h *SlipHandler) AnalyzeText(c *gin.Context) {
	var request dto.AnalyzeTextRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendUploadError(c, "Invalid JSON body", err)
		return
	}
	if err := request.Validate(); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.slipService.AnalyzeText(c.Request.Context(), request.Source, request.Text)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AnalyzeBatch handles POST /slips/batch
func (h *SlipHandler) AnalyzeBatch(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		h.sendUploadError(c, "Failed to parse multipart form", err)
		return
	}

	files := form.File["files[]"]
	if len(files) == 0 {
		h.sendError(c, http.StatusBadRequest, "No files provided", dto.ErrNoFiles)
		return
	}
	password := c.PostForm("password")

	docs := make([]dto.UploadedDocument, 0, len(files))
	for _, f := range files {
		data, err := readUpload(f)
		if err != nil {
			h.sendUploadError(c, "Failed to read upload", err)
			return
		}
		docs = append(docs, dto.UploadedDocument{Filename: f.Filename, Data: data, Password: password})
	}

	h.logger.Info("processing batch", "files", len(docs))

	response, err := h.slipService.AnalyzeBatch(c.Request.Context(), docs)
	if err != nil {
		h.sendServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return data, nil
}

// sendUploadError reports a body that could not be read, telling oversized
// uploads apart from malformed ones.
func (h *SlipHandler) sendUploadError(c *gin.Context, message string, err error) {
	if isTooLarge(err) {
		h.logger.Warn("upload rejected", "error", err)
		c.JSON(http.StatusRequestEntityTooLarge, tooLargeResponse())
		return
	}
	h.sendError(c, http.StatusBadRequest, message, err)
}

func (h *SlipHandler) sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dto.ErrUnsupportedFormat), errors.Is(err, dto.ErrNoFiles), errors.Is(err, dto.ErrEmptyText):
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
	default:
		h.sendError(c, http.StatusInternalServerError, "Failed to analyse salary slip", err)
	}
}

// sendError sends a structured error response
func (h *SlipHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		h.logger.Warn(message, "status", statusCode, "error", err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   "ANALYSIS_FAILED",
		Message: errorMsg,
		Code:    statusCode,
	})
}
