package analyses

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ats-backend/internal/extract"
	"ats-backend/internal/matching"
	"ats-backend/internal/report"
	"ats-backend/internal/shared/server/middleware"
	"ats-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc *Service
	// MaxUploadBytes caps multipart request bodies.
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadBytes}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyses", h.createAnalysis)
	rg.POST("/analyses/upload", h.uploadAnalysis)
	rg.POST("/analyses/async", h.enqueueAnalysis)
	rg.GET("/analyses", h.listAnalyses)
	rg.GET("/analyses/:id", h.getAnalysis)
	rg.GET("/analyses/:id/report", h.downloadReport)
}

type analyzeRequest struct {
	ResumeText     string            `json:"resumeText"`
	JobDescription string            `json:"jobDescription"`
	Options        *matching.Options `json:"options"`
}

type analyzeResponse struct {
	AnalysisID string          `json:"analysisId"`
	Result     matching.Result `json:"result"`
}

func (h *Handler) createAnalysis(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}

	in := Input{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		Source:         SourceText,
	}
	if req.Options != nil {
		in.Options = *req.Options
	}
	h.runAnalysis(c, in)
}

func (h *Handler) enqueueAnalysis(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "invalid request body", nil)
		return
	}
	in := Input{ResumeText: req.ResumeText, JobDescription: req.JobDescription}
	if req.Options != nil {
		in.Options = *req.Options
	}

	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysisID, err := h.Svc.Enqueue(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.AnalysisIDKey, analysisID)
	respond.Accepted(c, gin.H{
		"analysisId": analysisID,
		"status":     "queued",
	})
}

func (h *Handler) runAnalysis(c *gin.Context, in Input) {
	ctx := WithRequestID(c.Request.Context(), middleware.RequestIDFromContext(c))
	analysis, err := h.Svc.Analyze(ctx, in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Set(middleware.AnalysisIDKey, analysis.ID)
	respond.Created(c, analyzeResponse{AnalysisID: analysis.ID, Result: analysis.Result})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := c.Param("id")
	c.Set(middleware.AnalysisIDKey, analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), analysisID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.OK(c, analysis)
}

func (h *Handler) listAnalyses(c *gin.Context) {
	limit := DefaultListLimit
	offset := 0

	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "limit must be a positive integer", respond.Issue("limit", "invalid"))
			return
		}
		limit = parsed
	}
	if v := c.Query("offset"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, "offset must be a non-negative integer", respond.Issue("offset", "invalid"))
			return
		}
		offset = parsed
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		writeError(c, err)
		return
	}
	if items == nil {
		items = []Analysis{}
	}
	respond.OK(c, gin.H{
		"items":  items,
		"limit":  limit,
		"offset": offset,
	})
}

func (h *Handler) downloadReport(c *gin.Context) {
	analysisID := c.Param("id")
	c.Set(middleware.AnalysisIDKey, analysisID)

	data, err := h.Svc.OpenReport(c.Request.Context(), analysisID)
	if err != nil {
		writeError(c, err)
		return
	}
	respond.Attachment(c, report.FileName, report.ContentType, data)
}

// writeError maps service errors onto the error envelope.
func writeError(c *gin.Context, err error) {
	var fieldErr *FieldError
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &fieldErr):
		respond.Error(c, http.StatusBadRequest, ErrorCodeValidation, fieldErr.Field+" is required", respond.Issue(fieldErr.Field, "required"))
	case errors.Is(err, matching.ErrInvalidOptions):
		respond.Error(c, http.StatusBadRequest, ErrorCodeInvalidOptions, err.Error(), nil)
	case errors.As(err, &maxBytesErr):
		respond.Error(c, http.StatusRequestEntityTooLarge, ErrorCodeFileTooLarge, "upload exceeds size limit", gin.H{
			"limitBytes": maxBytesErr.Limit,
		})
	case errors.Is(err, extract.ErrUnsupportedFormat):
		respond.Error(c, http.StatusBadRequest, ErrorCodeUnsupportedFormat, "only PDF and plain text files are supported", nil)
	case errors.Is(err, extract.ErrUnreadable):
		respond.Error(c, http.StatusUnprocessableEntity, ErrorCodeUnreadableFile, "file could not be read", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, ErrorCodeNotFound, "analysis not found", nil)
	case errors.Is(err, ErrAnalysisFailed):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeAnalysisFailed, "analysis failed", nil)
	case errors.Is(err, ErrQueueDisabled):
		respond.Error(c, http.StatusServiceUnavailable, ErrorCodeQueueUnavailable, "asynchronous scoring is not configured", nil)
	case errors.Is(err, ErrStorage):
		respond.Error(c, http.StatusInternalServerError, ErrorCodeStorage, "failed to store analysis", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, ErrorCodeInternal, "internal error", nil)
	}
}
