package analyses

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/llm/anthropic"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/telemetry"
)

// Client-visible bodies for /api/analyze. The taxonomy is deliberately
// collapsed: every internal failure mode maps to the same generic message,
// details go to the log only.
const (
	msgMissingInput   = "Resume and job description are required"
	msgAnalysisFailed = "Analysis failed. Please try again."
	msgUnauthorized   = "Unauthorized"
)

// ResultSink receives completed analyses for the short-lived results view.
// Implemented by results.Cache.
type ResultSink interface {
	Put(id string, result map[string]any, resumeText, jobDescription string)
}

type Handler struct {
	Svc         *Service
	Sink        ResultSink
	RequireAuth bool
}

func NewHandler(svc *Service, sink ResultSink, requireAuth bool) *Handler {
	return &Handler{Svc: svc, Sink: sink, RequireAuth: requireAuth}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyze)
	rg.GET("/analyses", middleware.RequireUser(), h.list)
	rg.GET("/analyses/:id", middleware.RequireUser(), h.get)
}

type analyzeRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) analyze(c *gin.Context) {
	metrics.IncAnalyzeRequested()
	start := time.Now()

	// Input validation comes before the identity check: a malformed request
	// is 400 regardless of who sent it.
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.IncAnalyzeFailed()
		respond.Error(c, http.StatusBadRequest, "invalid_request", msgMissingInput)
		return
	}
	if req.ResumeText == "" || req.JobDescription == "" {
		metrics.IncAnalyzeFailed()
		respond.Error(c, http.StatusBadRequest, "invalid_request", msgMissingInput)
		return
	}

	userID := middleware.UserIDFromContext(c)
	if h.RequireAuth && userID == "" {
		metrics.IncAnalyzeFailed()
		respond.Error(c, http.StatusUnauthorized, "unauthorized", msgUnauthorized)
		return
	}

	analysis, err := h.Svc.Analyze(c.Request.Context(), userID, req.ResumeText, req.JobDescription)
	if err != nil {
		metrics.IncAnalyzeFailed()
		respond.Error(c, http.StatusInternalServerError, failureCode(err), msgAnalysisFailed)
		return
	}

	c.Set("analysisId", analysis.ID)
	if h.Sink != nil {
		h.Sink.Put(analysis.ID, analysis.Result, req.ResumeText, req.JobDescription)
	}

	response := analysis.Result
	if analysis.Persisted {
		response["id"] = analysis.ID
	}

	metrics.IncAnalyzeCompleted()
	metrics.ObserveAnalyzeDurationMs(float64(time.Since(start).Milliseconds()))
	telemetry.Info("analysis.completed", map[string]any{
		"analysis_id":   analysis.ID,
		"user_id":       userID,
		"persisted":     analysis.Persisted,
		"processing_ms": analysis.ProcessingMs,
	})

	respond.OK(c, response)
}

// failureCode names the internal failure mode for the log; the client body
// never varies.
func failureCode(err error) string {
	switch {
	case errors.Is(err, ErrMalformedCompletion):
		return "malformed_completion"
	case errors.Is(err, ErrSchemaValidation):
		return "schema_validation"
	case errors.Is(err, anthropic.ErrUnexpectedFormat):
		return "unexpected_format"
	default:
		return "completion_failed"
	}
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	limit := queryInt(c, "limit", 20, 100)
	offset := queryInt(c, "offset", 0, 10000)

	records, err := h.Svc.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load analyses")
		return
	}

	summaries := make([]Summary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, Summarize(rec))
	}
	respond.OK(c, gin.H{"analyses": summaries})
}

func (h *Handler) get(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	id := c.Param("id")

	rec, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load analysis")
		return
	}
	// Ownership is part of the lookup; a foreign id reads as absent.
	if rec.UserID != userID {
		respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found")
		return
	}
	respond.OK(c, rec)
}

func queryInt(c *gin.Context, name string, def, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		return def
	}
	if val > max {
		return max
	}
	return val
}
