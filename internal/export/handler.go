package export

import (
	"bytes"
	"fmt"
	"net/http"
	"path"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/shared/metrics"
	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
	"resume-optimizer/internal/shared/util"
)

type Handler struct {
	Renderer Renderer
	Store    object.ObjectStore
}

func NewHandler(renderer Renderer, store object.ObjectStore) *Handler {
	return &Handler{Renderer: renderer, Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/export/text", h.text)
	rg.POST("/export/pdf", h.pdf)
}

type exportRequest struct {
	OptimizedResume *analyses.OptimizedResume `json:"optimized_resume"`
}

func (h *Handler) bind(c *gin.Context) (analyses.OptimizedResume, bool) {
	var req exportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OptimizedResume == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "Optimized resume is required")
		return analyses.OptimizedResume{}, false
	}
	return *req.OptimizedResume, true
}

func (h *Handler) text(c *gin.Context) {
	resume, ok := h.bind(c)
	if !ok {
		return
	}

	metrics.IncExport()
	body := Text(resume)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", FileName(resume.Header.Name, "txt")))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func (h *Handler) pdf(c *gin.Context) {
	resume, ok := h.bind(c)
	if !ok {
		return
	}

	html, err := RenderHTML(resume)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "render_failed", "Failed to generate PDF")
		return
	}

	pdfBytes, err := h.Renderer.RenderHTMLToPDF(c.Request.Context(), html)
	if err != nil {
		telemetry.Error("export.pdf_failed", map[string]any{"error": err.Error()})
		respond.Error(c, http.StatusInternalServerError, "render_failed", "Failed to generate PDF")
		return
	}

	metrics.IncExport()
	fileName := FileName(resume.Header.Name, "pdf")
	h.saveCopy(c, fileName, pdfBytes)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

// saveCopy archives the export under the caller's namespace. Best-effort;
// anonymous callers and store failures skip it silently apart from the log.
func (h *Handler) saveCopy(c *gin.Context, fileName string, pdfBytes []byte) {
	if h.Store == nil {
		return
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		return
	}

	key := path.Join(util.HashUserKey(userID), "exports", fileName)
	if _, err := h.Store.SaveWithKey(c.Request.Context(), key, "application/pdf", bytes.NewReader(pdfBytes)); err != nil {
		telemetry.Warn("export.archive_failed", map[string]any{
			"user_id": userID,
			"key":     key,
			"error":   err.Error(),
		})
	}
}
