package results

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/shared/server/respond"
)

// Handler serves the results view. The analysis id works as a capability
// token: knowing it grants read access, matching the lifetime and scope the
// cache gives a just-finished analysis.
type Handler struct {
	Cache *Cache
	Svc   *analyses.Service
}

func NewHandler(cache *Cache, svc *analyses.Service) *Handler {
	return &Handler{Cache: cache, Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/results/:id", h.get)
}

type scoreSummary struct {
	Value      int  `json:"value"`
	Applicable bool `json:"applicable"`
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")

	if entry, ok := h.Cache.Get(id); ok {
		respond.OK(c, gin.H{
			"result":         entry.Result,
			"resumeText":     entry.ResumeText,
			"jobDescription": entry.JobDescription,
			"score":          scoreFromResult(entry.Result),
		})
		return
	}

	// Cache expired or process restarted; fall back to the persisted row.
	rec, err := h.Svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, analyses.ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "Results not found or expired")
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load results")
		return
	}

	var result map[string]any
	if err := json.Unmarshal(rec.Result, &result); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to load results")
		return
	}

	respond.OK(c, gin.H{
		"result":         result,
		"resumeText":     rec.ResumeText,
		"jobDescription": rec.JobDescription,
		"score":          scoreFromResult(result),
	})
}

func scoreFromResult(result map[string]any) scoreSummary {
	raw, err := json.Marshal(result["gap_analysis"])
	if err != nil {
		return scoreSummary{}
	}
	var gaps []analyses.GapItem
	if err := json.Unmarshal(raw, &gaps); err != nil {
		return scoreSummary{}
	}
	value, applicable := analyses.Score(gaps)
	return scoreSummary{Value: value, Applicable: applicable}
}
