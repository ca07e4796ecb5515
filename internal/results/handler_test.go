package results

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/analyses"
)

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func resultWithGaps() map[string]any {
	return map[string]any{
		"gap_analysis": []any{
			map[string]any{"requirement": "A", "match_level": "strong"},
			map[string]any{"requirement": "B", "match_level": "strong"},
			map[string]any{"requirement": "C", "match_level": "partial"},
			map[string]any{"requirement": "D", "match_level": "gap"},
		},
		"improvements": []any{},
	}
}

func TestResultsFromCache(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Put("a-1", resultWithGaps(), "resume", "jd")
	h := NewHandler(cache, analyses.NewService(nil, nil, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/results/a-1", nil)
	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		ResumeText string `json:"resumeText"`
		Score      struct {
			Value      int  `json:"value"`
			Applicable bool `json:"applicable"`
		} `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ResumeText != "resume" {
		t.Errorf("resumeText = %q", body.ResumeText)
	}
	if !body.Score.Applicable || body.Score.Value != 63 {
		t.Errorf("score = %+v", body.Score)
	}
}

func TestResultsFallbackToRepo(t *testing.T) {
	repo := analyses.NewMemoryRepo()
	resultJSON, _ := json.Marshal(resultWithGaps())
	err := repo.Insert(context.Background(), analyses.Record{
		ID:             "a-2",
		UserID:         "google:123",
		ResumeText:     "stored resume",
		JobDescription: "stored jd",
		Result:         resultJSON,
		Status:         analyses.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	h := NewHandler(NewCache(time.Minute), analyses.NewService(nil, repo, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/results/a-2", nil)
	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var body struct {
		ResumeText string `json:"resumeText"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.ResumeText != "stored resume" {
		t.Errorf("resumeText = %q", body.ResumeText)
	}
}

func TestResultsNotFound(t *testing.T) {
	h := NewHandler(NewCache(time.Minute), analyses.NewService(nil, analyses.NewMemoryRepo(), 0))

	req := httptest.NewRequest(http.MethodGet, "/api/results/unknown", nil)
	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestResultsEmptyGapAnalysisScoreNotApplicable(t *testing.T) {
	cache := NewCache(time.Minute)
	cache.Put("a-3", map[string]any{"gap_analysis": []any{}}, "r", "j")
	h := NewHandler(cache, analyses.NewService(nil, nil, 0))

	req := httptest.NewRequest(http.MethodGet, "/api/results/a-3", nil)
	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, req)

	var body struct {
		Score struct {
			Value      int  `json:"value"`
			Applicable bool `json:"applicable"`
		} `json:"score"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Score.Applicable || body.Score.Value != 0 {
		t.Errorf("score = %+v", body.Score)
	}
}
