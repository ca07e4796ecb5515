package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeRenderer struct {
	pdf []byte
	err error
}

func (f *fakeRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.pdf, nil
}

func newRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

const exportBody = `{"optimized_resume":{
  "header":{"name":"Jane Doe","title":"PM","contact":"jane@example.com"},
  "summary":"Summary.",
  "experience":[{"company":"Acme","role":"PM","duration":"2019-2024","bullets":["Led launches"]}],
  "skills":["SQL"],
  "education":[{"institution":"State U","degree":"BS","year":"2016"}]
}}`

func post(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestExportText(t *testing.T) {
	h := NewHandler(&fakeRenderer{}, nil)

	w := post(t, newRouter(h), "/api/export/text", exportBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), "Jane Doe\nPM\njane@example.com") {
		t.Errorf("body = %q", w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Jane_Doe_Resume.txt") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestExportPDF(t *testing.T) {
	h := NewHandler(&fakeRenderer{pdf: []byte("%PDF-1.4 fake")}, nil)

	w := post(t, newRouter(h), "/api/export/pdf", exportBody)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF-") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestExportPDFRenderFailure(t *testing.T) {
	h := NewHandler(&fakeRenderer{err: errors.New("chrome not found")}, nil)

	w := post(t, newRouter(h), "/api/export/pdf", exportBody)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if w.Body.String() != `{"error":"Failed to generate PDF"}` {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestExportMissingResume(t *testing.T) {
	h := NewHandler(&fakeRenderer{}, nil)

	for _, path := range []string{"/api/export/text", "/api/export/pdf"} {
		w := post(t, newRouter(h), path, `{}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s status = %d", path, w.Code)
		}
		if w.Body.String() != `{"error":"Optimized resume is required"}` {
			t.Errorf("%s body = %s", path, w.Body.String())
		}
	}
}
