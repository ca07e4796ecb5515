package intake

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-optimizer/internal/shared/server/middleware"
	"resume-optimizer/internal/shared/server/respond"
	"resume-optimizer/internal/shared/storage/object"
	"resume-optimizer/internal/shared/telemetry"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	Store object.ObjectStore
}

func NewHandler(store object.ObjectStore) *Handler {
	return &Handler{Store: store}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/extract", h.extract)
}

func (h *Handler) extract(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "A file upload is required")
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "file_too_large", "File is too large (max 10MB)")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to read upload")
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "Failed to read upload")
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "file_too_large", "File is too large (max 10MB)")
		return
	}

	text, err := FromBytes(data, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			respond.Error(c, http.StatusBadRequest, "unsupported_type", "Only PDF, DOCX, and plain text files are supported")
			return
		}
		respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "Could not extract text from the file")
		return
	}

	h.archive(c, fileHeader.Filename, data)

	respond.OK(c, gin.H{
		"resumeText": text,
		"fileName":   fileHeader.Filename,
		"sizeBytes":  fileHeader.Size,
	})
}

// archive keeps the raw upload. Best-effort; extraction already succeeded.
func (h *Handler) archive(c *gin.Context, fileName string, data []byte) {
	if h.Store == nil {
		return
	}
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		userID = "anonymous"
	}
	if _, _, _, err := h.Store.Save(c.Request.Context(), userID, fileName, bytes.NewReader(data)); err != nil {
		telemetry.Warn("intake.archive_failed", map[string]any{
			"user_id":   userID,
			"file_name": fileName,
			"error":     err.Error(),
		})
	}
}
