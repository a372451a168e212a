package uploads

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-parser/internal/shared/metrics"
	"resume-parser/internal/shared/server/respond"
)

const defaultMaxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler. maxBytes <= 0 selects 10MB.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &Handler{Svc: svc, MaxUploadBytes: maxBytes}
}

// RegisterRoutes attaches upload routes to the router group. Extra handlers
// run before the upload handler.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, middleware ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, middleware...), h.upload)
	rg.POST("/upload", handlers...)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.reject(c, http.StatusRequestEntityTooLarge, "payload_too_large", "File too large")
			return
		}
		h.reject(c, http.StatusBadRequest, "validation_error", clientMessage(ErrNoFile))
		return
	}

	files := form.File["file"]
	if len(files) == 0 {
		// A part named "file" without a filename is parsed as a plain value.
		if _, ok := form.Value["file"]; ok {
			h.reject(c, http.StatusBadRequest, "validation_error", clientMessage(ErrEmptyFileName))
			return
		}
		h.reject(c, http.StatusBadRequest, "validation_error", clientMessage(ErrNoFile))
		return
	}
	fileHeader := files[0]

	file, err := fileHeader.Open()
	if err != nil {
		h.reject(c, http.StatusBadRequest, "validation_error", "unable to read file")
		return
	}
	defer file.Close()

	up, err := h.Svc.Process(c.Request.Context(), fileHeader.Filename, file)
	c.Set("uploadId", up.ID)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFileName), errors.Is(err, ErrNotPDF), errors.Is(err, ErrNoText):
			h.reject(c, http.StatusBadRequest, "validation_error", clientMessage(err))
		case errors.Is(err, ErrUnreadablePDF):
			h.reject(c, http.StatusInternalServerError, "unreadable_pdf", clientMessage(err))
		default:
			h.reject(c, http.StatusInternalServerError, "internal", clientMessage(err))
		}
		return
	}

	metrics.IncUploads()
	respond.OK(c, up.Entry.Record)
}

func (h *Handler) reject(c *gin.Context, status int, code, message string) {
	metrics.IncUploadsRejected()
	respond.Error(c, status, code, message, nil)
}
