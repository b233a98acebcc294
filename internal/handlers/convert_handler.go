// -----------------------------------------------------------------------
// Convert Handler - multipart PDF upload to JSON conversion endpoint
// -----------------------------------------------------------------------

package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/verto/internal/converter"
	"github.com/ternarybob/verto/internal/interfaces"
	"github.com/ternarybob/verto/internal/models"
)

// ConvertHandler accepts a single uploaded PDF and responds with the
// conversion envelope as JSON. The upload is staged in a per-request temp
// directory so the envelope's source_file reflects the original file name.
type ConvertHandler struct {
	logger         arbor.ILogger
	converter      interfaces.Converter
	maxUploadBytes int64
	tempDir        string
}

// NewConvertHandler creates the upload conversion handler
func NewConvertHandler(conv interfaces.Converter, logger arbor.ILogger, maxUploadBytes int64) *ConvertHandler {
	tempDir := filepath.Join(os.TempDir(), "verto-uploads")
	os.MkdirAll(tempDir, 0755)

	return &ConvertHandler{
		logger:         logger,
		converter:      conv,
		maxUploadBytes: maxUploadBytes,
		tempDir:        tempDir,
	}
}

// ConvertHandler handles POST /api/convert with a multipart "file" field.
// Optional form values: method (default "auto") and pretty ("true"/"false").
func (h *ConvertHandler) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "POST") {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		WriteError(w, http.StatusBadRequest, "only PDF files are supported")
		return
	}

	method := models.Method(r.FormValue("method"))
	if method == "" {
		method = models.MethodAuto
	}
	pretty := r.FormValue("pretty") != "false"

	pdfPath, cleanup, err := h.stageUpload(file, header.Filename)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to stage uploaded file")
		WriteError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer cleanup()

	envelope, err := h.converter.Convert(pdfPath, method, "", false)
	if err != nil {
		h.writeConvertError(w, err)
		return
	}

	data, err := converter.MarshalEnvelope(envelope, pretty)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode envelope")
		WriteError(w, http.StatusInternalServerError, "failed to encode result")
		return
	}

	h.logger.Info().
		Str("file", header.Filename).
		Str("method", string(envelope.Content.ExtractionMethod)).
		Int("pages", envelope.Content.TotalPages).
		Msg("PDF converted")

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// stageUpload copies the uploaded content into a unique directory named by
// a fresh UUID, keeping the original basename so conversion provenance
// reports the user's file name.
func (h *ConvertHandler) stageUpload(file io.Reader, filename string) (string, func(), error) {
	dir := filepath.Join(h.tempDir, uuid.NewString())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", nil, err
	}
	cleanup := func() { os.RemoveAll(dir) }

	pdfPath := filepath.Join(dir, filepath.Base(filename))
	out, err := os.Create(pdfPath)
	if err != nil {
		cleanup()
		return "", nil, err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		cleanup()
		return "", nil, err
	}
	return pdfPath, cleanup, nil
}

// writeConvertError maps converter failures onto HTTP statuses.
func (h *ConvertHandler) writeConvertError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, converter.ErrInvalidMethod):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, converter.ErrFileNotFound):
		WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, converter.ErrAllMethodsFailed):
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		// Explicit-method extraction failures land here.
		WriteError(w, http.StatusUnprocessableEntity, err.Error())
	}
}
