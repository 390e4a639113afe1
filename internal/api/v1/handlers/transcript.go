package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"speech2text/internal/api/errors"
	"speech2text/internal/api/middleware"
	"speech2text/internal/api/v1/dto"
	"speech2text/internal/api/v1/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TranscriptHandler handles transcript endpoints
type TranscriptHandler struct {
	service        services.TranscriptService
	maxUploadBytes int64
}

// NewTranscriptHandler creates a new transcript handler. A positive
// maxUploadBytes caps the request body of uploads.
func NewTranscriptHandler(service services.TranscriptService, maxUploadBytes int64) *TranscriptHandler {
	return &TranscriptHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Upload handles POST /upload-audio
//
// @Summary Upload and transcribe an audio file
// @Description Stores a processing record, sends the audio to the speech-to-text vendor and returns the finished transcript.
// @Tags Transcription
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Audio file (content type must start with audio/)"
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} errors.APIError "Missing file or non-audio content type"
// @Failure 500 {object} errors.APIError "Database or vendor failure"
// @Router /upload-audio [post]
func (h *TranscriptHandler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			middleware.HandleError(c, errors.NewBadRequestError(fmt.Sprintf("File exceeds the %d byte upload limit", tooLarge.Limit)))
			return
		}
		middleware.HandleError(c, errors.NewBadRequestError("No file uploaded"))
		return
	}

	file, err := header.Open()
	if err != nil {
		middleware.HandleError(c, errors.NewBadRequestError("Unreadable file upload"))
		return
	}
	defer file.Close()

	response, err := h.service.Upload(c.Request.Context(), services.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Get handles GET /transcript/:id
//
// @Summary Get a transcript
// @Tags Transcription
// @Produce json
// @Param id path int true "Transcript ID"
// @Success 200 {object} dto.TranscriptResponse
// @Failure 400 {object} errors.APIError "ID is not an integer"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 500 {object} errors.APIError "Failed to fetch transcript"
// @Router /transcript/{id} [get]
func (h *TranscriptHandler) Get(c *gin.Context) {
	var uri dto.TranscriptURI
	if err := middleware.ValidateURI(c, &uri); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Get(c.Request.Context(), uri.ID)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// List handles GET /transcripts
//
// @Summary List transcripts
// @Description Returns every transcript, newest first. Backend failures yield an empty list.
// @Tags Transcripts
// @Produce json
// @Success 200 {array} dto.TranscriptResponse
// @Router /transcripts [get]
func (h *TranscriptHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.List(c.Request.Context()))
}

// Delete handles DELETE /transcript/:id
//
// @Summary Delete a transcript
// @Tags Transcripts
// @Produce json
// @Param id path int true "Transcript ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} errors.APIError "ID is not an integer"
// @Failure 404 {object} errors.APIError "Transcript not found"
// @Failure 500 {object} errors.APIError "Failed to delete transcript"
// @Router /transcript/{id} [delete]
func (h *TranscriptHandler) Delete(c *gin.Context) {
	var uri dto.TranscriptURI
	if err := middleware.ValidateURI(c, &uri); err != nil {
		middleware.HandleError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID); err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Transcript deleted successfully"})
}

// Export handles GET /transcripts/export
//
// @Summary Export transcripts as xlsx
// @Tags Transcripts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Failure 500 {object} errors.APIError "Failed to export transcripts"
// @Router /transcripts/export [get]
func (h *TranscriptHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), &buf); err != nil {
		middleware.HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("transcripts-%s.xlsx", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
