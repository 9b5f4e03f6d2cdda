package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resumescan-backend/internal/pipeline"
	"resumescan-backend/internal/records"
	"resumescan-backend/internal/render"
	"resumescan-backend/internal/server/respond"
	"resumescan-backend/internal/storage/object"
)

const maxUploadBytes = 10 << 20

// Handler wires HTTP handlers to the pipeline and record store.
type Handler struct {
	Pipeline *pipeline.Service
	Records  *records.Store
	Store    object.ObjectStore
	Previews *render.HandleRegistry
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.startAnalysis)
	rg.GET("/resumes/:id", h.getRecord)
	rg.GET("/resumes/:id/file", h.downloadResume)
	rg.GET("/resumes/:id/image", h.downloadImage)
	rg.GET("/previews/:handle", h.getPreview)
	rg.DELETE("/previews/:handle", h.revokePreview)
}

func (h *Handler) startAnalysis(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "resume file is required", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read resume file", nil)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read resume file", nil)
		return
	}

	id := h.Pipeline.Start(c.Request.Context(), pipeline.Request{
		FileName:       fileHeader.Filename,
		Data:           data,
		CompanyName:    c.PostForm("companyName"),
		JobTitle:       c.PostForm("jobTitle"),
		JobDescription: c.PostForm("jobDescription"),
	})

	respond.JSON(c, http.StatusAccepted, gin.H{
		"id":     id,
		"status": records.StatusPending,
	})
}

func (h *Handler) getRecord(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "record id is required", nil)
		return
	}

	rec, err := h.Records.Get(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, records.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch record", nil)
		}
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) downloadResume(c *gin.Context) {
	h.streamArtifact(c, "application/pdf", func(rec records.EvaluationRecord) string {
		return rec.ResumeLocation
	})
}

func (h *Handler) downloadImage(c *gin.Context) {
	h.streamArtifact(c, "image/png", func(rec records.EvaluationRecord) string {
		return rec.ImageLocation
	})
}

func (h *Handler) streamArtifact(c *gin.Context, contentType string, location func(records.EvaluationRecord) string) {
	rec, err := h.Records.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, records.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch record", nil)
		}
		return
	}

	loc := location(rec)
	if loc == "" {
		respond.Error(c, http.StatusNotFound, "not_found", "artifact not available", nil)
		return
	}

	body, err := h.Store.Open(c.Request.Context(), loc)
	if err != nil {
		respond.Error(c, http.StatusNotFound, "not_found", "artifact not available", nil)
		return
	}
	defer body.Close()

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

func (h *Handler) getPreview(c *gin.Context) {
	data, ok := h.Previews.Open(c.Param("handle"))
	if !ok {
		respond.Error(c, http.StatusNotFound, "not_found", "preview not found", nil)
		return
	}
	c.Data(http.StatusOK, "image/png", data)
}

func (h *Handler) revokePreview(c *gin.Context) {
	h.Previews.Revoke(c.Param("handle"))
	c.Status(http.StatusNoContent)
}
