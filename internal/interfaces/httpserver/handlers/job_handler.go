package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/job"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/requests"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/responses"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// JobHandler exposes job-board endpoints.
type JobHandler struct {
	service *job.Service
	log     zerolog.Logger
}

func NewJobHandler(service *job.Service, log zerolog.Logger) *JobHandler {
	return &JobHandler{
		service: service,
		log:     log.With().Str("component", "job-handler").Logger(),
	}
}

func (h *JobHandler) Create(c *gin.Context) {
	var req requests.CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &job.Job{
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        job.Type(req.Type),
		Description: req.Description,
		ApplyURL:    req.ApplyURL,
		Deadline:    req.Deadline,
		PostedBy:    auth.UserID(c),
	})
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List supports optional type and location query filters.
func (h *JobHandler) List(c *gin.Context) {
	var filter job.Filter
	if raw := c.Query("type"); raw != "" {
		jobType := job.Type(raw)
		filter.Type = &jobType
	}
	if raw := c.Query("location"); raw != "" {
		filter.Location = &raw
	}

	jobs, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	posting, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, posting)
}

func (h *JobHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}
	var req requests.UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), auth.UserID(c), &job.Job{
		ID:          id,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Type:        job.Type(req.Type),
		Description: req.Description,
		ApplyURL:    req.ApplyURL,
		Deadline:    req.Deadline,
	})
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.OK)
}
