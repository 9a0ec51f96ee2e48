package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/resource"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/requests"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/responses"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// ResourceHandler exposes the shared resource library.
type ResourceHandler struct {
	service *resource.Service
	log     zerolog.Logger
}

func NewResourceHandler(service *resource.Service, log zerolog.Logger) *ResourceHandler {
	return &ResourceHandler{
		service: service,
		log:     log.With().Str("component", "resource-handler").Logger(),
	}
}

func (h *ResourceHandler) Create(c *gin.Context) {
	var req requests.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &resource.Resource{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		FileURL:     req.FileURL,
		Tags:        req.Tags,
		UploadedBy:  auth.UserID(c),
	})
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// List supports an optional category query filter.
func (h *ResourceHandler) List(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apperrors.WriteError(c, apperrors.New(
				c.Request.Context(),
				apperrors.LayerHandler,
				apperrors.ErrorTypeValidation,
				"invalid category_id query parameter",
				err,
				"4f8c21de-9b36-4e7a-8d12-c05a7b3e9f64",
			), h.log)
			return
		}
		id := uint(parsed)
		categoryID = &id
	}

	resources, err := h.service.List(c.Request.Context(), categoryID)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ResourceHandler) Delete(c *gin.Context) {
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

// Download records a download and returns the refreshed resource so
// clients can show the new count alongside the file URL.
func (h *ResourceHandler) Download(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	res, err := h.service.RecordDownload(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *ResourceHandler) Categories(c *gin.Context) {
	categories, err := h.service.ListCategories(c.Request.Context())
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, categories)
}
