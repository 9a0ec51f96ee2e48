package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/requests"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/responses"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// EventHandler exposes event and registration endpoints.
type EventHandler struct {
	service *event.Service
	log     zerolog.Logger
}

func NewEventHandler(service *event.Service, log zerolog.Logger) *EventHandler {
	return &EventHandler{
		service: service,
		log:     log.With().Str("component", "event-handler").Logger(),
	}
}

func (h *EventHandler) Create(c *gin.Context) {
	var req requests.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	created, err := h.service.Create(c.Request.Context(), &event.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		OrganizerID: auth.UserID(c),
	})
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *EventHandler) List(c *gin.Context) {
	events, err := h.service.List(c.Request.Context())
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	evt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, evt)
}

// Update replaces an event's fields. Only the organizer may update.
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}
	var req requests.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), auth.UserID(c), &event.Event{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *EventHandler) Delete(c *gin.Context) {
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

// Register signs the caller up for an event. A second registration for the
// same event returns 409.
func (h *EventHandler) Register(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	reg, err := h.service.Register(c.Request.Context(), id, auth.UserID(c))
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusCreated, reg)
}

func (h *EventHandler) Unregister(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	if err := h.service.Unregister(c.Request.Context(), id, auth.UserID(c)); err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, responses.OK)
}

func (h *EventHandler) Registrations(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	regs, err := h.service.ListRegistrations(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, regs)
}
