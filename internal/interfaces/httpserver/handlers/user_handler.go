package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/requests"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/responses"
	"github.com/mb-aarfi/glbconnect-sub000/internal/utils/apperrors"
)

// UserHandler exposes account and directory endpoints.
type UserHandler struct {
	service *user.Service
	log     zerolog.Logger
}

func NewUserHandler(service *user.Service, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With().Str("component", "user-handler").Logger(),
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req requests.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	account, token, err := h.service.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusCreated, responses.AuthResponse{Token: token, User: account})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req requests.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err, h.log)
		return
	}

	account, token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}

	c.JSON(http.StatusOK, responses.AuthResponse{Token: token, User: account})
}

// List returns every account except the caller, for the people directory.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), auth.UserID(c))
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id", h.log)
	if !ok {
		return
	}

	account, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		apperrors.WriteError(c, err, h.log)
		return
	}
	c.JSON(http.StatusOK, account)
}

// pathID parses a numeric path parameter, writing a validation error on
// malformed input.
func pathID(c *gin.Context, name string, log zerolog.Logger) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		apperrors.WriteError(c, apperrors.New(
			c.Request.Context(),
			apperrors.LayerHandler,
			apperrors.ErrorTypeValidation,
			"invalid "+name+" path parameter",
			err,
			"2f1f5a0e-8a41-4bd0-9f6e-3a0c1d3f9b77",
		), log)
		return 0, false
	}
	return uint(id), true
}

func writeBindError(c *gin.Context, err error, log zerolog.Logger) {
	apperrors.WriteError(c, apperrors.New(
		c.Request.Context(),
		apperrors.LayerHandler,
		apperrors.ErrorTypeValidation,
		"invalid request body",
		err,
		"c6a7d35b-1a4d-4a62-92d4-5b7f3f2ce401",
	), log)
}
