package v1

import (
	"github.com/gin-gonic/gin"

	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// RegisterPublic attaches v1 routes that work without a bearer token.
func (r *Routes) RegisterPublic(router gin.IRouter) {
	group := router.Group("/v1")
	group.POST("/auth/register", r.handlers.User.Register)
	group.POST("/auth/login", r.handlers.User.Login)
}

// RegisterProtected attaches v1 routes behind the auth middleware.
func (r *Routes) RegisterProtected(router gin.IRouter) {
	group := router.Group("/v1")

	group.GET("/users", r.handlers.User.List)
	group.GET("/users/:id", r.handlers.User.Get)

	group.POST("/messages", r.handlers.Message.Send)
	group.GET("/messages/history/:userID", r.handlers.Message.History)
	group.PUT("/messages/:id/seen", r.handlers.Message.MarkSeen)
	group.GET("/conversations", r.handlers.Message.Conversations)
	group.GET("/anonymous-messages", r.handlers.Message.AnonymousHistory)

	group.POST("/events", r.handlers.Event.Create)
	group.GET("/events", r.handlers.Event.List)
	group.GET("/events/:id", r.handlers.Event.Get)
	group.PUT("/events/:id", r.handlers.Event.Update)
	group.DELETE("/events/:id", r.handlers.Event.Delete)
	group.POST("/events/:id/register", r.handlers.Event.Register)
	group.DELETE("/events/:id/register", r.handlers.Event.Unregister)
	group.GET("/events/:id/registrations", r.handlers.Event.Registrations)

	group.POST("/jobs", r.handlers.Job.Create)
	group.GET("/jobs", r.handlers.Job.List)
	group.GET("/jobs/:id", r.handlers.Job.Get)
	group.PUT("/jobs/:id", r.handlers.Job.Update)
	group.DELETE("/jobs/:id", r.handlers.Job.Delete)

	group.POST("/resources", r.handlers.Resource.Create)
	group.GET("/resources", r.handlers.Resource.List)
	group.GET("/resources/:id", r.handlers.Resource.Get)
	group.DELETE("/resources/:id", r.handlers.Resource.Delete)
	group.POST("/resources/:id/download", r.handlers.Resource.Download)
	group.GET("/resource-categories", r.handlers.Resource.Categories)
}
