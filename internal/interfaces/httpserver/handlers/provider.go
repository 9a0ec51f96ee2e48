package handlers

import (
	"github.com/rs/zerolog"

	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/job"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/resource"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
)

// Provider wires HTTP handlers.
type Provider struct {
	User     *UserHandler
	Message  *MessageHandler
	Event    *EventHandler
	Job      *JobHandler
	Resource *ResourceHandler
}

func NewProvider(
	users *user.Service,
	messages *message.Service,
	events *event.Service,
	jobs *job.Service,
	resources *resource.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		User:     NewUserHandler(users, log),
		Message:  NewMessageHandler(messages, log),
		Event:    NewEventHandler(events, log),
		Job:      NewJobHandler(jobs, log),
		Resource: NewResourceHandler(resources, log),
	}
}
