package services

import "github.com/sirupsen/logrus"

// Event types emitted by the services.
const (
	EventMemberRegistered = "member.registered"
	EventMessageCreated   = "message.created"
)

// EventPublisher delivers domain events to an external broker.
type EventPublisher interface {
	Publish(eventType string, payload interface{}) error
}

// publish sends an event if a publisher is configured. Failures are logged only.
func publish(p EventPublisher, log logrus.FieldLogger, eventType string, payload interface{}) {
	if p == nil {
		return
	}
	if err := p.Publish(eventType, payload); err != nil {
		log.WithError(err).WithField("event", eventType).Warn("failed to publish event")
		return
	}
	log.WithField("event", eventType).Debug("event published")
}
