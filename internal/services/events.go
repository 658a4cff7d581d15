package services

import "log/slog"

// Routing keys of the domain events published after successful writes.
const (
	EventJobCreated               = "job.created"
	EventJobClosed                = "job.closed"
	EventApplicationSubmitted     = "application.submitted"
	EventApplicationStatusChanged = "application.status_changed"
)

// EventPublisher delivers domain events to a broker. Publishing is
// best-effort: a failure is logged and never fails the operation.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

func publish(p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		slog.Warn("failed to publish event", "routing_key", routingKey, "error", err)
	}
}

type jobEvent struct {
	JobID      string `json:"jobId"`
	EmployerID string `json:"employerId"`
	Title      string `json:"title"`
}

type applicationEvent struct {
	ApplicationID string `json:"applicationId"`
	JobID         string `json:"jobId"`
	ApplicantID   string `json:"applicantId"`
	Status        string `json:"status"`
}
