// Package notification turns domain events into user-facing notifications.
// It subscribes to import events, renders title and body from the copy
// templates, and hands the result to an injected sender. Delivery itself
// (push, email, whatever the app uses) lives outside this service.
package notification

import (
	"context"

	"spots_backend/internal/events"
	"spots_backend/internal/notification/copy"
	"spots_backend/platform/config"
	"spots_backend/platform/logger"
)

// Notification is a rendered, ready-to-deliver message.
type Notification struct {
	Title    string
	Body     string
	Provider string
	ImportID string
}

// Sender delivers a prepared notification. Without one, the module logs
// the prepared message and drops it.
type Sender interface {
	Send(ctx context.Context, n Notification) error
}

// Module is the notification bounded context.
type Module struct {
	copy   *copy.Service
	sender Sender
	log    *logger.Logger
}

func New(cfg config.NotifyCopyConfig, log *logger.Logger) *Module {
	return &Module{
		copy: copy.NewService(cfg, log),
		log:  log,
	}
}

// SetSender injects the delivery collaborator.
func (m *Module) SetSender(sender Sender) {
	m.sender = sender
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.ImportCompleted{}.EventName(), events.HandlerFunc(m.handleImportCompleted))
}

func (m *Module) handleImportCompleted(ctx context.Context, event events.Event) error {
	completed, ok := event.(events.ImportCompleted)
	if !ok {
		return nil
	}

	city := completed.City
	if city == "" {
		city = "your collection"
	}
	vars := map[string]string{
		"spot":     completed.SpotName,
		"city":     city,
		"provider": completed.Provider,
	}

	templates := m.copy.Current(ctx)
	notification := Notification{
		Title:    copy.Render(templates.ImportCompletedTitle, vars),
		Body:     copy.Render(templates.ImportCompletedBody, vars),
		Provider: completed.Provider,
		ImportID: completed.ImportID.String(),
	}

	if m.sender == nil {
		m.log.Info("notification prepared, no sender configured",
			"title", notification.Title,
			"importId", notification.ImportID,
		)
		return nil
	}

	if err := m.sender.Send(ctx, notification); err != nil {
		m.log.UpstreamError("notification-sender", err)
		return err
	}
	return nil
}
