// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"spots_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Import Domain Events
// =============================================================================

// ImportCompleted is published when a URL import produced a spot draft.
type ImportCompleted struct {
	BaseEvent
	ImportID uuid.UUID `json:"importId"`
	Provider string    `json:"provider"`
	Source   string    `json:"source"`
	SpotName string    `json:"spotName"`
	City     string    `json:"city,omitempty"`
	CitySlug string    `json:"citySlug,omitempty"`
}

func (e ImportCompleted) EventName() string { return "imports.import.completed" }

// ImportFailed is published when a URL import could not produce a draft.
// Validation rejections are not failures of the pipeline and are not published.
type ImportFailed struct {
	BaseEvent
	ImportID uuid.UUID `json:"importId"`
	Provider string    `json:"provider,omitempty"`
	Reason   string    `json:"reason"`
}

func (e ImportFailed) EventName() string { return "imports.import.failed" }
