package models

import "time"

// HeaterEvent is a single log entry.
type HeaterEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // POWER_ON | POWER_OFF | TARGET_SET | SENSOR
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}
