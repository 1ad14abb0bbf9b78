package server

import (
	"time"

	"github.com/google/uuid"
)

// AuditLogEntry records one API request for the audit stream.
type AuditLogEntry struct {
	ID         uuid.UUID `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	Handler    string    `json:"handler"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	Username   string    `json:"username,omitempty"`
	Caller     string    `json:"caller,omitempty"`
	UnitNumber string    `json:"unit_number,omitempty"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
