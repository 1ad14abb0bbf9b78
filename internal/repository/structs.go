package repository

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("not found")

type Container struct {
	TokenID           uint64     `db:"token_id"`
	UnitNumber        string     `db:"unit_number"`
	ISOType           string     `db:"iso_type"`
	OwnerCode         string     `db:"owner_code"`
	TareWeight        int64      `db:"tare_weight"`
	MaxGrossWeight    int64      `db:"max_gross_weight"`
	RegisteredAt      time.Time  `db:"registered_at"`
	Owner             string     `db:"owner"`
	Possessor         string     `db:"possessor"`
	PossessionExpires *time.Time `db:"possession_expires"`
	HandoffFrom       string     `db:"handoff_from"`
	HandoffTo         string     `db:"handoff_to"`
	HandoffExpires    *time.Time `db:"handoff_expires"`
	HandoffInitiated  *time.Time `db:"handoff_initiated_at"`
	HandoffStatus     int16      `db:"handoff_status"`
	Version           uint64     `db:"version"`
}

type Facility struct {
	Address      string    `db:"address"`
	Code         string    `db:"code"`
	Type         string    `db:"type"`
	Name         string    `db:"name"`
	Location     string    `db:"location"`
	IsActive     bool      `db:"is_active"`
	RegisteredAt time.Time `db:"registered_at"`
}

type TaskStatus string

const (
	TaskStatusCreated    TaskStatus = "CREATED"
	TaskStatusProcessing TaskStatus = "PROCESSING"
	TaskStatusFailed     TaskStatus = "FAILED"
	TaskStatusDone       TaskStatus = "DONE"
)

type OutboxTask struct {
	ID          uuid.UUID       `db:"id"`
	Status      TaskStatus      `db:"status"`
	Payload     json.RawMessage `db:"payload"`
	Topic       string          `db:"topic"`
	Attempts    int             `db:"attempts"`
	LastError   *string         `db:"last_error"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
	CompletedAt *time.Time      `db:"completed_at"`
}
