package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/antonym0505/intermodal/internal/ledger"
)

var (
	ErrNotFound     = errors.New("facility not found")
	ErrConflict     = errors.New("facility already registered")
	ErrUnauthorized = errors.New("caller not authorized")
	ErrValidation   = errors.New("validation failed")
	ErrUnconfigured = errors.New("operator not configured")
)

type FacilityType string

const (
	FacilityTerminal FacilityType = "TERMINAL"
	FacilityPort     FacilityType = "PORT"
	FacilityDepot    FacilityType = "DEPOT"
	FacilityVessel   FacilityType = "VESSEL"
	FacilityRail     FacilityType = "RAIL"
	FacilityTruck    FacilityType = "TRUCK"
)

// ParseFacilityType accepts the enum name in any case.
func ParseFacilityType(s string) (FacilityType, error) {
	switch FacilityType(strings.ToUpper(s)) {
	case FacilityTerminal, FacilityPort, FacilityDepot, FacilityVessel, FacilityRail, FacilityTruck:
		return FacilityType(strings.ToUpper(s)), nil
	default:
		return "", fmt.Errorf("%w: unknown facility type %q", ErrValidation, s)
	}
}

type Facility struct {
	Address      ledger.Identity `json:"address"`
	Code         string          `json:"code"`
	Type         FacilityType    `json:"type"`
	Name         string          `json:"name"`
	Location     string          `json:"location"`
	IsActive     bool            `json:"is_active"`
	RegisteredAt time.Time       `json:"registered_at"`
}
