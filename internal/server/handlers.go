package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/antonym0505/intermodal/internal/handoff"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/metrics"
	"github.com/antonym0505/intermodal/internal/registry"
)

func (s *Server) handleRegisterFacility(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Address  string `json:"address"`
		Code     string `json:"code"`
		Type     string `json:"type"`
		Name     string `json:"name"`
		Location string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	facilityType, err := registry.ParseFacilityType(req.Type)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	facility, err := s.facilities.RegisterFacility(r.Context(), callerFrom(r.Context()),
		ledger.Identity(req.Address), req.Code, facilityType, req.Name, req.Location)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.FacilitiesRegisteredTotal.Inc()
	s.events.Emit(r.Context(), handoff.EventFacilityRegistered, handoff.FacilityRegisteredEvent{
		Address:      string(facility.Address),
		Code:         facility.Code,
		FacilityType: string(facility.Type),
		Name:         facility.Name,
	})
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Facility registered successfully",
		"address": string(facility.Address),
		"code":    facility.Code,
	})
}

type facilityResponse struct {
	Address      string    `json:"address"`
	Code         string    `json:"code"`
	Type         string    `json:"type"`
	Name         string    `json:"name"`
	Location     string    `json:"location"`
	IsActive     bool      `json:"is_active"`
	RegisteredAt time.Time `json:"registered_at"`
}

func toFacilityResponse(f *registry.Facility) facilityResponse {
	return facilityResponse{
		Address:      string(f.Address),
		Code:         f.Code,
		Type:         string(f.Type),
		Name:         f.Name,
		Location:     f.Location,
		IsActive:     f.IsActive,
		RegisteredAt: f.RegisteredAt,
	}
}

func (s *Server) handleListFacilities(w http.ResponseWriter, r *http.Request) {
	facilities, err := s.facilities.GetAllFacilities(r.Context())
	if err != nil {
		respondDomainError(w, err)
		return
	}

	responses := make([]facilityResponse, len(facilities))
	for i := range facilities {
		responses[i] = toFacilityResponse(&facilities[i])
	}
	respondJSON(w, http.StatusOK, responses)
}

func (s *Server) handleGetFacility(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if address == "" {
		respondError(w, http.StatusBadRequest, "Missing facility address")
		return
	}

	facility, err := s.facilities.GetFacility(r.Context(), ledger.Identity(address))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toFacilityResponse(facility))
}

func (s *Server) handleSetFacilityActive(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["address"]
	if address == "" {
		respondError(w, http.StatusBadRequest, "Missing facility address")
		return
	}

	var req struct {
		Active bool `json:"active"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.facilities.SetActive(r.Context(), callerFrom(r.Context()), ledger.Identity(address), req.Active); err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Facility active flag updated",
		"address": address,
		"active":  req.Active,
	})
}

func (s *Server) handleRegisterContainer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Owner          string `json:"owner"`
		UnitNumber     string `json:"unit_number"`
		ISOType        string `json:"iso_type"`
		OwnerCode      string `json:"owner_code"`
		TareWeight     int64  `json:"tare_weight"`
		MaxGrossWeight int64  `json:"max_gross_weight"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	tokenID, _, err := s.containers.RegisterContainer(r.Context(), callerFrom(r.Context()),
		ledger.Identity(req.Owner), req.UnitNumber, req.ISOType, req.OwnerCode,
		req.TareWeight, req.MaxGrossWeight)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	metrics.ContainersRegisteredTotal.Inc()
	s.events.Emit(r.Context(), handoff.EventContainerRegistered, handoff.ContainerRegisteredEvent{
		TokenID:    tokenID,
		UnitNumber: req.UnitNumber,
		Owner:      req.Owner,
		ISOType:    req.ISOType,
	})
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Container registered successfully",
		"token_id":    tokenID,
		"unit_number": req.UnitNumber,
	})
}

type containerResponse struct {
	TokenID           uint64     `json:"token_id"`
	UnitNumber        string     `json:"unit_number"`
	ISOType           string     `json:"iso_type"`
	OwnerCode         string     `json:"owner_code"`
	TareWeight        int64      `json:"tare_weight"`
	MaxGrossWeight    int64      `json:"max_gross_weight"`
	RegisteredAt      time.Time  `json:"registered_at"`
	Owner             string     `json:"owner"`
	Possessor         *string    `json:"possessor"`
	PossessionExpires *time.Time `json:"possession_expires"`
}

func toContainerResponse(c *ledger.Container) containerResponse {
	resp := containerResponse{
		TokenID:        c.TokenID,
		UnitNumber:     c.UnitNumber,
		ISOType:        c.ISOType,
		OwnerCode:      c.OwnerCode,
		TareWeight:     c.TareWeight,
		MaxGrossWeight: c.MaxGrossWeight,
		RegisteredAt:   c.RegisteredAt,
		Owner:          string(c.Owner),
	}
	if !c.Possessor.IsZero() {
		possessor := string(c.Possessor)
		resp.Possessor = &possessor
		expires := c.PossessionExpires
		resp.PossessionExpires = &expires
	}
	return resp
}

func (s *Server) handleGetContainer(w http.ResponseWriter, r *http.Request) {
	unitNumber := mux.Vars(r)["unitNumber"]
	if unitNumber == "" {
		respondError(w, http.StatusBadRequest, "Missing unit number")
		return
	}

	tokenID, err := s.containers.TokenIDByUnitNumber(r.Context(), unitNumber)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if tokenID == 0 {
		respondError(w, http.StatusNotFound, "Container "+unitNumber+" not found")
		return
	}

	if cached, found := s.cache.Get(tokenID); found {
		respondJSON(w, http.StatusOK, toContainerResponse(cached))
		return
	}

	container, err := s.containers.GetContainer(r.Context(), tokenID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	s.cache.Set(container)

	respondJSON(w, http.StatusOK, toContainerResponse(container))
}

func (s *Server) handleInitiateHandoff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitNumber        string `json:"unit_number"`
		ToFacilityAddress string `json:"to_facility_address"`
		DurationSeconds   int64  `json:"duration_seconds"`
		BookingReference  string `json:"booking_reference"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UnitNumber == "" || req.ToFacilityAddress == "" {
		respondError(w, http.StatusBadRequest, "Missing unit_number or to_facility_address")
		return
	}

	reference, result, err := s.handoffs.Initiate(r.Context(), callerFrom(r.Context()),
		req.UnitNumber, ledger.Identity(req.ToFacilityAddress),
		time.Duration(req.DurationSeconds)*time.Second, req.BookingReference)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	s.cache.Invalidate(result.TokenID)

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success":           true,
		"message":           "Possession transfer initiated",
		"booking_reference": reference,
		"expires":           result.Handoff.Expires,
	})
}

func (s *Server) handleConfirmHandoff(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UnitNumber       string `json:"unit_number"`
		BookingReference string `json:"booking_reference"`
		Location         string `json:"location"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.UnitNumber == "" {
		respondError(w, http.StatusBadRequest, "Missing unit_number")
		return
	}

	result, err := s.handoffs.Confirm(r.Context(), callerFrom(r.Context()),
		req.UnitNumber, req.BookingReference, req.Location)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	s.cache.Invalidate(result.TokenID)

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Possession confirmed",
		"possessor": string(result.Possessor),
	})
}

func (s *Server) handleHandoffStatus(w http.ResponseWriter, r *http.Request) {
	unitNumber := mux.Vars(r)["unitNumber"]
	if unitNumber == "" {
		respondError(w, http.StatusBadRequest, "Missing unit number")
		return
	}

	info, err := s.handoffs.Status(r.Context(), unitNumber)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	if !info.HasPendingHandoff {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"has_pending_handoff": false,
			"message":             "No pending handoff for this container",
		})
		return
	}

	response := map[string]interface{}{
		"has_pending_handoff": true,
		"token_id":            info.TokenID,
		"from":                string(info.From),
		"to":                  string(info.To),
		"expires":             info.Expires,
		"initiated_at":        info.InitiatedAt,
		"status":              info.Status.String(),
	}
	if info.BookingReference != "" {
		response["booking_reference"] = info.BookingReference
	}

	s.logger.Debug("handoff status served",
		zap.String("unit_number", unitNumber),
		zap.String("status", info.Status.String()))
	respondJSON(w, http.StatusOK, response)
}
