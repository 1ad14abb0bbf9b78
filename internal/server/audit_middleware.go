package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

func (s *Server) auditLogMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := AuditLogEntry{
			ID:        uuid.New(),
			Timestamp: time.Now().UTC(),
			Method:    r.Method,
			Path:      r.URL.Path,
			Handler:   handlerName(r),
		}

		if username, _, ok := r.BasicAuth(); ok {
			entry.Username = username
		}
		entry.Caller = string(callerFrom(r.Context()))

		if unitNumber := mux.Vars(r)["unitNumber"]; unitNumber != "" {
			entry.UnitNumber = unitNumber
		}

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(requestBody))
			entry.Request = string(requestBody)

			if entry.UnitNumber == "" {
				var probe struct {
					UnitNumber string `json:"unit_number"`
				}
				if err := json.Unmarshal(requestBody, &probe); err == nil {
					entry.UnitNumber = probe.UnitNumber
				}
			}
		}

		wrw := newResponseWriterWrapper(w)

		next.ServeHTTP(wrw, r)

		entry.StatusCode = wrw.GetStatusCode()
		entry.Response = string(wrw.GetBody())

		s.AuditManager.LogEntry(r.Context(), entry)
	})
}

func handlerName(r *http.Request) string {
	path, method := r.URL.Path, r.Method

	switch {
	case strings.HasPrefix(path, "/facilities"):
		switch {
		case method == http.MethodPost:
			return "handleRegisterFacility"
		case strings.HasSuffix(path, "/active"):
			return "handleSetFacilityActive"
		case path == "/facilities":
			return "handleListFacilities"
		default:
			return "handleGetFacility"
		}
	case strings.HasPrefix(path, "/containers"):
		if method == http.MethodPost {
			return "handleRegisterContainer"
		}
		return "handleGetContainer"
	case strings.HasPrefix(path, "/handoffs"):
		switch {
		case strings.HasSuffix(path, "/initiate"):
			return "handleInitiateHandoff"
		case strings.HasSuffix(path, "/confirm"):
			return "handleConfirmHandoff"
		default:
			return "handleHandoffStatus"
		}
	}

	return "unknown"
}
