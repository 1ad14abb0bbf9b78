//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/antonym0505/intermodal/internal/cache"
	"github.com/antonym0505/intermodal/internal/handoff"
	"github.com/antonym0505/intermodal/internal/ledger"
	"github.com/antonym0505/intermodal/internal/registry"
	"github.com/antonym0505/intermodal/internal/repository"
)

// Containers is the ledger surface the HTTP layer needs.
type Containers interface {
	RegisterContainer(ctx context.Context, caller, owner ledger.Identity, unitNumber, isoType, ownerCode string, tareWeight, maxGrossWeight int64) (uint64, ledger.Receipt, error)
	TokenIDByUnitNumber(ctx context.Context, unitNumber string) (uint64, error)
	GetContainer(ctx context.Context, tokenID uint64) (*ledger.Container, error)
}

// Facilities is the registry surface the HTTP layer needs.
type Facilities interface {
	RegisterFacility(ctx context.Context, caller, address ledger.Identity, code string, facilityType registry.FacilityType, name, location string) (*registry.Facility, error)
	GetFacility(ctx context.Context, address ledger.Identity) (*registry.Facility, error)
	GetAllFacilities(ctx context.Context) ([]registry.Facility, error)
	SetActive(ctx context.Context, caller, address ledger.Identity, active bool) error
}

// Handoffs is the coordinator surface the HTTP layer needs.
type Handoffs interface {
	Initiate(ctx context.Context, caller ledger.Identity, unitNumber string, to ledger.Identity, duration time.Duration, bookingReference string) (string, *ledger.InitiateResult, error)
	Confirm(ctx context.Context, caller ledger.Identity, unitNumber, presentedReference, location string) (*ledger.ConfirmResult, error)
	Status(ctx context.Context, unitNumber string) (*handoff.StatusInfo, error)
}

// UserAuthenticator resolves basic-auth credentials to the on-ledger
// identity the request acts as. Nil authenticator (no database) falls
// back to username-as-identity, for dev and tests.
type UserAuthenticator interface {
	Authenticate(ctx context.Context, username, password string) (ledger.Identity, error)
}

type Server struct {
	containers Containers
	facilities Facilities
	handoffs   Handoffs
	users      UserAuthenticator
	cache      *cache.ContainerCache
	events     handoff.EventSink
	logger     *zap.Logger

	server       *http.Server
	AuditManager *AuditManager
}

func New(containers Containers, facilities Facilities, handoffs Handoffs, users UserAuthenticator, containerCache *cache.ContainerCache, events handoff.EventSink, logger *zap.Logger, auditManager *AuditManager) *Server {
	if containerCache == nil {
		containerCache = cache.NewContainerCache()
	}
	if events == nil {
		events = handoff.NopEventSink{}
	}
	return &Server{
		containers:   containers,
		facilities:   facilities,
		handoffs:     handoffs,
		users:        users,
		cache:        containerCache,
		events:       events,
		logger:       logger,
		AuditManager: auditManager,
	}
}

func (s *Server) Run(ctx context.Context, port string) error {
	router := s.setupRoutes()

	s.server = &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	s.logger.Info("http server shutdown completed")

	s.AuditManager.Shutdown(ctx)
	return nil
}

func (s *Server) setupRoutes() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(s.basicAuthMiddleware, s.auditLogMiddleware)

	api.HandleFunc("/facilities", s.handleRegisterFacility).Methods(http.MethodPost)
	api.HandleFunc("/facilities", s.handleListFacilities).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{address}", s.handleGetFacility).Methods(http.MethodGet)
	api.HandleFunc("/facilities/{address}/active", s.handleSetFacilityActive).Methods(http.MethodPut)

	api.HandleFunc("/containers", s.handleRegisterContainer).Methods(http.MethodPost)
	api.HandleFunc("/containers/{unitNumber}", s.handleGetContainer).Methods(http.MethodGet)

	api.HandleFunc("/handoffs/initiate", s.handleInitiateHandoff).Methods(http.MethodPost)
	api.HandleFunc("/handoffs/confirm", s.handleConfirmHandoff).Methods(http.MethodPost)
	api.HandleFunc("/handoffs/{unitNumber}/status", s.handleHandoffStatus).Methods(http.MethodGet)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type contextKey string

const callerKey contextKey = "caller"

func callerFrom(ctx context.Context) ledger.Identity {
	caller, _ := ctx.Value(callerKey).(ledger.Identity)
	return caller
}

func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, password, ok := r.BasicAuth()
		if !ok {
			w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		caller := ledger.Identity(username)
		if s.users != nil {
			identity, err := s.users.Authenticate(r.Context(), username, password)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			caller = identity
		}

		ctx := context.WithValue(r.Context(), callerKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the error taxonomy onto HTTP statuses.
// Version conflicts that survived the ledger's retries come back as
// 503 so the client knows a retry is safe.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, registry.ErrNotFound),
		errors.Is(err, repository.ErrObjectNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrConflict),
		errors.Is(err, registry.ErrConflict):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrUnauthorized),
		errors.Is(err, registry.ErrUnauthorized),
		errors.Is(err, ledger.ErrNotAuthorizedFacility):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, ledger.ErrInvalidState),
		errors.Is(err, handoff.ErrInvalidReference),
		errors.Is(err, ledger.ErrValidation),
		errors.Is(err, registry.ErrValidation):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrUnconfigured),
		errors.Is(err, registry.ErrUnconfigured):
		respondError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, ledger.ErrVersionConflict):
		respondError(w, http.StatusServiceUnavailable, "ledger busy, retry: "+err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}
