// Package api - Thin resolution API layer
// The API is ONLY responsible for: input ingestion, resolver orchestration,
// output serialization. The API NEVER performs rate logic.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"tourcost/core/catalog"
	"tourcost/core/resolver"
	"tourcost/core/rollup"
	"tourcost/core/types"
	"tourcost/internal/errors"
	"tourcost/internal/logging"
)

// Server is the API server
type Server struct {
	services map[string]*types.Service
	resolver *resolver.Resolver
	mux      *http.ServeMux
	version  string
}

// NewServer creates an API server over a catalog reader and the
// services it rates
func NewServer(version string, reader catalog.Reader, services map[string]*types.Service) *Server {
	s := &Server{
		services: services,
		resolver: resolver.New(reader),
		mux:      http.NewServeMux(),
		version:  version,
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /resolve", s.handleResolve)
	s.mux.HandleFunc("POST /variants", s.handleVariants)
	s.mux.HandleFunc("POST /rollup", s.handleRollup)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleResolve handles POST /resolve
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	svc, ok := s.services[req.ServiceID]
	if !ok {
		s.writeError(w, "UNKNOWN_SERVICE", "unknown service "+req.ServiceID, http.StatusNotFound)
		return
	}

	inst, err := toInstance(&req, svc)
	if err != nil {
		s.writeError(w, errorCode(err), err.Error(), http.StatusBadRequest)
		return
	}

	cost, price := s.resolver.ResolveInstance(ctx, inst)

	logging.Debug("resolved service line",
		zap.String("service", req.ServiceID),
		zap.Bool("cost_resolved", !cost.Failed()),
		zap.Bool("price_resolved", !price.Failed()),
		zap.Duration("duration", time.Since(start)))

	s.writeJSON(w, ResolveResponse{
		ServiceID: req.ServiceID,
		Cost:      cost,
		Price:     price,
	}, http.StatusOK)
}

// handleVariants handles POST /variants
func (s *Server) handleVariants(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req VariantsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	svc, ok := s.services[req.ServiceID]
	if !ok {
		s.writeError(w, "UNKNOWN_SERVICE", "unknown service "+req.ServiceID, http.StatusNotFound)
		return
	}

	vreq, err := toVariantRequest(&req, svc)
	if err != nil {
		s.writeError(w, errorCode(err), err.Error(), http.StatusBadRequest)
		return
	}

	s.writeJSON(w, VariantsResponse{
		ServiceID: req.ServiceID,
		Variants:  s.resolver.ProjectVariants(ctx, vreq),
	}, http.StatusOK)
}

// handleRollup handles POST /rollup
func (s *Server) handleRollup(w http.ResponseWriter, r *http.Request) {
	var req RollupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, "INVALID_JSON", err.Error(), http.StatusBadRequest)
		return
	}

	children, err := toRollupChildren(req.Children)
	if err != nil {
		s.writeError(w, errorCode(err), err.Error(), http.StatusBadRequest)
		return
	}

	var res rollup.Result
	if req.RoomRates != nil {
		res = rollup.RecomputePackagePriced(children, toTravelers(req.Travelers), toRoomRates(req.RoomRates))
	} else {
		res = rollup.Recompute(children)
	}

	s.writeJSON(w, toRollupResponse(res), http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"version": s.version}, http.StatusOK)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// Start starts the server on the given address
func (s *Server) Start(addr string) error {
	logging.Info("starting API server", zap.String("addr", addr), zap.String("version", s.version))
	return http.ListenAndServe(addr, s)
}

func (s *Server) writeJSON(w http.ResponseWriter, v interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, code, message string, status int) {
	s.writeJSON(w, ErrorResponse{Code: code, Message: message}, status)
}

// errorCode maps a typed error to its wire code
func errorCode(err error) string {
	if e, ok := err.(*errors.Error); ok {
		return string(e.Type)
	}
	return "INTERNAL_ERROR"
}
