// Package server exposes the planner over HTTP: plans are submitted as YAML
// bodies and computed against event bundles loaded from the data directory.
// The server is stateless apart from the shared plan store; every request
// recomputes from scratch.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/config"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/gamedata"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/internal/planner"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/constants"
	"github.com/fiseleo/BA-mobilization-trends-public-sub000/pkg/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	loader      *gamedata.Loader
	planner     *planner.Planner
	store       store.Store
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler serving the planning API.
func NewHandler(logger *zap.Logger, loader *gamedata.Loader, st store.Store, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}
	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		loader:      loader,
		planner:     planner.New(logger, st),
		store:       st,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Post("/api/plan", h.handlePlan)
	r.Get("/api/events/{eventID}/result", h.handleResult)
	r.Get("/api/version", h.handleVersion)

	return r
}

type planResponse struct {
	PlanID   string          `json:"planId"`
	Result   *planner.Result `json:"result"`
	Warnings []string        `json:"warnings,omitempty"`
	Duration string          `json:"duration"`
}

func (h *handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	op := "server.handlePlan"

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("plan exceeds limit of %d bytes", h.maxBodySize), op)
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read plan: %v", err), op)
		return
	}

	cfg, err := config.LoadConfigurationFromReader(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	eventID := cfg.EventID
	if raw := r.URL.Query().Get("event"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid event id %q", raw), op)
			return
		}
		eventID = parsed
		cfg.EventID = parsed
	}
	if eventID <= 0 {
		h.respondError(w, http.StatusBadRequest, "no event id in plan or query", op)
		return
	}

	warnings := cfg.ValidateConfiguration()

	event, err := h.loader.Load(eventID)
	if err != nil {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("unknown event %d", eventID), op)
		return
	}
	warnings = append(warnings, event.Validate()...)

	result, err := h.planner.Plan(event, cfg)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to compute plan: %v", err), op)
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("plan request served",
		zap.String("op", op),
		zap.Int("event", eventID),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, planResponse{
		PlanID:   uuid.NewString(),
		Result:   result,
		Warnings: warnings,
		Duration: elapsed.String(),
	})
}

// handleResult serves the last computed summary for an event straight from
// the store.
func (h *handler) handleResult(w http.ResponseWriter, r *http.Request) {
	op := "server.handleResult"
	eventID, err := strconv.Atoi(chi.URLParam(r, "eventID"))
	if err != nil || eventID <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid event id", op)
		return
	}
	if h.store == nil {
		h.respondError(w, http.StatusNotFound, "no stored results", op)
		return
	}
	encoded, ok := h.store.Get(eventID, planner.ResultField)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("no result for event %d", eventID), op)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(encoded)); err != nil {
		h.logger.Error("failed to write stored result", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("plan request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
