package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	"github.com/avvvet/gamehub-services/internal/gamehub/service"
	log "github.com/sirupsen/logrus"
)

const (
	ServiceName = "GameHub API"
	Version     = "1.0.0"
)

type GameQuerier interface {
	List(ctx context.Context, filter models.GameFilter) (*models.GamePage, error)
	Get(ctx context.Context, id int64) (*models.Game, error)
}

type GameCommander interface {
	Create(ctx context.Context, in models.GameInput) (int64, error)
	Update(ctx context.Context, id int64, in models.GameInput) error
	Delete(ctx context.Context, id int64) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// EventStream serves the websocket change feed.
type EventStream interface {
	HandleWebSocket(w http.ResponseWriter, r *http.Request)
}

type Handler struct {
	games      GameQuerier
	commands   GameCommander
	health     Pinger
	events     EventStream
	instanceId string
}

func NewHandler(games GameQuerier, commands GameCommander, health Pinger, events EventStream, instanceId string) *Handler {
	return &Handler{
		games:      games,
		commands:   commands,
		health:     health,
		events:     events,
		instanceId: instanceId,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id,omitempty"`
}

type ErrorResponse struct {
	Error    string   `json:"error"`
	Detail   string   `json:"detail,omitempty"`
	Required []string `json:"required,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// handleError maps service errors onto status codes. op names the failed
// action in the 500 message.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		h.CreateResponse(w, http.StatusBadRequest, ErrorResponse{
			Error:    "Missing required fields",
			Detail:   verr.Error(),
			Required: service.RequiredFields,
		})
	case errors.Is(err, service.ErrNotFound):
		h.CreateResponse(w, http.StatusNotFound, ErrorResponse{Error: "Game not found"})
	default:
		log.WithField("path", r.URL.Path).Errorf("failed to %s: %v", op, err)
		h.CreateResponse(w, http.StatusInternalServerError, ErrorResponse{
			Error:  "Failed to " + op,
			Detail: err.Error(),
		})
	}
}

func (h *Handler) InfoHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusOK, map[string]any{
		"name":        ServiceName,
		"description": "Video game catalog management",
		"version":     Version,
		"instance_id": h.instanceId,
		"endpoints": map[string]string{
			"games":  "/api/games",
			"health": "/api/health",
			"events": "/api/ws",
		},
		"status": "online",
	})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		log.Warnf("health check failed: %v", err)
		h.CreateResponse(w, http.StatusServiceUnavailable, ErrorResponse{
			Error:  "Store unavailable",
			Detail: err.Error(),
		})
		return
	}
	h.CreateResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusNotFound, ErrorResponse{
		Error:  "Endpoint not found",
		Detail: "The requested route " + r.Method + " " + r.URL.Path + " does not exist",
	})
}

func (h *Handler) MethodNotAllowedHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusMethodNotAllowed, ErrorResponse{
		Error:  "Method not allowed",
		Detail: r.Method + " is not supported on " + r.URL.Path,
	})
}

func (h *Handler) TooManyRequestsHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusTooManyRequests, ErrorResponse{
		Error:  "Too many requests",
		Detail: "Rate limit exceeded, retry later",
	})
}

func (h *Handler) EventsHandler(w http.ResponseWriter, r *http.Request) {
	h.events.HandleWebSocket(w, r)
}
