package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/avvvet/gamehub-services/internal/gamehub/models"
	"github.com/avvvet/gamehub-services/internal/gamehub/service"
	"github.com/go-chi/chi"
)

const maxBodyBytes = 1 << 20

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.GameFilter{
		Genre:    q.Get("genre"),
		Platform: q.Get("platform"),
		Limit:    coerceInt(q.Get("limit"), service.DefaultListLimit),
		Offset:   coerceInt(q.Get("offset"), service.DefaultListOffset),
	}

	page, err := h.games.List(r.Context(), filter)
	if err != nil {
		h.handleError(w, r, "list games", err)
		return
	}
	h.CreateResponse(w, http.StatusOK, page)
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		h.handleError(w, r, "get game", service.ErrNotFound)
		return
	}

	game, err := h.games.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, "get game", err)
		return
	}
	h.CreateResponse(w, http.StatusOK, game)
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	in, err := decodeGameInput(w, r)
	if err != nil {
		h.CreateResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Detail: err.Error()})
		return
	}

	id, err := h.commands.Create(r.Context(), in)
	if err != nil {
		h.handleError(w, r, "create game", err)
		return
	}
	h.CreateResponse(w, http.StatusCreated, MessageResponse{Message: "Game created successfully", ID: id})
}

func (h *Handler) UpdateGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		h.handleError(w, r, "update game", service.ErrNotFound)
		return
	}

	in, err := decodeGameInput(w, r)
	if err != nil {
		h.CreateResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request body", Detail: err.Error()})
		return
	}

	if err := h.commands.Update(r.Context(), id, in); err != nil {
		h.handleError(w, r, "update game", err)
		return
	}
	h.CreateResponse(w, http.StatusOK, MessageResponse{Message: "Game updated successfully"})
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, ok := gameID(r)
	if !ok {
		h.handleError(w, r, "delete game", service.ErrNotFound)
		return
	}

	if err := h.commands.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, "delete game", err)
		return
	}
	h.CreateResponse(w, http.StatusOK, MessageResponse{Message: "Game deleted successfully"})
}

// gameID reads the {id} path parameter. A non-integer id cannot match any row.
func gameID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// decodeGameInput reads a JSON game body. An empty body is an empty input.
func decodeGameInput(w http.ResponseWriter, r *http.Request) (models.GameInput, error) {
	var in models.GameInput
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&in)
	if err != nil && !errors.Is(err, io.EOF) {
		return models.GameInput{}, err
	}
	return in, nil
}

// coerceInt parses the leading integer of raw ("20abc" -> 20, "2.5" -> 2).
// Missing, unparsable and negative values yield def.
func coerceInt(raw string, def int) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return def
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil || n < 0 {
		return def
	}
	return n
}
