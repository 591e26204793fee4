// Package server exposes the studio over HTTP: blueprint drafting and
// editing, production launches, history, templates, and credits.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/bharatai/studio/internal/engine"
	"github.com/bharatai/studio/internal/metrics"
	"github.com/bharatai/studio/internal/studio"
	"github.com/bharatai/studio/internal/templates"
)

// Handler exposes studio HTTP endpoints using go-chi.
type Handler struct {
	orch    *studio.Orchestrator
	store   *studio.Store
	catalog *templates.Catalog
	metrics *metrics.Metrics
}

// NewHandler returns a Handler over the given collaborators. Metrics may be
// nil to disable metric recording (e.g. in tests).
func NewHandler(orch *studio.Orchestrator, store *studio.Store, catalog *templates.Catalog, m *metrics.Metrics) *Handler {
	return &Handler{orch: orch, store: store, catalog: catalog, metrics: m}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Err(err).Msg("Response encoding failed")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// statusFor maps studio and engine errors to HTTP status codes.
func statusFor(err error) int {
	var timeout *engine.VideoTimeoutError
	switch {
	case errors.Is(err, studio.ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, studio.ErrNoCredential):
		return http.StatusUnauthorized
	case errors.Is(err, studio.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, studio.ErrNoBlueprint), errors.Is(err, studio.ErrSynthesisInProgress):
		return http.StatusConflict
	case errors.As(err, &timeout):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DraftBlueprint handles POST /blueprint. Body: { "prompt": "..." }.
func (h *Handler) DraftBlueprint(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b, err := h.orch.DraftBlueprint(r.Context(), body.Prompt)
	if err != nil {
		log.Error().Err(err).Msg("Blueprint drafting failed")
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

// GetBlueprint handles GET /blueprint.
func (h *Handler) GetBlueprint(w http.ResponseWriter, r *http.Request) {
	b := h.orch.Breakdown()
	if b == nil {
		writeError(w, http.StatusNotFound, "no blueprint drafted")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func sceneIndex(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "index"))
}

// UpdateScene handles PUT /blueprint/scenes/{index}.
func (h *Handler) UpdateScene(w http.ResponseWriter, r *http.Request) {
	idx, err := sceneIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid scene index")
		return
	}
	var s engine.Scene
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.orch.UpdateScene(idx, s); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Breakdown())
}

// AddScene handles POST /blueprint/scenes.
func (h *Handler) AddScene(w http.ResponseWriter, r *http.Request) {
	var s engine.Scene
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.orch.AddScene(s); err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, h.orch.Breakdown())
}

// RemoveScene handles DELETE /blueprint/scenes/{index}. A blueprint keeps at
// least one scene; removal below that is rejected.
func (h *Handler) RemoveScene(w http.ResponseWriter, r *http.Request) {
	idx, err := sceneIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid scene index")
		return
	}
	if err := h.orch.RemoveScene(idx); err != nil {
		if errors.Is(err, studio.ErrNoBlueprint) || errors.Is(err, studio.ErrSynthesisInProgress) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Breakdown())
}

// SetNarration handles PUT /blueprint/narration. Body: { "text": "..." }.
func (h *Handler) SetNarration(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.orch.SetNarration(body.Text); err != nil {
		if errors.Is(err, studio.ErrNoBlueprint) || errors.Is(err, studio.ErrSynthesisInProgress) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.orch.Breakdown())
}

// LaunchProduction handles POST /productions. Body: { "outputType": "ALL" }.
// The run executes synchronously; the finished result is returned.
func (h *Handler) LaunchProduction(w http.ResponseWriter, r *http.Request) {
	var body struct {
		OutputType studio.OutputType `json:"outputType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !body.OutputType.Valid() {
		writeError(w, http.StatusBadRequest, "outputType must be IMAGE, VIDEO, AUDIO, or ALL")
		return
	}

	if h.metrics != nil {
		h.metrics.IncProductionsStarted()
	}

	result, err := h.orch.Launch(r.Context(), body.OutputType)
	if err != nil {
		if h.metrics != nil {
			h.metrics.IncProductionsFailed()
		}
		log.Error().Err(err).Str("output", string(body.OutputType)).Msg("Production failed")
		writeError(w, statusFor(err), err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.IncProductionsCompleted()
	}
	writeJSON(w, http.StatusCreated, result)
}

// ProductionStatus handles GET /productions/status.
func (h *Handler) ProductionStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"phase":     h.orch.Phase().String(),
		"jobStatus": h.orch.JobStatus(),
		"step":      h.orch.Step(),
		"logs":      h.store.WorkerLogs(),
	})
}

// ListHistory handles GET /history.
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.History())
}

// ToggleFavorite handles POST /history/{id}/favorite.
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.ToggleFavorite(id) {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteResult handles DELETE /history/{id}.
func (h *Handler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !h.store.DeleteResult(id) {
		writeError(w, http.StatusNotFound, "result not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ClearHistory handles DELETE /history.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	h.store.ClearHistory()
	w.WriteHeader(http.StatusNoContent)
}

// ListTemplates handles GET /templates?category=.
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	if category := r.URL.Query().Get("category"); category != "" {
		writeJSON(w, http.StatusOK, h.catalog.ByCategory(category))
		return
	}
	writeJSON(w, http.StatusOK, h.catalog.All())
}

// GetTemplate handles GET /templates/{id}.
func (h *Handler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := h.catalog.Find(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// GetCredits handles GET /credits.
func (h *Handler) GetCredits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]int{"credits": h.store.Credits()})
}

// ListNotifications handles GET /notifications.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Notifications())
}

// MarkNotificationsRead handles POST /notifications/read.
func (h *Handler) MarkNotificationsRead(w http.ResponseWriter, r *http.Request) {
	h.store.MarkNotificationsRead()
	w.WriteHeader(http.StatusNoContent)
}

// Suggestions handles GET /suggestions?prompt=.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	prompt := r.URL.Query().Get("prompt")
	hints := studio.Suggest(prompt, h.orch.Breakdown() != nil)
	if hints == nil {
		hints = []string{}
	}
	writeJSON(w, http.StatusOK, hints)
}
