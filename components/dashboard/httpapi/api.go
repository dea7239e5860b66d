package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/goliatone/go-social-dashboard/components/dashboard/commands"
	"github.com/goliatone/go-social-dashboard/components/dashboard/queries"
)

// Handlers exposes net/http endpoints backed by the shared executor.
type Handlers struct {
	API       Executor
	Validator *PayloadValidator
}

// NewHandlers builds handlers with a fresh payload validator.
func NewHandlers(api Executor) *Handlers {
	return &Handlers{API: api, Validator: NewPayloadValidator()}
}

func (h *Handlers) validator() *PayloadValidator {
	if h.Validator == nil {
		h.Validator = NewPayloadValidator()
	}
	return h.Validator
}

func (h *Handlers) HandleViewState(w http.ResponseWriter, r *http.Request) {
	state, err := h.API.ViewState(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// HandleNotifications lists buffered notifications; ?limit=N trims the list.
func (h *Handlers) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	input := queries.NotificationsInput{}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a non-negative integer"})
			return
		}
		input.Limit = limit
	}
	items, err := h.API.Notifications(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *Handlers) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if err := h.API.ToggleTheme(r.Context(), commands.ToggleThemeInput{}); err != nil {
		writeError(w, err)
		return
	}
	h.HandleViewState(w, r)
}

func (h *Handlers) HandleToggleNotifications(w http.ResponseWriter, r *http.Request) {
	var payload commands.ToggleNotificationsInput
	if err := h.decode(r, SchemaNotifications, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.API.ToggleNotifications(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.HandleViewState(w, r)
}

func (h *Handlers) HandleSelectMetric(w http.ResponseWriter, r *http.Request) {
	var payload commands.SelectMetricInput
	if err := h.decode(r, SchemaMetric, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.API.SelectMetric(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	h.HandleViewState(w, r)
}

func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var payload commands.RefreshDashboardInput
	if err := h.decode(r, SchemaRefresh, &payload); err != nil {
		writeError(w, err)
		return
	}
	if err := h.API.Refresh(r.Context(), payload); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
}

// DecodeBody validates and decodes a request body for the named schema.
func (h *Handlers) DecodeBody(schema string, body []byte, dst any) error {
	return h.validator().Decode(schema, body, dst)
}

func (h *Handlers) decode(r *http.Request, schema string, dst any) error {
	var body []byte
	if r.Body != nil {
		data, err := io.ReadAll(r.Body)
		if err != nil {
			return err
		}
		body = data
	}
	return h.DecodeBody(schema, body, dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, StatusFor(err), map[string]string{"error": err.Error()})
}
