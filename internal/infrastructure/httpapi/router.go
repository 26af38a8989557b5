// Package httpapi exposes the host emulator over HTTP so that events can be
// injected from curl or a browser.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/briwestervelt/formal/internal/domain/entity"
	"github.com/briwestervelt/formal/internal/logging"
)

// Emitter queues host events.
type Emitter interface {
	Emit(ctx context.Context, evt entity.Event) error
}

// SettingsReader returns the settings stored on the emulated watch.
type SettingsReader interface {
	Current(ctx context.Context) (*entity.WatchfaceSettings, error)
}

// DeliveryLister returns recent deliveries, newest first.
type DeliveryLister interface {
	Execute(ctx context.Context, limit int) ([]*entity.Delivery, error)
}

// Deps holds the collaborators of the router. Gatherer may be nil to
// disable the metrics route.
type Deps struct {
	Emitter     Emitter
	Settings    SettingsReader
	Deliveries  DeliveryLister
	Gatherer    prometheus.Gatherer
	MetricsPath string
}

type handlers struct {
	deps Deps
}

// NewRouter builds the HTTP routes.
func NewRouter(ctx context.Context, deps Deps) *mux.Router {
	h := &handlers{deps: deps}
	r := mux.NewRouter()
	r.Use(requestLogger(ctx))

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintln(w, "OK")
	}).Methods(http.MethodGet)
	r.HandleFunc("/events/{name}", h.postEvent).Methods(http.MethodPost)
	r.HandleFunc("/settings", h.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/deliveries", h.getDeliveries).Methods(http.MethodGet)

	if deps.Gatherer != nil {
		path := deps.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r
}

// requestLogger attaches the base logger to each request and logs it.
func requestLogger(base context.Context) mux.MiddlewareFunc {
	logger := logging.FromContext(base)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := logging.WithContext(r.Context(), logger.With().Str("component", "httpapi").Logger())
			next.ServeHTTP(w, r.WithContext(ctx))
			logging.FromContext(ctx).Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Dur("elapsed", time.Since(start)).
				Msg("request served")
		})
	}
}

// EventRequest is the optional body of POST /events/{name}. Response is
// forwarded as is; Config, when set, is encoded the way the configuration
// page encodes its result.
type EventRequest struct {
	Response string          `json:"response,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

func (h *handlers) postEvent(w http.ResponseWriter, r *http.Request) {
	name := entity.EventName(mux.Vars(r)["name"])
	if !name.IsLifecycle() {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown event %q", name))
		return
	}

	var req EventRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	evt := entity.Event{Name: name, Response: req.Response}
	if len(req.Config) > 0 {
		evt.Response = entity.EncodeResponse(string(req.Config))
	}

	// The request only bounds the wait for queue space.
	if err := h.deps.Emitter.Emit(r.Context(), evt); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, entity.ErrBusClosed):
			status = http.StatusServiceUnavailable
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			status = http.StatusServiceUnavailable
			err = fmt.Errorf("event queue full: %w", err)
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued", "event": string(name)})
}

// SettingsView is the JSON form of the stored watchface settings.
type SettingsView struct {
	Colors         map[string]string `json:"colors"`
	Values         map[string]int32  `json:"values"`
	BluetoothVibes bool              `json:"bluetoothVibes"`
	UpdatedAt      *time.Time        `json:"updatedAt,omitempty"`
}

// NewSettingsView converts s for display.
func NewSettingsView(s *entity.WatchfaceSettings) SettingsView {
	v := SettingsView{
		Colors:         make(map[string]string, len(entity.ColorSlots())),
		Values:         make(map[string]int32, len(entity.ColorSlots())),
		BluetoothVibes: s.BluetoothVibes,
	}
	for _, slot := range entity.ColorSlots() {
		c := s.Color(slot)
		v.Colors[slot.Field()] = c.Hex()
		v.Values[slot.Field()] = int32(c)
	}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		v.UpdatedAt = &t
	}
	return v
}

func (h *handlers) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.deps.Settings.Current(r.Context())
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("failed to load settings")
		writeError(w, http.StatusInternalServerError, "failed to load settings")
		return
	}
	writeJSON(w, http.StatusOK, NewSettingsView(settings))
}

// DeliveryView is the JSON form of one delivery.
type DeliveryView struct {
	TransactionID string            `json:"transactionId"`
	Status        string            `json:"status"`
	Reason        string            `json:"reason,omitempty"`
	Size          int               `json:"size"`
	Message       entity.AppMessage `json:"message"`
	CreatedAt     time.Time         `json:"createdAt"`
}

// NewDeliveryView converts a recorded delivery for JSON output.
func NewDeliveryView(d *entity.Delivery) DeliveryView {
	return DeliveryView{
		TransactionID: d.TransactionID,
		Status:        string(d.Status),
		Reason:        d.Reason,
		Size:          d.Size,
		Message:       d.Message,
		CreatedAt:     d.CreatedAt,
	}
}

func (h *handlers) getDeliveries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	deliveries, err := h.deps.Deliveries.Execute(r.Context(), limit)
	if err != nil {
		logging.FromContext(r.Context()).Error().Err(err).Msg("failed to list deliveries")
		writeError(w, http.StatusInternalServerError, "failed to list deliveries")
		return
	}

	out := make([]DeliveryView, 0, len(deliveries))
	for _, d := range deliveries {
		out = append(out, NewDeliveryView(d))
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
