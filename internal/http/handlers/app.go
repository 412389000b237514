package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"sellerkit/internal/domain"
	"sellerkit/internal/middleware"
	providers "sellerkit/internal/providers/image"
	"sellerkit/internal/storage"
)

const maxBodyBytes = 20 << 20

// App bundles the dependencies the handlers need.
type App struct {
	Log           zerolog.Logger
	Registry      *providers.Registry
	Dispatcher    *providers.Dispatcher
	Store         *storage.FileStore
	Uploads       *storage.FileStore
	PublicBaseURL string
}

func NewApp(log zerolog.Logger, registry *providers.Registry, dispatcher *providers.Dispatcher, store, uploads *storage.FileStore, publicBaseURL string) *App {
	return &App{
		Log:           log,
		Registry:      registry,
		Dispatcher:    dispatcher,
		Store:         store,
		Uploads:       uploads,
		PublicBaseURL: publicBaseURL,
	}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// fail maps the error taxonomy onto HTTP status codes and logs at a level
// matching blame: client mistakes at debug, upstream trouble at warn.
func (a *App) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case domain.IsConfig(err):
		status = http.StatusBadRequest
	case domain.IsComposition(err):
		status = http.StatusUnprocessableEntity
	case domain.IsTimeout(err):
		status = http.StatusGatewayTimeout
	case domain.IsProvider(err):
		status = http.StatusBadGateway
	}
	evt := a.Log.Debug()
	if status >= 500 {
		evt = a.Log.Warn()
	}
	evt.Err(err).
		Str("request_id", middleware.RequestIDFromContext(r.Context())).
		Int("status", status).
		Msg("request failed")
	a.json(w, status, map[string]string{"error": err.Error()})
}

func (a *App) badRequest(w http.ResponseWriter, r *http.Request, msg string) {
	a.fail(w, r, &domain.ConfigError{Message: msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
