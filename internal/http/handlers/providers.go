package handlers

import "net/http"

// Providers publishes the generator catalog so callers can discover ids and
// the credential fields each one expects.
func (a *App) Providers(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"providers": a.Registry.List()})
}
