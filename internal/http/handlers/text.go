package handlers

import (
	"net/http"

	"sellerkit/internal/textproc"
)

type textRequest struct {
	Text string `json:"text"`
	K    int    `json:"k,omitempty"`
}

// ScanText runs the compliance filter over the payload and returns matches,
// per-term suggestions and the cleaned text.
func (a *App) ScanText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.badRequest(w, r, err.Error())
		return
	}
	if req.Text == "" {
		a.badRequest(w, r, "text is required")
		return
	}
	result := textproc.Scan(req.Text)
	a.json(w, http.StatusOK, map[string]any{
		"matched":     result.Matched,
		"suggestions": result.Suggestions,
		"cleaned":     result.Cleaned,
		"compliant":   !result.HasForbidden(),
	})
}

func (a *App) Keywords(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.badRequest(w, r, err.Error())
		return
	}
	if req.Text == "" {
		a.badRequest(w, r, "text is required")
		return
	}
	k := req.K
	if k <= 0 {
		k = 10
	}
	a.json(w, http.StatusOK, map[string]any{"keywords": textproc.Keywords(req.Text, k)})
}

func (a *App) SellingPoints(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.badRequest(w, r, err.Error())
		return
	}
	if req.Text == "" {
		a.badRequest(w, r, "text is required")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"selling_points": textproc.SellingPoints(req.Text)})
}
