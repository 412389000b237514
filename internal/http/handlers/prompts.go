package handlers

import (
	"net/http"

	"sellerkit/internal/middleware"
	"sellerkit/internal/promptgen"
	"sellerkit/internal/textproc"
)

func (a *App) ComposePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptgen.PromptRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.badRequest(w, r, err.Error())
		return
	}
	if req.Title == "" && req.Content == "" {
		a.badRequest(w, r, "title or content is required")
		return
	}
	res := promptgen.Compose(req)
	var variants []string
	if req.Title != "" {
		variants = textproc.TitleVariants(req.Title)
	}
	a.json(w, http.StatusOK, struct {
		Prompt        string   `json:"prompt"`
		promptgen.PromptResult
		TitleVariants []string `json:"title_variants,omitempty"`
	}{res.ForLocale(middleware.LocaleFromContext(r.Context())), res, variants})
}
