package handlers

import (
	"net/http"

	"sellerkit/internal/promptgen"
)

type layoutRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DetailPageLayout plans the five-section detail page for the content and
// derives a per-section image prompt from it.
func (a *App) DetailPageLayout(w http.ResponseWriter, r *http.Request) {
	var req layoutRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.badRequest(w, r, err.Error())
		return
	}
	if req.Content == "" {
		a.badRequest(w, r, "content is required")
		return
	}
	layout := promptgen.BuildDetailPageLayout(req.Content)

	base := promptgen.Compose(promptgen.PromptRequest{Title: req.Title, Content: req.Content})
	sectionPrompts := make(map[string]string, len(layout.Sections))
	for _, section := range layout.Sections {
		sectionPrompts[section.Type] = promptgen.SectionPrompt(section.Type, base.English)
	}

	a.json(w, http.StatusOK, struct {
		promptgen.DetailPageLayout
		SectionPrompts map[string]string `json:"section_prompts"`
	}{layout, sectionPrompts})
}
