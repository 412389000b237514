package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"

	"sellerkit/internal/middleware"
	"sellerkit/internal/promptgen"
	providers "sellerkit/internal/providers/image"
)

type generateRequest struct {
	Provider    string                `json:"provider"`
	Title       string                `json:"title"`
	Content     string                `json:"content"`
	Style       promptgen.StylePrefs  `json:"style"`
	Kind        string                `json:"kind"`
	Size        string                `json:"size"`
	Quality     string                `json:"quality"`
	Steps       int                   `json:"steps"`
	Save        bool                  `json:"save"`
	Credentials providers.Credentials `json:"credentials"`

	// Prompt overrides skip composition when the caller already has one.
	PromptEnglish string `json:"prompt_english,omitempty"`
	PromptChinese string `json:"prompt_chinese,omitempty"`
}

type generateResponse struct {
	Provider   string                  `json:"provider"`
	Prompt     providers.Prompt        `json:"prompt"`
	PromptText string                  `json:"prompt_text"`
	URL        string                  `json:"url,omitempty"`
	Path       string                  `json:"path,omitempty"`
	PublicURL  string                  `json:"public_url,omitempty"`
	Width      int                     `json:"width,omitempty"`
	Height     int                     `json:"height,omitempty"`
	Format     string                  `json:"format,omitempty"`
	ImageB64   string                  `json:"image_base64,omitempty"`
	PromptRes  *promptgen.PromptResult `json:"prompt_result,omitempty"`
}

// GenerateImage composes a prompt from the article text (unless the caller
// supplied one), dispatches it to the requested provider, and optionally
// persists the output. Credentials travel in the body and are never stored.
func (a *App) GenerateImage(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeBody(w, r, &req); err != nil {
		a.badRequest(w, r, err.Error())
		return
	}
	if req.Provider == "" {
		a.badRequest(w, r, "provider is required")
		return
	}

	prompt := providers.Prompt{English: req.PromptEnglish, Chinese: req.PromptChinese}
	var composed *promptgen.PromptResult
	if prompt.English == "" && prompt.Chinese == "" {
		if req.Title == "" && req.Content == "" {
			a.badRequest(w, r, "title, content or an explicit prompt is required")
			return
		}
		res := promptgen.Compose(promptgen.PromptRequest{
			Title:   req.Title,
			Content: req.Content,
			Style:   req.Style,
			Kind:    req.Kind,
			Size:    req.Size,
			Quality: req.Quality,
		})
		prompt = providers.Prompt{English: res.English, Chinese: res.Chinese}
		composed = &res
	}

	outcome, err := a.Dispatcher.Generate(r.Context(), req.Provider, providers.Request{
		Prompt:      prompt,
		Size:        req.Size,
		Quality:     req.Quality,
		Steps:       req.Steps,
		Credentials: req.Credentials,
	}, providers.Options{SaveToDisk: req.Save})
	if err != nil {
		a.fail(w, r, err)
		return
	}

	promptText := prompt.Localized()
	if middleware.LocaleFromContext(r.Context()) == "en" {
		promptText = prompt.International()
	}
	resp := generateResponse{
		Provider:   outcome.Provider,
		Prompt:     prompt,
		PromptText: promptText,
		URL:        outcome.Result.URL,
		Path:       outcome.Path,
		Width:      outcome.Result.Width,
		Height:     outcome.Result.Height,
		Format:     outcome.Result.Format,
		PromptRes:  composed,
	}
	if outcome.Path != "" {
		resp.PublicURL = strings.TrimRight(a.PublicBaseURL, "/") + "/" + outcome.Path
	} else if len(outcome.Result.Data) > 0 {
		resp.ImageB64 = base64.StdEncoding.EncodeToString(outcome.Result.Data)
	}
	a.json(w, http.StatusOK, resp)
}
