package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	stdimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	"sellerkit/internal/compositor"
	"sellerkit/internal/domain"
	"sellerkit/pkg/zip"
)

type templateRequest struct {
	Image string                    `json:"image"`
	Spec  compositor.TextRenderSpec `json:"spec"`
	Save  bool                      `json:"save"`
}

// AnalyzeTemplate reports dominant colors, candidate text regions and layout
// zones for an uploaded template.
func (a *App) AnalyzeTemplate(w http.ResponseWriter, r *http.Request) {
	img, _, err := a.readTemplate(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	analysis, err := compositor.Analyze(img)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, analysis)
}

// ComposeTemplate renders the text spec onto the template. With ?format=zip
// the response is an archive bundling the composite and its analysis.
func (a *App) ComposeTemplate(w http.ResponseWriter, r *http.Request) {
	img, req, err := a.readTemplate(w, r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	analysis, err := compositor.Analyze(img)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	out, err := compositor.Compose(img, req.Spec, analysis)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	encoded, err := compositor.EncodePNG(out)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	var path, publicURL string
	if req.Save && a.Store != nil {
		data, decErr := decodeStdBase64(encoded)
		if decErr != nil {
			a.fail(w, r, &domain.CompositionError{Stage: "encode", Cause: decErr})
			return
		}
		path, err = a.Store.SaveGenerated("composite", data, "image/png")
		if err != nil {
			a.fail(w, r, &domain.CompositionError{Stage: "store", Cause: err})
			return
		}
		publicURL = strings.TrimRight(a.PublicBaseURL, "/") + "/" + path
	}

	if r.URL.Query().Get("format") == "zip" {
		data, decErr := decodeStdBase64(encoded)
		if decErr != nil {
			a.fail(w, r, &domain.CompositionError{Stage: "encode", Cause: decErr})
			return
		}
		analysisJSON, _ := marshalIndent(analysis)
		archive := zip.ArchiveAssets([]zip.Asset{
			{Filename: "composite.png", MIME: "image/png", Data: data},
			{Filename: "analysis.json", MIME: "application/json", Data: analysisJSON},
		})
		w.Header().Set("Content-Type", "application/zip")
		w.Header().Set("Content-Disposition", `attachment; filename="composite.zip"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(archive)
		return
	}

	a.json(w, http.StatusOK, map[string]any{
		"image_base64": encoded,
		"analysis":     analysis,
		"path":         path,
		"public_url":   publicURL,
	})
}

// readTemplate accepts either a multipart upload under the "template" field
// or a JSON body with a base64 image.
func (a *App) readTemplate(w http.ResponseWriter, r *http.Request) (stdimage.Image, templateRequest, error) {
	var req templateRequest
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxBodyBytes); err != nil {
			return nil, req, &domain.ConfigError{Message: "invalid multipart body"}
		}
		file, header, err := r.FormFile("template")
		if err != nil {
			return nil, req, &domain.ConfigError{Message: "template file is required"}
		}
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, req, &domain.ConfigError{Message: "unreadable template file"}
		}
		img, _, err := stdimage.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, req, &domain.CompositionError{Stage: "decode", Cause: err}
		}
		if a.Uploads != nil {
			if _, err := a.Uploads.Write(r.Context(), header.Filename, data); err != nil {
				a.Log.Warn().Err(err).Str("filename", header.Filename).Msg("failed to keep uploaded template")
			}
		}
		req.Spec = compositor.TextRenderSpec{
			Title:    r.FormValue("title"),
			Subtitle: r.FormValue("subtitle"),
		}
		if points := r.FormValue("key_points"); points != "" {
			for _, p := range strings.Split(points, "\n") {
				if p = strings.TrimSpace(p); p != "" {
					req.Spec.KeyPoints = append(req.Spec.KeyPoints, p)
				}
			}
		}
		req.Save = r.FormValue("save") == "true"
		return img, req, nil
	}

	if err := decodeBody(w, r, &req); err != nil {
		return nil, req, &domain.ConfigError{Message: err.Error()}
	}
	if req.Image == "" {
		return nil, req, &domain.ConfigError{Message: "image is required"}
	}
	img, err := compositor.DecodeImage(req.Image)
	if err != nil {
		return nil, req, err
	}
	return img, req, nil
}

func decodeStdBase64(encoded string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(encoded)
}

func marshalIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
