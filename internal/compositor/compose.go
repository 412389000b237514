package compositor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"sellerkit/internal/domain"
)

// Fallback colors used when no analysis palette is available.
const (
	defaultTitleColor    = "#FF4444"
	defaultSubtitleColor = "#2E86AB"
)

// TextRenderSpec describes the text placed on a template. Color fields are
// optional hex overrides; when empty the analysis palette or the defaults
// apply.
type TextRenderSpec struct {
	Title         string   `json:"title"`
	Subtitle      string   `json:"subtitle"`
	KeyPoints     []string `json:"key_points"`
	TitleColor    string   `json:"title_color,omitempty"`
	SubtitleColor string   `json:"subtitle_color,omitempty"`
}

// Enhance applies the standard quality pre-pass: contrast up, saturation up,
// light unsharp.
func Enhance(img image.Image) image.Image {
	out := imaging.AdjustContrast(img, 20)
	out = imaging.AdjustSaturation(out, 10)
	return imaging.Sharpen(out, 1.0)
}

// Compose renders the spec onto a copy of the template and returns the
// finished image. The input is never modified; on any failure the error is a
// CompositionError and no partial image is returned.
func Compose(img image.Image, spec TextRenderSpec, analysis *TemplateAnalysis) (image.Image, error) {
	if img == nil {
		return nil, &domain.CompositionError{Stage: "input", Cause: fmt.Errorf("nil image")}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, &domain.CompositionError{Stage: "input", Cause: fmt.Errorf("empty image %dx%d", w, h)}
	}

	titleColor, subtitleColor, err := resolveColors(spec, analysis)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContextForImage(Enhance(img))
	fw, fh := float64(w), float64(h)

	subtitleBottom := fh / 4
	if spec.Title != "" {
		subtitleBottom = drawTitle(dc, spec.Title, fw, fh, titleColor)
	}
	pointsTop := subtitleBottom + 100
	if spec.Subtitle != "" {
		drawSubtitle(dc, spec.Subtitle, fw, subtitleBottom+80, subtitleColor)
	}
	if len(spec.KeyPoints) > 0 {
		drawKeyPoints(dc, spec.KeyPoints, pointsTop, subtitleColor)
	}
	drawDecorations(dc, fw, fh)

	// Final pass: smooth edges, then a slight contrast lift.
	out := imaging.Blur(dc.Image(), 0.5)
	out = imaging.AdjustContrast(out, 5)
	return out, nil
}

func resolveColors(spec TextRenderSpec, analysis *TemplateAnalysis) (color.Color, color.Color, error) {
	titleHex, subtitleHex := defaultTitleColor, defaultSubtitleColor
	if analysis != nil && len(analysis.DominantColors) >= 2 {
		titleHex, subtitleHex = analysis.DominantColors[0], analysis.DominantColors[1]
	}
	if spec.TitleColor != "" {
		titleHex = spec.TitleColor
	}
	if spec.SubtitleColor != "" {
		subtitleHex = spec.SubtitleColor
	}
	title, err := parseHex(titleHex)
	if err != nil {
		return nil, nil, &domain.CompositionError{Stage: "colors", Cause: err}
	}
	subtitle, err := parseHex(subtitleHex)
	if err != nil {
		return nil, nil, &domain.CompositionError{Stage: "colors", Cause: err}
	}
	return title, subtitle, nil
}

// drawTitle centers the title at a quarter height with a drop shadow. Long
// titles shrink to fit instead of overflowing the canvas. Returns the title
// baseline so later elements stack below it.
func drawTitle(dc *gg.Context, title string, w, h float64, fill color.Color) float64 {
	size := float64(titleFontSize)
	for size > 12 {
		dc.SetFontFace(loadFace(size))
		if tw, _ := dc.MeasureString(title); tw <= w-20 {
			break
		}
		size -= 4
	}
	y := h / 4
	dc.SetRGBA(0, 0, 0, 0.5)
	dc.DrawStringAnchored(title, w/2+3, y+3, 0.5, 0.5)
	dc.SetColor(fill)
	dc.DrawStringAnchored(title, w/2, y, 0.5, 0.5)
	return y
}

func drawSubtitle(dc *gg.Context, subtitle string, w, y float64, fill color.Color) {
	dc.SetFontFace(loadFace(subtitleFontSize))
	tw, th := dc.MeasureString(subtitle)
	padding := 10.0
	dc.SetRGBA(1, 1, 1, 200.0/255.0)
	dc.DrawRoundedRectangle(w/2-tw/2-padding, y-th/2-padding, tw+2*padding, th+2*padding, 8)
	dc.Fill()
	dc.SetColor(fill)
	dc.DrawStringAnchored(subtitle, w/2, y, 0.5, 0.5)
}

func drawKeyPoints(dc *gg.Context, points []string, startY float64, marker color.Color) {
	if len(points) > 3 {
		points = points[:3]
	}
	dc.SetFontFace(loadFace(contentFontSize))
	for i, point := range points {
		y := startY + float64(i)*45
		dc.SetColor(marker)
		dc.DrawCircle(37, y, 7)
		dc.Fill()
		dc.SetRGB255(51, 51, 51)
		dc.DrawStringAnchored(point, 60, y, 0, 0.5)
	}
}

// drawDecorations strokes the top and bottom borders and drops a translucent
// accent square in each corner.
func drawDecorations(dc *gg.Context, w, h float64) {
	border := 5.0
	dc.SetRGBA255(102, 126, 234, 100)
	dc.DrawRectangle(0, 0, w, border)
	dc.Fill()
	dc.DrawRectangle(0, h-border, w, border)
	dc.Fill()

	corner := 30.0
	dc.SetRGBA(1, 1, 1, 50.0/255.0)
	for _, at := range [][2]float64{{0, 0}, {w - corner, 0}, {0, h - corner}, {w - corner, h - corner}} {
		dc.DrawRectangle(at[0], at[1], corner, corner)
		dc.Fill()
	}
}

func parseHex(s string) (color.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid hex color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// EncodePNG renders an image to a base64 PNG for transport.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", &domain.CompositionError{Stage: "encode", Cause: err}
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeImage parses a base64 payload into an image. The encoding sniffing
// comes from the registered stdlib decoders.
func DecodeImage(encoded string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, &domain.CompositionError{Stage: "decode", Cause: err}
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &domain.CompositionError{Stage: "decode", Cause: err}
	}
	return img, nil
}
