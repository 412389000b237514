package promptgen

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"sellerkit/internal/textproc"
)

// StylePrefs captures the caller's visual preferences for a generation.
type StylePrefs struct {
	ColorScheme string `json:"color_scheme"`
	DesignStyle string `json:"design_style"`
}

// PromptRequest is consumed once by Compose to produce a PromptResult.
type PromptRequest struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Style   StylePrefs `json:"style"`
	Kind    string     `json:"kind"`
	Size    string     `json:"size"`
	Quality string     `json:"quality"`
}

// PromptResult holds localized prompt variants plus the keywords that
// informed them.
type PromptResult struct {
	English  string   `json:"english"`
	Chinese  string   `json:"chinese"`
	Keywords []string `json:"keywords"`
}

// ForLocale picks the variant matching the caller's content language,
// falling back to the other when that variant is empty.
func (r PromptResult) ForLocale(locale string) string {
	if locale == "en" {
		if r.English != "" {
			return r.English
		}
		return r.Chinese
	}
	if r.Chinese != "" {
		return r.Chinese
	}
	return r.English
}

const (
	KindCommercial = "commercial"
	KindTutorial   = "tutorial"

	keywordLimit = 5
	clauseLimit  = 3
)

var styleClauses = []string{
	"modern design",
	"clean layout",
	"attractive colors",
	"professional typography",
	"high quality",
	"commercial style",
}

var technicalClauses = []string{
	"8K resolution",
	"professional photography",
	"studio lighting",
	"commercial product photography style",
}

// Compose assembles deterministic text-to-image prompts from the article
// title, mined keywords, and the caller's style preferences. Identical input
// always yields identical output; an empty keyword list simply omits the
// keyword clause.
func Compose(req PromptRequest) PromptResult {
	keywords := textproc.Keywords(req.Content, keywordLimit)
	res := PromptResult{Keywords: keywords}

	switch req.Kind {
	case KindTutorial:
		res.Chinese = fmt.Sprintf("教程封面图：%s，教育类设计，清晰易懂，步骤指导风格", req.Title)
		res.English = fmt.Sprintf("Educational tutorial cover for %q, instructional design, clear and easy to understand", req.Title)
	case KindCommercial, "":
		res.Chinese = fmt.Sprintf("电商主图设计：%s，专业商务风格，现代简洁布局，吸引人的排版设计", req.Title)
		res.English = fmt.Sprintf("Professional e-commerce main image for %q, modern clean business style, attractive typography, commercial appeal", req.Title)
	default:
		res.Chinese = fmt.Sprintf("创意图片：%s，专业美观", req.Title)
		res.English = fmt.Sprintf("Creative image for %q, professional and appealing", req.Title)
	}

	if len(keywords) > 0 {
		top := keywords
		if len(top) > clauseLimit {
			top = top[:clauseLimit]
		}
		res.Chinese += "，关键词：" + strings.Join(top, "，")
		res.English += ", featuring " + strings.Join(top, ", ")
	}

	clauses := append([]string{}, styleClauses...)
	caser := cases.Title(language.English)
	if scheme := strings.TrimSpace(req.Style.ColorScheme); scheme != "" {
		clauses = append(clauses, "color scheme: "+caser.String(scheme))
	}
	if style := strings.TrimSpace(req.Style.DesignStyle); style != "" {
		clauses = append(clauses, "style: "+caser.String(style))
	}
	res.English += ", " + strings.Join(clauses, ", ")
	res.English += ", " + strings.Join(technicalClauses, ", ")

	return res
}
