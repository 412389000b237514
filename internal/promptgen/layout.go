package promptgen

import (
	"fmt"

	"sellerkit/internal/textproc"
)

// Section is one block of a detail page handed to the presentation layer.
type Section struct {
	Type    string   `json:"type"`
	Title   string   `json:"title"`
	Content []string `json:"content"`
	Style   string   `json:"style"`
}

// ColorScheme carries the page palette as hex strings.
type ColorScheme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// FontSpec is a per-role font size/weight pair.
type FontSpec struct {
	Size   int    `json:"size"`
	Weight string `json:"weight"`
}

// DetailPageLayout is the ordered section plan for a product detail page.
type DetailPageLayout struct {
	Sections []Section           `json:"sections"`
	Colors   ColorScheme         `json:"color_scheme"`
	Fonts    map[string]FontSpec `json:"font_config"`
}

const (
	SectionHero      = "hero"
	SectionFeatures  = "features"
	SectionBenefits  = "benefits"
	SectionProcess   = "process"
	SectionGuarantee = "guarantee"
)

var benefitTemplates = []string{
	"提升%s效率",
	"掌握%s技巧",
	"获得%s优势",
	"实现%s目标",
	"学会%s方法",
}

// BuildDetailPageLayout derives a five-section detail page plan from the
// article content: mined selling points feed the hero and feature blocks,
// keyword-derived benefit lines fill the rest, and fixed process/guarantee
// copy closes the page.
func BuildDetailPageLayout(content string) DetailPageLayout {
	keywords := textproc.Keywords(content, 8)
	points := textproc.SellingPoints(content)

	hero := firstN(points, 2)
	if len(hero) == 0 {
		hero = []string{"优质产品", "专业服务"}
	}
	features := sliceFrom(points, 2, 5)
	if len(features) == 0 {
		features = firstN(keywords, 3)
	}

	return DetailPageLayout{
		Sections: []Section{
			{Type: SectionHero, Title: "产品亮点", Content: hero, Style: "large_text_with_background"},
			{Type: SectionFeatures, Title: "核心特色", Content: features, Style: "icon_with_text"},
			{Type: SectionBenefits, Title: "用户收益", Content: benefitsFromKeywords(keywords), Style: "numbered_list"},
			{Type: SectionProcess, Title: "使用流程", Content: []string{"了解产品", "选择方案", "开始使用", "获得收益"}, Style: "step_by_step"},
			{Type: SectionGuarantee, Title: "品质承诺", Content: []string{"专业团队", "优质服务", "持续支持"}, Style: "badge_style"},
		},
		Colors: ColorScheme{
			Primary:    "#FF6B35",
			Secondary:  "#333333",
			Accent:     "#666666",
			Background: "#FFFFFF",
		},
		Fonts: map[string]FontSpec{
			"title":    {Size: 28, Weight: "bold"},
			"subtitle": {Size: 22, Weight: "normal"},
			"content":  {Size: 16, Weight: "normal"},
		},
	}
}

// SectionPrompt extends a base generation prompt with section-specific
// direction so each detail-page block gets a matching illustration.
func SectionPrompt(sectionType, basePrompt string) string {
	switch sectionType {
	case SectionHero:
		return basePrompt + ", hero section banner, large title design, professional layout"
	case SectionFeatures:
		return basePrompt + ", feature highlights, icon-based design, clean layout"
	case SectionBenefits:
		return basePrompt + ", benefits section, numbered list design, modern style"
	case SectionProcess:
		return basePrompt + ", step-by-step process, infographic style, clear flow"
	case SectionGuarantee:
		return basePrompt + ", quality guarantee badges, trust symbols, professional design"
	default:
		return basePrompt
	}
}

func benefitsFromKeywords(keywords []string) []string {
	var benefits []string
	for i, kw := range firstN(keywords, 5) {
		benefits = append(benefits, fmt.Sprintf(benefitTemplates[i%len(benefitTemplates)], kw))
	}
	if len(benefits) == 0 {
		benefits = []string{"提升使用效率", "获得专业支持"}
	}
	return benefits
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

func sliceFrom(items []string, start, end int) []string {
	if start >= len(items) {
		return nil
	}
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
