package textproc

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywordsRankedByFrequency(t *testing.T) {
	text := "创业指南。创业需要方法，方法决定成败。创业是一场长跑。"
	got := Keywords(text, 3)
	if len(got) == 0 || got[0] != "创业" {
		t.Fatalf("keywords = %v, want 创业 ranked first", got)
	}
	if len(got) < 2 || got[1] != "方法" {
		t.Fatalf("keywords = %v, want 方法 ranked second", got)
	}
	for _, kw := range got {
		if n := len([]rune(kw)); n <= 1 || n > 4 {
			t.Fatalf("keyword %q outside 2..4 runes", kw)
		}
		if _, stop := stopwords[kw]; stop {
			t.Fatalf("stopword %q leaked into keywords", kw)
		}
	}
}

func TestKeywordsRepeatedWordBeatsWholeClause(t *testing.T) {
	got := Keywords("优质服务成就口碑，优质材料成就品质。", 3)
	if len(got) == 0 || got[0] != "优质" {
		t.Fatalf("keywords = %v, want 优质 ranked first", got)
	}
	for _, kw := range got {
		if strings.Contains(kw, "，") || len([]rune(kw)) > 4 {
			t.Fatalf("clause-length keyword leaked: %q", kw)
		}
	}
}

func TestKeywordsDeterministic(t *testing.T) {
	text := "提升效率 节省时间 提升质量 professional design professional"
	first := Keywords(text, 5)
	for i := 0; i < 10; i++ {
		if again := Keywords(text, 5); !reflect.DeepEqual(first, again) {
			t.Fatalf("keywords not deterministic: %v vs %v", first, again)
		}
	}
}

func TestKeywordsRespectsLimit(t *testing.T) {
	text := "苹果 香蕉 橙子 葡萄 西瓜 草莓"
	if got := Keywords(text, 2); len(got) > 2 {
		t.Fatalf("keywords = %v, want at most 2", got)
	}
	if got := Keywords(text, 0); got != nil {
		t.Fatalf("k=0 should return nil, got %v", got)
	}
}

func TestSellingPointsPatterns(t *testing.T) {
	content := "效率提升300%。本方案可节省大量时间。今天天气不错。价格仅需99元！"
	points := SellingPoints(content)
	if len(points) == 0 || len(points) > 5 {
		t.Fatalf("points = %v, want 1..5 entries", points)
	}
	for _, p := range points {
		if len([]rune(p)) >= 50 {
			t.Fatalf("point too long: %q", p)
		}
		if !unitPattern.MatchString(p) && !containsImpactVerb(p) {
			t.Fatalf("point %q matches neither digit+unit nor impact verb", p)
		}
	}
	for _, p := range points {
		if p == "今天天气不错" {
			t.Fatalf("neutral sentence should be filtered out")
		}
	}
}

func TestSellingPointsDeduplicates(t *testing.T) {
	content := "节省50%成本。节省50%成本。节省50%成本。"
	points := SellingPoints(content)
	if len(points) != 1 {
		t.Fatalf("points = %v, want single deduplicated entry", points)
	}
}

func TestTitleVariants(t *testing.T) {
	variants := TitleVariants("网络创业 实战指南")
	if variants[0] != "网络创业 实战指南" {
		t.Fatalf("first variant must be the original, got %q", variants[0])
	}
	if len(variants) != 4 {
		t.Fatalf("variants = %v, want original plus 3 derived forms", variants)
	}
}

func containsImpactVerb(s string) bool {
	for _, verb := range impactVerbs {
		if strings.Contains(s, verb) {
			return true
		}
	}
	return false
}
