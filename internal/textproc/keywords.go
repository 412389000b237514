package textproc

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

var (
	tokenPattern = regexp.MustCompile(`[\p{Han}]+|[a-zA-Z][a-zA-Z0-9]+`)
	unitPattern  = regexp.MustCompile(`[0-9]+[%万千百十元天小时分钟]`)
)

const (
	maxSellingPoints    = 5
	sellingPointMaxLen  = 50
	defaultTitleKeyword = 3
)

// Keywords extracts up to k salient words ranked by frequency. Latin
// tokens count whole; Han runs are counted as 2..4 rune windows, so a
// word repeated across clauses outranks any single clause even without
// dictionary segmentation. Ties prefer longer candidates, then first-seen
// order, and candidates overlapping an already chosen keyword are
// skipped, so identical input always yields identical output.
func Keywords(text string, k int) []string {
	if k <= 0 {
		return nil
	}
	type entry struct {
		token string
		runes int
		count int
		first int
	}
	seen := map[string]*entry{}
	var order []*entry
	note := func(token string) {
		if _, stop := stopwords[token]; stop {
			return
		}
		if e, ok := seen[token]; ok {
			e.count++
			return
		}
		e := &entry{token: token, runes: len([]rune(token)), count: 1, first: len(order)}
		seen[token] = e
		order = append(order, e)
	}
	for _, token := range tokenPattern.FindAllString(text, -1) {
		runes := []rune(token)
		if len(runes) <= 1 {
			continue
		}
		if runes[0] < 128 {
			note(token)
			continue
		}
		for _, gram := range hanGrams(runes) {
			note(gram)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].count != order[j].count {
			return order[i].count > order[j].count
		}
		if order[i].runes != order[j].runes {
			return order[i].runes > order[j].runes
		}
		return order[i].first < order[j].first
	})
	var out []string
	for _, e := range order {
		if len(out) == k {
			break
		}
		if overlapsAny(out, e.token) {
			continue
		}
		out = append(out, e.token)
	}
	return out
}

// hanGrams slides 2..4 rune windows over a Han run. Windows that cross a
// word boundary recur rarely, so frequency ranking still surfaces the
// real words.
func hanGrams(runes []rune) []string {
	const minGram, maxGram = 2, 4
	var grams []string
	for size := minGram; size <= maxGram; size++ {
		for i := 0; i+size <= len(runes); i++ {
			grams = append(grams, string(runes[i:i+size]))
		}
	}
	return grams
}

func overlapsAny(chosen []string, candidate string) bool {
	for _, kw := range chosen {
		if strings.Contains(kw, candidate) || strings.Contains(candidate, kw) {
			return true
		}
	}
	return false
}

// SellingPoints mines short benefit statements out of article content.
// Sentences are kept when they cite a number with a unit (percent, currency,
// counts, durations) or contain one of the impact verbs, and stay under the
// length ceiling. At most five unique points are returned, first seen first.
func SellingPoints(content string) []string {
	sentences := splitSentences(content)
	seen := map[string]struct{}{}
	var points []string
	add := func(sentence string) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" || len([]rune(sentence)) >= sellingPointMaxLen {
			return
		}
		if _, dup := seen[sentence]; dup {
			return
		}
		seen[sentence] = struct{}{}
		points = append(points, sentence)
	}
	for _, sentence := range sentences {
		if unitPattern.MatchString(sentence) {
			add(sentence)
		}
	}
	for _, sentence := range sentences {
		for _, verb := range impactVerbs {
			if strings.Contains(sentence, verb) {
				add(sentence)
				break
			}
		}
	}
	if len(points) > maxSellingPoints {
		points = points[:maxSellingPoints]
	}
	return points
}

// TitleVariants proposes alternate phrasings of a title for main-image
// design: the original, a keyword join, a question form, and a numbered
// how-to form.
func TitleVariants(title string) []string {
	variants := []string{title}
	keywords := Keywords(title, defaultTitleKeyword)
	if len(keywords) >= 2 {
		variants = append(variants,
			strings.Join(keywords[:2], " + "),
			fmt.Sprintf("如何%s？", keywords[0]),
			fmt.Sprintf("3步掌握%s", keywords[0]),
		)
	}
	return variants
}

func splitSentences(content string) []string {
	return strings.FieldsFunc(content, func(r rune) bool {
		switch r {
		case '。', '！', '？', '\n', '.', '!', '?':
			return true
		}
		return unicode.Is(unicode.Cc, r) && r != '\t'
	})
}
