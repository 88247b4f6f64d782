package cutpoints

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"

	"cutter/internal/transcript"
)

// DefaultKeyword is the spoken word that marks a split.
const DefaultKeyword = "cut"

// Matcher finds a keyword as a whole-word token run inside free text.
type Matcher struct {
	keyword string
	tokens  []string
}

// NewMatcher builds a matcher for keyword. A blank keyword falls back to DefaultKeyword.
func NewMatcher(keyword string) *Matcher {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		keyword = DefaultKeyword
	}
	return &Matcher{keyword: keyword, tokens: tokenize(keyword)}
}

// Keyword returns the configured keyword.
func (m *Matcher) Keyword() string {
	return m.keyword
}

// Match reports whether text contains the keyword on word boundaries.
func (m *Matcher) Match(text string) bool {
	if len(m.tokens) == 0 {
		return false
	}
	words := tokenize(text)
	for i := 0; i+len(m.tokens) <= len(words); i++ {
		if equalRun(words[i:i+len(m.tokens)], m.tokens) {
			return true
		}
	}
	return false
}

// Extract returns the end timestamp of every segment whose text matches.
// Output follows transcript order and is neither sorted nor deduplicated.
func (m *Matcher) Extract(segments []transcript.Segment) []float64 {
	points := make([]float64, 0)
	for _, seg := range segments {
		if m.Match(seg.Text) {
			points = append(points, seg.End)
		}
	}
	return points
}

// Extract is a convenience wrapper around NewMatcher(keyword).Extract.
func Extract(segments []transcript.Segment, keyword string) []float64 {
	return NewMatcher(keyword).Extract(segments)
}

func tokenize(text string) []string {
	folded := cases.Fold().String(text)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r)
}

func equalRun(a, b []string) bool {
	for i := range b {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
