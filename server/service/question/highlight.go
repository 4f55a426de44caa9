package question

import (
	"strings"
	"unicode"
)

const (
	snippetContext  = 40
	maxBoundaryScan = 10
	ellipsis        = "..."
)

// Highlight marks a match inside a text. Offsets count runes.
type Highlight struct {
	Start       int    `json:"start"`
	End         int    `json:"end"`
	MatchedText string `json:"matchedText"`
}

// SearchHit is the excerpt of a question matched by a search.
type SearchHit struct {
	QuestionID string      `json:"questionId"`
	Snippet    string      `json:"snippet"`
	Highlights []Highlight `json:"highlights"`
}

// Hits builds one excerpt of the question text per question, centered on the
// first occurrence of query. Questions matched only through their answer or
// tags get the start of their text and no highlights.
func Hits(questions []*Question, query string) []SearchHit {
	term := []rune(strings.ToLower(strings.TrimSpace(query)))
	hits := make([]SearchHit, 0, len(questions))
	for _, q := range questions {
		content := []rune(q.Question)
		snippet, highlights := excerpt(content, findMatches(content, term))
		hits = append(hits, SearchHit{QuestionID: q.ID, Snippet: snippet, Highlights: highlights})
	}
	return hits
}

// findMatches returns the non-overlapping case-insensitive occurrences of term.
func findMatches(content, term []rune) []Highlight {
	matches := make([]Highlight, 0)
	n := len(term)
	if n == 0 {
		return matches
	}
	lowered := string(term)
	for i := 0; i+n <= len(content); {
		window := content[i : i+n]
		if strings.ToLower(string(window)) != lowered {
			i++
			continue
		}
		matches = append(matches, Highlight{Start: i, End: i + n, MatchedText: string(window)})
		i += n
	}
	return matches
}

// excerpt cuts a window of content around the first match, widened to word
// boundaries, and shifts the highlights inside the window onto the excerpt.
func excerpt(content []rune, matches []Highlight) (string, []Highlight) {
	if len(content) == 0 {
		return "", []Highlight{}
	}
	if len(matches) == 0 {
		end := wordBoundary(content, 2*snippetContext, true)
		snippet := string(content[:end])
		if end < len(content) {
			snippet += ellipsis
		}
		return snippet, []Highlight{}
	}

	start, end := window(matches[0].Start, len(content))
	start = wordBoundary(content, start, false)
	end = wordBoundary(content, end, true)

	var b strings.Builder
	prefix := 0
	if start > 0 {
		b.WriteString(ellipsis)
		prefix = len([]rune(ellipsis))
	}
	b.WriteString(string(content[start:end]))
	if end < len(content) {
		b.WriteString(ellipsis)
	}

	shifted := make([]Highlight, 0, len(matches))
	for _, m := range matches {
		if m.Start >= start && m.End <= end {
			shifted = append(shifted, Highlight{
				Start:       m.Start - start + prefix,
				End:         m.End - start + prefix,
				MatchedText: m.MatchedText,
			})
		}
	}
	return b.String(), shifted
}

// window centers 2*snippetContext runes on center, shifted to fit in [0, length).
func window(center, length int) (start, end int) {
	start = center - snippetContext
	end = center + snippetContext
	if start < 0 {
		end -= start
		start = 0
	}
	if end > length {
		start -= end - length
		end = length
	}
	if start < 0 {
		start = 0
	}
	return start, end
}

// wordBoundary moves pos to a nearby separator: forward for an end position,
// backward for a start position. It gives up after maxBoundaryScan runes.
func wordBoundary(content []rune, pos int, forward bool) int {
	if pos <= 0 {
		return 0
	}
	if pos >= len(content) {
		return len(content)
	}
	if forward {
		for i := pos; i < len(content) && i < pos+maxBoundaryScan; i++ {
			if isSeparator(content[i]) {
				return i
			}
		}
		return pos
	}
	for i := pos - 1; i >= 0 && i >= pos-maxBoundaryScan; i-- {
		if isSeparator(content[i]) {
			return i + 1
		}
	}
	return pos
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(".,;:!?…", r)
}
