package question

import (
	"strings"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/plugin/classifier"
)

// Filter selects questions. Zero-valued fields are ignored; present fields are
// combined with AND.
type Filter struct {
	// Category is matched as a case-insensitive substring of the category name.
	Category   string              `json:"category,omitempty"`
	CategoryID string              `json:"categoryId,omitempty"`
	Difficulty catalog.Difficulty  `json:"difficulty,omitempty"`
	Type       string              `json:"type,omitempty"`
	ExamType   classifier.ExamType `json:"examType,omitempty"`
	// Tags matches questions carrying at least one of the tags.
	Tags       []string `json:"tags,omitempty"`
	IsFavorite *bool    `json:"isFavorite,omitempty"`
	SearchTerm string   `json:"searchTerm,omitempty"`
	// Expression is a CEL predicate evaluated against each question.
	Expression string `json:"expression,omitempty"`
}

// Merge returns f overlaid with every present field of other.
func (f Filter) Merge(other Filter) Filter {
	if other.Category != "" {
		f.Category = other.Category
	}
	if other.CategoryID != "" {
		f.CategoryID = other.CategoryID
	}
	if other.Difficulty != "" {
		f.Difficulty = other.Difficulty
	}
	if other.Type != "" {
		f.Type = other.Type
	}
	if other.ExamType != "" {
		f.ExamType = other.ExamType
	}
	if len(other.Tags) > 0 {
		f.Tags = append([]string(nil), other.Tags...)
	}
	if other.IsFavorite != nil {
		v := *other.IsFavorite
		f.IsFavorite = &v
	}
	if other.SearchTerm != "" {
		f.SearchTerm = other.SearchTerm
	}
	if other.Expression != "" {
		f.Expression = other.Expression
	}
	return f
}

// FilterField names a single facet of a Filter.
type FilterField string

const (
	FieldCategory   FilterField = "category"
	FieldCategoryID FilterField = "categoryId"
	FieldDifficulty FilterField = "difficulty"
	FieldType       FilterField = "type"
	FieldExamType   FilterField = "examType"
	FieldTags       FilterField = "tags"
	FieldIsFavorite FilterField = "isFavorite"
	FieldSearchTerm FilterField = "searchTerm"
	FieldExpression FilterField = "expression"
)

// Without returns f with the named facets unset. Unknown names are ignored.
func (f Filter) Without(fields ...FilterField) Filter {
	for _, field := range fields {
		switch field {
		case FieldCategory:
			f.Category = ""
		case FieldCategoryID:
			f.CategoryID = ""
		case FieldDifficulty:
			f.Difficulty = ""
		case FieldType:
			f.Type = ""
		case FieldExamType:
			f.ExamType = ""
		case FieldTags:
			f.Tags = nil
		case FieldIsFavorite:
			f.IsFavorite = nil
		case FieldSearchTerm:
			f.SearchTerm = ""
		case FieldExpression:
			f.Expression = ""
		}
	}
	return f
}

// IsEmpty reports whether the filter selects everything.
func (f Filter) IsEmpty() bool {
	return f.Category == "" && f.CategoryID == "" && f.Difficulty == "" && f.Type == "" &&
		f.ExamType == "" && len(f.Tags) == 0 && f.IsFavorite == nil && f.SearchTerm == "" &&
		f.Expression == ""
}

// normalized lowercases tags and maps difficulty aliases onto the canonical labels.
func (f Filter) normalized() Filter {
	if d, ok := catalog.ParseDifficulty(string(f.Difficulty)); ok {
		f.Difficulty = d
	}
	if len(f.Tags) > 0 {
		tags := make([]string, len(f.Tags))
		for i, t := range f.Tags {
			tags[i] = strings.ToLower(t)
		}
		f.Tags = tags
	}
	f.Category = strings.ToLower(f.Category)
	f.SearchTerm = strings.ToLower(f.SearchTerm)
	return f
}

// matches applies every field except Expression. f must be normalized.
func (f Filter) matches(q *Question, favorite bool) bool {
	if f.Category != "" && !strings.Contains(strings.ToLower(q.Category), f.Category) {
		return false
	}
	if f.CategoryID != "" && q.CategoryID != f.CategoryID {
		return false
	}
	if f.Difficulty != "" && q.Difficulty != f.Difficulty {
		return false
	}
	if f.Type != "" && q.Type != f.Type {
		return false
	}
	if f.ExamType != "" && q.ExamType != f.ExamType {
		return false
	}
	if len(f.Tags) > 0 {
		found := false
		for _, t := range f.Tags {
			if q.hasTag(t) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.IsFavorite != nil && *f.IsFavorite != favorite {
		return false
	}
	if f.SearchTerm != "" && !matchesTerm(q, f.SearchTerm) {
		return false
	}
	return true
}

// matchesTerm reports whether a lowercased term occurs in the question text,
// the answer or a tag.
func matchesTerm(q *Question, term string) bool {
	if strings.Contains(strings.ToLower(q.Question), term) ||
		strings.Contains(strings.ToLower(q.Answer), term) {
		return true
	}
	for _, t := range q.Tags {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}
