package classifier

import (
	"context"
	"strings"

	"github.com/hrygo/smartstudy/internal/catalog"
)

// FacetLayer tags a question with its lowercased category and difficulty.
type FacetLayer struct{}

func NewFacetLayer() *FacetLayer {
	return &FacetLayer{}
}

func (l *FacetLayer) Name() string {
	return "facets"
}

func (l *FacetLayer) Apply(_ context.Context, entry *catalog.Entry, result *Result) {
	result.Tags = append(result.Tags,
		strings.ToLower(entry.Category),
		strings.ToLower(string(entry.Difficulty)),
	)
}

// KeywordRule emits Tag when the question text contains any of Keywords.
type KeywordRule struct {
	Keywords []string
	Tag      string
}

// DefaultKeywordRules returns the built-in keyword table.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{Keywords: []string{"fórmula", "calcular"}, Tag: "cálculo"},
		{Keywords: []string{"definir", "conceito"}, Tag: "conceitos"},
		{Keywords: []string{"analisar", "interpretar"}, Tag: "análise"},
		{Keywords: []string{"aplicar", "usar"}, Tag: "aplicação"},
	}
}

// KeywordLayer adds tags triggered by substrings of the question text.
type KeywordLayer struct {
	rules []KeywordRule
}

func NewKeywordLayer(rules []KeywordRule) *KeywordLayer {
	return &KeywordLayer{rules: rules}
}

func (l *KeywordLayer) Name() string {
	return "keywords"
}

func (l *KeywordLayer) Apply(_ context.Context, entry *catalog.Entry, result *Result) {
	text := strings.ToLower(entry.Question)
	for _, rule := range l.rules {
		if containsAny(text, rule.Keywords) {
			result.Tags = append(result.Tags, rule.Tag)
		}
	}
}

// ExamRule assigns ExamType when the question text contains any of Keywords.
type ExamRule struct {
	Keywords []string
	ExamType ExamType
}

// DefaultExamRules returns the exam rules in priority order.
func DefaultExamRules() []ExamRule {
	return []ExamRule{
		{Keywords: []string{"enem", "prova do enem"}, ExamType: ExamENEM},
		{Keywords: []string{"vestibular", "fuvest"}, ExamType: ExamVestibular},
		{Keywords: []string{"concurso", "público"}, ExamType: ExamConcurso},
	}
}

// ExamTypeLayer picks the first matching exam rule, GENERAL otherwise.
type ExamTypeLayer struct {
	rules []ExamRule
}

func NewExamTypeLayer(rules []ExamRule) *ExamTypeLayer {
	return &ExamTypeLayer{rules: rules}
}

func (l *ExamTypeLayer) Name() string {
	return "exam_type"
}

func (l *ExamTypeLayer) Apply(_ context.Context, entry *catalog.Entry, result *Result) {
	text := strings.ToLower(entry.Question)
	for _, rule := range l.rules {
		if containsAny(text, rule.Keywords) {
			result.ExamType = rule.ExamType
			return
		}
	}
	result.ExamType = ExamGeneral
}

// RecommendationLayer attaches the fixed study hints of the question's subject.
type RecommendationLayer struct {
	byCategory map[string][]string
}

func NewRecommendationLayer(byCategory map[string][]string) *RecommendationLayer {
	return &RecommendationLayer{byCategory: byCategory}
}

func (l *RecommendationLayer) Name() string {
	return "recommendations"
}

func (l *RecommendationLayer) Apply(_ context.Context, entry *catalog.Entry, result *Result) {
	result.Recommendations = append(result.Recommendations, l.byCategory[entry.Category]...)
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
