// Package classifier derives tags, exam type and study hints for catalog questions.
// Rules are grouped into layers so the keyword heuristics can be swapped without
// touching the repository.
package classifier

import (
	"context"
	"strings"

	"github.com/hrygo/smartstudy/internal/catalog"
)

// ExamType is the exam a question is associated with.
type ExamType string

const (
	ExamENEM       ExamType = "ENEM"
	ExamVestibular ExamType = "VESTIBULAR"
	ExamConcurso   ExamType = "CONCURSO"
	ExamGeneral    ExamType = "GENERAL"
)

// ParseExamType accepts exam type names case-insensitively.
func ParseExamType(s string) (ExamType, bool) {
	switch ExamType(strings.ToUpper(strings.TrimSpace(s))) {
	case ExamENEM:
		return ExamENEM, true
	case ExamVestibular:
		return ExamVestibular, true
	case ExamConcurso:
		return ExamConcurso, true
	case ExamGeneral:
		return ExamGeneral, true
	}
	return "", false
}

// Result is the derived metadata for one question.
type Result struct {
	Tags            []string `json:"tags"`
	ExamType        ExamType `json:"examType"`
	Recommendations []string `json:"studyRecommendations"`
}

// Classifier derives metadata for a catalog entry.
type Classifier interface {
	Classify(ctx context.Context, entry *catalog.Entry) *Result
}

// Layer represents a single step in the classification pipeline.
type Layer interface {
	// Name returns the layer name for logging.
	Name() string
	// Apply adds this layer's findings to the result.
	Apply(ctx context.Context, entry *catalog.Entry, result *Result)
}

// Pipeline runs layers in order and normalises the outcome.
type Pipeline struct {
	layers []Layer
}

// New creates a pipeline from the given layers.
func New(layers ...Layer) *Pipeline {
	return &Pipeline{layers: layers}
}

// NewDefault returns the built-in rule set: facets, keywords, exam type and
// per-subject study hints.
func NewDefault() *Pipeline {
	return New(
		NewFacetLayer(),
		NewKeywordLayer(DefaultKeywordRules()),
		NewExamTypeLayer(DefaultExamRules()),
		NewRecommendationLayer(DefaultRecommendations()),
	)
}

// Layers returns the layer names in execution order.
func (p *Pipeline) Layers() []string {
	names := make([]string, 0, len(p.layers))
	for _, l := range p.layers {
		names = append(names, l.Name())
	}
	return names
}

// Classify implements Classifier.
func (p *Pipeline) Classify(ctx context.Context, entry *catalog.Entry) *Result {
	result := &Result{}
	for _, l := range p.layers {
		l.Apply(ctx, entry, result)
	}

	result.Tags = dedupe(result.Tags)
	if result.ExamType == "" {
		result.ExamType = ExamGeneral
	}
	if result.Recommendations == nil {
		result.Recommendations = []string{}
	}
	return result
}

// dedupe keeps the first occurrence of every non-empty tag.
func dedupe(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
