package question

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/plugin/classifier"
)

func TestFilterMerge(t *testing.T) {
	base := Filter{Category: "mat", Tags: []string{"a"}, IsFavorite: boolPtr(true)}

	merged := base.Merge(Filter{Difficulty: catalog.DifficultyEasy, Tags: []string{"b"}, ExamType: classifier.ExamENEM})
	assert.Equal(t, "mat", merged.Category)
	assert.Equal(t, catalog.DifficultyEasy, merged.Difficulty)
	assert.Equal(t, []string{"b"}, merged.Tags)
	assert.Equal(t, classifier.ExamENEM, merged.ExamType)
	assert.True(t, *merged.IsFavorite)

	merged = merged.Merge(Filter{IsFavorite: boolPtr(false)})
	assert.False(t, *merged.IsFavorite)
	assert.True(t, *base.IsFavorite, "merge must not alias the original pointer")
}

func TestFilterWithout(t *testing.T) {
	f := Filter{
		Category:   "mat",
		CategoryID: "1",
		Difficulty: catalog.DifficultyHard,
		Tags:       []string{"a"},
		IsFavorite: boolPtr(true),
		Expression: "true",
	}

	got := f.Without(FieldIsFavorite, FieldTags, "unknown")
	assert.Nil(t, got.IsFavorite)
	assert.Nil(t, got.Tags)
	assert.Equal(t, "mat", got.Category)
	assert.Equal(t, "1", got.CategoryID)
	assert.Equal(t, catalog.DifficultyHard, got.Difficulty)
	assert.Equal(t, "true", got.Expression)
	assert.NotNil(t, f.IsFavorite)

	got = got.Without(FieldCategory, FieldCategoryID, FieldDifficulty, FieldExpression)
	assert.True(t, got.IsEmpty())
}

func TestFilterIsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{Tags: []string{}}.IsEmpty())
	assert.False(t, Filter{IsFavorite: boolPtr(false)}.IsEmpty())
	assert.False(t, Filter{Expression: "true"}.IsEmpty())
}
