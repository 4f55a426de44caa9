package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalogIsValid(t *testing.T) {
	require.NoError(t, Validate(All(), Categories()))
}

func TestAllFollowsCategoryOrder(t *testing.T) {
	order := make(map[string]int)
	for i, c := range Categories() {
		order[c.ID] = i
	}

	last := -1
	for _, e := range All() {
		idx, ok := order[e.CategoryID]
		require.True(t, ok, e.ID)
		assert.GreaterOrEqual(t, idx, last, "question %s out of category order", e.ID)
		last = idx
	}
}

func TestAllReturnsCopies(t *testing.T) {
	first := All()
	first[0].Question = "changed"
	if len(first[0].Options) > 0 {
		first[0].Options[0] = "changed"
	}

	second := All()
	assert.NotEqual(t, "changed", second[0].Question)
	if len(second[0].Options) > 0 {
		assert.NotEqual(t, "changed", second[0].Options[0])
	}
}

func TestEveryCategoryHasQuestions(t *testing.T) {
	counts := make(map[string]int)
	for _, e := range All() {
		counts[e.CategoryID]++
	}
	for _, c := range Categories() {
		assert.Positive(t, counts[c.ID], "category %s has no questions", c.Name)
	}
	assert.GreaterOrEqual(t, counts["1"], 3)
}

func TestValidate(t *testing.T) {
	cats := []Category{{ID: "1", Name: "Matemática"}}

	tests := []struct {
		name    string
		entries []Entry
		wantErr bool
	}{
		{
			name:    "ok",
			entries: []Entry{{ID: "a", Category: "Matemática", CategoryID: "1", Difficulty: DifficultyEasy}},
		},
		{
			name: "duplicate id",
			entries: []Entry{
				{ID: "a", Category: "Matemática", CategoryID: "1", Difficulty: DifficultyEasy},
				{ID: "a", Category: "Matemática", CategoryID: "1", Difficulty: DifficultyHard},
			},
			wantErr: true,
		},
		{
			name:    "empty id",
			entries: []Entry{{Category: "Matemática", CategoryID: "1", Difficulty: DifficultyEasy}},
			wantErr: true,
		},
		{
			name:    "unknown category",
			entries: []Entry{{ID: "a", Category: "Música", CategoryID: "99", Difficulty: DifficultyEasy}},
			wantErr: true,
		},
		{
			name:    "category name mismatch",
			entries: []Entry{{ID: "a", Category: "Física", CategoryID: "1", Difficulty: DifficultyEasy}},
			wantErr: true,
		},
		{
			name:    "english difficulty alias accepted",
			entries: []Entry{{ID: "a", Category: "Matemática", CategoryID: "1", Difficulty: "Easy"}},
		},
		{
			name:    "unknown difficulty",
			entries: []Entry{{ID: "a", Category: "Matemática", CategoryID: "1", Difficulty: "Brutal"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.entries, cats)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in   string
		want Difficulty
		ok   bool
	}{
		{"Fácil", DifficultyEasy, true},
		{"easy", DifficultyEasy, true},
		{" Medium ", DifficultyMedium, true},
		{"médio", DifficultyMedium, true},
		{"HARD", DifficultyHard, true},
		{"Difícil", DifficultyHard, true},
		{"impossível", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDifficulty(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
