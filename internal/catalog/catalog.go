// Package catalog holds the built-in question bank and its subject categories.
package catalog

import (
	"fmt"
	"strings"
)

// Difficulty is the difficulty label of a question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Fácil"
	DifficultyMedium Difficulty = "Médio"
	DifficultyHard   Difficulty = "Difícil"
)

// ParseDifficulty normalises a difficulty label. English labels are accepted as aliases.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fácil", "facil", "easy":
		return DifficultyEasy, true
	case "médio", "medio", "medium":
		return DifficultyMedium, true
	case "difícil", "dificil", "hard":
		return DifficultyHard, true
	}
	return "", false
}

// Question types used by the bank.
const (
	TypeMultipleChoice = "Múltipla Escolha"
	TypeTrueFalse      = "Verdadeiro ou Falso"
	TypeEssay          = "Dissertativa"
)

// Category is a study subject.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Entry is a raw question record as authored in the bank.
type Entry struct {
	ID         string     `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Options    []string   `json:"options"`
	Category   string     `json:"category"`
	CategoryID string     `json:"categoryId"`
	Difficulty Difficulty `json:"difficulty"`
	Type       string     `json:"type"`
	CreatedAt  string     `json:"createdAt"`
	UpdatedAt  string     `json:"updatedAt"`
}

// All returns every built-in question, grouped by subject in category order.
// The slice and the option lists are fresh copies.
func All() []Entry {
	groups := [][]Entry{
		mathQuestions,
		physicsQuestions,
		chemistryQuestions,
		biologyQuestions,
		historyQuestions,
		geographyQuestions,
		portugueseQuestions,
		literatureQuestions,
		philosophyQuestions,
		sociologyQuestions,
		englishQuestions,
	}

	var all []Entry
	for _, group := range groups {
		for _, e := range group {
			e.Options = append([]string(nil), e.Options...)
			all = append(all, e)
		}
	}
	return all
}

// Categories returns the subject list in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// Validate checks that ids are unique, difficulties are known and every entry
// points at an existing category whose name matches.
func Validate(entries []Entry, cats []Category) error {
	byID := make(map[string]Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.ID == "" {
			return fmt.Errorf("question with empty id: %q", e.Question)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate question id %q", e.ID)
		}
		seen[e.ID] = true

		if _, ok := ParseDifficulty(string(e.Difficulty)); !ok {
			return fmt.Errorf("question %q has unknown difficulty %q", e.ID, e.Difficulty)
		}
		if len(cats) == 0 {
			continue
		}
		c, ok := byID[e.CategoryID]
		if !ok {
			return fmt.Errorf("question %q references unknown category %q", e.ID, e.CategoryID)
		}
		if c.Name != e.Category {
			return fmt.Errorf("question %q category %q does not match category %q", e.ID, e.Category, c.Name)
		}
	}
	return nil
}
