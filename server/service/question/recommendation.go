package question

import (
	"fmt"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/plugin/classifier"
)

const advancedTopic = "Conceitos Avançados"

// GetStudyRecommendations suggests topics for a selection of questions: one per
// category in first-seen order, plus an advanced-topics entry when more than
// half of the selected ids are hard questions. Unknown ids count towards the
// selection size only.
func (r *Repository) GetStudyRecommendations(ids []string) []Recommendation {
	recommendations := make([]Recommendation, 0)
	if len(ids) == 0 {
		return recommendations
	}

	var order []string
	counts := make(map[string]int)
	hard := 0
	for _, id := range ids {
		q, ok := r.index[id]
		if !ok {
			continue
		}
		if counts[q.Category] == 0 {
			order = append(order, q.Category)
		}
		counts[q.Category]++
		if q.Difficulty == catalog.DifficultyHard {
			hard++
		}
	}

	for _, category := range order {
		recommendations = append(recommendations, Recommendation{
			Topic:       category,
			Description: fmt.Sprintf("Revisar conceitos fundamentais de %s", category),
			Resources:   classifier.ResourcesFor(category),
			Priority:    priorityFor(counts[category]),
		})
	}

	if float64(hard)/float64(len(ids)) > 0.5 {
		recommendations = append(recommendations, Recommendation{
			Topic:       advancedTopic,
			Description: "Focar em conceitos mais complexos e aplicações práticas",
			Resources:   []string{"Livros avançados", "Vídeo-aulas especializadas", "Exercícios desafiadores"},
			Priority:    PriorityHigh,
		})
	}
	return recommendations
}

func priorityFor(count int) Priority {
	switch {
	case count > 2:
		return PriorityHigh
	case count > 1:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
