package catalog

var sociologyQuestions = []Entry{
	{
		ID:         "soc-01",
		Question:   "Para Émile Durkheim, o que são fatos sociais?",
		Answer:     "Maneiras de agir, pensar e sentir exteriores ao indivíduo e dotadas de poder coercitivo.",
		Options:    []string{},
		Category:   "Sociologia",
		CategoryID: "10",
		Difficulty: DifficultyMedium,
		Type:       TypeEssay,
		CreatedAt:  "2024-01-30",
		UpdatedAt:  "2024-01-30",
	},
	{
		ID:         "soc-02",
		Question:   "Max Weber é considerado um dos fundadores da sociologia.",
		Answer:     "Verdadeiro",
		Options:    []string{"Verdadeiro", "Falso"},
		Category:   "Sociologia",
		CategoryID: "10",
		Difficulty: DifficultyEasy,
		Type:       TypeTrueFalse,
		CreatedAt:  "2024-01-30",
		UpdatedAt:  "2024-01-30",
	},
}
