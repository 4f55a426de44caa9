package catalog

var englishQuestions = []Entry{
	{
		ID:         "ing-01",
		Question:   "Qual é o passado simples do verbo \"to go\"?",
		Answer:     "went",
		Options:    []string{"goed", "gone", "went", "going"},
		Category:   "Inglês",
		CategoryID: "11",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-02-01",
		UpdatedAt:  "2024-02-01",
	},
	{
		ID:         "ing-02",
		Question:   "(ENEM) No trecho \"Despite the rain, they kept walking\", a palavra \"despite\" expressa que ideia?",
		Answer:     "Concessão",
		Options:    []string{"Causa", "Concessão", "Finalidade", "Tempo"},
		Category:   "Inglês",
		CategoryID: "11",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-02-01",
		UpdatedAt:  "2024-02-01",
	},
}
