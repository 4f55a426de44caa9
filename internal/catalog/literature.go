package catalog

var literatureQuestions = []Entry{
	{
		ID:         "lit-01",
		Question:   "Quem escreveu \"Dom Casmurro\"?",
		Answer:     "Machado de Assis",
		Options:    []string{"José de Alencar", "Machado de Assis", "Aluísio Azevedo", "Graciliano Ramos"},
		Category:   "Literatura",
		CategoryID: "8",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-28",
		UpdatedAt:  "2024-01-28",
	},
	{
		ID:         "lit-02",
		Question:   "(Vestibular) Qual escola literária é marcada pelo nacionalismo e pela idealização do indígena?",
		Answer:     "Romantismo",
		Options:    []string{"Barroco", "Arcadismo", "Romantismo", "Realismo"},
		Category:   "Literatura",
		CategoryID: "8",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-28",
		UpdatedAt:  "2024-01-28",
	},
}
