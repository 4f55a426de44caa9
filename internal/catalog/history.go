package catalog

var historyQuestions = []Entry{
	{
		ID:         "his-01",
		Question:   "Em que ano foi proclamada a independência do Brasil?",
		Answer:     "1822",
		Options:    []string{"1808", "1822", "1889", "1500"},
		Category:   "História",
		CategoryID: "5",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-22",
		UpdatedAt:  "2024-01-22",
	},
	{
		ID:         "his-02",
		Question:   "Analisar as causas econômicas da Revolução Industrial na Inglaterra.",
		Answer:     "Acúmulo de capital, disponibilidade de carvão e ferro, mão de obra vinda do campo e mercado consumidor colonial.",
		Options:    []string{},
		Category:   "História",
		CategoryID: "5",
		Difficulty: DifficultyHard,
		Type:       TypeEssay,
		CreatedAt:  "2024-01-22",
		UpdatedAt:  "2024-01-22",
	},
	{
		ID:         "his-03",
		Question:   "(Concurso) Qual documento aboliu a escravidão no Brasil?",
		Answer:     "Lei Áurea",
		Options:    []string{"Lei do Ventre Livre", "Lei Áurea", "Lei dos Sexagenários", "Lei Eusébio de Queirós"},
		Category:   "História",
		CategoryID: "5",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-23",
		UpdatedAt:  "2024-01-23",
	},
}
