package catalog

var chemistryQuestions = []Entry{
	{
		ID:         "qui-01",
		Question:   "Qual é o número atômico do carbono?",
		Answer:     "6",
		Options:    []string{"4", "6", "12", "14"},
		Category:   "Química",
		CategoryID: "3",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-18",
		UpdatedAt:  "2024-01-18",
	},
	{
		ID:         "qui-02",
		Question:   "Calcular a massa molar da água (H₂O), sabendo que H = 1 g/mol e O = 16 g/mol.",
		Answer:     "18 g/mol",
		Options:    []string{"17 g/mol", "18 g/mol", "32 g/mol", "34 g/mol"},
		Category:   "Química",
		CategoryID: "3",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-18",
		UpdatedAt:  "2024-01-18",
	},
	{
		ID:         "qui-03",
		Question:   "(ENEM) Em uma pilha de Daniell, qual eletrodo sofre oxidação?",
		Answer:     "O eletrodo de zinco",
		Options:    []string{"O eletrodo de cobre", "O eletrodo de zinco", "A ponte salina", "Ambos os eletrodos"},
		Category:   "Química",
		CategoryID: "3",
		Difficulty: DifficultyHard,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-19",
		UpdatedAt:  "2024-01-19",
	},
}
