package catalog

var biologyQuestions = []Entry{
	{
		ID:         "bio-01",
		Question:   "Qual organela é responsável pela respiração celular?",
		Answer:     "Mitocôndria",
		Options:    []string{"Ribossomo", "Mitocôndria", "Complexo de Golgi", "Lisossomo"},
		Category:   "Biologia",
		CategoryID: "4",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-20",
		UpdatedAt:  "2024-01-20",
	},
	{
		ID:         "bio-02",
		Question:   "No cruzamento Aa × Aa, qual a proporção fenotípica esperada para dominância completa?",
		Answer:     "3:1",
		Options:    []string{"1:1", "1:2:1", "3:1", "9:3:3:1"},
		Category:   "Biologia",
		CategoryID: "4",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-20",
		UpdatedAt:  "2024-01-20",
	},
	{
		ID:         "bio-03",
		Question:   "A fotossíntese ocorre nos cloroplastos das células vegetais.",
		Answer:     "Verdadeiro",
		Options:    []string{"Verdadeiro", "Falso"},
		Category:   "Biologia",
		CategoryID: "4",
		Difficulty: DifficultyEasy,
		Type:       TypeTrueFalse,
		CreatedAt:  "2024-01-21",
		UpdatedAt:  "2024-01-21",
	},
}
