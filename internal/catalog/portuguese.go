package catalog

var portugueseQuestions = []Entry{
	{
		ID:         "por-01",
		Question:   "Qual é a classe gramatical da palavra \"rapidamente\"?",
		Answer:     "Advérbio",
		Options:    []string{"Adjetivo", "Advérbio", "Substantivo", "Verbo"},
		Category:   "Português",
		CategoryID: "7",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-26",
		UpdatedAt:  "2024-01-26",
	},
	{
		ID:         "por-02",
		Question:   "(Concurso público) Assinale a alternativa em que o uso da crase está correto.",
		Answer:     "Vou à escola.",
		Options:    []string{"Vou à pé.", "Vou à escola.", "Refiro-me à você.", "Começou à chover."},
		Category:   "Português",
		CategoryID: "7",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-26",
		UpdatedAt:  "2024-01-26",
	},
	{
		ID:         "por-03",
		Question:   "Defina oração subordinada adjetiva restritiva.",
		Answer:     "É a oração que restringe o sentido do termo antecedente, sem vírgulas, introduzida por pronome relativo.",
		Options:    []string{},
		Category:   "Português",
		CategoryID: "7",
		Difficulty: DifficultyMedium,
		Type:       TypeEssay,
		CreatedAt:  "2024-01-27",
		UpdatedAt:  "2024-01-27",
	},
}
