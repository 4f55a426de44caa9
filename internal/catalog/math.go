package catalog

var mathQuestions = []Entry{
	{
		ID:         "mat-01",
		Question:   "Qual é a fórmula para calcular a área de um círculo de raio r?",
		Answer:     "πr²",
		Options:    []string{"πr²", "2πr", "πd", "r²"},
		Category:   "Matemática",
		CategoryID: "1",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-10",
		UpdatedAt:  "2024-01-10",
	},
	{
		ID:         "mat-02",
		Question:   "(ENEM) Um capital de R$ 1.000,00 é aplicado a juros compostos de 10% ao mês. Qual o montante após 2 meses?",
		Answer:     "R$ 1.210,00",
		Options:    []string{"R$ 1.200,00", "R$ 1.210,00", "R$ 1.100,00", "R$ 1.331,00"},
		Category:   "Matemática",
		CategoryID: "1",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-10",
		UpdatedAt:  "2024-01-10",
	},
	{
		ID:         "mat-03",
		Question:   "(FUVEST) Determine as raízes reais da equação x⁴ - 5x² + 4 = 0.",
		Answer:     "-2, -1, 1 e 2",
		Options:    []string{"-2, -1, 1 e 2", "1 e 4", "-4, -1, 1 e 4", "Não possui raízes reais"},
		Category:   "Matemática",
		CategoryID: "1",
		Difficulty: DifficultyHard,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-12",
		UpdatedAt:  "2024-01-12",
	},
	{
		ID:         "mat-04",
		Question:   "Defina o conceito de função injetora e dê um exemplo.",
		Answer:     "Uma função é injetora quando elementos distintos do domínio têm imagens distintas, como f(x) = 2x + 1.",
		Options:    []string{},
		Category:   "Matemática",
		CategoryID: "1",
		Difficulty: DifficultyHard,
		Type:       TypeEssay,
		CreatedAt:  "2024-01-12",
		UpdatedAt:  "2024-01-12",
	},
}
