package catalog

var geographyQuestions = []Entry{
	{
		ID:         "geo-01",
		Question:   "Qual é o maior bioma brasileiro em extensão territorial?",
		Answer:     "Amazônia",
		Options:    []string{"Cerrado", "Amazônia", "Caatinga", "Mata Atlântica"},
		Category:   "Geografia",
		CategoryID: "6",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-24",
		UpdatedAt:  "2024-01-24",
	},
	{
		ID:         "geo-02",
		Question:   "Interpretar um climograma com chuvas concentradas no verão e inverno seco: a que clima ele corresponde?",
		Answer:     "Tropical",
		Options:    []string{"Equatorial", "Tropical", "Semiárido", "Subtropical"},
		Category:   "Geografia",
		CategoryID: "6",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-24",
		UpdatedAt:  "2024-01-24",
	},
	{
		ID:         "geo-03",
		Question:   "(ENEM) Explique como a urbanização acelerada contribui para a formação de ilhas de calor.",
		Answer:     "A impermeabilização do solo, a concentração de edifícios e a redução da vegetação elevam a temperatura nas áreas centrais.",
		Options:    []string{},
		Category:   "Geografia",
		CategoryID: "6",
		Difficulty: DifficultyHard,
		Type:       TypeEssay,
		CreatedAt:  "2024-01-25",
		UpdatedAt:  "2024-01-25",
	},
}
