package catalog

var physicsQuestions = []Entry{
	{
		ID:         "fis-01",
		Question:   "Um carro percorre 120 km em 2 horas. Qual a sua velocidade média?",
		Answer:     "60 km/h",
		Options:    []string{"40 km/h", "60 km/h", "80 km/h", "240 km/h"},
		Category:   "Física",
		CategoryID: "2",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-15",
		UpdatedAt:  "2024-01-15",
	},
	{
		ID:         "fis-02",
		Question:   "(Vestibular) Aplicar a segunda lei de Newton: qual a aceleração de um corpo de 5 kg sob força resultante de 20 N?",
		Answer:     "4 m/s²",
		Options:    []string{"2 m/s²", "4 m/s²", "25 m/s²", "100 m/s²"},
		Category:   "Física",
		CategoryID: "2",
		Difficulty: DifficultyMedium,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-15",
		UpdatedAt:  "2024-01-15",
	},
	{
		ID:         "fis-03",
		Question:   "Interpretar o gráfico posição × tempo de um movimento uniformemente variado: que curva ele descreve?",
		Answer:     "Uma parábola",
		Options:    []string{"Uma reta", "Uma parábola", "Uma hipérbole", "Uma senoide"},
		Category:   "Física",
		CategoryID: "2",
		Difficulty: DifficultyHard,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-16",
		UpdatedAt:  "2024-01-16",
	},
}
