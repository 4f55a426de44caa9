package catalog

var philosophyQuestions = []Entry{
	{
		ID:         "fil-01",
		Question:   "Qual filósofo formulou a frase \"Penso, logo existo\"?",
		Answer:     "René Descartes",
		Options:    []string{"Platão", "René Descartes", "Immanuel Kant", "Friedrich Nietzsche"},
		Category:   "Filosofia",
		CategoryID: "9",
		Difficulty: DifficultyEasy,
		Type:       TypeMultipleChoice,
		CreatedAt:  "2024-01-29",
		UpdatedAt:  "2024-01-29",
	},
	{
		ID:         "fil-02",
		Question:   "Explique o conceito de imperativo categórico em Kant.",
		Answer:     "Age apenas segundo a máxima que possas ao mesmo tempo querer que se torne lei universal.",
		Options:    []string{},
		Category:   "Filosofia",
		CategoryID: "9",
		Difficulty: DifficultyHard,
		Type:       TypeEssay,
		CreatedAt:  "2024-01-29",
		UpdatedAt:  "2024-01-29",
	},
}
