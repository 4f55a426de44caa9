package classifier

// DefaultRecommendations returns the two study hints attached to each subject.
func DefaultRecommendations() map[string][]string {
	return map[string][]string{
		"Matemática": {"Revisar fórmulas fundamentais", "Praticar resolução de problemas"},
		"Física":     {"Estudar leis e princípios físicos", "Praticar cálculos com unidades"},
		"Química":    {"Revisar tabela periódica", "Estudar reações químicas"},
		"Biologia":   {"Revisar conceitos de biologia celular", "Estudar ecologia e evolução"},
		"História":   {"Revisar cronologia histórica", "Estudar contextos sociais e políticos"},
		"Geografia":  {"Estudar mapas e localizações", "Revisar conceitos geográficos"},
		"Português":  {"Revisar gramática e ortografia", "Praticar interpretação de textos"},
		"Literatura": {"Revisar movimentos literários", "Estudar obras e autores"},
		"Filosofia":  {"Revisar conceitos filosóficos", "Estudar filósofos e suas teorias"},
		"Sociologia": {"Revisar teorias sociológicas", "Estudar conceitos de sociedade"},
		"Inglês":     {"Praticar vocabulário", "Revisar gramática inglesa"},
	}
}

var resources = map[string][]string{
	"Matemática": {"Livros de matemática", "Calculadora científica", "Exercícios práticos"},
	"Física":     {"Fórmulas de física", "Simuladores físicos", "Experimentos virtuais"},
	"Química":    {"Tabela periódica", "Simuladores de reações", "Laboratório virtual"},
	"Biologia":   {"Atlas de anatomia", "Microscópio virtual", "Documentários científicos"},
	"História":   {"Mapas históricos", "Documentários", "Cronologias"},
	"Geografia":  {"Mapas mundiais", "Atlas geográfico", "Simuladores climáticos"},
	"Português":  {"Gramática", "Dicionários", "Textos literários"},
	"Literatura": {"Obras literárias", "Análises críticas", "Biografias de autores"},
	"Filosofia":  {"Textos filosóficos", "História da filosofia", "Debates filosóficos"},
	"Sociologia": {"Teorias sociológicas", "Pesquisas sociais", "Análises de sociedade"},
	"Inglês":     {"Dicionários bilíngues", "Filmes em inglês", "Exercícios de conversação"},
}

// ResourcesFor returns study resources for a subject name.
func ResourcesFor(category string) []string {
	if list, ok := resources[category]; ok {
		return append([]string(nil), list...)
	}
	return []string{"Material de estudo geral"}
}
