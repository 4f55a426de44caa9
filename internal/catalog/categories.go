package catalog

var categories = []Category{
	{ID: "1", Name: "Matemática", Description: "Álgebra, geometria, funções e matemática financeira"},
	{ID: "2", Name: "Física", Description: "Mecânica, termologia, óptica, ondas e eletricidade"},
	{ID: "3", Name: "Química", Description: "Química geral, físico-química e química orgânica"},
	{ID: "4", Name: "Biologia", Description: "Citologia, genética, ecologia e fisiologia"},
	{ID: "5", Name: "História", Description: "História geral e história do Brasil"},
	{ID: "6", Name: "Geografia", Description: "Geografia física, humana e geopolítica"},
	{ID: "7", Name: "Português", Description: "Gramática, interpretação de texto e redação"},
	{ID: "8", Name: "Literatura", Description: "Escolas literárias e autores brasileiros e portugueses"},
	{ID: "9", Name: "Filosofia", Description: "História da filosofia, ética e política"},
	{ID: "10", Name: "Sociologia", Description: "Teoria sociológica, cultura e sociedade"},
	{ID: "11", Name: "Inglês", Description: "Vocabulário, gramática e leitura em língua inglesa"},
}
