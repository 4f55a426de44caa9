package dashboard

import (
	"time"

	"github.com/hrygo/smartstudy/store"
)

const day = 24 * time.Hour

// initialStatistics are given to a user without statistics so that the
// dashboard is never empty.
func initialStatistics(now time.Time) *Statistics {
	yesterday := now.Add(-day)
	return &Statistics{
		QuestionsAnswered: 45,
		CorrectAnswers:    37,
		StudyTimeTotal:    420,
		CurrentStreak:     5,
		TotalExams:        3,
		AverageScore:      85,
		LastStudyDate:     &yesterday,
		WeeklyGoal:        DefaultWeeklyGoal,
		WeeklyProgress:    180,
	}
}

func minutes(n int) *int { return &n }

func ago(now time.Time, d time.Duration) *time.Time {
	t := now.Add(-d)
	return &t
}

// SampleContent is shown when a user has no study content yet.
func SampleContent(now time.Time) []Content {
	return []Content{
		{
			ID:           "sample1",
			Title:        "Introdução à Matemática Financeira",
			Type:         store.StudyContentVideo,
			Duration:     minutes(45),
			Category:     "Matemática",
			IsCompleted:  true,
			LastAccessed: ago(now, 2*day),
		},
		{
			ID:           "sample2",
			Title:        "Fundamentos de Programação",
			Type:         store.StudyContentText,
			Duration:     minutes(30),
			Category:     "Tecnologia",
			LastAccessed: ago(now, day),
		},
		{
			ID:           "sample3",
			Title:        "História do Brasil Colonial",
			Type:         store.StudyContentPodcast,
			Duration:     minutes(60),
			Category:     "História",
			IsCompleted:  true,
			LastAccessed: ago(now, 3*day),
		},
		{
			ID:           "sample4",
			Title:        "Física Quântica Básica",
			Type:         store.StudyContentAudio,
			Duration:     minutes(25),
			Category:     "Física",
			LastAccessed: ago(now, 12*time.Hour),
		},
	}
}

// SampleExams is shown when a user has no exam results yet.
func SampleExams(now time.Time) []ExamResult {
	return []ExamResult{
		{
			ID:             "exam1",
			ExamTitle:      "Simulado ENEM - Matemática",
			Score:          85,
			TotalQuestions: 20,
			CorrectAnswers: 17,
			CompletedAt:    now.Add(-day),
			TimeSpent:      45,
			Subject:        "Matemática",
		},
		{
			ID:             "exam2",
			ExamTitle:      "Prova de História Geral",
			Score:          78,
			TotalQuestions: 15,
			CorrectAnswers: 12,
			CompletedAt:    now.Add(-3 * day),
			TimeSpent:      30,
			Subject:        "História",
		},
		{
			ID:             "exam3",
			ExamTitle:      "Teste de Português",
			Score:          92,
			TotalQuestions: 25,
			CorrectAnswers: 23,
			CompletedAt:    now.Add(-5 * day),
			TimeSpent:      60,
			Subject:        "Português",
		},
	}
}

// SampleTasks is shown when a user has no task due today.
func SampleTasks() []Task {
	return []Task{
		{ID: "task1", Title: "Revisar fórmulas de matemática", IsCompleted: true, Priority: store.TaskPriorityHigh},
		{ID: "task2", Title: "Ler capítulo 3 de história", Priority: store.TaskPriorityMedium},
		{ID: "task3", Title: "Fazer exercícios de física", Priority: store.TaskPriorityHigh},
		{ID: "task4", Title: "Gravar resumo de português", Priority: store.TaskPriorityLow},
	}
}

// QuickAccessItems returns the fixed shortcut tiles.
func QuickAccessItems() []QuickAccessItem {
	return []QuickAccessItem{
		{ID: "questions", Title: "Banco de Questões", Subtitle: "Pratique com milhares de questões", Icon: "quiz", Color: "#4F46E5", Route: "/questions"},
		{ID: "audio-recording", Title: "Gravação de Áudios", Subtitle: "Grave resumos e anotações", Icon: "mic", Color: "#DC2626", Route: "/audio-recording"},
		{ID: "study-plan", Title: "Roteiro de Estudos", Subtitle: "Organize seu cronograma", Icon: "calendar-today", Color: "#059669", Route: "/study-plan"},
		{ID: "mock-exams", Title: "Exames Simulados", Subtitle: "Teste seus conhecimentos", Icon: "assignment", Color: "#7C3AED", Route: "/mock-exams"},
		{ID: "content", Title: "Conteúdos", Subtitle: "Vídeos, textos e podcasts", Icon: "play-circle-filled", Color: "#EA580C", Route: "/content"},
		{ID: "progress", Title: "Progresso", Subtitle: "Acompanhe sua evolução", Icon: "trending-up", Color: "#0891B2", Route: "/progress"},
	}
}
