package dashboard

import (
	"slices"
	"time"

	"github.com/hrygo/smartstudy/store"
)

// DefaultWeeklyGoal is the weekly study goal in minutes when none is stored.
const DefaultWeeklyGoal = 300

// Statistics are the aggregated study figures shown on the dashboard.
type Statistics struct {
	QuestionsAnswered int        `json:"questionsAnswered"`
	CorrectAnswers    int        `json:"correctAnswers"`
	StudyTimeTotal    int        `json:"studyTimeTotal"` // minutes
	CurrentStreak     int        `json:"currentStreak"`  // consecutive days
	TotalExams        int        `json:"totalExams"`
	AverageScore      float64    `json:"averageScore"` // percent
	LastStudyDate     *time.Time `json:"lastStudyDate"`
	WeeklyGoal        int        `json:"weeklyGoal"`     // minutes per week
	WeeklyProgress    int        `json:"weeklyProgress"` // minutes this week
}

// StatisticsPatch is a partial update of Statistics. Nil fields are kept.
type StatisticsPatch struct {
	QuestionsAnswered *int       `json:"questionsAnswered,omitempty"`
	CorrectAnswers    *int       `json:"correctAnswers,omitempty"`
	StudyTimeTotal    *int       `json:"studyTimeTotal,omitempty"`
	CurrentStreak     *int       `json:"currentStreak,omitempty"`
	TotalExams        *int       `json:"totalExams,omitempty"`
	AverageScore      *float64   `json:"averageScore,omitempty"`
	LastStudyDate     *time.Time `json:"lastStudyDate,omitempty"`
	WeeklyGoal        *int       `json:"weeklyGoal,omitempty"`
	WeeklyProgress    *int       `json:"weeklyProgress,omitempty"`
}

// QuickAccessItem is a shortcut tile.
type QuickAccessItem struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	Route      string `json:"route"`
	BadgeCount *int   `json:"badgeCount,omitempty"`
}

// Content is a recently accessed study material.
type Content struct {
	ID           string                 `json:"id"`
	Title        string                 `json:"title"`
	Type         store.StudyContentType `json:"type"`
	Duration     *int                   `json:"duration,omitempty"` // minutes
	Category     string                 `json:"category"`
	Thumbnail    string                 `json:"thumbnail,omitempty"`
	IsCompleted  bool                   `json:"isCompleted"`
	LastAccessed *time.Time             `json:"lastAccessed,omitempty"`
}

// ExamResult is a recently completed exam.
type ExamResult struct {
	ID             string    `json:"id"`
	ExamTitle      string    `json:"examTitle"`
	Score          float64   `json:"score"`
	TotalQuestions int       `json:"totalQuestions"`
	CorrectAnswers int       `json:"correctAnswers"`
	CompletedAt    time.Time `json:"completedAt"`
	TimeSpent      int       `json:"timeSpent"` // minutes
	Subject        string    `json:"subject"`
}

// Task is a to-do item due today.
type Task struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	IsCompleted bool               `json:"isCompleted"`
	Priority    store.TaskPriority `json:"priority"`
}

// Data is the full dashboard of a user.
type Data struct {
	Statistics    *Statistics       `json:"statistics"`
	QuickAccess   []QuickAccessItem `json:"quickAccess"`
	RecentContent []Content         `json:"recentContent"`
	RecentExams   []ExamResult      `json:"recentExams"`
	TodaysTasks   []Task            `json:"todaysTasks"`
}

// clone returns a deep copy of d.
func (d *Data) clone() *Data {
	c := &Data{
		QuickAccess:   slices.Clone(d.QuickAccess),
		RecentContent: slices.Clone(d.RecentContent),
		RecentExams:   slices.Clone(d.RecentExams),
		TodaysTasks:   slices.Clone(d.TodaysTasks),
	}
	if d.Statistics != nil {
		stats := *d.Statistics
		stats.LastStudyDate = clonePtr(d.Statistics.LastStudyDate)
		c.Statistics = &stats
	}
	for i := range c.QuickAccess {
		c.QuickAccess[i].BadgeCount = clonePtr(c.QuickAccess[i].BadgeCount)
	}
	for i := range c.RecentContent {
		c.RecentContent[i].Duration = clonePtr(c.RecentContent[i].Duration)
		c.RecentContent[i].LastAccessed = clonePtr(c.RecentContent[i].LastAccessed)
	}
	return c
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func statisticsFromStore(s *store.UserStatistics) *Statistics {
	stats := &Statistics{
		QuestionsAnswered: int(s.QuestionsAnswered),
		CorrectAnswers:    int(s.CorrectAnswers),
		StudyTimeTotal:    int(s.StudyTimeTotal),
		CurrentStreak:     int(s.CurrentStreak),
		TotalExams:        int(s.TotalExams),
		AverageScore:      s.AverageScore,
		WeeklyGoal:        int(s.WeeklyGoal),
		WeeklyProgress:    int(s.WeeklyProgress),
	}
	if stats.WeeklyGoal == 0 {
		stats.WeeklyGoal = DefaultWeeklyGoal
	}
	if s.LastStudyTs != nil {
		t := time.Unix(*s.LastStudyTs, 0)
		stats.LastStudyDate = &t
	}
	return stats
}

func (s *Statistics) toUpsert(userID string) *store.UpsertUserStatistics {
	upsert := &store.UpsertUserStatistics{
		UserID:            userID,
		QuestionsAnswered: int32(s.QuestionsAnswered),
		CorrectAnswers:    int32(s.CorrectAnswers),
		StudyTimeTotal:    int32(s.StudyTimeTotal),
		CurrentStreak:     int32(s.CurrentStreak),
		TotalExams:        int32(s.TotalExams),
		AverageScore:      s.AverageScore,
		WeeklyGoal:        int32(s.WeeklyGoal),
		WeeklyProgress:    int32(s.WeeklyProgress),
	}
	if s.LastStudyDate != nil {
		ts := s.LastStudyDate.Unix()
		upsert.LastStudyTs = &ts
	}
	return upsert
}

// apply copies the present fields of p onto s.
func (p *StatisticsPatch) apply(s *Statistics) {
	if p.QuestionsAnswered != nil {
		s.QuestionsAnswered = *p.QuestionsAnswered
	}
	if p.CorrectAnswers != nil {
		s.CorrectAnswers = *p.CorrectAnswers
	}
	if p.StudyTimeTotal != nil {
		s.StudyTimeTotal = *p.StudyTimeTotal
	}
	if p.CurrentStreak != nil {
		s.CurrentStreak = *p.CurrentStreak
	}
	if p.TotalExams != nil {
		s.TotalExams = *p.TotalExams
	}
	if p.AverageScore != nil {
		s.AverageScore = *p.AverageScore
	}
	if p.LastStudyDate != nil {
		t := *p.LastStudyDate
		s.LastStudyDate = &t
	}
	if p.WeeklyGoal != nil {
		s.WeeklyGoal = *p.WeeklyGoal
	}
	if p.WeeklyProgress != nil {
		s.WeeklyProgress = *p.WeeklyProgress
	}
}

func contentFromStore(c *store.StudyContent) Content {
	content := Content{
		ID:          c.UID,
		Title:       c.Title,
		Type:        c.Type,
		Category:    c.Category,
		Thumbnail:   c.Thumbnail,
		IsCompleted: c.IsCompleted,
	}
	if c.Duration != nil {
		d := int(*c.Duration)
		content.Duration = &d
	}
	if c.LastAccessedTs != nil {
		t := time.Unix(*c.LastAccessedTs, 0)
		content.LastAccessed = &t
	}
	return content
}

func examFromStore(e *store.ExamResult) ExamResult {
	return ExamResult{
		ID:             e.UID,
		ExamTitle:      e.ExamTitle,
		Score:          e.Score,
		TotalQuestions: int(e.TotalQuestions),
		CorrectAnswers: int(e.CorrectAnswers),
		CompletedAt:    time.Unix(e.CompletedTs, 0),
		TimeSpent:      int(e.TimeSpent),
		Subject:        e.Subject,
	}
}

func taskFromStore(t *store.UserTask) Task {
	priority := t.Priority
	if priority == "" {
		priority = store.TaskPriorityMedium
	}
	return Task{ID: t.UID, Title: t.Title, IsCompleted: t.IsCompleted, Priority: priority}
}
