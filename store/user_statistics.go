package store

// UserStatistics holds the aggregated study figures of one user.
type UserStatistics struct {
	UserID            string
	QuestionsAnswered int32
	CorrectAnswers    int32
	StudyTimeTotal    int32 // minutes
	CurrentStreak     int32 // consecutive study days
	TotalExams        int32
	AverageScore      float64 // percent
	LastStudyTs       *int64
	WeeklyGoal        int32 // minutes per week
	WeeklyProgress    int32 // minutes this week
	CreatedTs         int64
	UpdatedTs         int64
}

// FindUserStatistics specifies the conditions for finding user statistics.
type FindUserStatistics struct {
	UserID string
}

// UpsertUserStatistics replaces the statistics of a user.
type UpsertUserStatistics struct {
	UserID            string
	QuestionsAnswered int32
	CorrectAnswers    int32
	StudyTimeTotal    int32
	CurrentStreak     int32
	TotalExams        int32
	AverageScore      float64
	LastStudyTs       *int64
	WeeklyGoal        int32
	WeeklyProgress    int32
}
