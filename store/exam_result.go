package store

// ExamResult is one completed exam of a user.
type ExamResult struct {
	ID             int32
	UID            string
	UserID         string
	ExamTitle      string
	Score          float64
	TotalQuestions int32
	CorrectAnswers int32
	CompletedTs    int64
	TimeSpent      int32 // minutes
	Subject        string
}

// FindExamResult specifies the conditions for listing exam results.
// Results are ordered by completion time, newest first.
type FindExamResult struct {
	UserID *string
	Limit  *int
}
