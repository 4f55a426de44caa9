package store

// TaskPriority ranks a user task.
type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Rank orders priorities, high first.
func (p TaskPriority) Rank() int {
	switch p {
	case TaskPriorityHigh:
		return 3
	case TaskPriorityLow:
		return 1
	default:
		return 2
	}
}

// UserTask is a to-do item due on a given day.
type UserTask struct {
	ID          int32
	UID         string
	UserID      string
	Title       string
	IsCompleted bool
	Priority    TaskPriority
	DueTs       int64
	CreatedTs   int64
}

// FindUserTask specifies the conditions for listing user tasks.
// DueAfter is inclusive, DueBefore exclusive. Results are ordered by
// priority, high first.
type FindUserTask struct {
	UserID    *string
	DueAfter  *int64
	DueBefore *int64
}
