package store

import (
	"context"
	"database/sql"
)

// Driver is an interface for store driver.
// It contains all methods that store database driver should implement.
type Driver interface {
	GetDB() *sql.DB
	Close() error

	IsInitialized(ctx context.Context) (bool, error)

	// KV model related methods.
	GetKV(ctx context.Context, find *FindKV) (*KV, error)
	UpsertKV(ctx context.Context, upsert *UpsertKV) (*KV, error)

	// UserStatistics model related methods.
	GetUserStatistics(ctx context.Context, find *FindUserStatistics) (*UserStatistics, error)
	UpsertUserStatistics(ctx context.Context, upsert *UpsertUserStatistics) (*UserStatistics, error)

	// StudyContent model related methods.
	CreateStudyContent(ctx context.Context, create *StudyContent) (*StudyContent, error)
	ListStudyContents(ctx context.Context, find *FindStudyContent) ([]*StudyContent, error)

	// ExamResult model related methods.
	CreateExamResult(ctx context.Context, create *ExamResult) (*ExamResult, error)
	ListExamResults(ctx context.Context, find *FindExamResult) ([]*ExamResult, error)

	// UserTask model related methods.
	CreateUserTask(ctx context.Context, create *UserTask) (*UserTask, error)
	ListUserTasks(ctx context.Context, find *FindUserTask) ([]*UserTask, error)

	// AudioRecording model related methods.
	CreateAudioRecording(ctx context.Context, create *AudioRecording) (*AudioRecording, error)
	ListAudioRecordings(ctx context.Context, find *FindAudioRecording) ([]*AudioRecording, error)
	UpdateAudioRecording(ctx context.Context, update *UpdateAudioRecording) (*AudioRecording, error)
	DeleteAudioRecording(ctx context.Context, delete *DeleteAudioRecording) error

	// AppNotification model related methods.
	CreateAppNotification(ctx context.Context, create *AppNotification) (*AppNotification, error)
	ListAppNotifications(ctx context.Context, find *FindAppNotification) ([]*AppNotification, error)
}
