package store

import (
	"context"
	"time"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// Cache settings
	cacheConfig cache.Config

	// Caches
	kvCache             *cache.Cache // cache for key/value pairs
	userStatisticsCache *cache.Cache // cache for user statistics
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	// Default cache settings
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
		OnEviction:      nil,
	}

	store := &Store{
		driver:              driver,
		profile:             profile,
		cacheConfig:         cacheConfig,
		kvCache:             cache.New(cacheConfig),
		userStatisticsCache: cache.New(cacheConfig),
	}

	return store
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	// Stop all cache cleanup goroutines
	s.kvCache.Close()
	s.userStatisticsCache.Close()

	return s.driver.Close()
}

// GetKV returns the pair stored under find.Key, or nil when absent.
func (s *Store) GetKV(ctx context.Context, find *FindKV) (*KV, error) {
	if cached, ok := s.kvCache.Get(ctx, find.Key); ok {
		if kv, ok := cached.(*KV); ok {
			return kv, nil
		}
	}

	kv, err := s.driver.GetKV(ctx, find)
	if err != nil {
		return nil, err
	}
	if kv != nil {
		s.kvCache.Set(ctx, kv.Key, kv)
	}
	return kv, nil
}

func (s *Store) UpsertKV(ctx context.Context, upsert *UpsertKV) (*KV, error) {
	kv, err := s.driver.UpsertKV(ctx, upsert)
	if err != nil {
		return nil, err
	}
	s.kvCache.Set(ctx, kv.Key, kv)
	return kv, nil
}

// GetUserStatistics returns the statistics of a user, or nil when none exist.
func (s *Store) GetUserStatistics(ctx context.Context, find *FindUserStatistics) (*UserStatistics, error) {
	if cached, ok := s.userStatisticsCache.Get(ctx, find.UserID); ok {
		if stats, ok := cached.(*UserStatistics); ok {
			copied := *stats
			return &copied, nil
		}
	}

	stats, err := s.driver.GetUserStatistics(ctx, find)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		copied := *stats
		s.userStatisticsCache.Set(ctx, stats.UserID, &copied)
	}
	return stats, nil
}

func (s *Store) UpsertUserStatistics(ctx context.Context, upsert *UpsertUserStatistics) (*UserStatistics, error) {
	stats, err := s.driver.UpsertUserStatistics(ctx, upsert)
	if err != nil {
		s.userStatisticsCache.Delete(ctx, upsert.UserID)
		return nil, err
	}
	copied := *stats
	s.userStatisticsCache.Set(ctx, stats.UserID, &copied)
	return stats, nil
}

func (s *Store) CreateStudyContent(ctx context.Context, create *StudyContent) (*StudyContent, error) {
	return s.driver.CreateStudyContent(ctx, create)
}

func (s *Store) ListStudyContents(ctx context.Context, find *FindStudyContent) ([]*StudyContent, error) {
	return s.driver.ListStudyContents(ctx, find)
}

func (s *Store) CreateExamResult(ctx context.Context, create *ExamResult) (*ExamResult, error) {
	return s.driver.CreateExamResult(ctx, create)
}

func (s *Store) ListExamResults(ctx context.Context, find *FindExamResult) ([]*ExamResult, error) {
	return s.driver.ListExamResults(ctx, find)
}

func (s *Store) CreateUserTask(ctx context.Context, create *UserTask) (*UserTask, error) {
	return s.driver.CreateUserTask(ctx, create)
}

func (s *Store) ListUserTasks(ctx context.Context, find *FindUserTask) ([]*UserTask, error) {
	return s.driver.ListUserTasks(ctx, find)
}

func (s *Store) CreateAudioRecording(ctx context.Context, create *AudioRecording) (*AudioRecording, error) {
	return s.driver.CreateAudioRecording(ctx, create)
}

func (s *Store) ListAudioRecordings(ctx context.Context, find *FindAudioRecording) ([]*AudioRecording, error) {
	return s.driver.ListAudioRecordings(ctx, find)
}

// GetAudioRecording returns the recording with uid, or nil when absent.
func (s *Store) GetAudioRecording(ctx context.Context, uid string) (*AudioRecording, error) {
	list, err := s.driver.ListAudioRecordings(ctx, &FindAudioRecording{UID: &uid})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (s *Store) UpdateAudioRecording(ctx context.Context, update *UpdateAudioRecording) (*AudioRecording, error) {
	return s.driver.UpdateAudioRecording(ctx, update)
}

func (s *Store) DeleteAudioRecording(ctx context.Context, delete *DeleteAudioRecording) error {
	return s.driver.DeleteAudioRecording(ctx, delete)
}

func (s *Store) CreateAppNotification(ctx context.Context, create *AppNotification) (*AppNotification, error) {
	return s.driver.CreateAppNotification(ctx, create)
}

func (s *Store) ListAppNotifications(ctx context.Context, find *FindAppNotification) ([]*AppNotification, error) {
	return s.driver.ListAppNotifications(ctx, find)
}
