// Package dashboard assembles the study dashboard of a user: statistics,
// recent content, recent exams and today's tasks. Missing or unreadable
// content, exams and tasks fall back to fixed sample data so that a new
// user always sees a populated dashboard.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hrygo/smartstudy/server/timezone"
	"github.com/hrygo/smartstudy/store"
	"github.com/hrygo/smartstudy/store/cache"
)

const (
	recentContentLimit = 5
	recentExamsLimit   = 3

	cacheKeyPrefix = "dashboard:"
)

var (
	// ErrStatisticsNotFound is returned when patching statistics that do not exist.
	ErrStatisticsNotFound = errors.New("user statistics not found")
	// ErrInvalidMinutes is returned when logging a negative study time.
	ErrInvalidMinutes = errors.New("study minutes must not be negative")
)

// DocumentStore is the persistence needed by the dashboard. *store.Store implements it.
type DocumentStore interface {
	GetUserStatistics(ctx context.Context, find *store.FindUserStatistics) (*store.UserStatistics, error)
	UpsertUserStatistics(ctx context.Context, upsert *store.UpsertUserStatistics) (*store.UserStatistics, error)
	ListStudyContents(ctx context.Context, find *store.FindStudyContent) ([]*store.StudyContent, error)
	ListExamResults(ctx context.Context, find *store.FindExamResult) ([]*store.ExamResult, error)
	ListUserTasks(ctx context.Context, find *store.FindUserTask) ([]*store.UserTask, error)
}

// Service serves dashboard data.
type Service struct {
	store  DocumentStore
	cache  *cache.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a dashboard service. Assembled dashboards are cached per
// user for cacheTTL; a non-positive TTL disables the cache.
func NewService(documents DocumentStore, cacheTTL time.Duration) *Service {
	s := &Service{
		store:  documents,
		logger: slog.Default(),
		now:    time.Now,
	}
	if cacheTTL > 0 {
		s.cache = cache.New(cache.Config{
			DefaultTTL:      cacheTTL,
			CleanupInterval: cacheTTL,
			MaxItems:        1000,
		})
	}
	return s
}

// SetLocation sets the timezone of the study day. Call it before serving.
func (s *Service) SetLocation(loc *time.Location) {
	s.now = timezone.Clock(s.now, loc)
}

// Close releases the dashboard cache.
func (s *Service) Close() error {
	if s.cache != nil {
		return s.cache.Close()
	}
	return nil
}

// GetUserStatistics returns the statistics of a user. A user without
// statistics gets the initial demo figures, which are persisted.
func (s *Service) GetUserStatistics(ctx context.Context, userID string) (*Statistics, error) {
	stored, err := s.store.GetUserStatistics(ctx, &store.FindUserStatistics{UserID: userID})
	if err != nil {
		s.logger.Error("failed to get user statistics", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}
	if stored != nil {
		return statisticsFromStore(stored), nil
	}

	initial := initialStatistics(s.now())
	if _, err := s.store.UpsertUserStatistics(ctx, initial.toUpsert(userID)); err != nil {
		s.logger.Error("failed to create initial user statistics", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to create user statistics: %w", err)
	}
	s.logger.Info("created initial user statistics", "user_id", userID)
	return initial, nil
}

// GetRecentContent returns the five most recently accessed contents.
func (s *Service) GetRecentContent(ctx context.Context, userID string) []Content {
	limit := recentContentLimit
	list, err := s.store.ListStudyContents(ctx, &store.FindStudyContent{UserID: &userID, Limit: &limit})
	if err != nil {
		s.logger.Warn("failed to list recent content, using samples", "user_id", userID, "error", err)
		return SampleContent(s.now())
	}
	if len(list) == 0 {
		return SampleContent(s.now())
	}

	contents := make([]Content, 0, len(list))
	for _, c := range list {
		contents = append(contents, contentFromStore(c))
	}
	return contents
}

// GetRecentExams returns the three most recently completed exams.
func (s *Service) GetRecentExams(ctx context.Context, userID string) []ExamResult {
	limit := recentExamsLimit
	list, err := s.store.ListExamResults(ctx, &store.FindExamResult{UserID: &userID, Limit: &limit})
	if err != nil {
		s.logger.Warn("failed to list recent exams, using samples", "user_id", userID, "error", err)
		return SampleExams(s.now())
	}
	if len(list) == 0 {
		return SampleExams(s.now())
	}

	exams := make([]ExamResult, 0, len(list))
	for _, e := range list {
		exams = append(exams, examFromStore(e))
	}
	return exams
}

// GetTodaysTasks returns the tasks due within the current local day, highest
// priority first.
func (s *Service) GetTodaysTasks(ctx context.Context, userID string) []Task {
	now := s.now()
	startTs, endTs := timezone.DayRange(now, now.Location())

	list, err := s.store.ListUserTasks(ctx, &store.FindUserTask{UserID: &userID, DueAfter: &startTs, DueBefore: &endTs})
	if err != nil {
		s.logger.Warn("failed to list today's tasks, using samples", "user_id", userID, "error", err)
		return SampleTasks()
	}
	if len(list) == 0 {
		return SampleTasks()
	}

	tasks := make([]Task, 0, len(list))
	for _, t := range list {
		tasks = append(tasks, taskFromStore(t))
	}
	return tasks
}

// GetDashboardData fetches the four dashboard sections concurrently. Only a
// statistics failure fails the whole call.
func (s *Service) GetDashboardData(ctx context.Context, userID string) (*Data, error) {
	key := cacheKeyPrefix + userID
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, key); ok {
			if data, ok := cached.(*Data); ok {
				return data.clone(), nil
			}
		}
	}

	data := &Data{QuickAccess: QuickAccessItems()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.GetUserStatistics(gctx, userID)
		if err != nil {
			return err
		}
		data.Statistics = stats
		return nil
	})
	g.Go(func() error {
		data.RecentContent = s.GetRecentContent(gctx, userID)
		return nil
	})
	g.Go(func() error {
		data.RecentExams = s.GetRecentExams(gctx, userID)
		return nil
	})
	g.Go(func() error {
		data.TodaysTasks = s.GetTodaysTasks(gctx, userID)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to get dashboard data: %w", err)
	}

	if s.cache != nil {
		s.cache.Set(ctx, key, data.clone())
	}
	return data, nil
}

// UpdateUserStatistics applies a partial update to existing statistics.
func (s *Service) UpdateUserStatistics(ctx context.Context, userID string, patch *StatisticsPatch) (*Statistics, error) {
	stored, err := s.store.GetUserStatistics(ctx, &store.FindUserStatistics{UserID: userID})
	if err != nil {
		return nil, fmt.Errorf("failed to get user statistics: %w", err)
	}
	if stored == nil {
		return nil, fmt.Errorf("%w: %s", ErrStatisticsNotFound, userID)
	}

	stats := statisticsFromStore(stored)
	patch.apply(stats)
	return s.save(ctx, userID, stats)
}

// LogStudyTime adds minutes to the total and weekly study time and marks now
// as the last study date.
func (s *Service) LogStudyTime(ctx context.Context, userID string, minutes int) (*Statistics, error) {
	if minutes < 0 {
		return nil, ErrInvalidMinutes
	}

	stats, err := s.GetUserStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	stats.StudyTimeTotal += minutes
	stats.WeeklyProgress += minutes
	stats.LastStudyDate = &now
	return s.save(ctx, userID, stats)
}

func (s *Service) save(ctx context.Context, userID string, stats *Statistics) (*Statistics, error) {
	saved, err := s.store.UpsertUserStatistics(ctx, stats.toUpsert(userID))
	if err != nil {
		s.logger.Error("failed to update user statistics", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to update user statistics: %w", err)
	}
	if s.cache != nil {
		s.cache.Delete(ctx, cacheKeyPrefix+userID)
	}
	return statisticsFromStore(saved), nil
}
