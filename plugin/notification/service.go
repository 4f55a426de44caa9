package notification

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/time/rate"
)

const (
	defaultRateInterval = 10 * time.Second
	defaultRateBurst    = 5

	smartRecommendationLimit = 3
)

// ProgressFunc reports the daily progress and goal of a user.
type ProgressFunc func(ctx context.Context, userID string) (progress, goal int, err error)

// Config configures a Service.
type Config struct {
	// RateInterval is the minimum spacing of notifications per user once the
	// burst is used up.
	RateInterval time.Duration
	RateBurst    int
	// Progress feeds SetupSmartNotifications. Nil reports 5 of 10.
	Progress ProgressFunc
}

// Service composes study notifications and hands them to a Sender. Every
// send is a no-op unless the sender is supported and granted; delivery
// failures are logged and never returned.
type Service struct {
	sender    Sender
	questions QuestionProvider
	progress  ProgressFunc
	logger    *slog.Logger
	now       func() time.Time

	limit    rate.Limit
	burst    int
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewService creates a notification service.
func NewService(sender Sender, questions QuestionProvider, config Config) *Service {
	if config.RateInterval <= 0 {
		config.RateInterval = defaultRateInterval
	}
	if config.RateBurst <= 0 {
		config.RateBurst = defaultRateBurst
	}
	if config.Progress == nil {
		config.Progress = func(context.Context, string) (int, int, error) { return 5, 10, nil }
	}
	return &Service{
		sender:    sender,
		questions: questions,
		progress:  config.Progress,
		logger:    slog.Default(),
		now:       time.Now,
		limit:     rate.Every(config.RateInterval),
		burst:     config.RateBurst,
		limiters:  make(map[string]*rate.Limiter),
	}
}

// Permission returns the current permission of the sender.
func (s *Service) Permission(ctx context.Context) Permission {
	if !s.sender.Supported() {
		return PermissionDenied
	}
	return s.sender.Permission(ctx)
}

// RequestPermission asks for permission and reports whether it is granted.
func (s *Service) RequestPermission(ctx context.Context) bool {
	if !s.sender.Supported() {
		s.logger.Warn("notifications are not supported", "sender", s.sender.Name())
		return false
	}

	switch s.sender.Permission(ctx) {
	case PermissionGranted:
		return true
	case PermissionDenied:
		s.logger.Warn("notification permission was denied", "sender", s.sender.Name())
		return false
	}

	permission, err := s.sender.RequestPermission(ctx)
	if err != nil {
		s.logger.Error("failed to request notification permission", "error", err)
		return false
	}
	return permission == PermissionGranted
}

func (s *Service) enabled(ctx context.Context) bool {
	return s.sender.Supported() && s.sender.Permission(ctx) == PermissionGranted
}

func (s *Service) allow(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[userID]
	if !ok {
		l = rate.NewLimiter(s.limit, s.burst)
		s.limiters[userID] = l
	}
	return l.AllowN(s.now(), 1)
}

// send reports whether n was handed to the sender successfully.
func (s *Service) send(ctx context.Context, userID string, n *Notification) bool {
	if !s.enabled(ctx) {
		return false
	}
	if !s.allow(userID) {
		s.logger.Warn("notification dropped by rate limit", "user_id", userID, "tag", n.Tag)
		return false
	}

	n.ID = shortuuid.New()
	n.CreatedAt = s.now()
	if err := s.sender.Send(ctx, userID, n); err != nil {
		s.logger.Error("failed to send notification", "user_id", userID, "tag", n.Tag, "error", err)
		return false
	}
	return true
}

// SendStudyReminder announces the questions to review.
func (s *Service) SendStudyReminder(ctx context.Context, userID string, questions []StudyQuestion) bool {
	ids := make([]string, 0, len(questions))
	for _, q := range questions {
		ids = append(ids, q.ID)
	}
	return s.send(ctx, userID, &Notification{
		Title:              "📚 Hora de Estudar!",
		Body:               fmt.Sprintf("Você tem %d questões para revisar hoje", len(questions)),
		Icon:               "/icons/study-icon.png",
		Badge:              "/icons/badge-icon.png",
		Tag:                TagStudyReminder,
		RequireInteraction: true,
		Data: map[string]any{
			"type":        TagStudyReminder,
			"questionIds": ids,
			"url":         "/study",
		},
		Actions: []Action{
			{Action: "start_study", Title: "Começar Estudo", Icon: "/icons/play-icon.png"},
			{Action: "snooze", Title: "Lembrar mais tarde", Icon: "/icons/snooze-icon.png"},
		},
	})
}

// SendDailyStudyGoal reports progress towards the daily goal. A non-positive
// goal counts as reached.
func (s *Service) SendDailyStudyGoal(ctx context.Context, userID string, progress, goal int) bool {
	percentage := 100
	if goal > 0 {
		percentage = int(math.Round(float64(progress) / float64(goal) * 100))
	}

	n := &Notification{
		Title: "📊 Progresso do Dia",
		Body:  fmt.Sprintf("Você completou %d de %d questões (%d%%)", progress, goal, percentage),
		Icon:  "/icons/progress-icon.png",
		Tag:   TagDailyProgress,
		Data: map[string]any{
			"type":       TagDailyProgress,
			"progress":   progress,
			"goal":       goal,
			"percentage": percentage,
			"url":        "/dashboard",
		},
	}
	if progress >= goal {
		n.Title = "🎉 Meta Diária Atingida!"
		n.Body = fmt.Sprintf("Parabéns! Você completou %d questões hoje!", progress)
		n.Icon = "/icons/celebration-icon.png"
	}
	return s.send(ctx, userID, n)
}

// SendAchievementUnlocked celebrates an achievement.
func (s *Service) SendAchievementUnlocked(ctx context.Context, userID, achievement string) bool {
	return s.send(ctx, userID, &Notification{
		Title: "🏆 Conquista Desbloqueada!",
		Body:  achievement,
		Icon:  "/icons/achievement-icon.png",
		Tag:   TagAchievement,
		Data: map[string]any{
			"type":        TagAchievement,
			"achievement": achievement,
			"url":         "/achievements",
		},
	})
}

// SendQuestionRecommendation suggests one question.
func (s *Service) SendQuestionRecommendation(ctx context.Context, userID string, q StudyQuestion) bool {
	return s.send(ctx, userID, &Notification{
		Title: "💡 Questão Recomendada",
		Body:  fmt.Sprintf("Nova questão de %s para você praticar", q.Category),
		Icon:  "/icons/question-icon.png",
		Tag:   TagQuestionRecommendation,
		Data: map[string]any{
			"type":       TagQuestionRecommendation,
			"questionId": q.ID,
			"url":        "/question/" + q.ID,
		},
		Actions: []Action{
			{Action: "view_question", Title: "Ver Questão", Icon: "/icons/eye-icon.png"},
			{Action: "dismiss", Title: "Dispensar", Icon: "/icons/close-icon.png"},
		},
	})
}

// TestNotification sends a fixed test message.
func (s *Service) TestNotification(ctx context.Context, userID string) bool {
	if !s.enabled(ctx) {
		s.logger.Warn("notifications are not available", "user_id", userID)
		return false
	}
	return s.send(ctx, userID, &Notification{
		Title: "🔔 Teste de Notificação",
		Body:  "Esta é uma notificação de teste do Smart Study",
		Icon:  "/icons/test-icon.png",
		Tag:   TagTest,
		Data:  map[string]any{"type": TagTest},
	})
}

// SetupSmartNotifications requests permission, then sends the daily progress
// and a recommendation for the first question due for review.
func (s *Service) SetupSmartNotifications(ctx context.Context, userID string) {
	if !s.RequestPermission(ctx) {
		return
	}

	progress, goal, err := s.progress(ctx, userID)
	if err != nil {
		s.logger.Warn("failed to get study progress", "user_id", userID, "error", err)
	} else if goal > 0 {
		s.SendDailyStudyGoal(ctx, userID, progress, goal)
	}

	if s.questions == nil {
		return
	}
	if recommended := s.questions.GetQuestionsForPeriodicStudy(userID, smartRecommendationLimit); len(recommended) > 0 {
		s.SendQuestionRecommendation(ctx, userID, recommended[0])
	}
}
