package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sent struct {
	userID       string
	notification *Notification
}

type fakeSender struct {
	mu         sync.Mutex
	supported  bool
	permission Permission
	onRequest  Permission
	sendErr    error
	sent       []sent
	requests   int
}

func newFakeSender(permission Permission) *fakeSender {
	return &fakeSender{supported: true, permission: permission, onRequest: PermissionGranted}
}

func (f *fakeSender) Name() string    { return "fake" }
func (f *fakeSender) Supported() bool { return f.supported }

func (f *fakeSender) Permission(context.Context) Permission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.permission
}

func (f *fakeSender) RequestPermission(context.Context) (Permission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests++
	f.permission = f.onRequest
	return f.permission, nil
}

func (f *fakeSender) Send(_ context.Context, userID string, n *Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, sent{userID: userID, notification: n})
	return nil
}

func (f *fakeSender) all() []sent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sent(nil), f.sent...)
}

type fakeQuestions struct {
	mu     sync.Mutex
	list   []StudyQuestion
	limits []int
}

func (f *fakeQuestions) GetQuestionsForPeriodicStudy(_ string, limit int) []StudyQuestion {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	if len(f.list) > limit {
		return f.list[:limit]
	}
	return f.list
}

func q(id, category string) StudyQuestion {
	return StudyQuestion{ID: id, Category: category}
}

func TestRequestPermission(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		supported bool
		initial   Permission
		onRequest Permission
		want      bool
		requests  int
	}{
		{name: "unsupported", supported: false, initial: PermissionDefault, onRequest: PermissionGranted, want: false},
		{name: "already granted", supported: true, initial: PermissionGranted, want: true},
		{name: "denied", supported: true, initial: PermissionDenied, onRequest: PermissionGranted, want: false},
		{name: "granted on request", supported: true, initial: PermissionDefault, onRequest: PermissionGranted, want: true, requests: 1},
		{name: "refused on request", supported: true, initial: PermissionDefault, onRequest: PermissionDenied, want: false, requests: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newFakeSender(tt.initial)
			sender.supported = tt.supported
			sender.onRequest = tt.onRequest
			s := NewService(sender, nil, Config{})

			assert.Equal(t, tt.want, s.RequestPermission(ctx))
			assert.Equal(t, tt.requests, sender.requests)
		})
	}
}

func TestSendsAreNoOpsWithoutPermission(t *testing.T) {
	ctx := context.Background()
	sender := newFakeSender(PermissionDefault)
	s := NewService(sender, nil, Config{})

	assert.False(t, s.SendStudyReminder(ctx, "u1", []StudyQuestion{q("1", "Física")}))
	assert.False(t, s.SendDailyStudyGoal(ctx, "u1", 1, 2))
	assert.False(t, s.SendAchievementUnlocked(ctx, "u1", "Primeira questão"))
	assert.False(t, s.SendQuestionRecommendation(ctx, "u1", q("1", "Física")))
	assert.False(t, s.TestNotification(ctx, "u1"))
	assert.Empty(t, sender.all())
}

func TestSendStudyReminder(t *testing.T) {
	sender := newFakeSender(PermissionGranted)
	s := NewService(sender, nil, Config{})
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	ok := s.SendStudyReminder(context.Background(), "u1", []StudyQuestion{q("1", "Física"), q("7", "Química")})
	require.True(t, ok)

	list := sender.all()
	require.Len(t, list, 1)
	n := list[0].notification
	assert.Equal(t, "u1", list[0].userID)
	assert.NotEmpty(t, n.ID)
	assert.Equal(t, now, n.CreatedAt)
	assert.Equal(t, "📚 Hora de Estudar!", n.Title)
	assert.Equal(t, "Você tem 2 questões para revisar hoje", n.Body)
	assert.Equal(t, TagStudyReminder, n.Tag)
	assert.True(t, n.RequireInteraction)
	assert.Equal(t, []string{"1", "7"}, n.Data["questionIds"])
	require.Len(t, n.Actions, 2)
	assert.Equal(t, "start_study", n.Actions[0].Action)
}

func TestSendDailyStudyGoal(t *testing.T) {
	tests := []struct {
		name     string
		progress int
		goal     int
		title    string
		body     string
		percent  int
	}{
		{name: "in progress", progress: 5, goal: 10, title: "📊 Progresso do Dia", body: "Você completou 5 de 10 questões (50%)", percent: 50},
		{name: "rounded", progress: 2, goal: 3, title: "📊 Progresso do Dia", body: "Você completou 2 de 3 questões (67%)", percent: 67},
		{name: "reached", progress: 12, goal: 10, title: "🎉 Meta Diária Atingida!", body: "Parabéns! Você completou 12 questões hoje!", percent: 120},
		{name: "zero goal", progress: 0, goal: 0, title: "🎉 Meta Diária Atingida!", body: "Parabéns! Você completou 0 questões hoje!", percent: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := newFakeSender(PermissionGranted)
			s := NewService(sender, nil, Config{})

			require.True(t, s.SendDailyStudyGoal(context.Background(), "u1", tt.progress, tt.goal))
			n := sender.all()[0].notification
			assert.Equal(t, tt.title, n.Title)
			assert.Equal(t, tt.body, n.Body)
			assert.Equal(t, tt.percent, n.Data["percentage"])
		})
	}
}

func TestSendQuestionRecommendation(t *testing.T) {
	sender := newFakeSender(PermissionGranted)
	s := NewService(sender, nil, Config{})

	require.True(t, s.SendQuestionRecommendation(context.Background(), "u1", q("42", "Biologia")))
	n := sender.all()[0].notification
	assert.Equal(t, "Nova questão de Biologia para você praticar", n.Body)
	assert.Equal(t, "42", n.Data["questionId"])
	assert.Equal(t, "/question/42", n.Data["url"])
}

func TestSenderFailureIsSwallowed(t *testing.T) {
	sender := newFakeSender(PermissionGranted)
	sender.sendErr = errors.New("boom")
	s := NewService(sender, nil, Config{})

	assert.False(t, s.SendAchievementUnlocked(context.Background(), "u1", "x"))
}

func TestRateLimitPerUser(t *testing.T) {
	ctx := context.Background()
	sender := newFakeSender(PermissionGranted)
	s := NewService(sender, nil, Config{RateInterval: time.Minute, RateBurst: 2})
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	assert.True(t, s.TestNotification(ctx, "u1"))
	assert.True(t, s.TestNotification(ctx, "u1"))
	assert.False(t, s.TestNotification(ctx, "u1"))
	assert.True(t, s.TestNotification(ctx, "u2"))

	now = now.Add(time.Minute)
	assert.True(t, s.TestNotification(ctx, "u1"))
	assert.Len(t, sender.all(), 4)
}

func TestSetupSmartNotifications(t *testing.T) {
	ctx := context.Background()

	t.Run("progress and recommendation", func(t *testing.T) {
		sender := newFakeSender(PermissionDefault)
		questions := &fakeQuestions{list: []StudyQuestion{q("3", "Química"), q("4", "Química")}}
		s := NewService(sender, questions, Config{})

		s.SetupSmartNotifications(ctx, "u1")
		list := sender.all()
		require.Len(t, list, 2)
		assert.Equal(t, TagDailyProgress, list[0].notification.Tag)
		assert.Equal(t, "Você completou 5 de 10 questões (50%)", list[0].notification.Body)
		assert.Equal(t, TagQuestionRecommendation, list[1].notification.Tag)
		assert.Equal(t, "3", list[1].notification.Data["questionId"])
		assert.Equal(t, []int{3}, questions.limits)
	})

	t.Run("custom progress without questions", func(t *testing.T) {
		sender := newFakeSender(PermissionGranted)
		s := NewService(sender, &fakeQuestions{}, Config{
			Progress: func(context.Context, string) (int, int, error) { return 30, 30, nil },
		})

		s.SetupSmartNotifications(ctx, "u1")
		list := sender.all()
		require.Len(t, list, 1)
		assert.Equal(t, "🎉 Meta Diária Atingida!", list[0].notification.Title)
	})

	t.Run("denied", func(t *testing.T) {
		sender := newFakeSender(PermissionDenied)
		s := NewService(sender, &fakeQuestions{list: []StudyQuestion{q("1", "Física")}}, Config{})

		s.SetupSmartNotifications(ctx, "u1")
		assert.Empty(t, sender.all())
	})
}
