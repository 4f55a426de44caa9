package notification

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTimer struct {
	delay   time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	t.stopped = true
	return true
}

type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	timers []*fakeTimer
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{delay: d, fn: f}
	c.timers = append(c.timers, t)
	return t
}

func (c *fakeClock) last() *fakeTimer {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timers[len(c.timers)-1]
}

func (c *fakeClock) set(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func newTestScheduler(questions QuestionProvider) (*Scheduler, *fakeSender, *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
	sender := newFakeSender(PermissionGranted)
	service := NewService(sender, questions, Config{})
	service.now = clock.Now

	s := NewScheduler(service, questions)
	s.now = clock.Now
	s.afterFunc = clock.AfterFunc
	return s, sender, clock
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{in: "08:30", want: TimeOfDay{8, 30}},
		{in: " 7:05 ", want: TimeOfDay{7, 5}},
		{in: "23:59", want: TimeOfDay{23, 59}},
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "12", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC), TimeOfDay{18, 0}.next(now))
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), TimeOfDay{8, 0}.next(now))
	assert.Equal(t, time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC), TimeOfDay{10, 0}.next(now))
}

func TestSchedulePeriodicStudy(t *testing.T) {
	questions := &fakeQuestions{list: []StudyQuestion{q("1", "Física"), q("2", "Física")}}
	s, sender, clock := newTestScheduler(questions)

	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"18:00", "08:00"}))
	require.Len(t, clock.timers, 2)
	assert.Equal(t, 8*time.Hour, clock.timers[0].delay)
	assert.Equal(t, 22*time.Hour, clock.timers[1].delay)
	assert.Equal(t, []TimeOfDay{{18, 0}, {8, 0}}, s.Scheduled("u1"))

	// Fire the 18:00 reminder.
	clock.set(time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC))
	clock.timers[0].fn()

	list := sender.all()
	require.Len(t, list, 1)
	assert.Equal(t, TagStudyReminder, list[0].notification.Tag)
	assert.Equal(t, []int{periodicStudyLimit}, questions.limits)

	// Re-armed for the next day.
	require.Len(t, clock.timers, 3)
	assert.Equal(t, 24*time.Hour, clock.last().delay)
}

func TestScheduleReplacesPrevious(t *testing.T) {
	s, _, clock := newTestScheduler(&fakeQuestions{})

	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"18:00"}))
	first := clock.timers[0]
	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"19:00"}))
	assert.True(t, first.stopped)
	assert.Equal(t, []TimeOfDay{{19, 0}}, s.Scheduled("u1"))

	// A stale timer firing does nothing.
	first.fn()
	assert.Len(t, clock.timers, 2)
}

func TestScheduleInvalidKeepsPrevious(t *testing.T) {
	s, _, clock := newTestScheduler(&fakeQuestions{})

	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"18:00"}))
	err := s.SchedulePeriodicStudy("u1", []string{"07:00", "bad"})
	assert.ErrorIs(t, err, ErrInvalidTime)
	assert.False(t, clock.timers[0].stopped)
	assert.Equal(t, []TimeOfDay{{18, 0}}, s.Scheduled("u1"))
}

func TestNoReminderWithoutQuestions(t *testing.T) {
	s, sender, clock := newTestScheduler(&fakeQuestions{})

	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"18:00"}))
	clock.timers[0].fn()
	assert.Empty(t, sender.all())
	assert.Len(t, clock.timers, 2)
}

func TestCancelAndStop(t *testing.T) {
	s, sender, clock := newTestScheduler(&fakeQuestions{list: []StudyQuestion{q("1", "Física")}})

	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"18:00"}))
	require.NoError(t, s.SchedulePeriodicStudy("u2", []string{"19:00"}))

	s.Cancel("u1")
	assert.True(t, clock.timers[0].stopped)
	assert.Empty(t, s.Scheduled("u1"))
	clock.timers[0].fn()
	assert.Empty(t, sender.all())

	s.Stop()
	s.Stop()
	assert.True(t, clock.timers[1].stopped)
	assert.ErrorIs(t, s.SchedulePeriodicStudy("u1", []string{"18:00"}), ErrSchedulerStopped)
}

func TestSchedulerLocation(t *testing.T) {
	s, _, clock := newTestScheduler(&fakeQuestions{})
	// 10:00 UTC is 07:00 at UTC-3.
	s.SetLocation(time.FixedZone("BRT", -3*60*60))

	require.NoError(t, s.SchedulePeriodicStudy("u1", []string{"08:00"}))
	assert.Equal(t, time.Hour, clock.last().delay)
}
