package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hrygo/smartstudy/internal/profile"
	"github.com/hrygo/smartstudy/server/timezone"
)

const periodicStudyLimit = 5

var (
	// ErrInvalidTime is returned for a time of day not in HH:MM form.
	ErrInvalidTime = errors.New("invalid time of day")
	// ErrSchedulerStopped is returned when scheduling on a stopped scheduler.
	ErrSchedulerStopped = errors.New("scheduler stopped")
)

// Timer is a pending callback. *time.Timer implements it.
type Timer interface {
	Stop() bool
}

// AfterFunc arms f to run after d.
type AfterFunc func(d time.Duration, f func()) Timer

// TimeOfDay is a wall-clock time in the scheduler's location.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTimeOfDay parses HH:MM.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	hour, minute, err := profile.ParseClock(s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// next returns the next occurrence strictly after now.
func (t TimeOfDay) next(now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}
	return at
}

type slot struct {
	at    TimeOfDay
	timer Timer
}

// Scheduler sends study reminders at fixed times of day.
type Scheduler struct {
	service   *Service
	questions QuestionProvider
	now       func() time.Time
	afterFunc AfterFunc
	logger    *slog.Logger

	mu      sync.Mutex
	slots   map[string][]*slot
	stopped bool
}

// NewScheduler creates a scheduler that sends through service.
func NewScheduler(service *Service, questions QuestionProvider) *Scheduler {
	return &Scheduler{
		service:   service,
		questions: questions,
		now:       time.Now,
		afterFunc: func(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) },
		logger:    slog.Default(),
		slots:     make(map[string][]*slot),
	}
}

// SchedulePeriodicStudy replaces the schedule of a user with one daily
// reminder per time. Each reminder fires at the next occurrence of its time
// and re-arms itself for the following day.
func (s *Scheduler) SchedulePeriodicStudy(userID string, times []string) error {
	parsed := make([]TimeOfDay, 0, len(times))
	for _, t := range times {
		at, err := ParseTimeOfDay(t)
		if err != nil {
			return err
		}
		parsed = append(parsed, at)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return ErrSchedulerStopped
	}

	s.cancelLocked(userID)
	slots := make([]*slot, 0, len(parsed))
	for _, at := range parsed {
		sl := &slot{at: at}
		s.armLocked(userID, sl)
		slots = append(slots, sl)
	}
	if len(slots) > 0 {
		s.slots[userID] = slots
	}
	s.logger.Info("scheduled periodic study", "user_id", userID, "times", len(slots))
	return nil
}

// SetLocation sets the timezone reminder times are read in. Existing
// schedules keep their timers until they fire next.
func (s *Scheduler) SetLocation(loc *time.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = timezone.Clock(s.now, loc)
}

// Scheduled returns the times scheduled for a user.
func (s *Scheduler) Scheduled(userID string) []TimeOfDay {
	s.mu.Lock()
	defer s.mu.Unlock()
	times := make([]TimeOfDay, 0, len(s.slots[userID]))
	for _, sl := range s.slots[userID] {
		times = append(times, sl.at)
	}
	return times
}

// Cancel removes the schedule of a user.
func (s *Scheduler) Cancel(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked(userID)
}

// Stop cancels every schedule. Later calls to SchedulePeriodicStudy fail.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	for userID := range s.slots {
		s.cancelLocked(userID)
	}
	s.logger.Info("notification scheduler stopped")
}

func (s *Scheduler) cancelLocked(userID string) {
	for _, sl := range s.slots[userID] {
		if sl.timer != nil {
			sl.timer.Stop()
		}
	}
	delete(s.slots, userID)
}

func (s *Scheduler) armLocked(userID string, sl *slot) {
	now := s.now()
	delay := sl.at.next(now).Sub(now)
	sl.timer = s.afterFunc(delay, func() { s.fire(userID, sl) })
}

func (s *Scheduler) active(userID string, sl *slot) bool {
	for _, current := range s.slots[userID] {
		if current == sl {
			return true
		}
	}
	return false
}

func (s *Scheduler) fire(userID string, sl *slot) {
	s.mu.Lock()
	if s.stopped || !s.active(userID, sl) {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	ctx := context.Background()
	if questions := s.questions.GetQuestionsForPeriodicStudy(userID, periodicStudyLimit); len(questions) > 0 {
		s.service.SendStudyReminder(ctx, userID, questions)
	} else {
		s.logger.Debug("no questions due for review", "user_id", userID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped && s.active(userID, sl) {
		s.armLocked(userID, sl)
	}
}
