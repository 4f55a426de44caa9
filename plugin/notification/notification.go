// Package notification delivers study notifications through pluggable senders.
package notification

import (
	"context"
	"sync"
	"time"
)

// Permission is the state of a sender's permission to notify.
type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

// Channel names a registered sender.
type Channel string

const (
	ChannelLog     Channel = "log"
	ChannelApp     Channel = "app"
	ChannelWebhook Channel = "webhook"
)

// Notification tags.
const (
	TagStudyReminder          = "study_reminder"
	TagDailyProgress          = "daily_progress"
	TagAchievement            = "achievement"
	TagQuestionRecommendation = "question_recommendation"
	TagTest                   = "test"
)

// Action is a button offered with a notification.
type Action struct {
	Action string `json:"action"`
	Title  string `json:"title"`
	Icon   string `json:"icon,omitempty"`
}

// Notification is a message for a user.
type Notification struct {
	ID                 string         `json:"id"`
	Title              string         `json:"title"`
	Body               string         `json:"body"`
	Icon               string         `json:"icon,omitempty"`
	Badge              string         `json:"badge,omitempty"`
	Tag                string         `json:"tag,omitempty"`
	RequireInteraction bool           `json:"requireInteraction,omitempty"`
	Data               map[string]any `json:"data,omitempty"`
	Actions            []Action       `json:"actions,omitempty"`
	CreatedAt          time.Time      `json:"createdAt"`
}

// Sender delivers notifications on one platform.
type Sender interface {
	Name() string
	// Supported reports whether the platform can deliver at all.
	Supported() bool
	Permission(ctx context.Context) Permission
	RequestPermission(ctx context.Context) (Permission, error)
	Send(ctx context.Context, userID string, n *Notification) error
}

// StudyQuestion is the part of a question a notification refers to.
type StudyQuestion struct {
	ID       string
	Category string
}

// QuestionProvider selects questions due for review.
type QuestionProvider interface {
	GetQuestionsForPeriodicStudy(userID string, limit int) []StudyQuestion
}

// QuestionProviderFunc adapts a function to a QuestionProvider.
type QuestionProviderFunc func(userID string, limit int) []StudyQuestion

func (f QuestionProviderFunc) GetQuestionsForPeriodicStudy(userID string, limit int) []StudyQuestion {
	return f(userID, limit)
}

// permissionState is the permission bookkeeping shared by the built-in senders.
// A request grants unless the permission was denied before.
type permissionState struct {
	mu         sync.Mutex
	permission Permission
}

func newPermissionState(initial Permission) *permissionState {
	if initial == "" {
		initial = PermissionDefault
	}
	return &permissionState{permission: initial}
}

func (p *permissionState) get() Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.permission
}

func (p *permissionState) request() Permission {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.permission != PermissionDenied {
		p.permission = PermissionGranted
	}
	return p.permission
}
