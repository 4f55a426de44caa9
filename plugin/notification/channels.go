package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/hrygo/smartstudy/store"
)

// Dispatcher fans notifications out to the registered senders. It is itself a
// Sender: supported when any sender is, granted when any supported sender is.
type Dispatcher struct {
	mu      sync.RWMutex
	senders map[Channel]Sender
	logger  *slog.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		senders: make(map[Channel]Sender),
		logger:  slog.Default(),
	}
}

// Register adds or replaces the sender of a channel.
func (d *Dispatcher) Register(channel Channel, sender Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.senders[channel] = sender
	d.logger.Info("registered notification channel", "channel", channel, "sender", sender.Name())
}

// Channels returns the registered channels, sorted.
func (d *Dispatcher) Channels() []Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.channelsLocked()
}

func (d *Dispatcher) list() []Sender {
	d.mu.RLock()
	defer d.mu.RUnlock()
	senders := make([]Sender, 0, len(d.senders))
	for _, c := range d.channelsLocked() {
		senders = append(senders, d.senders[c])
	}
	return senders
}

func (d *Dispatcher) channelsLocked() []Channel {
	channels := make([]Channel, 0, len(d.senders))
	for c := range d.senders {
		channels = append(channels, c)
	}
	sort.Slice(channels, func(i, j int) bool { return channels[i] < channels[j] })
	return channels
}

func (d *Dispatcher) Name() string {
	return "dispatcher"
}

func (d *Dispatcher) Supported() bool {
	for _, s := range d.list() {
		if s.Supported() {
			return true
		}
	}
	return false
}

func (d *Dispatcher) Permission(ctx context.Context) Permission {
	result := PermissionDefault
	for _, s := range d.list() {
		if !s.Supported() {
			continue
		}
		switch s.Permission(ctx) {
		case PermissionGranted:
			return PermissionGranted
		case PermissionDenied:
			result = PermissionDenied
		}
	}
	return result
}

// RequestPermission asks every supported sender.
func (d *Dispatcher) RequestPermission(ctx context.Context) (Permission, error) {
	var errs []error
	for _, s := range d.list() {
		if !s.Supported() {
			continue
		}
		if _, err := s.RequestPermission(ctx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return d.Permission(ctx), errors.Join(errs...)
}

// Send delivers through every supported and granted sender and joins their errors.
func (d *Dispatcher) Send(ctx context.Context, userID string, n *Notification) error {
	var errs []error
	for _, s := range d.list() {
		if !s.Supported() || s.Permission(ctx) != PermissionGranted {
			continue
		}
		if err := s.Send(ctx, userID, n); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// LogSender writes notifications to the log.
type LogSender struct {
	permission *permissionState
	logger     *slog.Logger
}

// NewLogSender creates a log sender; a nil logger selects slog.Default.
func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{permission: newPermissionState(PermissionDefault), logger: logger}
}

func (s *LogSender) Name() string {
	return string(ChannelLog)
}

func (s *LogSender) Supported() bool {
	return true
}

func (s *LogSender) Permission(context.Context) Permission {
	return s.permission.get()
}

func (s *LogSender) RequestPermission(context.Context) (Permission, error) {
	return s.permission.request(), nil
}

func (s *LogSender) Send(_ context.Context, userID string, n *Notification) error {
	s.logger.Info("notification",
		"user_id", userID,
		"notification_id", n.ID,
		"tag", n.Tag,
		"title", n.Title,
		"body", n.Body,
	)
	return nil
}

// AppNotificationStore persists in-app notifications. *store.Store implements it.
type AppNotificationStore interface {
	CreateAppNotification(ctx context.Context, create *store.AppNotification) (*store.AppNotification, error)
	ListAppNotifications(ctx context.Context, find *store.FindAppNotification) ([]*store.AppNotification, error)
}

// appPayload is the JSON kept next to an in-app notification.
type appPayload struct {
	Icon               string         `json:"icon,omitempty"`
	Badge              string         `json:"badge,omitempty"`
	RequireInteraction bool           `json:"requireInteraction,omitempty"`
	Data               map[string]any `json:"data,omitempty"`
	Actions            []Action       `json:"actions,omitempty"`
}

// AppSender keeps notifications in the user's in-app inbox.
type AppSender struct {
	store      AppNotificationStore
	permission *permissionState
	logger     *slog.Logger
}

// NewAppSender creates an in-app sender. The inbox needs no user consent, so
// its permission starts granted.
func NewAppSender(notifications AppNotificationStore) *AppSender {
	return &AppSender{
		store:      notifications,
		permission: newPermissionState(PermissionGranted),
		logger:     slog.Default(),
	}
}

func (s *AppSender) Name() string {
	return string(ChannelApp)
}

func (s *AppSender) Supported() bool {
	return s.store != nil
}

func (s *AppSender) Permission(context.Context) Permission {
	return s.permission.get()
}

func (s *AppSender) RequestPermission(context.Context) (Permission, error) {
	return s.permission.request(), nil
}

func (s *AppSender) Send(ctx context.Context, userID string, n *Notification) error {
	payload, err := json.Marshal(appPayload{
		Icon:               n.Icon,
		Badge:              n.Badge,
		RequireInteraction: n.RequireInteraction,
		Data:               n.Data,
		Actions:            n.Actions,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	created, err := s.store.CreateAppNotification(ctx, &store.AppNotification{
		UID:       n.ID,
		UserID:    userID,
		Title:     n.Title,
		Body:      n.Body,
		Tag:       n.Tag,
		Payload:   string(payload),
		CreatedTs: n.CreatedAt.Unix(),
	})
	if err != nil {
		s.logger.Error("failed to create app notification", "user_id", userID, "error", err)
		return fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Debug("app notification sent", "user_id", userID, "notification_id", created.UID)
	return nil
}

// Inbox returns the latest in-app notifications of a user, newest first.
func (s *AppSender) Inbox(ctx context.Context, userID string, unreadOnly bool, limit int) ([]*Notification, error) {
	find := &store.FindAppNotification{UserID: &userID}
	if unreadOnly {
		unread := false
		find.IsRead = &unread
	}
	if limit > 0 {
		find.Limit = &limit
	}
	list, err := s.store.ListAppNotifications(ctx, find)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	notifications := make([]*Notification, 0, len(list))
	for _, stored := range list {
		var payload appPayload
		if stored.Payload != "" {
			if err := json.Unmarshal([]byte(stored.Payload), &payload); err != nil {
				s.logger.Warn("invalid notification payload", "notification_id", stored.UID, "error", err)
			}
		}
		notifications = append(notifications, &Notification{
			ID:                 stored.UID,
			Title:              stored.Title,
			Body:               stored.Body,
			Icon:               payload.Icon,
			Badge:              payload.Badge,
			Tag:                stored.Tag,
			RequireInteraction: payload.RequireInteraction,
			Data:               payload.Data,
			Actions:            payload.Actions,
			CreatedAt:          time.Unix(stored.CreatedTs, 0),
		})
	}
	return notifications, nil
}

// WebhookConfig holds webhook configuration.
type WebhookConfig struct {
	URL     string
	Secret  string
	Timeout time.Duration
	Headers map[string]string
}

// WebhookPayload is the webhook request body.
type WebhookPayload struct {
	Event        string        `json:"event"`
	UserID       string        `json:"userId"`
	Notification *Notification `json:"notification"`
	Timestamp    time.Time     `json:"timestamp"`
}

// WebhookSender posts notifications as JSON to a URL.
type WebhookSender struct {
	config     WebhookConfig
	httpClient *http.Client
	permission *permissionState
	logger     *slog.Logger
}

// NewWebhookSender creates a webhook sender. It is unsupported without a URL.
func NewWebhookSender(config WebhookConfig) *WebhookSender {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}

	return &WebhookSender{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		permission: newPermissionState(PermissionDefault),
		logger:     slog.Default(),
	}
}

func (s *WebhookSender) Name() string {
	return string(ChannelWebhook)
}

func (s *WebhookSender) Supported() bool {
	return s.config.URL != ""
}

func (s *WebhookSender) Permission(context.Context) Permission {
	return s.permission.get()
}

func (s *WebhookSender) RequestPermission(context.Context) (Permission, error) {
	return s.permission.request(), nil
}

func (s *WebhookSender) Send(ctx context.Context, userID string, n *Notification) error {
	body, err := json.Marshal(WebhookPayload{
		Event:        "notification." + n.Tag,
		UserID:       userID,
		Notification: n,
		Timestamp:    n.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.config.Secret != "" {
		req.Header.Set("X-Webhook-Secret", s.config.Secret)
	}
	for k, v := range s.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Error("webhook request failed", "url", s.config.URL, "error", err)
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		s.logger.Error("webhook returned error",
			"url", s.config.URL,
			"status", resp.StatusCode,
			"response", string(respBody),
		)
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	s.logger.Debug("webhook notification sent", "user_id", userID, "status", resp.StatusCode)
	return nil
}
