package notification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	storetest "github.com/hrygo/smartstudy/store/test"
)

func testNotification() *Notification {
	return &Notification{
		ID:        "n1",
		Title:     "Título",
		Body:      "Corpo",
		Icon:      "/icons/test-icon.png",
		Tag:       TagTest,
		Data:      map[string]any{"type": TagTest},
		Actions:   []Action{{Action: "dismiss", Title: "Dispensar"}},
		CreatedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestDispatcher(t *testing.T) {
	ctx := context.Background()
	d := NewDispatcher()
	assert.False(t, d.Supported())
	assert.Equal(t, PermissionDefault, d.Permission(ctx))

	granted := newFakeSender(PermissionGranted)
	pending := newFakeSender(PermissionDefault)
	pending.onRequest = PermissionDenied
	d.Register(ChannelApp, granted)
	d.Register(ChannelLog, pending)
	assert.Equal(t, []Channel{ChannelApp, ChannelLog}, d.Channels())
	assert.True(t, d.Supported())
	assert.Equal(t, PermissionGranted, d.Permission(ctx))

	require.NoError(t, d.Send(ctx, "u1", testNotification()))
	assert.Len(t, granted.all(), 1)
	assert.Empty(t, pending.all())

	permission, err := d.RequestPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, permission)
	assert.Equal(t, 1, pending.requests)

	granted.sendErr = errors.New("boom")
	err = d.Send(ctx, "u1", testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fake: boom")
}

func TestDispatcherDeniedWhenOnlyDenied(t *testing.T) {
	d := NewDispatcher()
	d.Register(ChannelLog, newFakeSender(PermissionDenied))
	assert.Equal(t, PermissionDenied, d.Permission(context.Background()))
}

func TestLogSender(t *testing.T) {
	ctx := context.Background()
	s := NewLogSender(nil)
	assert.Equal(t, "log", s.Name())
	assert.True(t, s.Supported())
	assert.Equal(t, PermissionDefault, s.Permission(ctx))

	permission, err := s.RequestPermission(ctx)
	require.NoError(t, err)
	assert.Equal(t, PermissionGranted, permission)
	assert.NoError(t, s.Send(ctx, "u1", testNotification()))
}

func TestPermissionStateKeepsDenial(t *testing.T) {
	p := newPermissionState(PermissionDenied)
	assert.Equal(t, PermissionDenied, p.request())
	assert.Equal(t, PermissionDefault, newPermissionState("").get())
}

func TestAppSender(t *testing.T) {
	ctx := context.Background()
	s := NewAppSender(storetest.NewTestingStore(ctx, t))
	assert.Equal(t, "app", s.Name())
	assert.True(t, s.Supported())
	assert.Equal(t, PermissionGranted, s.Permission(ctx))

	first := testNotification()
	require.NoError(t, s.Send(ctx, "u1", first))
	second := testNotification()
	second.ID = "n2"
	second.Title = "Segunda"
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	require.NoError(t, s.Send(ctx, "u1", second))
	require.NoError(t, s.Send(ctx, "u2", &Notification{ID: "n3", Title: "Outro", CreatedAt: first.CreatedAt}))

	inbox, err := s.Inbox(ctx, "u1", false, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "Segunda", inbox[0].Title)
	assert.Equal(t, "n1", inbox[1].ID)
	assert.Equal(t, "/icons/test-icon.png", inbox[1].Icon)
	assert.Equal(t, TagTest, inbox[1].Data["type"])
	assert.Equal(t, []Action{{Action: "dismiss", Title: "Dispensar"}}, inbox[1].Actions)
	assert.Equal(t, first.CreatedAt.Unix(), inbox[1].CreatedAt.Unix())

	unread, err := s.Inbox(ctx, "u1", true, 1)
	require.NoError(t, err)
	assert.Len(t, unread, 1)
}

func TestWebhookSender(t *testing.T) {
	var got WebhookPayload
	var secret string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		secret = r.Header.Get("X-Webhook-Secret")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ctx := context.Background()
	s := NewWebhookSender(WebhookConfig{URL: server.URL, Secret: "s3cret"})
	assert.True(t, s.Supported())
	assert.Equal(t, PermissionDefault, s.Permission(ctx))

	require.NoError(t, s.Send(ctx, "u1", testNotification()))
	assert.Equal(t, "s3cret", secret)
	assert.Equal(t, "notification.test", got.Event)
	assert.Equal(t, "u1", got.UserID)
	require.NotNil(t, got.Notification)
	assert.Equal(t, "Título", got.Notification.Title)
}

func TestWebhookSenderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewWebhookSender(WebhookConfig{URL: server.URL}).Send(context.Background(), "u1", testNotification())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")

	assert.False(t, NewWebhookSender(WebhookConfig{}).Supported())
}
