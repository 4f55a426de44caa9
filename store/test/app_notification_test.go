package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/store"
)

func TestAppNotificationStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	userID := "u1"
	first, err := ts.CreateAppNotification(ctx, &store.AppNotification{
		UID: "n1", UserID: userID, Title: "📚 Hora de Estudar!", Body: "3 questões", Tag: "study-reminder", CreatedTs: 100,
	})
	require.NoError(t, err)
	require.Equal(t, "{}", first.Payload)

	_, err = ts.CreateAppNotification(ctx, &store.AppNotification{
		UID: "n2", UserID: userID, Title: "🏆 Conquista Desbloqueada!", Payload: `{"type":"achievement"}`, IsRead: true, CreatedTs: 200,
	})
	require.NoError(t, err)

	list, err := ts.ListAppNotifications(ctx, &store.FindAppNotification{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "n2", list[0].UID)
	require.JSONEq(t, `{"type":"achievement"}`, list[0].Payload)

	unread := false
	list, err = ts.ListAppNotifications(ctx, &store.FindAppNotification{UserID: &userID, IsRead: &unread})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "study-reminder", list[0].Tag)
}
