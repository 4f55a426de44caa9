package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/store"
)

func TestAudioRecordingStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	userID := "u1"
	created, err := ts.CreateAudioRecording(ctx, &store.AudioRecording{
		UID:         "rec-1",
		UserID:      userID,
		Title:       "Leis de Newton",
		Subject:     "Física",
		Topic:       "Mecânica",
		Duration:    380,
		FileSize:    2900000,
		IsProcessed: true,
		CreatedTs:   100,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Equal(t, int64(100), created.UpdatedTs)

	_, err = ts.CreateAudioRecording(ctx, &store.AudioRecording{
		UID: "rec-2", UserID: userID, Title: "Mitose", Subject: "Biologia", CreatedTs: 200,
	})
	require.NoError(t, err)

	list, err := ts.ListAudioRecordings(ctx, &store.FindAudioRecording{UserID: &userID})
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "rec-2", list[0].UID)
	require.True(t, list[1].IsProcessed)

	subject := "Física"
	list, err = ts.ListAudioRecordings(ctx, &store.FindAudioRecording{UserID: &userID, Subject: &subject})
	require.NoError(t, err)
	require.Len(t, list, 1)

	title, notes := "Leis de Newton (revisado)", "# Resumo"
	updated, err := ts.UpdateAudioRecording(ctx, &store.UpdateAudioRecording{UID: "rec-1", Title: &title, Notes: &notes, UpdatedTs: 300})
	require.NoError(t, err)
	require.Equal(t, title, updated.Title)
	require.Equal(t, notes, updated.Notes)
	require.Equal(t, "Mecânica", updated.Topic)
	require.Equal(t, int64(300), updated.UpdatedTs)

	missing, err := ts.UpdateAudioRecording(ctx, &store.UpdateAudioRecording{UID: "nope", Title: &title})
	require.NoError(t, err)
	require.Nil(t, missing)

	require.NoError(t, ts.DeleteAudioRecording(ctx, &store.DeleteAudioRecording{UID: "rec-1"}))
	got, err := ts.GetAudioRecording(ctx, "rec-1")
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = ts.GetAudioRecording(ctx, "rec-2")
	require.NoError(t, err)
	require.Equal(t, "Mitose", got.Title)
}
