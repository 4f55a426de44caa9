package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/store"
)

func TestUserStatisticsStore(t *testing.T) {
	ctx := context.Background()
	ts := NewTestingStore(ctx, t)

	stats, err := ts.GetUserStatistics(ctx, &store.FindUserStatistics{UserID: "u1"})
	require.NoError(t, err)
	require.Nil(t, stats)

	lastStudy := int64(1705314600)
	stats, err = ts.UpsertUserStatistics(ctx, &store.UpsertUserStatistics{
		UserID:            "u1",
		QuestionsAnswered: 45,
		CorrectAnswers:    37,
		StudyTimeTotal:    420,
		CurrentStreak:     5,
		TotalExams:        3,
		AverageScore:      85,
		LastStudyTs:       &lastStudy,
		WeeklyGoal:        300,
		WeeklyProgress:    180,
	})
	require.NoError(t, err)
	require.Equal(t, int32(420), stats.StudyTimeTotal)
	require.NotNil(t, stats.LastStudyTs)
	require.Equal(t, lastStudy, *stats.LastStudyTs)

	stats, err = ts.UpsertUserStatistics(ctx, &store.UpsertUserStatistics{
		UserID:         "u1",
		StudyTimeTotal: 450,
		WeeklyGoal:     300,
		WeeklyProgress: 210,
	})
	require.NoError(t, err)
	require.Nil(t, stats.LastStudyTs)

	got, err := ts.GetUserStatistics(ctx, &store.FindUserStatistics{UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, int32(450), got.StudyTimeTotal)
	require.Equal(t, int32(210), got.WeeklyProgress)

	// Mutating a returned value never leaks into the cache.
	got.StudyTimeTotal = 1
	again, err := ts.GetUserStatistics(ctx, &store.FindUserStatistics{UserID: "u1"})
	require.NoError(t, err)
	require.Equal(t, int32(450), again.StudyTimeTotal)
}
