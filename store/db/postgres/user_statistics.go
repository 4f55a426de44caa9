package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/hrygo/smartstudy/store"
)

const userStatisticsColumns = `user_id, questions_answered, correct_answers, study_time_total, current_streak,
	total_exams, average_score, last_study_ts, weekly_goal, weekly_progress, created_ts, updated_ts`

func scanUserStatistics(row interface{ Scan(...any) error }) (*store.UserStatistics, error) {
	stats := &store.UserStatistics{}
	var lastStudyTs sql.NullInt64
	if err := row.Scan(
		&stats.UserID,
		&stats.QuestionsAnswered,
		&stats.CorrectAnswers,
		&stats.StudyTimeTotal,
		&stats.CurrentStreak,
		&stats.TotalExams,
		&stats.AverageScore,
		&lastStudyTs,
		&stats.WeeklyGoal,
		&stats.WeeklyProgress,
		&stats.CreatedTs,
		&stats.UpdatedTs,
	); err != nil {
		return nil, err
	}
	if lastStudyTs.Valid {
		stats.LastStudyTs = &lastStudyTs.Int64
	}
	return stats, nil
}

func (d *DB) GetUserStatistics(ctx context.Context, find *store.FindUserStatistics) (*store.UserStatistics, error) {
	if find.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	query := `SELECT ` + userStatisticsColumns + ` FROM user_statistics WHERE user_id = ` + placeholder(1)
	stats, err := scanUserStatistics(d.db.QueryRowContext(ctx, query, find.UserID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found, return nil without error
		}
		return nil, fmt.Errorf("failed to get user_statistics: %w", err)
	}
	return stats, nil
}

func (d *DB) UpsertUserStatistics(ctx context.Context, upsert *store.UpsertUserStatistics) (*store.UserStatistics, error) {
	now := time.Now().Unix()

	var lastStudyTs sql.NullInt64
	if upsert.LastStudyTs != nil {
		lastStudyTs = sql.NullInt64{Int64: *upsert.LastStudyTs, Valid: true}
	}

	stmt := `INSERT INTO user_statistics (
			user_id, questions_answered, correct_answers, study_time_total, current_streak,
			total_exams, average_score, last_study_ts, weekly_goal, weekly_progress, created_ts, updated_ts
		) VALUES (` + placeholders(12) + `)
		ON CONFLICT (user_id) DO UPDATE SET
			questions_answered = EXCLUDED.questions_answered,
			correct_answers = EXCLUDED.correct_answers,
			study_time_total = EXCLUDED.study_time_total,
			current_streak = EXCLUDED.current_streak,
			total_exams = EXCLUDED.total_exams,
			average_score = EXCLUDED.average_score,
			last_study_ts = EXCLUDED.last_study_ts,
			weekly_goal = EXCLUDED.weekly_goal,
			weekly_progress = EXCLUDED.weekly_progress,
			updated_ts = EXCLUDED.updated_ts
		RETURNING ` + userStatisticsColumns

	stats, err := scanUserStatistics(d.db.QueryRowContext(ctx, stmt,
		upsert.UserID, upsert.QuestionsAnswered, upsert.CorrectAnswers, upsert.StudyTimeTotal, upsert.CurrentStreak,
		upsert.TotalExams, upsert.AverageScore, lastStudyTs, upsert.WeeklyGoal, upsert.WeeklyProgress, now, now,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user_statistics: %w", err)
	}
	return stats, nil
}
