package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrygo/smartstudy/store"
)

func (d *DB) CreateExamResult(ctx context.Context, create *store.ExamResult) (*store.ExamResult, error) {
	fields := []string{"uid", "user_id", "exam_title", "score", "total_questions", "correct_answers", "completed_ts", "time_spent", "subject"}
	args := []any{create.UID, create.UserID, create.ExamTitle, create.Score, create.TotalQuestions, create.CorrectAnswers, create.CompletedTs, create.TimeSpent, create.Subject}

	stmt := `INSERT INTO exam_result (` + strings.Join(fields, ", ") + `) VALUES (` + placeholders(len(args)) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create exam_result: %w", err)
	}
	return create, nil
}

func (d *DB) ListExamResults(ctx context.Context, find *store.FindExamResult) ([]*store.ExamResult, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, exam_title, score, total_questions, correct_answers, completed_ts, time_spent, subject
		FROM exam_result
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY completed_ts DESC, id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query exam_result: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ExamResult, 0)
	for rows.Next() {
		var result store.ExamResult
		if err := rows.Scan(
			&result.ID,
			&result.UID,
			&result.UserID,
			&result.ExamTitle,
			&result.Score,
			&result.TotalQuestions,
			&result.CorrectAnswers,
			&result.CompletedTs,
			&result.TimeSpent,
			&result.Subject,
		); err != nil {
			return nil, fmt.Errorf("failed to scan exam_result: %w", err)
		}
		list = append(list, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
