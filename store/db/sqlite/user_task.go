package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/smartstudy/store"
)

// priorityOrder ranks priorities in SQL, high first.
const priorityOrder = `CASE priority WHEN 'high' THEN 3 WHEN 'medium' THEN 2 ELSE 1 END`

func (d *DB) CreateUserTask(ctx context.Context, create *store.UserTask) (*store.UserTask, error) {
	if create.Priority == "" {
		create.Priority = store.TaskPriorityMedium
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}

	fields := []string{"uid", "user_id", "title", "is_completed", "priority", "due_ts", "created_ts"}
	args := []any{create.UID, create.UserID, create.Title, boolToInt(create.IsCompleted), create.Priority, create.DueTs, create.CreatedTs}

	stmt := `INSERT INTO user_task (` + strings.Join(fields, ", ") + `) VALUES (` + placeholders(len(args)) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create user_task: %w", err)
	}
	return create, nil
}

func (d *DB) ListUserTasks(ctx context.Context, find *store.FindUserTask) ([]*store.UserTask, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DueAfter; v != nil {
		where, args = append(where, "due_ts >= "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DueBefore; v != nil {
		where, args = append(where, "due_ts < "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, title, is_completed, priority, due_ts, created_ts
		FROM user_task
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + priorityOrder + ` DESC, due_ts ASC, id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user_task: %w", err)
	}
	defer rows.Close()

	list := make([]*store.UserTask, 0)
	for rows.Next() {
		var task store.UserTask
		var isCompleted int
		if err := rows.Scan(
			&task.ID,
			&task.UID,
			&task.UserID,
			&task.Title,
			&isCompleted,
			&task.Priority,
			&task.DueTs,
			&task.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user_task: %w", err)
		}
		task.IsCompleted = isCompleted == 1
		list = append(list, &task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
