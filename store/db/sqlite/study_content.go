package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/smartstudy/store"
)

func (d *DB) CreateStudyContent(ctx context.Context, create *store.StudyContent) (*store.StudyContent, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}

	fields := []string{"uid", "user_id", "title", "type", "duration", "category", "thumbnail", "is_completed", "last_accessed_ts", "created_ts"}
	args := []any{create.UID, create.UserID, create.Title, create.Type, create.Duration, create.Category, create.Thumbnail, boolToInt(create.IsCompleted), create.LastAccessedTs, create.CreatedTs}

	stmt := `INSERT INTO study_content (` + strings.Join(fields, ", ") + `) VALUES (` + placeholders(len(args)) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create study_content: %w", err)
	}
	return create, nil
}

func (d *DB) ListStudyContents(ctx context.Context, find *store.FindStudyContent) ([]*store.StudyContent, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, title, type, duration, category, thumbnail, is_completed, last_accessed_ts, created_ts
		FROM study_content
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY last_accessed_ts DESC, id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query study_content: %w", err)
	}
	defer rows.Close()

	list := make([]*store.StudyContent, 0)
	for rows.Next() {
		var content store.StudyContent
		var duration sql.NullInt32
		var lastAccessedTs sql.NullInt64
		var isCompleted int
		if err := rows.Scan(
			&content.ID,
			&content.UID,
			&content.UserID,
			&content.Title,
			&content.Type,
			&duration,
			&content.Category,
			&content.Thumbnail,
			&isCompleted,
			&lastAccessedTs,
			&content.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan study_content: %w", err)
		}
		content.IsCompleted = isCompleted == 1
		if duration.Valid {
			content.Duration = &duration.Int32
		}
		if lastAccessedTs.Valid {
			content.LastAccessedTs = &lastAccessedTs.Int64
		}
		list = append(list, &content)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
