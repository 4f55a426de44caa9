package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/smartstudy/store"
)

func (d *DB) CreateAppNotification(ctx context.Context, create *store.AppNotification) (*store.AppNotification, error) {
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	if create.Payload == "" {
		create.Payload = "{}"
	}

	fields := []string{"uid", "user_id", "title", "body", "tag", "payload", "is_read", "created_ts"}
	args := []any{create.UID, create.UserID, create.Title, create.Body, create.Tag, create.Payload, create.IsRead, create.CreatedTs}

	stmt := `INSERT INTO app_notification (` + strings.Join(fields, ", ") + `) VALUES (` + placeholders(len(args)) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create app_notification: %w", err)
	}
	return create, nil
}

func (d *DB) ListAppNotifications(ctx context.Context, find *store.FindAppNotification) ([]*store.AppNotification, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.IsRead; v != nil {
		where, args = append(where, "is_read = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT id, uid, user_id, title, body, tag, payload, is_read, created_ts
		FROM app_notification
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query app_notification: %w", err)
	}
	defer rows.Close()

	list := make([]*store.AppNotification, 0)
	for rows.Next() {
		var notification store.AppNotification
		if err := rows.Scan(
			&notification.ID,
			&notification.UID,
			&notification.UserID,
			&notification.Title,
			&notification.Body,
			&notification.Tag,
			&notification.Payload,
			&notification.IsRead,
			&notification.CreatedTs,
		); err != nil {
			return nil, fmt.Errorf("failed to scan app_notification: %w", err)
		}
		list = append(list, &notification)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
