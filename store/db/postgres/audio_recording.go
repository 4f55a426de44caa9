package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/smartstudy/store"
)

const audioRecordingColumns = `id, uid, user_id, title, subject, topic, duration, file_size, audio_url, notes, is_processed, created_ts, updated_ts`

func scanAudioRecording(row interface{ Scan(...any) error }) (*store.AudioRecording, error) {
	var recording store.AudioRecording
	if err := row.Scan(
		&recording.ID,
		&recording.UID,
		&recording.UserID,
		&recording.Title,
		&recording.Subject,
		&recording.Topic,
		&recording.Duration,
		&recording.FileSize,
		&recording.AudioURL,
		&recording.Notes,
		&recording.IsProcessed,
		&recording.CreatedTs,
		&recording.UpdatedTs,
	); err != nil {
		return nil, err
	}
	return &recording, nil
}

func (d *DB) CreateAudioRecording(ctx context.Context, create *store.AudioRecording) (*store.AudioRecording, error) {
	now := time.Now().Unix()
	if create.CreatedTs == 0 {
		create.CreatedTs = now
	}
	if create.UpdatedTs == 0 {
		create.UpdatedTs = create.CreatedTs
	}

	fields := []string{"uid", "user_id", "title", "subject", "topic", "duration", "file_size", "audio_url", "notes", "is_processed", "created_ts", "updated_ts"}
	args := []any{
		create.UID, create.UserID, create.Title, create.Subject, create.Topic, create.Duration, create.FileSize,
		create.AudioURL, create.Notes, create.IsProcessed, create.CreatedTs, create.UpdatedTs,
	}

	stmt := `INSERT INTO audio_recording (` + strings.Join(fields, ", ") + `) VALUES (` + placeholders(len(args)) + `) RETURNING id`
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID); err != nil {
		return nil, fmt.Errorf("failed to create audio_recording: %w", err)
	}
	return create, nil
}

func (d *DB) ListAudioRecordings(ctx context.Context, find *store.FindAudioRecording) ([]*store.AudioRecording, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Subject; v != nil {
		where, args = append(where, "subject = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `SELECT ` + audioRecordingColumns + `
		FROM audio_recording
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts DESC, id DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query audio_recording: %w", err)
	}
	defer rows.Close()

	list := make([]*store.AudioRecording, 0)
	for rows.Next() {
		recording, err := scanAudioRecording(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan audio_recording: %w", err)
		}
		list = append(list, recording)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// UpdateAudioRecording returns nil without error when no recording has the uid.
func (d *DB) UpdateAudioRecording(ctx context.Context, update *store.UpdateAudioRecording) (*store.AudioRecording, error) {
	set, args := []string{}, []any{}

	if v := update.Title; v != nil {
		set, args = append(set, "title = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Subject; v != nil {
		set, args = append(set, "subject = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Topic; v != nil {
		set, args = append(set, "topic = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.AudioURL; v != nil {
		set, args = append(set, "audio_url = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = "+placeholder(len(args)+1)), append(args, *v)
	}
	updatedTs := update.UpdatedTs
	if updatedTs == 0 {
		updatedTs = time.Now().Unix()
	}
	set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, updatedTs)
	args = append(args, update.UID)

	stmt := `UPDATE audio_recording SET ` + strings.Join(set, ", ") + `
		WHERE uid = ` + placeholder(len(args)) + `
		RETURNING ` + audioRecordingColumns

	recording, err := scanAudioRecording(d.db.QueryRowContext(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update audio_recording: %w", err)
	}
	return recording, nil
}

func (d *DB) DeleteAudioRecording(ctx context.Context, delete *store.DeleteAudioRecording) error {
	result, err := d.db.ExecContext(ctx, `DELETE FROM audio_recording WHERE uid = `+placeholder(1), delete.UID)
	if err != nil {
		return fmt.Errorf("failed to delete audio_recording: %w", err)
	}
	if _, err := result.RowsAffected(); err != nil {
		return err
	}
	return nil
}
