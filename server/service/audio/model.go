package audio

import (
	"time"

	"github.com/hrygo/smartstudy/store"
)

// UntitledRecording is the title given to a freshly stopped recording.
const UntitledRecording = "Gravação sem título"

// Recording is the metadata of a recorded study note.
type Recording struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	Topic       string    `json:"topic"`
	Duration    int       `json:"duration"` // seconds
	FileSize    int64     `json:"fileSize"` // bytes
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      string    `json:"userId"`
	AudioURL    string    `json:"audioUrl,omitempty"`
	IsProcessed bool      `json:"isProcessed"`
	Notes       string    `json:"notes,omitempty"`
}

// SubjectStats aggregates the recordings of one subject.
type SubjectStats struct {
	SubjectID       string     `json:"subjectId"`
	SubjectName     string     `json:"subjectName"`
	TotalRecordings int        `json:"totalRecordings"`
	TotalDuration   int        `json:"totalDuration"` // seconds
	LastRecording   *time.Time `json:"lastRecording,omitempty"`
	Topics          []string   `json:"topics"`
}

// Metadata is a partial update of a recording. Nil fields are kept.
type Metadata struct {
	Title    *string `json:"title,omitempty"`
	Subject  *string `json:"subject,omitempty"`
	Topic    *string `json:"topic,omitempty"`
	AudioURL *string `json:"audioUrl,omitempty"`
	Notes    *string `json:"notes,omitempty"`
}

func recordingFromStore(r *store.AudioRecording) *Recording {
	return &Recording{
		ID:          r.UID,
		Title:       r.Title,
		Subject:     r.Subject,
		Topic:       r.Topic,
		Duration:    int(r.Duration),
		FileSize:    r.FileSize,
		CreatedAt:   time.Unix(r.CreatedTs, 0),
		UpdatedAt:   time.Unix(r.UpdatedTs, 0),
		UserID:      r.UserID,
		AudioURL:    r.AudioURL,
		IsProcessed: r.IsProcessed,
		Notes:       r.Notes,
	}
}
