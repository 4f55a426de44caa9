package store

// AudioRecording is the metadata of a recorded study note.
type AudioRecording struct {
	ID          int32
	UID         string
	UserID      string
	Title       string
	Subject     string
	Topic       string
	Duration    int32 // seconds
	FileSize    int64 // bytes
	AudioURL    string
	Notes       string // markdown
	IsProcessed bool
	CreatedTs   int64
	UpdatedTs   int64
}

// FindAudioRecording specifies the conditions for listing recordings.
// Results are ordered by creation time, newest first.
type FindAudioRecording struct {
	UID     *string
	UserID  *string
	Subject *string
}

// UpdateAudioRecording patches the fields that are not nil.
type UpdateAudioRecording struct {
	UID       string
	Title     *string
	Subject   *string
	Topic     *string
	AudioURL  *string
	Notes     *string
	UpdatedTs int64
}

// DeleteAudioRecording specifies the recording to delete.
type DeleteAudioRecording struct {
	UID string
}
