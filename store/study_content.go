package store

// StudyContentType is the media kind of a study content.
type StudyContentType string

const (
	StudyContentVideo   StudyContentType = "video"
	StudyContentText    StudyContentType = "text"
	StudyContentPodcast StudyContentType = "podcast"
	StudyContentAudio   StudyContentType = "audio"
)

// StudyContent is a piece of material a user has accessed.
type StudyContent struct {
	ID             int32
	UID            string
	UserID         string
	Title          string
	Type           StudyContentType
	Duration       *int32 // minutes
	Category       string
	Thumbnail      string
	IsCompleted    bool
	LastAccessedTs *int64
	CreatedTs      int64
}

// FindStudyContent specifies the conditions for listing study contents.
// Results are ordered by last access, newest first.
type FindStudyContent struct {
	UserID *string
	Limit  *int
}
