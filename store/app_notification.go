package store

// AppNotification is an in-app notification kept for a user.
type AppNotification struct {
	ID        int32
	UID       string
	UserID    string
	Title     string
	Body      string
	Tag       string
	Payload   string // JSON
	IsRead    bool
	CreatedTs int64
}

// FindAppNotification specifies the conditions for listing notifications.
// Results are ordered by creation time, newest first.
type FindAppNotification struct {
	UserID *string
	IsRead *bool
	Limit  *int
}
