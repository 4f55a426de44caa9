package v1

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/smartstudy/server/service/audio"
)

// recordingResponse adds display strings to a recording.
type recordingResponse struct {
	*audio.Recording
	DurationText string `json:"durationText"`
	FileSizeText string `json:"fileSizeText"`
}

func toRecordingResponse(r *audio.Recording) recordingResponse {
	return recordingResponse{
		Recording:    r,
		DurationText: audio.FormatDuration(r.Duration),
		FileSizeText: audio.FormatFileSize(r.FileSize),
	}
}

// ListRecordings returns the recordings of a user, optionally of one subject.
// GET /api/v1/users/:user/recordings[?subject=]
func (s *APIV1Service) ListRecordings(c echo.Context) error {
	ctx := c.Request().Context()
	userID := c.Param("user")

	var (
		recordings []*audio.Recording
		err        error
	)
	if subject := c.QueryParam("subject"); subject != "" {
		recordings, err = s.Audio.ListRecordingsBySubject(ctx, userID, subject)
	} else {
		recordings, err = s.Audio.ListRecordings(ctx, userID)
	}
	if err != nil {
		return err
	}

	list := make([]recordingResponse, 0, len(recordings))
	for _, r := range recordings {
		list = append(list, toRecordingResponse(r))
	}
	return c.JSON(http.StatusOK, map[string]any{"recordings": list})
}

func (s *APIV1Service) GetRecordingStats(c echo.Context) error {
	stats, err := s.Audio.SubjectStats(c.Request().Context(), c.Param("user"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"subjects": stats})
}

// GetRecordingFeed renders the recordings of a user as RSS or Atom.
// GET /api/v1/users/:user/recordings/feed?format=rss|atom
func (s *APIV1Service) GetRecordingFeed(c echo.Context) error {
	format := c.QueryParam("format")
	baseURL := fmt.Sprintf("%s://%s", c.Scheme(), c.Request().Host)
	body, err := s.Audio.Feed(c.Request().Context(), c.Param("user"), baseURL, format)
	if err != nil {
		return err
	}
	contentType := "application/rss+xml; charset=utf-8"
	if format == audio.FeedAtom {
		contentType = "application/atom+xml; charset=utf-8"
	}
	return c.Blob(http.StatusOK, contentType, []byte(body))
}

// StartRecording opens a recording session.
// POST /api/v1/users/:user/recordings/start
func (s *APIV1Service) StartRecording(c echo.Context) error {
	handle := s.Audio.StartRecording(c.Request().Context(), c.Param("user"))
	return c.JSON(http.StatusCreated, map[string]string{"handle": handle})
}

// StopRecording stores the recording of a session.
// POST /api/v1/recordings/sessions/:handle/stop
func (s *APIV1Service) StopRecording(c echo.Context) error {
	recording, err := s.Audio.StopRecording(c.Request().Context(), c.Param("handle"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toRecordingResponse(recording))
}

// SaveRecordingMetadata patches a recording.
// PATCH /api/v1/recordings/:id
func (s *APIV1Service) SaveRecordingMetadata(c echo.Context) error {
	var metadata audio.Metadata
	if err := bind(c, &metadata); err != nil {
		return err
	}
	recording, err := s.Audio.SaveMetadata(c.Request().Context(), c.Param("id"), &metadata)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toRecordingResponse(recording))
}

func (s *APIV1Service) DeleteRecording(c echo.Context) error {
	if err := s.Audio.DeleteRecording(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
