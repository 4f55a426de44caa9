package v1

import (
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/server/service/audio"
)

type recordingBody struct {
	audio.Recording
	DurationText string `json:"durationText"`
	FileSizeText string `json:"fileSizeText"`
}

func TestListRecordings(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/users/user1/recordings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[map[string][]recordingBody](t, rec)["recordings"]
	require.Len(t, list, 5)
	for _, r := range list {
		assert.Equal(t, "user1", r.UserID)
		assert.Equal(t, audio.FormatDuration(r.Duration), r.DurationText)
		assert.NotEmpty(t, r.FileSizeText)
	}

	subject := list[0].Subject
	rec = ts.do(t, http.MethodGet, "/api/v1/users/user1/recordings?subject="+url.QueryEscape(subject), "")
	for _, r := range decode[map[string][]recordingBody](t, rec)["recordings"] {
		assert.Equal(t, subject, r.Subject)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/users/nobody/recordings", "")
	assert.Empty(t, decode[map[string][]recordingBody](t, rec)["recordings"])
}

func TestRecordingStats(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/users/user1/recordings/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[map[string][]audio.SubjectStats](t, rec)["subjects"]
	total := 0
	for _, s := range stats {
		total += s.TotalRecordings
	}
	assert.Equal(t, 5, total)
}

func TestRecordingLifecycle(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/users/user2/recordings/start", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	handle := decode[map[string]string](t, rec)["handle"]
	require.NotEmpty(t, handle)

	rec = ts.do(t, http.MethodPost, "/api/v1/recordings/sessions/"+handle+"/stop", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[recordingBody](t, rec)
	assert.Equal(t, audio.UntitledRecording, created.Title)
	assert.Equal(t, "user2", created.UserID)

	rec = ts.do(t, http.MethodPost, "/api/v1/recordings/sessions/"+handle+"/stop", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/api/v1/recordings/"+created.ID, `{"title":"Revisão","subject":"Física"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[recordingBody](t, rec)
	assert.Equal(t, "Revisão", updated.Title)
	assert.Equal(t, "Física", updated.Subject)

	rec = ts.do(t, http.MethodDelete, "/api/v1/recordings/"+created.ID, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(t, http.MethodPatch, "/api/v1/recordings/"+created.ID, `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordingFeed(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/users/user1/recordings/feed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/rss+xml"))
	assert.Contains(t, rec.Body.String(), "<rss")

	rec = ts.do(t, http.MethodGet, "/api/v1/users/user1/recordings/feed?format=atom", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "application/atom+xml"))
	assert.Contains(t, rec.Body.String(), "<feed")

	rec = ts.do(t, http.MethodGet, "/api/v1/users/user1/recordings/feed?format=json", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
