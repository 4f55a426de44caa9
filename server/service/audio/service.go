// Package audio manages recorded study notes. Capturing audio is simulated:
// stopping a recording stores metadata with a synthetic duration and size.
package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/store"
)

const (
	minDuration  = 60
	durationSpan = 600
	minFileSize  = 1_000_000
	fileSizeSpan = 5_000_000
)

var (
	// ErrRecordingNotFound is returned for an unknown recording id.
	ErrRecordingNotFound = errors.New("recording not found")
	// ErrSessionNotFound is returned when stopping an unknown recording session.
	ErrSessionNotFound = errors.New("recording session not found")
)

// RecordingStore is the persistence needed by the service. *store.Store implements it.
type RecordingStore interface {
	CreateAudioRecording(ctx context.Context, create *store.AudioRecording) (*store.AudioRecording, error)
	ListAudioRecordings(ctx context.Context, find *store.FindAudioRecording) ([]*store.AudioRecording, error)
	GetAudioRecording(ctx context.Context, uid string) (*store.AudioRecording, error)
	UpdateAudioRecording(ctx context.Context, update *store.UpdateAudioRecording) (*store.AudioRecording, error)
	DeleteAudioRecording(ctx context.Context, delete *store.DeleteAudioRecording) error
}

type session struct {
	userID    string
	startedAt time.Time
}

// Service serves audio recordings.
type Service struct {
	store      RecordingStore
	categories []catalog.Category
	logger     *slog.Logger
	now        func() time.Time

	mu       sync.Mutex
	rand     *rand.Rand
	sessions map[string]session
}

// NewService creates an audio service over recordings.
func NewService(recordings RecordingStore) *Service {
	return &Service{
		store:      recordings,
		categories: catalog.Categories(),
		logger:     slog.Default(),
		now:        time.Now,
		rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
		sessions:   make(map[string]session),
	}
}

// ListRecordings returns the recordings of a user, newest first.
func (s *Service) ListRecordings(ctx context.Context, userID string) ([]*Recording, error) {
	return s.list(ctx, &store.FindAudioRecording{UserID: &userID})
}

// ListRecordingsBySubject returns the recordings of a user for one subject name.
func (s *Service) ListRecordingsBySubject(ctx context.Context, userID, subject string) ([]*Recording, error) {
	return s.list(ctx, &store.FindAudioRecording{UserID: &userID, Subject: &subject})
}

func (s *Service) list(ctx context.Context, find *store.FindAudioRecording) ([]*Recording, error) {
	list, err := s.store.ListAudioRecordings(ctx, find)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	recordings := make([]*Recording, 0, len(list))
	for _, r := range list {
		recordings = append(recordings, recordingFromStore(r))
	}
	return recordings, nil
}

// SubjectStats returns one entry per subject, in subject order, including
// subjects without recordings. Recordings of unknown subjects are ignored.
func (s *Service) SubjectStats(ctx context.Context, userID string) ([]*SubjectStats, error) {
	recordings, err := s.ListRecordings(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := make([]*SubjectStats, 0, len(s.categories))
	byName := make(map[string]*SubjectStats, len(s.categories))
	for _, c := range s.categories {
		st := &SubjectStats{SubjectID: c.ID, SubjectName: c.Name, Topics: []string{}}
		stats = append(stats, st)
		byName[c.Name] = st
	}

	for _, r := range recordings {
		st, ok := byName[r.Subject]
		if !ok {
			continue
		}
		st.TotalRecordings++
		st.TotalDuration += r.Duration
		if r.Topic != "" && !contains(st.Topics, r.Topic) {
			st.Topics = append(st.Topics, r.Topic)
		}
		if st.LastRecording == nil || r.CreatedAt.After(*st.LastRecording) {
			created := r.CreatedAt
			st.LastRecording = &created
		}
	}
	return stats, nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// StartRecording opens a recording session for a user and returns its handle.
func (s *Service) StartRecording(_ context.Context, userID string) string {
	handle := shortuuid.New()

	s.mu.Lock()
	s.sessions[handle] = session{userID: userID, startedAt: s.now()}
	s.mu.Unlock()

	s.logger.Debug("recording started", "user_id", userID, "handle", handle)
	return handle
}

// StopRecording closes a session and stores the resulting recording.
func (s *Service) StopRecording(ctx context.Context, handle string) (*Recording, error) {
	s.mu.Lock()
	sess, ok := s.sessions[handle]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, handle)
	}
	delete(s.sessions, handle)
	duration := minDuration + s.rand.Intn(durationSpan)
	size := minFileSize + s.rand.Int63n(fileSizeSpan)
	s.mu.Unlock()

	now := s.now().Unix()
	created, err := s.store.CreateAudioRecording(ctx, &store.AudioRecording{
		UID:         shortuuid.New(),
		UserID:      sess.userID,
		Title:       UntitledRecording,
		Duration:    int32(duration),
		FileSize:    size,
		IsProcessed: true,
		CreatedTs:   now,
		UpdatedTs:   now,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}
	s.logger.Info("recording stored", "user_id", sess.userID, "recording_id", created.UID, "duration", duration)
	return recordingFromStore(created), nil
}

// SaveMetadata patches a recording and refreshes its update time.
func (s *Service) SaveMetadata(ctx context.Context, id string, metadata *Metadata) (*Recording, error) {
	updated, err := s.store.UpdateAudioRecording(ctx, &store.UpdateAudioRecording{
		UID:       id,
		Title:     metadata.Title,
		Subject:   metadata.Subject,
		Topic:     metadata.Topic,
		AudioURL:  metadata.AudioURL,
		Notes:     metadata.Notes,
		UpdatedTs: s.now().Unix(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update recording: %w", err)
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: %s", ErrRecordingNotFound, id)
	}
	return recordingFromStore(updated), nil
}

// DeleteRecording removes a recording.
func (s *Service) DeleteRecording(ctx context.Context, id string) error {
	existing, err := s.store.GetAudioRecording(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get recording: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrRecordingNotFound, id)
	}
	if err := s.store.DeleteAudioRecording(ctx, &store.DeleteAudioRecording{UID: id}); err != nil {
		return fmt.Errorf("failed to delete recording: %w", err)
	}
	return nil
}
