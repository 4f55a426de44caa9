package question

import (
	"context"
	"sort"

	"github.com/lithammer/shortuuid/v4"
)

// StartStudySession opens a session over the given questions and records it
// in the study history.
func (r *Repository) StartStudySession(ctx context.Context, userID string, ids []string) *Session {
	session := &Session{
		ID:              shortuuid.New(),
		UserID:          userID,
		Questions:       append([]string{}, ids...),
		StartTime:       r.now().UTC(),
		Recommendations: r.GetStudyRecommendations(ids),
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = session
	r.order = append(r.order, session.ID)
	r.saveHistory(ctx)

	r.logger.Info("study session started", "session_id", session.ID, "user_id", userID, "questions", len(ids))
	return session.clone()
}

// EndStudySession stamps the end time and score of a session. Unknown ids are
// a silent no-op reporting false; a session that already ended is returned
// unchanged.
func (r *Repository) EndStudySession(ctx context.Context, sessionID string, score float64) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		r.logger.Debug("end of unknown study session ignored", "session_id", sessionID)
		return nil, false
	}
	if session.EndTime == nil {
		end := r.now().UTC()
		session.EndTime = &end
		session.Score = &score
		r.saveHistory(ctx)
		r.logger.Info("study session ended", "session_id", sessionID, "score", score)
	}
	return session.clone(), true
}

// GetSession returns a session from the history.
func (r *Repository) GetSession(sessionID string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return session.clone(), true
}

// Sessions returns the study history of a user, newest first.
func (r *Repository) Sessions(userID string) []*Session {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Session, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if s := r.sessions[r.order[i]]; s.UserID == userID {
			list = append(list, s.clone())
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].StartTime.After(list[j].StartTime)
	})
	return list
}
