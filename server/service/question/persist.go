package question

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

type statsRecord struct {
	StudyCount     int        `json:"studyCount"`
	CorrectAnswers int        `json:"correctAnswers"`
	WrongAnswers   int        `json:"wrongAnswers"`
	AverageTime    float64    `json:"averageTime"`
	LastStudied    *time.Time `json:"lastStudied,omitempty"`
}

// load restores user state. Failures leave the defaults in place.
func (r *Repository) load(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if raw, ok := r.getItem(ctx, FavoritesKey); ok {
		var ids []string
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			r.logger.Warn("failed to decode favorites", "error", err)
		}
		for _, id := range ids {
			if _, known := r.index[id]; known {
				r.favorites[id] = true
			} else {
				r.logger.Debug("dropping favorite of unknown question", "question_id", id)
			}
		}
	}

	if raw, ok := r.getItem(ctx, HistoryKey); ok {
		order, sessions, err := decodeHistory(raw)
		if err != nil {
			r.logger.Warn("failed to decode study history", "error", err)
		} else {
			r.order, r.sessions = order, sessions
		}
	}

	if raw, ok := r.getItem(ctx, StatsKey); ok {
		records := make(map[string]statsRecord)
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			r.logger.Warn("failed to decode question stats", "error", err)
		}
		for id, rec := range records {
			q, known := r.index[id]
			if !known {
				continue
			}
			q.StudyCount = rec.StudyCount
			q.CorrectAnswers = rec.CorrectAnswers
			q.WrongAnswers = rec.WrongAnswers
			q.AverageTime = rec.AverageTime
			q.LastStudied = rec.LastStudied
		}
	}
}

func (r *Repository) getItem(ctx context.Context, key string) (string, bool) {
	raw, ok, err := r.storage.GetItem(ctx, key)
	if err != nil {
		r.logger.Warn("failed to read user state", "key", key, "error", err)
		return "", false
	}
	return raw, ok && raw != ""
}

// setItem writes one key. Errors are logged, never returned. Caller holds r.mu.
func (r *Repository) setItem(ctx context.Context, key string, value any) {
	if r.closed {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Warn("failed to encode user state", "key", key, "error", err)
		return
	}
	if err := r.storage.SetItem(ctx, key, string(data)); err != nil {
		r.logger.Warn("failed to persist user state", "key", key, "error", err)
	}
}

func (r *Repository) saveFavorites(ctx context.Context) {
	ids := make([]string, 0, len(r.favorites))
	for id := range r.favorites {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	r.setItem(ctx, FavoritesKey, ids)
}

// saveHistory writes the history as an array of [id, session] pairs.
func (r *Repository) saveHistory(ctx context.Context) {
	pairs := make([][2]any, 0, len(r.order))
	for _, id := range r.order {
		pairs = append(pairs, [2]any{id, r.sessions[id]})
	}
	r.setItem(ctx, HistoryKey, pairs)
}

func (r *Repository) saveStats(ctx context.Context) {
	records := make(map[string]statsRecord)
	for _, q := range r.questions {
		if q.StudyCount == 0 {
			continue
		}
		records[q.ID] = statsRecord{
			StudyCount:     q.StudyCount,
			CorrectAnswers: q.CorrectAnswers,
			WrongAnswers:   q.WrongAnswers,
			AverageTime:    q.AverageTime,
			LastStudied:    q.LastStudied,
		}
	}
	r.setItem(ctx, StatsKey, records)
}

func decodeHistory(raw string) ([]string, map[string]*Session, error) {
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &pairs); err != nil {
		return nil, nil, err
	}

	order := make([]string, 0, len(pairs))
	sessions := make(map[string]*Session, len(pairs))
	for i, pair := range pairs {
		var id string
		if err := json.Unmarshal(pair[0], &id); err != nil {
			return nil, nil, fmt.Errorf("history entry %d: %w", i, err)
		}
		session := &Session{}
		if err := json.Unmarshal(pair[1], session); err != nil {
			return nil, nil, fmt.Errorf("history entry %s: %w", id, err)
		}
		if session.ID == "" {
			session.ID = id
		}
		if _, dup := sessions[id]; !dup {
			order = append(order, id)
		}
		sessions[id] = session
	}
	return order, sessions, nil
}
