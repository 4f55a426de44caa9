package question

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/cel-go/cel"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/plugin/classifier"
)

const defaultPeriodicLimit = 5

// Options configures a Repository. Zero values select the built-in catalog,
// the default classifier and in-memory storage.
type Options struct {
	Entries    []catalog.Entry
	Categories []catalog.Category
	Classifier classifier.Classifier
	Storage    LocalStorage
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Repository holds the enriched question bank and the user's study state.
// It is safe for concurrent use.
type Repository struct {
	// Immutable after New.
	questions  []*Question
	index      map[string]*Question
	categories []catalog.Category

	mu        sync.RWMutex
	favorites map[string]bool
	sessions  map[string]*Session
	order     []string // session ids in insertion order
	closed    bool

	storage LocalStorage
	logger  *slog.Logger
	now     func() time.Time
}

// New builds the repository: it enriches every catalog entry once and then
// restores favorites, session history and counters from storage. Storage read
// failures are logged and ignored.
func New(ctx context.Context, opts Options) (*Repository, error) {
	entries := opts.Entries
	if entries == nil {
		entries = catalog.All()
	}
	categories := opts.Categories
	if categories == nil {
		categories = catalog.Categories()
	}
	if err := catalog.Validate(entries, categories); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	if opts.Classifier == nil {
		opts.Classifier = classifier.NewDefault()
	}
	if opts.Storage == nil {
		opts.Storage = NewMemoryStorage()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	r := &Repository{
		index:      make(map[string]*Question, len(entries)),
		categories: append([]catalog.Category(nil), categories...),
		favorites:  make(map[string]bool),
		sessions:   make(map[string]*Session),
		storage:    opts.Storage,
		logger:     opts.Logger,
		now:        opts.Clock,
	}
	r.initialize(ctx, entries, opts.Classifier)
	r.load(ctx)
	return r, nil
}

func (r *Repository) initialize(ctx context.Context, entries []catalog.Entry, c classifier.Classifier) {
	r.questions = make([]*Question, 0, len(entries))
	for _, entry := range entries {
		e := entry
		e.Options = append([]string(nil), entry.Options...)
		if d, ok := catalog.ParseDifficulty(string(e.Difficulty)); ok {
			e.Difficulty = d
		}
		result := c.Classify(ctx, &e)
		if result == nil {
			result = &classifier.Result{}
		}
		if result.Tags == nil {
			result.Tags = []string{}
		}
		if result.ExamType == "" {
			result.ExamType = classifier.ExamGeneral
		}
		if result.Recommendations == nil {
			result.Recommendations = []string{}
		}
		q := &Question{
			Entry:                e,
			Tags:                 result.Tags,
			ExamType:             result.ExamType,
			StudyRecommendations: result.Recommendations,
		}
		r.questions = append(r.questions, q)
		r.index[q.ID] = q
	}
	r.logger.Debug("question bank initialized", "questions", len(r.questions), "categories", len(r.categories))
}

// view returns a copy of q reflecting the favorites set. Caller holds r.mu.
func (r *Repository) view(q *Question) *Question {
	c := q.clone()
	c.IsFavorite = r.favorites[q.ID]
	return c
}

// GetQuestions returns the questions matching every present filter field, in
// catalog order. It fails only when the filter expression is invalid.
func (r *Repository) GetQuestions(filter Filter) ([]*Question, error) {
	var prg cel.Program
	if strings.TrimSpace(filter.Expression) != "" {
		var err error
		if prg, err = compileExpression(filter.Expression); err != nil {
			return nil, err
		}
	}
	f := filter.normalized()

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Question, 0)
	for _, q := range r.questions {
		favorite := r.favorites[q.ID]
		if !f.matches(q, favorite) {
			continue
		}
		if prg != nil {
			ok, err := evalExpression(prg, q, favorite)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		list = append(list, r.view(q))
	}
	return list, nil
}

// SearchQuestions matches query case-insensitively against question text,
// answer and tags.
func (r *Repository) SearchQuestions(query string) []*Question {
	term := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Question, 0)
	for _, q := range r.questions {
		if matchesTerm(q, term) {
			list = append(list, r.view(q))
		}
	}
	return list
}

// GetQuestion returns a single question by id.
func (r *Repository) GetQuestion(id string) (*Question, bool) {
	q, ok := r.index[id]
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.view(q), true
}

// ToggleFavorite flips the favorite state of a question and returns the new
// state. Unknown ids are ignored and report false.
func (r *Repository) ToggleFavorite(ctx context.Context, id string) bool {
	if _, ok := r.index[id]; !ok {
		r.logger.Debug("toggle favorite on unknown question", "question_id", id)
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	favorite := !r.favorites[id]
	if favorite {
		r.favorites[id] = true
	} else {
		delete(r.favorites, id)
	}
	r.saveFavorites(ctx)
	return favorite
}

// FavoriteQuestions returns the favorite questions in catalog order.
func (r *Repository) FavoriteQuestions() []*Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Question, 0, len(r.favorites))
	for _, q := range r.questions {
		if r.favorites[q.ID] {
			list = append(list, r.view(q))
		}
	}
	return list
}

// GetCategories returns the subject list.
func (r *Repository) GetCategories() []catalog.Category {
	return append([]catalog.Category(nil), r.categories...)
}

// GetAllTags returns every tag in use, deduplicated and sorted.
func (r *Repository) GetAllTags() []string {
	seen := make(map[string]bool)
	tags := make([]string, 0)
	for _, q := range r.questions {
		for _, t := range q.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}

// GetQuestionsByCategory returns the questions of one category id.
func (r *Repository) GetQuestionsByCategory(categoryID string) []*Question {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Question, 0)
	for _, q := range r.questions {
		if q.CategoryID == categoryID {
			list = append(list, r.view(q))
		}
	}
	return list
}

// GetQuestionsByTag returns the questions carrying tag, compared lowercased.
func (r *Repository) GetQuestionsByTag(tag string) []*Question {
	tag = strings.ToLower(tag)

	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Question, 0)
	for _, q := range r.questions {
		if q.hasTag(tag) {
			list = append(list, r.view(q))
		}
	}
	return list
}

// RecordAnswer updates the study counters of a question.
func (r *Repository) RecordAnswer(ctx context.Context, answer Answer) (*Stats, error) {
	q, ok := r.index[answer.QuestionID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrQuestionNotFound, answer.QuestionID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	q.StudyCount++
	if answer.Correct {
		q.CorrectAnswers++
	} else {
		q.WrongAnswers++
	}
	seconds := answer.Duration.Seconds()
	q.AverageTime += (seconds - q.AverageTime) / float64(q.StudyCount)
	now := r.now()
	q.LastStudied = &now

	r.saveStats(ctx)
	return statsOf(q), nil
}

// GetQuestionStats returns the counters of a question.
func (r *Repository) GetQuestionStats(id string) (*Stats, bool) {
	q, ok := r.index[id]
	if !ok {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return statsOf(q), true
}

func statsOf(q *Question) *Stats {
	s := &Stats{
		StudyCount:     q.StudyCount,
		CorrectAnswers: q.CorrectAnswers,
		WrongAnswers:   q.WrongAnswers,
		AverageTime:    q.AverageTime,
	}
	if q.StudyCount > 0 {
		s.Accuracy = float64(q.CorrectAnswers) / float64(q.StudyCount) * 100
	}
	if q.LastStudied != nil {
		t := *q.LastStudied
		s.LastStudied = &t
	}
	return s
}

// GetQuestionsForPeriodicStudy returns questions due for review: favorites
// first, then questions studied at least once, in catalog order within each
// group. A non-positive limit selects the default of 5.
func (r *Repository) GetQuestionsForPeriodicStudy(userID string, limit int) []*Question {
	if limit <= 0 {
		limit = defaultPeriodicLimit
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var favorites, studied []*Question
	for _, q := range r.questions {
		switch {
		case r.favorites[q.ID]:
			favorites = append(favorites, r.view(q))
		case q.StudyCount > 0:
			studied = append(studied, r.view(q))
		}
	}
	list := append(favorites, studied...)
	if len(list) > limit {
		list = list[:limit]
	}
	r.logger.Debug("periodic study selection", "user_id", userID, "count", len(list))
	if list == nil {
		list = []*Question{}
	}
	return list
}

// Close writes the user state a final time. Further changes stay in memory only.
func (r *Repository) Close(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.saveFavorites(ctx)
	r.saveHistory(ctx)
	r.saveStats(ctx)
	r.closed = true
	return nil
}
