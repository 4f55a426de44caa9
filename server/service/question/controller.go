package question

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
)

// DefaultLoadError is reported when loading fails without an error value.
const DefaultLoadError = "Erro ao carregar questões"

// Source is the query surface consumed by the controllers. *Repository implements it.
type Source interface {
	GetQuestions(filter Filter) ([]*Question, error)
	SearchQuestions(query string) []*Question
	ToggleFavorite(ctx context.Context, id string) bool
	FavoriteQuestions() []*Question
	GetQuestion(id string) (*Question, bool)
	StartStudySession(ctx context.Context, userID string, ids []string) *Session
	EndStudySession(ctx context.Context, sessionID string, score float64) (*Session, bool)
}

var _ Source = (*Repository)(nil)

// State is a snapshot of a Controller.
type State struct {
	Questions []*Question
	Loading   bool
	Error     string
	Filters   Filter
}

// observable fans state snapshots out to subscribers.
type observable[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(T)
}

func (o *observable[T]) subscribe(fn func(T)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.subs == nil {
		o.subs = make(map[int]func(T))
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = fn
	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subs, id)
	}
}

func (o *observable[T]) publish(v T) {
	o.mu.Lock()
	subs := make([]func(T), 0, len(o.subs))
	for _, fn := range o.subs {
		subs = append(subs, fn)
	}
	o.mu.Unlock()
	for _, fn := range subs {
		fn(v)
	}
}

// Controller exposes the question list as a loading/data/error state machine.
type Controller struct {
	source Source
	logger *slog.Logger

	mu    sync.Mutex
	state State
	obs   observable[State]
}

// NewController creates a controller and performs the initial load with filters.
func NewController(ctx context.Context, source Source, filters Filter) *Controller {
	c := &Controller{
		source: source,
		logger: slog.Default(),
		state:  State{Loading: true, Filters: filters},
	}
	c.Refresh(ctx)
	return c
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) snapshot() State {
	s := c.state
	s.Questions = append([]*Question(nil), c.state.Questions...)
	return s
}

// Subscribe registers fn for every state change. The returned func unsubscribes.
func (c *Controller) Subscribe(fn func(State)) func() {
	return c.obs.subscribe(fn)
}

// SetFilters merges filters into the active ones and reloads.
func (c *Controller) SetFilters(ctx context.Context, filters Filter) {
	c.mu.Lock()
	c.state.Filters = c.state.Filters.Merge(filters)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// ClearFilters unsets the named facets, keeps the others, and reloads.
func (c *Controller) ClearFilters(ctx context.Context, fields ...FilterField) {
	c.mu.Lock()
	c.state.Filters = c.state.Filters.Without(fields...)
	c.mu.Unlock()
	c.Refresh(ctx)
}

// ResetFilters clears the active filters and reloads.
func (c *Controller) ResetFilters(ctx context.Context) {
	c.mu.Lock()
	c.state.Filters = Filter{}
	c.mu.Unlock()
	c.Refresh(ctx)
}

// Refresh reloads the list with the active filters.
func (c *Controller) Refresh(ctx context.Context) {
	c.mu.Lock()
	filters := c.state.Filters
	c.mu.Unlock()

	c.load(ctx, func() ([]*Question, error) {
		return c.source.GetQuestions(filters)
	})
}

// Search replaces the list with standalone search results. An empty or blank
// query restores the filtered list instead; search and filters never combine.
func (c *Controller) Search(ctx context.Context, query string) {
	if strings.TrimSpace(query) == "" {
		c.Refresh(ctx)
		return
	}
	c.load(ctx, func() ([]*Question, error) {
		return c.source.SearchQuestions(query), nil
	})
}

// ToggleFavorite flips a favorite and patches the mirrored list in place.
func (c *Controller) ToggleFavorite(ctx context.Context, id string) bool {
	favorite := c.source.ToggleFavorite(ctx, id)

	c.mu.Lock()
	for i, q := range c.state.Questions {
		if q.ID == id {
			patched := q.clone()
			patched.IsFavorite = favorite
			c.state.Questions[i] = patched
		}
	}
	s := c.snapshot()
	c.mu.Unlock()

	c.obs.publish(s)
	return favorite
}

func (c *Controller) load(ctx context.Context, fetch func() ([]*Question, error)) {
	c.mu.Lock()
	c.state.Loading = true
	c.state.Error = ""
	s := c.snapshot()
	c.mu.Unlock()
	c.obs.publish(s)

	questions, err := safeFetch(ctx, fetch)

	c.mu.Lock()
	if err != nil {
		c.state.Error = err.Error()
		if c.state.Error == "" {
			c.state.Error = DefaultLoadError
		}
		c.logger.Warn("failed to load questions", "error", err)
	} else {
		c.state.Questions = questions
	}
	c.state.Loading = false
	s = c.snapshot()
	c.mu.Unlock()
	c.obs.publish(s)
}

// safeFetch runs fetch, turning panics into errors.
func safeFetch(ctx context.Context, fetch func() ([]*Question, error)) (list []*Question, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = errors.New(DefaultLoadError)
			}
		}
	}()
	return fetch()
}

// FavoritesState is a snapshot of a FavoritesController.
type FavoritesState struct {
	Favorites []*Question
	Loading   bool
}

// FavoritesController keeps the list of favorite questions.
type FavoritesController struct {
	source Source
	logger *slog.Logger

	mu        sync.Mutex
	favorites []*Question
	loading   bool
	obs       observable[FavoritesState]
}

func NewFavoritesController(ctx context.Context, source Source) *FavoritesController {
	c := &FavoritesController{source: source, logger: slog.Default()}
	c.Refresh(ctx)
	return c
}

func (c *FavoritesController) State() FavoritesState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *FavoritesController) snapshot() FavoritesState {
	return FavoritesState{Favorites: append([]*Question(nil), c.favorites...), Loading: c.loading}
}

func (c *FavoritesController) Subscribe(fn func(FavoritesState)) func() {
	return c.obs.subscribe(fn)
}

// Refresh reloads favorites. Failures are logged and keep the previous list.
func (c *FavoritesController) Refresh(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	list, err := safeFetch(ctx, func() ([]*Question, error) {
		return c.source.FavoriteQuestions(), nil
	})

	c.mu.Lock()
	if err != nil {
		c.logger.Error("failed to load favorites", "error", err)
	} else {
		c.favorites = list
	}
	c.loading = false
	s := c.snapshot()
	c.mu.Unlock()
	c.obs.publish(s)
}

// ToggleFavorite flips a favorite, appending or removing it locally.
func (c *FavoritesController) ToggleFavorite(ctx context.Context, id string) bool {
	favorite := c.source.ToggleFavorite(ctx, id)

	c.mu.Lock()
	if favorite {
		if q, ok := c.source.GetQuestion(id); ok {
			q.IsFavorite = true
			c.favorites = append(c.favorites, q)
		}
	} else {
		kept := c.favorites[:0:0]
		for _, q := range c.favorites {
			if q.ID != id {
				kept = append(kept, q)
			}
		}
		c.favorites = kept
	}
	s := c.snapshot()
	c.mu.Unlock()

	c.obs.publish(s)
	return favorite
}

// SessionController drives one study session at a time for a fixed user.
type SessionController struct {
	source Source
	userID string

	mu      sync.Mutex
	session *Session
}

func NewSessionController(source Source, userID string) *SessionController {
	return &SessionController{source: source, userID: userID}
}

// Start opens a new session, replacing the current one.
func (c *SessionController) Start(ctx context.Context, ids []string) *Session {
	session := c.source.StartStudySession(ctx, c.userID, ids)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = session
	return session.clone()
}

// Session returns the active session, or nil.
func (c *SessionController) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	return c.session.clone()
}

// Recommendations returns the recommendations of the active session.
func (c *SessionController) Recommendations() []Recommendation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return []Recommendation{}
	}
	return c.session.clone().Recommendations
}

// End closes the active session with a score. Without an active session it
// does nothing and returns nil.
func (c *SessionController) End(ctx context.Context, score float64) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}
	ended, _ := c.source.EndStudySession(ctx, c.session.ID, score)
	c.session = nil
	return ended
}
