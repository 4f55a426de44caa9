package question

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/internal/catalog"
)

func TestControllerInitialLoad(t *testing.T) {
	r := newTestRepository(t, nil)

	c := NewController(context.Background(), r, Filter{CategoryID: "2"})
	s := c.State()
	assert.False(t, s.Loading)
	assert.Empty(t, s.Error)
	assert.Equal(t, []string{"fis-01", "fis-02", "fis-03"}, ids(s.Questions))
}

func TestControllerSetFiltersMerges(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	c := NewController(ctx, r, Filter{})

	c.SetFilters(ctx, Filter{CategoryID: "1"})
	c.SetFilters(ctx, Filter{Difficulty: catalog.DifficultyHard})

	s := c.State()
	assert.Equal(t, "1", s.Filters.CategoryID)
	assert.Equal(t, catalog.DifficultyHard, s.Filters.Difficulty)
	assert.Equal(t, []string{"mat-03", "mat-04"}, ids(s.Questions))

	c.ResetFilters(ctx)
	assert.Len(t, c.State().Questions, len(catalog.All()))
}

func TestControllerClearFiltersKeepsOtherFacets(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	r.ToggleFavorite(ctx, "mat-01")
	r.ToggleFavorite(ctx, "fis-01")
	c := NewController(ctx, r, Filter{})

	c.SetFilters(ctx, Filter{CategoryID: "1"})
	c.SetFilters(ctx, Filter{IsFavorite: boolPtr(true)})
	assert.Equal(t, []string{"mat-01"}, ids(c.State().Questions))

	c.ClearFilters(ctx, FieldIsFavorite)
	s := c.State()
	assert.Nil(t, s.Filters.IsFavorite)
	assert.Equal(t, "1", s.Filters.CategoryID)
	assert.Equal(t, []string{"mat-01", "mat-02", "mat-03", "mat-04"}, ids(s.Questions))

	c.SetFilters(ctx, Filter{IsFavorite: boolPtr(true)})
	c.ClearFilters(ctx, FieldCategoryID)
	s = c.State()
	assert.Empty(t, s.Filters.CategoryID)
	assert.Equal(t, []string{"mat-01", "fis-01"}, ids(s.Questions))
}

func TestControllerSearchBypassesFilters(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	c := NewController(ctx, r, Filter{CategoryID: "1"})

	c.Search(ctx, "física")
	assert.Equal(t, []string{"fis-01", "fis-02", "fis-03"}, ids(c.State().Questions))

	c.Search(ctx, "   ")
	assert.Equal(t, []string{"mat-01", "mat-02", "mat-03", "mat-04"}, ids(c.State().Questions))
}

func TestControllerToggleFavoriteUpdatesMirror(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	c := NewController(ctx, r, Filter{CategoryID: "3"})

	var mu sync.Mutex
	var updates []State
	cancel := c.Subscribe(func(s State) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, s)
	})

	assert.True(t, c.ToggleFavorite(ctx, "qui-02"))
	s := c.State()
	for _, q := range s.Questions {
		assert.Equal(t, q.ID == "qui-02", q.IsFavorite, q.ID)
	}
	mu.Lock()
	assert.Len(t, updates, 1)
	mu.Unlock()

	cancel()
	assert.False(t, c.ToggleFavorite(ctx, "qui-02"))
	mu.Lock()
	assert.Len(t, updates, 1)
	mu.Unlock()
	assert.False(t, c.State().Questions[1].IsFavorite)
}

func TestControllerInvalidExpressionSetsError(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	c := NewController(ctx, r, Filter{})
	before := len(c.State().Questions)

	c.SetFilters(ctx, Filter{Expression: "difficulty +"})
	s := c.State()
	assert.False(t, s.Loading)
	assert.Contains(t, s.Error, "invalid filter expression")
	assert.Len(t, s.Questions, before)
}

type panickingSource struct {
	*Repository
	value any
}

func (p panickingSource) GetQuestions(Filter) ([]*Question, error) {
	panic(p.value)
}

func TestControllerRecoversFromPanics(t *testing.T) {
	r := newTestRepository(t, nil)

	c := NewController(context.Background(), panickingSource{Repository: r, value: "boom"}, Filter{})
	assert.Equal(t, DefaultLoadError, c.State().Error)

	c = NewController(context.Background(), panickingSource{Repository: r, value: errors.New("disk on fire")}, Filter{})
	assert.Equal(t, "disk on fire", c.State().Error)
	assert.False(t, c.State().Loading)
}

func TestControllerCancelledContext(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewController(ctx, r, Filter{})
	assert.Equal(t, context.Canceled.Error(), c.State().Error)
	assert.Empty(t, c.State().Questions)
}

func TestControllerPublishesLoadingTransitions(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	c := NewController(ctx, r, Filter{})

	var loading []bool
	c.Subscribe(func(s State) { loading = append(loading, s.Loading) })
	c.Refresh(ctx)
	assert.Equal(t, []bool{true, false}, loading)
}

func TestFavoritesController(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	r.ToggleFavorite(ctx, "soc-01")

	c := NewFavoritesController(ctx, r)
	require.Equal(t, []string{"soc-01"}, ids(c.State().Favorites))

	assert.True(t, c.ToggleFavorite(ctx, "geo-02"))
	s := c.State()
	assert.Equal(t, []string{"soc-01", "geo-02"}, ids(s.Favorites))
	assert.True(t, s.Favorites[1].IsFavorite)

	assert.False(t, c.ToggleFavorite(ctx, "soc-01"))
	assert.Equal(t, []string{"geo-02"}, ids(c.State().Favorites))

	assert.False(t, c.ToggleFavorite(ctx, "ghost"))
	assert.Equal(t, []string{"geo-02"}, ids(c.State().Favorites))
}

func TestSessionController(t *testing.T) {
	r := newTestRepository(t, nil)
	ctx := context.Background()
	c := NewSessionController(r, "current-user")

	assert.Nil(t, c.End(ctx, 50))
	assert.Empty(t, c.Recommendations())

	session := c.Start(ctx, []string{"mat-03", "mat-04", "fis-03"})
	require.NotNil(t, c.Session())
	assert.Equal(t, "current-user", session.UserID)
	recs := c.Recommendations()
	require.NotEmpty(t, recs)
	assert.Equal(t, "Conceitos Avançados", recs[len(recs)-1].Topic)

	ended := c.End(ctx, 72)
	require.NotNil(t, ended)
	assert.Equal(t, 72.0, *ended.Score)
	assert.Nil(t, c.Session())
	assert.Empty(t, c.Recommendations())

	history := r.Sessions("current-user")
	require.Len(t, history, 1)
	assert.NotNil(t, history[0].EndTime)
}
