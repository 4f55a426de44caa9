package v1

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/server/service/question"
)

type listBody struct {
	Questions []*question.Question `json:"questions"`
	Total     int                  `json:"total"`
}

func TestListQuestionsFilters(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/questions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[listBody](t, rec)
	assert.Equal(t, len(catalog.All()), all.Total)

	rec = ts.do(t, http.MethodGet, "/api/v1/questions?categoryId=1&difficulty=easy", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[listBody](t, rec)
	assert.Equal(t, len(body.Questions), body.Total)
	for _, q := range body.Questions {
		assert.Equal(t, "1", q.CategoryID)
		assert.Equal(t, catalog.DifficultyEasy, q.Difficulty)
	}

	rec = ts.do(t, http.MethodGet, "/api/v1/questions?isFavorite=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	expr := url.QueryEscape(`question_type == "Verdadeiro ou Falso"`)
	rec = ts.do(t, http.MethodGet, "/api/v1/questions?expr="+expr, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode[listBody](t, rec)
	require.Equal(t, 2, body.Total)
	for _, q := range body.Questions {
		assert.Equal(t, catalog.TypeTrueFalse, q.Type)
	}
}

func TestSearchQuestions(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/questions/search?q=%20", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/questions/search?q=MATEM%C3%81TICA", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Positive(t, decode[listBody](t, rec).Total)

	rec = ts.do(t, http.MethodGet, "/api/v1/questions/search?q=f%C3%B3rmula", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[struct {
		listBody
		Hits []question.SearchHit `json:"hits"`
	}](t, rec)
	require.Len(t, body.Hits, body.Total)
	for i, hit := range body.Hits {
		assert.Equal(t, body.Questions[i].ID, hit.QuestionID)
		assert.NotEmpty(t, hit.Snippet)
	}
}

func TestFavoriteFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/questions/mat-01/favorite", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[map[string]bool](t, rec)["isFavorite"])

	rec = ts.do(t, http.MethodGet, "/api/v1/favorites", "")
	favorites := decode[listBody](t, rec)
	require.Len(t, favorites.Questions, 1)
	assert.Equal(t, "mat-01", favorites.Questions[0].ID)
	assert.True(t, favorites.Questions[0].IsFavorite)

	rec = ts.do(t, http.MethodPost, "/api/v1/questions/mat-01/favorite", "")
	assert.False(t, decode[map[string]bool](t, rec)["isFavorite"])

	rec = ts.do(t, http.MethodPost, "/api/v1/questions/unknown/favorite", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRecordAnswer(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/questions/mat-01/answers", `{"correct":true,"duration":30}`)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = ts.do(t, http.MethodPost, "/api/v1/questions/mat-01/answers", `{"correct":false,"duration":10}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/questions/mat-01/stats", "")
	stats := decode[question.Stats](t, rec)
	assert.Equal(t, 2, stats.StudyCount)
	assert.Equal(t, 1, stats.CorrectAnswers)
	assert.InDelta(t, 50.0, stats.Accuracy, 0.001)
	assert.InDelta(t, 20.0, stats.AverageTime, 0.001)

	rec = ts.do(t, http.MethodPost, "/api/v1/questions/mat-01/answers", `{"correct":true,"duration":-1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/questions/nope/answers", `{"correct":true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/users/user1/periodic-study?limit=1", "")
	periodic := decode[listBody](t, rec)
	require.Len(t, periodic.Questions, 1)
	assert.Equal(t, "mat-01", periodic.Questions[0].ID)
}

func TestCategoriesAndTags(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/v1/categories", "")
	categories := decode[map[string][]catalog.Category](t, rec)["categories"]
	assert.Equal(t, catalog.Categories(), categories)

	rec = ts.do(t, http.MethodGet, "/api/v1/categories/1/questions", "")
	assert.Positive(t, decode[listBody](t, rec).Total)

	rec = ts.do(t, http.MethodGet, "/api/v1/categories/999/questions", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/tags", "")
	tags := decode[map[string][]string](t, rec)["tags"]
	assert.Contains(t, tags, "matemática")

	rec = ts.do(t, http.MethodGet, "/api/v1/tags/MATEM%C3%81TICA/questions", "")
	assert.Positive(t, decode[listBody](t, rec).Total)
}

func TestStudySessionFlow(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/sessions", `{"questionIds":["mat-01"]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions", `{"userId":"user1","questionIds":["mat-01","mat-02"]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[question.Session](t, rec)
	assert.Equal(t, "user1", session.UserID)
	assert.Equal(t, []string{"mat-01", "mat-02"}, session.Questions)
	assert.Nil(t, session.EndTime)

	rec = ts.do(t, http.MethodGet, "/api/v1/sessions/"+session.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/"+session.ID+"/end", `{"score":80}`)
	require.Equal(t, http.StatusOK, rec.Code)
	ended := decode[question.Session](t, rec)
	require.NotNil(t, ended.Score)
	assert.InDelta(t, 80.0, *ended.Score, 0.001)
	assert.NotNil(t, ended.EndTime)

	rec = ts.do(t, http.MethodPost, "/api/v1/sessions/missing/end", `{"score":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/v1/users/user1/sessions", "")
	sessions := decode[map[string][]question.Session](t, rec)["sessions"]
	require.Len(t, sessions, 1)
	assert.Equal(t, session.ID, sessions[0].ID)
}

func TestStudyRecommendations(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/v1/recommendations", `{"questionIds":["mat-01"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]question.Recommendation](t, rec)
	assert.NotEmpty(t, body["recommendations"])
}
