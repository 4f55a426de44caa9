package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/plugin/classifier"
	apperrors "github.com/hrygo/smartstudy/server/internal/errors"
	"github.com/hrygo/smartstudy/server/service/question"
)

type questionsResponse struct {
	Questions []*question.Question `json:"questions"`
	Total     int                  `json:"total"`
}

type searchResponse struct {
	questionsResponse
	Hits []question.SearchHit `json:"hits"`
}

func listOf(questions []*question.Question) questionsResponse {
	return questionsResponse{Questions: questions, Total: len(questions)}
}

// parseFilter reads a question filter from the query string. Tags may be
// repeated or comma separated.
func parseFilter(c echo.Context) (question.Filter, error) {
	f := question.Filter{
		Category:   c.QueryParam("category"),
		CategoryID: c.QueryParam("categoryId"),
		Type:       c.QueryParam("type"),
		SearchTerm: c.QueryParam("q"),
		Expression: c.QueryParam("expr"),
	}

	if v := c.QueryParam("difficulty"); v != "" {
		d, ok := catalog.ParseDifficulty(v)
		if !ok {
			return f, apperrors.InvalidArgument("unknown difficulty: " + v)
		}
		f.Difficulty = d
	}
	if v := c.QueryParam("examType"); v != "" {
		e, ok := classifier.ParseExamType(v)
		if !ok {
			return f, apperrors.InvalidArgument("unknown exam type: " + v)
		}
		f.ExamType = e
	}
	if v := c.QueryParam("isFavorite"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return f, apperrors.InvalidArgument("isFavorite must be a boolean")
		}
		f.IsFavorite = &b
	}
	for _, raw := range c.QueryParams()["tags"] {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Tags = append(f.Tags, tag)
			}
		}
	}
	return f, nil
}

// ListQuestions returns the questions matching the query filter.
// GET /api/v1/questions
func (s *APIV1Service) ListQuestions(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}
	questions, err := s.Questions.GetQuestions(filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listOf(questions))
}

// SearchQuestions runs a standalone text search.
// GET /api/v1/questions/search?q=
func (s *APIV1Service) SearchQuestions(c echo.Context) error {
	query := c.QueryParam("q")
	if strings.TrimSpace(query) == "" {
		return apperrors.InvalidArgument("q is required")
	}
	questions := s.Questions.SearchQuestions(query)
	return c.JSON(http.StatusOK, searchResponse{
		questionsResponse: listOf(questions),
		Hits:              question.Hits(questions, query),
	})
}

func (s *APIV1Service) GetQuestion(c echo.Context) error {
	id := c.Param("id")
	q, ok := s.Questions.GetQuestion(id)
	if !ok {
		return apperrors.NotFound("question", id)
	}
	return c.JSON(http.StatusOK, q)
}

func (s *APIV1Service) GetQuestionStats(c echo.Context) error {
	id := c.Param("id")
	stats, ok := s.Questions.GetQuestionStats(id)
	if !ok {
		return apperrors.NotFound("question", id)
	}
	return c.JSON(http.StatusOK, stats)
}

// ToggleFavorite flips the favorite state of a question.
// POST /api/v1/questions/:id/favorite
func (s *APIV1Service) ToggleFavorite(c echo.Context) error {
	id := c.Param("id")
	if _, ok := s.Questions.GetQuestion(id); !ok {
		return apperrors.NotFound("question", id)
	}
	favorite := s.Questions.ToggleFavorite(c.Request().Context(), id)
	return c.JSON(http.StatusOK, map[string]bool{"isFavorite": favorite})
}

type answerRequest struct {
	Correct bool    `json:"correct"`
	Seconds float64 `json:"duration"` // seconds
}

// RecordAnswer updates the counters of a question.
// POST /api/v1/questions/:id/answers
func (s *APIV1Service) RecordAnswer(c echo.Context) error {
	var req answerRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.Seconds < 0 {
		return apperrors.InvalidArgument("duration must not be negative")
	}
	stats, err := s.Questions.RecordAnswer(c.Request().Context(), question.Answer{
		QuestionID: c.Param("id"),
		Correct:    req.Correct,
		Duration:   time.Duration(req.Seconds * float64(time.Second)),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *APIV1Service) ListFavorites(c echo.Context) error {
	return c.JSON(http.StatusOK, listOf(s.Questions.FavoriteQuestions()))
}

func (s *APIV1Service) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"categories": s.Questions.GetCategories()})
}

func (s *APIV1Service) ListQuestionsByCategory(c echo.Context) error {
	id := c.Param("id")
	for _, category := range s.Questions.GetCategories() {
		if category.ID == id {
			return c.JSON(http.StatusOK, listOf(s.Questions.GetQuestionsByCategory(id)))
		}
	}
	return apperrors.NotFound("category", id)
}

func (s *APIV1Service) ListTags(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"tags": s.Questions.GetAllTags()})
}

func (s *APIV1Service) ListQuestionsByTag(c echo.Context) error {
	return c.JSON(http.StatusOK, listOf(s.Questions.GetQuestionsByTag(c.Param("tag"))))
}

type recommendationsRequest struct {
	QuestionIDs []string `json:"questionIds"`
}

// GetStudyRecommendations suggests topics for a selection of questions.
// POST /api/v1/recommendations
func (s *APIV1Service) GetStudyRecommendations(c echo.Context) error {
	var req recommendationsRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"recommendations": s.Questions.GetStudyRecommendations(req.QuestionIDs),
	})
}

type startSessionRequest struct {
	UserID      string   `json:"userId"`
	QuestionIDs []string `json:"questionIds"`
}

// StartStudySession opens a study session.
// POST /api/v1/sessions
func (s *APIV1Service) StartStudySession(c echo.Context) error {
	var req startSessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if req.UserID == "" {
		return apperrors.InvalidArgument("userId is required")
	}
	session := s.Questions.StartStudySession(c.Request().Context(), req.UserID, req.QuestionIDs)
	return c.JSON(http.StatusCreated, session)
}

func (s *APIV1Service) GetStudySession(c echo.Context) error {
	id := c.Param("id")
	session, ok := s.Questions.GetSession(id)
	if !ok {
		return apperrors.NotFound("session", id)
	}
	return c.JSON(http.StatusOK, session)
}

type endSessionRequest struct {
	Score float64 `json:"score"`
}

// EndStudySession closes a study session with a score.
// POST /api/v1/sessions/:id/end
func (s *APIV1Service) EndStudySession(c echo.Context) error {
	var req endSessionRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id := c.Param("id")
	session, ok := s.Questions.EndStudySession(c.Request().Context(), id, req.Score)
	if !ok {
		return apperrors.NotFound("session", id)
	}
	return c.JSON(http.StatusOK, session)
}

func (s *APIV1Service) ListStudySessions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"sessions": s.Questions.Sessions(c.Param("user"))})
}

// GetPeriodicStudy returns the questions due for review.
// GET /api/v1/users/:user/periodic-study?limit=
func (s *APIV1Service) GetPeriodicStudy(c echo.Context) error {
	limit := 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.InvalidArgument("limit must be an integer")
		}
		limit = n
	}
	return c.JSON(http.StatusOK, listOf(s.Questions.GetQuestionsForPeriodicStudy(c.Param("user"), limit)))
}
