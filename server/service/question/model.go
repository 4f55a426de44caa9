// Package question owns the enriched question bank: filtering, search,
// favorites, study recommendations and study sessions.
package question

import (
	"errors"
	"slices"
	"time"

	"github.com/hrygo/smartstudy/internal/catalog"
	"github.com/hrygo/smartstudy/plugin/classifier"
)

var (
	ErrQuestionNotFound  = errors.New("question not found")
	ErrInvalidExpression = errors.New("invalid filter expression")
)

// Question is a catalog entry enriched with derived metadata and study counters.
type Question struct {
	catalog.Entry

	Tags                 []string            `json:"tags"`
	ExamType             classifier.ExamType `json:"examType"`
	StudyRecommendations []string            `json:"studyRecommendations"`
	IsFavorite           bool                `json:"isFavorite"`
	StudyCount           int                 `json:"studyCount"`
	CorrectAnswers       int                 `json:"correctAnswers"`
	WrongAnswers         int                 `json:"wrongAnswers"`
	AverageTime          float64             `json:"averageTime"` // seconds
	LastStudied          *time.Time          `json:"lastStudied"`
}

func (q *Question) clone() *Question {
	c := *q
	c.Options = slices.Clone(q.Options)
	c.Tags = slices.Clone(q.Tags)
	c.StudyRecommendations = slices.Clone(q.StudyRecommendations)
	if q.LastStudied != nil {
		t := *q.LastStudied
		c.LastStudied = &t
	}
	return &c
}

func (q *Question) hasTag(tag string) bool {
	for _, t := range q.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Priority ranks a study recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is a suggested study topic.
type Recommendation struct {
	Topic       string   `json:"topic"`
	Description string   `json:"description"`
	Resources   []string `json:"resources"`
	Priority    Priority `json:"priority"`
}

// Session is one study session and its recommendations snapshot.
type Session struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	Questions       []string         `json:"questions"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         *time.Time       `json:"endTime,omitempty"`
	Score           *float64         `json:"score,omitempty"`
	Recommendations []Recommendation `json:"recommendations"`
}

func (s *Session) clone() *Session {
	c := *s
	c.Questions = append([]string(nil), s.Questions...)
	c.Recommendations = make([]Recommendation, len(s.Recommendations))
	for i, r := range s.Recommendations {
		r.Resources = append([]string(nil), r.Resources...)
		c.Recommendations[i] = r
	}
	if s.EndTime != nil {
		t := *s.EndTime
		c.EndTime = &t
	}
	if s.Score != nil {
		v := *s.Score
		c.Score = &v
	}
	return &c
}

// Answer is the outcome of answering a question once.
type Answer struct {
	QuestionID string        `json:"questionId"`
	Correct    bool          `json:"correct"`
	Duration   time.Duration `json:"duration"`
}

// Stats summarises the study counters of a question.
type Stats struct {
	StudyCount     int        `json:"studyCount"`
	CorrectAnswers int        `json:"correctAnswers"`
	WrongAnswers   int        `json:"wrongAnswers"`
	Accuracy       float64    `json:"accuracy"` // percent
	AverageTime    float64    `json:"averageTime"`
	LastStudied    *time.Time `json:"lastStudied"`
}
