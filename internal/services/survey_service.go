package services

import (
	"context"
	"strconv"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/soaringjerry/Survey/internal/models"
)

const (
	MinLikertValue = 1
	MaxLikertValue = 7
)

// SurveyService owns the question bank and the in-memory answers.
// Only answers are mutable; the bank order is fixed at construction.
type SurveyService struct {
	mu        sync.RWMutex
	questions []models.Question
	index     map[int]int
	logger    *zap.Logger
	answered  metric.Int64Counter
}

func NewSurveyService(bank []models.Question, logger *zap.Logger) (*SurveyService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	qs := make([]models.Question, 0, len(bank))
	index := make(map[int]int, len(bank))
	for _, q := range bank {
		if _, dup := index[q.ID]; dup {
			return nil, NewInvalidError("duplicate question id " + strconv.Itoa(q.ID))
		}
		q.Answer = nil
		index[q.ID] = len(qs)
		qs = append(qs, q)
	}
	counter, err := otel.GetMeterProvider().Meter("survey").Int64Counter(
		"survey.answers.set",
		metric.WithDescription("Answers recorded per section"),
		metric.WithUnit("{answer}"),
	)
	if err != nil {
		return nil, err
	}
	return &SurveyService{questions: qs, index: index, logger: logger, answered: counter}, nil
}

// SetAnswer records value for the question with id. Other questions are untouched.
func (s *SurveyService) SetAnswer(id, value int) error {
	if value < MinLikertValue || value > MaxLikertValue {
		return NewInvalidError("answer must be between 1 and 7")
	}
	s.mu.Lock()
	i, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return NewNotFoundError("question " + strconv.Itoa(id) + " not found")
	}
	v := value
	s.questions[i].Answer = &v
	section := s.questions[i].Section
	s.mu.Unlock()

	s.answered.Add(context.Background(), 1, metric.WithAttributes(attribute.String("section", section)))
	s.logger.Debug("answer set", zap.Int("question_id", id), zap.Int("value", value))
	return nil
}

// ResetSurvey clears every answer. Calling it repeatedly has no further effect.
func (s *SurveyService) ResetSurvey() {
	s.mu.Lock()
	for i := range s.questions {
		s.questions[i].Answer = nil
	}
	s.mu.Unlock()
	s.logger.Info("survey reset")
}

// Questions returns an ordered copy of the bank with current answers.
func (s *SurveyService) Questions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Question, len(s.questions))
	for i, q := range s.questions {
		if q.Answer != nil {
			v := *q.Answer
			q.Answer = &v
		}
		out[i] = q
	}
	return out
}

func (s *SurveyService) Question(id int) (models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Question{}, NewNotFoundError("question " + strconv.Itoa(id) + " not found")
	}
	q := s.questions[i]
	if q.Answer != nil {
		v := *q.Answer
		q.Answer = &v
	}
	return q, nil
}
