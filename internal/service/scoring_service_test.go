package service

import (
	"testing"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func questions(answers ...string) []model.QuizQuestion {
	qs := make([]model.QuizQuestion, 0, len(answers))
	for i, a := range answers {
		qs = append(qs, model.QuizQuestion{
			ID:            i + 1,
			Question:      "q",
			Type:          model.MultipleChoice,
			CorrectAnswer: a,
		})
	}
	return qs
}

func TestScoreEmptyQuestionSet(t *testing.T) {
	s := NewScoringService()

	score, correct := s.Score(nil, model.AnswerSet{"1": "Paris"})
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0, correct)
}

func TestScoreNormalizesWhitespaceAndCase(t *testing.T) {
	s := NewScoringService()

	score, correct := s.Score(questions("Paris"), model.AnswerSet{"1": "  pArIs  "})
	assert.Equal(t, 100.0, score)
	assert.Equal(t, 1, correct)
}

func TestScorePartialAndMissingAnswers(t *testing.T) {
	s := NewScoringService()

	qs := questions("go", "run", "fast")
	answers := model.AnswerSet{
		"1": "go",
		"2": "walk",
		// 第三题未作答
	}

	score, correct := s.Score(qs, answers)
	assert.Equal(t, 33.33, score)
	assert.Equal(t, 1, correct)
}

func TestScoreRoundsHalfAwayFromZero(t *testing.T) {
	s := NewScoringService()

	// 5/8 = 62.5，保留两位后应为 62.5 而不是 62.49
	qs := questions("a", "a", "a", "a", "a", "a", "a", "a")
	answers := model.AnswerSet{"1": "a", "2": "a", "3": "a", "4": "a", "5": "a", "6": "b", "7": "b", "8": "b"}

	score, correct := s.Score(qs, answers)
	assert.Equal(t, 62.5, score)
	assert.Equal(t, 5, correct)
}

func TestScoreIsIdempotent(t *testing.T) {
	s := NewScoringService()

	qs := questions("yes", "no")
	answers := model.AnswerSet{"1": "yes", "2": "yes"}

	first, _ := s.Score(qs, answers)
	second, _ := s.Score(qs, answers)
	assert.Equal(t, first, second)
}

func TestAccuracy(t *testing.T) {
	s := NewScoringService()

	assert.Equal(t, 0.0, s.Accuracy(0, 0))
	assert.Equal(t, 50.0, s.Accuracy(1, 2))
	assert.InDelta(t, 66.6666, s.Accuracy(2, 3), 0.001)
}
