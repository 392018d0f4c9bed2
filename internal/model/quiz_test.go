package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionListValidate(t *testing.T) {
	valid := QuestionList{
		{ID: 1, Question: "What is the capital of France?", CorrectAnswer: "Paris"},
		{ID: 2, Question: "Choose the correct verb", CorrectAnswer: "goes"},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name string
		list QuestionList
	}{
		{"non-positive id", QuestionList{{ID: 0, Question: "q", CorrectAnswer: "a"}}},
		{"duplicate id", QuestionList{
			{ID: 1, Question: "q1", CorrectAnswer: "a"},
			{ID: 1, Question: "q2", CorrectAnswer: "b"},
		}},
		{"empty prompt", QuestionList{{ID: 1, CorrectAnswer: "a"}}},
		{"empty answer", QuestionList{{ID: 1, Question: "q"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.list.Validate())
		})
	}
}

func TestQuestionListScanRejectsInvalidDocument(t *testing.T) {
	var q QuestionList
	err := q.Scan([]byte(`[{"id":1,"question":"","correct_answer":"a"}]`))
	assert.Error(t, err)
}

func TestQuestionListScanRoundTrip(t *testing.T) {
	original := QuestionList{{ID: 1, Question: "q", Type: FillBlank, CorrectAnswer: "a"}}
	raw, err := original.Value()
	require.NoError(t, err)

	var scanned QuestionList
	require.NoError(t, scanned.Scan(raw))
	assert.Equal(t, original, scanned)
}

func TestQuestionListSanitizedStripsAnswers(t *testing.T) {
	list := QuestionList{
		{ID: 1, Question: "q1", Type: MultipleChoice, Options: []string{"a", "b"}, CorrectAnswer: "a", Explanation: "because"},
	}

	safe := list.Sanitized()
	require.Len(t, safe, 1)
	assert.Equal(t, 1, safe[0].ID)
	assert.Equal(t, "q1", safe[0].Question)
	assert.Equal(t, []string{"a", "b"}, safe[0].Options)
}

func TestQuizTopicFallsBackToGeneral(t *testing.T) {
	quiz := &Quiz{}
	assert.Equal(t, TopicGeneral, quiz.Topic())

	quiz.Lesson = &Lesson{Topic: TopicGrammar}
	assert.Equal(t, TopicGrammar, quiz.Topic())
}

func TestValidateTopic(t *testing.T) {
	assert.NoError(t, ValidateTopic(TopicGrammar))
	assert.NoError(t, ValidateTopic(TopicListening))
	assert.Error(t, ValidateTopic("history"))
}
