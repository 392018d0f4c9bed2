package service

import (
	"testing"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecommender() *RecommendationService {
	return NewRecommendationService(DefaultRecommendationRules())
}

func recTypes(recs []model.Recommendation) []string {
	types := make([]string, 0, len(recs))
	for _, r := range recs {
		types = append(types, r.Type)
	}
	return types
}

func TestRecommendFreshUser(t *testing.T) {
	svc := newRecommender()

	// 零提交：均分 0 触发 improvement，连续天数 0 触发 motivation
	recs := svc.Recommend(&model.User{Level: model.LevelBeginner}, &model.UserStatistics{})

	assert.Contains(t, recTypes(recs), "improvement")
	assert.Contains(t, recTypes(recs), "motivation")
}

func TestRecommendLowAverage(t *testing.T) {
	svc := newRecommender()

	recs := svc.Recommend(&model.User{}, &model.UserStatistics{AverageScore: 55, CurrentStreakDays: 2})

	require.NotEmpty(t, recs)
	assert.Equal(t, "improvement", recs[0].Type)
	assert.Equal(t, "Focus on Fundamentals", recs[0].Title)
}

func TestRecommendAdvancementOnlyForBeginners(t *testing.T) {
	svc := newRecommender()
	stats := &model.UserStatistics{AverageScore: 92, CurrentStreakDays: 1}

	beginner := svc.Recommend(&model.User{Level: model.LevelBeginner}, stats)
	assert.Contains(t, recTypes(beginner), "advancement")

	intermediate := svc.Recommend(&model.User{Level: model.LevelIntermediate}, stats)
	assert.NotContains(t, recTypes(intermediate), "advancement")
}

func TestRecommendStreakCongratulations(t *testing.T) {
	svc := newRecommender()

	recs := svc.Recommend(&model.User{}, &model.UserStatistics{AverageScore: 75, CurrentStreakDays: 9})

	require.Contains(t, recTypes(recs), "congratulations")
	for _, r := range recs {
		if r.Type == "congratulations" {
			assert.Contains(t, r.Description, "9-day streak")
		}
	}
}

func TestRecommendWeakTopics(t *testing.T) {
	svc := newRecommender()

	recs := svc.Recommend(&model.User{}, &model.UserStatistics{
		AverageScore:      80,
		CurrentStreakDays: 1,
		GrammarScore:      55,
		VocabularyScore:   60,
		ReadingScore:      90,
		ListeningScore:    40, // listening 不参与弱项建议
	})

	require.Contains(t, recTypes(recs), "focus")
	for _, r := range recs {
		if r.Type == "focus" {
			assert.Equal(t, "Consider focusing on: grammar, vocabulary", r.Description)
			// 行动只点名第一个弱项
			assert.Equal(t, "Practice grammar exercises", r.Action)
		}
	}
}

func TestRecommendZeroTopicScoreIsNotWeak(t *testing.T) {
	svc := newRecommender()

	recs := svc.Recommend(&model.User{}, &model.UserStatistics{
		AverageScore:      80,
		CurrentStreakDays: 1,
	})

	assert.NotContains(t, recTypes(recs), "focus")
}

func TestRecommendRulesAllFire(t *testing.T) {
	svc := newRecommender()

	// 同时满足 improvement、congratulations、focus
	recs := svc.Recommend(&model.User{}, &model.UserStatistics{
		AverageScore:      60,
		CurrentStreakDays: 10,
		GrammarScore:      50,
	})

	types := recTypes(recs)
	assert.Contains(t, types, "improvement")
	assert.Contains(t, types, "congratulations")
	assert.Contains(t, types, "focus")
	assert.Len(t, recs, 3)
}
