package service

import (
	"testing"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAchievementEvaluator() *AchievementService {
	return NewAchievementService(DefaultAchievementCatalog(), nil, nil)
}

func earnedIDs(report *model.AchievementReport) []string {
	ids := make([]string, 0, len(report.Achievements))
	for _, a := range report.Achievements {
		ids = append(ids, a.ID)
	}
	return ids
}

func TestEvaluateFreshUserEarnsNothing(t *testing.T) {
	svc := newAchievementEvaluator()

	report := svc.Evaluate(&model.UserStatistics{}, false)

	assert.Empty(t, report.Achievements)
	assert.Equal(t, 0, report.TotalEarned)
}

func TestEvaluateFirstQuiz(t *testing.T) {
	svc := newAchievementEvaluator()

	report := svc.Evaluate(&model.UserStatistics{TotalQuizzesTaken: 1}, false)

	assert.Contains(t, earnedIDs(report), "first_quiz")
	assert.NotContains(t, earnedIDs(report), "quiz_master")
}

func TestEvaluateQuizMasterAtTen(t *testing.T) {
	svc := newAchievementEvaluator()

	report := svc.Evaluate(&model.UserStatistics{TotalQuizzesTaken: 10}, false)
	assert.Contains(t, earnedIDs(report), "quiz_master")
}

func TestEvaluatePerfectScoreFromHistory(t *testing.T) {
	svc := newAchievementEvaluator()

	without := svc.Evaluate(&model.UserStatistics{TotalQuizzesTaken: 1}, false)
	assert.NotContains(t, earnedIDs(without), "perfect_score")

	with := svc.Evaluate(&model.UserStatistics{TotalQuizzesTaken: 1}, true)
	assert.Contains(t, earnedIDs(with), "perfect_score")
}

func TestEvaluateStreakWeek(t *testing.T) {
	svc := newAchievementEvaluator()

	report := svc.Evaluate(&model.UserStatistics{CurrentStreakDays: 7}, false)
	assert.Contains(t, earnedIDs(report), "streak_week")
}

func TestEvaluateLevelAchievements(t *testing.T) {
	svc := newAchievementEvaluator()

	intermediate := svc.Evaluate(&model.UserStatistics{CurrentLevel: model.LevelIntermediate}, false)
	assert.Contains(t, earnedIDs(intermediate), "level_up")
	assert.NotContains(t, earnedIDs(intermediate), "advanced_learner")

	// advanced 同时满足两级成就
	advanced := svc.Evaluate(&model.UserStatistics{CurrentLevel: model.LevelAdvanced}, false)
	assert.Contains(t, earnedIDs(advanced), "level_up")
	assert.Contains(t, earnedIDs(advanced), "advanced_learner")
}

func TestEvaluateProgressForUnearned(t *testing.T) {
	svc := newAchievementEvaluator()

	report := svc.Evaluate(&model.UserStatistics{
		TotalQuizzesTaken: 4,
		CurrentStreakDays: 3,
		AverageScore:      72,
	}, false)

	master, ok := report.Progress["quiz_master"]
	require.True(t, ok)
	assert.Equal(t, 4.0, master.Current)
	assert.Equal(t, 10.0, master.Target)
	assert.Equal(t, 40.0, master.Percentage)

	streak, ok := report.Progress["streak_week"]
	require.True(t, ok)
	assert.InDelta(t, 42.857, streak.Percentage, 0.001)

	high, ok := report.Progress["high_achiever"]
	require.True(t, ok)
	assert.Equal(t, 72.0, high.Current)
}

func TestEvaluateProgressCappedAtHundred(t *testing.T) {
	svc := newAchievementEvaluator()

	// 均分 89.9 未达标但接近上限，进度不超过 100
	report := svc.Evaluate(&model.UserStatistics{AverageScore: 89.99}, false)
	high := report.Progress["high_achiever"]
	assert.LessOrEqual(t, high.Percentage, 100.0)
}

func TestEvaluateEarnedExcludedFromProgress(t *testing.T) {
	svc := newAchievementEvaluator()

	report := svc.Evaluate(&model.UserStatistics{TotalQuizzesTaken: 15}, false)

	assert.Contains(t, earnedIDs(report), "quiz_master")
	_, ok := report.Progress["quiz_master"]
	assert.False(t, ok)
}
