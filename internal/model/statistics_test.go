package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateStreak(day(2026, 3, 1))

	assert.Equal(t, 1, stats.CurrentStreakDays)
	assert.Equal(t, 1, stats.LongestStreakDays)
	require.NotNil(t, stats.LastActivityDate)
	assert.Equal(t, "2026-03-01", stats.LastActivityDate.Format("2006-01-02"))
}

func TestUpdateStreakSameDayIsNoop(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateStreak(day(2026, 3, 1))
	stats.UpdateStreak(time.Date(2026, 3, 1, 23, 59, 0, 0, time.UTC))

	assert.Equal(t, 1, stats.CurrentStreakDays)
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateStreak(day(2026, 3, 1))
	stats.UpdateStreak(day(2026, 3, 2))
	stats.UpdateStreak(day(2026, 3, 3))

	assert.Equal(t, 3, stats.CurrentStreakDays)
	assert.Equal(t, 3, stats.LongestStreakDays)
}

func TestUpdateStreakGapResets(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateStreak(day(2026, 3, 1))
	stats.UpdateStreak(day(2026, 3, 2))
	stats.UpdateStreak(day(2026, 3, 5))

	assert.Equal(t, 1, stats.CurrentStreakDays)
	// 最长连续不回退
	assert.Equal(t, 2, stats.LongestStreakDays)
}

func TestUpdateStreakClockRollbackResets(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateStreak(day(2026, 3, 5))
	stats.UpdateStreak(day(2026, 3, 3))

	assert.Equal(t, 1, stats.CurrentStreakDays)
}

func TestUpdateTopicScoreFirstScoreTakenAsIs(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateTopicScore(TopicGrammar, 80)

	assert.Equal(t, 80.0, stats.GrammarScore)
}

func TestUpdateTopicScoreAveragesWithPrior(t *testing.T) {
	stats := &UserStatistics{GrammarScore: 80}
	stats.UpdateTopicScore(TopicGrammar, 60)

	assert.Equal(t, 70.0, stats.GrammarScore)
}

func TestUpdateTopicScoreIgnoresUnknownTopic(t *testing.T) {
	stats := &UserStatistics{}
	stats.UpdateTopicScore("General", 90)
	stats.UpdateTopicScore("history", 90)

	assert.Equal(t, 0.0, stats.GrammarScore)
	assert.Equal(t, 0.0, stats.VocabularyScore)
	assert.Equal(t, 0.0, stats.ReadingScore)
	assert.Equal(t, 0.0, stats.ListeningScore)
}

func TestSyncLevelThresholds(t *testing.T) {
	tests := []struct {
		xp      int
		level   UserLevel
		percent float64
	}{
		{0, LevelBeginner, 0},
		{50, LevelBeginner, 50},
		{99, LevelBeginner, 99},
		{100, LevelIntermediate, 0},
		{150, LevelIntermediate, 12.5},
		{499, LevelIntermediate, 99.75},
		{500, LevelAdvanced, 100},
		{10000, LevelAdvanced, 100},
	}

	for _, tc := range tests {
		stats := &UserStatistics{ExperiencePoints: tc.xp}
		progress := stats.SyncLevel()

		assert.Equal(t, tc.level, stats.CurrentLevel, "xp=%d", tc.xp)
		assert.Equal(t, tc.level, progress.CurrentLevel, "xp=%d", tc.xp)
		assert.InDelta(t, tc.percent, progress.ProgressPercentage, 0.001, "xp=%d", tc.xp)
	}
}

func TestSyncLevelXPNeeded(t *testing.T) {
	beginner := &UserStatistics{ExperiencePoints: 10}
	p := beginner.SyncLevel()
	require.NotNil(t, p.XPNeeded)
	assert.Equal(t, IntermediateXP, *p.XPNeeded)

	advanced := &UserStatistics{ExperiencePoints: 600}
	p = advanced.SyncLevel()
	assert.Nil(t, p.XPNeeded)
}

func TestRecomputeFromAttempts(t *testing.T) {
	stats := &UserStatistics{}
	stats.RecomputeFromAttempts([]QuizAttempt{
		{Score: 33.33},
		{Score: 66.67},
		{Score: 100},
	})

	assert.Equal(t, 3, stats.TotalQuizzesTaken)
	// 经验值按单次得分截断后求和：33 + 66 + 100
	assert.Equal(t, 199, stats.ExperiencePoints)
	assert.Equal(t, 66.67, stats.AverageScore)
}

func TestRecomputeFromAttemptsEmpty(t *testing.T) {
	stats := &UserStatistics{TotalQuizzesTaken: 5, ExperiencePoints: 100, AverageScore: 80}
	stats.RecomputeFromAttempts(nil)

	assert.Equal(t, 0, stats.TotalQuizzesTaken)
	assert.Equal(t, 0, stats.ExperiencePoints)
	assert.Equal(t, 0.0, stats.AverageScore)
}

func TestRecordQuizResult(t *testing.T) {
	stats := &UserStatistics{}
	minutes := 7.8

	stats.RecordQuizResult(&QuizAttempt{IsPassed: true, TimeTakenMinutes: &minutes})
	stats.RecordQuizResult(&QuizAttempt{IsPassed: false})

	assert.Equal(t, 1, stats.TotalQuizzesPassed)
	assert.Equal(t, 7, stats.TotalStudyTimeMinutes)
}

func TestRecordLessonCompletion(t *testing.T) {
	stats := &UserStatistics{}
	stats.RecordLessonCompletion(&Lesson{DurationMinutes: 20})

	assert.Equal(t, 1, stats.TotalLessonsCompleted)
	assert.Equal(t, 5, stats.ExperiencePoints)
	assert.Equal(t, 20, stats.TotalStudyTimeMinutes)
	// 课程完成不影响连续学习天数
	assert.Equal(t, 0, stats.CurrentStreakDays)
}

func TestPassRate(t *testing.T) {
	empty := &UserStatistics{}
	assert.Equal(t, 0.0, empty.PassRate())

	stats := &UserStatistics{TotalQuizzesTaken: 3, TotalQuizzesPassed: 2}
	assert.Equal(t, 66.67, stats.PassRate())
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 62.5, Round2(62.5))
	assert.Equal(t, 0.13, Round2(0.125))
}
