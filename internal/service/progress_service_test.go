package service

import (
	"testing"
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(topic string, score float64, passed bool, minutes float64) model.AttemptWithTopic {
	return model.AttemptWithTopic{
		QuizAttempt: model.QuizAttempt{
			Score:            score,
			IsPassed:         passed,
			TimeTakenMinutes: &minutes,
		},
		Topic: topic,
	}
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)

	since, err := periodStart("week", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), since)

	since, err = periodStart("month", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), since)

	since, err = periodStart("year", now)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -365), since)

	since, err = periodStart("all", now)
	require.NoError(t, err)
	assert.True(t, since.IsZero())

	_, err = periodStart("decade", now)
	assert.ErrorIs(t, err, util.ErrInvalidPeriod)
}

func TestScoreTrend(t *testing.T) {
	assert.Equal(t, 0.0, scoreTrend(nil))
	assert.Equal(t, 0.0, scoreTrend([]float64{80}))

	// [50,50,90,90]：后半段均分 90，前半段 50
	assert.Equal(t, 40.0, scoreTrend([]float64{50, 50, 90, 90}))

	// 奇数长度在 floor(n/2) 处切分：前半 [40]，后半 [60, 80]
	assert.Equal(t, 30.0, scoreTrend([]float64{40, 60, 80}))

	// 成绩下滑为负值
	assert.Equal(t, -20.0, scoreTrend([]float64{90, 70}))
}

func TestBuildProgressReportEmpty(t *testing.T) {
	report := BuildProgressReport(nil)

	assert.Equal(t, 0, report.OverallStats.TotalAttempts)
	assert.Equal(t, 0.0, report.OverallStats.AverageScore)
	assert.Equal(t, 0.0, report.OverallStats.PassRate)
	assert.Equal(t, 0, report.TotalTopics)
}

func TestBuildProgressReportPerTopic(t *testing.T) {
	attempts := []model.AttemptWithTopic{
		attempt("grammar", 50, false, 10),
		attempt("grammar", 90, true, 6),
		attempt("vocabulary", 80, true, 4),
	}

	report := BuildProgressReport(attempts)

	require.Equal(t, 2, report.TotalTopics)

	grammar := report.TopicStats["grammar"]
	assert.Equal(t, 2, grammar.Attempts)
	assert.Equal(t, 70.0, grammar.AverageScore)
	assert.Equal(t, 50.0, grammar.PassRate)
	assert.Equal(t, 16.0, grammar.TimeSpent)
	assert.Equal(t, 8.0, grammar.AverageTime)
	assert.Equal(t, 40.0, grammar.Trend)

	vocabulary := report.TopicStats["vocabulary"]
	assert.Equal(t, 1, vocabulary.Attempts)
	assert.Equal(t, 100.0, vocabulary.PassRate)
	assert.Equal(t, 0.0, vocabulary.Trend)

	overall := report.OverallStats
	assert.Equal(t, 3, overall.TotalAttempts)
	assert.InDelta(t, 73.333, overall.AverageScore, 0.001)
	assert.InDelta(t, 66.666, overall.PassRate, 0.001)
	assert.Equal(t, 20.0, overall.TotalTimeSpent)
}

func TestBuildProgressReportGeneralBucket(t *testing.T) {
	attempts := []model.AttemptWithTopic{
		attempt("", 60, false, 5),
	}

	report := BuildProgressReport(attempts)

	_, ok := report.TopicStats[model.TopicGeneral]
	assert.True(t, ok, "topic-less attempts land in the General bucket")
}

func TestRankEntries(t *testing.T) {
	rows := []repository.LeaderboardRow{
		{UserID: 7, Username: "alice", ExperiencePoints: 500, AverageScore: 91.238},
		{UserID: 2, Username: "bob", ExperiencePoints: 500},
		{UserID: 9, Username: "carol", ExperiencePoints: 120},
	}

	entries := RankEntries(rows)

	require.Len(t, entries, 3)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, uint(7), entries[0].UserID)
	assert.Equal(t, 91.24, entries[0].AverageScore)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, 3, entries[2].Rank)
}

func TestRankEntriesEmpty(t *testing.T) {
	assert.Empty(t, RankEntries(nil))
}
