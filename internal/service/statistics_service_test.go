package service

import (
	"testing"
	"time"

	"english_edu_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timedAttempt(topic string, score float64, completed time.Time, minutes float64) model.AttemptWithTopic {
	return model.AttemptWithTopic{
		QuizAttempt: model.QuizAttempt{
			Score:            score,
			CompletedAt:      completed,
			TimeTakenMinutes: &minutes,
		},
		Topic: topic,
	}
}

func TestBuildDailyProgressSevenDayWindow(t *testing.T) {
	now := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)

	buckets := BuildDailyProgress(nil, now)

	require.Len(t, buckets, 7)
	_, ok := buckets["2026-05-10"]
	assert.True(t, ok)
	_, ok = buckets["2026-05-04"]
	assert.True(t, ok)
	_, ok = buckets["2026-05-03"]
	assert.False(t, ok)
}

func TestBuildDailyProgressAggregatesPerDay(t *testing.T) {
	now := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	attempts := []model.AttemptWithTopic{
		timedAttempt("grammar", 80, time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC), 5),
		timedAttempt("grammar", 60, time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC), 3),
		timedAttempt("reading", 100, time.Date(2026, 5, 8, 12, 0, 0, 0, time.UTC), 10),
	}

	buckets := BuildDailyProgress(attempts, now)

	today := buckets["2026-05-10"]
	assert.Equal(t, 2, today.QuizzesTaken)
	assert.Equal(t, 70.0, today.AverageScore)
	assert.Equal(t, 8.0, today.TimeSpent)

	older := buckets["2026-05-08"]
	assert.Equal(t, 1, older.QuizzesTaken)
	assert.Equal(t, 100.0, older.AverageScore)

	quiet := buckets["2026-05-09"]
	assert.Equal(t, 0, quiet.QuizzesTaken)
	assert.Equal(t, 0.0, quiet.AverageScore)
}

func TestBuildDailyProgressIgnoresOutOfWindow(t *testing.T) {
	now := time.Date(2026, 5, 10, 18, 0, 0, 0, time.UTC)
	attempts := []model.AttemptWithTopic{
		timedAttempt("grammar", 80, time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC), 5),
	}

	buckets := BuildDailyProgress(attempts, now)

	for date, bucket := range buckets {
		assert.Equal(t, 0, bucket.QuizzesTaken, "unexpected entry on %s", date)
	}
}

func TestBuildTopicPerformance(t *testing.T) {
	attempts := []model.AttemptWithTopic{
		timedAttempt("grammar", 60, time.Now(), 1),
		timedAttempt("grammar", 90, time.Now(), 1),
		timedAttempt("reading", 75, time.Now(), 1),
	}

	performance := BuildTopicPerformance(attempts)

	require.Len(t, performance, 2)
	assert.Equal(t, "grammar", performance[0].Topic)
	assert.Equal(t, 75.0, performance[0].AverageScore)
	assert.Equal(t, 2, performance[0].Attempts)
	assert.Equal(t, 90.0, performance[0].BestScore)
	assert.Equal(t, "reading", performance[1].Topic)
}

func TestBuildTopicPerformanceSkipsGeneral(t *testing.T) {
	attempts := []model.AttemptWithTopic{
		timedAttempt("", 60, time.Now(), 1),
		timedAttempt(model.TopicGeneral, 80, time.Now(), 1),
	}

	assert.Empty(t, BuildTopicPerformance(attempts))
}
