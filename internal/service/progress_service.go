package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = time.Minute

// ProgressService 时间窗口内的进度/趋势报表和排行榜
type ProgressService struct {
	AttemptRepo *repository.AttemptRepository
	StatsRepo   *repository.StatisticsRepository
	UserRepo    *repository.UserRepository
	Redis       *redis.Client

	Now func() time.Time
}

func NewProgressService(
	attemptRepo *repository.AttemptRepository,
	statsRepo *repository.StatisticsRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
) *ProgressService {
	return &ProgressService{
		AttemptRepo: attemptRepo,
		StatsRepo:   statsRepo,
		UserRepo:    userRepo,
		Redis:       rdb,
		Now:         time.Now,
	}
}

// periodStart 把时间窗口名转成起始时间，all 返回零值表示不限
func periodStart(period string, now time.Time) (time.Time, error) {
	switch period {
	case "week":
		return now.AddDate(0, 0, -7), nil
	case "month":
		return now.AddDate(0, 0, -30), nil
	case "year":
		return now.AddDate(0, 0, -365), nil
	case "all", "":
		return time.Time{}, nil
	default:
		return time.Time{}, util.ErrInvalidPeriod
	}
}

// GetProgress 按主题分组的窗口期进度报表
func (s *ProgressService) GetProgress(userID uint, period string) (*model.ProgressReport, error) {
	if period == "" {
		period = "month"
	}
	since, err := periodStart(period, s.Now().UTC())
	if err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.ListSinceWithTopic(userID, since)
	if err != nil {
		return nil, err
	}

	report := BuildProgressReport(attempts)
	report.Period = period
	return report, nil
}

// BuildProgressReport 纯聚合：输入按完成时间升序的提交记录
func BuildProgressReport(attempts []model.AttemptWithTopic) *model.ProgressReport {
	topicScores := make(map[string][]float64)
	topicPassed := make(map[string]int)
	topicStats := make(map[string]model.TopicStats)

	overallSum := 0.0
	overallTime := 0.0
	overallPassed := 0

	for _, a := range attempts {
		topic := a.Topic
		if topic == "" {
			topic = model.TopicGeneral
		}

		entry := topicStats[topic]
		entry.Attempts++
		if a.TimeTakenMinutes != nil {
			entry.TimeSpent += *a.TimeTakenMinutes
		}
		if a.IsPassed {
			overallPassed++
			topicPassed[topic]++
		}
		topicStats[topic] = entry
		topicScores[topic] = append(topicScores[topic], a.Score)

		overallSum += a.Score
		if a.TimeTakenMinutes != nil {
			overallTime += *a.TimeTakenMinutes
		}
	}

	for topic, entry := range topicStats {
		scores := topicScores[topic]
		entry.AverageScore = mean(scores)
		entry.PassRate = float64(topicPassed[topic]) / float64(entry.Attempts) * 100
		entry.AverageTime = entry.TimeSpent / float64(entry.Attempts)
		entry.Trend = scoreTrend(scores)
		topicStats[topic] = entry
	}

	overall := model.OverallStats{
		TotalAttempts:  len(attempts),
		TotalTimeSpent: overallTime,
	}
	if len(attempts) > 0 {
		overall.AverageScore = overallSum / float64(len(attempts))
		overall.PassRate = float64(overallPassed) / float64(len(attempts)) * 100
	}

	return &model.ProgressReport{
		OverallStats: overall,
		TopicStats:   topicStats,
		TotalTopics:  len(topicStats),
	}
}

// scoreTrend 后半段均分减前半段均分，在 floor(n/2) 处切分。
// 只是粗粒度的两段对比，少于 2 次提交时为 0
func scoreTrend(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	mid := len(scores) / 2
	return mean(scores[mid:]) - mean(scores[:mid])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// GetLeaderboard 经验值排行榜。快照先走 Redis 缓存，
// 当前用户名次即使在榜外也会推算出来
func (s *ProgressService) GetLeaderboard(ctx context.Context, currentUserID uint, limit int) (*model.Leaderboard, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.cachedTopRows(ctx, limit)
	if err != nil {
		return nil, err
	}

	entries := RankEntries(rows)

	currentRank := 0
	for _, e := range entries {
		if e.UserID == currentUserID {
			currentRank = e.Rank
			break
		}
	}
	if currentRank == 0 {
		stats, err := s.StatsRepo.FindByUserID(currentUserID)
		if err != nil && err != gorm.ErrRecordNotFound {
			return nil, err
		}
		if err == nil {
			above, err := s.StatsRepo.CountRankedAbove(stats.ExperiencePoints, currentUserID)
			if err != nil {
				return nil, err
			}
			currentRank = int(above) + 1
		}
	}

	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}

	return &model.Leaderboard{
		Entries:         entries,
		CurrentUserRank: currentRank,
		TotalUsers:      totalUsers,
	}, nil
}

// RankEntries 对原始行排名。行已按 xp 降序、id 升序排好，
// 名次从 1 开始逐行递增，同分靠 id 升序保证确定性
func RankEntries(rows []repository.LeaderboardRow) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = model.LeaderboardEntry{
			Rank:             i + 1,
			UserID:           row.UserID,
			Username:         row.Username,
			Level:            row.Level,
			ExperiencePoints: row.ExperiencePoints,
			TotalQuizzes:     row.TotalQuizzesTaken,
			AverageScore:     model.Round2(row.AverageScore),
			CurrentStreak:    row.CurrentStreakDays,
		}
	}
	return entries
}

func (s *ProgressService) cachedTopRows(ctx context.Context, limit int) ([]repository.LeaderboardRow, error) {
	key := leaderboardCacheKey(limit)

	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, key).Bytes(); err == nil {
			var rows []repository.LeaderboardRow
			if err := json.Unmarshal(raw, &rows); err == nil {
				return rows, nil
			}
		}
	}

	rows, err := s.StatsRepo.TopByExperience(limit)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(rows); err == nil {
			if err := s.Redis.Set(ctx, key, raw, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return rows, nil
}

func leaderboardCacheKey(limit int) string {
	return "leaderboard:top:" + strconv.Itoa(limit)
}
