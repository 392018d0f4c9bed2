package service

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
)

// AchievementRule 单条成就规则。目录在构造时注入，运行期只读
type AchievementRule struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Target      float64 // 0 表示不跟踪进度
	Condition   func(stats *model.UserStatistics, hasPerfect bool) bool
	Progress    func(stats *model.UserStatistics) float64
}

// DefaultAchievementCatalog 固定成就目录
func DefaultAchievementCatalog() []AchievementRule {
	return []AchievementRule{
		{
			ID: "first_quiz", Name: "First Steps", Description: "Complete your first quiz", Icon: "🎯",
			Condition: func(s *model.UserStatistics, _ bool) bool { return s.TotalQuizzesTaken >= 1 },
		},
		{
			ID: "quiz_master", Name: "Quiz Master", Description: "Complete 10 quizzes", Icon: "🏆",
			Target:    10,
			Condition: func(s *model.UserStatistics, _ bool) bool { return s.TotalQuizzesTaken >= 10 },
			Progress:  func(s *model.UserStatistics) float64 { return float64(s.TotalQuizzesTaken) },
		},
		{
			ID: "perfect_score", Name: "Perfect Score", Description: "Get 100% on a quiz", Icon: "⭐",
			Condition: func(_ *model.UserStatistics, hasPerfect bool) bool { return hasPerfect },
		},
		{
			ID: "streak_week", Name: "Week Warrior", Description: "Maintain a 7-day streak", Icon: "🔥",
			Target:    7,
			Condition: func(s *model.UserStatistics, _ bool) bool { return s.CurrentStreakDays >= 7 },
			Progress:  func(s *model.UserStatistics) float64 { return float64(s.CurrentStreakDays) },
		},
		{
			ID: "high_achiever", Name: "High Achiever", Description: "Maintain 90% average score", Icon: "🌟",
			Target:    90,
			Condition: func(s *model.UserStatistics, _ bool) bool { return s.AverageScore >= 90 },
			Progress:  func(s *model.UserStatistics) float64 { return model.Round2(s.AverageScore) },
		},
		{
			ID: "level_up", Name: "Level Up", Description: "Reach intermediate level", Icon: "📈",
			Condition: func(s *model.UserStatistics, _ bool) bool {
				return s.CurrentLevel == model.LevelIntermediate || s.CurrentLevel == model.LevelAdvanced
			},
		},
		{
			ID: "advanced_learner", Name: "Advanced Learner", Description: "Reach advanced level", Icon: "🎓",
			Condition: func(s *model.UserStatistics, _ bool) bool { return s.CurrentLevel == model.LevelAdvanced },
		},
	}
}

// AchievementService 成就评估器。无状态：每次调用基于当前统计重新求值，
// 不持久化"已获得"标记，统计被改动后成就可能随之消失，这是当前设计而非缺陷
type AchievementService struct {
	catalog     []AchievementRule
	StatsRepo   *repository.StatisticsRepository
	AttemptRepo *repository.AttemptRepository
}

func NewAchievementService(
	catalog []AchievementRule,
	statsRepo *repository.StatisticsRepository,
	attemptRepo *repository.AttemptRepository,
) *AchievementService {
	return &AchievementService{
		catalog:     catalog,
		StatsRepo:   statsRepo,
		AttemptRepo: attemptRepo,
	}
}

// Evaluate 对给定统计求值整个目录
func (s *AchievementService) Evaluate(stats *model.UserStatistics, hasPerfect bool) *model.AchievementReport {
	report := &model.AchievementReport{
		Achievements: []model.EarnedAchievement{},
		Progress:     map[string]model.AchievementProgress{},
	}

	for _, rule := range s.catalog {
		if rule.Condition(stats, hasPerfect) {
			report.Achievements = append(report.Achievements, model.EarnedAchievement{
				ID:          rule.ID,
				Name:        rule.Name,
				Description: rule.Description,
				Icon:        rule.Icon,
				Earned:      true,
				EarnedDate:  stats.UpdatedAt,
			})
			continue
		}
		if rule.Progress != nil {
			current := rule.Progress(stats)
			percentage := current / rule.Target * 100
			if percentage > 100 {
				percentage = 100
			}
			report.Progress[rule.ID] = model.AchievementProgress{
				Name:        rule.Name,
				Description: rule.Description,
				Icon:        rule.Icon,
				Current:     current,
				Target:      rule.Target,
				Percentage:  percentage,
			}
		}
	}

	report.TotalEarned = len(report.Achievements)
	return report
}

// GetUserAchievements 读取统计和满分记录后求值
func (s *AchievementService) GetUserAchievements(userID uint) (*model.AchievementReport, error) {
	stats, err := s.StatsRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}

	hasPerfect, err := s.AttemptRepo.HasPerfectScore(userID)
	if err != nil {
		return nil, err
	}

	return s.Evaluate(stats, hasPerfect), nil
}
