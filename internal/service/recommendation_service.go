package service

import (
	"fmt"
	"strings"

	"english_edu_backend/internal/model"
)

// RecommendationRule 单条建议规则：条件满足则产出一条建议。
// 规则相互独立，命中的全部生效，不是首个命中即停
type RecommendationRule func(user *model.User, stats *model.UserStatistics) *model.Recommendation

// RecommendationService 基于聚合统计给出文字化学习建议
type RecommendationService struct {
	rules []RecommendationRule
}

func NewRecommendationService(rules []RecommendationRule) *RecommendationService {
	return &RecommendationService{rules: rules}
}

func (s *RecommendationService) Recommend(user *model.User, stats *model.UserStatistics) []model.Recommendation {
	recommendations := []model.Recommendation{}
	for _, rule := range s.rules {
		if rec := rule(user, stats); rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}
	return recommendations
}

// DefaultRecommendationRules 固定的有序规则表
func DefaultRecommendationRules() []RecommendationRule {
	return []RecommendationRule{
		// 均分过低 → 回到基础
		func(_ *model.User, stats *model.UserStatistics) *model.Recommendation {
			if stats.AverageScore >= 70 {
				return nil
			}
			return &model.Recommendation{
				Type:        "improvement",
				Title:       "Focus on Fundamentals",
				Description: "Your average score is below 70%. Consider reviewing basic concepts.",
				Action:      "Take beginner level quizzes",
			}
		},
		// 表现超出自报水平 → 建议升级
		func(user *model.User, stats *model.UserStatistics) *model.Recommendation {
			if stats.AverageScore <= 85 || user.Level != model.LevelBeginner {
				return nil
			}
			return &model.Recommendation{
				Type:        "advancement",
				Title:       "Ready for Next Level",
				Description: "Your performance suggests you're ready for intermediate level.",
				Action:      "Try intermediate quizzes",
			}
		},
		// 连续学习中断 → 激励重启
		func(_ *model.User, stats *model.UserStatistics) *model.Recommendation {
			if stats.CurrentStreakDays != 0 {
				return nil
			}
			return &model.Recommendation{
				Type:        "motivation",
				Title:       "Get Back on Track",
				Description: "Start a new learning streak today!",
				Action:      "Take a quick quiz",
			}
		},
		// 连续一周以上 → 表扬
		func(_ *model.User, stats *model.UserStatistics) *model.Recommendation {
			if stats.CurrentStreakDays < 7 {
				return nil
			}
			return &model.Recommendation{
				Type:        "congratulations",
				Title:       "Great Streak!",
				Description: fmt.Sprintf("You've maintained a %d-day streak. Keep it up!", stats.CurrentStreakDays),
				Action:      "Continue your momentum",
			}
		},
		// 弱项主题：描述列出全部，行动只点名第一个
		func(_ *model.User, stats *model.UserStatistics) *model.Recommendation {
			weak := weakTopics(stats)
			if len(weak) == 0 {
				return nil
			}
			return &model.Recommendation{
				Type:        "focus",
				Title:       "Strengthen Weak Areas",
				Description: "Consider focusing on: " + strings.Join(weak, ", "),
				Action:      fmt.Sprintf("Practice %s exercises", weak[0]),
			}
		},
	}
}

// weakTopics 主题分在 (0, 70) 开区间内视为弱项。
// 0 分代表"从未练过"，不算弱项；listening 不在此建议范围内
func weakTopics(stats *model.UserStatistics) []string {
	var weak []string
	if stats.GrammarScore > 0 && stats.GrammarScore < 70 {
		weak = append(weak, model.TopicGrammar)
	}
	if stats.VocabularyScore > 0 && stats.VocabularyScore < 70 {
		weak = append(weak, model.TopicVocabulary)
	}
	if stats.ReadingScore > 0 && stats.ReadingScore < 70 {
		weak = append(weak, model.TopicReading)
	}
	return weak
}
