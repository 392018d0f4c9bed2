package model

import (
	"math"
	"time"
)

// 等级经验阈值：beginner [0,100)，intermediate [100,500)，advanced [500,∞)
const (
	IntermediateXP = 100
	AdvancedXP     = 500
)

// UserStatistics 每个用户一行的聚合统计，首次提交测验时懒创建
// swagger:model UserStatistics
type UserStatistics struct {
	BaseModel
	UserID uint `gorm:"uniqueIndex;not null" json:"userId"`

	// 总量统计
	TotalLessonsCompleted int     `gorm:"default:0" json:"totalLessonsCompleted"`
	TotalQuizzesTaken     int     `gorm:"default:0" json:"totalQuizzesTaken"`
	TotalQuizzesPassed    int     `gorm:"default:0" json:"totalQuizzesPassed"`
	AverageScore          float64 `gorm:"default:0" json:"averageScore"`
	TotalStudyTimeMinutes int     `gorm:"default:0" json:"totalStudyTimeMinutes"`

	// 等级进度
	CurrentLevel     UserLevel `gorm:"size:20;default:'beginner'" json:"currentLevel"`
	ExperiencePoints int       `gorm:"default:0" json:"experiencePoints"`

	// 连续学习
	CurrentStreakDays int        `gorm:"default:0" json:"currentStreakDays"`
	LongestStreakDays int        `gorm:"default:0" json:"longestStreakDays"`
	LastActivityDate  *time.Time `gorm:"type:date" json:"lastActivityDate,omitempty"`

	// 分主题表现
	GrammarScore    float64 `gorm:"default:0" json:"grammarScore"`
	VocabularyScore float64 `gorm:"default:0" json:"vocabularyScore"`
	ReadingScore    float64 `gorm:"default:0" json:"readingScore"`
	ListeningScore  float64 `gorm:"default:0" json:"listeningScore"`
}

func (UserStatistics) TableName() string {
	return "user_statistics"
}

// Round2 保留两位小数，0.5 向远离零方向进位
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// RecomputeFromAttempts 从完整历史重算累计量。
// 全量重算而非增量累加，重试或补录提交时不会重复计数
func (s *UserStatistics) RecomputeFromAttempts(attempts []QuizAttempt) {
	s.TotalQuizzesTaken = len(attempts)

	xp := 0
	sum := 0.0
	for _, a := range attempts {
		xp += int(a.Score) // 截断而非四舍五入
		sum += a.Score
	}
	s.ExperiencePoints = xp

	if len(attempts) == 0 {
		s.AverageScore = 0
	} else {
		s.AverageScore = Round2(sum / float64(len(attempts)))
	}
}

// RecordQuizResult 增量维护通过数和学习时长
func (s *UserStatistics) RecordQuizResult(attempt *QuizAttempt) {
	if attempt.IsPassed {
		s.TotalQuizzesPassed++
	}
	if attempt.TimeTakenMinutes != nil {
		s.TotalStudyTimeMinutes += int(*attempt.TimeTakenMinutes)
	}
}

// RecordLessonCompletion 课程完成走独立路径：课程数 +1，固定 5 点经验，累计时长
func (s *UserStatistics) RecordLessonCompletion(lesson *Lesson) {
	s.TotalLessonsCompleted++
	s.ExperiencePoints += 5
	s.TotalStudyTimeMinutes += lesson.DurationMinutes
}

// UpdateTopicScore 主题分采用对半滑动平均。
// 已知近似：主题分为 0 时视作"没有历史数据"，与真实得了接近 0 分无法区分
func (s *UserStatistics) UpdateTopicScore(topic string, score float64) {
	update := func(prev float64) float64 {
		if prev > 0 {
			return (prev + score) / 2
		}
		return score
	}

	switch topic {
	case TopicGrammar:
		s.GrammarScore = update(s.GrammarScore)
	case TopicVocabulary:
		s.VocabularyScore = update(s.VocabularyScore)
	case TopicReading:
		s.ReadingScore = update(s.ReadingScore)
	case TopicListening:
		s.ListeningScore = update(s.ListeningScore)
	}
}

// UpdateStreak 按 UTC 日期维护连续学习天数。
// 同一天多次提交不重复计数；隔天 +1；隔两天及以上（或时钟回拨）重置为 1
func (s *UserStatistics) UpdateStreak(now time.Time) {
	today := truncateToDay(now.UTC())

	switch {
	case s.LastActivityDate == nil:
		s.CurrentStreakDays = 1
		s.LastActivityDate = &today
	case truncateToDay(*s.LastActivityDate).Equal(today):
		// 今天已经计过
	default:
		days := int(today.Sub(truncateToDay(*s.LastActivityDate)).Hours() / 24)
		if days == 1 {
			s.CurrentStreakDays++
		} else {
			s.CurrentStreakDays = 1
		}
		s.LastActivityDate = &today
	}

	if s.CurrentStreakDays > s.LongestStreakDays {
		s.LongestStreakDays = s.CurrentStreakDays
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// LevelProgress 等级进度信息
type LevelProgress struct {
	CurrentLevel       UserLevel `json:"current_level"`
	ProgressPercentage float64   `json:"progress_percentage"`
	XPCurrent          int       `json:"xp_current"`
	XPNeeded           *int      `json:"xp_needed,omitempty"` // advanced 没有上限
}

// SyncLevel 根据经验值推导当前等级并返回进度。
// current_level 只由经验值派生，不允许外部单独设置
func (s *UserStatistics) SyncLevel() LevelProgress {
	xp := s.ExperiencePoints

	switch {
	case xp < IntermediateXP:
		s.CurrentLevel = LevelBeginner
		needed := IntermediateXP
		return LevelProgress{
			CurrentLevel:       LevelBeginner,
			ProgressPercentage: levelPercent(xp, 0, IntermediateXP),
			XPCurrent:          xp,
			XPNeeded:           &needed,
		}
	case xp < AdvancedXP:
		s.CurrentLevel = LevelIntermediate
		needed := AdvancedXP
		return LevelProgress{
			CurrentLevel:       LevelIntermediate,
			ProgressPercentage: levelPercent(xp, IntermediateXP, AdvancedXP),
			XPCurrent:          xp,
			XPNeeded:           &needed,
		}
	default:
		s.CurrentLevel = LevelAdvanced
		return LevelProgress{
			CurrentLevel:       LevelAdvanced,
			ProgressPercentage: 100,
			XPCurrent:          xp,
		}
	}
}

func levelPercent(xp, floor, ceiling int) float64 {
	p := float64(xp-floor) / float64(ceiling-floor) * 100
	if p > 100 {
		p = 100
	}
	return p
}

// PassRate 通过率，没有提交时为 0
func (s *UserStatistics) PassRate() float64 {
	if s.TotalQuizzesTaken == 0 {
		return 0
	}
	return Round2(float64(s.TotalQuizzesPassed) / float64(s.TotalQuizzesTaken) * 100)
}

// TopicScores 四个主题分的快照
func (s *UserStatistics) TopicScores() map[string]float64 {
	return map[string]float64{
		TopicGrammar:    Round2(s.GrammarScore),
		TopicVocabulary: Round2(s.VocabularyScore),
		TopicReading:    Round2(s.ReadingScore),
		TopicListening:  Round2(s.ListeningScore),
	}
}
