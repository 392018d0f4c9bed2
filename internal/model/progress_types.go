package model

import "time"

// TopicStats 按主题聚合的进度统计
type TopicStats struct {
	Attempts     int     `json:"attempts"`
	AverageScore float64 `json:"averageScore"`
	PassRate     float64 `json:"passRate"`
	AverageTime  float64 `json:"averageTime"` // 分钟
	TimeSpent    float64 `json:"timeSpent"`
	// Trend 为按时间排序后 后半段均分 - 前半段均分，
	// 只是粗粒度的两段对比，不是回归趋势
	Trend float64 `json:"trend"`
}

// OverallStats 跨主题总体统计，形状与 TopicStats 一致但不含趋势
type OverallStats struct {
	TotalAttempts  int     `json:"totalAttempts"`
	AverageScore   float64 `json:"averageScore"`
	TotalTimeSpent float64 `json:"totalTimeSpent"`
	PassRate       float64 `json:"passRate"`
}

// ProgressReport 指定时间窗口内的进度报表
type ProgressReport struct {
	Period       string                `json:"period"` // week, month, year, all
	OverallStats OverallStats          `json:"overallStats"`
	TopicStats   map[string]TopicStats `json:"topicStats"`
	TotalTopics  int                   `json:"totalTopics"`
}

// DailyProgress 仪表盘最近 7 天的单日数据
type DailyProgress struct {
	QuizzesTaken int     `json:"quizzesTaken"`
	AverageScore float64 `json:"averageScore"`
	TimeSpent    float64 `json:"timeSpent"`
}

// RecentAttempt 仪表盘展示用的最近提交
type RecentAttempt struct {
	QuizAttempt
	QuizTitle string `json:"quizTitle"`
	QuizTopic string `json:"quizTopic"`
}

// Dashboard 用户仪表盘聚合响应
type Dashboard struct {
	Statistics      *StatisticsView          `json:"userStatistics"`
	RecentAttempts  []RecentAttempt          `json:"recentAttempts"`
	WeeklyProgress  map[string]DailyProgress `json:"weeklyProgress"`
	Recommendations []Recommendation         `json:"recommendations"`
}

// TopicPerformance 单个主题的历史表现
type TopicPerformance struct {
	Topic        string  `json:"topic"`
	AverageScore float64 `json:"averageScore"`
	Attempts     int     `json:"attempts"`
	BestScore    float64 `json:"bestScore"`
}

// StatisticsView UserStatistics 的对外视图，带派生字段
type StatisticsView struct {
	UserStatistics
	PassRate         float64            `json:"passRate"`
	StudyTimeHours   float64            `json:"totalStudyTimeHours"`
	LevelProgress    LevelProgress      `json:"levelProgress"`
	Scores           map[string]float64 `json:"topicScores"`
	TopicPerformance []TopicPerformance `json:"topicPerformance"`
}

// LeaderboardEntry 排行榜单条记录
type LeaderboardEntry struct {
	Rank             int       `json:"rank"`
	UserID           uint      `json:"userId"`
	Username         string    `json:"username"`
	Level            UserLevel `json:"level"`
	ExperiencePoints int       `json:"experiencePoints"`
	TotalQuizzes     int       `json:"totalQuizzes"`
	AverageScore     float64   `json:"averageScore"`
	CurrentStreak    int       `json:"currentStreak"`
}

// Leaderboard 排行榜响应，附带当前用户名次
type Leaderboard struct {
	Entries         []LeaderboardEntry `json:"leaderboard"`
	CurrentUserRank int                `json:"currentUserRank"`
	TotalUsers      int64              `json:"totalUsers"`
}

// Recommendation 学习建议
type Recommendation struct {
	Type        string `json:"type"` // improvement, advancement, motivation, congratulations, focus
	Title       string `json:"title"`
	Description string `json:"description"`
	Action      string `json:"action"`
}

// EarnedAchievement 已达成的成就
type EarnedAchievement struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Earned      bool      `json:"earned"`
	EarnedDate  time.Time `json:"earnedDate"` // 取统计行的更新时间，精确解锁时刻未单独记录
}

// AchievementProgress 未达成成就的进度
type AchievementProgress struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Current     float64 `json:"current"`
	Target      float64 `json:"target"`
	Percentage  float64 `json:"percentage"`
}

// AchievementReport 成就评估结果
type AchievementReport struct {
	Achievements []EarnedAchievement            `json:"achievements"`
	Progress     map[string]AchievementProgress `json:"progress"`
	TotalEarned  int                            `json:"totalEarned"`
}

// StatisticsExport 用户数据导出
type StatisticsExport struct {
	User          *User           `json:"user"`
	Statistics    *StatisticsView `json:"statistics"`
	QuizAttempts  []QuizAttempt   `json:"quizAttempts"`
	ExportDate    time.Time       `json:"exportDate"`
	TotalAttempts int             `json:"totalAttempts"`
}
