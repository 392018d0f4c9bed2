package model

import (
	"time"
)

// QuizAttempt 一次已完成的测验提交，创建后不可变
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	UserID           uint      `gorm:"index;not null" json:"userId"`
	QuizID           uint      `gorm:"index;not null" json:"quizId"`
	Answers          AnswerSet `gorm:"type:json;not null" json:"answers"`
	Score            float64   `gorm:"not null" json:"score"` // 百分比得分 [0,100]
	TimeTakenMinutes *float64  `json:"timeTakenMinutes,omitempty"`
	CompletedAt      time.Time `gorm:"index;not null" json:"completedAt"`
	IsPassed         bool      `gorm:"not null" json:"isPassed"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// AttemptWithTopic 带课程主题的提交记录，进度报表按主题分组时使用
type AttemptWithTopic struct {
	QuizAttempt
	Topic     string `json:"topic"`
	QuizTitle string `json:"quizTitle"`
}
