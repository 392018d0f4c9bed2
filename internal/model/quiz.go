package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type QuizType string

const (
	MultipleChoice QuizType = "multiple_choice"
	FillBlank      QuizType = "fill_blank"
	TrueFalse      QuizType = "true_false"
)

// QuizQuestion 单个测验题目，内容协作方（AI 侧）生成后写入，创建后不可变
type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Type          QuizType `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// QuestionList 落库为 JSON 列，读取时做结构校验，
// 避免原始 JSON 文档被随意写坏后静默失败
type QuestionList []QuizQuestion

func (q QuestionList) Value() (driver.Value, error) {
	return json.Marshal(q)
}

func (q *QuestionList) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("unsupported questions column type %T", value)
		}
	}
	if len(bytes) == 0 {
		*q = nil
		return nil
	}
	var parsed QuestionList
	if err := json.Unmarshal(bytes, &parsed); err != nil {
		return err
	}
	if err := parsed.Validate(); err != nil {
		return err
	}
	*q = parsed
	return nil
}

// Validate 检查题目集在持久化边界上的结构约束
func (q QuestionList) Validate() error {
	seen := make(map[int]bool, len(q))
	for _, question := range q {
		if question.ID <= 0 {
			return errors.New("question id must be positive")
		}
		if seen[question.ID] {
			return fmt.Errorf("duplicate question id %d", question.ID)
		}
		seen[question.ID] = true
		if question.Question == "" {
			return fmt.Errorf("question %d has empty prompt", question.ID)
		}
		if question.CorrectAnswer == "" {
			return fmt.Errorf("question %d has empty correct answer", question.ID)
		}
	}
	return nil
}

// Sanitized 去掉答案和解析，供答题前下发
func (q QuestionList) Sanitized() []SafeQuestion {
	safe := make([]SafeQuestion, 0, len(q))
	for _, question := range q {
		safe = append(safe, SafeQuestion{
			ID:       question.ID,
			Question: question.Question,
			Type:     question.Type,
			Options:  question.Options,
		})
	}
	return safe
}

// SafeQuestion 不含正确答案的题目视图
type SafeQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Type     QuizType `json:"type"`
	Options  []string `json:"options,omitempty"`
}

// AnswerSet 用户提交的答案，键是题目 id 的十进制字符串。
// 允许稀疏：缺失条目按未作答处理
type AnswerSet map[string]string

func (a AnswerSet) Value() (driver.Value, error) {
	if a == nil {
		a = AnswerSet{}
	}
	return json.Marshal(a)
}

func (a *AnswerSet) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("unsupported answers column type %T", value)
		}
	}
	if len(bytes) == 0 {
		*a = AnswerSet{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// TimingSet 每题答题耗时（秒），仅作诊断数据，不参与计分
type TimingSet map[string]float64

// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID         *uint        `gorm:"index" json:"lessonId,omitempty"`
	Lesson           *Lesson      `gorm:"foreignKey:LessonID" json:"lesson,omitempty"`
	Title            string       `gorm:"size:200;not null" json:"title"`
	Description      string       `gorm:"type:text" json:"description"`
	Questions        QuestionList `gorm:"type:json;not null" json:"-"`
	Level            UserLevel    `gorm:"size:20;not null" json:"level"`
	QuizType         QuizType     `gorm:"size:50;default:'multiple_choice'" json:"quizType"`
	TimeLimitMinutes int          `gorm:"default:10" json:"timeLimitMinutes"`
	PassingScore     int          `gorm:"default:70" json:"passingScore"` // 百分比及格线
	IsActive         bool         `gorm:"default:true" json:"isActive"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// Topic 返回测验关联课程的主题，没有课程时返回 General
func (q *Quiz) Topic() string {
	if q.Lesson != nil && q.Lesson.Topic != "" {
		return q.Lesson.Topic
	}
	return TopicGeneral
}
