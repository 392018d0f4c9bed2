package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// 课程主题，与统计里的四个 topic score 字段对应
const (
	TopicGrammar    = "grammar"
	TopicVocabulary = "vocabulary"
	TopicReading    = "reading"
	TopicListening  = "listening"
	// TopicGeneral 兜底分组，测验没有关联课程时使用
	TopicGeneral = "General"
)

// LessonContent 结构化课程内容，落库为 JSON 列
type LessonContent struct {
	Introduction string   `json:"introduction,omitempty"`
	Sections     []string `json:"sections,omitempty"`
	Examples     []string `json:"examples,omitempty"`
	Summary      string   `json:"summary,omitempty"`
}

func (c LessonContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *LessonContent) Scan(value interface{}) error {
	bytes, ok := value.([]byte)
	if !ok {
		if s, ok := value.(string); ok {
			bytes = []byte(s)
		} else {
			return fmt.Errorf("unsupported lesson content type %T", value)
		}
	}
	if len(bytes) == 0 {
		*c = LessonContent{}
		return nil
	}
	return json.Unmarshal(bytes, c)
}

// swagger:model Lesson
type Lesson struct {
	BaseModel
	Title           string        `gorm:"size:200;not null" json:"title"`
	Description     string        `gorm:"type:text" json:"description"`
	Content         LessonContent `gorm:"type:json" json:"content"`
	Level           UserLevel     `gorm:"size:20;not null" json:"level"`
	Topic           string        `gorm:"size:100;not null;index" json:"topic"` // grammar, vocabulary, reading, listening
	DurationMinutes int           `gorm:"default:15" json:"durationMinutes"`
	AudioURL        string        `gorm:"size:255" json:"audioUrl,omitempty"` // 听力课程音频
	IsActive        bool          `gorm:"default:true" json:"isActive"`
}

func (Lesson) TableName() string {
	return "lessons"
}

var validTopics = map[string]bool{
	TopicGrammar:    true,
	TopicVocabulary: true,
	TopicReading:    true,
	TopicListening:  true,
}

// ValidateTopic 校验课程主题是否是已知主题
func ValidateTopic(topic string) error {
	if !validTopics[topic] {
		return errors.New("unknown lesson topic: " + topic)
	}
	return nil
}
