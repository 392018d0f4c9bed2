package model

import (
	"time"
)

type UserLevel string

const (
	LevelBeginner     UserLevel = "beginner"
	LevelIntermediate UserLevel = "intermediate"
	LevelAdvanced     UserLevel = "advanced"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string    `gorm:"size:80;unique;not null" json:"username"`
	Email     string    `gorm:"size:120;unique;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FirstName string    `gorm:"size:50" json:"firstName"`
	LastName  string    `gorm:"size:50" json:"lastName"`
	Level     UserLevel `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"` // 用户自报水平，区别于统计推导的 current_level
	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
}

func (User) TableName() string {
	return "users"
}
