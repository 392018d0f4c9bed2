package util

import "errors"

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrEmailRegistered    = errors.New("该邮箱已被注册")
	ErrUsernameTaken      = errors.New("该用户名已被占用")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrAnswersRequired    = errors.New("answers are required")
	ErrInvalidQuestions   = errors.New("invalid question set")
	ErrInvalidPeriod      = errors.New("invalid period, expected week/month/year/all")
	ErrStatsNotFound      = errors.New("statistics not found")
)
