package repository

import (
	"english_edu_backend/internal/model"
	"time"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.DB.Create(attempt).Error
}

// ListByUser 用户全部提交，按完成时间升序
func (r *AttemptRepository) ListByUser(userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&attempts).
		Error
	return attempts, err
}

func (r *AttemptRepository) ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).
		Order("completed_at DESC").
		Find(&attempts).
		Error
	return attempts, err
}

// ListRecentWithQuiz 最近 N 条提交，带测验标题和课程主题，供仪表盘展示
func (r *AttemptRepository) ListRecentWithQuiz(userID uint, limit int) ([]model.AttemptWithTopic, error) {
	var rows []model.AttemptWithTopic
	err := r.DB.Model(&model.QuizAttempt{}).
		Select("quiz_attempts.*, quizzes.title AS quiz_title, COALESCE(lessons.topic, ?) AS topic", model.TopicGeneral).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("LEFT JOIN lessons ON lessons.id = quizzes.lesson_id").
		Where("quiz_attempts.user_id = ?", userID).
		Order("quiz_attempts.completed_at DESC").
		Limit(limit).
		Scan(&rows).
		Error
	return rows, err
}

// ListSinceWithTopic 时间窗口内的提交，带主题，按完成时间升序。
// since 为零值时不限制时间
func (r *AttemptRepository) ListSinceWithTopic(userID uint, since time.Time) ([]model.AttemptWithTopic, error) {
	query := r.DB.Model(&model.QuizAttempt{}).
		Select("quiz_attempts.*, quizzes.title AS quiz_title, COALESCE(lessons.topic, ?) AS topic", model.TopicGeneral).
		Joins("JOIN quizzes ON quizzes.id = quiz_attempts.quiz_id").
		Joins("LEFT JOIN lessons ON lessons.id = quizzes.lesson_id").
		Where("quiz_attempts.user_id = ?", userID)
	if !since.IsZero() {
		query = query.Where("quiz_attempts.completed_at >= ?", since)
	}

	var rows []model.AttemptWithTopic
	err := query.Order("quiz_attempts.completed_at ASC").Scan(&rows).Error
	return rows, err
}

// HasPerfectScore 是否存在满分提交
func (r *AttemptRepository) HasPerfectScore(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.QuizAttempt{}).
		Where("user_id = ? AND score = ?", userID, 100.0).
		Count(&count).
		Error
	return count > 0, err
}
