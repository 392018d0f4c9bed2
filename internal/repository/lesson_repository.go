package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

// List 分页查询课程，支持按等级和主题过滤
func (r *LessonRepository) List(page, limit int, level, topic string) ([]model.Lesson, int64, error) {
	var lessons []model.Lesson
	var total int64

	query := r.DB.Model(&model.Lesson{}).Where("is_active = ?", true)
	if level != "" {
		query = query.Where("level = ?", level)
	}
	if topic != "" {
		query = query.Where("topic = ?", topic)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&lessons).Error
	return lessons, total, err
}

func (r *LessonRepository) Update(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Lesson{}, id).Error
}

// DistinctTopics 返回当前所有在用的课程主题
func (r *LessonRepository) DistinctTopics() ([]string, error) {
	var topics []string
	err := r.DB.Model(&model.Lesson{}).
		Where("is_active = ?", true).
		Distinct("topic").
		Order("topic ASC").
		Pluck("topic", &topics).
		Error
	return topics, err
}
