package repository

import (
	"english_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StatisticsRepository struct {
	DB *gorm.DB
}

func NewStatisticsRepository(db *gorm.DB) *StatisticsRepository {
	return &StatisticsRepository{DB: db}
}

func (r *StatisticsRepository) FindByUserID(userID uint) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	return &stats, err
}

// FindOrCreate 统计行懒创建
func (r *StatisticsRepository) FindOrCreate(userID uint) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	if err == gorm.ErrRecordNotFound {
		stats = model.UserStatistics{UserID: userID, CurrentLevel: model.LevelBeginner}
		if err := r.DB.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// LockForUpdate 在事务内按用户行加锁取统计，不存在则先建。
// 同一用户的并发提交靠这把行锁串行化
func (r *StatisticsRepository) LockForUpdate(tx *gorm.DB, userID uint) (*model.UserStatistics, error) {
	var stats model.UserStatistics
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&stats).
		Error
	if err == gorm.ErrRecordNotFound {
		stats = model.UserStatistics{UserID: userID, CurrentLevel: model.LevelBeginner}
		if err := tx.Create(&stats).Error; err != nil {
			return nil, err
		}
		// 重新取一次以持有行锁
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).
			First(&stats).
			Error
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *StatisticsRepository) Save(tx *gorm.DB, stats *model.UserStatistics) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Save(stats).Error
}

// LeaderboardRow 统计与用户表连查得到的排行榜原始行
type LeaderboardRow struct {
	UserID            uint
	Username          string
	Level             model.UserLevel
	ExperiencePoints  int
	TotalQuizzesTaken int
	AverageScore      float64
	CurrentStreakDays int
}

// TopByExperience 取经验值最高的前 N 名，
// 同分按用户 id 升序，保证名次确定
func (r *StatisticsRepository) TopByExperience(limit int) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	err := r.DB.Model(&model.UserStatistics{}).
		Select(`user_statistics.user_id, users.username, users.level,
			user_statistics.experience_points, user_statistics.total_quizzes_taken,
			user_statistics.average_score, user_statistics.current_streak_days`).
		Joins("JOIN users ON users.id = user_statistics.user_id").
		Order("user_statistics.experience_points DESC, user_statistics.user_id ASC").
		Limit(limit).
		Scan(&rows).
		Error
	return rows, err
}

// CountRankedAbove 经验值高于给定值的用户数，用于推算榜外名次
func (r *StatisticsRepository) CountRankedAbove(xp int, userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserStatistics{}).
		Where("experience_points > ? OR (experience_points = ? AND user_id < ?)", xp, xp, userID).
		Count(&count).
		Error
	return count, err
}
