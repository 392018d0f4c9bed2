package service

import (
	"time"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"
	"english_edu_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// StatisticsService 统计聚合器：把每次测验提交折叠进 UserStatistics，
// 并提供仪表盘、导出等读路径
type StatisticsService struct {
	StatsRepo   *repository.StatisticsRepository
	AttemptRepo *repository.AttemptRepository
	QuizRepo    *repository.QuizRepository
	LessonRepo  *repository.LessonRepository
	UserRepo    *repository.UserRepository
	Scoring     *ScoringService
	Recommender *RecommendationService
	DB          *gorm.DB

	// Now 可注入时钟，连续学习天数测试时替换
	Now func() time.Time
}

func NewStatisticsService(
	statsRepo *repository.StatisticsRepository,
	attemptRepo *repository.AttemptRepository,
	quizRepo *repository.QuizRepository,
	lessonRepo *repository.LessonRepository,
	userRepo *repository.UserRepository,
	scoring *ScoringService,
	recommender *RecommendationService,
	db *gorm.DB,
) *StatisticsService {
	return &StatisticsService{
		StatsRepo:   statsRepo,
		AttemptRepo: attemptRepo,
		QuizRepo:    quizRepo,
		LessonRepo:  lessonRepo,
		UserRepo:    userRepo,
		Scoring:     scoring,
		Recommender: recommender,
		DB:          db,
		Now:         time.Now,
	}
}

// SubmissionResult 测验提交的完整结果
type SubmissionResult struct {
	Attempt    *model.QuizAttempt    `json:"attempt"`
	Score      float64               `json:"score"`
	Accuracy   float64               `json:"accuracy"`
	IsPassed   bool                  `json:"is_passed"`
	Questions  model.QuestionList    `json:"questionsWithAnswers"` // 提交后回显正确答案
	Statistics *model.StatisticsView `json:"statistics"`
}

// SubmitQuiz 评分并把结果折叠进用户统计。
// 整个读-改-写在一个事务里完成，统计行加行锁，
// 同一用户并发提交不会交错出部分更新
func (s *StatisticsService) SubmitQuiz(userID, quizID uint, answers model.AnswerSet, timings model.TimingSet, timeTaken *float64) (*SubmissionResult, error) {
	if len(answers) == 0 {
		return nil, util.ErrAnswersRequired
	}

	quiz, err := s.QuizRepo.FindByIDWithLesson(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	// timings 只是诊断数据，评分不看
	score, correct := s.Scoring.Score(quiz.Questions, answers)
	accuracy := s.Scoring.Accuracy(correct, len(quiz.Questions))
	isPassed := score >= float64(quiz.PassingScore)

	attempt := &model.QuizAttempt{
		UserID:           userID,
		QuizID:           quizID,
		Answers:          answers,
		Score:            score,
		TimeTakenMinutes: timeTaken,
		CompletedAt:      s.Now().UTC(),
		IsPassed:         isPassed,
	}

	var stats *model.UserStatistics
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attempt).Error; err != nil {
			return err
		}

		stats, err = s.StatsRepo.LockForUpdate(tx, userID)
		if err != nil {
			return err
		}

		// 累计量从完整历史重算，通过数走增量
		var attempts []model.QuizAttempt
		if err := tx.Where("user_id = ?", userID).Order("completed_at ASC").Find(&attempts).Error; err != nil {
			return err
		}
		stats.RecomputeFromAttempts(attempts)
		stats.RecordQuizResult(attempt)

		if quiz.Lesson != nil {
			stats.UpdateTopicScore(quiz.Lesson.Topic, score)
		}

		stats.UpdateStreak(s.Now())
		stats.SyncLevel()

		return s.StatsRepo.Save(tx, stats)
	})
	if err != nil {
		return nil, err
	}

	monitoring.RecordQuizSubmission(score, isPassed)

	view, err := s.buildView(stats)
	if err != nil {
		return nil, err
	}

	return &SubmissionResult{
		Attempt:    attempt,
		Score:      score,
		Accuracy:   accuracy,
		IsPassed:   isPassed,
		Questions:  quiz.Questions,
		Statistics: view,
	}, nil
}

// CompleteLesson 课程完成走独立更新路径，不影响测验相关计数
func (s *StatisticsService) CompleteLesson(userID, lessonID uint) (*model.StatisticsView, error) {
	lesson, err := s.LessonRepo.FindByID(lessonID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrLessonNotFound
		}
		return nil, err
	}

	var stats *model.UserStatistics
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		stats, err = s.StatsRepo.LockForUpdate(tx, userID)
		if err != nil {
			return err
		}
		stats.RecordLessonCompletion(lesson)
		stats.SyncLevel()
		return s.StatsRepo.Save(tx, stats)
	})
	if err != nil {
		return nil, err
	}

	monitoring.LessonCompletions.Inc()

	return s.buildView(stats)
}

// GetStatistics 用户统计视图，不存在时懒创建
func (s *StatisticsService) GetStatistics(userID uint) (*model.StatisticsView, error) {
	stats, err := s.StatsRepo.FindOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return s.buildView(stats)
}

// GetDashboard 仪表盘：统计 + 最近提交 + 近 7 天按日聚合 + 学习建议
func (s *StatisticsService) GetDashboard(userID uint) (*model.Dashboard, error) {
	view, err := s.GetStatistics(userID)
	if err != nil {
		return nil, err
	}

	recentRows, err := s.AttemptRepo.ListRecentWithQuiz(userID, 10)
	if err != nil {
		return nil, err
	}
	recent := make([]model.RecentAttempt, 0, len(recentRows))
	for _, row := range recentRows {
		recent = append(recent, model.RecentAttempt{
			QuizAttempt: row.QuizAttempt,
			QuizTitle:   row.QuizTitle,
			QuizTopic:   row.Topic,
		})
	}

	now := s.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7)
	weekly, err := s.AttemptRepo.ListSinceWithTopic(userID, weekAgo)
	if err != nil {
		return nil, err
	}

	var user *model.User
	user, err = s.UserRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}

	return &model.Dashboard{
		Statistics:      view,
		RecentAttempts:  recent,
		WeeklyProgress:  BuildDailyProgress(weekly, now),
		Recommendations: s.Recommender.Recommend(user, &view.UserStatistics),
	}, nil
}

// ExportStatistics 导出用户全部学习数据
func (s *StatisticsService) ExportStatistics(userID uint) (*model.StatisticsExport, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	view, err := s.GetStatistics(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	return &model.StatisticsExport{
		User:          user,
		Statistics:    view,
		QuizAttempts:  attempts,
		ExportDate:    s.Now().UTC(),
		TotalAttempts: len(attempts),
	}, nil
}

// buildView 组装对外视图：派生字段 + 全历史的主题表现
func (s *StatisticsService) buildView(stats *model.UserStatistics) (*model.StatisticsView, error) {
	attempts, err := s.AttemptRepo.ListSinceWithTopic(stats.UserID, time.Time{})
	if err != nil {
		return nil, err
	}

	// 等级从经验值同步后再对外呈现
	progress := stats.SyncLevel()

	return &model.StatisticsView{
		UserStatistics:   *stats,
		PassRate:         stats.PassRate(),
		StudyTimeHours:   model.Round2(float64(stats.TotalStudyTimeMinutes) / 60),
		LevelProgress:    progress,
		Scores:           stats.TopicScores(),
		TopicPerformance: BuildTopicPerformance(attempts),
	}, nil
}

// BuildDailyProgress 把一周内的提交聚合成按日桶（键为 UTC 日期）
func BuildDailyProgress(attempts []model.AttemptWithTopic, now time.Time) map[string]model.DailyProgress {
	buckets := make(map[string]model.DailyProgress, 7)
	sums := make(map[string]float64, 7)

	for i := 0; i < 7; i++ {
		date := now.AddDate(0, 0, -i).Format(util.DateFormat)
		buckets[date] = model.DailyProgress{}
	}

	for _, a := range attempts {
		date := a.CompletedAt.UTC().Format(util.DateFormat)
		bucket, ok := buckets[date]
		if !ok {
			continue
		}
		bucket.QuizzesTaken++
		if a.TimeTakenMinutes != nil {
			bucket.TimeSpent += *a.TimeTakenMinutes
		}
		sums[date] += a.Score
		buckets[date] = bucket
	}

	for date, bucket := range buckets {
		if bucket.QuizzesTaken > 0 {
			bucket.AverageScore = sums[date] / float64(bucket.QuizzesTaken)
			buckets[date] = bucket
		}
	}

	return buckets
}

// BuildTopicPerformance 全历史按主题汇总：均分、次数、最高分。
// 没有课程主题的提交不参与汇总
func BuildTopicPerformance(attempts []model.AttemptWithTopic) []model.TopicPerformance {
	type agg struct {
		sum   float64
		count int
		best  float64
	}
	byTopic := make(map[string]*agg)
	var order []string

	for _, a := range attempts {
		if a.Topic == "" || a.Topic == model.TopicGeneral {
			continue
		}
		entry, ok := byTopic[a.Topic]
		if !ok {
			entry = &agg{}
			byTopic[a.Topic] = entry
			order = append(order, a.Topic)
		}
		entry.sum += a.Score
		entry.count++
		if a.Score > entry.best {
			entry.best = a.Score
		}
	}

	performance := make([]model.TopicPerformance, 0, len(order))
	for _, topic := range order {
		entry := byTopic[topic]
		performance = append(performance, model.TopicPerformance{
			Topic:        topic,
			AverageScore: model.Round2(entry.sum / float64(entry.count)),
			Attempts:     entry.count,
			BestScore:    entry.best,
		})
	}
	return performance
}
