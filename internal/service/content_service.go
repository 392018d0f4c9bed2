package service

import (
	"strings"

	"english_edu_backend/internal/model"
	"english_edu_backend/internal/repository"
	"english_edu_backend/internal/util"

	"gorm.io/gorm"
)

// ContentService 课程与测验的薄 CRUD 层。
// 内容本身由外部内容协作方（AI 生成侧）预先产出后提交进来，
// 这里只做结构校验和持久化，不发起任何生成调用
type ContentService struct {
	LessonRepo *repository.LessonRepository
	QuizRepo   *repository.QuizRepository
	Storage    *StorageService
}

func NewContentService(lessonRepo *repository.LessonRepository, quizRepo *repository.QuizRepository, storage *StorageService) *ContentService {
	return &ContentService{
		LessonRepo: lessonRepo,
		QuizRepo:   quizRepo,
		Storage:    storage,
	}
}

// LessonRequest 外部内容协作方提交的课程
type LessonRequest struct {
	Title           string              `json:"title" binding:"required"`
	Description     string              `json:"description"`
	Content         model.LessonContent `json:"content"`
	Level           model.UserLevel     `json:"level" binding:"required"`
	Topic           string              `json:"topic" binding:"required"`
	DurationMinutes int                 `json:"durationMinutes"`
}

// QuizRequest 外部内容协作方提交的测验，题目集必须带正确答案
type QuizRequest struct {
	LessonID         *uint              `json:"lessonId"`
	Title            string             `json:"title" binding:"required"`
	Description      string             `json:"description"`
	Questions        model.QuestionList `json:"questions" binding:"required"`
	Level            model.UserLevel    `json:"level" binding:"required"`
	QuizType         model.QuizType     `json:"quizType"`
	TimeLimitMinutes int                `json:"timeLimitMinutes"`
	PassingScore     int                `json:"passingScore"`
}

func (s *ContentService) CreateLesson(req *LessonRequest) (*model.Lesson, error) {
	topic := strings.ToLower(strings.TrimSpace(req.Topic))
	if err := model.ValidateTopic(topic); err != nil {
		return nil, err
	}

	lesson := &model.Lesson{
		Title:           req.Title,
		Description:     req.Description,
		Content:         req.Content,
		Level:           req.Level,
		Topic:           topic,
		DurationMinutes: req.DurationMinutes,
		IsActive:        true,
	}
	if lesson.DurationMinutes <= 0 {
		lesson.DurationMinutes = 15
	}

	return lesson, s.LessonRepo.Create(lesson)
}

func (s *ContentService) GetLesson(id uint) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrLessonNotFound
	}
	return lesson, err
}

func (s *ContentService) ListLessons(page, limit int, level, topic string) ([]model.Lesson, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.LessonRepo.List(page, limit, level, topic)
}

func (s *ContentService) ListTopics() ([]string, error) {
	return s.LessonRepo.DistinctTopics()
}

func (s *ContentService) UpdateLesson(id uint, req *LessonRequest) (*model.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}

	topic := strings.ToLower(strings.TrimSpace(req.Topic))
	if err := model.ValidateTopic(topic); err != nil {
		return nil, err
	}

	lesson.Title = req.Title
	lesson.Description = req.Description
	lesson.Content = req.Content
	lesson.Level = req.Level
	lesson.Topic = topic
	if req.DurationMinutes > 0 {
		lesson.DurationMinutes = req.DurationMinutes
	}

	return lesson, s.LessonRepo.Update(lesson)
}

func (s *ContentService) DeleteLesson(id uint) error {
	if _, err := s.GetLesson(id); err != nil {
		return err
	}
	return s.LessonRepo.Delete(id)
}

// AttachLessonAudio 给听力课程挂音频地址
func (s *ContentService) AttachLessonAudio(id uint, audioURL string) (*model.Lesson, error) {
	lesson, err := s.GetLesson(id)
	if err != nil {
		return nil, err
	}
	lesson.AudioURL = audioURL
	return lesson, s.LessonRepo.Update(lesson)
}

func (s *ContentService) CreateQuiz(req *QuizRequest) (*model.Quiz, error) {
	if len(req.Questions) == 0 {
		return nil, util.ErrInvalidQuestions
	}
	if err := req.Questions.Validate(); err != nil {
		return nil, util.ErrInvalidQuestions
	}

	if req.LessonID != nil {
		if _, err := s.GetLesson(*req.LessonID); err != nil {
			return nil, err
		}
	}

	quiz := &model.Quiz{
		LessonID:         req.LessonID,
		Title:            req.Title,
		Description:      req.Description,
		Questions:        req.Questions,
		Level:            req.Level,
		QuizType:         req.QuizType,
		TimeLimitMinutes: req.TimeLimitMinutes,
		PassingScore:     req.PassingScore,
		IsActive:         true,
	}
	if quiz.QuizType == "" {
		quiz.QuizType = model.MultipleChoice
	}
	if quiz.TimeLimitMinutes <= 0 {
		quiz.TimeLimitMinutes = 10
	}
	if quiz.PassingScore <= 0 {
		quiz.PassingScore = 70
	}

	return quiz, s.QuizRepo.Create(quiz)
}

func (s *ContentService) GetQuiz(id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDWithLesson(id)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrQuizNotFound
	}
	return quiz, err
}

func (s *ContentService) ListQuizzes(page, limit int, level string, lessonID uint) ([]model.Quiz, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.QuizRepo.List(page, limit, level, lessonID)
}

func (s *ContentService) DeleteQuiz(id uint) error {
	if _, err := s.GetQuiz(id); err != nil {
		return err
	}
	return s.QuizRepo.Delete(id)
}
