package controller

import (
	"english_edu_backend/internal/model"
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	ContentService    *service.ContentService
	StatisticsService *service.StatisticsService
	AttemptRepo       AttemptLister
}

// AttemptLister 提交记录查询，只读
type AttemptLister interface {
	ListByUserAndQuiz(userID, quizID uint) ([]model.QuizAttempt, error)
}

func NewQuizController(content *service.ContentService, statistics *service.StatisticsService, attempts AttemptLister) *QuizController {
	return &QuizController{
		ContentService:    content,
		StatisticsService: statistics,
		AttemptRepo:       attempts,
	}
}

// SubmitQuizRequest 测验提交载荷；timings 仅作诊断数据
type SubmitQuizRequest struct {
	Answers          model.AnswerSet `json:"answers" binding:"required"`
	Timings          model.TimingSet `json:"timings"`
	TimeTakenMinutes *float64        `json:"time_taken_minutes"`
}

// @Summary 测验列表
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param level query string false "难度过滤"
// @Param lesson_id query int false "课程过滤"
// @Success 200 {object} util.Response
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	lessonID := util.MustParseUint(ctx.Query("lesson_id"))

	quizzes, total, err := c.ContentService.ListQuizzes(page, limit, ctx.Query("level"), lessonID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// 列表不带题目，避免答案泄露
	util.Success(ctx, util.PageResponse{
		List:  quizzes,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 测验详情
// @Description 返回不含正确答案的题目，供答题使用
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.ContentService.GetQuiz(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"quiz":      quiz,
		"questions": quiz.Questions.Sanitized(),
	})
}

// @Summary 录入测验
// @Description 内容协作方生成的题目集在这里入库
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param quiz body service.QuizRequest true "测验内容"
// @Success 201 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.ContentService.CreateQuiz(&req)
	if err != nil {
		switch err {
		case util.ErrInvalidQuestions:
			util.BadRequest(ctx, err.Error())
		case util.ErrLessonNotFound:
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, quiz)
}

// @Summary 提交测验
// @Description 评分并更新用户统计，返回得分、正确答案和最新统计
// @Tags 测验
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Param submission body SubmitQuizRequest true "答案"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SubmitQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.StatisticsService.SubmitQuiz(
		claims.UserID,
		util.MustParseUint(ctx.Param("id")),
		req.Answers,
		req.Timings,
		req.TimeTakenMinutes,
	)
	if err != nil {
		switch err {
		case util.ErrAnswersRequired:
			util.BadRequest(ctx, err.Error())
		case util.ErrQuizNotFound:
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// @Summary 测验提交历史
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) GetAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.AttemptRepo.ListByUserAndQuiz(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"attempts": attempts})
}

// @Summary 删除测验
// @Tags 测验
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.ContentService.DeleteQuiz(util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrQuizNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "quiz deleted"})
}
