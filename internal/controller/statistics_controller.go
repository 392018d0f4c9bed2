package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type StatisticsController struct {
	StatisticsService  *service.StatisticsService
	ProgressService    *service.ProgressService
	AchievementService *service.AchievementService
}

func NewStatisticsController(statistics *service.StatisticsService, progress *service.ProgressService, achievements *service.AchievementService) *StatisticsController {
	return &StatisticsController{
		StatisticsService:  statistics,
		ProgressService:    progress,
		AchievementService: achievements,
	}
}

// @Summary 学习统计
// @Description 当前用户的累计统计、等级进度和各主题表现
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/statistics [get]
func (c *StatisticsController) GetStatistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	view, err := c.StatisticsService.GetStatistics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, view)
}

// @Summary 学习面板
// @Description 统计汇总 + 最近提交 + 近7天活跃度 + 学习建议
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/statistics/dashboard [get]
func (c *StatisticsController) GetDashboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	dashboard, err := c.StatisticsService.GetDashboard(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, dashboard)
}

// @Summary 进度报告
// @Description 按时间段汇总各主题的成绩、通过率和趋势
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param period query string false "week/month/year/all" default(month)
// @Success 200 {object} util.Response
// @Router /api/statistics/progress [get]
func (c *StatisticsController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.ProgressService.GetProgress(claims.UserID, ctx.Query("period"))
	if err != nil {
		if err == util.ErrInvalidPeriod {
			util.BadRequest(ctx, err.Error())
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, report)
}

// @Summary 积分排行榜
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param limit query int false "榜单长度" default(10)
// @Success 200 {object} util.Response
// @Router /api/statistics/leaderboard [get]
func (c *StatisticsController) GetLeaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))
	board, err := c.ProgressService.GetLeaderboard(ctx.Request.Context(), claims.UserID, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, board)
}

// @Summary 成就列表
// @Description 已解锁成就与未解锁成就的完成进度
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/statistics/achievements [get]
func (c *StatisticsController) GetAchievements(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	report, err := c.AchievementService.GetUserAchievements(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, report)
}

// @Summary 导出学习数据
// @Description 完整统计与提交历史，供用户备份
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/statistics/export [get]
func (c *StatisticsController) ExportStatistics(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	export, err := c.StatisticsService.ExportStatistics(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename=learning_statistics.json")
	util.Success(ctx, export)
}
