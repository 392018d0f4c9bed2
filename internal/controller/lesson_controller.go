package controller

import (
	"english_edu_backend/internal/service"
	"english_edu_backend/internal/util"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	ContentService    *service.ContentService
	StatisticsService *service.StatisticsService
	StorageService    *service.StorageService
}

func NewLessonController(content *service.ContentService, statistics *service.StatisticsService, storage *service.StorageService) *LessonController {
	return &LessonController{
		ContentService:    content,
		StatisticsService: statistics,
		StorageService:    storage,
	}
}

// @Summary 课程列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(10)
// @Param level query string false "难度过滤"
// @Param topic query string false "主题过滤"
// @Success 200 {object} util.Response
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	lessons, total, err := c.ContentService.ListLessons(page, limit, ctx.Query("level"), ctx.Query("topic"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  lessons,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// @Summary 课程详情
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.ContentService.GetLesson(util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrLessonNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, lesson)
}

// @Summary 录入课程
// @Description 内容协作方生成的课程在这里入库
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param lesson body service.LessonRequest true "课程内容"
// @Success 201 {object} util.Response
// @Router /api/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.CreateLesson(&req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Created(ctx, lesson)
}

// @Summary 更新课程
// @Tags 课程
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param lesson body service.LessonRequest true "课程内容"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson, err := c.ContentService.UpdateLesson(util.MustParseUint(ctx.Param("id")), &req)
	if err != nil {
		if err == util.ErrLessonNotFound {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}

	util.Success(ctx, lesson)
}

// @Summary 删除课程
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	if err := c.ContentService.DeleteLesson(util.MustParseUint(ctx.Param("id"))); err != nil {
		if err == util.ErrLessonNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"message": "lesson deleted"})
}

// @Summary 完成课程
// @Description 记录课程完成：课程数 +1、经验 +5、累计学习时长
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	stats, err := c.StatisticsService.CompleteLesson(claims.UserID, util.MustParseUint(ctx.Param("id")))
	if err != nil {
		if err == util.ErrLessonNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"message":    "lesson completed",
		"statistics": stats,
	})
}

// @Summary 课程主题列表
// @Tags 课程
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/lessons/topics [get]
func (c *LessonController) ListTopics(ctx *gin.Context) {
	topics, err := c.ContentService.ListTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"topics": topics})
}

// @Summary 上传听力音频
// @Description 为听力课程上传音频文件并挂到课程上
// @Tags 课程
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "课程ID"
// @Param file formData file true "音频文件"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/audio [post]
func (c *LessonController) UploadAudio(ctx *gin.Context) {
	lessonID := util.MustParseUint(ctx.Param("id"))

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "audio file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	allowed := false
	for _, e := range util.AllowedAudioExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(ctx, "unsupported audio format: "+ext)
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	filename := "lessons/audio/" + strconv.FormatInt(time.Now().UnixNano(), 10) + ext
	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, file, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	lesson, err := c.ContentService.AttachLessonAudio(lessonID, url)
	if err != nil {
		if err == util.ErrLessonNotFound {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, lesson)
}
