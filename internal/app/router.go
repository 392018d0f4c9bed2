package app

import (
	"english_edu_backend/internal/config"
	"english_edu_backend/internal/middleware"
	"english_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerUserRoutes(authGroup, c)
		a.registerLearningRoutes(authGroup, c)
		a.registerStatisticsRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerUserRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/profile", c.auth.GetProfile)
	rg.PUT("/auth/profile", c.auth.UpdateProfile)
	rg.POST("/auth/change-password", c.auth.ChangePassword)
	rg.DELETE("/auth/account", c.auth.DeleteAccount)
}

func (a *App) registerLearningRoutes(rg *gin.RouterGroup, c *controllers) {
	// 课程
	rg.GET("/lessons", c.lesson.ListLessons)
	rg.GET("/lessons/topics", c.lesson.ListTopics)
	rg.GET("/lessons/:id", c.lesson.GetLesson)
	rg.POST("/lessons", c.lesson.CreateLesson)
	rg.PUT("/lessons/:id", c.lesson.UpdateLesson)
	rg.DELETE("/lessons/:id", c.lesson.DeleteLesson)
	rg.POST("/lessons/:id/complete", c.lesson.CompleteLesson)
	rg.POST("/lessons/:id/audio", c.lesson.UploadAudio)

	// 测验
	rg.GET("/quizzes", c.quiz.ListQuizzes)
	rg.GET("/quizzes/:id", c.quiz.GetQuiz)
	rg.POST("/quizzes", c.quiz.CreateQuiz)
	rg.DELETE("/quizzes/:id", c.quiz.DeleteQuiz)
	rg.POST("/quizzes/:id/submit", c.quiz.SubmitQuiz)
	rg.GET("/quizzes/:id/attempts", c.quiz.GetAttempts)
}

func (a *App) registerStatisticsRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/statistics", c.statistics.GetStatistics)
	rg.GET("/statistics/dashboard", c.statistics.GetDashboard)
	rg.GET("/statistics/progress", c.statistics.GetProgress)
	rg.GET("/statistics/leaderboard", c.statistics.GetLeaderboard)
	rg.GET("/statistics/achievements", c.statistics.GetAchievements)
	rg.GET("/statistics/export", c.statistics.ExportStatistics)
}
