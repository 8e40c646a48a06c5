package app

import (
	"eduverse_backend/docs"
	"eduverse_backend/internal/config"
	"eduverse_backend/internal/middleware"
	"eduverse_backend/internal/model"

	"eduverse_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/api/health", c.health.Health)

	// 1. public
	user := router.Group("/api/v1/user")
	user.POST("/signup", c.auth.Signup)
	user.POST("/login", c.auth.Login)

	// 2. any signed-in account
	authGroup := user.Group("")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerAccountRoutes(authGroup, c)
		a.registerStudentRoutes(authGroup.Group("/student"), c)

		teacher := authGroup.Group("/teacher")
		teacher.Use(middleware.RoleMiddleware(model.Teacher))
		a.registerTeacherRoutes(teacher, c)
	}

	// 3. admin
	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerAccountRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.PATCH("/update/:id", c.user.UpdateProfile)
	rg.GET("/get", c.user.GetUserByEmail)
	rg.GET("/roadmap/:courseId/:studentId", c.roadmap.BuildRoadmap)
	rg.GET("/course/:id", c.leaderboard.Leaderboard)
	rg.GET("/assignments", c.assignment.ListAssignments)

	chat := rg.Group("/chat/message")
	{
		chat.POST("/add", c.chat.AddMessage)
		chat.GET("/get", c.chat.GetMessages)
		chat.DELETE("/delete", c.chat.DeleteMessages)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	course := rg.Group("/course")
	{
		course.GET("/", c.course.ListCourses)
		course.GET("/get-course/:id", c.course.GetCourse)
		course.POST("/give/recommendation", c.recommendation.Recommend)
		course.GET("/similar-courses/:id", c.recommendation.SimilarCourses)
		course.POST("/quiz", c.quiz.SubmitEvaluation)

		course.POST("/:studentId", c.enrollment.Enroll)
		course.GET("/:studentId", c.course.ListCoursesByStudent)
		course.DELETE("/:studentId", c.enrollment.Unenroll)
	}

	rg.POST("/assignment/:assignmentId", c.assignment.SubmitAssignment)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	course := rg.Group("/course")
	{
		course.POST("/", c.course.CreateCourse)
		course.GET("/", c.course.ListCoursesByInstructor)
		course.GET("/get-course/:id", c.course.GetCourse)
		course.GET("/get-course/:id/:moduleIndex", c.quiz.GetQuiz)
		course.POST("/get-course/:id/:moduleIndex", c.quiz.GenerateQuiz)
		course.GET("/roadmap/:id", c.course.GenerateModules)
		course.POST("/roadmap/:id/content", c.course.UploadModuleContent)
	}

	assignment := rg.Group("/assignment")
	{
		assignment.POST("", c.assignment.CreateAssignment)
		assignment.PATCH("/submission/:submissionId", c.assignment.GradeSubmission)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/v1/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.GET("/courses", c.admin.ListCourses)
		admin.GET("/assignments", c.admin.ListAssignments)
	}
}
