package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/eduinsight/eduinsight/internal/app/controllers"
	"github.com/eduinsight/eduinsight/internal/middleware"
)

// SetupRouter configures all application routes. Reads are public; anything
// that mutates data sits behind JWT auth.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	studentController *controllers.StudentController,
	recordController *controllers.RecordController,
	predictionController *controllers.PredictionController,
	dashboardController *controllers.DashboardController,
	pagesController *controllers.PagesController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// --- Server-rendered pages ---
	router.GET("/", pagesController.Dashboard)
	router.GET("/students", pagesController.StudentList)
	router.GET("/students/:id", pagesController.StudentDetail)

	// --- JSON API ---
	api := router.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	api.GET("/dashboard", dashboardController.GetDashboard)

	students := api.Group("/students")
	{
		students.GET("", studentController.ListStudents)
		students.GET("/:id", studentController.GetStudentByID)
		students.GET("/:id/records", recordController.ListStudentRecords)
		students.GET("/:id/predict", predictionController.PredictStudent)
	}

	records := api.Group("/records")
	{
		records.GET("/:id", recordController.GetRecordByID)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.JWTAuth())
	{
		protected.POST("/students", studentController.CreateStudent)
		protected.PUT("/students/:id", studentController.UpdateStudent)
		protected.DELETE("/students/:id", studentController.DeleteStudent)

		protected.POST("/students/:id/records", recordController.CreateRecord)
		protected.PUT("/records/:id", recordController.UpdateRecord)
		protected.DELETE("/records/:id", recordController.DeleteRecord)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
