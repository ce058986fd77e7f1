package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/placement-portal/internal/app/controllers"
	"github.com/yigit/placement-portal/internal/app/models"
	"github.com/yigit/placement-portal/internal/middleware"
	"github.com/yigit/placement-portal/internal/pkg/ratelimit"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Health      *controllers.HealthController
	JobListing  *controllers.JobListingController
	Student     *controllers.StudentController
	Application *controllers.ApplicationController
	Feed        *controllers.FeedController
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	ctrl Controllers,
	authMiddleware *middleware.AuthMiddleware,
	limiter ratelimit.Limiter,
	logger zerolog.Logger,
) {
	router.GET("/testing-server", ctrl.Health.TestingServer)

	api := router.Group("/api")

	// --- Public user routes ---
	user := api.Group("/user")
	{
		user.POST("/register", middleware.RateLimit(limiter, "register", logger), ctrl.Auth.Register)
		user.POST("/login", middleware.RateLimit(limiter, "login", logger), ctrl.Auth.Login)
		user.GET("/verify/:token", ctrl.Auth.VerifyEmail)
		user.POST("/resend-verification", middleware.RateLimit(limiter, "resend", logger), ctrl.Auth.ResendVerification)
	}

	// --- Authenticated routes ---
	authenticated := api.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	coordinatorOnly := authMiddleware.RoleRequired(models.RoleCoordinator)

	authenticated.GET("/user/profile", ctrl.User.GetUserProfile)

	listings := authenticated.Group("/job-listings")
	{
		listings.GET("", ctrl.JobListing.ListJobListings)
		listings.GET("/:id", ctrl.JobListing.GetJobListing)
		listings.POST("", coordinatorOnly, ctrl.JobListing.CreateJobListing)
		listings.PATCH("/:id", coordinatorOnly, ctrl.JobListing.UpdateJobListing)
		listings.DELETE("/:id", coordinatorOnly, ctrl.JobListing.DeleteJobListing)
	}

	students := authenticated.Group("/students")
	{
		students.GET("", ctrl.Student.ListStudents)
		students.GET("/:id", ctrl.Student.GetStudent)
		students.POST("", coordinatorOnly, ctrl.Student.CreateStudent)
	}

	applications := authenticated.Group("/applications")
	{
		applications.POST("", coordinatorOnly, ctrl.Application.Apply)
		applications.GET("", ctrl.Application.ListApplications)
		applications.GET("/:id", ctrl.Application.GetApplication)
		applications.PATCH("/:id/status", coordinatorOnly, ctrl.Application.UpdateStatus)
	}

	authenticated.GET("/ws/events", coordinatorOnly, ctrl.Feed.Subscribe)
}
