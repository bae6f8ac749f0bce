package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"titanlift/backend/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	profileService service.ProfileService,
	socialService service.SocialService,
	catalogService service.CatalogService,
) {

	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	profileHandler := NewProfileHandler(profileService)
	socialHandler := NewSocialHandler(socialService)
	catalogHandler := NewCatalogHandler(catalogService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Workout Session Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.StartWorkout)
			workoutGroup.GET("/active", workoutHandler.GetActiveWorkout)
			workoutGroup.POST("/:id/sets", workoutHandler.LogSet)
			workoutGroup.POST("/:id/finish", workoutHandler.FinishWorkout)
		}
		setGroup := protected.Group("/sets")
		{
			setGroup.GET("/recent", workoutHandler.ListRecentSets)
			setGroup.DELETE("/:id", workoutHandler.DeleteSet)
		}

		// --- Profile Routes (all caller-scoped) ---
		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetFullProfile)
			profileGroup.GET("/stats", profileHandler.GetStats)
			profileGroup.PUT("/stats", profileHandler.UpdateStats)
			profileGroup.GET("/weight-history", profileHandler.GetWeightHistory)
			profileGroup.GET("/nutrition", profileHandler.GetNutrition)
			profileGroup.POST("/nutrition", profileHandler.LogNutrition)
			profileGroup.POST("/photos", profileHandler.RequestPhotoUpload)
			profileGroup.GET("/photos", profileHandler.ListPhotos)
			profileGroup.POST("/photos/:id/confirm", profileHandler.ConfirmPhotoUpload)
			profileGroup.DELETE("/photos/:id", profileHandler.DeletePhoto)
		}

		// --- Social Routes ---
		protected.GET("/leaderboard", socialHandler.GetLeaderboard)
		socialGroup := protected.Group("/social")
		{
			socialGroup.POST("/follow/:id", socialHandler.Follow)
			socialGroup.DELETE("/follow/:id", socialHandler.Unfollow)
			socialGroup.PUT("/profile", socialHandler.UpdateProfile)
			socialGroup.GET("/search", socialHandler.SearchUsers)
			socialGroup.GET("/users/:id", socialHandler.GetProfile)
			socialGroup.GET("/users/:id/history", socialHandler.GetWorkoutHistory)
			socialGroup.GET("/users/:id/badges", socialHandler.GetBadges)
		}

		// --- Catalog Routes ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", catalogHandler.ListExercises)
			exerciseGroup.GET("/:id", catalogHandler.GetExercise)
			exerciseGroup.POST("", catalogHandler.CreateExercise)
		}
		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", catalogHandler.CreateTemplate)
			templateGroup.GET("", catalogHandler.ListTemplates)
			templateGroup.GET("/:id", catalogHandler.GetTemplate)
			templateGroup.PUT("/:id/exercises", catalogHandler.SetTemplateExercises)
		}
	}
}
