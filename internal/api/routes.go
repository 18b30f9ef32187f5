package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/service"
)

// SetupRoutes wires every handler into the router. The whole management
// surface is trainer-only; clients authenticate but currently only use
// /me (the mobile client app talks to a separate read surface).
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerService service.TrainerService,
	clientDataService service.ClientDataService,
	exerciseService service.ExerciseService,
	workoutService service.WorkoutService,
	photoService service.PhotoService,
	analysisService service.AnalysisService,
) {
	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	clientHandler := NewClientHandler(trainerService, clientDataService)
	workoutHandler := NewWorkoutHandler(workoutService, trainerService)
	photoHandler := NewPhotoHandler(photoService, trainerService)
	analysisHandler := NewAnalysisHandler(analysisService, trainerService)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// Static metric catalog; the frontend builds its measurement forms
		// from this.
		protected.GET("/metrics", func(c *gin.Context) {
			c.JSON(http.StatusOK, domain.MetricCatalog())
		})

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises", trainerOnly)
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetTrainerExercises)
			exerciseGroup.GET("/:exerciseId", exerciseHandler.GetExerciseByID)
			exerciseGroup.PUT("/:exerciseId", exerciseHandler.UpdateExercise)
			exerciseGroup.DELETE("/:exerciseId", exerciseHandler.DeleteExercise)
		}

		// --- Client roster and per-client data ---
		clientGroup := protected.Group("/clients", trainerOnly)
		{
			clientGroup.POST("", clientHandler.AddClient)
			clientGroup.GET("", clientHandler.GetClients)
			clientGroup.GET("/:clientId", clientHandler.GetClient)
			clientGroup.PUT("/:clientId/demographics", clientHandler.UpdateDemographics)

			clientGroup.POST("/:clientId/measurements", clientHandler.CreateMeasurement)
			clientGroup.GET("/:clientId/measurements", clientHandler.GetMeasurements)

			clientGroup.PUT("/:clientId/anamnesi", clientHandler.UpsertAnamnesi)
			clientGroup.GET("/:clientId/anamnesi", clientHandler.GetAnamnesi)

			clientGroup.POST("/:clientId/goals", clientHandler.CreateGoal)
			clientGroup.GET("/:clientId/goals", clientHandler.GetGoals)

			clientGroup.POST("/:clientId/plans", workoutHandler.CreatePlan)
			clientGroup.GET("/:clientId/plans", workoutHandler.GetPlansForClient)

			clientGroup.POST("/:clientId/photos", photoHandler.RequestPhotoUpload)
			clientGroup.GET("/:clientId/photos", photoHandler.GetClientPhotos)

			// --- Client-scoped analysis ---
			clientGroup.GET("/:clientId/analysis/derived", analysisHandler.GetDerivedMetrics)
			clientGroup.GET("/:clientId/analysis/clinical", analysisHandler.GetClinicalReport)
			clientGroup.GET("/:clientId/analysis/correlations", analysisHandler.GetCorrelations)
			clientGroup.GET("/:clientId/analysis/safety", analysisHandler.GetSafetyReport)
		}

		// --- Entities addressed by their own ID ---
		protected.PUT("/measurements/:measurementId", trainerOnly, clientHandler.UpdateMeasurement)
		protected.DELETE("/measurements/:measurementId", trainerOnly, clientHandler.DeleteMeasurement)
		protected.DELETE("/goals/:goalId", trainerOnly, clientHandler.DeleteGoal)
		protected.DELETE("/photos/:photoId", trainerOnly, photoHandler.DeletePhoto)

		planGroup := protected.Group("/plans", trainerOnly)
		{
			planGroup.GET("/:planId", workoutHandler.GetPlan)
			planGroup.PUT("/:planId", workoutHandler.UpdatePlan)
			planGroup.DELETE("/:planId", workoutHandler.DeletePlan)

			// --- Plan-scoped analysis ---
			planGroup.GET("/:planId/analysis/quality", analysisHandler.GetPlanQuality)
			planGroup.GET("/:planId/analysis/smart", analysisHandler.GetPlanSmartAnalysis)
		}
	}
}
