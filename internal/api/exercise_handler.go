package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/service"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs ---

// ExerciseRequest defines the JSON for creating or updating an exercise.
// The biomechanical fields are optional but feed the analysis engines.
type ExerciseRequest struct {
	Name              string   `json:"name" binding:"required"`
	Description       string   `json:"description"`
	Category          string   `json:"category" binding:"omitempty,oneof=compound isolation bodyweight cardio stretching"`
	Equipment         string   `json:"equipment"`
	Difficulty        string   `json:"difficulty"`
	MovementPattern   string   `json:"movementPattern" binding:"omitempty,oneof=squat hinge lunge push_h push_v pull_h pull_v core rotation carry"`
	PrimaryMuscles    []string `json:"primaryMuscles"`
	SecondaryMuscles  []string `json:"secondaryMuscles"`
	Contraindications []string `json:"contraindications"`
	ForceType         string   `json:"forceType" binding:"omitempty,oneof=push pull static"`
	Laterality        string   `json:"laterality" binding:"omitempty,oneof=bilateral unilateral"`
	KineticChain      string   `json:"kineticChain" binding:"omitempty,oneof=open closed"`
	MovementPlane     string   `json:"movementPlane" binding:"omitempty,oneof=sagittale frontale trasversale"`
	ContractionType   string   `json:"contractionType" binding:"omitempty,oneof=dinamica isometrica"`
	VideoURL          string   `json:"videoUrl" binding:"omitempty,url"`
}

func (r ExerciseRequest) toInput() service.ExerciseInput {
	return service.ExerciseInput{
		Name:              r.Name,
		Description:       r.Description,
		Category:          domain.ExerciseCategory(r.Category),
		Equipment:         r.Equipment,
		Difficulty:        r.Difficulty,
		MovementPattern:   domain.MovementPattern(r.MovementPattern),
		PrimaryMuscles:    r.PrimaryMuscles,
		SecondaryMuscles:  r.SecondaryMuscles,
		Contraindications: r.Contraindications,
		ForceType:         domain.ForceType(r.ForceType),
		Laterality:        domain.Laterality(r.Laterality),
		KineticChain:      domain.KineticChain(r.KineticChain),
		MovementPlane:     domain.MovementPlane(r.MovementPlane),
		ContractionType:   domain.ContractionType(r.ContractionType),
		VideoURL:          r.VideoURL,
	}
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                string   `json:"id"`
	TrainerID         string   `json:"trainerId"`
	Name              string   `json:"name"`
	Description       string   `json:"description,omitempty"`
	Category          string   `json:"category,omitempty"`
	Equipment         string   `json:"equipment,omitempty"`
	Difficulty        string   `json:"difficulty,omitempty"`
	MovementPattern   string   `json:"movementPattern,omitempty"`
	PrimaryMuscles    []string `json:"primaryMuscles,omitempty"`
	SecondaryMuscles  []string `json:"secondaryMuscles,omitempty"`
	Contraindications []string `json:"contraindications,omitempty"`
	ForceType         string   `json:"forceType,omitempty"`
	Laterality        string   `json:"laterality,omitempty"`
	KineticChain      string   `json:"kineticChain,omitempty"`
	MovementPlane     string   `json:"movementPlane,omitempty"`
	ContractionType   string   `json:"contractionType,omitempty"`
	VideoURL          string   `json:"videoUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                ex.ID.Hex(),
		TrainerID:         ex.TrainerID.Hex(),
		Name:              ex.Name,
		Description:       ex.Description,
		Category:          string(ex.Category),
		Equipment:         ex.Equipment,
		Difficulty:        ex.Difficulty,
		MovementPattern:   string(ex.MovementPattern),
		PrimaryMuscles:    ex.PrimaryMuscles,
		SecondaryMuscles:  ex.SecondaryMuscles,
		Contraindications: ex.Contraindications,
		ForceType:         string(ex.ForceType),
		Laterality:        string(ex.Laterality),
		KineticChain:      string(ex.KineticChain),
		MovementPlane:     string(ex.MovementPlane),
		ContractionType:   string(ex.ContractionType),
		VideoURL:          ex.VideoURL,
		CreatedAt:         ex.CreatedAt,
		UpdatedAt:         ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of exercises.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), trainerID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetTrainerExercises godoc
// @Summary Get the authenticated trainer's exercise library
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ExerciseResponse
// @Router /exercises [get]
func (h *ExerciseHandler) GetTrainerExercises(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.GetExercisesByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercises.")
		return
	}
	if exercises == nil {
		c.JSON(http.StatusOK, []ExerciseResponse{})
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExerciseByID godoc
// @Summary Get a single exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{exerciseId} [get]
func (h *ExerciseHandler) GetExerciseByID(c *gin.Context) {
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// UpdateExercise godoc
// @Summary Update an exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Param exercise body ExerciseRequest true "Exercise details"
// @Success 200 {object} ExerciseResponse
// @Failure 403 {object} gin.H "Not the owner"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{exerciseId} [put]
func (h *ExerciseHandler) UpdateExercise(c *gin.Context) {
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.UpdateExercise(c.Request.Context(), trainerID, exerciseID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrExerciseAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update exercise.")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Tags Exercises
// @Security BearerAuth
// @Param exerciseId path string true "Exercise ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{exerciseId} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	exerciseID, ok := parseIDParam(c, "exerciseId")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), trainerID, exerciseID); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete exercise.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
