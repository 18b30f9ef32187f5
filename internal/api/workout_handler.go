package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/service"
)

// WorkoutHandler covers workout plan management.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	trainerService service.TrainerService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, trainerService service.TrainerService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		trainerService: trainerService,
	}
}

// --- DTOs ---

type WorkoutExerciseRowRequest struct {
	ExerciseID string `json:"exerciseId" binding:"required"`
	Section    string `json:"section" binding:"omitempty,oneof=principale complementare"`
	Sets       int    `json:"sets" binding:"required,min=1"`
	Reps       string `json:"reps" binding:"required"`
	RestSec    int    `json:"restSec" binding:"omitempty,min=0"`
	Tempo      string `json:"tempo"`
	Note       string `json:"note"`
}

type WorkoutSessionRequest struct {
	Name      string                      `json:"name" binding:"required"`
	DayOfWeek *int                        `json:"dayOfWeek" binding:"omitempty,min=1,max=7"`
	Exercises []WorkoutExerciseRowRequest `json:"exercises" binding:"dive"`
	Note      string                      `json:"note"`
}

type WorkoutPlanRequest struct {
	Name            string                  `json:"name" binding:"required"`
	Description     string                  `json:"description"`
	Level           string                  `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	SessionsPerWeek int                     `json:"sessionsPerWeek" binding:"omitempty,min=1,max=7"`
	Sessions        []WorkoutSessionRequest `json:"sessions" binding:"dive"`
	StartDate       *time.Time              `json:"startDate"`
	EndDate         *time.Time              `json:"endDate"`
	IsActive        bool                    `json:"isActive"`
}

func (r WorkoutPlanRequest) toInput() (service.WorkoutPlanInput, error) {
	sessions := make([]domain.WorkoutSession, len(r.Sessions))
	for i, s := range r.Sessions {
		rows := make([]domain.WorkoutExerciseRow, len(s.Exercises))
		for j, row := range s.Exercises {
			exerciseID, err := primitive.ObjectIDFromHex(row.ExerciseID)
			if err != nil {
				return service.WorkoutPlanInput{}, errors.New("invalid exercise ID: " + row.ExerciseID)
			}
			rows[j] = domain.WorkoutExerciseRow{
				ExerciseID: exerciseID,
				Section:    domain.WorkoutSection(row.Section),
				Sets:       row.Sets,
				Reps:       row.Reps,
				RestSec:    row.RestSec,
				Tempo:      row.Tempo,
				Note:       row.Note,
			}
		}
		sessions[i] = domain.WorkoutSession{
			Name:      s.Name,
			DayOfWeek: s.DayOfWeek,
			Exercises: rows,
			Note:      s.Note,
		}
	}
	return service.WorkoutPlanInput{
		Name:            r.Name,
		Description:     r.Description,
		Level:           domain.TrainingLevel(r.Level),
		SessionsPerWeek: r.SessionsPerWeek,
		Sessions:        sessions,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IsActive:        r.IsActive,
	}, nil
}

type WorkoutPlanResponse struct {
	ID              string                  `json:"id"`
	TrainerID       string                  `json:"trainerId"`
	ClientID        string                  `json:"clientId"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description,omitempty"`
	Level           string                  `json:"level,omitempty"`
	SessionsPerWeek int                     `json:"sessionsPerWeek,omitempty"`
	Sessions        []domain.WorkoutSession `json:"sessions"`
	StartDate       *time.Time              `json:"startDate,omitempty"`
	EndDate         *time.Time              `json:"endDate,omitempty"`
	IsActive        bool                    `json:"isActive"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

// MapWorkoutPlanToResponse converts a domain.WorkoutPlan to its DTO.
func MapWorkoutPlanToResponse(p *domain.WorkoutPlan) WorkoutPlanResponse {
	if p == nil {
		return WorkoutPlanResponse{}
	}
	return WorkoutPlanResponse{
		ID:              p.ID.Hex(),
		TrainerID:       p.TrainerID.Hex(),
		ClientID:        p.ClientID.Hex(),
		Name:            p.Name,
		Description:     p.Description,
		Level:           string(p.Level),
		SessionsPerWeek: p.SessionsPerWeek,
		Sessions:        p.Sessions,
		StartDate:       p.StartDate,
		EndDate:         p.EndDate,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// --- Handler Methods ---

// CreatePlan godoc
// @Summary Create a workout plan for a client
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param plan body WorkoutPlanRequest true "Plan details"
// @Success 201 {object} WorkoutPlanResponse
// @Failure 400 {object} gin.H "Invalid plan (bad level, dangling exercise IDs...)"
// @Router /clients/{clientId}/plans [post]
func (h *WorkoutHandler) CreatePlan(c *gin.Context) {
	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if _, err := h.trainerService.GetManagedClient(c.Request.Context(), trainerID, clientID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to verify client ownership.")
		}
		return
	}

	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.workoutService.CreatePlan(c.Request.Context(), trainerID, clientID, input)
	if err != nil {
		if errors.Is(err, service.ErrPlanInvalid) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create plan.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapWorkoutPlanToResponse(plan))
}

// GetPlansForClient godoc
// @Summary List the plans built for a client
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {array} WorkoutPlanResponse
// @Router /clients/{clientId}/plans [get]
func (h *WorkoutHandler) GetPlansForClient(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	clientID, ok := parseIDParam(c, "clientId")
	if !ok {
		return
	}

	plans, err := h.workoutService.GetPlansForClient(c.Request.Context(), trainerID, clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plans.")
		return
	}

	responses := make([]WorkoutPlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapWorkoutPlanToResponse(&plans[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetPlan godoc
// @Summary Get a single workout plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} WorkoutPlanResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [get]
func (h *WorkoutHandler) GetPlan(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	plan, err := h.workoutService.GetPlan(c.Request.Context(), trainerID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve plan.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutPlanToResponse(plan))
}

// UpdatePlan godoc
// @Summary Update a workout plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param plan body WorkoutPlanRequest true "Plan details"
// @Success 200 {object} WorkoutPlanResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [put]
func (h *WorkoutHandler) UpdatePlan(c *gin.Context) {
	var req WorkoutPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.workoutService.UpdatePlan(c.Request.Context(), trainerID, planID, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanInvalid):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update plan.")
		}
		return
	}

	c.JSON(http.StatusOK, MapWorkoutPlanToResponse(plan))
}

// DeletePlan godoc
// @Summary Delete a workout plan
// @Tags Plans
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [delete]
func (h *WorkoutHandler) DeletePlan(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.workoutService.DeletePlan(c.Request.Context(), trainerID, planID); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
