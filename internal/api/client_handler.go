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

// ClientHandler covers the trainer-facing client management surface:
// roster, demographics, measurements, anamnesis and goals.
type ClientHandler struct {
	trainerService    service.TrainerService
	clientDataService service.ClientDataService
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(trainerService service.TrainerService, clientDataService service.ClientDataService) *ClientHandler {
	return &ClientHandler{
		trainerService:    trainerService,
		clientDataService: clientDataService,
	}
}

// --- DTOs ---

type AddClientRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type UpdateDemographicsRequest struct {
	Sex       string     `json:"sex" binding:"required,oneof=male female"`
	BirthDate *time.Time `json:"birthDate"`
}

type MetricValueRequest struct {
	MetricID string  `json:"metricId" binding:"required"`
	Value    float64 `json:"value" binding:"required"`
	Unit     string  `json:"unit"`
}

type MeasurementRequest struct {
	Date   time.Time            `json:"date"`
	Values []MetricValueRequest `json:"values" binding:"required,min=1,dive"`
	Note   string               `json:"note"`
}

func (r MeasurementRequest) toInput() service.MeasurementInput {
	values := make([]domain.MetricValue, len(r.Values))
	for i, v := range r.Values {
		values[i] = domain.MetricValue{MetricID: v.MetricID, Value: v.Value, Unit: v.Unit}
	}
	return service.MeasurementInput{Date: r.Date, Values: values, Note: r.Note}
}

type MeasurementResponse struct {
	ID               string               `json:"id"`
	ClientID         string               `json:"clientId"`
	Date             time.Time            `json:"date"`
	Values           []domain.MetricValue `json:"values"`
	Note             string               `json:"note,omitempty"`
	CompletedGoalIDs []string             `json:"completedGoalIds,omitempty"`
	CreatedAt        time.Time            `json:"createdAt"`
	UpdatedAt        time.Time            `json:"updatedAt"`
}

// MapMeasurementToResponse converts a domain.Measurement to its DTO.
func MapMeasurementToResponse(m *domain.Measurement) MeasurementResponse {
	if m == nil {
		return MeasurementResponse{}
	}
	resp := MeasurementResponse{
		ID:        m.ID.Hex(),
		ClientID:  m.ClientID.Hex(),
		Date:      m.Date,
		Values:    m.Values,
		Note:      m.Note,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	for _, id := range m.CompletedGoalIDs {
		resp.CompletedGoalIDs = append(resp.CompletedGoalIDs, id.Hex())
	}
	return resp
}

type GoalRequest struct {
	MetricID    string     `json:"metricId" binding:"required"`
	TargetValue float64    `json:"targetValue" binding:"required"`
	Deadline    *time.Time `json:"deadline"`
	Note        string     `json:"note"`
}

type GoalResponse struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"clientId"`
	MetricID    string     `json:"metricId"`
	TargetValue float64    `json:"targetValue"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Note        string     `json:"note,omitempty"`
	Achieved    bool       `json:"achieved"`
	AchievedAt  *time.Time `json:"achievedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// MapGoalToResponse converts a domain.ClientGoal to its DTO.
func MapGoalToResponse(g *domain.ClientGoal) GoalResponse {
	if g == nil {
		return GoalResponse{}
	}
	return GoalResponse{
		ID:          g.ID.Hex(),
		ClientID:    g.ClientID.Hex(),
		MetricID:    g.MetricID,
		TargetValue: g.TargetValue,
		Deadline:    g.Deadline,
		Note:        g.Note,
		Achieved:    g.Achieved,
		AchievedAt:  g.AchievedAt,
		CreatedAt:   g.CreatedAt,
	}
}

// AnamnesiRequest mirrors domain.AnamnesiData minus the ID/ownership fields,
// which come from the route and the token.
type AnamnesiRequest struct {
	InfortuniAttuali    domain.AnamnesiQuestion `json:"infortuni_attuali"`
	InfortuniPassati    domain.AnamnesiQuestion `json:"infortuni_passati"`
	Interventi          domain.AnamnesiQuestion `json:"interventi"`
	DoloriCronici       domain.AnamnesiQuestion `json:"dolori_cronici"`
	Patologie           domain.AnamnesiQuestion `json:"patologie"`
	ProblemiCardiaci    domain.AnamnesiQuestion `json:"problemi_cardiaci"`
	ProblemiRespiratori domain.AnamnesiQuestion `json:"problemi_respiratori"`

	LivelloAttivita string `json:"livello_attivita" binding:"omitempty,oneof=sedentario leggero moderato intenso"`
	QualitaSonno    string `json:"qualita_sonno" binding:"omitempty,oneof=scarso sufficiente buono"`
	LivelloStress   string `json:"livello_stress" binding:"omitempty,oneof=basso medio alto"`

	Obiettivi   string `json:"obiettivi"`
	Limitazioni string `json:"limitazioni"`
	Note        string `json:"note"`
}

func (r AnamnesiRequest) toDomain() domain.AnamnesiData {
	return domain.AnamnesiData{
		InfortuniAttuali:    r.InfortuniAttuali,
		InfortuniPassati:    r.InfortuniPassati,
		Interventi:          r.Interventi,
		DoloriCronici:       r.DoloriCronici,
		Patologie:           r.Patologie,
		ProblemiCardiaci:    r.ProblemiCardiaci,
		ProblemiRespiratori: r.ProblemiRespiratori,
		LivelloAttivita:     domain.ActivityLevel(r.LivelloAttivita),
		QualitaSonno:        domain.SleepQuality(r.QualitaSonno),
		LivelloStress:       domain.StressLevel(r.LivelloStress),
		Obiettivi:           r.Obiettivi,
		Limitazioni:         r.Limitazioni,
		Note:                r.Note,
	}
}

// --- Roster ---

// AddClient godoc
// @Summary Link an existing client account to the trainer
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param client body AddClientRequest true "Client email"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "No client with that email"
// @Failure 409 {object} gin.H "Client already managed"
// @Router /clients [post]
func (h *ClientHandler) AddClient(c *gin.Context) {
	var req AddClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}

	client, err := h.trainerService.AddClientByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrClientNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrUserNotClient):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrClientAlreadyManaged):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to add client.")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// GetClients godoc
// @Summary List the trainer's clients
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse
// @Router /clients [get]
func (h *ClientHandler) GetClients(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}

	clients, err := h.trainerService.GetManagedClients(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve clients.")
		return
	}

	responses := make([]UserResponse, len(clients))
	for i := range clients {
		responses[i] = MapUserToResponse(&clients[i])
	}
	c.JSON(http.StatusOK, responses)
}

// GetClient godoc
// @Summary Get a single managed client
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "Not found or not managed by this trainer"
// @Router /clients/{clientId} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	client, err := h.trainerService.GetManagedClient(c.Request.Context(), trainerID, clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve client.")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(client))
}

// UpdateDemographics godoc
// @Summary Set a client's sex and birth date
// @Tags Clients
// @Accept json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param demographics body UpdateDemographicsRequest true "Demographics"
// @Success 204 "Updated"
// @Failure 404 {object} gin.H "Not found"
// @Router /clients/{clientId}/demographics [put]
func (h *ClientHandler) UpdateDemographics(c *gin.Context) {
	var req UpdateDemographicsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}

	err := h.trainerService.UpdateClientDemographics(c.Request.Context(), trainerID, clientID, domain.Sex(req.Sex), req.BirthDate)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update demographics.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Measurements ---

// CreateMeasurement godoc
// @Summary Record a measurement session for a client
// @Tags Measurements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param measurement body MeasurementRequest true "Measurement values"
// @Success 201 {object} MeasurementResponse
// @Failure 400 {object} gin.H "Invalid input (duplicate/unknown metric)"
// @Router /clients/{clientId}/measurements [post]
func (h *ClientHandler) CreateMeasurement(c *gin.Context) {
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	if !h.ensureManaged(c, trainerID, clientID) {
		return
	}

	measurement, err := h.clientDataService.CreateMeasurement(c.Request.Context(), trainerID, clientID, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrDuplicateMetric) || errors.Is(err, service.ErrUnknownMetric) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save measurement.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapMeasurementToResponse(measurement))
}

// GetMeasurements godoc
// @Summary List a client's measurement sessions (newest first)
// @Tags Measurements
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {array} MeasurementResponse
// @Router /clients/{clientId}/measurements [get]
func (h *ClientHandler) GetMeasurements(c *gin.Context) {
	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	if !h.ensureManaged(c, trainerID, clientID) {
		return
	}

	measurements, err := h.clientDataService.GetMeasurements(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve measurements.")
		return
	}

	responses := make([]MeasurementResponse, len(measurements))
	for i := range measurements {
		responses[i] = MapMeasurementToResponse(&measurements[i])
	}
	c.JSON(http.StatusOK, responses)
}

// UpdateMeasurement godoc
// @Summary Edit a measurement session
// @Tags Measurements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param measurementId path string true "Measurement ID"
// @Param measurement body MeasurementRequest true "Measurement values"
// @Success 200 {object} MeasurementResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /measurements/{measurementId} [put]
func (h *ClientHandler) UpdateMeasurement(c *gin.Context) {
	var req MeasurementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	measurementID, ok := parseIDParam(c, "measurementId")
	if !ok {
		return
	}

	measurement, err := h.clientDataService.UpdateMeasurement(c.Request.Context(), trainerID, measurementID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMeasurementNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrDuplicateMetric), errors.Is(err, service.ErrUnknownMetric):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update measurement.")
		}
		return
	}

	c.JSON(http.StatusOK, MapMeasurementToResponse(measurement))
}

// DeleteMeasurement godoc
// @Summary Delete a measurement session
// @Tags Measurements
// @Security BearerAuth
// @Param measurementId path string true "Measurement ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /measurements/{measurementId} [delete]
func (h *ClientHandler) DeleteMeasurement(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	measurementID, ok := parseIDParam(c, "measurementId")
	if !ok {
		return
	}

	if err := h.clientDataService.DeleteMeasurement(c.Request.Context(), trainerID, measurementID); err != nil {
		if errors.Is(err, service.ErrMeasurementNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete measurement.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Anamnesis ---

// UpsertAnamnesi godoc
// @Summary Create or replace a client's anamnesis questionnaire
// @Tags Anamnesis
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param anamnesi body AnamnesiRequest true "Questionnaire"
// @Success 200 {object} domain.AnamnesiData
// @Router /clients/{clientId}/anamnesi [put]
func (h *ClientHandler) UpsertAnamnesi(c *gin.Context) {
	var req AnamnesiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	if !h.ensureManaged(c, trainerID, clientID) {
		return
	}

	anamnesi, err := h.clientDataService.UpsertAnamnesi(c.Request.Context(), trainerID, clientID, req.toDomain())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save anamnesis.")
		return
	}
	c.JSON(http.StatusOK, anamnesi)
}

// GetAnamnesi godoc
// @Summary Get a client's anamnesis questionnaire
// @Tags Anamnesis
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} domain.AnamnesiData
// @Failure 404 {object} gin.H "No questionnaire filled in yet"
// @Router /clients/{clientId}/anamnesi [get]
func (h *ClientHandler) GetAnamnesi(c *gin.Context) {
	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	if !h.ensureManaged(c, trainerID, clientID) {
		return
	}

	anamnesi, err := h.clientDataService.GetAnamnesi(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve anamnesis.")
		return
	}
	if anamnesi == nil {
		abortWithError(c, http.StatusNotFound, "No anamnesis recorded for this client.")
		return
	}
	c.JSON(http.StatusOK, anamnesi)
}

// --- Goals ---

// CreateGoal godoc
// @Summary Set a metric goal for a client
// @Tags Goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param goal body GoalRequest true "Goal details"
// @Success 201 {object} GoalResponse
// @Router /clients/{clientId}/goals [post]
func (h *ClientHandler) CreateGoal(c *gin.Context) {
	var req GoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	if !h.ensureManaged(c, trainerID, clientID) {
		return
	}

	goal, err := h.clientDataService.CreateGoal(c.Request.Context(), trainerID, clientID, service.GoalInput{
		MetricID:    req.MetricID,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
		Note:        req.Note,
	})
	if err != nil {
		if errors.Is(err, service.ErrUnknownMetric) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create goal.")
		}
		return
	}

	c.JSON(http.StatusCreated, MapGoalToResponse(goal))
}

// GetGoals godoc
// @Summary List a client's goals
// @Tags Goals
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {array} GoalResponse
// @Router /clients/{clientId}/goals [get]
func (h *ClientHandler) GetGoals(c *gin.Context) {
	trainerID, clientID, ok := h.trainerAndClient(c)
	if !ok {
		return
	}
	if !h.ensureManaged(c, trainerID, clientID) {
		return
	}

	goals, err := h.clientDataService.GetGoals(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve goals.")
		return
	}

	responses := make([]GoalResponse, len(goals))
	for i := range goals {
		responses[i] = MapGoalToResponse(&goals[i])
	}
	c.JSON(http.StatusOK, responses)
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags Goals
// @Security BearerAuth
// @Param goalId path string true "Goal ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /goals/{goalId} [delete]
func (h *ClientHandler) DeleteGoal(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	goalID, ok := parseIDParam(c, "goalId")
	if !ok {
		return
	}

	if err := h.clientDataService.DeleteGoal(c.Request.Context(), trainerID, goalID); err != nil {
		if errors.Is(err, service.ErrGoalNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete goal.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Helpers ---

func (h *ClientHandler) trainerAndClient(c *gin.Context) (trainerID, clientID primitive.ObjectID, ok bool) {
	trainerID, ok = getAuthenticatedID(c)
	if !ok {
		return
	}
	clientID, ok = parseIDParam(c, "clientId")
	return
}

// ensureManaged aborts with 404 unless the trainer manages the client.
func (h *ClientHandler) ensureManaged(c *gin.Context, trainerID, clientID primitive.ObjectID) bool {
	_, err := h.trainerService.GetManagedClient(c.Request.Context(), trainerID, clientID)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to verify client ownership.")
		}
		return false
	}
	return true
}
