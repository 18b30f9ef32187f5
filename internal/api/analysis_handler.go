package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/service"
)

// AnalysisHandler exposes the analytical engines. The engine output structs
// already carry JSON tags, so they go out as-is; the only mapping done here
// is error-to-status.
type AnalysisHandler struct {
	analysisService service.AnalysisService
	trainerService  service.TrainerService
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysisService service.AnalysisService, trainerService service.TrainerService) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: analysisService,
		trainerService:  trainerService,
	}
}

// clientIDForAnalysis runs the auth + ownership dance shared by every
// client-scoped analysis endpoint.
func (h *AnalysisHandler) clientIDForAnalysis(c *gin.Context) (trainerID, clientID primitive.ObjectID, ok bool) {
	trainerID, ok = getAuthenticatedID(c)
	if !ok {
		return
	}
	clientID, ok = parseIDParam(c, "clientId")
	if !ok {
		return
	}
	if _, err := h.trainerService.GetManagedClient(c.Request.Context(), trainerID, clientID); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to verify client ownership.")
		}
		ok = false
	}
	return
}

// GetDerivedMetrics godoc
// @Summary Derived metrics (BMI, LBM, FFMI, WHR, MAP) with classifications
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} analysis.DerivedResult
// @Router /clients/{clientId}/analysis/derived [get]
func (h *AnalysisHandler) GetDerivedMetrics(c *gin.Context) {
	_, clientID, ok := h.clientIDForAnalysis(c)
	if !ok {
		return
	}

	result, err := h.analysisService.GetDerivedMetrics(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute derived metrics.")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetClinicalReport godoc
// @Summary Clinical aggregation: rates, composition, symmetry, risk profile
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} analysis.ClinicalReport
// @Router /clients/{clientId}/analysis/clinical [get]
func (h *AnalysisHandler) GetClinicalReport(c *gin.Context) {
	_, clientID, ok := h.clientIDForAnalysis(c)
	if !ok {
		return
	}

	report, err := h.analysisService.GetClinicalReport(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to generate clinical report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetCorrelations godoc
// @Summary Cross-metric correlation insights
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {array} analysis.CorrelationInsight
// @Router /clients/{clientId}/analysis/correlations [get]
func (h *AnalysisHandler) GetCorrelations(c *gin.Context) {
	_, clientID, ok := h.clientIDForAnalysis(c)
	if !ok {
		return
	}

	insights, err := h.analysisService.GetCorrelations(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute correlations.")
		return
	}
	if insights == nil {
		c.JSON(http.StatusOK, []struct{}{})
		return
	}
	c.JSON(http.StatusOK, insights)
}

// GetSafetyReport godoc
// @Summary Safety verdict for every library exercise against the client's anamnesis
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {object} service.SafetyReport
// @Router /clients/{clientId}/analysis/safety [get]
func (h *AnalysisHandler) GetSafetyReport(c *gin.Context) {
	trainerID, clientID, ok := h.clientIDForAnalysis(c)
	if !ok {
		return
	}

	report, err := h.analysisService.GetSafetyReport(c.Request.Context(), trainerID, clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute safety report.")
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetPlanQuality godoc
// @Summary Structural quality check of a workout plan
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} service.PlanQualityReport
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 422 {object} gin.H "Plan has no exercises"
// @Router /plans/{planId}/analysis/quality [get]
func (h *AnalysisHandler) GetPlanQuality(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	report, err := h.analysisService.GetPlanQuality(c.Request.Context(), trainerID, planID)
	if err != nil {
		h.abortPlanAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// GetPlanSmartAnalysis godoc
// @Summary Volume/variety/recovery report for a workout plan
// @Tags Analysis
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} analysis.SmartAnalysis
// @Failure 404 {object} gin.H "Plan not found"
// @Failure 422 {object} gin.H "Plan has no exercises"
// @Router /plans/{planId}/analysis/smart [get]
func (h *AnalysisHandler) GetPlanSmartAnalysis(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	planID, ok := parseIDParam(c, "planId")
	if !ok {
		return
	}

	result, err := h.analysisService.GetPlanSmartAnalysis(c.Request.Context(), trainerID, planID)
	if err != nil {
		h.abortPlanAnalysisError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AnalysisHandler) abortPlanAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanHasNoExercises):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to analyze plan.")
	}
}
