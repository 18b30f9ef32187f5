package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/analysis"
	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPlanHasNoExercises = errors.New("workout plan has no exercises to analyze")
)

// SafetyReport maps each of the trainer's exercises to its verdict for one
// client, keyed by exercise ID hex for JSON friendliness.
type SafetyReport struct {
	Entries map[string]analysis.SafetyResult `json:"entries"`
}

// PlanQualityReport bundles the volume breakdown with the detected issues.
type PlanQualityReport struct {
	Data   analysis.WorkoutAnalysisData `json:"data"`
	Issues []analysis.QualityIssue      `json:"issues"`
}

// --- Service Interface ---

// AnalysisService runs the analytical engines over stored client data. All
// engine code is pure; this service does the fetching and the composition.
type AnalysisService interface {
	GetDerivedMetrics(ctx context.Context, clientID primitive.ObjectID) (*analysis.DerivedResult, error)
	GetClinicalReport(ctx context.Context, clientID primitive.ObjectID) (*analysis.ClinicalReport, error)
	GetCorrelations(ctx context.Context, clientID primitive.ObjectID) ([]analysis.CorrelationInsight, error)
	GetSafetyReport(ctx context.Context, trainerID, clientID primitive.ObjectID) (*SafetyReport, error)
	GetPlanQuality(ctx context.Context, trainerID, planID primitive.ObjectID) (*PlanQualityReport, error)
	GetPlanSmartAnalysis(ctx context.Context, trainerID, planID primitive.ObjectID) (*analysis.SmartAnalysis, error)
}

// --- Service Implementation ---

// analysisService implements the AnalysisService interface.
type analysisService struct {
	userRepo        repository.UserRepository
	measurementRepo repository.MeasurementRepository
	anamnesiRepo    repository.AnamnesiRepository
	goalRepo        repository.GoalRepository
	exerciseRepo    repository.ExerciseRepository
	planRepo        repository.WorkoutPlanRepository
	now             func() time.Time // Injected for testability
}

// NewAnalysisService creates a new instance of analysisService.
func NewAnalysisService(
	userRepo repository.UserRepository,
	measurementRepo repository.MeasurementRepository,
	anamnesiRepo repository.AnamnesiRepository,
	goalRepo repository.GoalRepository,
	exerciseRepo repository.ExerciseRepository,
	planRepo repository.WorkoutPlanRepository,
) AnalysisService {
	return &analysisService{
		userRepo:        userRepo,
		measurementRepo: measurementRepo,
		anamnesiRepo:    anamnesiRepo,
		goalRepo:        goalRepo,
		exerciseRepo:    exerciseRepo,
		planRepo:        planRepo,
		now:             time.Now,
	}
}

// clientDemographics resolves sex and age for the normative tables. A client
// without demographics still gets an analysis (sex defaults inside the
// engine, age stays zero).
func (s *analysisService) clientDemographics(ctx context.Context, clientID primitive.ObjectID) (domain.Sex, int, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", 0, ErrClientNotFound
		}
		return "", 0, err
	}
	return client.Sex, client.Age(s.now()), nil
}

// GetDerivedMetrics computes BMI, LBM, FFMI, WHR, MAP and strength ratios
// from the latest measurements, each with its normative classification.
func (s *analysisService) GetDerivedMetrics(ctx context.Context, clientID primitive.ObjectID) (*analysis.DerivedResult, error) {
	sex, age, err := s.clientDemographics(ctx, clientID)
	if err != nil {
		return nil, err
	}
	measurements, err := s.measurementRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	result := analysis.ComputeAllDerived(measurements, sex, age)
	return &result, nil
}

// GetClinicalReport runs the full clinical aggregation: rates of change,
// body-composition phase, symmetry and the risk profile.
func (s *analysisService) GetClinicalReport(ctx context.Context, clientID primitive.ObjectID) (*analysis.ClinicalReport, error) {
	sex, age, err := s.clientDemographics(ctx, clientID)
	if err != nil {
		return nil, err
	}
	measurements, err := s.measurementRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	report := analysis.GenerateClinicalReport(measurements, sex, age, goals)
	return &report, nil
}

// GetCorrelations produces the cross-metric insights.
func (s *analysisService) GetCorrelations(ctx context.Context, clientID primitive.ObjectID) ([]analysis.CorrelationInsight, error) {
	sex, _, err := s.clientDemographics(ctx, clientID)
	if err != nil {
		return nil, err
	}
	measurements, err := s.measurementRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return analysis.AnalyzeCorrelations(measurements, sex), nil
}

// GetSafetyReport classifies every exercise in the trainer's library against
// the client's anamnesis.
func (s *analysisService) GetSafetyReport(ctx context.Context, trainerID, clientID primitive.ObjectID) (*SafetyReport, error) {
	exercises, err := s.exerciseRepo.GetByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	anamnesi, err := s.anamnesiRepo.GetByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	// No anamnesis means no restrictions: ClassifyExercises handles nil and
	// marks everything safe.

	verdicts := analysis.ClassifyExercises(exercises, anamnesi)

	report := &SafetyReport{Entries: make(map[string]analysis.SafetyResult, len(verdicts))}
	for id, v := range verdicts {
		report.Entries[id.Hex()] = v
	}
	return report, nil
}

// loadPlanForAnalysis fetches a plan (with ownership check) and resolves its
// exercises. Plans without a single exercise slot are rejected here so the
// engines never see an empty plan.
func (s *analysisService) loadPlanForAnalysis(ctx context.Context, trainerID, planID primitive.ObjectID) (*domain.WorkoutPlan, map[primitive.ObjectID]domain.Exercise, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrPlanNotFound
		}
		return nil, nil, err
	}
	if plan.TrainerID != trainerID {
		return nil, nil, ErrPlanNotFound
	}

	ids := plan.ExerciseIDs()
	if len(ids) == 0 {
		return nil, nil, ErrPlanHasNoExercises
	}

	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[primitive.ObjectID]domain.Exercise, len(exercises))
	for _, ex := range exercises {
		byID[ex.ID] = ex
	}
	return plan, byID, nil
}

// GetPlanQuality checks a plan for structural problems: missing fundamental
// patterns, push/pull and upper/lower imbalances.
func (s *analysisService) GetPlanQuality(ctx context.Context, trainerID, planID primitive.ObjectID) (*PlanQualityReport, error) {
	plan, exercises, err := s.loadPlanForAnalysis(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}
	data, issues := analysis.AnalyzeWorkout(plan.Sessions, exercises)
	return &PlanQualityReport{Data: data, Issues: issues}, nil
}

// GetPlanSmartAnalysis produces the volume/variety/recovery report for a
// plan, cross-referenced with the client's safety verdicts.
func (s *analysisService) GetPlanSmartAnalysis(ctx context.Context, trainerID, planID primitive.ObjectID) (*analysis.SmartAnalysis, error) {
	plan, exercises, err := s.loadPlanForAnalysis(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	profile, err := s.buildClientProfile(ctx, plan.ClientID, exercises)
	if err != nil {
		return nil, err
	}

	result := analysis.ComputeSmartAnalysis(plan.Sessions, exercises, plan.Level, plan.SessionsPerWeek, profile.Safety)
	return &result, nil
}

// buildClientProfile fetches everything the smart-programming input bag
// needs and hands the assembly to the engine. A client record that went
// missing is tolerated: the profile builder falls back to defaults.
func (s *analysisService) buildClientProfile(ctx context.Context, clientID primitive.ObjectID, exercises map[primitive.ObjectID]domain.Exercise) (analysis.ClientProfile, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return analysis.ClientProfile{}, err
	}
	measurements, err := s.measurementRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return analysis.ClientProfile{}, err
	}
	goals, err := s.goalRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return analysis.ClientProfile{}, err
	}
	anamnesi, err := s.anamnesiRepo.GetByClientID(ctx, clientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return analysis.ClientProfile{}, err
	}
	// No anamnesis means no restrictions: the profile builder handles nil
	// and marks every exercise safe.

	planExercises := make([]domain.Exercise, 0, len(exercises))
	for _, ex := range exercises {
		planExercises = append(planExercises, ex)
	}

	return analysis.BuildClientProfile(client, measurements, anamnesi, planExercises, goals, s.now()), nil
}
