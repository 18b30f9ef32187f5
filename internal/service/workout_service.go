package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/repository"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("workout plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this workout plan")
	ErrPlanInvalid      = errors.New("workout plan validation failed")
)

// WorkoutPlanInput carries the editable fields of a plan; sessions are
// embedded and replaced wholesale on update.
type WorkoutPlanInput struct {
	Name            string
	Description     string
	Level           domain.TrainingLevel
	SessionsPerWeek int
	Sessions        []domain.WorkoutSession
	StartDate       *time.Time
	EndDate         *time.Time
	IsActive        bool
}

// --- Service Interface ---
type WorkoutService interface {
	CreatePlan(ctx context.Context, trainerID, clientID primitive.ObjectID, input WorkoutPlanInput) (*domain.WorkoutPlan, error)
	GetPlan(ctx context.Context, trainerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error)
	GetPlansForClient(ctx context.Context, trainerID, clientID primitive.ObjectID) ([]domain.WorkoutPlan, error)
	UpdatePlan(ctx context.Context, trainerID, planID primitive.ObjectID, input WorkoutPlanInput) (*domain.WorkoutPlan, error)
	DeletePlan(ctx context.Context, trainerID, planID primitive.ObjectID) error
}

// --- Service Implementation ---

// workoutService implements the WorkoutService interface.
type workoutService struct {
	planRepo     repository.WorkoutPlanRepository
	exerciseRepo repository.ExerciseRepository
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(planRepo repository.WorkoutPlanRepository, exerciseRepo repository.ExerciseRepository) WorkoutService {
	return &workoutService{
		planRepo:     planRepo,
		exerciseRepo: exerciseRepo,
	}
}

func validatePlanInput(input WorkoutPlanInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrPlanInvalid)
	}
	if input.SessionsPerWeek < 0 || input.SessionsPerWeek > 7 {
		return fmt.Errorf("%w: sessions per week must be between 0 and 7", ErrPlanInvalid)
	}
	switch input.Level {
	case "", domain.LevelBeginner, domain.LevelIntermediate, domain.LevelAdvanced:
	default:
		return fmt.Errorf("%w: unknown training level %q", ErrPlanInvalid, input.Level)
	}
	for _, session := range input.Sessions {
		if session.Name == "" {
			return fmt.Errorf("%w: every session needs a name", ErrPlanInvalid)
		}
		if session.DayOfWeek != nil && (*session.DayOfWeek < 1 || *session.DayOfWeek > 7) {
			return fmt.Errorf("%w: day of week must be between 1 and 7", ErrPlanInvalid)
		}
		for _, row := range session.Exercises {
			if row.ExerciseID == primitive.NilObjectID {
				return fmt.Errorf("%w: exercise row without an exercise ID", ErrPlanInvalid)
			}
			if row.Sets <= 0 {
				return fmt.Errorf("%w: sets must be positive", ErrPlanInvalid)
			}
		}
	}
	return nil
}

// verifyExercisesExist makes sure every referenced exercise is real, so the
// plan never holds dangling IDs that would break the analysis later.
func (s *workoutService) verifyExercisesExist(ctx context.Context, plan *domain.WorkoutPlan) error {
	ids := plan.ExerciseIDs()
	if len(ids) == 0 {
		return nil
	}
	exercises, err := s.exerciseRepo.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(exercises) != len(ids) {
		return fmt.Errorf("%w: plan references exercises that do not exist", ErrPlanInvalid)
	}
	return nil
}

func applyPlanInput(plan *domain.WorkoutPlan, input WorkoutPlanInput) {
	plan.Name = input.Name
	plan.Description = input.Description
	plan.Level = input.Level
	plan.SessionsPerWeek = input.SessionsPerWeek
	plan.Sessions = input.Sessions
	plan.StartDate = input.StartDate
	plan.EndDate = input.EndDate
	plan.IsActive = input.IsActive
}

// CreatePlan builds a new workout plan for a client.
func (s *workoutService) CreatePlan(ctx context.Context, trainerID, clientID primitive.ObjectID, input WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	plan := &domain.WorkoutPlan{
		TrainerID: trainerID,
		ClientID:  clientID,
	}
	applyPlanInput(plan, input)

	if err := s.verifyExercisesExist(ctx, plan); err != nil {
		return nil, err
	}

	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	return s.planRepo.GetByID(ctx, planID)
}

// GetPlan retrieves a plan, checking it belongs to the trainer.
func (s *workoutService) GetPlan(ctx context.Context, trainerID, planID primitive.ObjectID) (*domain.WorkoutPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.TrainerID != trainerID {
		return nil, ErrPlanNotFound // Do not reveal other trainers' plans
	}
	return plan, nil
}

// GetPlansForClient retrieves all plans the trainer built for a client.
func (s *workoutService) GetPlansForClient(ctx context.Context, trainerID, clientID primitive.ObjectID) ([]domain.WorkoutPlan, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}
	return s.planRepo.GetByClientAndTrainerID(ctx, clientID, trainerID)
}

// UpdatePlan replaces the editable fields of an existing plan.
func (s *workoutService) UpdatePlan(ctx context.Context, trainerID, planID primitive.ObjectID, input WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	if err := validatePlanInput(input); err != nil {
		return nil, err
	}

	existing, err := s.GetPlan(ctx, trainerID, planID)
	if err != nil {
		return nil, err
	}

	applyPlanInput(existing, input)

	if err := s.verifyExercisesExist(ctx, existing); err != nil {
		return nil, err
	}

	if err := s.planRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeletePlan removes a plan; ownership is enforced by the repo filter.
func (s *workoutService) DeletePlan(ctx context.Context, trainerID, planID primitive.ObjectID) error {
	err := s.planRepo.Delete(ctx, planID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrPlanNotFound
	}
	return err
}
