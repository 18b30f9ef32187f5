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
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrDuplicateMetric     = errors.New("measurement contains the same metric more than once")
	ErrUnknownMetric       = errors.New("measurement references an unknown metric")
)

// MeasurementInput carries the editable fields of a measurement session.
type MeasurementInput struct {
	Date   time.Time
	Values []domain.MetricValue
	Note   string
}

// GoalInput carries the editable fields of a client goal.
type GoalInput struct {
	MetricID    string
	TargetValue float64
	Deadline    *time.Time
	Note        string
}

// --- Service Interface ---

// ClientDataService groups the per-client data a trainer records between
// analyses: measurement sessions, the anamnesis questionnaire and goals.
type ClientDataService interface {
	CreateMeasurement(ctx context.Context, trainerID, clientID primitive.ObjectID, input MeasurementInput) (*domain.Measurement, error)
	GetMeasurements(ctx context.Context, clientID primitive.ObjectID) ([]domain.Measurement, error)
	UpdateMeasurement(ctx context.Context, trainerID, measurementID primitive.ObjectID, input MeasurementInput) (*domain.Measurement, error)
	DeleteMeasurement(ctx context.Context, trainerID, measurementID primitive.ObjectID) error

	UpsertAnamnesi(ctx context.Context, trainerID, clientID primitive.ObjectID, data domain.AnamnesiData) (*domain.AnamnesiData, error)
	GetAnamnesi(ctx context.Context, clientID primitive.ObjectID) (*domain.AnamnesiData, error)

	CreateGoal(ctx context.Context, trainerID, clientID primitive.ObjectID, input GoalInput) (*domain.ClientGoal, error)
	GetGoals(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientGoal, error)
	DeleteGoal(ctx context.Context, trainerID, goalID primitive.ObjectID) error
}

// --- Service Implementation ---

// clientDataService implements the ClientDataService interface.
type clientDataService struct {
	measurementRepo repository.MeasurementRepository
	anamnesiRepo    repository.AnamnesiRepository
	goalRepo        repository.GoalRepository
}

// NewClientDataService creates a new instance of clientDataService.
func NewClientDataService(
	measurementRepo repository.MeasurementRepository,
	anamnesiRepo repository.AnamnesiRepository,
	goalRepo repository.GoalRepository,
) ClientDataService {
	return &clientDataService{
		measurementRepo: measurementRepo,
		anamnesiRepo:    anamnesiRepo,
		goalRepo:        goalRepo,
	}
}

// validateMeasurementValues enforces the one-value-per-metric invariant and
// checks every metric ID against the catalog.
func validateMeasurementValues(values []domain.MetricValue) error {
	if len(values) == 0 {
		return errors.New("a measurement needs at least one value")
	}
	catalog := domain.MetricCatalog()
	known := make(map[string]struct{}, len(catalog))
	for _, m := range catalog {
		known[m.ID] = struct{}{}
	}

	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if _, ok := known[v.MetricID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMetric, v.MetricID)
		}
		if _, dup := seen[v.MetricID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateMetric, v.MetricID)
		}
		seen[v.MetricID] = struct{}{}
	}
	return nil
}

// --- Measurements ---

// CreateMeasurement saves a new session and auto-completes any active goal
// whose target the new values reach.
func (s *clientDataService) CreateMeasurement(ctx context.Context, trainerID, clientID primitive.ObjectID, input MeasurementInput) (*domain.Measurement, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}
	if err := validateMeasurementValues(input.Values); err != nil {
		return nil, err
	}
	if input.Date.IsZero() {
		input.Date = time.Now()
	}

	// Snapshot the previous state before inserting, so goal direction is
	// judged against the values that existed before this session.
	previous, err := s.measurementRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	measurement := &domain.Measurement{
		ClientID:  clientID,
		TrainerID: trainerID,
		Date:      input.Date,
		Values:    input.Values,
		Note:      input.Note,
	}

	completed, err := s.completeReachedGoals(ctx, clientID, measurement, previous)
	if err != nil {
		return nil, err
	}
	measurement.CompletedGoalIDs = completed

	measurementID, err := s.measurementRepo.Create(ctx, measurement)
	if err != nil {
		return nil, err
	}
	return s.measurementRepo.GetByID(ctx, measurementID)
}

// completeReachedGoals marks active goals as achieved when the incoming
// measurement reaches their target. Direction is inferred from the latest
// previous value: moving toward the target and landing on or past it counts.
// With no previous value only an exact hit counts, since the direction is
// unknown.
func (s *clientDataService) completeReachedGoals(ctx context.Context, clientID primitive.ObjectID, measurement *domain.Measurement, previous []domain.Measurement) ([]primitive.ObjectID, error) {
	goals, err := s.goalRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	var completed []primitive.ObjectID
	for _, goal := range goals {
		if goal.Achieved {
			continue
		}
		value, ok := measurement.Value(goal.MetricID)
		if !ok {
			continue
		}
		if !goalReached(goal.TargetValue, value, latestPreviousValue(previous, goal.MetricID)) {
			continue
		}
		if err := s.goalRepo.MarkAchieved(ctx, goal.ID); err != nil {
			return nil, err
		}
		completed = append(completed, goal.ID)
	}
	return completed, nil
}

// latestPreviousValue finds the most recent recorded value for a metric.
// Measurements come from the repo newest-first.
func latestPreviousValue(measurements []domain.Measurement, metricID string) *float64 {
	for i := range measurements {
		if v, ok := measurements[i].Value(metricID); ok {
			return &v
		}
	}
	return nil
}

func goalReached(target, value float64, previous *float64) bool {
	if value == target {
		return true
	}
	if previous == nil {
		return false
	}
	if *previous > target {
		return value <= target // Losing toward the target (weight, waist...)
	}
	if *previous < target {
		return value >= target // Gaining toward the target (1RM, lean mass...)
	}
	return false
}

// GetMeasurements returns the client's sessions, newest first.
func (s *clientDataService) GetMeasurements(ctx context.Context, clientID primitive.ObjectID) ([]domain.Measurement, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID cannot be nil")
	}
	return s.measurementRepo.GetByClientID(ctx, clientID)
}

// UpdateMeasurement edits an existing session. Goal auto-completion only runs
// on creation: edits correct recording mistakes, they are not new data points.
func (s *clientDataService) UpdateMeasurement(ctx context.Context, trainerID, measurementID primitive.ObjectID, input MeasurementInput) (*domain.Measurement, error) {
	if err := validateMeasurementValues(input.Values); err != nil {
		return nil, err
	}

	existing, err := s.measurementRepo.GetByID(ctx, measurementID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMeasurementNotFound
		}
		return nil, err
	}
	if existing.TrainerID != trainerID {
		return nil, ErrMeasurementNotFound
	}

	if !input.Date.IsZero() {
		existing.Date = input.Date
	}
	existing.Values = input.Values
	existing.Note = input.Note

	if err := s.measurementRepo.Update(ctx, existing); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMeasurementNotFound
		}
		return nil, err
	}
	return existing, nil
}

// DeleteMeasurement removes a session; ownership is enforced by the repo filter.
func (s *clientDataService) DeleteMeasurement(ctx context.Context, trainerID, measurementID primitive.ObjectID) error {
	err := s.measurementRepo.Delete(ctx, measurementID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMeasurementNotFound
	}
	return err
}

// --- Anamnesis ---

// UpsertAnamnesi saves the single questionnaire a client has.
func (s *clientDataService) UpsertAnamnesi(ctx context.Context, trainerID, clientID primitive.ObjectID, data domain.AnamnesiData) (*domain.AnamnesiData, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}
	data.ClientID = clientID
	data.TrainerID = trainerID
	if err := s.anamnesiRepo.Upsert(ctx, &data); err != nil {
		return nil, err
	}
	return s.anamnesiRepo.GetByClientID(ctx, clientID)
}

// GetAnamnesi returns the client's questionnaire, or nil when none was filled
// in yet (a new client simply has no anamnesis, that is not an error).
func (s *clientDataService) GetAnamnesi(ctx context.Context, clientID primitive.ObjectID) (*domain.AnamnesiData, error) {
	anamnesi, err := s.anamnesiRepo.GetByClientID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return anamnesi, nil
}

// --- Goals ---

// CreateGoal records a metric target for a client.
func (s *clientDataService) CreateGoal(ctx context.Context, trainerID, clientID primitive.ObjectID, input GoalInput) (*domain.ClientGoal, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}
	if input.MetricID == "" {
		return nil, errors.New("goal metric ID cannot be empty")
	}
	catalog := domain.MetricCatalog()
	known := false
	for _, m := range catalog {
		if m.ID == input.MetricID {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, input.MetricID)
	}

	goal := &domain.ClientGoal{
		ClientID:    clientID,
		TrainerID:   trainerID,
		MetricID:    input.MetricID,
		TargetValue: input.TargetValue,
		Deadline:    input.Deadline,
		Note:        input.Note,
	}
	goalID, err := s.goalRepo.Create(ctx, goal)
	if err != nil {
		return nil, err
	}
	return s.goalRepo.GetByID(ctx, goalID)
}

// GetGoals returns all goals for a client, achieved ones included.
func (s *clientDataService) GetGoals(ctx context.Context, clientID primitive.ObjectID) ([]domain.ClientGoal, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID cannot be nil")
	}
	return s.goalRepo.GetByClientID(ctx, clientID)
}

// DeleteGoal removes a goal; ownership is enforced by the repo filter.
func (s *clientDataService) DeleteGoal(ctx context.Context, trainerID, goalID primitive.ObjectID) error {
	err := s.goalRepo.Delete(ctx, goalID, trainerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrGoalNotFound
	}
	return err
}
