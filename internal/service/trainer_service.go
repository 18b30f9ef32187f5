package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/repository"
)

// --- Error Definitions ---
var (
	ErrClientNotFound      = errors.New("client not found")
	ErrUserNotClient       = errors.New("the specified user is not a client")
	ErrClientAlreadyManaged = errors.New("client is already managed by a trainer")
)

// --- Service Interface ---
type TrainerService interface {
	AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error)
	GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error)
	GetManagedClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.User, error)
	UpdateClientDemographics(ctx context.Context, trainerID, clientID primitive.ObjectID, sex domain.Sex, birthDate *time.Time) error
}

// --- Service Implementation ---

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo repository.UserRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(userRepo repository.UserRepository) TrainerService {
	return &trainerService{userRepo: userRepo}
}

// AddClientByEmail links an existing client account to the trainer.
func (s *trainerService) AddClientByEmail(ctx context.Context, trainerID primitive.ObjectID, clientEmail string) (*domain.User, error) {
	if trainerID == primitive.NilObjectID || clientEmail == "" {
		return nil, errors.New("trainer ID and client email are required")
	}

	client, err := s.userRepo.GetByEmail(ctx, clientEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() {
		return nil, ErrUserNotClient
	}
	if client.TrainerID != nil && *client.TrainerID != trainerID {
		return nil, ErrClientAlreadyManaged
	}

	if err := s.userRepo.SetTrainerForClient(ctx, client.ID, trainerID); err != nil {
		return nil, err
	}
	if err := s.userRepo.AddClientIDToTrainer(ctx, trainerID, client.ID); err != nil {
		return nil, err
	}

	client.TrainerID = &trainerID
	client.PasswordHash = ""
	return client, nil
}

// GetManagedClients retrieves all clients managed by the trainer.
func (s *trainerService) GetManagedClients(ctx context.Context, trainerID primitive.ObjectID) ([]domain.User, error) {
	if trainerID == primitive.NilObjectID {
		return nil, errors.New("trainer ID cannot be nil")
	}
	clients, err := s.userRepo.GetClientsByTrainerID(ctx, trainerID)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

// GetManagedClient retrieves a single client, verifying the trainer manages
// them. Every client-scoped endpoint goes through this check.
func (s *trainerService) GetManagedClient(ctx context.Context, trainerID, clientID primitive.ObjectID) (*domain.User, error) {
	client, err := s.userRepo.GetByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	if !client.IsClient() || client.TrainerID == nil || *client.TrainerID != trainerID {
		return nil, ErrClientNotFound // Do not reveal other trainers' clients
	}
	client.PasswordHash = ""
	return client, nil
}

// UpdateClientDemographics sets the sex/birth date feeding the normative
// classifiers, after the ownership check.
func (s *trainerService) UpdateClientDemographics(ctx context.Context, trainerID, clientID primitive.ObjectID, sex domain.Sex, birthDate *time.Time) error {
	if _, err := s.GetManagedClient(ctx, trainerID, clientID); err != nil {
		return err
	}
	return s.userRepo.UpdateClientDemographics(ctx, clientID, sex, birthDate)
}
