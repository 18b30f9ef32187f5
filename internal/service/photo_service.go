package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/domain"
	"ptstudio/trainer-hub/internal/repository"
	"ptstudio/trainer-hub/internal/storage"
)

// --- Error Definitions ---
var (
	ErrPhotoNotFound          = errors.New("progress photo not found")
	ErrUnsupportedContentType = errors.New("unsupported photo content type")
)

// allowedPhotoContentTypes limits uploads to image formats the mobile apps
// actually produce.
var allowedPhotoContentTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/heic": {},
	"image/webp": {},
}

// PhotoUploadRequest describes the photo about to be uploaded.
type PhotoUploadRequest struct {
	ContentType   string
	TakenAt       time.Time
	MeasurementID *primitive.ObjectID
	Note          string
}

// PhotoUpload pairs the stored metadata with the presigned PUT URL the client
// uploads the binary to.
type PhotoUpload struct {
	Photo     *domain.ProgressPhoto
	UploadURL string
}

// PhotoWithURL pairs metadata with a presigned GET URL for display.
type PhotoWithURL struct {
	Photo       domain.ProgressPhoto
	DownloadURL string
}

// --- Service Interface ---
type PhotoService interface {
	RequestUpload(ctx context.Context, trainerID, clientID primitive.ObjectID, req PhotoUploadRequest) (*PhotoUpload, error)
	GetPhotosForClient(ctx context.Context, clientID primitive.ObjectID) ([]PhotoWithURL, error)
	DeletePhoto(ctx context.Context, trainerID, photoID primitive.ObjectID) error
}

// --- Service Implementation ---

// photoService implements the PhotoService interface.
type photoService struct {
	photoRepo   repository.PhotoRepository
	fileStorage storage.FileStorage
	urlExpiry   time.Duration
}

// NewPhotoService creates a new instance of photoService.
func NewPhotoService(photoRepo repository.PhotoRepository, fileStorage storage.FileStorage, urlExpiry time.Duration) PhotoService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	return &photoService{
		photoRepo:   photoRepo,
		fileStorage: fileStorage,
		urlExpiry:   urlExpiry,
	}
}

// RequestUpload creates the metadata record and hands back a presigned PUT
// URL. The object key is server-generated so clients cannot pick paths.
func (s *photoService) RequestUpload(ctx context.Context, trainerID, clientID primitive.ObjectID, req PhotoUploadRequest) (*PhotoUpload, error) {
	if trainerID == primitive.NilObjectID || clientID == primitive.NilObjectID {
		return nil, errors.New("trainer ID and client ID are required")
	}
	if _, ok := allowedPhotoContentTypes[req.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContentType, req.ContentType)
	}
	if req.TakenAt.IsZero() {
		req.TakenAt = time.Now()
	}

	objectKey := fmt.Sprintf("progress-photos/%s/%s", clientID.Hex(), uuid.NewString())

	photo := &domain.ProgressPhoto{
		ClientID:      clientID,
		TrainerID:     trainerID,
		MeasurementID: req.MeasurementID,
		ObjectKey:     objectKey,
		ContentType:   req.ContentType,
		TakenAt:       req.TakenAt,
		Note:          req.Note,
	}

	photoID, err := s.photoRepo.Create(ctx, photo)
	if err != nil {
		return nil, err
	}
	photo.ID = photoID

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, req.ContentType, s.urlExpiry)
	if err != nil {
		// Metadata without an upload URL is useless; roll it back.
		if delErr := s.photoRepo.Delete(ctx, photoID, trainerID); delErr != nil {
			log.Printf("WARN: failed to roll back photo metadata %s: %v", photoID.Hex(), delErr)
		}
		return nil, err
	}

	return &PhotoUpload{Photo: photo, UploadURL: uploadURL}, nil
}

// GetPhotosForClient lists the client's photos with fresh download URLs.
func (s *photoService) GetPhotosForClient(ctx context.Context, clientID primitive.ObjectID) ([]PhotoWithURL, error) {
	if clientID == primitive.NilObjectID {
		return nil, errors.New("client ID cannot be nil")
	}
	photos, err := s.photoRepo.GetByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]PhotoWithURL, 0, len(photos))
	for _, photo := range photos {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, photo.ObjectKey, s.urlExpiry)
		if err != nil {
			// One broken URL should not hide the whole gallery.
			log.Printf("WARN: failed to presign download for photo %s: %v", photo.ID.Hex(), err)
			continue
		}
		result = append(result, PhotoWithURL{Photo: photo, DownloadURL: url})
	}
	return result, nil
}

// DeletePhoto removes metadata and the stored object.
func (s *photoService) DeletePhoto(ctx context.Context, trainerID, photoID primitive.ObjectID) error {
	photo, err := s.photoRepo.GetByID(ctx, photoID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}
	if photo.TrainerID != trainerID {
		return ErrPhotoNotFound
	}

	if err := s.photoRepo.Delete(ctx, photoID, trainerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPhotoNotFound
		}
		return err
	}

	// Best effort: the metadata is already gone, an orphaned object in the
	// bucket is a cleanup-job problem, not a user-facing failure.
	if err := s.fileStorage.DeleteObject(ctx, photo.ObjectKey); err != nil {
		log.Printf("WARN: failed to delete photo object '%s': %v", photo.ObjectKey, err)
	}
	return nil
}
