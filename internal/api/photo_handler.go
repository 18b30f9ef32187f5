package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ptstudio/trainer-hub/internal/service"
)

// PhotoHandler covers progress-photo metadata and presigned URLs.
type PhotoHandler struct {
	photoService   service.PhotoService
	trainerService service.TrainerService
}

// NewPhotoHandler creates a new PhotoHandler.
func NewPhotoHandler(photoService service.PhotoService, trainerService service.TrainerService) *PhotoHandler {
	return &PhotoHandler{
		photoService:   photoService,
		trainerService: trainerService,
	}
}

// --- DTOs ---

type PhotoUploadRequestBody struct {
	ContentType   string     `json:"contentType" binding:"required"`
	TakenAt       *time.Time `json:"takenAt"`
	MeasurementID *string    `json:"measurementId"`
	Note          string     `json:"note"`
}

type PhotoResponse struct {
	ID            string     `json:"id"`
	ClientID      string     `json:"clientId"`
	MeasurementID *string    `json:"measurementId,omitempty"`
	ContentType   string     `json:"contentType"`
	TakenAt       time.Time  `json:"takenAt"`
	Note          string     `json:"note,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UploadURL     string     `json:"uploadUrl,omitempty"`
	DownloadURL   string     `json:"downloadUrl,omitempty"`
}

// --- Handler Methods ---

// RequestPhotoUpload godoc
// @Summary Request a presigned URL to upload a progress photo
// @Tags Photos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Param photo body PhotoUploadRequestBody true "Photo metadata"
// @Success 201 {object} PhotoResponse "Metadata plus the presigned PUT URL"
// @Failure 400 {object} gin.H "Unsupported content type"
// @Router /clients/{clientId}/photos [post]
func (h *PhotoHandler) RequestPhotoUpload(c *gin.Context) {
	var req PhotoUploadRequestBody
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

	uploadReq := service.PhotoUploadRequest{
		ContentType: req.ContentType,
		Note:        req.Note,
	}
	if req.TakenAt != nil {
		uploadReq.TakenAt = *req.TakenAt
	}
	if req.MeasurementID != nil {
		measurementID, err := primitive.ObjectIDFromHex(*req.MeasurementID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid measurementId format.")
			return
		}
		uploadReq.MeasurementID = &measurementID
	}

	upload, err := h.photoService.RequestUpload(c.Request.Context(), trainerID, clientID, uploadReq)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedContentType) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare photo upload.")
		}
		return
	}

	resp := PhotoResponse{
		ID:          upload.Photo.ID.Hex(),
		ClientID:    upload.Photo.ClientID.Hex(),
		ContentType: upload.Photo.ContentType,
		TakenAt:     upload.Photo.TakenAt,
		Note:        upload.Photo.Note,
		CreatedAt:   upload.Photo.CreatedAt,
		UploadURL:   upload.UploadURL,
	}
	if upload.Photo.MeasurementID != nil {
		hex := upload.Photo.MeasurementID.Hex()
		resp.MeasurementID = &hex
	}
	c.JSON(http.StatusCreated, resp)
}

// GetClientPhotos godoc
// @Summary List a client's progress photos with fresh download URLs
// @Tags Photos
// @Produce json
// @Security BearerAuth
// @Param clientId path string true "Client ID"
// @Success 200 {array} PhotoResponse
// @Router /clients/{clientId}/photos [get]
func (h *PhotoHandler) GetClientPhotos(c *gin.Context) {
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

	photos, err := h.photoService.GetPhotosForClient(c.Request.Context(), clientID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve photos.")
		return
	}

	responses := make([]PhotoResponse, len(photos))
	for i, p := range photos {
		responses[i] = PhotoResponse{
			ID:          p.Photo.ID.Hex(),
			ClientID:    p.Photo.ClientID.Hex(),
			ContentType: p.Photo.ContentType,
			TakenAt:     p.Photo.TakenAt,
			Note:        p.Photo.Note,
			CreatedAt:   p.Photo.CreatedAt,
			DownloadURL: p.DownloadURL,
		}
		if p.Photo.MeasurementID != nil {
			hex := p.Photo.MeasurementID.Hex()
			responses[i].MeasurementID = &hex
		}
	}
	c.JSON(http.StatusOK, responses)
}

// DeletePhoto godoc
// @Summary Delete a progress photo (metadata and stored object)
// @Tags Photos
// @Security BearerAuth
// @Param photoId path string true "Photo ID"
// @Success 204 "Deleted"
// @Failure 404 {object} gin.H "Not found"
// @Router /photos/{photoId} [delete]
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	trainerID, ok := getAuthenticatedID(c)
	if !ok {
		return
	}
	photoID, ok := parseIDParam(c, "photoId")
	if !ok {
		return
	}

	if err := h.photoService.DeletePhoto(c.Request.Context(), trainerID, photoID); err != nil {
		if errors.Is(err, service.ErrPhotoNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete photo.")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
