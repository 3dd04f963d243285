package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/photo"
)

type PhotoHandler struct {
	photoUseCase *photo.PhotoUseCase
}

func NewPhotoHandler(photoUseCase *photo.PhotoUseCase) *PhotoHandler {
	return &PhotoHandler{photoUseCase: photoUseCase}
}

// UploadResponse mirrors the upload proxy contract.
type UploadResponse struct {
	Success bool   `json:"success"`
	Key     string `json:"key,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Upload handles POST /upload, multipart field "image".
func (h *PhotoHandler) Upload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, UploadResponse{Success: false, Error: "no file provided"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, UploadResponse{Success: false, Error: "unreadable file"})
		return
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")

	uploaded, err := h.photoUseCase.Upload(c.Request.Context(), userID, file.Filename, contentType, src)
	if err != nil {
		// The photo limit is the only client-correctable upload failure;
		// everything else is a storage-side 500 with no retry semantics.
		if errors.Is(err, domain.ErrPhotoLimitReached) {
			c.JSON(http.StatusBadRequest, UploadResponse{Success: false, Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, UploadResponse{Success: false, Error: "storage failure"})
		return
	}

	c.JSON(http.StatusOK, UploadResponse{Success: true, Key: uploaded.StorageKey})
}

// ListPhotos handles GET /photos
func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	photos, err := h.photoUseCase.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photos": photos})
}

// DeletePhoto handles DELETE /photos/:id
func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	photoID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid photo id"})
		return
	}

	if err := h.photoUseCase.Delete(c.Request.Context(), userID, photoID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "photo deleted"})
}
