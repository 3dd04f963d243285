package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/usecase/profile"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase) *ProfileHandler {
	return &ProfileHandler{profileUseCase: profileUseCase}
}

// Me handles GET /profile/me and returns the combined profile document.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	doc, err := h.profileUseCase.GetDocument(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type BioRequest struct {
	Bio string `json:"bio" binding:"max=500"`
}

// UpdateBio handles PUT /profile/bio
func (h *ProfileHandler) UpdateBio(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	updated, err := h.profileUseCase.UpdateBio(c.Request.Context(), userID, req.Bio)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
