package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/onboarding"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{onboardingUseCase: onboardingUseCase}
}

// RouteResponse is the router's verdict for the client's current route.
type RouteResponse struct {
	State  string `json:"state"`
	Action string `json:"action"`
	Target string `json:"target,omitempty"`
}

// Route handles GET /onboarding/route?current=<route>
func (h *OnboardingHandler) Route(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	current := domain.Route(c.Query("current"))

	decision, err := h.onboardingUseCase.ResolveRoute(c.Request.Context(), userID, current)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RouteResponse{
		State:  decision.State.String(),
		Action: decision.Action.String(),
		Target: string(decision.Target),
	})
}

type NameRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Surname     string `json:"surname" binding:"omitempty,max=100"`
}

// SaveName handles PUT /onboarding/name
func (h *OnboardingHandler) SaveName(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveName(c.Request.Context(), userID, req.DisplayName, req.Surname)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type DOBRequest struct {
	DOB string `json:"dob" binding:"required,dateonly"`
}

// SaveDOB handles PUT /onboarding/dob
func (h *OnboardingHandler) SaveDOB(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req DOBRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	dob, err := time.Parse(time.DateOnly, req.DOB)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: domain.ErrInvalidDate.Error()})
		return
	}

	user, err := h.onboardingUseCase.SaveDOB(c.Request.Context(), userID, dob)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type GenderRequest struct {
	Gender string `json:"gender" binding:"required"`
}

// SaveGender handles PUT /onboarding/gender
func (h *OnboardingHandler) SaveGender(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req GenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveGender(c.Request.Context(), userID, req.Gender)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type SelectionsRequest struct {
	Selections []string `json:"selections" binding:"required"`
}

// SaveLookingFor handles PUT /onboarding/looking-for
func (h *OnboardingHandler) SaveLookingFor(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveLookingFor(c.Request.Context(), userID, req.Selections)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// SaveInterestedIn handles PUT /onboarding/interested-in
func (h *OnboardingHandler) SaveInterestedIn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SelectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveInterestedIn(c.Request.Context(), userID, req.Selections)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type HeightRequest struct {
	HeightCm int `json:"height_cm" binding:"required"`
}

// SaveHeight handles PUT /onboarding/height
func (h *OnboardingHandler) SaveHeight(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req HeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveHeight(c.Request.Context(), userID, req.HeightCm)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type AvailabilityRequest struct {
	Days []bool `json:"days" binding:"required"`
}

// SaveAvailability handles PUT /onboarding/availability
func (h *OnboardingHandler) SaveAvailability(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveAvailability(c.Request.Context(), userID, req.Days)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// CompletePhotos handles POST /onboarding/photos/complete
func (h *OnboardingHandler) CompletePhotos(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.onboardingUseCase.CompletePhotos(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// LocationRequest uses pointers so that 0 (the equator, the prime meridian)
// passes the required check.
type LocationRequest struct {
	Lat *float64 `json:"lat" binding:"required,min=-90,max=90"`
	Lon *float64 `json:"lon" binding:"required,min=-180,max=180"`
}

// SaveLocation handles PUT /onboarding/location
func (h *OnboardingHandler) SaveLocation(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.onboardingUseCase.SaveLocation(c.Request.Context(), userID, *req.Lat, *req.Lon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
