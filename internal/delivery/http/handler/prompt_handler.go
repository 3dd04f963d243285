package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/usecase/prompt"
)

type PromptHandler struct {
	promptUseCase *prompt.PromptUseCase
}

func NewPromptHandler(promptUseCase *prompt.PromptUseCase) *PromptHandler {
	return &PromptHandler{promptUseCase: promptUseCase}
}

type SavePromptsRequest struct {
	Prompts []prompt.PromptInput `json:"prompts" binding:"required"`
}

// PromptsResponse carries the saved list back to the client.
type PromptsResponse struct {
	Success bool              `json:"success"`
	Prompts domain.PromptList `json:"prompts,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// SavePrompts handles POST /prompts
func (h *PromptHandler) SavePrompts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SavePromptsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, PromptsResponse{Success: false, Error: "invalid request body"})
		return
	}

	saved, err := h.promptUseCase.SavePrompts(c.Request.Context(), userID, req.Prompts)
	if err != nil {
		status := http.StatusInternalServerError
		msg := "internal error"
		if isPromptValidationError(err) {
			status, msg = http.StatusBadRequest, err.Error()
		}
		c.JSON(status, PromptsResponse{Success: false, Error: msg})
		return
	}

	c.JSON(http.StatusOK, PromptsResponse{Success: true, Prompts: saved})
}

// Catalog handles GET /prompts/catalog, the fixed question list clients
// render pickers from.
func (h *PromptHandler) Catalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": domain.PromptCatalog})
}

func isPromptValidationError(err error) bool {
	return errors.Is(err, domain.ErrPromptCount) ||
		errors.Is(err, domain.ErrUnknownPromptQuestion) ||
		errors.Is(err, domain.ErrDuplicatePromptQuestion) ||
		errors.Is(err, domain.ErrEmptyPromptAnswer)
}
