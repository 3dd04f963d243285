package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/kindredapp/kindred-backend/internal/delivery/http/handler"
	"github.com/kindredapp/kindred-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler       *handler.AuthHandler
	onboardingHandler *handler.OnboardingHandler
	photoHandler      *handler.PhotoHandler
	promptHandler     *handler.PromptHandler
	profileHandler    *handler.ProfileHandler
	authMiddleware    *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	onboardingHandler *handler.OnboardingHandler,
	photoHandler *handler.PhotoHandler,
	promptHandler *handler.PromptHandler,
	profileHandler *handler.ProfileHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:       authHandler,
		onboardingHandler: onboardingHandler,
		photoHandler:      photoHandler,
		promptHandler:     promptHandler,
		profileHandler:    profileHandler,
		authMiddleware:    authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	registerValidations()

	router := gin.Default()

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/google", r.authHandler.Google)
			auth.POST("/apple", r.authHandler.Apple)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Onboarding routes
			onboarding := protected.Group("/onboarding")
			{
				onboarding.GET("/route", r.onboardingHandler.Route)
				onboarding.PUT("/name", r.onboardingHandler.SaveName)
				onboarding.PUT("/dob", r.onboardingHandler.SaveDOB)
				onboarding.PUT("/gender", r.onboardingHandler.SaveGender)
				onboarding.PUT("/looking-for", r.onboardingHandler.SaveLookingFor)
				onboarding.PUT("/interested-in", r.onboardingHandler.SaveInterestedIn)
				onboarding.PUT("/height", r.onboardingHandler.SaveHeight)
				onboarding.PUT("/availability", r.onboardingHandler.SaveAvailability)
				onboarding.POST("/photos/complete", r.onboardingHandler.CompletePhotos)
				onboarding.PUT("/location", r.onboardingHandler.SaveLocation)
			}

			// Photo routes
			protected.POST("/upload", r.photoHandler.Upload)
			photos := protected.Group("/photos")
			{
				photos.GET("", r.photoHandler.ListPhotos)
				photos.DELETE("/:id", r.photoHandler.DeletePhoto)
			}

			// Prompt routes
			protected.POST("/prompts", r.promptHandler.SavePrompts)

			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.Me)
				profile.PUT("/bio", r.profileHandler.UpdateBio)
			}
		}

		// Prompt catalog (public)
		v1.GET("/prompts/catalog", r.promptHandler.Catalog)
	}

	return router
}

// registerValidations adds the dateonly tag used by the dob request binding.
func registerValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("dateonly", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
}
