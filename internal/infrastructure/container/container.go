package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kindredapp/kindred-backend/internal/config"
	"github.com/kindredapp/kindred-backend/internal/delivery/http"
	"github.com/kindredapp/kindred-backend/internal/delivery/http/handler"
	"github.com/kindredapp/kindred-backend/internal/delivery/http/middleware"
	"github.com/kindredapp/kindred-backend/internal/domain"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/database"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/server"
	"github.com/kindredapp/kindred-backend/internal/infrastructure/storage"
	"github.com/kindredapp/kindred-backend/internal/logging"
	"github.com/kindredapp/kindred-backend/internal/migrations"
	"github.com/kindredapp/kindred-backend/internal/repository/postgres"
	redisrepo "github.com/kindredapp/kindred-backend/internal/repository/redis"
	"github.com/kindredapp/kindred-backend/internal/usecase/auth"
	"github.com/kindredapp/kindred-backend/internal/usecase/onboarding"
	"github.com/kindredapp/kindred-backend/internal/usecase/photo"
	"github.com/kindredapp/kindred-backend/internal/usecase/profile"
	"github.com/kindredapp/kindred-backend/internal/usecase/prompt"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    logging.Logger
	DB     *sqlx.DB
	Redis  *goredis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log := logging.New(cfg.Logging.Level)

	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Apply schema migrations
	if err := runMigrations(ctx, db); err != nil {
		return nil, err
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize object storage
	s3Storage, err := storage.NewS3Storage(ctx, &cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	photoRepo := postgres.NewPhotoRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileCache := redisrepo.NewProfileCache(redisClient, cfg.Redis.CacheTTL())

	// Initialize identity providers. Apple is optional: a fetch failure of
	// its JWKS at boot only disables Apple sign-in.
	verifiers := map[domain.Provider]auth.TokenVerifier{
		domain.ProviderGoogle: auth.NewGoogleVerifier(cfg.Google.ClientID),
	}
	if cfg.Apple.ClientID != "" {
		appleVerifier, err := auth.NewAppleVerifier(ctx, cfg.Apple.ClientID)
		if err != nil {
			log.Warn(ctx, "apple sign-in disabled", "error", err)
		} else {
			verifiers[domain.ProviderApple] = appleVerifier
		}
	}

	// Initialize use cases
	authUseCase := auth.NewSocialAuthUseCase(
		userRepo,
		profileRepo,
		sessionRepo,
		verifiers,
		cfg.JWT.Secret,
		cfg.JWT.SessionTTL(),
		log,
	)

	onboardingUseCase := onboarding.NewOnboardingUseCase(
		userRepo,
		profileRepo,
		photoRepo,
		profileCache,
		log,
	)

	photoUseCase := photo.NewPhotoUseCase(
		photoRepo,
		s3Storage,
		profileCache,
		cfg.Storage.PublicBaseURL,
		log,
	)

	promptUseCase := prompt.NewPromptUseCase(
		userRepo,
		profileRepo,
		profileCache,
		log,
	)

	profileUseCase := profile.NewProfileUseCase(
		userRepo,
		profileRepo,
		photoRepo,
		profileCache,
		log,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	photoHandler := handler.NewPhotoHandler(photoUseCase)
	promptHandler := handler.NewPromptHandler(promptUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		onboardingHandler,
		photoHandler,
		promptHandler,
		profileHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, log)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

func runMigrations(ctx context.Context, db *sqlx.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db.DB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Warn(context.Background(), "error closing redis", "error", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
