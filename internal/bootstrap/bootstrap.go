package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/placement-portal/internal/app/auth"
	appControllers "github.com/yigit/placement-portal/internal/app/controllers"
	appMigrations "github.com/yigit/placement-portal/internal/app/migrations"
	appRepos "github.com/yigit/placement-portal/internal/app/repositories"
	appRoutes "github.com/yigit/placement-portal/internal/app/routes"
	appServices "github.com/yigit/placement-portal/internal/app/services"
	"github.com/yigit/placement-portal/internal/config"
	"github.com/yigit/placement-portal/internal/db"
	appMiddleware "github.com/yigit/placement-portal/internal/middleware"
	pkgAuth "github.com/yigit/placement-portal/internal/pkg/auth"
	"github.com/yigit/placement-portal/internal/pkg/email"
	"github.com/yigit/placement-portal/internal/pkg/events"
	"github.com/yigit/placement-portal/internal/pkg/filestorage"
	"github.com/yigit/placement-portal/internal/pkg/helpers"
	"github.com/yigit/placement-portal/internal/pkg/logger"
	"github.com/yigit/placement-portal/internal/pkg/ratelimit"
	"github.com/yigit/placement-portal/internal/pkg/upload"
	"github.com/yigit/placement-portal/internal/pkg/validation"
	"github.com/yigit/placement-portal/internal/pkg/websocket"
	"github.com/yigit/placement-portal/internal/scheduler"
	"github.com/yigit/placement-portal/internal/seed"
)

// DefaultConfigPath is read when no path is given on the command line
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Repos  *appRepos.Repositories

	FileStorage  filestorage.FileStorage
	UploadGate   *upload.Gate
	JWTService   *pkgAuth.JWTService
	Hasher       *pkgAuth.PasswordHasher
	Validator    *validation.Validator
	Mailer       email.EmailService
	Publisher    events.Publisher
	EventHub     *websocket.Hub
	Limiter      ratelimit.Limiter
	AuthzService *appAuth.AuthorizationService

	AuthService        appServices.AuthService
	UserService        appServices.UserService
	JobListingService  appServices.JobListingService
	StudentService     appServices.StudentService
	ApplicationService appServices.ApplicationService

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Scheduler      *scheduler.Scheduler
	Logger         zerolog.Logger

	redisClient *redis.Client
	stopLimiter context.CancelFunc
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.FromStrings(cfg.Logging.Level, cfg.Logging.Format))
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.DB, error) {
	lgr.Info().Str("driver", cfg.Database.Driver).Msg("Establishing database connection...")
	database, err := db.Open(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := database.Ping(pingCtx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Driver, database.DSN, lgr).Up(); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Config: cfg, DB: database, Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = newFileStorage(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Str("backend", cfg.Storage.Backend).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.UploadGate = upload.NewGate(deps.FileStorage, cfg.Storage.MaxResumeBytes, logger.Component("upload"))
	deps.Hasher = pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	deps.Validator = appServices.NewValidator()
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		Expiration: helpers.ParseDuration(cfg.JWT.Expiration, pkgAuth.DefaultTokenExpiration),
		Issuer:     cfg.JWT.Issuer,
	})
	deps.Mailer = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		BaseURL:   cfg.SMTP.BaseURL,
	}, logger.Component("email"))
	deps.EventHub = websocket.NewHub(logger.Component("feed"))
	go deps.EventHub.Run(context.Background())
	deps.Publisher = events.NewMultiPublisher(newPublisher(cfg, lgr), deps.EventHub)
	deps.Limiter = deps.newLimiter(ctx, cfg, lgr)
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.UserRepository)

	// Initialize services
	deps.AuthService = appServices.NewAuthService(
		database,
		deps.Repos.UserRepository,
		deps.Repos.VerificationTokenRepository,
		deps.UploadGate,
		deps.Hasher,
		deps.JWTService,
		deps.Mailer,
		deps.Publisher,
		helpers.ParseDuration(cfg.Auth.VerificationTokenTTL, appServices.DefaultVerificationTTL),
		logger.Component("auth"),
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, logger.Component("users"))
	deps.JobListingService = appServices.NewJobListingService(deps.Repos.JobListingRepository, deps.Validator, logger.Component("job_listings"))
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Hasher, deps.Validator, logger.Component("students"))
	deps.ApplicationService = appServices.NewApplicationService(
		deps.Repos.ApplicationRepository,
		deps.Repos.StudentRepository,
		deps.Repos.JobListingRepository,
		deps.Publisher,
		logger.Component("applications"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:        appControllers.NewAuthController(deps.AuthService, lgr),
		User:        appControllers.NewUserController(deps.UserService, lgr),
		Health:      appControllers.NewHealthController(),
		JobListing:  appControllers.NewJobListingController(deps.JobListingService, deps.AuthzService, lgr),
		Student:     appControllers.NewStudentController(deps.StudentService, deps.AuthzService, lgr),
		Application: appControllers.NewApplicationController(deps.ApplicationService, deps.AuthzService, lgr),
		Feed:        appControllers.NewFeedController(deps.EventHub, deps.AuthzService, lgr),
	}

	if cfg.Scheduler.Enabled {
		deps.Scheduler = scheduler.NewScheduler(
			scheduler.Config{
				OrphanSweepSpec: cfg.Scheduler.OrphanSweepSpec,
				OrphanGrace:     helpers.ParseDuration(cfg.Scheduler.OrphanGrace, time.Hour),
				TokenPurgeSpec:  cfg.Scheduler.TokenPurgeSpec,
			},
			deps.FileStorage,
			deps.Repos.VerificationTokenRepository,
			logger.Component("scheduler"),
			deps.Repos.UserRepository,
			deps.Repos.StudentRepository,
		)
	}

	if cfg.Seed.Enabled {
		if err := seed.CreateDefaultCoordinator(ctx, deps.Repos.UserRepository, deps.Hasher,
			cfg.Seed.CoordinatorEmail, cfg.Seed.CoordinatorPassword, lgr); err != nil {
			// Log the error but don't fail the startup
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

func newFileStorage(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (filestorage.FileStorage, error) {
	switch cfg.Storage.Backend {
	case config.StorageMinIO:
		return filestorage.NewMinIOStorage(ctx, filestorage.MinIOConfig{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			Bucket:    cfg.MinIO.Bucket,
			Region:    cfg.MinIO.Region,
			UseSSL:    cfg.MinIO.UseSSL,
			Prefix:    cfg.Storage.ResumeDir,
		}, logger.Component("minio"))
	default:
		return filestorage.NewLocalStorage(cfg.Storage.Path, cfg.Storage.ResumeDir, logger.Component("storage"))
	}
}

// newPublisher connects to RabbitMQ when configured; events are only logged otherwise
func newPublisher(cfg *config.Config, lgr zerolog.Logger) events.Publisher {
	if cfg.RabbitMQ.URL == "" {
		lgr.Info().Msg("RabbitMQ not configured, domain events will only be logged")
		return events.NewLogPublisher(logger.Component("events"))
	}

	publisher, err := events.NewAMQPPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, logger.Component("events"))
	if err != nil {
		lgr.Warn().Err(err).Msg("Failed to connect to RabbitMQ, falling back to logged events")
		return events.NewLogPublisher(logger.Component("events"))
	}
	return publisher
}

// newLimiter shares buckets through Redis when reachable and keeps them in
// process memory otherwise
func (deps *Dependencies) newLimiter(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) ratelimit.Limiter {
	limits := ratelimit.Config{
		Capacity:        cfg.Auth.RateLimitCapacity,
		RefillPerMinute: cfg.Auth.RateLimitRefillPerMin,
	}

	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		err := client.Ping(pingCtx).Err()
		if err == nil {
			deps.redisClient = client
			lgr.Info().Str("addr", cfg.Redis.Addr).Msg("Rate limiting backed by Redis")
			return ratelimit.NewRedisLimiter(client, "placement:ratelimit:", limits)
		}
		lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unreachable, using in-memory rate limiting")
		_ = client.Close()
	}

	limiter := ratelimit.NewMemoryLimiter(limits)
	sweepCtx, cancel := context.WithCancel(context.Background())
	deps.stopLimiter = cancel
	go limiter.Run(sweepCtx)
	return limiter
}

// Close releases every connection opened by BuildDependencies except the database.
// Closing the publisher also stops the event hub.
func (deps *Dependencies) Close() {
	if deps.stopLimiter != nil {
		deps.stopLimiter()
	}
	if deps.Publisher != nil {
		if err := deps.Publisher.Close(); err != nil {
			deps.Logger.Warn().Err(err).Msg("Failed to close event publisher")
		}
	}
	if deps.redisClient != nil {
		if err := deps.redisClient.Close(); err != nil {
			deps.Logger.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	ConfigureBinding()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.BodyLimit(cfg.Server.MaxBodyBytes),
	)
	// multipart parts beyond this stay on disk until the form is removed
	router.MaxMultipartMemory = 1 << 20

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.Limiter, logger.Component("ratelimit"))

	return router
}

// ConfigureBinding makes gin's binding errors use json field names
func ConfigureBinding() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.UseJSONNames(v)
	}
}

// WithCORS wraps the router in the CORS policy for the configured origins
func WithCORS(cfg *config.Config, handler http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	})(handler)
}
