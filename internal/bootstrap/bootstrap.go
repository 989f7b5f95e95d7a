package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/maritimetq/talentquest/internal/app/controllers"
	appMigrations "github.com/maritimetq/talentquest/internal/app/migrations"
	appRepos "github.com/maritimetq/talentquest/internal/app/repositories"
	appRoutes "github.com/maritimetq/talentquest/internal/app/routes"
	appServices "github.com/maritimetq/talentquest/internal/app/services"
	"github.com/maritimetq/talentquest/internal/config"
	"github.com/maritimetq/talentquest/internal/db"
	appMiddleware "github.com/maritimetq/talentquest/internal/middleware"
	pkgAuth "github.com/maritimetq/talentquest/internal/pkg/auth"
	"github.com/maritimetq/talentquest/internal/pkg/email"
	"github.com/maritimetq/talentquest/internal/pkg/filestorage"
	"github.com/maritimetq/talentquest/internal/pkg/helpers"
	"github.com/maritimetq/talentquest/internal/pkg/logger"
	"github.com/maritimetq/talentquest/internal/pkg/validation"
	"github.com/maritimetq/talentquest/internal/pkg/websocket"
	"github.com/maritimetq/talentquest/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given.
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB                  *db.PostgresDB
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	FileStorage         filestorage.FileStorage
	Mailer              email.EmailService
	Hub                 *websocket.Hub
	RegistrationService appServices.RegistrationService
	UploadService       appServices.UploadService
	PassService         appServices.PassService
	AdminService        appServices.AdminService
	StatsService        appServices.StatsService
	ExportService       appServices.ExportService
	AuthService         appServices.AuthService
	AuthMiddleware      *appMiddleware.AuthMiddleware
	RegistrationLimiter *appMiddleware.IPRateLimiter
	Controllers         appRoutes.Controllers
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.Logging.Format == "text",
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// ConnectDatabase opens the pool without touching the schema.
func ConnectDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// RunMigrations applies every pending file of the migrations directory.
func RunMigrations(ctx context.Context, cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) error {
	lgr.Info().Str("dir", cfg.Database.MigrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, cfg.Database.MigrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")
	return nil
}

// SetupDatabase connects, migrates and returns the database.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	database, err := ConnectDatabase(cfg, lgr)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := RunMigrations(ctx, cfg, database, lgr); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: database, Logger: lgr}

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(database.Pool)

	var err error
	deps.FileStorage, err = filestorage.New(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Mailer = email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, logger.Component("email"))

	deps.Hub = websocket.NewHub(logger.Component("realtime"), cfg.Server.AllowedOrigins)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 12*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	event := appServices.EventInfo{Name: cfg.Event.Name, Venue: cfg.Event.Venue, Date: cfg.Event.Date}
	registrations := appRepos.NewRegistrationRepository(database)
	passes := deps.Repos.PassRepository

	deps.RegistrationService = appServices.NewRegistrationService(
		registrations,
		passes,
		deps.FileStorage,
		deps.Mailer,
		deps.Hub,
		appServices.RegistrationOptions{
			Open:          cfg.Event.RegistrationOpen,
			Event:         event,
			PublicBaseURL: cfg.Server.PublicBaseURL,
		},
		logger.Component("registration"),
	)
	deps.UploadService = appServices.NewUploadService(deps.FileStorage, logger.Component("upload"))
	deps.PassService = appServices.NewPassService(
		passes,
		deps.FileStorage,
		deps.Mailer,
		deps.Hub,
		event,
		cfg.Server.PublicBaseURL,
		logger.Component("pass"),
	)
	deps.AdminService = appServices.NewAdminService(appServices.AdminStores{
		Contestants:   deps.Repos.ContestantRepository,
		Students:      deps.Repos.StudentRepository,
		Entries:       deps.Repos.EntryRepository,
		Guests:        deps.Repos.GuestRepository,
		Passes:        passes,
		Registrations: registrations,
	}, deps.FileStorage, deps.Hub, logger.Component("admin"))
	deps.StatsService = appServices.NewStatsService(deps.Repos.StatsRepository)
	deps.ExportService = appServices.NewExportService(
		deps.Repos.ContestantRepository,
		deps.Repos.EntryRepository,
		deps.Repos.GuestRepository,
		cfg.Event.Name,
	)
	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, logger.Component("auth"))

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, cfg.JWT.CookieName)
	deps.RegistrationLimiter = appMiddleware.NewIPRateLimiter(cfg.RateLimit.RegistrationsPerMinute, cfg.RateLimit.Burst)

	deps.Controllers = appRoutes.Controllers{
		Registration: appControllers.NewRegistrationController(deps.RegistrationService, deps.UploadService, lgr),
		Pass:         appControllers.NewPassController(deps.PassService),
		Auth: appControllers.NewAuthController(deps.AuthService, appControllers.SessionCookie{
			Name:   cfg.JWT.CookieName,
			Secure: cfg.JWT.CookieSecure,
		}, lgr),
		Admin:    appControllers.NewAdminController(deps.AdminService, deps.StatsService),
		Export:   appControllers.NewExportController(deps.ExportService),
		Realtime: appControllers.NewRealtimeController(deps.Hub),
	}

	return deps, nil
}

// SeedDefaults creates the configured admin account on first start.
func SeedDefaults(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if err := seed.CreateDefaultData(ctx, cfg, deps.AuthService, deps.Logger); err != nil {
		// not fatal: accounts can be created with mtqctl
		deps.Logger.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
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

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
		appMiddleware.CORS(cfg.Server.AllowedOrigins),
	)

	appRoutes.SetupSwagger(router, swaggerHost(cfg.Server.PublicBaseURL))
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RegistrationLimiter, deps.DB.Ping)

	if cfg.Storage.Driver == config.StorageDriverLocal {
		router.Static("/uploads", cfg.Server.StoragePath)
		lgr.Info().Str("path", cfg.Server.StoragePath).Msg("Static file serving configured for uploads directory")
	}

	return router
}

func swaggerHost(publicBaseURL string) string {
	u, err := url.Parse(publicBaseURL)
	if err != nil || u.Host == "" {
		return "localhost:8080"
	}
	return u.Host
}
