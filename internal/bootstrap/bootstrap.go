package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/eduinsight/eduinsight/docs" // generated swagger docs
	appControllers "github.com/eduinsight/eduinsight/internal/app/controllers"
	appMigrations "github.com/eduinsight/eduinsight/internal/app/migrations"
	appRepos "github.com/eduinsight/eduinsight/internal/app/repositories"
	appRoutes "github.com/eduinsight/eduinsight/internal/app/routes"
	appServices "github.com/eduinsight/eduinsight/internal/app/services"
	"github.com/eduinsight/eduinsight/internal/config"
	"github.com/eduinsight/eduinsight/internal/db"
	appMiddleware "github.com/eduinsight/eduinsight/internal/middleware"
	pkgAuth "github.com/eduinsight/eduinsight/internal/pkg/auth"
	"github.com/eduinsight/eduinsight/internal/pkg/logger"
	"github.com/eduinsight/eduinsight/internal/pkg/mlmodel"
	"github.com/eduinsight/eduinsight/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService          *appServices.AuthService
	StudentService       *appServices.StudentService
	RecordService        *appServices.RecordService
	PredictionService    appServices.PredictionService
	DashboardService     appServices.DashboardService
	AuthController       *appControllers.AuthController
	StudentController    *appControllers.StudentController
	RecordController     *appControllers.RecordController
	PredictionController *appControllers.PredictionController
	DashboardController  *appControllers.DashboardController
	PagesController      *appControllers.PagesController
	AuthMiddleware       *appMiddleware.AuthMiddleware
	Repos                *appRepos.Repositories
	JWTService           *pkgAuth.JWTService
	ModelStore           *mlmodel.Store
	Logger               zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.ModelStore = mlmodel.NewStore(cfg.ML.ModelPath)
	if !deps.ModelStore.Exists() {
		lgr.Warn().Str("path", cfg.ML.ModelPath).Msg("No trained model artifact found, prediction endpoint will report it as missing")
	}

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService)
	deps.StudentService = appServices.NewStudentService(deps.Repos.StudentRepository, deps.Repos.RecordRepository)
	deps.RecordService = appServices.NewRecordService(deps.Repos.RecordRepository, deps.Repos.StudentRepository)
	deps.PredictionService = appServices.NewPredictionService(deps.Repos.StudentRepository, deps.Repos.RecordRepository, deps.ModelStore)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.StudentRepository, deps.Repos.RecordRepository, deps.ModelStore)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.RecordController = appControllers.NewRecordController(deps.RecordService)
	deps.PredictionController = appControllers.NewPredictionController(deps.PredictionService)
	deps.DashboardController = appControllers.NewDashboardController(deps.DashboardService)
	deps.PagesController = appControllers.NewPagesController(deps.DashboardService, deps.StudentService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	templatesGlob := filepath.Join(cfg.Server.TemplatesDir, "*.html")
	router.LoadHTMLGlob(templatesGlob)
	lgr.Info().Str("templates", templatesGlob).Msg("HTML templates loaded")

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.StudentController,
		deps.RecordController,
		deps.PredictionController,
		deps.DashboardController,
		deps.PagesController,
		deps.AuthMiddleware,
	)

	return router
}
