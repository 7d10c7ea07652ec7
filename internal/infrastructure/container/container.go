// Package container provides dependency injection using Uber FX
// This implements the Dependency Inversion Principle from SOLID
package container

import (
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/nourish/planner/internal/application/planner"
	"github.com/nourish/planner/internal/infrastructure/config"
	gormRepo "github.com/nourish/planner/internal/infrastructure/persistence/gorm"
	"github.com/nourish/planner/internal/infrastructure/persistence/migrations"
	"github.com/nourish/planner/internal/infrastructure/persistence/postgres"
	"github.com/nourish/planner/internal/infrastructure/persistence/sqlite"
	"github.com/nourish/planner/internal/infrastructure/solver"
	"github.com/nourish/planner/internal/infrastructure/solver/remote"
	"github.com/nourish/planner/internal/ports/inbound"
	"github.com/nourish/planner/internal/ports/outbound"
	"github.com/nourish/planner/pkg/logger"
)

// Module provides all dependency injection modules
var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DatabaseModule,
	RepositoryModule,
	SolverModule,
	ServiceModule,
)

// ConfigModule provides configuration
var ConfigModule = fx.Provide(
	func() (*config.Config, error) {
		return config.Load("")
	},
)

// LoggerModule provides logging
var LoggerModule = fx.Provide(
	func(cfg *config.Config) (*zap.Logger, error) {
		return logger.New(logger.Config{
			Level:       cfg.App.LogLevel,
			Format:      cfg.App.LogFormat,
			Development: cfg.App.Debug,
		})
	},
)

// DatabaseModule provides the database connection per the configured driver
var DatabaseModule = fx.Provide(
	func(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
		switch cfg.Database.Driver {
		case "sqlite":
			logLevel := gormLogger.Silent
			if cfg.App.Debug {
				logLevel = gormLogger.Info
			}
			db, err := sqlite.SetupDatabase(cfg.Database.Database, logLevel)
			if err != nil {
				return nil, fmt.Errorf("failed to setup SQLite database: %w", err)
			}
			log.Info("Connected to SQLite database",
				zap.String("path", cfg.Database.Database))
			return db, nil
		default:
			db, err := postgres.Connect(cfg, log)
			if err != nil {
				return nil, err
			}
			if err := runMigrations(db, cfg, log); err != nil {
				return nil, fmt.Errorf("failed to migrate database: %w", err)
			}
			return db, nil
		}
	},
)

// runMigrations applies the embedded schema migrations on the postgres path.
// The sqlite path auto-migrates inside SetupDatabase instead.
func runMigrations(db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	migrator, err := migrations.New(sqlDB, cfg.Database.Database, log)
	if err != nil {
		return err
	}
	return migrator.Up()
}

// RepositoryModule provides repository implementations
var RepositoryModule = fx.Provide(
	gormRepo.NewPlannerRepository,
)

// SolverModule provides the model factory and the solving engine client
var SolverModule = fx.Provide(
	func() planner.ModelFactory {
		return func() outbound.Model { return solver.NewModel() }
	},
	func(cfg *config.Config, log *zap.Logger) outbound.Solver {
		return remote.NewClient(cfg.Planner.SolverURL, log)
	},
)

// ServiceModule provides application services
var ServiceModule = fx.Provide(
	func(
		repo outbound.PlannerRepository,
		solverClient outbound.Solver,
		factory planner.ModelFactory,
		cfg *config.Config,
		log *zap.Logger,
	) inbound.MealplanService {
		return planner.NewService(repo, solverClient, factory, planner.Config{
			SolveTimeout: cfg.Planner.SolveTimeout,
			SolveWorkers: cfg.Planner.SolveWorkers,
		}, log)
	},
)
