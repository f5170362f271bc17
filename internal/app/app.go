package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/config"
	"github.com/templui/goalpace/internal/db"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/service"
)

type App struct {
	Cfg                 *config.Config
	DB                  *sqlx.DB
	AuthService         *service.AuthService
	UserService         *service.UserService
	EmailService        *service.EmailService
	NotificationService *service.NotificationService
	ProgressService     *service.ProgressService
	GoalService         *service.GoalService
	SaleService         *service.SaleService
	SweeperService      *service.SweeperService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(context.Background(), database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	return Wire(cfg, database), nil
}

// Wire builds every service on top of an already migrated database.
func Wire(cfg *config.Config, database *sqlx.DB) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	metricRepository := repository.NewMetricRepository(database)
	milestoneRepository := repository.NewMilestoneRepository(database)
	saleRepository := repository.NewSaleRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	notificationService := service.NewNotificationService(userRepository, milestoneRepository, emailService)
	metricService := service.NewMetricService(metricRepository)
	progressService := service.NewProgressService(goalRepository, metricService, notificationService)
	goalService := service.NewGoalService(goalRepository, progressService)
	saleService := service.NewSaleService(saleRepository, goalRepository, progressService)
	sweeperService := service.NewSweeperService(goalRepository)
	authService := service.NewAuthService(cfg.JWTSecret, cfg.JWTExpiry)
	userService := service.NewUserService(userRepository)

	return &App{
		Cfg:                 cfg,
		DB:                  database,
		AuthService:         authService,
		UserService:         userService,
		EmailService:        emailService,
		NotificationService: notificationService,
		ProgressService:     progressService,
		GoalService:         goalService,
		SaleService:         saleService,
		SweeperService:      sweeperService,
	}
}

func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
