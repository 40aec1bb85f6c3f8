package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/Leadpulse/leadpulse/config"
	"github.com/Leadpulse/leadpulse/internal/database"
	"github.com/Leadpulse/leadpulse/internal/domain"
	httpHandler "github.com/Leadpulse/leadpulse/internal/http"
	"github.com/Leadpulse/leadpulse/internal/repository"
	"github.com/Leadpulse/leadpulse/internal/service"
	"github.com/Leadpulse/leadpulse/pkg/logger"
	"github.com/Leadpulse/leadpulse/pkg/mailer"
)

// App assembles the engine: database, repositories, services, HTTP surface
// and the background follow-up sweeper.
type App struct {
	config *config.Config
	logger logger.Logger
	mux    *http.ServeMux
	server *http.Server
	db     *sql.DB
	mailer mailer.Mailer

	// Repositories
	workflowRepo  domain.WorkflowRepository
	executionRepo domain.ExecutionRepository
	followUpRepo  domain.FollowUpRepository
	subjectRepo   domain.SubjectRepository
	messageRepo   domain.MessageRepository
	taskRepo      domain.TaskRepository
	templateRepo  domain.TemplateRepository

	// Services
	eventService    domain.EventService
	followUpService *service.FollowUpService
	sweeper         *service.FollowUpSweeper
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB injects a database connection, skipping InitDB's own dial
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer injects a mailer implementation
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithLogger injects a logger
func WithLogger(log logger.Logger) AppOption {
	return func(a *App) {
		a.logger = log
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config: cfg,
		logger: logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:    http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitDB connects to Postgres and ensures the schema exists
func (a *App) InitDB() error {
	if a.db == nil {
		db, err := sql.Open("postgres", database.GetDSN(&a.config.Database))
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		maxOpen, maxIdle, maxLifetime := database.GetConnectionPoolSettings()
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxIdle)
		db.SetConnMaxLifetime(maxLifetime)

		if err := db.Ping(); err != nil {
			db.Close()
			return fmt.Errorf("failed to ping database: %w", err)
		}
		a.db = db
	}

	if err := database.InitializeDatabase(a.db); err != nil {
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.logger.WithField("host", a.config.Database.Host).
		WithField("dbname", a.config.Database.DBName).
		Info("Database initialized")
	return nil
}

// InitMailer sets up the SMTP mailer unless one was injected
func (a *App) InitMailer() error {
	if a.mailer != nil {
		return nil
	}

	mailerConfig := &mailer.Config{
		SMTPHost:     a.config.SMTP.Host,
		SMTPPort:     a.config.SMTP.Port,
		SMTPUsername: a.config.SMTP.Username,
		SMTPPassword: a.config.SMTP.Password,
		FromEmail:    a.config.SMTP.FromEmail,
		FromName:     a.config.SMTP.FromName,
	}

	if a.config.IsDevelopment() {
		a.mailer = mailer.NewTestSMTPMailer(mailerConfig)
		a.logger.Info("Using test mailer (development environment)")
	} else {
		a.mailer = mailer.NewSMTPMailer(mailerConfig)
	}
	return nil
}

// InitRepositories wires the Postgres repositories
func (a *App) InitRepositories() error {
	a.workflowRepo = repository.NewWorkflowRepository(a.db)
	a.executionRepo = repository.NewExecutionRepository(a.db)
	a.followUpRepo = repository.NewFollowUpRepository(a.db)
	a.subjectRepo = repository.NewSubjectRepository(a.db)
	a.messageRepo = repository.NewMessageRepository(a.db)
	a.taskRepo = repository.NewTaskRepository(a.db)
	a.templateRepo = repository.NewTemplateRepository(a.db)
	return nil
}

// InitServices wires the engine services
func (a *App) InitServices() error {
	evaluator := service.NewConditionEvaluator(a.subjectRepo, a.logger)
	matcher := service.NewTriggerMatcher(a.workflowRepo, evaluator, a.logger)
	ledger := service.NewExecutionLedger(a.executionRepo)
	handlers := service.NewActionHandlers(
		a.subjectRepo, a.templateRepo, a.taskRepo,
		a.mailer, a.config.Engine.NotificationEmail, a.logger,
	)
	executor := service.NewActionExecutor(ledger, handlers, a.config.Engine.ActionTimeout, a.logger)

	a.followUpService = service.NewFollowUpService(
		a.followUpRepo, a.workflowRepo, a.messageRepo,
		evaluator, ledger, executor,
		a.config.Engine.SweepBatchSize, a.config.Engine.SweepConcurrency,
		a.logger,
	)
	a.sweeper = service.NewFollowUpSweeper(a.followUpService, a.logger, a.config.Engine.SweepInterval)

	a.eventService = service.NewEventService(
		matcher, ledger, executor, a.followUpService,
		a.messageRepo, a.subjectRepo, a.logger,
	)
	return nil
}

// InitHandlers registers the HTTP surface
func (a *App) InitHandlers() error {
	eventHandler := httpHandler.NewEventHandler(a.eventService, a.logger)
	eventHandler.RegisterRoutes(a.mux)

	executionHandler := httpHandler.NewExecutionHandler(a.executionRepo, a.logger)
	executionHandler.RegisterRoutes(a.mux)

	a.mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":%q}`, a.config.Version)
	})
	return nil
}

// Initialize initializes all components in dependency order
func (a *App) Initialize() error {
	if err := a.InitDB(); err != nil {
		return err
	}
	if err := a.InitMailer(); err != nil {
		return err
	}
	if err := a.InitRepositories(); err != nil {
		return err
	}
	if err := a.InitServices(); err != nil {
		return err
	}
	return a.InitHandlers()
}

// Start starts the background sweeper and the HTTP server. It blocks until
// the server stops.
func (a *App) Start() error {
	a.sweeper.Start(context.Background())

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.mux,
	}

	a.logger.WithField("address", addr).Info("Server starting")
	return a.server.ListenAndServe()
}

// Shutdown gracefully stops the sweeper, the HTTP server and the database
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	if a.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			a.logger.WithField("error", err.Error()).Error("Failed to shutdown HTTP server")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// GetMux returns the HTTP mux, mainly for tests
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetEventService returns the event service, mainly for tests
func (a *App) GetEventService() domain.EventService {
	return a.eventService
}
