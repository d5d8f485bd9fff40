package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/config"
	deliveryHttp "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/handler"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/middleware"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/cache"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/database"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/locale"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/session"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/theme"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/jwt"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Confirmation tokens for destructive actions live this long.
const confirmExpiry = 5 * time.Minute

// App holds all dependencies for the console.
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Janitor     *service.SessionJanitorService
	Router      *deliveryHttp.Router
	Server      *http.Server
}

// New loads configuration, opens the configured session store and wires
// every layer. connect=false keeps the process offline and forces the
// in-memory store; the routes command uses that.
func New(connect bool) (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	app.Log = setupLogger(cfg.LogLevel)
	app.Log.Info("Configuration loaded successfully")

	store, err := app.openStore(connect)
	if err != nil {
		return nil, err
	}

	if err := app.initialize(store); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func (app *App) openStore(connect bool) (session.Store, error) {
	cfg := app.Config
	if !connect {
		return session.NewMemoryStore(), nil
	}

	switch cfg.Session.Store {
	case config.SessionStoreRedis:
		client, err := cache.NewRedisClient(cfg.Redis, app.Log)
		if err != nil {
			return nil, err
		}
		app.RedisClient = client
		return session.NewRedisStore(client), nil

	case config.SessionStorePostgres:
		db, err := database.NewPostgresConnection(cfg.DB, app.Log)
		if err != nil {
			return nil, err
		}
		app.DB = db
		store := session.NewPostgresStore(db)
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate session table: %w", err)
		}
		return store, nil

	case config.SessionStoreMemory, "":
		return session.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

func (app *App) initialize(store session.Store) error {
	cfg := app.Config
	log := app.Log

	catalog, err := locale.NewCatalog(cfg.Locale.Default)
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	renderer, err := view.NewRenderer(log)
	if err != nil {
		return err
	}

	// Backend client and repositories
	client := backend.NewClient(cfg.Backend, log)
	authRepo := repository.NewAuthRepository(client)
	userRepo := repository.NewUserRepository(client)
	representativeRepo := repository.NewRepresentativeRepository(client)
	branchRepo := repository.NewBranchRepository(client)
	doctorRepo := repository.NewDoctorRepository(client)
	radiologistRepo := repository.NewRadiologistRepository(client)
	scanRepo := repository.NewScanRepository(client)
	stockRepo := repository.NewStockRepository(client)
	patientRepo := repository.NewPatientRepository(client)
	appointmentRepo := repository.NewAppointmentRepository(client)
	auditLogRepo := repository.NewAuditLogRepository(client)
	dashboardRepo := repository.NewDashboardRepository(client)

	// Sessions
	loader := screen.NewLoader()
	manager := session.NewManager(store, authRepo, jwt.NewTokenInspector(cfg.Backend.JWTSecret), cfg.Session, log)
	client.OnUnauthorized(manager.Invalidate)
	manager.OnLogout(loader.Forget)

	// Expired sessions leave loader snapshots behind; sweep both.
	purgers := []service.SessionPurger{screen.NewIdlePurger(loader, cfg.Session.TTL)}
	if p, ok := store.(service.SessionPurger); ok {
		purgers = append(purgers, p)
	}
	app.Janitor = service.NewSessionJanitorService(0, log, purgers...)

	// Services
	auditService := service.NewAuditService(log)
	qrCodeService := service.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.Level)
	exportService := service.NewStockExportService(log)
	confirmer := screen.NewConfirmer(jwt.NewConfirmService(cfg.App.Secret, confirmExpiry))

	// Usecases
	authUsecase := usecase.NewAuthUsecase(authRepo, log)
	representativeUsecase := usecase.NewRepresentativeUsecase(representativeRepo, log)
	branchUsecase := usecase.NewBranchUsecase(branchRepo, log)
	doctorUsecase := usecase.NewResourceUsecase[entity.Doctor]("doctors", doctorRepo, usecase.DoctorCodec, log)
	radiologistUsecase := usecase.NewRadiologistUsecase(radiologistRepo, authUsecase, log)
	scanUsecase := usecase.NewScanUsecase(scanRepo, log)
	stockUsecase := usecase.NewStockUsecase(stockRepo, exportService, log)
	patientUsecase := usecase.NewPatientUsecase(patientRepo, log)
	appointmentUsecase := usecase.NewAppointmentUsecase(appointmentRepo, log)
	auditLogUsecase := usecase.NewAuditLogUsecase(auditLogRepo)
	dashboardUsecase := usecase.NewDashboardUsecase(dashboardRepo, appointmentRepo, log)
	privilegeUsecase := usecase.NewPrivilegeUsecase(userRepo, log)

	// Handlers
	base := handler.NewBase(
		renderer,
		validator.NewValidator(),
		loader,
		screen.NewInFlight(),
		confirmer,
		auditService,
		catalog,
		cfg.App.PageSize,
		log,
	)
	handlers := deliveryHttp.Handlers{
		Asset:          handler.NewAssetHandler(theme.NewStyleCache()),
		Auth:           handler.NewAuthHandler(base, manager, authUsecase, qrCodeService),
		Feedback:       handler.NewFeedbackHandler(base),
		Settings:       handler.NewSettingsHandler(base),
		Dashboard:      handler.NewDashboardHandler(base, dashboardUsecase),
		Profile:        handler.NewProfileHandler(base),
		Appointment:    handler.NewAppointmentHandler(base, appointmentUsecase),
		Patient:        handler.NewPatientHandler(base, patientUsecase),
		Doctor:         handler.NewDoctorHandler(base, doctorUsecase),
		Scan:           handler.NewScanHandler(base, scanUsecase),
		Stock:          handler.NewStockHandler(base, stockUsecase),
		Radiologist:    handler.NewRadiologistHandler(base, radiologistUsecase, qrCodeService),
		Branch:         handler.NewBranchHandler(base, branchUsecase),
		Representative: handler.NewRepresentativeHandler(base, representativeUsecase),
		Privilege:      handler.NewPrivilegeHandler(base, privilegeUsecase),
		AuditLog:       handler.NewAuditLogHandler(base, auditLogUsecase),
	}

	// Middleware and router
	app.Router = deliveryHttp.NewRouter(
		handlers,
		middleware.NewLoggerMiddleware(log),
		middleware.NewHeadersMiddleware(cfg.Session.SecureCookie),
		middleware.NewSessionMiddleware(manager, catalog, log),
		middleware.NewGateMiddleware(base.Loading),
	)
	httpRouter := app.Router.Setup()

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Console starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s, session store: %s", app.Config.App.Env, app.Config.Session.Store)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close stops the janitor and closes store connections.
func (app *App) Close() {
	if app.Janitor != nil {
		app.Janitor.Stop()
	}

	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
