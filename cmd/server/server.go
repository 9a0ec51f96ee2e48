package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mb-aarfi/glbconnect-sub000/internal/config"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/event"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/job"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/message"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/resource"
	"github.com/mb-aarfi/glbconnect-sub000/internal/domain/user"
	"github.com/mb-aarfi/glbconnect-sub000/internal/gateway"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/auth"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/repository/eventrepo"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/repository/jobrepo"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/repository/messagerepo"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/repository/resourcerepo"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/database/repository/userrepo"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/logger"
	"github.com/mb-aarfi/glbconnect-sub000/internal/infrastructure/observability"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver"
	"github.com/mb-aarfi/glbconnect-sub000/internal/interfaces/httpserver/handlers"
)

type Application struct {
	httpServer *httpserver.HttpServer
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		log:        log,
	}
}

func (a *Application) Start(ctx context.Context) error {
	return a.httpServer.Run(ctx)
}

// userDirectory adapts the user repository to the message domain's
// counterpart lookup.
type userDirectory struct {
	users user.Repository
}

func (d userDirectory) FindByID(ctx context.Context, id uint) (*message.User, error) {
	account, err := d.users.FindByID(ctx, id)
	if err != nil || account == nil {
		return nil, err
	}
	return &message.User{ID: account.ID, Name: account.Name, Email: account.Email}, nil
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := database.Connect(database.Config{
		DSN:             cfg.DatabaseURL,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	if err := database.AutoMigrate(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	userRepository := userrepo.NewUserGormRepository(db)
	messageRepository := messagerepo.NewMessageGormRepository(db)
	eventRepository := eventrepo.NewEventGormRepository(db)
	jobRepository := jobrepo.NewJobGormRepository(db)
	resourceRepository := resourcerepo.NewResourceGormRepository(db)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.JWTTTL)
	hub := gateway.NewHub(log)

	userService := user.NewService(userRepository, tokens, log)
	messageService := message.NewService(messageRepository, userDirectory{users: userRepository}, log)
	eventService := event.NewService(eventRepository, hub, log)
	jobService := job.NewService(jobRepository, log)
	resourceService := resource.NewService(resourceRepository, log)

	if err := resourceService.SeedCategories(ctx); err != nil {
		log.Fatal().Err(err).Msg("seed resource categories")
	}

	gw := gateway.New(cfg, hub, messageService, tokens, log)

	provider := handlers.NewProvider(userService, messageService, eventService, jobService, resourceService, log)
	httpServer := httpserver.New(cfg, log, provider, tokens, gw)
	app := NewApplication(httpServer, log)

	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
