package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/lumiere-institute/lumiere/internal/app"
	"github.com/lumiere-institute/lumiere/internal/auth"
	"github.com/lumiere-institute/lumiere/internal/courses"
	"github.com/lumiere-institute/lumiere/internal/dashboard"
	"github.com/lumiere-institute/lumiere/internal/instructors"
	"github.com/lumiere-institute/lumiere/internal/observability"
	"github.com/lumiere-institute/lumiere/internal/platform/cache"
	"github.com/lumiere-institute/lumiere/internal/platform/db"
	"github.com/lumiere-institute/lumiere/internal/projects"
	"github.com/lumiere-institute/lumiere/internal/rbac"
	"github.com/lumiere-institute/lumiere/internal/students"
	"github.com/lumiere-institute/lumiere/internal/token"
	"github.com/lumiere-institute/lumiere/internal/trainings"
	"github.com/lumiere-institute/lumiere/internal/users"
	"github.com/lumiere-institute/lumiere/jobs"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		// Redis is an accelerator here, not a hard dependency.
		logger.Warn("redis unavailable, running without caches", slog.Any("error", err))
		redisClient = nil
	}
	defer func() {
		if redisClient == nil {
			return
		}
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec := token.NewCodec(cfg.TokenSecret, cfg.TokenTTL)

	registry := rbac.NewRegistry()
	rbacRepo := rbac.NewRepository(pool)
	permCache := rbac.NewPermissionCache(redisClient)
	rbacService := rbac.NewService(rbacRepo, registry, permCache)

	metrics := observability.NewMetrics()

	guard := rbac.NewGuard(codec, rbacService)
	rbacMiddleware := rbac.Middleware{Guard: guard, Logger: logger, Denials: metrics}

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, codec)
	authHandler := auth.NewHandler(logger, authService, codec)

	rolesHandler := rbac.NewHandler(logger, rbacService, rbacMiddleware)
	permissionsHandler := rbac.NewPermissionsHandler(logger, registry, rbacMiddleware)

	usersService := users.NewService(users.NewRepository(pool))
	usersHandler := users.NewHandler(logger, usersService, rbacMiddleware)

	welcomeQueue := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := welcomeQueue.Close(); err != nil {
			logger.Warn("queue close", slog.Any("error", err))
		}
	}()

	studentsService := students.NewService(students.NewRepository(pool), welcomeQueue)
	studentsHandler := students.NewHandler(logger, studentsService, rbacMiddleware)

	instructorsService := instructors.NewService(instructors.NewRepository(pool))
	instructorsHandler := instructors.NewHandler(logger, instructorsService, rbacMiddleware)

	coursesService := courses.NewService(courses.NewRepository(pool))
	coursesHandler := courses.NewHandler(logger, coursesService, rbacMiddleware)

	trainingsService := trainings.NewService(trainings.NewRepository(pool))
	trainingsHandler := trainings.NewHandler(logger, trainingsService, rbacMiddleware)

	projectsService := projects.NewService(projects.NewRepository(pool))
	projectsHandler := projects.NewHandler(logger, projectsService, rbacMiddleware)

	dashboardService := dashboard.NewService(dashboard.NewRepository(pool), redisClient)
	dashboardHandler := dashboard.NewHandler(logger, dashboardService, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		AuthHandler:        authHandler,
		RolesHandler:       rolesHandler,
		PermissionsHandler: permissionsHandler,
		UsersHandler:       usersHandler,
		StudentsHandler:    studentsHandler,
		InstructorsHandler: instructorsHandler,
		CoursesHandler:     coursesHandler,
		TrainingsHandler:   trainingsHandler,
		ProjectsHandler:    projectsHandler,
		DashboardHandler:   dashboardHandler,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
