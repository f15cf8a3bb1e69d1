package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shikkhaloy/school-backend/internal/config"
	"github.com/shikkhaloy/school-backend/internal/database"
	"github.com/shikkhaloy/school-backend/internal/handler"
	"github.com/shikkhaloy/school-backend/internal/identity"
	"github.com/shikkhaloy/school-backend/internal/logger"
	"github.com/shikkhaloy/school-backend/internal/repository"
	"github.com/shikkhaloy/school-backend/internal/router"
	"github.com/shikkhaloy/school-backend/internal/service"
	"github.com/shikkhaloy/school-backend/internal/validator"
	"github.com/shikkhaloy/school-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Bool("trust_header_identity", cfg.TrustHeaderIdentity).
		Msg("Starting School Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Identity Provider ─────────────────────────────────────────────
	provider := identity.NewGoogleProvider(cfg.GoogleClientIDs, cfg.IdentityAPIKey)

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	pendingRepo := repository.NewPendingStudentRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	classRepo := repository.NewClassRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	teacherRepo := repository.NewTeacherRepository(pool)
	noticeRepo := repository.NewNoticeRepository(pool)
	storyRepo := repository.NewStoryRepository(pool)
	rollRepo := repository.NewRollUpdateRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, provider, userRepo, log)
	admissionService := service.NewAdmissionService(pendingRepo, studentRepo, nil, log)
	roleService := service.NewRoleService(userRepo, classRepo, log)
	userService := service.NewUserService(userRepo, studentRepo, provider, log)
	studentService := service.NewStudentService(studentRepo, log)
	classService := service.NewClassService(classRepo, rdb, log)
	subjectService := service.NewSubjectService(subjectRepo)
	teacherService := service.NewTeacherService(teacherRepo)
	noticeService := service.NewNoticeService(noticeRepo)
	storyService := service.NewStoryService(storyRepo)
	rollService := service.NewRollUpdateService(rollRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Admission:  handler.NewAdmissionHandler(admissionService),
		User:       handler.NewUserHandler(userService, roleService),
		Student:    handler.NewStudentHandler(studentService),
		Class:      handler.NewClassHandler(classService),
		Subject:    handler.NewSubjectHandler(subjectService),
		Teacher:    handler.NewTeacherHandler(teacherService),
		Notice:     handler.NewNoticeHandler(noticeService),
		Story:      handler.NewStoryHandler(storyService),
		RollUpdate: handler.NewRollUpdateHandler(rollService),
	}

	// ─── Seed Startup Content ─────────────────────────────────────────
	// Classes are seeded by migration; the welcome notice/story use the
	// count-then-insert pattern and tolerate re-runs.
	if err := service.SeedContent(ctx, noticeRepo, storyRepo, log); err != nil {
		log.Warn().Err(err).Msg("Startup content seeding failed")
	}

	// ─── Prewarm Class Catalog Cache ──────────────────────────────────
	if err := classService.Prewarm(ctx); err != nil {
		log.Warn().Err(err).Msg("Class catalog prewarm failed")
	}

	// ─── Start Reconciliation Worker ──────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	reconciler := worker.NewReconcileWorker(pendingRepo, studentRepo, cfg.ReconcileInterval, log)
	go reconciler.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
