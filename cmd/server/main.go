package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cpc-orbit/orbit-backend/internal/config"
	"github.com/cpc-orbit/orbit-backend/internal/database"
	"github.com/cpc-orbit/orbit-backend/internal/handler"
	"github.com/cpc-orbit/orbit-backend/internal/logger"
	"github.com/cpc-orbit/orbit-backend/internal/repository"
	"github.com/cpc-orbit/orbit-backend/internal/router"
	"github.com/cpc-orbit/orbit-backend/internal/service"
	"github.com/cpc-orbit/orbit-backend/internal/validator"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Orbit Backend")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

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

	// ─── Initialize Repositories ───────────────────────────────────────
	collegeRepo := repository.NewCollegeRepository(pool)
	deptRepo := repository.NewDepartmentRepository(pool)
	programRepo := repository.NewProgramRepository(pool)
	facultyRepo := repository.NewFacultyRepository(pool)
	studentRepo := repository.NewStudentRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	statsRepo := repository.NewStatsRepository(pool)
	tokenStore := repository.NewRedisTokenStore(rdb)
	statsCache := repository.NewRedisStatsCache(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, tokenStore, log)
	importService := service.NewImportService(cfg, authService, userRepo, log)
	collegeService := service.NewCollegeService(collegeRepo, log)
	statsService := service.NewStatsService(collegeRepo, statsRepo, statsCache, cfg.StatsCacheTTL, log)
	deptService := service.NewDepartmentService(collegeRepo, deptRepo, log)
	programService := service.NewProgramService(collegeRepo, programRepo, log)
	facultyService := service.NewFacultyService(deptRepo, facultyRepo, log)
	studentService := service.NewStudentService(deptRepo, studentRepo, log)
	subjectService := service.NewSubjectService(deptRepo, facultyRepo, subjectRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Import:     handler.NewImportHandler(importService, cfg.MaxUploadBytes),
		College:    handler.NewCollegeHandler(collegeService, statsService),
		Department: handler.NewDepartmentHandler(deptService, statsService),
		Program:    handler.NewProgramHandler(programService, statsService),
		Faculty:    handler.NewFacultyHandler(facultyService, statsService),
		Student:    handler.NewStudentHandler(studentService, statsService),
		Subject:    handler.NewSubjectHandler(subjectService, statsService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
