// Package main - точка входа для Zenith Admin Hub.
//
// Zenith Admin Hub - административная панель школы: ученики, преподаватели,
// курсы, календарь событий, посещаемость и AI-отчёты об успеваемости.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика без внешних зависимостей
// - Application: оркестрация use cases (Commands/Queries/Event Handlers)
// - Infrastructure: in-memory хранилища, снапшоты (Redis/PostgreSQL), внешние API
// - Interface: HTTP REST API для дашборда
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	// Application layer
	"github.com/zenith-edu/zenith-admin-hub/internal/application/command"
	"github.com/zenith-edu/zenith-admin-hub/internal/application/eventhandler"
	"github.com/zenith-edu/zenith-admin-hub/internal/application/query"

	// Domain layer
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"

	// Infrastructure layer
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/external/genai"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/messaging"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/memory"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/postgres"
	redisstore "github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/redis"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/seed"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/snapshot"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/scheduler"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/scheduler/jobs"

	// Interface layer
	httpserver "github.com/zenith-edu/zenith-admin-hub/internal/interface/http"
	"github.com/zenith-edu/zenith-admin-hub/internal/interface/http/handlers"

	// Packages
	"github.com/zenith-edu/zenith-admin-hub/config"
	"github.com/zenith-edu/zenith-admin-hub/pkg/logger"
	"github.com/zenith-edu/zenith-admin-hub/pkg/retry"
	"github.com/zenith-edu/zenith-admin-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// MAIN
// ══════════════════════════════════════════════════════════════════════════════

func main() {
	// Создаём корневой контекст с возможностью отмены
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Запускаем приложение
	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. ЗАГРУЗКА КОНФИГУРАЦИИ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. НАСТРОЙКА ЛОГИРОВАНИЯ
	// ─────────────────────────────────────────────────────────────────────────
	log := setupLogger(cfg)
	log.Info("starting Zenith Admin Hub",
		"env", string(cfg.App.Environment),
		"version", cfg.App.Version,
		"debug", cfg.App.Debug,
		"timezone", cfg.App.Timezone,
	)

	// "Сегодня" для посещаемости и предстоящих событий считается
	// в школьном часовом поясе.
	timeutil.Configure(cfg.App.Timezone)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ПОДКЛЮЧЕНИЕ К ХРАНИЛИЩУ СНАПШОТОВ (Redis или PostgreSQL)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to snapshot store...", "backend", cfg.Snapshot.Backend)
	blobs, err := connectSnapshotStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to snapshot store: %w", err)
	}
	defer func() {
		log.Info("closing snapshot store...")
		_ = blobs.Close()
	}()
	log.Info("snapshot store connection established")

	// ─────────────────────────────────────────────────────────────────────────
	// 4. ИНИЦИАЛИЗАЦИЯ IN-MEMORY ХРАНИЛИЩ И ЗАГРУЗКА СНАПШОТОВ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing repositories...")
	students := memory.NewStudentStore()
	teachers := memory.NewTeacherStore()
	courses := memory.NewCourseStore()
	events := memory.NewEventStore()
	enrollments := memory.NewEnrollmentStore()
	records := memory.NewAttendanceStore()

	stores := snapshot.Stores{
		Students:    students,
		Teachers:    teachers,
		Courses:     courses,
		Events:      events,
		Enrollments: enrollments,
		Attendance:  records,
	}

	seedStudents, seedTeachers, seedCourses, seedEvents := seed.Data()
	loader := snapshot.NewLoader(blobs, snapshot.SeedData{
		Students: seedStudents,
		Teachers: seedTeachers,
		Courses:  seedCourses,
		Events:   seedEvents,
	}, logger.Default())
	if err := loader.LoadAll(ctx, stores); err != nil {
		return fmt.Errorf("failed to restore collections: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. ИНИЦИАЛИЗАЦИЯ EVENT BUS И WRITE-THROUGH ПЕРСИСТЕНТНОСТИ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing event bus...")
	eventBusConfig := messaging.DefaultInMemoryEventBusConfig()
	eventBusConfig.Logger = log
	eventBus := messaging.NewInMemoryEventBus(eventBusConfig)
	defer func() {
		log.Info("closing event bus...")
		_ = eventBus.Close()
	}()

	snapshotWriter := eventhandler.NewOnCollectionChangedHandler(stores, blobs, log)
	if err := snapshotWriter.Subscribe(eventBus); err != nil {
		return fmt.Errorf("failed to subscribe snapshot writer: %w", err)
	}

	// Каждая мутация коллекции публикует событие, по которому
	// snapshot writer перезаписывает blob этой коллекции.
	students.SetChangeHook(func() {
		messaging.PublishChange(eventBus, log, shared.EventStudentsChanged, snapshot.KeyStudents)
	})
	teachers.SetChangeHook(func() {
		messaging.PublishChange(eventBus, log, shared.EventTeachersChanged, snapshot.KeyTeachers)
	})
	courses.SetChangeHook(func() {
		messaging.PublishChange(eventBus, log, shared.EventCoursesChanged, snapshot.KeyCourses)
	})
	events.SetChangeHook(func() {
		messaging.PublishChange(eventBus, log, shared.EventEventsChanged, snapshot.KeyEvents)
	})
	enrollments.SetChangeHook(func() {
		messaging.PublishChange(eventBus, log, shared.EventEnrollmentsChanged, snapshot.KeyEnrollments)
	})
	records.SetChangeHook(func() {
		messaging.PublishChange(eventBus, log, shared.EventAttendanceChanged, snapshot.KeyAttendance)
	})

	// ─────────────────────────────────────────────────────────────────────────
	// 6. ИНИЦИАЛИЗАЦИЯ ВНЕШНИХ КЛИЕНТОВ
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing external clients...")

	genaiAPIKey := cfg.GenAI.APIKey
	if !cfg.Features.IsEnabled(config.FeatureReportsAIGeneration, nil) {
		// Выключенный флаг эквивалентен отсутствию ключа: отчёты
		// возвращают фиксированный текст о недоступности генерации.
		log.Warn("AI report generation disabled by feature flag")
		genaiAPIKey = ""
	}

	genaiConfig := genai.DefaultClientConfig(genaiAPIKey)
	genaiConfig.BaseURL = cfg.GenAI.BaseURL
	genaiConfig.Model = cfg.GenAI.Model
	genaiConfig.Timeout = cfg.GenAI.RequestTimeout
	genaiConfig.Logger = log
	genaiConfig.Debug = cfg.App.Debug
	genaiClient := genai.NewClient(genaiConfig)
	if !genaiClient.IsConfigured() {
		log.Warn("text generation client not configured, reports will return a fallback text")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 7. ИНИЦИАЛИЗАЦИЯ APPLICATION LAYER (Commands, Queries)
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing application layer...")

	createStudentCmd := command.NewCreateStudentHandler(students)
	updateStudentCmd := command.NewUpdateStudentHandler(students)
	deleteStudentCmd := command.NewDeleteStudentHandler(students, enrollments, records, eventBus)
	createTeacherCmd := command.NewCreateTeacherHandler(teachers)
	updateTeacherCmd := command.NewUpdateTeacherHandler(teachers)
	deleteTeacherCmd := command.NewDeleteTeacherHandler(teachers)
	createCourseCmd := command.NewCreateCourseHandler(courses)
	updateCourseCmd := command.NewUpdateCourseHandler(courses)
	deleteCourseCmd := command.NewDeleteCourseHandler(courses, enrollments, records, eventBus)
	createEventCmd := command.NewCreateEventHandler(events)
	updateEventCmd := command.NewUpdateEventHandler(events)
	deleteEventCmd := command.NewDeleteEventHandler(events)
	enrollStudentCmd := command.NewEnrollStudentHandler(students, courses, enrollments)
	unenrollStudentCmd := command.NewUnenrollStudentHandler(enrollments)
	markAttendanceCmd := command.NewMarkAttendanceHandler(records, eventBus)
	generateReportCmd := command.NewGenerateReportHandler(students, records, genaiClient, eventBus)

	listStudentsQuery := query.NewListStudentsHandler(students, records)
	listTeachersQuery := query.NewListTeachersHandler(teachers, courses)
	listCoursesQuery := query.NewListCoursesHandler(courses, teachers, enrollments)
	rosterQuery := query.NewGetRosterHandler(students, courses, enrollments, records)
	attendanceQuery := query.NewGetAttendanceHandler(students, enrollments, records)
	eventsQuery := query.NewGetEventsHandler(events)
	statsQuery := query.NewGetDashboardStatsHandler(students, teachers, courses, events, records)

	// ─────────────────────────────────────────────────────────────────────────
	// 8. HEALTH CHECKS
	// ─────────────────────────────────────────────────────────────────────────
	healthChecker := handlers.NewCompositeHealthChecker(cfg.App.Version)
	healthChecker.AddCheck("snapshot_store", handlers.NewSnapshotStoreCheck(blobs))
	healthChecker.AddCheck("report_generator", handlers.NewReportGeneratorCheck(genaiClient))

	// ─────────────────────────────────────────────────────────────────────────
	// 9. ПЛАНИРОВЩИК ФОНОВЫХ ЗАДАЧ
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Features.IsEnabled(config.FeatureSnapshotAutoFlush, nil) && cfg.Snapshot.FlushInterval > 0 {
		log.Info("starting snapshot flush scheduler", "interval", cfg.Snapshot.FlushInterval.String())

		schedConfig := scheduler.DefaultSchedulerConfig()
		schedConfig.Logger = log
		if cfg.App.Location != nil {
			schedConfig.Timezone = cfg.App.Location
		}
		sched := scheduler.NewScheduler(schedConfig)

		flushJob := jobs.NewFlushSnapshotsJob(stores, blobs, log)
		if err := sched.Register(flushJob, scheduler.NewIntervalSchedule(cfg.Snapshot.FlushInterval)); err != nil {
			return fmt.Errorf("failed to register flush job: %w", err)
		}
		if err := sched.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
		defer func() {
			log.Info("stopping scheduler...")
			_ = sched.Stop()
		}()
	} else {
		log.Info("snapshot auto-flush disabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 10. СОЗДАНИЕ HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("initializing HTTP server...")

	httpConfig := httpserver.DefaultConfig()
	httpConfig.Host = cfg.HTTP.Host
	httpConfig.Port = cfg.HTTP.Port
	httpConfig.ReadTimeout = cfg.HTTP.ReadTimeout
	httpConfig.WriteTimeout = cfg.HTTP.WriteTimeout
	httpConfig.IdleTimeout = cfg.HTTP.IdleTimeout
	httpConfig.EnableCORS = cfg.HTTP.EnableCORS
	httpConfig.AllowedOrigins = cfg.HTTP.AllowedOrigins
	httpConfig.EnableMetrics = cfg.HTTP.EnableMetrics
	httpConfig.RateLimitPerMinute = cfg.HTTP.RateLimitPerMinute
	httpConfig.APIKeys = cfg.HTTP.APIKeys

	httpDeps := httpserver.Dependencies{
		CreateStudent:   createStudentCmd,
		UpdateStudent:   updateStudentCmd,
		DeleteStudent:   deleteStudentCmd,
		CreateTeacher:   createTeacherCmd,
		UpdateTeacher:   updateTeacherCmd,
		DeleteTeacher:   deleteTeacherCmd,
		CreateCourse:    createCourseCmd,
		UpdateCourse:    updateCourseCmd,
		DeleteCourse:    deleteCourseCmd,
		CreateEvent:     createEventCmd,
		UpdateEvent:     updateEventCmd,
		DeleteEvent:     deleteEventCmd,
		EnrollStudent:   enrollStudentCmd,
		UnenrollStudent: unenrollStudentCmd,
		MarkAttendance:  markAttendanceCmd,
		GenerateReport:  generateReportCmd,

		ListStudents:      listStudentsQuery,
		ListTeachers:      listTeachersQuery,
		ListCourses:       listCoursesQuery,
		GetRoster:         rosterQuery,
		GetAttendance:     attendanceQuery,
		GetEvents:         eventsQuery,
		GetDashboardStats: statsQuery,

		Logger:        logger.Default(),
		HealthChecker: healthChecker,
		BusMetrics:    eventBus.Metrics(),
	}

	httpServer := httpserver.NewServer(httpConfig, httpDeps)

	// ─────────────────────────────────────────────────────────────────────────
	// 11. ЗАПУСК И GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting HTTP server", "address", httpServer.Address())
		if err := httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	log.Info("Zenith Admin Hub is running", "http_address", httpServer.Address())

	// Ожидаем сигнал завершения или ошибку
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		log.Error("service error", "error", err)
		return err
	case <-ctx.Done():
		log.Info("context cancelled")
	}

	log.Info("starting graceful shutdown...", "timeout", cfg.App.ShutdownTimeout.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	var shutdownErr error

	// 1. Останавливаем HTTP сервер (перестаём принимать запросы)
	log.Info("stopping HTTP server...")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop HTTP server gracefully", "error", err)
		shutdownErr = err
	}

	// 2. Финальный flush: состояние в памяти дороже всего остального.
	finalFlush := jobs.NewFlushSnapshotsJob(stores, blobs, log)
	log.Info("flushing snapshots before exit...")
	if err := finalFlush.Run(shutdownCtx); err != nil {
		log.Error("final snapshot flush failed", "error", err)
		shutdownErr = err
	}

	// 3. Планировщик, event bus и хранилище закроются через defer

	if shutdownErr != nil {
		log.Warn("shutdown completed with errors")
		return fmt.Errorf("shutdown: %w", shutdownErr)
	}

	log.Info("shutdown completed successfully")
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// connectSnapshotStore открывает хранилище снапшотов, выбранное в конфигурации,
// с повторными попытками: при деплое Redis/PostgreSQL могут подняться позже
// приложения.
func connectSnapshotStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (snapshot.Store, error) {
	retrier := retry.SnapshotStoreRetrier(cfg.Snapshot.ConnectRetries, cfg.Snapshot.ConnectRetryDelay)

	var store snapshot.Store
	err := retrier.Do(ctx, func(ctx context.Context) error {
		var connectErr error
		switch cfg.Snapshot.Backend {
		case config.SnapshotBackendPostgres:
			pgConfig := postgres.DefaultConfig()
			pgConfig.URL = cfg.Database.URL
			store, connectErr = postgres.NewSnapshotStore(ctx, pgConfig)
		default:
			redisConfig := redisstore.DefaultConfig()
			redisConfig.Host = cfg.Redis.Host
			redisConfig.Port = cfg.Redis.Port
			redisConfig.Password = cfg.Redis.Password
			redisConfig.DB = cfg.Redis.DB
			if cfg.Redis.PoolSize > 0 {
				redisConfig.PoolSize = cfg.Redis.PoolSize
			}
			if cfg.Redis.MinIdleConns > 0 {
				redisConfig.MinIdleConns = cfg.Redis.MinIdleConns
			}
			if cfg.Redis.DialTimeout > 0 {
				redisConfig.DialTimeout = cfg.Redis.DialTimeout
			}
			if cfg.Redis.ReadTimeout > 0 {
				redisConfig.ReadTimeout = cfg.Redis.ReadTimeout
			}
			if cfg.Redis.WriteTimeout > 0 {
				redisConfig.WriteTimeout = cfg.Redis.WriteTimeout
			}
			store, connectErr = redisstore.NewBlobStore(redisConfig)
		}
		if connectErr != nil {
			log.Warn("snapshot store connect attempt failed", "backend", cfg.Snapshot.Backend, "error", connectErr)
			return retry.Retryable(connectErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	switch cfg.Observability.LogLevel {
	case "debug":
		opts.Level = slog.LevelDebug
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "text" {
		// Текстовый формат для development (лучше читается)
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		// JSON формат для production (лучше для агрегаторов логов)
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)

	return log
}
