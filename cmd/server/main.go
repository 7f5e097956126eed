package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/taskboard/taskboard-api/internal/api"
	"github.com/taskboard/taskboard-api/internal/events"
	"github.com/taskboard/taskboard-api/internal/infrastructure/config"
	"github.com/taskboard/taskboard-api/internal/infrastructure/db/mongo"
	redisdb "github.com/taskboard/taskboard-api/internal/infrastructure/db/redis"
	"github.com/taskboard/taskboard-api/internal/infrastructure/mail"
	"github.com/taskboard/taskboard-api/internal/infrastructure/queue"
	"github.com/taskboard/taskboard-api/internal/infrastructure/realtime"
	"github.com/taskboard/taskboard-api/internal/monitor"
	"github.com/taskboard/taskboard-api/internal/notification"
	"github.com/taskboard/taskboard-api/internal/reporter"
	"github.com/taskboard/taskboard-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// --- Backing stores ---
	mongoClient, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	redisClient, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer redisClient.Close()

	// --- Email pipeline ---
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()
	emailQueue := queue.NewEmailQueue(asynqClient, log)

	mailer, err := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("smtp client setup failed")
	}

	worker := queue.NewWorker(redisOpt, mailer, cfg.Jobs.EmailWorkers, log)
	if err := worker.Start(); err != nil {
		log.Fatal().Err(err).Msg("email worker failed to start")
	}
	defer worker.Shutdown()

	// --- Events and notifications ---
	bus := events.NewBus(log)
	events.NewEmailListener(emailQueue, log).Register(bus)

	userRepo := mongo.NewUserRepository(db)
	taskRepo := mongo.NewTaskRepository(db)
	notificationRepo := mongo.NewNotificationRepository(db)

	dispatcher := notification.NewDispatcher(notificationRepo, realtime.NewPublisher(redisClient), log)

	// --- Critical error reporter ---
	errlog, errlogClose, err := logger.NewFileSink(cfg.ErrorLogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.ErrorLogPath).Msg("error log sink unavailable")
	}
	defer errlogClose.Close()
	crashReporter := reporter.New(userRepo, dispatcher, emailQueue, errlog, log)

	// --- Scheduled monitors ---
	scheduler := monitor.NewScheduler(crashReporter, log)

	dueSweep := monitor.NewDueDateSweep(taskRepo, emailQueue, log)
	if err := scheduler.Add(cfg.Jobs.DueDateCron, "due-date-sweep", func(ctx context.Context) error {
		return dueSweep.Run(ctx, time.Now().UTC())
	}); err != nil {
		log.Fatal().Err(err).Msg("due-date sweep scheduling failed")
	}

	resourceSweep := monitor.NewResourceSweep(monitor.NewSystemSampler(), userRepo, dispatcher, emailQueue, log)
	if err := scheduler.Add(cfg.Jobs.ResourceCron, "resource-sweep", resourceSweep.Run); err != nil {
		log.Fatal().Err(err).Msg("resource sweep scheduling failed")
	}

	scheduler.Start()
	defer scheduler.Stop()

	// --- HTTP server ---
	e := api.NewRouter(api.RouterDeps{
		MongoClient: mongoClient,
		DB:          db,
		Redis:       redisClient,
		Bus:         bus,
		Notifier:    dispatcher,
		Reporter:    crashReporter,
		JWTSecret:   cfg.JWTSecret,
		Log:         log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Msg("taskboard api started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
