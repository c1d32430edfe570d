package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"go-doctask/internal/company"
	"go-doctask/internal/documentgroup"
	"go-doctask/internal/documenttype"
	"go-doctask/internal/mailqueue"
	"go-doctask/internal/messaging/kafka"
	"go-doctask/internal/messaging/kafka/producer"
	"go-doctask/internal/reminder"
	"go-doctask/internal/shared/connection"
	"go-doctask/internal/task"
	"go-doctask/internal/user"

	"go.uber.org/zap"
)

// RunWorker menjalankan dua loop latar: publisher outbox ke Kafka dan runner
// pengingat dokumen yang jatuh tempo
func RunWorker() error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(kafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	// --- Repositories ---
	companyRepo := company.NewRepository(gormDB)
	documentGroupRepo := documentgroup.NewRepository(gormDB)
	documentTypeRepo := documenttype.NewRepository(gormDB)
	mailRepo := mailqueue.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(sqlDB)
	taskRepo := task.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)

	taskService := task.NewService(sqlDB, taskRepo, documentGroupRepo, userRepo, documentTypeRepo, mailRepo, outboxRepo)

	smtpPort, _ := strconv.Atoi(os.Getenv("SMTP_PORT"))
	sender := reminder.NewSMTPSender(reminder.SMTPConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     smtpPort,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	})

	runner := reminder.NewRunner(
		reminder.Config{
			Interval:        envHours("REMINDER_INTERVAL_HOURS", 24),
			MaxRetries:      envInt("REMINDER_MAX_RETRIES", 3),
			RetryInterval:   envHours("REMINDER_RETRY_HOURS", 24),
			TaskURLTemplate: os.Getenv("TASK_URL_TEMPLATE"),
		},
		mailRepo,
		taskRepo,
		userRepo,
		companyRepo,
		taskService,
		reminder.NewTemplateRenderer(),
		sender,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		3*time.Second,
	)
	go runner.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}

func envHours(key string, fallbackHours int) time.Duration {
	return time.Duration(envInt(key, fallbackHours)) * time.Hour
}
