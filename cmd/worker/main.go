package main

import (
	"context"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"studiodesk/config"
	"studiodesk/internal/model"
	"studiodesk/internal/mq"
	"studiodesk/internal/mqhandler"
	"studiodesk/internal/repository"
	"studiodesk/internal/service"
	"studiodesk/pkg/db"
	"studiodesk/pkg/logger"
	pkgmq "studiodesk/pkg/mq"
	"studiodesk/pkg/outbox"
	redisclient "studiodesk/pkg/redis"
)

func main() {
	// Load config
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.NewLogger()
	defer zlog.Sync()

	zlog.Info("Starting worker service...")

	// Init DB
	dbConn, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// Init repositories and services
	contractRepo := repository.NewContractRepository(dbConn, zlog)
	installmentRepo := repository.NewInstallmentRepository(dbConn)
	receiptRepo := repository.NewReceiptRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)
	scheduleRepo := repository.NewScheduleRepository(dbConn, zlog)
	outboxRepo := outbox.NewRepository(dbConn)

	notificationService := service.NewNotificationService(notificationRepo, installmentRepo, contractRepo, zlog)
	dashboardService := service.NewDashboardService(contractRepo, installmentRepo, scheduleRepo, notificationRepo, rdb, zlog)

	// Init handlers
	contractCreatedHandler := mqhandler.NewContractCreatedHandler(notificationService, zlog)
	paymentRecordedHandler := mqhandler.NewPaymentRecordedHandler(notificationService, zlog)
	stageCompletedHandler := mqhandler.NewStageCompletedHandler(notificationService, zlog)

	// (1) Consumer for contract.created
	consumerContract, err := pkgmq.NewConsumer(cfg.MQ.URL, "contract.created.notify.q", mq.RoutingContractCreated, zlog)
	if err != nil {
		zlog.Fatal("failed to init contract consumer", zap.Error(err))
	}
	consumerContract.SetHandler(contractCreatedHandler.HandleContractCreated)
	go func() {
		if err := consumerContract.StartConsuming(); err != nil {
			zlog.Fatal("contract consumer failed", zap.Error(err))
		}
	}()
	defer consumerContract.Close()

	// (2) Consumer for payment.recorded
	consumerPayment, err := pkgmq.NewConsumer(cfg.MQ.URL, "payment.recorded.notify.q", mq.RoutingPaymentRecorded, zlog)
	if err != nil {
		zlog.Fatal("failed to init payment consumer", zap.Error(err))
	}
	consumerPayment.SetHandler(paymentRecordedHandler.HandlePaymentRecorded)
	go func() {
		if err := consumerPayment.StartConsuming(); err != nil {
			zlog.Fatal("payment consumer failed", zap.Error(err))
		}
	}()
	defer consumerPayment.Close()

	// (3) Consumer for stage.completed
	consumerStage, err := pkgmq.NewConsumer(cfg.MQ.URL, "stage.completed.notify.q", mq.RoutingStageCompleted, zlog)
	if err != nil {
		zlog.Fatal("failed to init stage consumer", zap.Error(err))
	}
	consumerStage.SetHandler(stageCompletedHandler.HandleStageCompleted)
	go func() {
		if err := consumerStage.StartConsuming(); err != nil {
			zlog.Fatal("stage consumer failed", zap.Error(err))
		}
	}()
	defer consumerStage.Close()

	// (4) Overdue sweep: flip past-due installments, then write reminders
	paymentService := service.NewPaymentService(dbConn, installmentRepo, contractRepo, receiptRepo, outboxRepo, service.NewDocumentService(cfg.Studio.Name), dashboardService, zlog)
	go func() {
		interval := time.Duration(cfg.Worker.OverdueSweepMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		runSweep := func() {
			ctx := context.Background()
			n, err := paymentService.SweepOverdue(ctx, model.Today())
			if err != nil {
				zlog.Error("Overdue sweep failed", zap.Error(err))
				return
			}
			if n > 0 {
				zlog.Info("Overdue sweep done", zap.Int("flipped", n))
			}
			if err := notificationService.RemindOverdue(ctx); err != nil {
				zlog.Error("Overdue reminders failed", zap.Error(err))
			}
		}

		runSweep()
		for range ticker.C {
			runSweep()
		}
	}()

	zlog.Info("All consumers started, worker is ready to process messages")

	// Keep worker running
	select {}
}
