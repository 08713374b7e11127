package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"studiodesk/config"
	"studiodesk/internal/api"
	"studiodesk/internal/model"
	"studiodesk/internal/repository"
	"studiodesk/internal/service"
	"studiodesk/pkg/db"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/mq"
	"studiodesk/pkg/outbox"
	redisclient "studiodesk/pkg/redis"
)

func main() {
	// 1. Load config
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.NewLogger()
	defer zlog.Sync()

	// 2. Init DB
	dbConn, err := db.NewConnection(cfg.DB, zlog)
	if err != nil {
		zlog.Fatal("DB initialization failed", zap.Error(err))
	}
	defer dbConn.Close()

	// 3. Init Redis
	rdb := redisclient.NewRedisClient(cfg.Redis)
	defer rdb.Close()

	// 4. Init RabbitMQ publisher and outbox dispatcher
	publisher, err := mq.NewPublisher(cfg.MQ.URL)
	if err != nil {
		zlog.Fatal("failed to init publisher", zap.Error(err))
	}
	defer publisher.Close()

	outboxRepo := outbox.NewRepository(dbConn)
	dispatcher := outbox.NewDispatcher(outboxRepo, publisher, zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatcher.Start(ctx)

	// 5. Init repositories
	userRepo := repository.NewUserRepository(dbConn)
	clientRepo := repository.NewClientRepository(dbConn)
	contractRepo := repository.NewContractRepository(dbConn, zlog)
	templateRepo := repository.NewTemplateRepository(dbConn)
	scheduleRepo := repository.NewScheduleRepository(dbConn, zlog)
	installmentRepo := repository.NewInstallmentRepository(dbConn)
	receiptRepo := repository.NewReceiptRepository(dbConn)
	notificationRepo := repository.NewNotificationRepository(dbConn)

	// 6. Seed stage templates on first boot
	seed := make([]model.StageTemplate, 0, len(cfg.Templates))
	for i, t := range cfg.Templates {
		seed = append(seed, model.StageTemplate{
			Name:             t.Name,
			DurationWorkDays: t.DurationWorkDays,
			Sequence:         i + 1,
		})
	}
	if err := templateRepo.Seed(ctx, seed); err != nil {
		zlog.Fatal("failed to seed stage templates", zap.Error(err))
	}

	// 7. Init services
	authService := service.NewAuthService(userRepo, rdb, cfg.JWT.Secret, cfg.License.Key, zlog)
	documentService := service.NewDocumentService(cfg.Studio.Name)
	dashboardService := service.NewDashboardService(contractRepo, installmentRepo, scheduleRepo, notificationRepo, rdb, zlog)
	clientService := service.NewClientService(clientRepo, contractRepo, zlog)
	contractService := service.NewContractService(dbConn, contractRepo, clientRepo, templateRepo, scheduleRepo, installmentRepo, outboxRepo, dashboardService, zlog)
	scheduleService := service.NewScheduleService(dbConn, scheduleRepo, outboxRepo, cfg.PhaseGroups, zlog)
	paymentService := service.NewPaymentService(dbConn, installmentRepo, contractRepo, receiptRepo, outboxRepo, documentService, dashboardService, zlog)
	notificationService := service.NewNotificationService(notificationRepo, installmentRepo, contractRepo, zlog)

	// 8. Init handlers
	authHandler := api.NewAuthHandler(authService)
	clientHandler := api.NewClientHandler(clientService)
	contractHandler := api.NewContractHandler(contractService, scheduleService, paymentService, documentService, scheduleRepo)
	scheduleHandler := api.NewScheduleHandler(scheduleService)
	paymentHandler := api.NewPaymentHandler(paymentService, receiptRepo)
	templateHandler := api.NewTemplateHandler(templateRepo)
	dashboardHandler := api.NewDashboardHandler(dashboardService, notificationService)

	// 9. Init router
	router := api.NewRouter(
		authHandler,
		clientHandler,
		contractHandler,
		scheduleHandler,
		paymentHandler,
		templateHandler,
		dashboardHandler,
		cfg.JWT.Secret,
	)

	// 10. Run server
	if err := router.Run(cfg.Server.Port); err != nil {
		zlog.Fatal("server start failed", zap.Error(err))
	}
}
