package api

import (
	"context"
	"log"

	"tms/internal/app/config"
	"tms/internal/app/dsn"
	"tms/internal/app/email"
	"tms/internal/app/handler"
	"tms/internal/app/middleware"
	"tms/internal/app/pdf"
	"tms/internal/app/redis"
	"tms/internal/app/repository"
	"tms/internal/app/service"
	"tms/internal/app/storage"
	"tms/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StartServer собирает все зависимости и запускает HTTP сервер
func StartServer() {
	log.Println("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("ошибка чтения конфигурации: %v", err)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("ошибка инициализации репозитория: %v", err)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logrus.Fatalf("ошибка подключения к Redis: %v", err)
	}

	// Хранилище документов и PDF генератор опциональны: без MinIO
	// печатные формы не создаются, операции с документами недоступны
	var pdfGenerator service.PDFGenerator
	var fileStore service.FileStore
	if cfg.Minio.Endpoint != "" {
		minioClient, err := storage.NewMinIOClient(
			cfg.Minio.Endpoint,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.Bucket,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			logrus.Fatalf("ошибка подключения к MinIO: %v", err)
		}
		fileStore = minioClient
		pdfGenerator, err = pdf.NewGenerator(minioClient)
		if err != nil {
			logrus.Fatalf("ошибка инициализации генератора PDF: %v", err)
		}
	} else {
		logrus.Warn("MINIO_ENDPOINT не задан, генерация PDF и документы отключены")
	}

	emailSender := email.NewSender(cfg.SMTP)

	instruments := service.NewInstrumentService(repo)
	payments := service.NewPaymentService(repo, instruments, pdfGenerator, emailSender, repo)
	approvals := service.NewApprovalService(repo, repo)
	dashboard := service.NewDashboardService(repo)
	documents := service.NewDocumentService(repo, fileStore)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	h := handler.NewHandler(repo, payments, instruments, approvals, dashboard, documents, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(redisClient, cfg)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
	}))

	app := pkg.NewApp(cfg, r, h, authMiddleware)
	app.RunApp()

	log.Println("Server down")
}
