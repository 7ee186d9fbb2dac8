package main

import (
	"fmt"
	"net/http"
	"time"

	"homepage-go/internal/api/handler"
	"homepage-go/internal/api/middleware"
	"homepage-go/internal/api/router"
	"homepage-go/internal/config"
	"homepage-go/internal/infra/database"
	infraKafka "homepage-go/internal/infra/kafka"
	infraRedis "homepage-go/internal/infra/redis"
	"homepage-go/internal/model"
	"homepage-go/internal/ratelimit"
	"homepage-go/internal/repository"
	"homepage-go/internal/service"
	"homepage-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(
		cfg.Log.Level,
		cfg.Log.Format,
		cfg.Log.Output,
		cfg.Log.FilePath,
	); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	// 自动迁移数据库表
	if err := database.AutoMigrate(
		&model.User{},
		&model.Comment{},
		&model.Reaction{},
		&model.Report{},
		&model.AuditLog{},
	); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化Kafka生产者（可选，未启用时事件静默丢弃）
	if err := infraKafka.InitProducer(&cfg.Kafka); err != nil {
		logger.Fatal("Failed to init kafka producer", zap.Error(err))
	}
	defer infraKafka.CloseProducer()

	// 设置Gin模式
	gin.SetMode(cfg.App.Mode)

	// 创建Gin路由器（不使用默认中间件）
	r := gin.New()

	// 使用自定义中间件
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())

	// 限流后端：默认内存固定窗口，多实例部署时切换到 Redis
	var limiter ratelimit.Limiter
	switch cfg.Comment.RateLimitBackend {
	case "redis":
		limiter = ratelimit.NewRedis(infraRedis.Get())
	default:
		limiter = ratelimit.NewMemory()
	}

	// 审核事件通知器（Kafka 未启用时为 nil，通知直接跳过）
	var notifier *service.KafkaNotifier
	if cfg.Kafka.Enabled {
		if topic, ok := cfg.Kafka.Topics["moderation_events"]; ok {
			notifier = service.NewKafkaNotifier(topic)
		}
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	reactionRepo := repository.NewReactionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	authService := service.NewAuthService(userRepo)
	commentService := service.NewCommentService(commentRepo, reactionRepo, userRepo, limiter, &cfg.Comment)
	reactionService := service.NewReactionService(reactionRepo, commentRepo, limiter, &cfg.Comment)
	reportService := service.NewReportService(reportRepo, commentRepo, auditRepo, limiter, &cfg.Comment, notifier)
	moderationService := service.NewModerationService(commentRepo, auditRepo, notifier)

	authHandler := handler.NewAuthHandler(authService)
	commentHandler := handler.NewCommentHandler(commentService)
	reactionHandler := handler.NewReactionHandler(reactionService)
	reportHandler := handler.NewReportHandler(reportService)
	adminHandler := handler.NewAdminHandler(commentService, reportService, moderationService)

	// 管理员中间件（需要查数据库获取角色）
	adminMiddleware := middleware.AdminRequired(func(userID int64) (string, error) {
		user, err := userRepo.GetByID(userID)
		if err != nil {
			return "", err
		}
		return user.UserRole, nil
	})

	// 注册基础路由
	r.GET("/healthz", healthCheckHandler)
	r.GET("/", rootHandler)

	// 注册业务路由
	router.Setup(r, authHandler, commentHandler, reactionHandler, reportHandler, adminHandler, adminMiddleware)

	// 启动服务器
	addr := fmt.Sprintf(":%d", cfg.App.Port)
	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
	)
	logger.Info("Configuration loaded",
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)),
		zap.String("redis", cfg.Redis.Addr()),
		zap.Bool("kafka_enabled", cfg.Kafka.Enabled),
		zap.String("rate_limit_backend", cfg.Comment.RateLimitBackend),
		zap.Int("report_threshold", cfg.Comment.ReportThreshold),
	)

	// 启动HTTP服务器
	logger.Info("Server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()

	logger.Debug("Health check requested", zap.String("ip", c.ClientIP()))

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Service is healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
		"mode":      cfg.App.Mode,
	})
}

// rootHandler 根路径处理器
func rootHandler(c *gin.Context) {
	cfg := config.Get()

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Welcome to %s API", cfg.App.Name),
		"project": cfg.App.Name,
		"version": cfg.App.Version,
		"mode":    cfg.App.Mode,
	})
}
