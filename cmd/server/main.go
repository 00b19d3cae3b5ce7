// Package main 是应用程序的入口点。
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"netqa-go/internal/config"
	"netqa-go/internal/repository"
	"netqa-go/internal/router"
	"netqa-go/internal/service"
	"netqa-go/pkg/database"
	"netqa-go/pkg/es"
	"netqa-go/pkg/llm"
	"netqa-go/pkg/log"
	"netqa-go/pkg/storage"
	"netqa-go/pkg/token"
)

func main() {
	configPath := flag.String("config", "./configs/config.yaml", "配置文件路径")
	flag.Parse()

	// 1. 初始化配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "配置校验失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志记录器
	log.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.OutputPath)
	defer log.Sync() // 确保在程序退出时刷新所有缓冲的日志条目
	log.Info("日志记录器初始化成功")

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	// 3. 初始化数据库和 Redis
	db, err := database.InitMySQL(cfg.Database.MySQL.DSN)
	if err != nil {
		log.Fatal("MySQL 初始化失败", err)
	}
	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal("数据库迁移失败", err)
		}
	}
	rdb, err := database.InitRedis(startCtx, cfg.Database.Redis.Addr, cfg.Database.Redis.Password, cfg.Database.Redis.DB)
	if err != nil {
		log.Fatal("Redis 初始化失败", err)
	}
	defer rdb.Close()

	// 4. 附件存储
	var store storage.AttachmentStore
	var staticDir, staticPrefix string
	switch cfg.Storage.Driver {
	case config.StorageDriverMinIO:
		minioStore, err := storage.NewMinIOStore(startCtx, cfg.MinIO)
		if err != nil {
			log.Fatal("MinIO 初始化失败", err)
		}
		store = minioStore
	default:
		localStore, err := storage.NewLocalStore(cfg.Storage.Local)
		if err != nil {
			log.Fatal("本地存储初始化失败", err)
		}
		store = localStore
		staticDir, staticPrefix = localStore.Dir(), cfg.Storage.Local.URLPrefix
	}

	// 5. 可选的知识库全文索引
	var knowledgeIndex service.KnowledgeIndex
	if cfg.Elasticsearch.Enabled {
		idx, err := es.NewKnowledgeIndex(cfg.Elasticsearch)
		if err != nil {
			log.Fatal("Elasticsearch 初始化失败", err)
		}
		if err := idx.EnsureIndex(startCtx); err != nil {
			log.Error("创建知识库索引失败，检索将使用数据库", err)
		} else {
			knowledgeIndex = idx
		}
	}

	// 6. 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	protocolRepo := repository.NewProtocolRepository(db)
	knowledgeRepo := repository.NewKnowledgeRepository(db)
	blacklistRepo := repository.NewTokenBlacklistRepository(rdb)
	hotQuestionRepo := repository.NewHotQuestionRepository(rdb)

	// 7. 初始化 Service (依赖注入)
	jwtManager, err := token.NewJWTManager(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.AccessTokenExpireHours)
	if err != nil {
		log.Fatal("JWT 初始化失败", err)
	}
	var completer service.Completer
	if cfg.LLM.APIKey != "" {
		completer = llm.NewClient(cfg.LLM)
	} else {
		log.Warnf("未配置 LLM API Key，所有回答将使用兜底模板")
	}

	deps := router.Dependencies{
		Verifier:           service.NewCredentialVerifier(jwtManager, userRepo, blacklistRepo),
		UserService:        service.NewUserService(userRepo, blacklistRepo, jwtManager),
		ChatService:        service.NewChatService(store, service.NewAnswerService(completer, cfg.LLM), ledgerRepo),
		HotQuestionService: service.NewHotQuestionService(hotQuestionRepo),
		FeedbackService:    service.NewFeedbackService(ledgerRepo),
		KnowledgeService:   service.NewKnowledgeService(protocolRepo, knowledgeRepo, ledgerRepo, knowledgeIndex),
		CORSOrigins:        cfg.CORS.AllowedOrigins,
		StaticURLPrefix:    staticPrefix,
		StaticDir:          staticDir,
	}

	// 8. 设置 Gin 模式并创建路由引擎
	gin.SetMode(cfg.Server.Mode)
	r := router.New(deps)

	// 启动 HTTP 服务器并实现优雅停机
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Infof("服务启动于 %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP 服务监听失败: %s\n", err)
		}
	}()

	// 等待中断信号以实现优雅停机
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("接收到停机信号，正在关闭服务...")

	// 设置一个5秒的超时上下文
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("HTTP 服务器关闭失败: %v", err)
	}
	log.Info("服务已优雅关闭")
}
