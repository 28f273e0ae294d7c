package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dev-tanmaydas/custos/api/ability"
	"github.com/dev-tanmaydas/custos/api/audit"
	"github.com/dev-tanmaydas/custos/api/config"
	"github.com/dev-tanmaydas/custos/api/controller"
	"github.com/dev-tanmaydas/custos/api/dao"
	"github.com/dev-tanmaydas/custos/api/db"
	logger "github.com/dev-tanmaydas/custos/api/logging"
	"github.com/dev-tanmaydas/custos/api/router"
	"github.com/dev-tanmaydas/custos/api/service"
	"github.com/dev-tanmaydas/custos/api/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.file"))
	defer logger.Sync()

	accessCfg := config.Access()
	fields := config.Fields()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize the permissions backend
	var permissionDAO dao.PermissionDAO
	switch accessCfg.Backend {
	case "neo4j":
		if err := db.InitNeo4j(); err != nil {
			logger.Fatal("Failed to initialize Neo4j", zap.Error(err))
		}
		defer db.CloseNeo4j()
		permissionDAO = dao.NewNeo4jPermissionDAO(db.Neo4jDriver, fields)
	case "elasticsearch":
		esDAO, err := dao.NewElasticsearchPermissionDAO(config.GetString("elasticsearch.url"), accessCfg.Index, fields)
		if err != nil {
			logger.Fatal("Failed to initialize Elasticsearch permissions backend", zap.Error(err))
		}
		permissionDAO = esDAO
	default:
		logger.Fatal("Unknown permissions backend", zap.String("backend", accessCfg.Backend))
	}

	if accessCfg.CacheEnabled {
		permissionDAO = dao.NewCachedPermissionDAO(permissionDAO)
	}

	// Initialize EventBus
	eventBus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	eventBus.Start(ctx)

	// Initialize services and utilities
	validationUtil := util.NewValidationUtil()
	auditRepository, err := audit.NewElasticsearchRepository(config.GetString("elasticsearch.url"))
	if err != nil {
		logger.Fatal("Failed to initialize audit repository", zap.Error(err))
	}
	auditService := audit.NewService(auditRepository)

	accessService := service.NewAccessService(
		permissionDAO,
		validationUtil,
		auditService,
		eventBus,
		ability.Options{
			Fields:          fields,
			LegacyTierUnion: accessCfg.LegacyTierUnion,
		},
	)

	// Initialize controllers
	controllers := controller.InitializeControllers(accessService)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, accessService, 100, time.Minute) // 100 requests per minute

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
