package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/open-teleop/pathscript/domain/diagnostic"
	"github.com/open-teleop/pathscript/pkg/api"
	"github.com/open-teleop/pathscript/pkg/config"
	customlog "github.com/open-teleop/pathscript/pkg/log"
	"github.com/open-teleop/pathscript/pkg/processing"
	"github.com/open-teleop/pathscript/pkg/zeromq"
	"github.com/open-teleop/pathscript/services"
)

func main() {
	configDir := os.Getenv("PATHSCRIPT_CONFIG_DIR")
	if configDir == "" {
		configDir = "config"
	}

	bootstrap, err := config.LoadBootstrapConfig(configDir)
	if err != nil {
		log.Fatalf("Failed to load bootstrap config: %v", err)
	}

	appLogger, err := customlog.NewLogrusLogger(bootstrap.Logging.Level, bootstrap.Logging.LogPath)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	configService, err := services.NewGeneratorConfigService(bootstrap.GeneratorConfigPath(), appLogger)
	if err != nil {
		appLogger.Fatalf("Failed to create generator config service: %v", err)
	}
	scriptService := services.NewScriptService(configService, appLogger)

	pool := processing.NewProcessingPool("batch", bootstrap.Processing.Workers, bootstrap.Processing.QueueSize, appLogger)
	pool.SetProcessor(processing.NewScriptProcessor(appLogger, scriptService).CreateProcessorFunc())
	pool.SetResultHandler(processing.NewLoggingResultHandler(appLogger).CreateHandlerFunc())
	pool.Start()

	diagnosticService := diagnostic.NewDiagnosticService(scriptService, pool)

	var zmqService *zeromq.ZeroMQService
	if bootstrap.ZeroMQ.Enabled {
		zmqService, err = zeromq.NewZeroMQService(bootstrap.ZeroMQ, appLogger)
		if err != nil {
			appLogger.Fatalf("Failed to create ZeroMQ service: %v", err)
		}
		zeromq.RegisterHandlers(zmqService, scriptService, configService, appLogger)
		if err := zmqService.Start(); err != nil {
			appLogger.Fatalf("Failed to start ZeroMQ service: %v", err)
		}
		diagnosticService.SetZeroMQEnabled(true)
	}

	app := api.NewApp("pathscript")
	app.Use(logger.New())
	app.Use(recover.New())

	timeout := time.Duration(bootstrap.Server.RequestTimeout) * time.Second

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy"})
	})
	app.Get("/api/diagnostics", diagnosticService.GetMetricsHandler)

	scriptHandler := api.NewScriptHandler(scriptService, pool, appLogger, timeout)
	api.RegisterFormRoutes(app, scriptHandler)
	api.RegisterScriptRoutes(app, scriptHandler)
	api.RegisterConfigRoutes(app, configService, appLogger)
	api.RegisterWebSocketRoutes(app, scriptService, appLogger)

	port := os.Getenv("PORT")
	if port == "" {
		port = strconv.Itoa(bootstrap.Server.HTTPPort)
	}

	go func() {
		appLogger.Infof("Server starting on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Infof("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Errorf("Server forced to shutdown: %v", err)
	}

	if zmqService != nil {
		zmqService.Stop()
	}
	pool.Stop()

	appLogger.Infof("Server exited properly")
}
