package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/vector1/internal/api"
	"github.com/annel0/vector1/internal/calc"
	"github.com/annel0/vector1/internal/config"
	"github.com/annel0/vector1/internal/logging"
	"github.com/annel0/vector1/internal/observability"
	"github.com/gin-gonic/gin"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (defaults to $VEC1_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	logOpts, err := loggingOptions(cfg.Logging)
	if err != nil {
		log.Fatalf("❌ Ошибка конфигурации логирования: %v", err)
	}
	if err := logging.InitDefaultLoggerWithOptions("server", logOpts); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	manager := logging.GetLoggerManager()
	manager.Configure(logOpts)
	defer manager.CloseAll()

	logging.Info("🚀 Запуск vector1 REST API...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		os.Exit(1)
	}

	gin.SetMode(gin.ReleaseMode)

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{
		Port:         restPort,
		Evaluator:    calc.NewEvaluator(calc.NewMetrics(nil), logging.GetCalcLogger()),
		MaxBatchSize: cfg.Server.GetMaxBatchSize(),
		Logger:       logging.GetAPILogger(),
	})

	if err := server.Start(); err != nil {
		logging.Error("❌ Ошибка запуска REST API: %v", err)
		os.Exit(1)
	}

	logging.Info("💡 Пример: curl -X POST http://localhost%s/api/vec1/eval -H 'Content-Type: application/json' -d '{\"op\":\"clamp_magnitude\",\"args\":[5,2]}'", restPort)

	<-ctx.Done()
	logging.Info("📡 Получен сигнал завершения, останавливаемся...")

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки REST API: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("Ошибка остановки OpenTelemetry: %v", err)
	}

	logging.Info("✅ Сервер остановлен")
}

func loggingOptions(cfg config.LoggingConfig) (logging.Options, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return logging.Options{}, err
	}

	opts := logging.DefaultOptions()
	opts.MinConsoleLevel = level
	opts.FileOutput = cfg.FileOutput
	if cfg.Dir != "" {
		opts.Dir = cfg.Dir
	}
	return opts, nil
}
