package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"github.com/annel0/vector1/internal/calc"
	"github.com/annel0/vector1/internal/logging"
	"github.com/annel0/vector1/internal/middleware"
	"github.com/annel0/vector1/internal/vec"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const (
	version             = "v0.1.0"
	defaultMaxBatchSize = 1024
)

// RestServer представляет REST API сервер
type RestServer struct {
	router       *gin.Engine
	evaluator    *calc.Evaluator
	logger       *logging.Logger
	port         string
	maxBatchSize int
	metrics      *ServerMetrics
	httpServer   *http.Server
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port         string                // адрес для запуска сервера, например ":8088"
	Evaluator    *calc.Evaluator       // вычислитель операций
	MaxBatchSize int                   // ограничение на размер batch
	Logger       *logging.Logger       // nil - глобальный логгер
	Registerer   prometheus.Registerer // nil - дефолтный регистр
	Gatherer     prometheus.Gatherer   // nil - дефолтный регистр
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}
	if config.MaxBatchSize <= 0 {
		config.MaxBatchSize = defaultMaxBatchSize
	}
	if config.Logger == nil {
		config.Logger = logging.Default()
	}
	if config.Evaluator == nil {
		config.Evaluator = calc.NewEvaluator(nil, config.Logger)
	}

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware("rest_api"))
	router.Use(middleware.NewRequestLogger(config.Logger).Handler())

	promMw := middleware.NewPrometheusMiddleware("rest_api", config.Registerer)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, config.Gatherer)

	server := &RestServer{
		router:       router,
		evaluator:    config.Evaluator,
		logger:       config.Logger,
		port:         config.Port,
		maxBatchSize: config.MaxBatchSize,
		metrics:      NewServerMetrics(),
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	api := rs.router.Group("/api")
	{
		api.GET("/server", rs.handleServerInfo)

		v1 := api.Group("/vec1")
		v1.GET("/ops", rs.handleListOperations)
		v1.POST("/eval", rs.handleEvaluate)
		v1.POST("/batch", rs.handleBatch)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Handler возвращает http.Handler сервера (используется в тестах)
func (rs *RestServer) Handler() http.Handler {
	return rs.router
}

// ErrorResponse - тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Outcome string `json:"outcome"`
}

// BatchRequest - тело POST /api/vec1/batch
type BatchRequest struct {
	Requests []calc.Request `json:"requests"`
}

// BatchResponse - ответ POST /api/vec1/batch
type BatchResponse struct {
	Results []calc.BatchItem `json:"results"`
	Failed  int              `json:"failed"`
}

// handleEvaluate выполняет одну операцию
func (rs *RestServer) handleEvaluate(c *gin.Context) {
	var req calc.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный формат запроса: " + err.Error(), Outcome: "bad_request"})
		return
	}
	if req.Op == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Обязательное поле: op", Outcome: "bad_request"})
		return
	}

	res, err := rs.evaluator.Evaluate(c.Request.Context(), req)
	if err != nil {
		c.JSON(statusForError(err), ErrorResponse{Error: err.Error(), Outcome: calc.Outcome(err)})
		return
	}

	c.JSON(http.StatusOK, res)
}

// handleBatch выполняет несколько операций; ошибки отдельных запросов не прерывают batch
func (rs *RestServer) handleBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Неверный формат запроса: " + err.Error(), Outcome: "bad_request"})
		return
	}
	if len(req.Requests) > rs.maxBatchSize {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   fmt.Sprintf("batch too large: %d > %d", len(req.Requests), rs.maxBatchSize),
			Outcome: "bad_request",
		})
		return
	}

	items := rs.evaluator.EvaluateBatch(c.Request.Context(), req.Requests)
	failed := 0
	for _, item := range items {
		if item.Err != nil {
			failed++
		}
	}

	c.JSON(http.StatusOK, BatchResponse{Results: items, Failed: failed})
}

// handleListOperations возвращает список операций
func (rs *RestServer) handleListOperations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"operations": calc.Operations()})
}

// handleServerInfo возвращает информацию о процессе
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	cpuPercent, err := rs.metrics.GetCPUUsage()
	if err != nil {
		rs.logger.Warn("Не удалось получить CPU процесса: %v", err)
	}

	c.JSON(http.StatusOK, ServerInfo{
		Version:    version,
		Uptime:     rs.metrics.GetUptime(),
		MemoryMB:   rs.metrics.GetMemoryUsage(),
		CPUPercent: cpuPercent,
		Goroutines: runtime.NumGoroutine(),
		Operations: len(calc.Names()),
	})
}

// handleHealth - health check
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// statusForError сопоставляет ошибку вычисления HTTP-статусу
func statusForError(err error) int {
	switch {
	case errors.Is(err, calc.ErrUnknownOperation):
		return http.StatusNotFound
	case errors.Is(err, calc.ErrArity), errors.Is(err, calc.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, vec.ErrDivisionByZero):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Start занимает порт и запускает REST сервер в отдельной горутине
func (rs *RestServer) Start() error {
	rs.httpServer = &http.Server{
		Addr:              rs.port,
		Handler:           rs.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Порт занимаем синхронно, чтобы ошибка привязки вернулась вызывающему
	ln, err := net.Listen("tcp", rs.port)
	if err != nil {
		return fmt.Errorf("listen %s: %w", rs.port, err)
	}

	go func() {
		if err := rs.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			rs.logger.Error("❌ Ошибка REST API сервера: %v", err)
		}
	}()

	rs.logger.Info("✅ REST API сервер запущен на http://localhost%s", rs.port)
	rs.logger.Info("📋 Доступные эндпоинты:")
	rs.logger.Info("   GET  /health          - Проверка состояния")
	rs.logger.Info("   GET  /metrics         - Метрики Prometheus")
	rs.logger.Info("   GET  /api/server      - Информация о сервере")
	rs.logger.Info("   GET  /api/vec1/ops    - Список операций")
	rs.logger.Info("   POST /api/vec1/eval   - Вычисление операции")
	rs.logger.Info("   POST /api/vec1/batch  - Пакетное вычисление")
	return nil
}

// Stop останавливает REST сервер (graceful shutdown)
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.httpServer == nil {
		return nil
	}
	if err := rs.httpServer.Shutdown(ctx); err != nil {
		rs.logger.Error("❌ Ошибка при остановке HTTP сервера: %v", err)
		return err
	}
	rs.logger.Info("✅ REST API сервер остановлен")
	return nil
}
