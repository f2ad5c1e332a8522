package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bulkSetRatesHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/bulk_set_rates"
	createSpecificationHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/create_specification"
	createVehicleHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/create_vehicle"
	findAvailableHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/find_available"
	getDisplayRateHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/get_display_rate"
	getSpecificationHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/get_specification"
	getVehicleHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/get_vehicle"
	getVehicleRateHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/get_vehicle_rate"
	setTemplateRateHandler "github.com/m04kA/CRP-FleetService/internal/api/handlers/set_template_rate"
	"github.com/m04kA/CRP-FleetService/internal/api/middleware"
	"github.com/m04kA/CRP-FleetService/internal/config"
	catalogEntryRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/catalogentry"
	reservationRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/reservation"
	specificationRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/specification"
	vehicleRepo "github.com/m04kA/CRP-FleetService/internal/infra/storage/vehicle"
	companyServiceClient "github.com/m04kA/CRP-FleetService/internal/integrations/companyservice"
	catalogService "github.com/m04kA/CRP-FleetService/internal/service/catalog"
	fleetService "github.com/m04kA/CRP-FleetService/internal/service/fleet"
	bulkSetRatesUC "github.com/m04kA/CRP-FleetService/internal/usecase/bulk_set_rates"
	createVehicleUC "github.com/m04kA/CRP-FleetService/internal/usecase/create_vehicle"
	findAvailableUC "github.com/m04kA/CRP-FleetService/internal/usecase/find_available"
	"github.com/m04kA/CRP-FleetService/pkg/dbmetrics"
	"github.com/m04kA/CRP-FleetService/pkg/logger"
	"github.com/m04kA/CRP-FleetService/pkg/metrics"
	"github.com/m04kA/CRP-FleetService/pkg/simpletxmanager"
	"github.com/m04kA/CRP-FleetService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting CRP-FleetService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	companyClient := companyServiceClient.NewClient(
		cfg.CompanyService.URL,
		time.Duration(cfg.CompanyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CompanyService=%s timeout=%ds)",
		cfg.CompanyService.URL, cfg.CompanyService.Timeout)

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		specRepository        *specificationRepo.Repository
		entryRepository       *catalogEntryRepo.Repository
		vehicleRepository     *vehicleRepo.Repository
		reservationRepository *reservationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	// TODO: вынести в общий пакет, чтобы не объявлять в main
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		specRepository = specificationRepo.NewRepository(wrappedDB)
		entryRepository = catalogEntryRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		specRepository = specificationRepo.NewRepository(db)
		entryRepository = catalogEntryRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		specRepository,
		entryRepository,
		log,
	)
	fleetSvc := fleetService.NewService(
		vehicleRepository,
		specRepository,
		entryRepository,
		log,
	)

	// Инициализируем use cases
	createVehicleUseCase := createVehicleUC.NewUseCase(
		specRepository,
		entryRepository,
		vehicleRepository,
		companyClient,
		txMgr,
		log,
	)

	bulkSetRatesUseCase := bulkSetRatesUC.NewUseCase(
		specRepository,
		entryRepository,
		vehicleRepository,
		txMgr,
		log,
	)

	findAvailableUseCase := findAvailableUC.NewUseCase(
		vehicleRepository,
		specRepository,
		entryRepository,
		reservationRepository,
		log,
	)

	// Инициализируем handlers
	createSpecification := createSpecificationHandler.NewHandler(catalogSvc, log)
	getSpecification := getSpecificationHandler.NewHandler(catalogSvc, log)
	setTemplateRate := setTemplateRateHandler.NewHandler(catalogSvc, log)
	createVehicle := createVehicleHandler.NewHandler(createVehicleUseCase, log)
	getVehicle := getVehicleHandler.NewHandler(fleetSvc, log)
	getVehicleRate := getVehicleRateHandler.NewHandler(fleetSvc, log)
	getDisplayRate := getDisplayRateHandler.NewHandler(fleetSvc, log)
	bulkSetRates := bulkSetRatesHandler.NewHandler(bulkSetRatesUseCase, log)
	findAvailable := findAvailableHandler.NewHandler(findAvailableUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Каждому запросу присваиваем request id
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// CATALOG ROUTES (глобальный каталог спецификаций)
	// ============================================================

	// Создание спецификации каталога
	api.HandleFunc("/catalog/specifications", createSpecification.Handle).Methods(http.MethodPost)

	// Получение спецификации по ID
	api.HandleFunc("/catalog/specifications/{specId}", getSpecification.Handle).Methods(http.MethodGet)

	// Установка или сброс шаблонной ставки спецификации
	api.HandleFunc("/catalog/specifications/{specId}/template-rate", setTemplateRate.Handle).Methods(http.MethodPut)

	// ============================================================
	// COMPANY FLEET ROUTES (автопарк и ставки компании)
	// ============================================================

	// Добавление юнита в автопарк компании
	api.HandleFunc("/companies/{companyId}/vehicles", createVehicle.Handle).Methods(http.MethodPost)

	// Получение юнита с эффективной ставкой
	api.HandleFunc("/companies/{companyId}/vehicles/{vehicleId}", getVehicle.Handle).Methods(http.MethodGet)

	// Получение эффективной ставки юнита
	api.HandleFunc("/companies/{companyId}/vehicles/{vehicleId}/rate", getVehicleRate.Handle).Methods(http.MethodGet)

	// Витринная ставка по группе юнитов
	api.HandleFunc("/companies/{companyId}/display-rate", getDisplayRate.Handle).Methods(http.MethodGet)

	// Массовая установка персональных ставок
	api.HandleFunc("/companies/{companyId}/rates/bulk", bulkSetRates.Handle).Methods(http.MethodPost)

	// Поиск доступных юнитов в окне аренды
	api.HandleFunc("/companies/{companyId}/available-vehicles", findAvailable.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
