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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/cancel_booking"
	computePricingHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/compute_pricing"
	createBookingHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/get_booking"
	getTenantBookingsHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/get_tenant_bookings"
	manageCatalogHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/manage_catalog"
	manageDiscountsHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/manage_discounts"
	manageScheduleHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/manage_schedule"
	updateBookingStatusHandler "github.com/nordbooking/NB-BookingCore/internal/api/handlers/update_booking_status"
	"github.com/nordbooking/NB-BookingCore/internal/api/middleware"
	"github.com/nordbooking/NB-BookingCore/internal/config"
	slotsCache "github.com/nordbooking/NB-BookingCore/internal/infra/cache/slots"
	bookingRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/booking"
	catalogRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/catalog"
	discountRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/discount"
	scheduleRepo "github.com/nordbooking/NB-BookingCore/internal/infra/storage/schedule"
	tenantServiceClient "github.com/nordbooking/NB-BookingCore/internal/integrations/tenantservice"
	bookingsService "github.com/nordbooking/NB-BookingCore/internal/service/bookings"
	catalogService "github.com/nordbooking/NB-BookingCore/internal/service/catalog"
	discountsService "github.com/nordbooking/NB-BookingCore/internal/service/discounts"
	scheduleService "github.com/nordbooking/NB-BookingCore/internal/service/schedule"
	computePricingUC "github.com/nordbooking/NB-BookingCore/internal/usecase/compute_pricing"
	createBookingUC "github.com/nordbooking/NB-BookingCore/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/nordbooking/NB-BookingCore/internal/usecase/get_available_slots"
	"github.com/nordbooking/NB-BookingCore/pkg/dbmetrics"
	"github.com/nordbooking/NB-BookingCore/pkg/logger"
	"github.com/nordbooking/NB-BookingCore/pkg/metrics"
	"github.com/nordbooking/NB-BookingCore/pkg/simpletxmanager"
	"github.com/nordbooking/NB-BookingCore/pkg/txmanager"
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

	log.Info("Starting NB-BookingCore...")
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

	// Инициализируем интеграционного клиента
	tenantClient := tenantServiceClient.NewClient(
		cfg.TenantService.URL,
		time.Duration(cfg.TenantService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (TenantService=%s timeout=%ds)",
		cfg.TenantService.URL, cfg.TenantService.Timeout)

	// Инициализируем кэш слотов (если включен).
	// Интерфейсы остаются nil при выключенном Redis - сервисы это учитывают.
	var (
		bookingsSlotsCache  bookingsService.SlotsCache
		scheduleSlotsCache  scheduleService.SlotsCache
		createSlotsCache    createBookingUC.SlotsCache
		availableSlotsCache getAvailableSlotsUC.SlotsCache
	)

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancelPing()
			log.Fatal("Failed to ping redis: %v", err)
		}
		cancelPing()
		defer redisClient.Close()

		cache := slotsCache.New(redisClient, time.Duration(cfg.Redis.TTL)*time.Second, log)
		bookingsSlotsCache = cache
		scheduleSlotsCache = cache
		createSlotsCache = cache
		availableSlotsCache = cache

		log.Info("Slots cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	} else {
		log.Info("Slots cache disabled")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		catalogRepository  *catalogRepo.Repository
		discountRepository *discountRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		discountRepository = discountRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		discountRepository = discountRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		bookingsSlotsCache,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		scheduleSlotsCache,
		log,
	)
	discountSvc := discountsService.NewService(discountRepository, log)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	computePricingUseCase := computePricingUC.NewUseCase(
		catalogRepository,
		discountRepository,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		bookingRepository,
		tenantClient,
		availableSlotsCache,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		catalogRepository,
		discountRepository,
		scheduleRepository,
		bookingRepository,
		tenantClient,
		txMgr,
		createSlotsCache,
		log,
	)

	// Инициализируем handlers
	computePricing := computePricingHandler.NewHandler(computePricingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getTenantBookings := getTenantBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	manageSchedule := manageScheduleHandler.NewHandler(scheduleSvc, log)
	manageDiscounts := manageDiscountsHandler.NewHandler(discountSvc, log)
	manageCatalog := manageCatalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (публичная страница бронирования, без аутентификации)
	// ============================================================

	// Доступные слоты на дату
	api.HandleFunc("/tenants/{tenantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Предварительный расчет цены
	api.HandleFunc("/tenants/{tenantId}/pricing",
		computePricing.Handle).Methods(http.MethodPost)

	// Создание бронирования
	api.HandleFunc("/tenants/{tenantId}/bookings",
		createBooking.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (кабинет тенанта, требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", getTenantBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Расписание ---
	protected.HandleFunc("/schedule", manageSchedule.HandleGetSchedule).Methods(http.MethodGet)
	protected.HandleFunc("/schedule/slots", manageSchedule.HandleCreateRecurringSlot).Methods(http.MethodPost)
	protected.HandleFunc("/schedule/slots/{slotId}", manageSchedule.HandleUpdateRecurringSlot).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/slots/{slotId}", manageSchedule.HandleDeleteRecurringSlot).Methods(http.MethodDelete)
	protected.HandleFunc("/schedule/days/{dayOfWeek}", manageSchedule.HandleSetDayStatus).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/overrides", manageSchedule.HandleSaveDateOverride).Methods(http.MethodPut)
	protected.HandleFunc("/schedule/overrides/{date}", manageSchedule.HandleDeleteDateOverride).Methods(http.MethodDelete)

	// --- Промокоды ---
	protected.HandleFunc("/discounts", manageDiscounts.HandleCreate).Methods(http.MethodPost)
	protected.HandleFunc("/discounts", manageDiscounts.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/discounts/{discountId}", manageDiscounts.HandleGet).Methods(http.MethodGet)
	protected.HandleFunc("/discounts/{discountId}", manageDiscounts.HandleUpdate).Methods(http.MethodPut)
	protected.HandleFunc("/discounts/{discountId}", manageDiscounts.HandleDelete).Methods(http.MethodDelete)

	// --- Каталог услуг ---
	protected.HandleFunc("/services", manageCatalog.HandleCreateService).Methods(http.MethodPost)
	protected.HandleFunc("/services", manageCatalog.HandleListServices).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", manageCatalog.HandleGetService).Methods(http.MethodGet)
	protected.HandleFunc("/services/{serviceId}", manageCatalog.HandleUpdateService).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}", manageCatalog.HandleDeleteService).Methods(http.MethodDelete)
	protected.HandleFunc("/services/{serviceId}/options", manageCatalog.HandleCreateOption).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}/options/{optionId}", manageCatalog.HandleUpdateOption).Methods(http.MethodPut)
	protected.HandleFunc("/services/{serviceId}/options/{optionId}", manageCatalog.HandleDeleteOption).Methods(http.MethodDelete)

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
