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
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminBlocksHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/admin_blocks"
	attachTransactionHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/attach_transaction"
	confirmPaymentHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/confirm_payment"
	deleteBookingHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/delete_booking"
	getAvailabilityHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/get_availability"
	getBookingHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/get_booking"
	getBusinessHoursHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/get_business_hours"
	getCustomerBookingsHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/get_customer_bookings"
	getReservationHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/get_reservation"
	listBookingsHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/list_bookings"
	reserveSlotHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/reserve_slot"
	stripeWebhookHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/stripe_webhook"
	updateBookingStatusHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/update_booking_status"
	updateBusinessHoursHandler "github.com/yaduk2001/selling-sub001/internal/api/handlers/update_business_hours"
	"github.com/yaduk2001/selling-sub001/internal/api/middleware"
	"github.com/yaduk2001/selling-sub001/internal/config"
	hoursCache "github.com/yaduk2001/selling-sub001/internal/infra/cache/hours"
	adminBlockRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/adminblock"
	bookingRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/booking"
	hoursRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/businesshours"
	"github.com/yaduk2001/selling-sub001/internal/infra/storage/migrations"
	reservationRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/reservation"
	slotClaimRepo "github.com/yaduk2001/selling-sub001/internal/infra/storage/slotclaim"
	"github.com/yaduk2001/selling-sub001/internal/integrations/mailer"
	adminBlocksService "github.com/yaduk2001/selling-sub001/internal/service/adminblocks"
	bookingsService "github.com/yaduk2001/selling-sub001/internal/service/bookings"
	businessHoursService "github.com/yaduk2001/selling-sub001/internal/service/businesshours"
	"github.com/yaduk2001/selling-sub001/internal/service/calendar"
	reservationsService "github.com/yaduk2001/selling-sub001/internal/service/reservations"
	confirmReservationUC "github.com/yaduk2001/selling-sub001/internal/usecase/confirm_reservation"
	getAvailabilityUC "github.com/yaduk2001/selling-sub001/internal/usecase/get_availability"
	reserveSlotUC "github.com/yaduk2001/selling-sub001/internal/usecase/reserve_slot"
	"github.com/yaduk2001/selling-sub001/internal/worker/sweeper"
	"github.com/yaduk2001/selling-sub001/pkg/dbmetrics"
	"github.com/yaduk2001/selling-sub001/pkg/logger"
	"github.com/yaduk2001/selling-sub001/pkg/metrics"
	"github.com/yaduk2001/selling-sub001/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting session booking service...")
	log.Info("Configuration loaded from %s", configPath)

	// Метрики (nil, если выключены: все методы безопасны на nil)
	var (
		metricsCollector *metrics.Metrics
		dbObserver       dbmetrics.Observer
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbObserver = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open(cfg.Database.Driver, cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.PingContext(startupCtx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	if err := migrations.Apply(startupCtx, db, cfg.Database.Driver); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}
	log.Info("Database ready (driver=%s)", cfg.Database.Driver)

	wrappedDB := dbmetrics.WrapWithDefault(db, dbObserver, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	claimRepository := slotClaimRepo.NewRepository(wrappedDB)
	hoursRepository := hoursRepo.NewRepository(wrappedDB)
	blockRepository := adminBlockRepo.NewRepository(wrappedDB)

	// Кэш расписания: интерфейс остаётся nil, если Redis выключен
	var cache businessHoursService.HoursCache
	if cfg.Redis.Enabled {
		redisClient := hoursCache.NewRedisClient(cfg.Redis)
		defer redisClient.Close()

		if err := redisClient.Ping(startupCtx).Err(); err != nil {
			log.Warn("Redis is unavailable at %s, business hours are read from the database: %v", cfg.Redis.Address, err)
		}
		cache = hoursCache.NewCache(redisClient, time.Duration(cfg.Redis.HoursTTL)*time.Second)
		log.Info("Business hours cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Address, cfg.Redis.HoursTTL)
	}

	// Письма о подтверждении: notifier остаётся nil, если уведомления выключены
	var notifier confirmReservationUC.Notifier
	if cfg.Notifications.Enabled {
		mailClient, err := mailer.NewClient(mailer.Config{
			APIKey:    cfg.Notifications.SendGridAPIKey,
			FromEmail: cfg.Notifications.FromEmail,
			FromName:  cfg.Notifications.FromName,
			Timeout:   10 * time.Second,
		}, metricsCollector, log)
		if err != nil {
			log.Fatal("Failed to initialize mailer: %v", err)
		}
		notifier = mailClient
		log.Info("Confirmation emails enabled (from=%s)", cfg.Notifications.FromEmail)
	}

	// Сервисы
	hoursSvc := businessHoursService.NewService(hoursRepository, cache, metricsCollector, log, cfg.Business.Timezone)
	dayLoader := calendar.NewLoader(bookingRepository, reservationRepository, blockRepository)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		claimRepository,
		txMgr,
		metricsCollector,
		log,
		cfg.Reservation.Retention(),
	)
	bookingSvc := bookingsService.NewService(bookingRepository, claimRepository, txMgr, log)
	blockSvc := adminBlocksService.NewService(blockRepository, log)

	// Use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		hoursSvc,
		dayLoader,
		getAvailabilityUC.Settings{
			DefaultTimezone:    cfg.Business.Timezone,
			AdvanceBookingDays: cfg.Reservation.AdvanceBookingDays,
			MinNoticeMinutes:   cfg.Reservation.MinNoticeMinutes,
		},
		log,
	)

	reserveSlotUseCase := reserveSlotUC.NewUseCase(
		hoursSvc,
		dayLoader,
		reservationRepository,
		claimRepository,
		txMgr,
		metricsCollector,
		reserveSlotUC.Settings{
			DefaultTimezone:    cfg.Business.Timezone,
			HoldDuration:       cfg.Reservation.HoldDuration(),
			AdvanceBookingDays: cfg.Reservation.AdvanceBookingDays,
			MinNoticeMinutes:   cfg.Reservation.MinNoticeMinutes,
		},
		log,
	)

	confirmReservationUseCase := confirmReservationUC.NewUseCase(
		reservationRepository,
		bookingRepository,
		claimRepository,
		hoursSvc,
		dayLoader,
		notifier,
		txMgr,
		metricsCollector,
		confirmReservationUC.Settings{DefaultTimezone: cfg.Business.Timezone},
		log,
	)

	// Фоновая очистка просроченных резервов
	var sweepWorker *sweeper.Worker
	if cfg.Reservation.SweepEnabled {
		sweepWorker, err = sweeper.NewWorker(reservationSvc, cfg.Reservation.SweepSchedule, log)
		if err != nil {
			log.Fatal("Failed to initialize sweeper: %v", err)
		}
		sweepWorker.Start()
	}

	// Handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	reserveSlot := reserveSlotHandler.NewHandler(reserveSlotUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	attachTransaction := attachTransactionHandler.NewHandler(reservationSvc, log)
	stripeWebhook := stripeWebhookHandler.NewHandler(confirmReservationUseCase, cfg.Payments.StripeWebhookSecret, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmReservationUseCase, log)
	getBusinessHours := getBusinessHoursHandler.NewHandler(hoursSvc, log)
	updateBusinessHours := updateBusinessHoursHandler.NewHandler(hoursSvc, log)
	adminBlocks := adminBlocksHandler.NewHandler(blockSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	deleteBooking := deleteBookingHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/products/{productId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	reserve := api.PathPrefix("/reservations").Subrouter()
	if cfg.RateLimit.Enabled {
		reserve.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, log).Middleware)
		log.Info("Rate limit on reservations: rps=%.2f, burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	reserve.HandleFunc("", reserveSlot.Handle).Methods(http.MethodPost)
	reserve.HandleFunc("/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	reserve.HandleFunc("/{reservationId}/transaction", attachTransaction.Handle).Methods(http.MethodPost)

	// Подлинность проверяется подписью Stripe
	api.HandleFunc("/webhooks/stripe", stripeWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN / INTERNAL ROUTES (требуют X-Api-Key)
	// ============================================================

	internal := api.PathPrefix("/internal").Subrouter()
	internal.Use(middleware.AdminAuth(cfg.Server.AdminAPIKey, log))
	internal.HandleFunc("/payments/confirm", confirmPayment.Handle).Methods(http.MethodPost)

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Server.AdminAPIKey, log))

	// --- Расписание ---
	admin.HandleFunc("/business-hours", getBusinessHours.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/business-hours/{weekday}", updateBusinessHours.Handle).Methods(http.MethodPut)

	// --- Блокировки календаря ---
	admin.HandleFunc("/blocks", adminBlocks.List).Methods(http.MethodGet)
	admin.HandleFunc("/blocks", adminBlocks.Create).Methods(http.MethodPost)
	admin.HandleFunc("/blocks/{blockId}", adminBlocks.Get).Methods(http.MethodGet)
	admin.HandleFunc("/blocks/{blockId}", adminBlocks.Update).Methods(http.MethodPut)
	admin.HandleFunc("/blocks/{blockId}", adminBlocks.Delete).Methods(http.MethodDelete)

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", deleteBooking.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/customers/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sweepWorker != nil {
		sweepWorker.Stop(shutdownCtx)
	}

	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
