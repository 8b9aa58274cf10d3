package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/in/http"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/in/rabbitmq"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/in/websocket"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/api"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/cache"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/logger"
	"github.com/suchimauz/clinic-booking-controller/internal/adapters/out/metrics"
	"github.com/suchimauz/clinic-booking-controller/internal/config"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/in"
	"github.com/suchimauz/clinic-booking-controller/internal/core/ports/out"
	"github.com/suchimauz/clinic-booking-controller/internal/core/services/booking_service"
	"github.com/suchimauz/clinic-booking-controller/internal/core/services/live_update_service"
)

func main() {
	// .env необязателен, в контейнере переменные приходят из окружения
	_ = godotenv.Load()

	// Загрузка конфигурации
	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализация логгера с таймзоной
	mainLogger, err := logger.NewZapLogger(logger.Options{
		Level:    out.ParseLogLevel(cfg.App.LogLevel),
		Local:    cfg.IsLocal(),
		Timezone: cfg.App.Timezone,
	})
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer mainLogger.Sync()
	logger := mainLogger.WithModule("Main")

	logger.Info("app.starting", out.LogFields{
		"version":         cfg.App.Version,
		"env":             cfg.App.Env,
		"timezone":        cfg.App.Timezone,
		"bookingApi":      cfg.BookingAPI.URL,
		"rabbitmqEnabled": cfg.RabbitMQ.Enabled,
		"cacheEnabled":    cfg.Cache.Enabled,
		"metricsEnabled":  cfg.Metrics.Enabled,
	})

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		logger.Error("app.timezone.invalid", out.LogFields{
			"timezone": cfg.App.Timezone,
			"error":    err.Error(),
		})
		os.Exit(1)
	}

	// Настройка Gin в зависимости от окружения
	if cfg.IsNotLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Метрики пишутся в собственный реестр, /metrics поднимается только с ним
	var (
		bookingMetrics *metrics.BookingMetrics
		gatherer       prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		bookingMetrics = metrics.NewBookingMetrics(registry)
		gatherer = registry
	}

	cacheAdapter, err := cache.NewCacheAdapter(cfg, mainLogger.WithModule("CacheAdapter"))
	if err != nil {
		logger.Error("app.cache.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	hub := websocket.NewHub()

	bookingFactory := func(view out.ViewPort, calendar out.CalendarPort, loop out.EventLoopPort, cookies []*nethttp.Cookie) in.BookingUseCase {
		var apiPort out.BookingAPIPort = api.NewBookingAPIAdapter(
			cfg,
			mainLogger.WithModule("BookingAPIAdapter"),
			api.WithCookies(cookies),
			api.WithMetrics(bookingMetrics),
		)
		if cacheAdapter != nil {
			apiPort = cache.NewCachedBookingAPI(apiPort, cacheAdapter, mainLogger)
		}

		return booking_service.NewBookingService(
			apiPort,
			view,
			calendar,
			loop,
			mainLogger,
			booking_service.WithResetDelay(cfg.Booking.ResetDelay),
			booking_service.WithMetrics(bookingMetrics),
		)
	}

	wsHandler := websocket.NewHandler(
		hub,
		bookingFactory,
		websocket.HandlerOptions{
			Location:        location,
			EventsPerSecond: cfg.Session.EventsPerSecond,
			EventsBurst:     cfg.Session.EventsBurst,
			AllowedOrigins:  cfg.Session.AllowedOrigins,
		},
		bookingMetrics,
		mainLogger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Настройка RabbitMQ слушателя, при выключенном RabbitMQ listener == nil
	liveUpdateService := live_update_service.NewLiveUpdateService(cacheAdapter, hub, mainLogger)
	listener, err := rabbitmq.NewLiveUpdateListener(liveUpdateService, cfg, mainLogger)
	if err != nil {
		logger.Error("app.rabbitmq.init_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	if err := listener.Start(ctx); err != nil {
		logger.Error("app.rabbitmq.start_failed", out.LogFields{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := listener.Stop(); err != nil {
			logger.Error("app.rabbitmq.stop_failed", out.LogFields{
				"error": err.Error(),
			})
		}
	}()

	// Настройка HTTP сервера
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.IsLocal() {
		router.Use(gin.Logger())
	}
	controller := http.NewBookingPageController(wsHandler, hub, gatherer, cfg)
	controller.RegisterRoutes(router)

	server := &nethttp.Server{
		Addr:              cfg.HTTP.Host + ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("app.http.starting", out.LogFields{
			"host": cfg.HTTP.Host,
			"port": cfg.HTTP.Port,
		})

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logger.Error("app.http.failed", out.LogFields{
				"error": err.Error(),
			})
			sigChan <- syscall.SIGTERM
		}
	}()

	sig := <-sigChan
	logger.Info("app.shutdown.initiated", out.LogFields{
		"signal":   sig.String(),
		"sessions": hub.SessionCount(),
	})

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	// Shutdown не ждет hijacked WebSocket-соединения, их закрывает hub
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("app.http.shutdown_failed", out.LogFields{
			"error": err.Error(),
		})
	}
	closed := hub.CloseAll()
	cancel()

	logger.Info("app.sessions.closed", out.LogFields{
		"sessions": closed,
	})

	logger.Info("app.shutdown.completed", out.LogFields{})
}
