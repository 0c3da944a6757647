// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"carsales-service/internal/config"
	"carsales-service/internal/db"
	"carsales-service/internal/domain/event"
	authHandler "carsales-service/internal/handlers/auth"
	healthHandler "carsales-service/internal/handlers/health"
	imageHandler "carsales-service/internal/handlers/image"
	messageHandler "carsales-service/internal/handlers/message"
	partyHandler "carsales-service/internal/handlers/party"
	saleHandler "carsales-service/internal/handlers/sale"
	vehicleHandler "carsales-service/internal/handlers/vehicle"
	wsHandler "carsales-service/internal/handlers/websocket"
	"carsales-service/internal/middleware"
	"carsales-service/internal/pkg/events"
	"carsales-service/internal/pkg/jwt"
	"carsales-service/internal/pkg/session"
	"carsales-service/internal/pkg/storage"
	"carsales-service/internal/repository/gormrepo"
	authUsecase "carsales-service/internal/service/auth"
	imageUsecase "carsales-service/internal/service/image"
	messageUsecase "carsales-service/internal/service/message"
	partyUsecase "carsales-service/internal/service/party"
	saleUsecase "carsales-service/internal/service/sale"
	vehicleUsecase "carsales-service/internal/service/vehicle"
	"carsales-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Server struct {
	cfg    config.AppConfig
	logger *zap.Logger
}

func NewServer(cfg config.AppConfig) (*Server, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		gin.SetMode(gin.ReleaseMode)
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return &Server{cfg: cfg, logger: logger}, nil
}

func (s *Server) Logger() *zap.Logger { return s.logger }

// Start runs the HTTP server until ctx is cancelled, then shuts down
// gracefully and releases every connection it opened.
func (s *Server) Start(ctx context.Context) error {
	logger := s.logger
	defer func() { _ = logger.Sync() }()

	// ----- Database -----
	gdb, err := db.Connect(s.cfg.DB, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			logger.Warn("failed to close database", zap.Error(err))
		}
	}()
	if err := db.AutoMigrate(gdb); err != nil {
		return err
	}

	// ----- Redis (optional) -----
	var redisClient redis.UniversalClient
	if len(s.cfg.RedisAddrs) > 0 {
		redisClient, err = db.NewRedisClient(db.RedisConfig{
			Addresses: s.cfg.RedisAddrs,
			Password:  s.cfg.RedisPass,
			DB:        s.cfg.RedisDB,
			PoolSize:  10,
		})
		if err != nil {
			logger.Warn("redis unavailable, revocation checks use the database only", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info("redis connected", zap.Strings("addrs", s.cfg.RedisAddrs))
		}
	}

	// ----- RabbitMQ (optional) -----
	var broker event.Publisher
	if s.cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewAMQPPublisher(s.cfg.AMQPURL, s.cfg.AMQPExchange, logger)
		if err != nil {
			logger.Warn("rabbitmq unavailable, events go to websocket clients only", zap.Error(err))
		} else {
			defer amqpPublisher.Close()
			broker = amqpPublisher
		}
	}

	appCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine, err := s.buildEngine(appCtx, gdb, redisClient, broker)
	if err != nil {
		return err
	}

	// ----- Start HTTP -----
	srv := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: engine,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	logger.Info("server stopped gracefully")
	return nil
}

// buildEngine wires repositories, services and handlers. Background work
// (websocket hub, token cleanup) stops when ctx is done. redisClient and
// broker may be nil.
func (s *Server) buildEngine(ctx context.Context, gdb *gorm.DB, redisClient redis.UniversalClient, broker event.Publisher) (*gin.Engine, error) {
	logger := s.logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Repositories -----
	userRepo := gormrepo.NewUserRepository(gdb)
	tokenRepo := gormrepo.NewTokenRepository(gdb)
	carRepo := gormrepo.NewCarRepository(gdb)
	motorcycleRepo := gormrepo.NewMotorcycleRepository(gdb)
	addressRepo := gormrepo.NewAddressRepository(gdb)
	clientRepo := gormrepo.NewClientRepository(gdb)
	employeeRepo := gormrepo.NewEmployeeRepository(gdb)
	saleRepo := gormrepo.NewSaleRepository(gdb)
	messageRepo := gormrepo.NewMessageRepository(gdb)
	imageRepo := gormrepo.NewImageRepository(gdb)

	// ----- Session Manager -----
	sessionManager := session.NewManager(redisClient, tokenRepo, logger)
	go sessionManager.RunCleanup(ctx, s.cfg.TokenCleanupInterval)

	// ----- WebSocket Hub & Events -----
	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	sinks := []event.Publisher{hub}
	if broker != nil {
		sinks = append(sinks, broker)
	}
	publisher := events.NewLogged(events.NewFanout(sinks...), logger)

	// ----- Upload Store -----
	store, err := storage.NewLocalStore(s.cfg.UploadDir, s.cfg.UploadBaseURL, logger)
	if err != nil {
		return nil, err
	}

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(userRepo, jwtManager, sessionManager, hub, logger)
	carService := vehicleUsecase.NewCarService(carRepo, store, logger)
	motorcycleService := vehicleUsecase.NewMotorcycleService(motorcycleRepo, store, logger)
	catalog := vehicleUsecase.NewCatalog(carService, motorcycleService)
	addressService := partyUsecase.NewAddressService(addressRepo, logger)
	clientService := partyUsecase.NewClientService(clientRepo, addressService, logger)
	employeeService := partyUsecase.NewEmployeeService(employeeRepo, addressService, logger)
	messageService := messageUsecase.NewMessageService(messageRepo, employeeService, catalog, publisher, logger)
	imageService := imageUsecase.NewImageService(imageRepo, catalog, store, logger)

	var updaters []saleUsecase.VehicleStatusUpdater
	for _, u := range catalog.Updaters() {
		updaters = append(updaters, u)
	}
	saleService := saleUsecase.NewSaleService(saleRepo, publisher, logger, updaters...)

	// ----- Default Admin -----
	if err := authService.EnsureDefaultAdmin(ctx, s.cfg.DefaultAdminEmail, s.cfg.DefaultAdminPassword); err != nil {
		// Don't fail startup, just log the error
		logger.Error("failed to ensure default admin", zap.Error(err))
	}

	// ----- Middlewares -----
	limiterStore, err := middleware.NewLimiterStore(redisClient, "login")
	if err != nil {
		return nil, fmt.Errorf("failed to build rate limit store: %w", err)
	}
	loginLimiter, err := middleware.RateLimit(s.cfg.LoginRate, limiterStore, logger)
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(s.cfg.CORSOrigins),
	)

	// ----- Router -----
	handlers := &Handlers{
		HealthHandler:     healthHandler.NewHealthHandler(gdb, redisClient),
		AuthHandler:       authHandler.NewAuthHandler(authService, logger),
		CarHandler:        vehicleHandler.NewCarHandler(carService),
		MotorcycleHandler: vehicleHandler.NewMotorcycleHandler(motorcycleService),
		AddressHandler:    partyHandler.NewAddressHandler(addressService),
		ClientHandler:     partyHandler.NewClientHandler(clientService),
		EmployeeHandler:   partyHandler.NewEmployeeHandler(employeeService),
		SaleHandler:       saleHandler.NewSaleHandler(saleService),
		MessageHandler:    messageHandler.NewMessageHandler(messageService),
		ImageHandler:      imageHandler.NewImageHandler(imageService, logger),
		WSHandler:         wsHandler.NewWebSocketHandler(hub, s.cfg.CORSOrigins, logger),
		AuthMiddleware:    middleware.NewAuthMiddleware(authService),
		LoginLimiter:      loginLimiter,
	}
	SetupRouter(engine, handlers, store.Root())

	return engine, nil
}
