package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"webresume_backend/database"
	"webresume_backend/internal/auth"
	"webresume_backend/internal/cache"
	"webresume_backend/internal/config"
	"webresume_backend/internal/cryptox"
	"webresume_backend/internal/email"
	"webresume_backend/internal/handlers"
	"webresume_backend/internal/imageprocessor"
	"webresume_backend/internal/logger"
	"webresume_backend/internal/middleware"
	"webresume_backend/internal/relay"
	"webresume_backend/internal/repositories"
	"webresume_backend/internal/routes"
	"webresume_backend/internal/services"
	"webresume_backend/internal/storage"
	"webresume_backend/internal/validator"
	"webresume_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Options - подмена внешних зависимостей (тесты). Пустые поля строятся из конфигурации.
type Options struct {
	Cache   cache.Cache
	Sender  relay.Sender
	Mailer  email.Provider
	Storage storage.Storage
}

// Server - собранное приложение
type Server struct {
	Router   *gin.Engine
	Services *services.ServiceContainer

	notifier *services.ContactNotifier
	closers  []io.Closer
}

// Shutdown дожидается фоновых доставок и закрывает внешние клиенты
func (s *Server) Shutdown() {
	if s.notifier != nil {
		s.notifier.Wait()
	}
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close resource", "error", err)
		}
	}
}

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	if cfg.Database.AutoMigrate {
		if err := database.AutoMigrate(gormDB); err != nil {
			logger.Fatal("AutoMigrate failed", "error", err)
		}
	}

	server, err := SetupRouter(cfg, gormDB, Options{})
	if err != nil {
		logger.Fatal("Failed to build application", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg, server.Services.AuthService); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", address))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	server.Shutdown()
	logger.Info("Server stopped")
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB, opts Options) (*Server, error) {
	ctx := context.Background()
	server := &Server{}

	// 1. Инфраструктура
	resumeCache := opts.Cache
	if resumeCache == nil {
		c, err := cache.New(ctx, cache.Config{
			Driver:          cfg.Cache.Driver,
			Namespace:       cfg.Cache.Namespace,
			DefaultTTL:      cfg.Cache.TTL,
			CleanupInterval: cfg.Cache.CleanupInterval,
			RedisAddr:       cfg.Cache.RedisAddr,
			RedisPassword:   cfg.Cache.RedisPassword,
			RedisDB:         cfg.Cache.RedisDB,
		})
		if err != nil {
			return nil, fmt.Errorf("init cache: %w", err)
		}
		resumeCache = c
		if closer, ok := c.(io.Closer); ok {
			server.closers = append(server.closers, closer)
		}
	}
	logger.Info("Cache initialized", "driver", cfg.Cache.Driver, "ttl", cfg.Cache.TTL)

	storageInstance := opts.Storage
	if storageInstance == nil {
		s, err := storage.NewStorage(ctx, storage.Config{
			Type:       cfg.Storage.Type,
			BasePath:   cfg.Storage.BasePath,
			BaseURL:    cfg.Storage.BaseURL,
			Bucket:     cfg.Storage.Bucket,
			Region:     cfg.Storage.Region,
			AccessKey:  cfg.Storage.AccessKey,
			SecretKey:  cfg.Storage.SecretKey,
			Endpoint:   cfg.Storage.Endpoint,
			PublicRead: cfg.Storage.PublicRead,
		})
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		storageInstance = s
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	var cipher *cryptox.Cipher
	if cfg.Encryption.Key != "" {
		c, err := cryptox.NewCipher(cfg.Encryption.Key)
		if err != nil {
			return nil, fmt.Errorf("init cipher: %w", err)
		}
		cipher = c
	} else {
		logger.Warn("ENCRYPTION_KEY is not set: profile telegram tokens cannot be stored")
	}

	tokens := auth.NewTokenManager(jwtSecret(cfg), time.Duration(cfg.JWT.TTL)*time.Minute)

	// 2. Сервисы
	container := initializeServices(cfg, gormDB, opts, resumeCache, storageInstance, cipher, tokens, server)
	server.Services = container

	// 3. Хэндлеры и роутер
	appHandlers := initializeHandlers(container)
	server.Router = initializeGinRouter(cfg, gormDB, tokens)

	routeOpts := routes.Options{Swagger: !cfg.IsProduction()}
	if local, ok := storageInstance.(*storage.LocalStorage); ok {
		routeOpts.MediaDir = local.BasePath()
	}
	routes.RegisterRoutes(server.Router, appHandlers, routeOpts)

	return server, nil
}

func initializeServices(
	cfg *config.Config,
	gormDB *gorm.DB,
	opts Options,
	resumeCache cache.Cache,
	storageInstance storage.Storage,
	cipher *cryptox.Cipher,
	tokens *auth.TokenManager,
	server *Server,
) *services.ServiceContainer {
	// --- Репозитории ---
	userRepo := repositories.NewUserRepository()
	resumeRepo := repositories.NewResumeRepository()
	projectRepo := repositories.NewProjectRepository()
	messageRepo := repositories.NewMessageRepository()
	profileRepo := repositories.NewProfileRepository()

	// --- Уведомления ---
	sender := opts.Sender
	if sender == nil {
		telegram := relay.NewTelegramSender(cfg.Telegram.APIEndpoint, cfg.Telegram.Timeout)
		if cfg.Telegram.SelfCheck && cfg.Telegram.BotToken != "" {
			go selfCheck(telegram, cfg.Telegram.BotToken)
		}
		sender = telegram
	}
	destinations := services.NewProfileDestinationSource(gormDB, profileRepo, cipher, relay.Destination{
		BotToken: cfg.Telegram.BotToken,
		ChatID:   cfg.Telegram.ChatID,
		Username: cfg.Telegram.Username,
	})
	contactRelay := relay.New(sender, destinations, relay.WithTimeout(cfg.Telegram.Timeout))

	mailer, notifyTo := initializeMailer(cfg, opts)
	notifier := services.NewContactNotifier(contactRelay, mailer, notifyTo, cfg.Telegram.Mode)
	server.notifier = notifier

	images := imageprocessor.NewProcessor(cfg.Upload.ImageQuality, cfg.Upload.ImageMaxSide)

	return &services.ServiceContainer{
		AuthService:    services.NewAuthService(userRepo, tokens),
		ResumeService:  services.NewResumeService(resumeRepo, resumeCache, cfg.Cache.TTL),
		ProjectService: services.NewProjectService(projectRepo, storageInstance, images, cfg.Upload.MaxSize),
		MessageService: services.NewMessageService(messageRepo, notifier),
		ProfileService: services.NewProfileService(profileRepo, cipher, storageInstance, cfg.Upload.MaxSize),
	}
}

// initializeMailer - копия заявок на почту включается только явно
func initializeMailer(cfg *config.Config, opts Options) (email.Provider, []string) {
	if cfg.Email.NotifyTo == "" {
		return nil, nil
	}
	notifyTo := []string{cfg.Email.NotifyTo}
	if opts.Mailer != nil {
		return opts.Mailer, notifyTo
	}
	if !cfg.Email.Enabled {
		return nil, nil
	}

	provider := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	}, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Warn("Email copy disabled: invalid SMTP configuration", "error", err)
		return nil, nil
	}
	logger.Info("Email copy of contact messages enabled", "to", cfg.Email.NotifyTo)
	return provider, notifyTo
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, container.AuthService),
		ResumeHandler:  handlers.NewResumeHandler(baseHandler, container.ResumeService),
		ProjectHandler: handlers.NewProjectHandler(baseHandler, container.ProjectService),
		MessageHandler: handlers.NewMessageHandler(baseHandler, container.MessageService),
		ContactHandler: handlers.NewContactHandler(baseHandler, container.MessageService),
		ProfileHandler: handlers.NewProfileHandler(baseHandler, container.ProfileService),
		HealthHandler:  handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, tokens *auth.TokenManager) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	apperrors.SetDebug(!cfg.IsProduction())

	trusted := auth.TrustedHeader{
		Enabled: cfg.Auth.TrustedHeader.Enabled,
		Name:    cfg.Auth.TrustedHeader.Name,
		Value:   cfg.Auth.TrustedHeader.Value,
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins, trusted.Name))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.Identify(tokens, trusted))
	return router
}

func selfCheck(sender *relay.TelegramSender, token string) {
	name, err := sender.SelfCheck(token)
	if err != nil {
		logger.Warn("Telegram bot self-check failed", "error", err)
		return
	}
	logger.Info("Telegram bot is reachable", "bot", name)
}

// jwtSecret: без JWT_SECRET вне production генерируем случайный (токены не переживут рестарт)
func jwtSecret(cfg *config.Config) string {
	if cfg.JWT.Secret != "" {
		return cfg.JWT.Secret
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		logger.Fatal("Failed to generate JWT secret", "error", err)
	}
	logger.Warn("JWT_SECRET is not set, using a random secret for this process")
	return hex.EncodeToString(buf)
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config, authService services.AuthService) error {
	admin := cfg.FirstAdmin
	if admin.Username == "" || admin.Password == "" {
		logger.Warn("FIRST_ADMIN_USERNAME or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	created, err := authService.EnsureAdmin(context.Background(), db, admin.Username, admin.Email, admin.Password)
	if err != nil {
		return err
	}
	if created {
		logger.Info("Created first admin user", "username", admin.Username)
	} else {
		logger.Info("Admin user already exists. Skipping creation.", "username", admin.Username)
	}
	return nil
}
