package main

import (
	"admin-chat-server/config"
	"admin-chat-server/internal/handler"
	"admin-chat-server/internal/repository"
	"admin-chat-server/internal/security"
	"admin-chat-server/internal/service"
	"admin-chat-server/internal/ws"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
)

// @title Admin-chat-server
// @version 1.0
// @description Бэкенд чата виджета: REST API администратора и WebSocket-ретрансляция сообщений

// @host localhost:8080

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка при закрытии БД: %v", err)
		}
	}()

	if err := db.InitSchema(ctx); err != nil {
		log.Fatalf("Ошибка инициализации схемы БД: %v", err)
	}

	redisClient, err := config.SetupRedis(&cfg.RedisConfig)
	if err != nil {
		log.Fatalf("Ошибка подключения к Redis: %v", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Printf("Ошибка при закрытии Redis: %v", err)
		}
	}()

	srv, router := config.SetupServer(cfg.ServerAddr)

	adminRepo := repository.NewAdminRepository(db)
	clientRepo := repository.NewClientRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, time.Duration(cfg.TTL.SettingsCache)*time.Second)

	jwtService := security.NewJWTService(&cfg.JWT)
	authService := service.NewAuthenticationService(adminRepo, jwtService, &cfg.Admin)
	chatService := service.NewChatService(adminRepo, clientRepo, messageRepo)
	settingsService := service.NewSettingsService(settingsRepo, cacheRepo)

	if err := authService.EnsureDefaultAdmin(ctx); err != nil {
		log.Fatalf("Ошибка создания администратора по умолчанию: %v", err)
	}

	authHandler := handler.NewAuthenticationHandler(authService, jwtService)
	chatHandler := handler.NewChatHandler(chatService)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	hub := ws.NewHub()
	wsServer := ws.NewServer(hub, chatService, jwtService)

	setupAuthRoutes(router, authHandler, jwtService, adminRepo)
	setupMessageRoutes(router, chatHandler, jwtService, adminRepo)
	setupSettingsRoutes(router, settingsHandler, jwtService, adminRepo)
	router.Get("/ws", wsServer.ServeWS)

	runServer(ctx, srv)
}

func setupAuthRoutes(r chi.Router, h *handler.AuthenticationHandler, jwtService *security.JWTService, adminRepo *repository.AdminRepository) {
	r.Route("/api/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, adminRepo))
			r.Get("/profile", h.Profile)
		})
		r.Group(func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/verify", h.VerifyToken)
			r.Post("/refresh", h.RefreshToken)
			r.Post("/logout", h.Logout)
		})
	})
}

func setupMessageRoutes(r chi.Router, h *handler.ChatHandler, jwtService *security.JWTService, adminRepo *repository.AdminRepository) {
	r.Route("/api/messages", func(r chi.Router) {
		r.Use(security.JWTMiddleware(jwtService, adminRepo))
		r.Get("/conversation", h.GetConversation)
		r.Get("/unread/{userId}", h.GetUnread)
		r.Get("/recent/{userId}", h.GetRecent)
		r.Post("/read", h.MarkRead)
		r.Delete("/{messageId}", h.DeleteMessage)
	})
}

func setupSettingsRoutes(r chi.Router, h *handler.SettingsHandler, jwtService *security.JWTService, adminRepo *repository.AdminRepository) {
	r.Route("/api/settings", func(r chi.Router) {
		// настройки читает сам виджет, эндпоинт без авторизации
		r.Get("/", h.GetSettings)

		r.Group(func(r chi.Router) {
			r.Use(security.JWTMiddleware(jwtService, adminRepo))
			r.Put("/socket", h.UpdateSocket)
			r.Put("/consent", h.UpdateConsent)
			r.Put("/colors", h.UpdateColors)
			r.Put("/question", h.UpdateQuestion)
			r.Put("/contact", h.UpdateContact)
		})
	})
}

func runServer(ctx context.Context, server *http.Server) {
	serverErrors := make(chan error, 1)
	go func() {
		log.Println("сервер запущен на " + server.Addr)
		serverErrors <- server.ListenAndServe()
	}()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			log.Fatalf("ошибка работы сервера: %v", err)
		}
	case sig := <-signalChannel:
		log.Printf("получен сигнал %v остановки работы сервера ", sig)
	}

	shutDownCtx, shutDownCancel := context.WithTimeout(ctx, 5*time.Second)
	defer shutDownCancel()

	if err := server.Shutdown(shutDownCtx); err != nil {
		log.Printf("ошибка при остановке сервера: %v", err)
	} else {
		log.Println("Сервер успешно остановлен")
	}
}
