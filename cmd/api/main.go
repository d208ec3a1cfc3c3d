package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"task-management/configs"
	v1 "task-management/internal/api/v1"
	"task-management/internal/api/v1/handlers"
	"task-management/internal/middleware"
	"task-management/internal/repository"
	"task-management/internal/service"
	"task-management/internal/token"
	myws "task-management/internal/websocket"
	"task-management/pkg/database"
	"task-management/pkg/logger"
)

func main() {
	// Load config
	cfg := configs.LoadConfig()

	// Inisialisasi logger
	logger.InitLoggers(cfg.LogDir)
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Inisialisasi database
	db := database.ConnectDB(cfg)
	defer db.Close()
	logger.SystemLogger.Info("Database Connected")

	// Buat tabel jika belum ada
	repository.CreateTableIfNotExists(db)

	// Inisialisasi Redis
	ctx := context.Background()
	redisClient := database.ConnectRedis(ctx, cfg)
	defer redisClient.Close()

	// ----- Wiring dependency ----- //
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	taskCache := repository.NewTaskCache(redisClient)

	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo, taskCache)

	// Secret key JWT bersifat process-wide: menggantinya membatalkan
	// semua token yang sudah diterbitkan
	tokenIssuer := token.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL)

	requireAuth := middleware.RequireAuth(tokenIssuer, userService)

	hub := myws.NewHub()
	go hub.Run()

	authHandler := handlers.NewAuthHandler(userService, tokenIssuer)
	taskHandler := handlers.NewTaskHandler(taskService, hub)

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Daftarkan route API
	v1.RegisterRoutes(app, authHandler, taskHandler, requireAuth)

	// WebSocket untuk feed aktivitas task
	app.Use("/ws", requireAuth, func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := &myws.Client{Conn: c}
		hub.Register <- client
		defer func() {
			hub.Unregister <- client
		}()
		for {
			// Klien hanya menerima event, pesan masuk diabaikan
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.AppPort))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.AppPort)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
