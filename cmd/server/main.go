package main

import (
	"time"

	"github.com/YannisFouzi/blind-test-sub001/internal/config"
	"github.com/YannisFouzi/blind-test-sub001/internal/database"
	"github.com/YannisFouzi/blind-test-sub001/internal/game"
	"github.com/YannisFouzi/blind-test-sub001/internal/handlers"
	"github.com/YannisFouzi/blind-test-sub001/internal/lobby"
	"github.com/YannisFouzi/blind-test-sub001/internal/middleware"
	"github.com/YannisFouzi/blind-test-sub001/internal/services"
	"github.com/YannisFouzi/blind-test-sub001/internal/ws"

	_ "github.com/YannisFouzi/blind-test-sub001/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Blind Test API
// @version         1.0
// @description     Real-time multiplayer music quiz server
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db := database.Connect(cfg)
	database.AutoMigrate(db)

	hub := ws.NewHub()

	notifier := lobby.NewNotifier(cfg.LobbyURL)
	if !notifier.Enabled() {
		logrus.Info("LOBBY_URL not set, lobby notifications disabled")
	}

	authService := services.NewAuthService(db, cfg)
	catalogService := services.NewCatalogService(db)

	manager := game.NewManager(game.Deps{
		Catalog:     catalogService,
		Broadcaster: hub,
		Notifier:    notifier,
		MaxSongs:    cfg.MaxSongsPerGame,
	}, time.Duration(cfg.RoomGraceSec)*time.Second)
	manager.StartJanitor()
	defer manager.Close()

	authHandler := handlers.NewAuthHandler(authService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	roomsHandler := handlers.NewRoomsHandler(manager, cfg.PublicBaseURL)
	playHandler := handlers.NewPlayHandler(manager, hub)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/room/:code", playHandler.HandleRoomWebSocket)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		api.GET("/universes", catalogHandler.ListUniverses)
		api.GET("/universes/:id/works", catalogHandler.ListWorks)
		api.GET("/universes/:id/songs", catalogHandler.ListSongs)

		catalog := api.Group("/catalog")
		catalog.Use(middleware.JWTAuth(authService))
		{
			catalog.POST("/import", catalogHandler.Import)
			catalog.GET("/export", catalogHandler.Export)
		}

		api.GET("/rooms", roomsHandler.ListRooms)
		api.GET("/rooms/:code/qr", roomsHandler.RoomQR)
	}

	logrus.Infof("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		logrus.WithError(err).Fatal("failed to start server")
	}
}
