package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/sandeshj07/event-management-backend/config"
	"github.com/sandeshj07/event-management-backend/database"
	"github.com/sandeshj07/event-management-backend/internal/auditlog"
	"github.com/sandeshj07/event-management-backend/internal/auth"
	"github.com/sandeshj07/event-management-backend/internal/category"
	"github.com/sandeshj07/event-management-backend/internal/coin"
	"github.com/sandeshj07/event-management-backend/internal/comment"
	"github.com/sandeshj07/event-management-backend/internal/event"
	"github.com/sandeshj07/event-management-backend/internal/message"
	"github.com/sandeshj07/event-management-backend/internal/notification"
	"github.com/sandeshj07/event-management-backend/internal/registration"
	"github.com/sandeshj07/event-management-backend/internal/wishlist"
	"github.com/sandeshj07/event-management-backend/routes"
	"github.com/sandeshj07/event-management-backend/utils"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := utils.InitRedis(); err != nil {
		log.Fatalf("redis init failed: %v", err)
	}

	utils.InitializeKafka()

	if err := utils.InitFirebase(); err != nil {
		log.Printf("firebase init failed, push notifications disabled: %v", err)
	}

	log.Println("running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&auditlog.AuditLog{},
		&category.EventCategory{},
		&event.Event{},
		&event.EventImage{},
		&event.EventAgenda{},
		&registration.EventMember{},
		&wishlist.WishListItem{},
		&comment.EventComment{},
		&message.AdminMessage{},
		&coin.UserCoin{},
		&notification.InAppNotification{},
		&notification.NotificationLog{},
		&notification.FCMDeviceToken{},
	); err != nil {
		log.Fatalf("auto-migrate failed: %v", err)
	}

	if err := auth.SeedAdminUser(db, cfg); err != nil {
		log.Fatalf("admin seed failed: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.Setup(router, cfg)

	log.Printf("listening on :%s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}
