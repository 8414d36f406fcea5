package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"nearchat/backend/internal/api/handler"
	"nearchat/backend/internal/chathub"
	"nearchat/backend/internal/config"
	"nearchat/backend/internal/localization"
	"nearchat/backend/internal/models"
	"nearchat/backend/internal/storage"
)

func main() {
	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.WithField("err", err).Fatal("failed to connect to postgres")
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Message{},
		&models.Friendship{},
		&models.FriendRequest{},
	); err != nil {
		logrus.WithField("err", err).Fatal("database migration failed")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store := storage.NewStorageService(db, rdb)
	if err := rdb.Ping(store.Ctx).Err(); err != nil {
		logrus.WithField("err", err).Fatal("failed to connect to redis")
	}

	hub := chathub.NewManagerService(store)
	if loc, err := localization.New(cfg.LocalesDir); err == nil {
		hub.SetLocale(loc, cfg.Language)
	} else {
		logrus.WithFields(logrus.Fields{"dir": cfg.LocalesDir, "err": err}).
			Warn("falling back to built-in messages")
	}
	go hub.Run()
	hub.StartPubSubListener()

	go func() {
		ticker := time.NewTicker(config.CleanupSweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			hub.Handshake.CleanupExpired()
		}
	}()

	h := handler.NewHandler(hub, store)

	router := gin.Default()
	router.GET("/health", h.Health)
	router.GET("/ws", h.ServeWS)
	router.GET("/rooms/:roomId/status", h.RoomStatus)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		// Zero: responses on /ws outlive any sensible write deadline.
		WriteTimeout: config.WriteTimeout,
	}

	logrus.WithField("port", cfg.Port).Info("server listening")
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithField("err", err).Fatal("server stopped")
	}
}
