package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/LemonieOff/ARDeco-server-sub001/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/cache"
	"github.com/LemonieOff/ARDeco-server-sub001/config"
	authControllers "github.com/LemonieOff/ARDeco-server-sub001/controllers/auth"
	"github.com/LemonieOff/ARDeco-server-sub001/invoice"
	"github.com/LemonieOff/ARDeco-server-sub001/logger"
	"github.com/LemonieOff/ARDeco-server-sub001/mail"
	"github.com/LemonieOff/ARDeco-server-sub001/middleware"
	"github.com/LemonieOff/ARDeco-server-sub001/models"
	"github.com/LemonieOff/ARDeco-server-sub001/routes"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load("")

	l, closeLogger := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		JSON:       cfg.Log.JSON,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	defer closeLogger()

	if cfg.JWT.Secret == "" {
		l.Fatal("JWT secret is not configured")
	}

	db := initDatabase(cfg, l)
	if cfg.DB.AutoMigrate {
		if err := autoMigrate(db); err != nil {
			l.Fatal("auto-migrate failed", zap.Error(err))
		}
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.TTLHours) * time.Hour,
	}
	cookieOpts := authControllers.CookieOptions{
		Name:   cfg.JWT.CookieName,
		Secure: cfg.JWT.CookieHTTPS,
		MaxAge: jwter.TTL,
	}

	var mailer mail.Mailer = mail.Noop{}
	if cfg.SMTP.Host != "" {
		mailer = mail.NewSMTP(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	var verifier auth.GoogleVerifier
	if cfg.Google.ProjectID != "" {
		v, err := auth.NewFirebaseVerifier(context.Background(), cfg.Google.ProjectID, cfg.Google.CredentialsFile)
		if err != nil {
			l.Fatal("firebase init failed", zap.Error(err))
		}
		verifier = v
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.Recovery(l),
		middleware.RequestID(),
		logger.AccessLog(l),
		middleware.Metrics(),
		middleware.RateLimitPerIP(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst),
	)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Profile pictures are a fixed enumeration of static files (ids 0-4).
	r.Static("/profile_pictures", cfg.Files.ProfilePictureDir)

	routes.SetupRoutes(r, routes.Deps{
		DB:       db,
		JWTer:    jwter,
		Cookie:   cookieOpts,
		Mailer:   mailer,
		Renderer: invoice.NewRenderer(cfg.Files.InvoiceDir),
		Verifier: verifier,
		Cache:    cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
		Logger:   l,
	})

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTP.IdleTimeoutSec) * time.Second,
	}
	l.Info("server starting", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil {
		l.Fatal("server stopped", zap.Error(err))
	}
}

func initDatabase(cfg *config.Config, l *zap.Logger) *gorm.DB {
	var dial gorm.Dialector
	switch cfg.DB.Driver {
	case "sqlite":
		dial = sqlite.Open(cfg.DB.DSN)
	default:
		dial = postgres.Open(cfg.DB.DSN)
	}

	lvl := gormlogger.Warn
	switch cfg.DB.LogLevel {
	case "silent":
		lvl = gormlogger.Silent
	case "error":
		lvl = gormlogger.Error
	case "info":
		lvl = gormlogger.Info
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(lvl),
		TranslateError: true,
	})
	if err != nil {
		l.Fatal("database connection failed", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		l.Fatal("database handle unavailable", zap.Error(err))
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.DB.ConnMaxLifetimeMin) * time.Minute)
	return db
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSettings{},
		&models.Furniture{},
		&models.FurnitureColor{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.GalleryItem{},
		&models.GalleryLike{},
		&models.GalleryComment{},
		&models.GalleryReport{},
		&models.FavoriteFurniture{},
		&models.FavoriteGallery{},
		&models.Feedback{},
		&models.Changelog{},
	)
}
