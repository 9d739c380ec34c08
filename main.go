package main

import (
	"log/slog"
	"os"

	"contas/pkg/logx"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)

func main() {
	// Load ./.env if present before reading vars; existing env wins.
	_ = godotenv.Load()

	logger := logx.New(slog.LevelInfo)
	slog.SetDefault(logger)

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-insecure-secret-change" // development fallback
	}
	jwtSecret = []byte(secret)

	// Lightweight migrate command: `./contas migrate` runs AutoMigrate and
	// seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB()
		logger.Info("migration and seeding completed")
		return
	}

	initDB()

	r := gin.New()
	r.Use(logx.Middleware(logger), gin.Recovery())
	setupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}
	if err := r.Run(":" + port); err != nil {
		logger.Error("server exited", "error", err)
		os.Exit(1)
	}
}
