package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"labelverse/contributor-portal/portal-console/internal/config"
	"labelverse/contributor-portal/portal-console/internal/stubgateway"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("PORTAL_CONFIG"))
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	gin.SetMode(gin.ReleaseMode)
	server := stubgateway.NewServer(logger)

	srv := &http.Server{
		Addr:    cfg.Stub.ListenAddr,
		Handler: server.Router(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("listen: %s", cfg.Stub.ListenAddr), zap.Error(err))
		}
	}()

	logger.Info("Stub gateway started", zap.String("addr", cfg.Stub.ListenAddr))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down stub gateway...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Stub gateway forced to shutdown", zap.Error(err))
	}

	logger.Info("Stub gateway exiting")
}
