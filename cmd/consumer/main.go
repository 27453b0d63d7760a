package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/samber/do"
	"github.com/serroba/hitrelay/internal/container"
	"github.com/serroba/hitrelay/internal/dispatch"
	"go.uber.org/zap"
)

func main() {
	opts := &container.Options{
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		Topic:         getEnv("HIT_TOPIC", dispatch.TopicHitAccepted),
		ConsumerGroup: getEnv("CONSUMER_GROUP", "hit-dispatchers"),
		Workers:       getIntEnv("WORKERS", 1),
		TrackingID:    getEnv("TRACKING_ID", ""),
		CollectorURL:  getEnv("COLLECTOR_URL", ""),
		UserAgent:     getEnv("MP_USER_AGENT", ""),
		Debug:         getBoolEnv("MP_DEBUG"),
		AcceptPixel:   getBoolEnv("MP_ACCEPT_PIXEL"),
	}

	injector := do.New()
	do.ProvideValue(injector, opts)
	container.LoggerPackage(injector)
	container.RedisPackage(injector)
	container.MeasurementPackage(injector)
	container.WorkerPackage(injector)

	logger := do.MustInvoke[*zap.Logger](injector)

	group, err := do.Invoke[*dispatch.Group](injector)
	if err != nil {
		logger.Fatal("failed to build dispatch workers", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())

	if err := group.Start(ctx); err != nil {
		logger.Fatal("failed to start dispatch workers", zap.Error(err))
	}

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")
	cancel()

	if err := injector.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return defaultValue
}

func getBoolEnv(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))

	return err == nil && v
}

func getIntEnv(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}

	return v
}
