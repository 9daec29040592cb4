// Package main is the entry point for the moneta API server.
// Multi-tenant architecture: database per tenant.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"moneta/internal/core/tenant"
	"moneta/internal/domain/posting"
	v1 "moneta/internal/infrastructure/http/v1"
	"moneta/pkg/logger"
)

const version = "0.3.0"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "development") == "development",
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	log.Info("starting moneta server")

	// --- Meta database (tenant registry) ---
	metaDSN := mustEnv("META_DATABASE_URL")
	metaPool, err := pgxpool.New(ctx, metaDSN)
	if err != nil {
		log.Fatalw("failed to connect to meta database", "error", err)
	}
	defer metaPool.Close()

	if err := metaPool.Ping(ctx); err != nil {
		log.Fatalw("failed to ping meta database", "error", err)
	}
	log.Info("meta database connection established")

	// --- Tenant registry and pool manager ---
	registry := tenant.NewRegistry(metaPool)

	managerCfg := tenant.ManagerConfig{
		DBUser:     mustEnv("TENANT_DB_USER"),
		DBPassword: mustEnv("TENANT_DB_PASSWORD"),
		SSLMode:    getEnv("TENANT_DB_SSLMODE", "disable"),
	}
	if maxConns := getEnvInt("TENANT_MAX_CONNS_PER_POOL", 10); maxConns > 0 {
		managerCfg.MaxConnsPerTenant = int32(maxConns)
	}
	if idleTimeout := getEnvDuration("TENANT_POOL_IDLE_TIMEOUT", 15*time.Minute); idleTimeout > 0 {
		managerCfg.IdleTimeout = idleTimeout
	}

	tenantManager := tenant.NewManager(managerCfg, registry, log.SugaredLogger)
	defer tenantManager.Close()

	log.Infow("tenant manager initialized",
		"max_conns_per_tenant", managerCfg.MaxConnsPerTenant,
		"idle_timeout", managerCfg.IdleTimeout,
	)

	// --- Posting guard rules ---
	guardRules, err := loadGuardRules(getEnv("GUARD_RULES_FILE", ""))
	if err != nil {
		log.Fatalw("failed to load guard rules", "error", err)
	}
	if len(guardRules) > 0 {
		log.Infow("posting guard rules loaded", "count", len(guardRules))
	}

	// --- Router ---
	router, err := v1.NewRouter(v1.RouterConfig{
		Logger:         log,
		TenantRegistry: registry,
		TenantManager:  tenantManager,
		MetaPool:       metaPool,
		GuardRules:     guardRules,
		Version:        version,
	})
	if err != nil {
		log.Fatalw("failed to build router", "error", err)
	}

	// --- HTTP server ---
	port := getEnv("APP_PORT", "8080")
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", port, "version", version)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
}

// loadGuardRules reads posting guard rules from a JSON file:
// an array of {"name": ..., "expression": ...} objects.
func loadGuardRules(path string) ([]posting.Rule, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var rules []posting.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rules, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func mustEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		fmt.Printf("required environment variable %s not set\n", key)
		os.Exit(1)
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
