package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"classifieds-portal/internal/config"
	"classifieds-portal/internal/database"
	"classifieds-portal/internal/handlers"
	"classifieds-portal/internal/logger"
	"classifieds-portal/internal/storage"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		appConfig = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	zlog, err := logger.New(appConfig.Logging.Level, appConfig.Logging.Encoding)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	db, err := openDatabase(appConfig)
	if err != nil {
		zlog.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		zlog.Fatalw("failed to migrate schema", "error", err)
	}
	zlog.Infow("database ready", "type", appConfig.Database.Type)

	images, err := storage.NewImageStore(getEnv("IMAGES_DIR", appConfig.Images.Dir))
	if err != nil {
		zlog.Fatalw("failed to prepare image storage", "error", err)
	}

	r := handlers.NewRouter(db, images, zlog,
		appConfig.CORS.AllowedOrigins, appConfig.Server.RequestTimeout())

	port := getEnv("PORT", strconv.Itoa(appConfig.Server.Port))
	zlog.Infow("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		zlog.Fatalw("server exited", "error", err)
	}
}

func openDatabase(cfg *config.Config) (*database.GormDB, error) {
	dbType := getEnv("DB_TYPE", cfg.Database.Type)

	switch dbType {
	case "mysql":
		mysqlCfg := cfg.Database.MySQL
		return database.NewMySQL(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "localhost"),
			getEnvOrConfig(portString(mysqlCfg.Port), "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "classifieds"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", ""),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "classifieds"),
		)
	case "postgres":
		pgCfg := cfg.Database.Postgres
		return database.NewPostgres(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "localhost"),
			getEnvOrConfig(portString(pgCfg.Port), "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "classifieds"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", ""),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "classifieds"),
			pgCfg.SSLMode,
		)
	}
	return nil, fmt.Errorf("unsupported database type %q", dbType)
}

func portString(port int) string {
	if port <= 0 {
		return ""
	}
	return strconv.Itoa(port)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvOrConfig prefers the config value, then the environment, then the
// hard default.
func getEnvOrConfig(configValue, envKey, fallback string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, fallback)
}
