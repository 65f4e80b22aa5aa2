package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBDSN       string
	JWTSecret   string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	LogFile     string
	PageSizeMax int
}

func Load() Config {
	// Local .env is optional; environment wins in deployments.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "atelier.db" // sqlite file in project root
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-secret-change-me"
		log.Printf("[config] JWT_SECRET not set; using insecure dev default")
	}

	cfg := Config{
		Port:        port,
		DBDSN:       dsn,
		JWTSecret:   secret,
		AccessTTL:   time.Duration(envInt("ACCESS_TTL_MIN", 30)) * time.Minute,
		RefreshTTL:  time.Duration(envInt("REFRESH_TTL_MIN", 7*24*60)) * time.Minute,
		LogFile:     os.Getenv("LOG_FILE"),
		PageSizeMax: envInt("PAGE_SIZE_MAX", 100),
	}
	log.Printf("[config] PORT=%s DB_DSN=%s ACCESS_TTL=%s REFRESH_TTL=%s PAGE_SIZE_MAX=%d",
		cfg.Port, cfg.DBDSN, cfg.AccessTTL, cfg.RefreshTTL, cfg.PageSizeMax)
	return cfg
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("[config] ignoring bad %s=%q", key, v)
		return def
	}
	return n
}
