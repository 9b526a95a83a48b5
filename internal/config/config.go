package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	PaymentDelay time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "threadvibe.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./threadvibe.log"
	}

	// Delay for the simulated card authorizer; keep it short in dev.
	delay := 2 * time.Second
	if ms := os.Getenv("PAYMENT_DELAY_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n >= 0 {
			delay = time.Duration(n) * time.Millisecond
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, PaymentDelay: delay}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s PAYMENT_DELAY=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.PaymentDelay)
	return cfg
}
