package config

import (
	"log"
	"os"
)

type Config struct {
	Port      string
	DBDSN     string
	LogFile   string
	FilesDir  string
	RateBase  string
	RateQuote string
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "bytebazaar.db"
	} // sqlite file in project root
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./bytebazaar.log"
	}
	files := os.Getenv("FILES_DIR")
	if files == "" {
		// Delivery payloads live here; the upload subsystem writes them,
		// the download route only resolves stored file keys against this root.
		files = "./files"
	}
	base := os.Getenv("RATE_BASE")
	if base == "" {
		base = "USD"
	}
	quote := os.Getenv("RATE_QUOTE")
	if quote == "" {
		quote = "EUR"
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, FilesDir: files, RateBase: base, RateQuote: quote}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s FILES_DIR=%s RATE=%s/%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.FilesDir, cfg.RateBase, cfg.RateQuote)
	return cfg
}
