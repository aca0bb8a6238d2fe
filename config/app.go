package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName    string
	Port       string
	Env        string
	Debug      bool
	BackendURL string
	StorePath  string

	// Search tuning. Product search settles faster than customer search
	// because barcode scanners emit the full code in one burst.
	ProductDebounce  time.Duration
	CustomerDebounce time.Duration
	ProductMinQuery  int
	CustomerMinQuery int
	SnapshotLimit    int
	SnapshotTTL      time.Duration
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:          GetEnv("APP_NAME", "Meezy POS"),
			Port:             os.Getenv("PORT"),
			Env:              os.Getenv("APP_ENV"),
			Debug:            os.Getenv("DEBUG") == "true",
			BackendURL:       GetEnv("BACKEND_URL", "http://localhost:8000"),
			StorePath:        GetEnv("MEEZY_STORE", "meezy-pos.db"),
			ProductDebounce:  envMillis("PRODUCT_DEBOUNCE_MS", 300),
			CustomerDebounce: envMillis("CUSTOMER_DEBOUNCE_MS", 500),
			ProductMinQuery:  2,
			CustomerMinQuery: 3,
			SnapshotLimit:    10000,
			SnapshotTTL:      30 * time.Second,
		}
	})
}

func envMillis(key string, def int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Duration(def) * time.Millisecond
}
