// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"disasterreport/model"
)

// User store backends.
const (
	UserStoreMemory = "memory"
	UserStoreMySQL  = "mysql"
	UserStoreSQLite = "sqlite"
)

// Config holds the configuration values for the application.
type Config struct {
	Port    string
	Variant model.Variant

	ReportStorePath string
	UploadDir       string

	PredictionURL     string
	PredictionTimeout time.Duration

	UserStore  string
	MySQLDSN   string
	SQLitePath string

	JWTSecret          string
	AdminTokenRequired bool
	AdminMobileNumbers []string

	FirebaseCredentials string
	FirestoreCollection string
	FCMTopic            string
	UrgentMinRank       int

	SummaryCron string
	CORSOrigins []string
}

// Load reads .env (when present) and the environment, and validates the result.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found or failed to load")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment.
func FromEnv() (Config, error) {
	timeoutSec, err := strconv.Atoi(get("PREDICTION_TIMEOUT_SECONDS", "30"))
	if err != nil || timeoutSec <= 0 {
		return Config{}, fmt.Errorf("invalid PREDICTION_TIMEOUT_SECONDS %q", os.Getenv("PREDICTION_TIMEOUT_SECONDS"))
	}
	minRank, err := strconv.Atoi(get("URGENT_MIN_RANK", "4"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid URGENT_MIN_RANK %q", os.Getenv("URGENT_MIN_RANK"))
	}

	cfg := Config{
		Port:                get("PORT", "8080"),
		Variant:             model.Variant(strings.ToLower(get("REPORT_VARIANT", string(model.VariantBasic)))),
		ReportStorePath:     get("REPORT_STORE_PATH", "data/reports.csv"),
		UploadDir:           get("UPLOAD_DIR", "uploads"),
		PredictionURL:       get("PREDICTION_URL", "http://localhost:5000/predict"),
		PredictionTimeout:   time.Duration(timeoutSec) * time.Second,
		UserStore:           strings.ToLower(get("USER_STORE", UserStoreMemory)),
		MySQLDSN:            os.Getenv("MYSQL_DSN"),
		SQLitePath:          get("SQLITE_PATH", "data/users.db"),
		JWTSecret:           os.Getenv("JWT_SECRET_KEY"),
		AdminTokenRequired:  get("ADMIN_TOKEN_REQUIRED", "") == "true",
		AdminMobileNumbers:  list(os.Getenv("ADMIN_MOBILE_NUMBERS")),
		FirebaseCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_1"),
		FirestoreCollection: get("FIRESTORE_COLLECTION", "Reports"),
		FCMTopic:            get("FCM_TOPIC", "urgent-reports"),
		UrgentMinRank:       minRank,
		SummaryCron:         os.Getenv("SUMMARY_CRON"),
		CORSOrigins:         list(os.Getenv("CORS_ORIGINS")),
	}

	if !cfg.Variant.Valid() {
		return Config{}, fmt.Errorf("invalid REPORT_VARIANT %q", cfg.Variant)
	}
	switch cfg.UserStore {
	case UserStoreMemory, UserStoreSQLite:
	case UserStoreMySQL:
		if cfg.MySQLDSN == "" {
			return Config{}, fmt.Errorf("missing env MYSQL_DSN for USER_STORE=mysql")
		}
	default:
		return Config{}, fmt.Errorf("invalid USER_STORE %q", cfg.UserStore)
	}
	if cfg.AdminTokenRequired && cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN_REQUIRED needs JWT_SECRET_KEY")
	}
	return cfg, nil
}

// IsAdmin reports whether the mobile number is granted the admin role.
func (c Config) IsAdmin(mobile string) bool {
	for _, m := range c.AdminMobileNumbers {
		if m == mobile {
			return true
		}
	}
	return false
}

// get returns the value of the environment variable k or def if not set.
func get(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// list splits a comma separated variable, dropping blanks.
func list(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
