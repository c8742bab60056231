package config

import (
	"encoding/json"
	"net/http"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/cityfix/cityfix-api/models"
)

// Storage backends understood by STORAGE_TYPE
const (
	StorageLocal      = "local"
	StorageCloudinary = "cloudinary"
)

// Config holds the project config values
type Config struct {
	URL          string
	DatabaseName string
	BaseURL      string
	Port         string
	Env          string

	StorageType      string
	UploadDir        string
	MaxFileSize      int64
	CloudinaryURL    string
	CloudinaryFolder string

	JWTSecret string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	SendgridAPIKey  string
	DigestToEmail   string
	DigestFromEmail string
	DigestCron      string
}

// New sets up all config related services
func New() *Config {
	env := os.Getenv("ENV")
	if env != "production" {
		// a missing .env is fine, the environment may already be populated
		_ = godotenv.Load()
		env = os.Getenv("ENV")
	}

	//setup zap logger and replace default logger
	logger, err := setLogger(env)
	if err != nil {
		logger = zap.NewExample()
	}
	defer logger.Sync()
	_ = zap.ReplaceGlobals(logger)

	return &Config{
		URL:          os.Getenv("DB_URI"),
		DatabaseName: getEnv("DB_NAME", "cityfix"),
		BaseURL:      getEnv("BASE_URL", getEnv("API_URL", "http://localhost:3000")),
		Port:         getEnv("PORT", "3000"),
		Env:          env,

		StorageType:      getEnv("STORAGE_TYPE", StorageLocal),
		UploadDir:        getEnv("UPLOAD_DIR", "uploads"),
		MaxFileSize:      getEnvInt64("MAX_FILE_SIZE", 5242880),
		CloudinaryURL:    os.Getenv("CLOUDINARY_URL"),
		CloudinaryFolder: getEnv("CLOUDINARY_FOLDER", "cityfix"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    getEnv("KAFKA_TOPIC", "cityfix.reports"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		SendgridAPIKey:  os.Getenv("SENDGRID_API_KEY"),
		DigestToEmail:   os.Getenv("DIGEST_TO_EMAIL"),
		DigestFromEmail: getEnv("DIGEST_FROM_EMAIL", "no-reply@cityfix.app"),
		DigestCron:      getEnv("DIGEST_CRON", "0 6 * * *"),
	}
}

// ErrorStatus is a useful function that will log, write http headers and body for a
// give message, status code and err
func ErrorStatus(message string, httpStatusCode int, w http.ResponseWriter, err error) {
	errMsg := ""
	if err != nil {
		errMsg = err.Error()
	}
	zap.S().Errorw(message, "status", httpStatusCode, "error", errMsg)

	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: errMsg}})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatusCode)
	w.Write(b)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}
