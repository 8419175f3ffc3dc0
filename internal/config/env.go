package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends for uploaded originals and metadata JSON.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// DefaultDetectLanguages bounds the language detector when DETECT_LANGUAGES
// is unset. Every model is loaded at startup, so the set is kept small.
var DefaultDetectLanguages = []string{
	"en", "fr", "de", "es", "it", "pt", "nl", "sv", "pl", "ru", "tr", "ar", "zh", "ja", "ko", "hi",
}

type Config struct {
	Port            string
	UploadDir       string
	OutputDir       string
	StorageBackend  string
	DatabaseURL     string
	SslCertPath     string
	AwsAccessKey    string
	AwsSecretKey    string
	AwsRegion       string
	BucketName      string
	JWTSecret       string
	OCRLanguages    []string
	DetectLanguages []string
	PDFTextFallback bool
	MaxUploadMB     int
	Workers         int
	Debug           bool
}

// LoadConfig loads the .env file, if any, and reads the environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		OutputDir:       getEnv("OUTPUT_DIR", "output"),
		StorageBackend:  strings.ToLower(getEnv("STORAGE_BACKEND", StorageLocal)),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SslCertPath:     getEnv("SSL_CERT_PATH", ""),
		AwsAccessKey:    getEnv("AWS_ACCESS_KEY", ""),
		AwsSecretKey:    getEnv("AWS_SECRET_KEY", ""),
		AwsRegion:       getEnv("AWS_REGION", "us-east-2"),
		BucketName:      getEnv("BUCKET_NAME", "metadoc-docs"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		OCRLanguages:    getEnvList("OCR_LANGUAGES", []string{"eng"}),
		DetectLanguages: getEnvList("DETECT_LANGUAGES", DefaultDetectLanguages),
		PDFTextFallback: getEnvBool("PDF_TEXT_FALLBACK", true),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 32),
		Workers:         getEnvInt("WORKERS", 4),
		Debug:           getEnvBool("DEBUG", false),
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageLocal:
		if c.UploadDir == "" || c.OutputDir == "" {
			return fmt.Errorf("UPLOAD_DIR and OUTPUT_DIR must be set for local storage")
		}
	case StorageS3:
		if c.BucketName == "" {
			return fmt.Errorf("BUCKET_NAME must be set for s3 storage")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.DatabaseURL != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set when DATABASE_URL is set")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	return nil
}

// AuthEnabled reports whether users and tokens are backed by the database.
func (c *Config) AuthEnabled() bool {
	return c.DatabaseURL != ""
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// getEnvList splits a comma separated variable, dropping empty items.
func getEnvList(key string, def []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
