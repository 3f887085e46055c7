package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	// URL, when set, is used as-is instead of the individual fields.
	URL                string `masq:"secret"`
	Host               string
	Port               string
	User               string
	Password           string `masq:"secret"`
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	PingTimeoutSec     int
	AutoMigrate        bool
}

// MinIOConfig holds object storage settings for MinIO or any S3-compatible store.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string `masq:"secret"`
	Bucket    string
	UseSSL    bool
	// PublicBaseURL is prepended to object keys when building links for emails.
	// Falls back to the endpoint when empty.
	PublicBaseURL string
}

// SMTPConfig holds mail relay settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string `masq:"secret"`
	From     string
}

// DocuSignConfig holds e-signature provider settings.
type DocuSignConfig struct {
	IntegratorKey           string
	UserID                  string
	AccountID               string
	PrivateKeyPath          string
	PrivateKey              string `masq:"secret"`
	ClientSecret            string `masq:"secret"`
	RedirectURL             string
	OAuthBasePath           string
	BasePath                string
	IndividualTemplateID    string
	InstitutionalTemplateID string
}

// OpenAIConfig holds LLM provider settings for the knowledge base.
type OpenAIConfig struct {
	APIKey         string `masq:"secret"`
	ChatModel      string
	EmbeddingModel string
}

// KafkaConfig holds settings for application event publishing.
// Publishing is disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	LogLevel string
	// PublicBaseURL is the externally reachable base of this API, used for links in emails.
	PublicBaseURL string
	// DashboardURL is where HTML pages send the admin back to.
	DashboardURL      string
	AdminEmail        string
	MaxUploadBytes    int64
	UploadRetryDelay  time.Duration
	UploadMaxRetries  int
	Database          DatabaseConfig
	MinIO             MinIOConfig
	SMTP              SMTPConfig
	DocuSign          DocuSignConfig
	OpenAI            OpenAIConfig
	Kafka             KafkaConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	dashboard := getEnv("ADMIN_DASHBOARD_URL", "http://localhost:3000")
	return &AppConfig{
		AppHost:          getEnv("APP_HOST", "localhost:3000"),
		Port:             getEnv("PORT", "3000"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		PublicBaseURL:    strings.TrimRight(getEnv("BASE_URL", dashboard), "/"),
		DashboardURL:     strings.TrimRight(dashboard, "/"),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		MaxUploadBytes:   int64(getEnvInt("MAX_UPLOAD_BYTES", 10*1024*1024)),
		UploadRetryDelay: time.Duration(getEnvInt("UPLOAD_RETRY_DELAY_MS", 2000)) * time.Millisecond,
		UploadMaxRetries: getEnvInt("UPLOAD_MAX_RETRIES", 3),
		Database: DatabaseConfig{
			URL:                getEnv("DATABASE_URL", ""),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			PingTimeoutSec:     getEnvInt("DB_PING_TIMEOUT_SEC", 5),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
		},
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", "kyc-documents"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PublicBaseURL: strings.TrimRight(getEnv("MINIO_PUBLIC_BASE_URL", ""), "/"),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_APP_PASSWORD", ""),
			From:     getEnv("EMAIL_FROM", ""),
		},
		DocuSign: DocuSignConfig{
			IntegratorKey:           getEnv("DOCUSIGN_INTEGRATOR_KEY", ""),
			UserID:                  getEnv("DOCUSIGN_USER_ID", ""),
			AccountID:               getEnv("DOCUSIGN_ACCOUNT_ID", ""),
			PrivateKeyPath:          getEnv("DOCUSIGN_PRIVATE_KEY_PATH", "./config/private.key"),
			PrivateKey:              getEnv("DOCUSIGN_PRIVATE_KEY", ""),
			ClientSecret:            getEnv("DOCUSIGN_CLIENT_SECRET", ""),
			RedirectURL:             getEnv("DOCUSIGN_REDIRECT_URL", ""),
			OAuthBasePath:           getEnv("DOCUSIGN_OAUTH_BASE_PATH", "account-d.docusign.com"),
			BasePath:                strings.TrimRight(getEnv("DOCUSIGN_BASE_PATH", "https://demo.docusign.net/restapi"), "/"),
			IndividualTemplateID:    getEnv("DOCUSIGN_INDIVIDUAL_TEMPLATE_ID", ""),
			InstitutionalTemplateID: getEnv("DOCUSIGN_INSTITUTIONAL_TEMPLATE_ID", ""),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			ChatModel:      getEnv("OPENAI_CHAT_MODEL", "gpt-4o-mini"),
			EmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnv("KAFKA_TOPIC", "kyc.applications"),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

// getEnvList splits a comma separated variable, dropping blanks.
func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
