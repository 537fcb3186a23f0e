package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StorageProviderMinio = "minio"
	StorageProviderS3    = "s3"
	StorageProviderFake  = "fake"
)

type Settings struct {
	MariaDBDSN      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ServerPort      int

	StorageProvider string
	StorageBucket   string
	AssetBaseURL    string
	UploadURLTTL    time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	RedisAddr     string
	RedisPassword string

	CORSAllowedOrigins []string
}

func Load() (*Settings, error) {
	readEnvFile()

	required := []string{
		"MARIADB_DSN",
		"MARIADB_MAX_OPEN_CONN",
		"MARIADB_MAX_IDLE_CONNS",
		"MARIADB_CONN_MAX_LIFETIME",
		"SERVER_PORT",
		"STORAGE_BUCKET",
		"ASSET_BASE_URL",
	}
	for _, key := range required {
		if !viper.IsSet(key) {
			return nil, fmt.Errorf("%s is required", key)
		}
	}

	provider := strings.ToLower(strings.TrimSpace(getString("STORAGE_PROVIDER", StorageProviderMinio)))
	switch provider {
	case StorageProviderMinio:
		for _, key := range []string{"MINIO_ENDPOINT", "MINIO_ACCESS_KEY", "MINIO_SECRET_KEY"} {
			if !viper.IsSet(key) {
				return nil, fmt.Errorf("%s is required", key)
			}
		}
	case StorageProviderS3:
		if !viper.IsSet("S3_REGION") {
			return nil, fmt.Errorf("S3_REGION is required")
		}
	case StorageProviderFake:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_PROVIDER %q", provider)
	}

	ttl := viper.GetInt("UPLOAD_URL_TTL")
	if ttl <= 0 {
		ttl = 600
	}

	return &Settings{
		MariaDBDSN:      viper.GetString("MARIADB_DSN"),
		MaxOpenConns:    viper.GetInt("MARIADB_MAX_OPEN_CONN"),
		MaxIdleConns:    viper.GetInt("MARIADB_MAX_IDLE_CONNS"),
		ConnMaxLifetime: time.Duration(viper.GetInt("MARIADB_CONN_MAX_LIFETIME")) * time.Second,
		ServerPort:      viper.GetInt("SERVER_PORT"),

		StorageProvider: provider,
		StorageBucket:   strings.TrimSpace(viper.GetString("STORAGE_BUCKET")),
		AssetBaseURL:    strings.TrimRight(strings.TrimSpace(viper.GetString("ASSET_BASE_URL")), "/"),
		UploadURLTTL:    time.Duration(ttl) * time.Second,

		MinioEndpoint:  viper.GetString("MINIO_ENDPOINT"),
		MinioAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
		MinioSecretKey: viper.GetString("MINIO_SECRET_KEY"),
		MinioUseSSL:    viper.GetBool("MINIO_USE_SSL"),

		S3Region:          viper.GetString("S3_REGION"),
		S3Endpoint:        viper.GetString("S3_ENDPOINT"),
		S3AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
		S3SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),

		RedisAddr:     viper.GetString("REDIS_ADDR"),
		RedisPassword: viper.GetString("REDIS_PASSWORD"),

		CORSAllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
	}, nil
}

func readEnvFile() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found; proceeding with OS environment variables")
	}

	viper.AutomaticEnv()

	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: could not read .env file: %v", err)
	}
}

func getString(key, def string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return def
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
