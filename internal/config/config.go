// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Log     LogConfig
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

// StorageConfig holds the MinIO / S3-compatible connection info and the
// bucket layout used for custom training files.
type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool

	Bucket            string
	CustomFilesFolder string
	// RewardFunctionPath is the local reward function file. Storage
	// operations never read it; the CLI uses it as a default input.
	RewardFunctionPath string
}

// LogConfig selects the level and output format of the process logger.
// Format is "console" or "json".
type LogConfig struct {
	Level   string
	Format  string
	NoColor bool
}

var (
	once     sync.Once
	instance *Config
)

// Load reads the process configuration once. Later calls return the same
// instance.
func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		v := viper.GetViper()
		SetDefaults(v)

		// Read from environment variables
		v.AutomaticEnv()

		instance = FromViper(v)
	})

	return instance
}

// SetDefaults registers the default values for every known key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_MODE", "debug")
	v.SetDefault("SERVER_READ_TIMEOUT", 30)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	v.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	v.SetDefault("MINIO_ACCESS_KEY", "")
	v.SetDefault("MINIO_SECRET_KEY", "")
	v.SetDefault("MINIO_REGION", "us-east-1")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("BUCKET_NAME", "")
	v.SetDefault("CUSTOM_FILES_FOLDER_PATH", "")
	v.SetDefault("REWARD_FUNCTION_PATH", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_NO_COLOR", false)
}

// FromViper assembles a Config from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Mode:           v.GetString("SERVER_MODE"),
			ReadTimeout:    v.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:   v.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins: v.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
		},
		Storage: StorageConfig{
			Endpoint:           v.GetString("MINIO_ENDPOINT"),
			AccessKey:          v.GetString("MINIO_ACCESS_KEY"),
			SecretKey:          v.GetString("MINIO_SECRET_KEY"),
			Region:             v.GetString("MINIO_REGION"),
			UseSSL:             v.GetBool("MINIO_USE_SSL"),
			Bucket:             v.GetString("BUCKET_NAME"),
			CustomFilesFolder:  v.GetString("CUSTOM_FILES_FOLDER_PATH"),
			RewardFunctionPath: v.GetString("REWARD_FUNCTION_PATH"),
		},
		Log: LogConfig{
			Level:   v.GetString("LOG_LEVEL"),
			Format:  v.GetString("LOG_FORMAT"),
			NoColor: v.GetBool("LOG_NO_COLOR"),
		},
	}
}
