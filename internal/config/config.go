package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config アプリケーション設定
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Auth       AuthConfig
	Redis      RedisConfig
	Cloudinary CloudinaryConfig
	AWS        AWSConfig
	Log        LogConfig
}

// ServerConfig サーバー設定
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
	GinMode         string
}

// DatabaseConfig データベース設定
type DatabaseConfig struct {
	Driver   string // mysql / postgres / sqlite
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
	DSN      string // 指定された場合はHost等より優先
	LogLevel string
}

// AuthConfig 認証設定
type AuthConfig struct {
	JWTSecret   string
	TokenExpiry time.Duration
}

// RedisConfig タグキャッシュ用Redis設定（Addrが空なら無効）
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TagTTL   time.Duration
}

// CloudinaryConfig アバター画像アップロード設定
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Enabled Cloudinaryの認証情報が揃っているか
func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// AWSConfig AWS設定
type AWSConfig struct {
	Region                string
	ArticleEventsQueueURL string // 空ならイベント送信は無効
}

// LogConfig ログ設定
type LogConfig struct {
	Level  string
	Format string // console / json
}

// DefaultJWTSecret 未設定時のJWT署名鍵（開発用）
const DefaultJWTSecret = "your-secret-key"

// Load 環境変数（と任意のCONFIG_FILE）から設定をロード
func Load() (*Config, error) {
	// .env ファイルをロード (存在すれば)
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:            v.GetString("SERVER_PORT"),
			ReadTimeout:     time.Duration(v.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout:    time.Duration(v.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
			ShutdownTimeout: time.Duration(v.GetInt("SERVER_SHUTDOWN_TIMEOUT")) * time.Second,
			AllowedOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			GinMode:         v.GetString("GIN_MODE"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Username: v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			DSN:      v.GetString("DB_DSN"),
			LogLevel: v.GetString("DB_LOG_LEVEL"),
		},
		Auth: AuthConfig{
			JWTSecret:   v.GetString("JWT_SECRET"),
			TokenExpiry: time.Duration(v.GetInt("TOKEN_EXPIRY")) * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TagTTL:   time.Duration(v.GetInt("REDIS_TAG_TTL")) * time.Second,
		},
		Cloudinary: CloudinaryConfig{
			CloudName: v.GetString("CLOUDINARY_CLOUD_NAME"),
			APIKey:    v.GetString("CLOUDINARY_API_KEY"),
			APISecret: v.GetString("CLOUDINARY_API_SECRET"),
			Folder:    v.GetString("CLOUDINARY_FOLDER"),
		},
		AWS: AWSConfig{
			Region:                v.GetString("AWS_REGION"),
			ArticleEventsQueueURL: v.GetString("SQS_ARTICLE_EVENTS_URL"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	return config, nil
}

// setDefaults デフォルト値を設定
func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("GIN_MODE", "debug")

	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "3306")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "mediumclone")
	v.SetDefault("DB_LOG_LEVEL", "warn")

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("TOKEN_EXPIRY", 24*7)

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_TAG_TTL", 300)

	v.SetDefault("CLOUDINARY_FOLDER", "mediumclone/avatars")

	v.SetDefault("AWS_REGION", "ap-northeast-1")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
}

// splitList カンマ区切りの値をスライスに変換
func splitList(value string) []string {
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
