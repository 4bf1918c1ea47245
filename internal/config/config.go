package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host        string   `yaml:"host"`
		Port        int      `yaml:"port"`
		Env         string   `yaml:"env"`
		LogLevel    string   `yaml:"log_level"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`

	Database struct {
		Driver      string `yaml:"driver"` // postgres, mysql, sqlite
		DSN         string `yaml:"url"`
		AutoMigrate bool   `yaml:"auto_migrate"`
	} `yaml:"database"`

	Cache struct {
		Driver          string        `yaml:"driver"` // memory, redis, none
		TTL             time.Duration `yaml:"ttl"`
		Namespace       string        `yaml:"namespace"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
		RedisAddr       string        `yaml:"redis_addr"`
		RedisPassword   string        `yaml:"redis_password"`
		RedisDB         int           `yaml:"redis_db"`
	} `yaml:"cache"`

	Telegram struct {
		BotToken    string        `yaml:"bot_token"`
		ChatID      int64         `yaml:"chat_id"`
		Username    string        `yaml:"username"`
		APIEndpoint string        `yaml:"api_endpoint"`
		Timeout     time.Duration `yaml:"timeout"`
		Mode        string        `yaml:"mode"` // sync, async
		SelfCheck   bool          `yaml:"self_check"`
	} `yaml:"telegram"`

	Auth struct {
		TrustedHeader struct {
			Enabled bool   `yaml:"enabled"`
			Name    string `yaml:"name"`
			Value   string `yaml:"value"`
		} `yaml:"trusted_header"`
	} `yaml:"auth"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Encryption struct {
		Key string `yaml:"key"` // base64, 32 байта
	} `yaml:"encryption"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		NotifyTo     string `yaml:"notify_to"`
	} `yaml:"email"`

	Storage struct {
		Type       string `yaml:"type"`        // local, s3, cloudflare_r2
		BasePath   string `yaml:"base_path"`   // For local storage
		BaseURL    string `yaml:"base_url"`    // Public URL base
		Bucket     string `yaml:"bucket"`      // For S3/R2
		Region     string `yaml:"region"`      // For S3
		AccessKey  string `yaml:"access_key"`  // For S3/R2
		SecretKey  string `yaml:"secret_key"`  // For S3/R2
		Endpoint   string `yaml:"endpoint"`    // For R2 or custom S3
		PublicRead bool   `yaml:"public_read"` // Make files public
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64 `yaml:"max_size"`      // байты
		ImageQuality int   `yaml:"image_quality"` // JPEG quality (1-100)
		ImageMaxSide int   `yaml:"image_max_side"`
	} `yaml:"upload"`

	FirstAdmin struct {
		Username string `yaml:"username"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"first_admin"`
}

const defaultConfigPath = "config/config.yaml"

var AppConfig *Config

// LoadConfig загружает глобальную конфигурацию; при ошибке процесс завершается
func LoadConfig() {
	cfg, err := Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

// Load: значения по умолчанию -> .env -> YAML -> переменные окружения -> Validate.
// Пустой path означает config/config.yaml, отсутствие которого не ошибка.
func Load(path string) (*Config, error) {
	// .env опционален
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	if err := cfg.readFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default - конфигурация для локального запуска без файла
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 8000
	cfg.Server.Env = "development"
	cfg.Server.LogLevel = "info"
	cfg.Server.CORSOrigins = []string{"*"}

	cfg.Database.Driver = "sqlite"
	cfg.Database.DSN = "webresume.db"
	cfg.Database.AutoMigrate = true

	cfg.Cache.Driver = "memory"
	cfg.Cache.TTL = time.Second
	cfg.Cache.Namespace = "webresume"
	cfg.Cache.CleanupInterval = time.Minute

	cfg.Telegram.Timeout = 15 * time.Second
	cfg.Telegram.Mode = "sync"
	cfg.Telegram.SelfCheck = true

	cfg.Auth.TrustedHeader.Enabled = true
	cfg.Auth.TrustedHeader.Name = "X-User-Authenticated"
	cfg.Auth.TrustedHeader.Value = "true"

	cfg.JWT.TTL = 60 * 24

	cfg.Email.SMTPPort = 587

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./media"
	cfg.Storage.BaseURL = "/media"

	cfg.Upload.MaxSize = 10 * 1024 * 1024 // 10MB
	cfg.Upload.ImageQuality = 85
	cfg.Upload.ImageMaxSide = 1600

	return &cfg
}

func (c *Config) readFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	var errs []error
	setInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := os.LookupEnv(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}
	setDuration := func(key string, dst *time.Duration) {
		if v, ok := os.LookupEnv(key); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	setString("SERVER_HOST", &c.Server.Host)
	setInt("SERVER_PORT", &c.Server.Port)
	setString("SERVER_ENV", &c.Server.Env)
	setString("LOG_LEVEL", &c.Server.LogLevel)
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		c.Server.CORSOrigins = splitList(v)
	}

	setString("DATABASE_DRIVER", &c.Database.Driver)
	setString("DATABASE_URL", &c.Database.DSN)
	setBool("DATABASE_AUTO_MIGRATE", &c.Database.AutoMigrate)

	setString("CACHE_DRIVER", &c.Cache.Driver)
	setDuration("CACHE_TTL", &c.Cache.TTL)
	setString("CACHE_NAMESPACE", &c.Cache.Namespace)
	setString("REDIS_ADDR", &c.Cache.RedisAddr)
	setString("REDIS_PASSWORD", &c.Cache.RedisPassword)
	setInt("REDIS_DB", &c.Cache.RedisDB)

	setString("TELEGRAM_BOT_TOKEN", &c.Telegram.BotToken)
	if v, ok := os.LookupEnv("TELEGRAM_CHAT_ID"); ok && v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err))
		} else {
			c.Telegram.ChatID = id
		}
	}
	setString("TELEGRAM_USERNAME", &c.Telegram.Username)
	setString("TELEGRAM_API_ENDPOINT", &c.Telegram.APIEndpoint)
	setDuration("TELEGRAM_TIMEOUT", &c.Telegram.Timeout)
	setString("RELAY_MODE", &c.Telegram.Mode)
	setBool("TELEGRAM_SELF_CHECK", &c.Telegram.SelfCheck)

	setBool("TRUSTED_HEADER_ENABLED", &c.Auth.TrustedHeader.Enabled)
	setString("TRUSTED_HEADER_NAME", &c.Auth.TrustedHeader.Name)
	setString("TRUSTED_HEADER_VALUE", &c.Auth.TrustedHeader.Value)

	setString("JWT_SECRET", &c.JWT.Secret)
	setInt("JWT_TTL", &c.JWT.TTL)
	setString("ENCRYPTION_KEY", &c.Encryption.Key)

	setBool("EMAIL_ENABLED", &c.Email.Enabled)
	setString("SMTP_HOST", &c.Email.SMTPHost)
	setInt("SMTP_PORT", &c.Email.SMTPPort)
	setString("SMTP_USER", &c.Email.SMTPUsername)
	setString("SMTP_PASSWORD", &c.Email.SMTPPassword)
	setString("EMAIL_FROM", &c.Email.FromEmail)
	setString("EMAIL_NOTIFY_TO", &c.Email.NotifyTo)

	setString("STORAGE_TYPE", &c.Storage.Type)
	setString("STORAGE_BASE_PATH", &c.Storage.BasePath)
	setString("STORAGE_BASE_URL", &c.Storage.BaseURL)
	setString("STORAGE_BUCKET", &c.Storage.Bucket)
	setString("STORAGE_REGION", &c.Storage.Region)
	setString("STORAGE_ACCESS_KEY", &c.Storage.AccessKey)
	setString("STORAGE_SECRET_KEY", &c.Storage.SecretKey)
	setString("STORAGE_ENDPOINT", &c.Storage.Endpoint)

	setString("FIRST_ADMIN_USERNAME", &c.FirstAdmin.Username)
	setString("FIRST_ADMIN_EMAIL", &c.FirstAdmin.Email)
	setString("FIRST_ADMIN_PASSWORD", &c.FirstAdmin.Password)

	return errors.Join(errs...)
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}

	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported database.driver: %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("database.url is required"))
	}

	switch c.Cache.Driver {
	case "memory", "none":
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("cache.redis_addr is required for redis driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported cache.driver: %q", c.Cache.Driver))
	}
	if c.Cache.TTL <= 0 {
		errs = append(errs, errors.New("cache.ttl must be positive"))
	}

	switch c.Telegram.Mode {
	case "sync", "async":
	default:
		errs = append(errs, fmt.Errorf("unsupported telegram.mode: %q", c.Telegram.Mode))
	}
	if c.Telegram.Timeout <= 0 {
		errs = append(errs, errors.New("telegram.timeout must be positive"))
	}

	if c.Auth.TrustedHeader.Enabled && c.Auth.TrustedHeader.Name == "" {
		errs = append(errs, errors.New("auth.trusted_header.name is required when enabled"))
	}

	if c.IsProduction() && c.JWT.Secret == "" {
		errs = append(errs, errors.New("jwt.secret is required in production"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
