package config

import (
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v2"
)

const (
	DefaultJwtTTL       = 7 * 24 * time.Hour
	DefaultMaxImageSize = 5 << 20 // 5 MiB
	DefaultUploadDir    = "uploads"
	DefaultLoginRPS     = 1.0
)

var DefaultImageMimeTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	JwtTTL                time.Duration `yaml:"jwt_ttl"`
	SecureCookies         bool          `yaml:"secure_cookies"`
	LogLevel              string        `yaml:"log_level"`
	LogJSON               bool          `yaml:"log_json"`
	UploadDir             string        `yaml:"upload_dir"`
	MaxImageSize          int64         `yaml:"max_image_size" validate:"gte=0"`
	AllowedImageMimeTypes []string      `yaml:"allowed_image_mime_types"`
	CorsAllowedOrigins    []string      `yaml:"cors_allowed_origins"`
	PublicURL             string        `yaml:"public_url" validate:"omitempty,url"` // base for uploaded image urls, request host when empty
	LoginRPS              float64       `yaml:"login_rps" validate:"gte=0"`
}

type Pg struct {
	Host     string `yaml:"host" validate:"required"`
	Port     int    `yaml:"port" validate:"required"`
	User     string `yaml:"user" validate:"required"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname" validate:"required"`
}

type Private struct {
	JwtKey string `yaml:"jwt_key" validate:"required"`
	Pg     Pg     `yaml:"pg"`
}

func (s *Config) JwtKey() string {
	return s.Private.JwtKey
}

func (s *Config) JwtTTL() time.Duration {
	return s.Public.JwtTTL
}

func (p *Public) applyDefaults() {
	if p.JwtTTL == 0 {
		p.JwtTTL = DefaultJwtTTL
	}
	if p.UploadDir == "" {
		p.UploadDir = DefaultUploadDir
	}
	if p.MaxImageSize == 0 {
		p.MaxImageSize = DefaultMaxImageSize
	}
	if len(p.AllowedImageMimeTypes) == 0 {
		p.AllowedImageMimeTypes = DefaultImageMimeTypes
	}
	if p.LogLevel == "" {
		p.LogLevel = "info"
	}
	if p.LoginRPS == 0 {
		p.LoginRPS = DefaultLoginRPS
	}
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}

	if err := yaml.UnmarshalStrict(configFile, output); err != nil {
		panic("can't unmarshal config file " + configPath + ": " + err.Error())
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)
	public.applyDefaults()

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{Public: public, Private: private}
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg); err != nil {
		panic("invalid config: " + err.Error())
	}
	return cfg
}
