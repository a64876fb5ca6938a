package config

import (
	"crypto/rand"
	"os"
	"strconv"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JacobHeater/upsign/logger"
	"github.com/JacobHeater/upsign/tools/decode"
)

type ServerConfig struct {
	Port   int    `mapstructure:"port"`
	NodeId int64  `mapstructure:"node_id"`
	Mode   string `mapstructure:"mode"` // gin mode: debug/release
}

type AuthConfig struct {
	JWTSecret  string `mapstructure:"jwt_secret"`
	TokenTTLH  int    `mapstructure:"token_ttl_hours"`
	OTPTTLMin  int    `mapstructure:"otp_ttl_minutes"`
	CookieName string `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MongoConfig struct {
	Uri         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	MaxPoolSize int    `mapstructure:"max_pool_size"`
}

type AppConfig struct {
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Mongo  MongoConfig  `mapstructure:"mongo"`
}

var Global = AppConfig{
	Server: ServerConfig{Port: 8080, NodeId: 1, Mode: "debug"},
	Auth: AuthConfig{
		TokenTTLH:  24,
		OTPTTLMin:  5,
		CookieName: "upsign_token",
	},
	Redis: RedisConfig{Addr: "127.0.0.1:6379"},
	Mongo: MongoConfig{Uri: "mongodb://localhost:27017", Database: "upsign", MaxPoolSize: 20},
}

// Load overlays Global with a yaml file, then with env vars.
// A missing file is not an error; env always wins.
func Load(path string) error {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			var m map[string]any
			if err := yaml.Unmarshal(raw, &m); err != nil {
				return err
			}
			if err := decode.DecodeMap(m, &Global); err != nil {
				return err
			}
		} else if !os.IsNotExist(err) {
			return err
		}
	}
	applyEnv()
	return nil
}

func applyEnv() {
	if v := os.Getenv("UPSIGN_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			Global.Server.Port = p
		}
	}
	if v := os.Getenv("UPSIGN_JWT_SECRET"); v != "" {
		Global.Auth.JWTSecret = v
	}
	if v := os.Getenv("UPSIGN_REDIS_ADDR"); v != "" {
		Global.Redis.Addr = v
	}
	if v := os.Getenv("UPSIGN_REDIS_PASSWORD"); v != "" {
		Global.Redis.Password = v
	}
	if v := os.Getenv("UPSIGN_MONGO_URI"); v != "" {
		Global.Mongo.Uri = v
	}
	if v := os.Getenv("UPSIGN_MONGO_DB"); v != "" {
		Global.Mongo.Database = v
	}
}

var (
	fallbackSecret     []byte
	fallbackSecretOnce sync.Once
)

// GetJwtSecret returns the configured HMAC secret. With no secret
// configured it falls back to a random per-process one, so tokens stop
// verifying across restarts instead of being forgeable from source.
func GetJwtSecret() []byte {
	if Global.Auth.JWTSecret != "" {
		return []byte(Global.Auth.JWTSecret)
	}
	fallbackSecretOnce.Do(func() {
		fallbackSecret = make([]byte, 32)
		if _, err := rand.Read(fallbackSecret); err != nil {
			panic("generate jwt secret: " + err.Error())
		}
		logger.Warn("no jwt secret configured, using a random per-process secret; set UPSIGN_JWT_SECRET")
	})
	return fallbackSecret
}

func TokenTTL() time.Duration {
	return time.Duration(Global.Auth.TokenTTLH) * time.Hour
}

func OTPTTL() time.Duration {
	return time.Duration(Global.Auth.OTPTTLMin) * time.Minute
}
