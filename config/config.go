package config

import (
	"context"
	"crypto/tls"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-redis/redis/v8"
	"gopkg.in/yaml.v3"
)

var ctx = context.Background()

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	TLS      bool   `yaml:"tls"`
}

type SessionConfig struct {
	Secret        string `yaml:"secret"`
	CookieName    string `yaml:"cookie_name"`
	TTLHours      int    `yaml:"ttl_hours"`
	RememberHours int    `yaml:"remember_hours"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

type UploadConfig struct {
	Dir         string `yaml:"dir"`
	MaxBytes    int64  `yaml:"max_bytes"`
	ThumbnailPx int    `yaml:"thumbnail_px"`
	Placeholder string `yaml:"placeholder"`
}

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	MySQL   MySQLConfig   `yaml:"mysql"`
	Redis   RedisConfig   `yaml:"redis"`
	Session SessionConfig `yaml:"session"`
	Uploads UploadConfig  `yaml:"uploads"`
}

var GlobalConfig *Config
var RedisClient *redis.Client

func InitConfig(path string) {
	data, err := os.ReadFile(path + "/config.yaml")
	if err != nil {
		log.Fatalf("Read config failed: %v", err)
	}
	if err := yaml.Unmarshal(data, &GlobalConfig); err != nil {
		log.Fatalf("Parse config failed: %v", err)
	}
	applyDefaults()
	applyEnvOverrides()
}

func InitRedis() {
	opt := &redis.Options{
		Addr:     GlobalConfig.Redis.Addr,
		Password: GlobalConfig.Redis.Password,
		DB:       GlobalConfig.Redis.DB,
	}
	if GlobalConfig.Redis.TLS {
		opt.TLSConfig = &tls.Config{}
	}
	RedisClient = redis.NewClient(opt)
	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		panic(fmt.Sprintf("Redis connect failed: %v", err))
	}
	fmt.Println("Redis connected!")
}

func applyDefaults() {
	if GlobalConfig == nil {
		return
	}
	if GlobalConfig.Session.CookieName == "" {
		GlobalConfig.Session.CookieName = "nk_session"
	}
	if GlobalConfig.Session.TTLHours == 0 {
		GlobalConfig.Session.TTLHours = 24
	}
	if GlobalConfig.Session.RememberHours == 0 {
		GlobalConfig.Session.RememberHours = 24 * 30
	}
	if GlobalConfig.Uploads.Dir == "" {
		GlobalConfig.Uploads.Dir = "./content/images"
	}
	if GlobalConfig.Uploads.MaxBytes == 0 {
		GlobalConfig.Uploads.MaxBytes = 8 << 20
	}
	if GlobalConfig.Uploads.ThumbnailPx == 0 {
		GlobalConfig.Uploads.ThumbnailPx = 160
	}
	if GlobalConfig.Uploads.Placeholder == "" {
		GlobalConfig.Uploads.Placeholder = "default.png"
	}
}

func applyEnvOverrides() {
	if GlobalConfig == nil {
		return
	}
	if v := os.Getenv("MYSQL_DSN"); v != "" {
		GlobalConfig.MySQL.DSN = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		GlobalConfig.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		GlobalConfig.Redis.Password = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		GlobalConfig.Server.Port = v
	}
	if v := os.Getenv("SESSION_SECRET"); v != "" {
		GlobalConfig.Session.Secret = v
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			GlobalConfig.Session.TTLHours = parsed
		}
	}
	if v := os.Getenv("UPLOAD_DIR"); v != "" {
		GlobalConfig.Uploads.Dir = v
	}
}
