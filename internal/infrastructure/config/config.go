package config

import (
	"fmt"
	"net"

	"github.com/ilyakaznacheev/cleanenv"
)

// 环境变量名
const (
	EnvStaticDir    = "STATIC_DIR"
	EnvHost         = "HOST"
	EnvPort         = "PORT"
	EnvDatabasePath = "DATABASE_PATH"
	EnvMaxOpenConns = "DB_MAX_OPEN_CONNS"
)

// Config 应用配置
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host      string `env:"HOST" env-default:"0.0.0.0" env-description:"listen host"`
	Port      string `env:"PORT" env-default:"3000" env-description:"listen port"`
	StaticDir string `env:"STATIC_DIR" env-default:"./frontend/dist/frontend" env-description:"static asset directory"`
}

// Addr 返回监听地址 host:port
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	// Path SQLite 文件路径，不存在时自动创建
	Path         string `env:"DATABASE_PATH" env-default:"todos.db" env-description:"sqlite database file"`
	MaxOpenConns int    `env:"DB_MAX_OPEN_CONNS" env-default:"4" env-description:"connection pool size"`
}

// NewConfig 创建配置：默认值 + 环境变量覆盖
func NewConfig() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config from env: %w", err)
	}
	return &cfg, nil
}

// NewDatabaseConfig 创建数据库配置
func NewDatabaseConfig(cfg *Config) *DatabaseConfig {
	return &cfg.Database
}

// NewServerConfig 创建服务器配置
func NewServerConfig(cfg *Config) *ServerConfig {
	return &cfg.Server
}
