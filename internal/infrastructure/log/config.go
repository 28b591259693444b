package log

import (
	"os"
	"strconv"
	"strings"
)

// 环境变量名
const (
	EnvLevel     = "LOG_LEVEL"
	EnvFormat    = "LOG_FORMAT"
	EnvOutput    = "LOG_OUTPUT"
	EnvAddSource = "LOG_ADD_SOURCE"
	EnvMode      = "ENV"
)

// Config 日志配置
type Config struct {
	// Level 日志级别：debug, info, warn, error
	Level string

	// Format 日志格式：console, json
	Format string

	// Output 输出目标：stdout, stderr, file:/path/to/log
	Output string

	// AddSource 是否添加源文件信息
	AddSource bool
}

// NewConfigFromEnv 从环境变量创建配置
func NewConfigFromEnv() *Config {
	cfg := &Config{
		Level:     getEnvWithDefault(EnvLevel, "info"),
		Format:    getEnvWithDefault(EnvFormat, "console"),
		Output:    getEnvWithDefault(EnvOutput, "stdout"),
		AddSource: getEnvBool(EnvAddSource, false),
	}

	// 开发环境强制 debug
	if isDevelopment() {
		cfg.Level = "debug"
		cfg.Format = "console"
		cfg.AddSource = true
	}

	return cfg
}

func isDevelopment() bool {
	return strings.EqualFold(getEnvWithDefault(EnvMode, "production"), "development")
}

// getEnvWithDefault 获取环境变量，带默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool 获取布尔型环境变量，无法解析时返回默认值
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
