package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/tinytodo/backend/internal/infrastructure/config"
	_ "modernc.org/sqlite"
)

// 连接参数：WAL 模式 + 忙等待，减少并发写入时的 SQLITE_BUSY
var sqlitePragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(WAL)",
}

// buildDSN 构造 modernc sqlite DSN
func buildDSN(path string) string {
	q := url.Values{}
	for _, p := range sqlitePragmas {
		q.Add("_pragma", p)
	}
	return "file:" + path + "?" + q.Encode()
}

// OpenDB 打开数据库连接池，文件不存在时自动创建
func OpenDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	if dir := filepath.Dir(cfg.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", buildDSN(cfg.Path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxOpenConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// InitSchema 创建表结构（幂等，每次启动执行）
func InitSchema(db *sql.DB) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL
	);`

	if _, err := db.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}

	createIndexSQL := `CREATE INDEX IF NOT EXISTS idx_todos_created_at ON todos(created_at);`
	if _, err := db.Exec(createIndexSQL); err != nil {
		return fmt.Errorf("failed to create todos index: %w", err)
	}

	return nil
}

// ProvideDB 打开连接池并初始化表结构
func ProvideDB(cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := InitSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
