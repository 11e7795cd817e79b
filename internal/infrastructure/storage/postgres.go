package storage

import (
	"context"
	"database/sql"
	"fmt"

	"umapedia/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// 編譯期介面檢查
var _ Store = (*PostgresStore)(nil)

// PostgresStore postgres 後端：collections 表每列存一個集合的整份 JSON
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore 建立 postgres 後端，表不存在時自動建立
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: connect postgres: %v", common.ErrStorageUnavailable, err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		data JSONB NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("%w: create collections table: %v", common.ErrStorageUnavailable, err)
	}

	common.LogInfo("Postgres 儲存已初始化")

	return &PostgresStore{db: db}, nil
}

// ReadCollection 讀取整個集合，列不存在時回傳 nil
func (s *PostgresStore) ReadCollection(ctx context.Context, name string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, "SELECT data FROM collections WHERE name = $1", name).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorageUnavailable, name, err)
	}
	return data, nil
}

// WriteCollection 整份覆寫集合（單一 upsert）
func (s *PostgresStore) WriteCollection(ctx context.Context, name string, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO collections (name, data) VALUES ($1, $2) ON CONFLICT (name) DO UPDATE SET data = $2",
		name, data,
	)
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrStorageUnavailable, name, err)
	}
	return nil
}

// Close 關閉資料庫連線
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
