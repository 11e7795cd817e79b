package storage

import (
	"context"
	"fmt"

	"umapedia/internal/infrastructure/config"
)

// 四個集合的固定名稱
const (
	CollectionIngredients = "ingredients"
	CollectionRecipes     = "recipes"
	CollectionMealPlans   = "mealPlans"
	CollectionFridge      = "fridge"
)

// Collections 所有集合名稱
var Collections = []string{
	CollectionIngredients,
	CollectionRecipes,
	CollectionMealPlans,
	CollectionFridge,
}

// Store 持久層介面
// 以集合為單位讀寫：整份讀取與整份覆寫是僅有的兩個原語。
// ReadCollection 在鍵不存在時回傳 nil 而非錯誤；WriteCollection 對呼叫端而言是
// 原子性的整份替換。讀寫失敗一律包裝 common.ErrStorageUnavailable，不重試。
type Store interface {
	ReadCollection(ctx context.Context, name string) ([]byte, error)
	WriteCollection(ctx context.Context, name string, data []byte) error
	Close() error
}

// NewStore 依設定建立持久層後端
func NewStore(cfg *config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case config.StorageBackendFile:
		return NewFileStore(cfg.DataDir)
	case config.StorageBackendRedis:
		return NewRedisStore(cfg.RedisAddr)
	case config.StorageBackendPostgres:
		return NewPostgresStore(cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}
