package storage

import (
	"context"
	"fmt"

	"umapedia/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// 編譯期介面檢查
var _ Store = (*RedisStore)(nil)

// RedisStore redis 後端：每個集合對應一個鍵，值為整份 JSON
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 建立 redis 後端
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("%w: connect redis: %v", common.ErrStorageUnavailable, err)
	}

	common.LogInfo("Redis 儲存已初始化",
		zap.String("位址", addr),
	)

	return &RedisStore{client: client}, nil
}

// ReadCollection 讀取整個集合，鍵不存在時回傳 nil
func (s *RedisStore) ReadCollection(ctx context.Context, name string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorageUnavailable, name, err)
	}
	return data, nil
}

// WriteCollection 整份覆寫集合（單一 SET，無過期時間）
func (s *RedisStore) WriteCollection(ctx context.Context, name string, data []byte) error {
	if err := s.client.Set(ctx, s.key(name), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: write %s: %v", common.ErrStorageUnavailable, name, err)
	}
	return nil
}

// Close 關閉 redis 連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) key(name string) string {
	return fmt.Sprintf("umapedia:collection:%s", name)
}
