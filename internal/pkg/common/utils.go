package common

import (
	"time"

	"github.com/google/uuid"
)

// GenerateID 生成全域唯一識別碼（128-bit 隨機 UUID）
func GenerateID() string {
	return uuid.New().String()
}

// NowMillis 取得目前時間的 Unix 毫秒
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
