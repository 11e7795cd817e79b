package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"umapedia/internal/pkg/common"

	"go.uber.org/zap"
)

// 編譯期介面檢查
var _ Store = (*FileStore)(nil)

// FileStore 檔案後端：每個集合對應資料目錄下的一個 JSON 檔
type FileStore struct {
	dir string
}

// NewFileStore 建立檔案後端，資料目錄不存在時自動建立
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", common.ErrStorageUnavailable, err)
	}

	common.LogInfo("檔案儲存已初始化",
		zap.String("資料目錄", dir),
	)

	return &FileStore{dir: dir}, nil
}

// ReadCollection 讀取整個集合，檔案不存在時回傳 nil
func (s *FileStore) ReadCollection(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", common.ErrStorageUnavailable, name, err)
	}
	return data, nil
}

// WriteCollection 整份覆寫集合
// 先寫暫存檔再 rename，同一行程內的後續讀取不會觀察到寫到一半的狀態
func (s *FileStore) WriteCollection(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp for %s: %v", common.ErrStorageUnavailable, name, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: write %s: %v", common.ErrStorageUnavailable, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", common.ErrStorageUnavailable, name, err)
	}

	if err := os.Rename(tmpPath, s.path(name)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: replace %s: %v", common.ErrStorageUnavailable, name, err)
	}
	return nil
}

// Close 檔案後端沒有需要釋放的資源
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}
