package repository

import (
	"context"
	"strings"
	"time"

	"umapedia/internal/infrastructure/storage"
	"umapedia/internal/pkg/common"
)

// FridgeRepository 冷藏庫存取器
type FridgeRepository struct {
	store storage.Store
	locks *lockTable
}

// GetAll 取得冷藏庫所有項目
func (r *FridgeRepository) GetAll(ctx context.Context) ([]common.FridgeItem, error) {
	return readAll[common.FridgeItem](ctx, r.store, storage.CollectionFridge)
}

// Add 新增項目，產生識別碼後回傳完整記錄
func (r *FridgeRepository) Add(ctx context.Context, item common.FridgeItem) (*common.FridgeItem, error) {
	if err := validateFridgeItem(&item); err != nil {
		return nil, err
	}

	lock := r.locks.forCollection(storage.CollectionFridge)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	item.ID = common.GenerateID()
	items = append(items, item)

	if err := writeAll(ctx, r.store, storage.CollectionFridge, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete 依識別碼刪除，找不到時為 no-op
func (r *FridgeRepository) Delete(ctx context.Context, id string) error {
	lock := r.locks.forCollection(storage.CollectionFridge)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}

	return writeAll(ctx, r.store, storage.CollectionFridge, kept)
}

// validateFridgeItem 寫入邊界驗證
// ingredientId 只要求非空，不檢查食材是否存在（弱引用）
func validateFridgeItem(item *common.FridgeItem) error {
	if item.IngredientID == "" {
		return common.NewValidationError("食材・分量・消費期限をすべて入力してください")
	}
	if strings.TrimSpace(item.Quantity) == "" {
		return common.NewValidationError("食材・分量・消費期限をすべて入力してください")
	}
	if _, err := time.Parse(common.DateLayout, item.ExpireDate); err != nil {
		return common.NewValidationError("消費期限の形式は YYYY-MM-DD で入力してください: " + item.ExpireDate)
	}
	return nil
}
