package repository

import (
	"context"
	"strings"

	"umapedia/internal/infrastructure/storage"
	"umapedia/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientRepository 食材存取器
type IngredientRepository struct {
	store storage.Store
	locks *lockTable
}

// GetAll 取得所有食材
func (r *IngredientRepository) GetAll(ctx context.Context) ([]common.Ingredient, error) {
	return readAll[common.Ingredient](ctx, r.store, storage.CollectionIngredients)
}

// Add 新增食材，產生識別碼後回傳完整記錄
func (r *IngredientRepository) Add(ctx context.Context, item common.Ingredient) (*common.Ingredient, error) {
	if err := validateIngredient(&item); err != nil {
		return nil, err
	}

	lock := r.locks.forCollection(storage.CollectionIngredients)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	item.ID = common.GenerateID()
	items = append(items, item)

	if err := writeAll(ctx, r.store, storage.CollectionIngredients, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 以識別碼為準整筆替換，找不到時為 no-op
func (r *IngredientRepository) Update(ctx context.Context, item common.Ingredient) (*common.Ingredient, error) {
	if err := validateIngredient(&item); err != nil {
		return nil, err
	}

	lock := r.locks.forCollection(storage.CollectionIngredients)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			items[i] = item
			found = true
			break
		}
	}
	if !found {
		common.LogDebug("更新對象不存在，集合原樣寫回",
			zap.String("集合", storage.CollectionIngredients),
			zap.String("id", item.ID),
		)
	}

	if err := writeAll(ctx, r.store, storage.CollectionIngredients, items); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &item, nil
}

// Delete 依識別碼刪除，找不到時為 no-op
func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	lock := r.locks.forCollection(storage.CollectionIngredients)
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

	return writeAll(ctx, r.store, storage.CollectionIngredients, kept)
}

// validateIngredient 寫入邊界驗證
func validateIngredient(item *common.Ingredient) error {
	if strings.TrimSpace(item.Name) == "" {
		return common.NewValidationError("食材名稱不可為空")
	}
	if !common.IsValidCategory(item.Category) {
		return common.NewValidationError("未知的食材分類: " + item.Category)
	}
	return nil
}
