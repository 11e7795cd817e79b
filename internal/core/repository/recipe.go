package repository

import (
	"context"
	"strings"

	"umapedia/internal/infrastructure/storage"
	"umapedia/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeRepository 食譜存取器
type RecipeRepository struct {
	store storage.Store
	locks *lockTable
}

// GetAll 取得所有食譜
func (r *RecipeRepository) GetAll(ctx context.Context) ([]common.Recipe, error) {
	return readAll[common.Recipe](ctx, r.store, storage.CollectionRecipes)
}

// GetByID 依識別碼取得食譜，找不到時回傳 nil
func (r *RecipeRepository) GetByID(ctx context.Context, id string) (*common.Recipe, error) {
	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, nil
}

// Add 新增食譜，產生識別碼並寫入建立時間後回傳完整記錄
func (r *RecipeRepository) Add(ctx context.Context, item common.Recipe) (*common.Recipe, error) {
	if err := validateRecipe(&item); err != nil {
		return nil, err
	}

	lock := r.locks.forCollection(storage.CollectionRecipes)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	item.ID = common.GenerateID()
	item.CreatedAt = common.NowMillis()
	if item.Quantities == nil {
		item.Quantities = map[string]string{}
	}
	if item.Tags == nil {
		item.Tags = []string{}
	}
	items = append(items, item)

	if err := writeAll(ctx, r.store, storage.CollectionRecipes, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Update 以識別碼為準整筆替換，找不到時為 no-op
// CreatedAt 建立後不可變，以既有值為準
func (r *RecipeRepository) Update(ctx context.Context, item common.Recipe) (*common.Recipe, error) {
	if err := validateRecipe(&item); err != nil {
		return nil, err
	}

	lock := r.locks.forCollection(storage.CollectionRecipes)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range items {
		if items[i].ID == item.ID {
			item.CreatedAt = items[i].CreatedAt
			items[i] = item
			found = true
			break
		}
	}
	if !found {
		common.LogDebug("更新對象不存在，集合原樣寫回",
			zap.String("集合", storage.CollectionRecipes),
			zap.String("id", item.ID),
		)
	}

	if err := writeAll(ctx, r.store, storage.CollectionRecipes, items); err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &item, nil
}

// ToggleFavorite 切換收藏狀態並回傳更新後的記錄，找不到時回傳 nil（非錯誤）
func (r *RecipeRepository) ToggleFavorite(ctx context.Context, id string) (*common.Recipe, error) {
	lock := r.locks.forCollection(storage.CollectionRecipes)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].ID == id {
			items[i].Favorite = !items[i].Favorite
			if err := writeAll(ctx, r.store, storage.CollectionRecipes, items); err != nil {
				return nil, err
			}
			return &items[i], nil
		}
	}

	common.LogDebug("收藏切換對象不存在",
		zap.String("id", id),
	)
	return nil, nil
}

// Delete 依識別碼刪除，找不到時為 no-op
// 被食譜引用的食材可能先被刪除，這裡不做任何關聯檢查
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	lock := r.locks.forCollection(storage.CollectionRecipes)
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

	return writeAll(ctx, r.store, storage.CollectionRecipes, kept)
}

// validateRecipe 寫入邊界驗證
func validateRecipe(item *common.Recipe) error {
	if strings.TrimSpace(item.Title) == "" {
		return common.NewValidationError("料理名は必須です")
	}
	if strings.TrimSpace(item.Body) == "" {
		return common.NewValidationError("作り方は必須です")
	}
	if item.Time <= 0 {
		return common.NewValidationError("調理時間必須為正整數")
	}
	if !common.IsValidDifficulty(item.Difficulty) {
		return common.NewValidationError("未知的難度: " + item.Difficulty)
	}

	// 分量表的鍵必須對應食材清單
	ids := make(map[string]bool, len(item.IngredientIDs))
	for _, id := range item.IngredientIDs {
		ids[id] = true
	}
	for key := range item.Quantities {
		if !ids[key] {
			return common.NewValidationError("分量表包含未列出的食材 id: " + key)
		}
	}
	return nil
}
