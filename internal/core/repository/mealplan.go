package repository

import (
	"context"
	"strings"
	"time"

	"umapedia/internal/infrastructure/storage"
	"umapedia/internal/pkg/common"

	"go.uber.org/zap"
)

// MealPlanRepository 獻立存取器
type MealPlanRepository struct {
	store storage.Store
	locks *lockTable
}

// GetAll 取得所有獻立
func (r *MealPlanRepository) GetAll(ctx context.Context) ([]common.MealPlan, error) {
	return readAll[common.MealPlan](ctx, r.store, storage.CollectionMealPlans)
}

// Add 新增獻立，產生識別碼後回傳完整記錄
// 同一 (date, period) 允許多筆，不做唯一性檢查
func (r *MealPlanRepository) Add(ctx context.Context, item common.MealPlan) (*common.MealPlan, error) {
	if err := validateMealPlan(&item); err != nil {
		return nil, err
	}

	lock := r.locks.forCollection(storage.CollectionMealPlans)
	lock.Lock()
	defer lock.Unlock()

	items, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	item.ID = common.GenerateID()
	items = append(items, item)

	if err := writeAll(ctx, r.store, storage.CollectionMealPlans, items); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete 依識別碼刪除，找不到時為 no-op
func (r *MealPlanRepository) Delete(ctx context.Context, id string) error {
	lock := r.locks.forCollection(storage.CollectionMealPlans)
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

	return writeAll(ctx, r.store, storage.CollectionMealPlans, kept)
}

// validateMealPlan 寫入邊界驗證
func validateMealPlan(item *common.MealPlan) error {
	if _, err := time.Parse(common.DateLayout, item.Date); err != nil {
		return common.NewValidationError("日期格式必須為 YYYY-MM-DD: " + item.Date)
	}
	if !common.IsValidPeriod(item.Period) {
		return common.NewValidationError("未知的餐別: " + item.Period)
	}

	// recipeId 與 customTitle 預期恰好填一個；兩者皆空或皆填只記警告，不視為錯誤
	hasRecipe := item.RecipeID != ""
	hasCustom := strings.TrimSpace(item.CustomTitle) != ""
	if hasRecipe == hasCustom {
		common.LogWarn("獻立的 recipeId 與 customTitle 應擇一填寫",
			zap.String("date", item.Date),
			zap.String("period", item.Period),
			zap.Bool("has_recipe", hasRecipe),
			zap.Bool("has_custom", hasCustom),
		)
	}
	return nil
}
