// Package state 持有四個集合的記憶體快照，供表現層讀取。
// 每次變更都是「先寫入 Repository、再整份重抓同一集合」的兩步序列，
// 方法返回後記憶體視圖必與持久層一致。不做樂觀更新，也不做失敗回滾。
package state

import (
	"context"
	"sync"

	"umapedia/internal/core/repository"
	"umapedia/internal/pkg/common"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Store 應用狀態容器
type Store struct {
	repos *repository.Repositories

	mu          sync.RWMutex
	ingredients []common.Ingredient
	recipes     []common.Recipe
	mealPlans   []common.MealPlan
	fridge      []common.FridgeItem
	loading     bool
	lastErr     error
}

// New 建立狀態容器
func New(repos *repository.Repositories) *Store {
	return &Store{
		repos:       repos,
		ingredients: []common.Ingredient{},
		recipes:     []common.Recipe{},
		mealPlans:   []common.MealPlan{},
		fridge:      []common.FridgeItem{},
	}
}

// Initialize 並行抓取四個集合，全部成功才算完成；可重複呼叫（冪等刷新）
// 任一集合失敗時整個初始化失敗：loading 清除、錯誤記錄於 Err()
// （原始行為未定義此路徑，這裡選擇「清除並帶錯誤標記」而非讓 loading 卡死）
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.FetchIngredients(gctx) })
	g.Go(func() error { return s.FetchRecipes(gctx) })
	g.Go(func() error { return s.FetchMealPlans(gctx) })
	g.Go(func() error { return s.FetchFridge(gctx) })

	err := g.Wait()

	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()

	if err != nil {
		common.LogError("狀態初始化失敗", zap.Error(err))
		return err
	}

	common.LogInfo("狀態初始化完成")
	return nil
}

// Loading 回報初始化是否進行中
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Err 回報最近一次初始化的錯誤
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Ingredients 取得食材快照
func (s *Store) Ingredients() []common.Ingredient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.Ingredient, len(s.ingredients))
	copy(out, s.ingredients)
	return out
}

// Recipes 取得食譜快照
// 食譜含引用型欄位，逐筆深拷貝，呼叫端改動不會寫穿到內部狀態
func (s *Store) Recipes() []common.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = cloneRecipe(r)
	}
	return out
}

func cloneRecipe(r common.Recipe) common.Recipe {
	if r.IngredientIDs != nil {
		r.IngredientIDs = append([]string(nil), r.IngredientIDs...)
	}
	if r.Tags != nil {
		r.Tags = append([]string(nil), r.Tags...)
	}
	if r.Quantities != nil {
		q := make(map[string]string, len(r.Quantities))
		for k, v := range r.Quantities {
			q[k] = v
		}
		r.Quantities = q
	}
	return r
}

// MealPlans 取得獻立快照
func (s *Store) MealPlans() []common.MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.MealPlan, len(s.mealPlans))
	copy(out, s.mealPlans)
	return out
}

// Fridge 取得冷藏庫快照
func (s *Store) Fridge() []common.FridgeItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]common.FridgeItem, len(s.fridge))
	copy(out, s.fridge)
	return out
}

// FetchIngredients 以持久層目前內容整份替換食材快照
func (s *Store) FetchIngredients(ctx context.Context) error {
	items, err := s.repos.Ingredients.GetAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.ingredients = items
	s.mu.Unlock()
	return nil
}

// FetchRecipes 以持久層目前內容整份替換食譜快照
func (s *Store) FetchRecipes(ctx context.Context) error {
	items, err := s.repos.Recipes.GetAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.recipes = items
	s.mu.Unlock()
	return nil
}

// FetchMealPlans 以持久層目前內容整份替換獻立快照
func (s *Store) FetchMealPlans(ctx context.Context) error {
	items, err := s.repos.MealPlans.GetAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mealPlans = items
	s.mu.Unlock()
	return nil
}

// FetchFridge 以持久層目前內容整份替換冷藏庫快照
func (s *Store) FetchFridge(ctx context.Context) error {
	items, err := s.repos.Fridge.GetAll(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.fridge = items
	s.mu.Unlock()
	return nil
}

// AddIngredient 新增食材並刷新快照
func (s *Store) AddIngredient(ctx context.Context, item common.Ingredient) (*common.Ingredient, error) {
	created, err := s.repos.Ingredients.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.FetchIngredients(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateIngredient 更新食材並刷新快照
func (s *Store) UpdateIngredient(ctx context.Context, item common.Ingredient) (*common.Ingredient, error) {
	updated, err := s.repos.Ingredients.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.FetchIngredients(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveIngredient 刪除食材並刷新快照
// 引用該食材的食譜或冷藏庫項目不受影響，引用將懸空
func (s *Store) RemoveIngredient(ctx context.Context, id string) error {
	if err := s.repos.Ingredients.Delete(ctx, id); err != nil {
		return err
	}
	return s.FetchIngredients(ctx)
}

// AddRecipe 新增食譜並刷新快照
func (s *Store) AddRecipe(ctx context.Context, item common.Recipe) (*common.Recipe, error) {
	created, err := s.repos.Recipes.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.FetchRecipes(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateRecipe 更新食譜並刷新快照
func (s *Store) UpdateRecipe(ctx context.Context, item common.Recipe) (*common.Recipe, error) {
	updated, err := s.repos.Recipes.Update(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.FetchRecipes(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveRecipe 刪除食譜並刷新快照
func (s *Store) RemoveRecipe(ctx context.Context, id string) error {
	if err := s.repos.Recipes.Delete(ctx, id); err != nil {
		return err
	}
	return s.FetchRecipes(ctx)
}

// ToggleFavorite 切換收藏並刷新快照；找不到時回傳 nil（非錯誤）
func (s *Store) ToggleFavorite(ctx context.Context, id string) (*common.Recipe, error) {
	updated, err := s.repos.Recipes.ToggleFavorite(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.FetchRecipes(ctx); err != nil {
		return nil, err
	}
	return updated, nil
}

// AddMealPlan 新增獻立並刷新快照
func (s *Store) AddMealPlan(ctx context.Context, item common.MealPlan) (*common.MealPlan, error) {
	created, err := s.repos.MealPlans.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.FetchMealPlans(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveMealPlan 刪除獻立並刷新快照
func (s *Store) RemoveMealPlan(ctx context.Context, id string) error {
	if err := s.repos.MealPlans.Delete(ctx, id); err != nil {
		return err
	}
	return s.FetchMealPlans(ctx)
}

// AddToFridge 新增冷藏庫項目並刷新快照
func (s *Store) AddToFridge(ctx context.Context, item common.FridgeItem) (*common.FridgeItem, error) {
	created, err := s.repos.Fridge.Add(ctx, item)
	if err != nil {
		return nil, err
	}
	if err := s.FetchFridge(ctx); err != nil {
		return nil, err
	}
	return created, nil
}

// RemoveFromFridge 刪除冷藏庫項目並刷新快照
func (s *Store) RemoveFromFridge(ctx context.Context, id string) error {
	if err := s.repos.Fridge.Delete(ctx, id); err != nil {
		return err
	}
	return s.FetchFridge(ctx)
}
