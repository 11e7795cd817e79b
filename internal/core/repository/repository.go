package repository

import (
	"context"
	"fmt"
	"sync"

	"umapedia/internal/infrastructure/storage"
	"umapedia/internal/pkg/common"
)

// Repositories 聚合四個實體的存取器，共用同一個持久層與鎖表
type Repositories struct {
	Ingredients *IngredientRepository
	Recipes     *RecipeRepository
	MealPlans   *MealPlanRepository
	Fridge      *FridgeRepository
}

// New 建立所有存取器
func New(store storage.Store) *Repositories {
	locks := newLockTable()
	return &Repositories{
		Ingredients: &IngredientRepository{store: store, locks: locks},
		Recipes:     &RecipeRepository{store: store, locks: locks},
		MealPlans:   &MealPlanRepository{store: store, locks: locks},
		Fridge:      &FridgeRepository{store: store, locks: locks},
	}
}

// lockTable 每個集合一把鎖
// 寫入單位是整個集合，並行的 read-modify-write 會互相覆蓋，
// 因此對同名集合的變更必須逐一執行。鎖以集合名稱為粒度，
// 不同集合之間互不阻塞，公開介面不變。
type lockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *lockTable) forCollection(name string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	l, ok := t.locks[name]
	if !ok {
		l = &sync.Mutex{}
		t.locks[name] = l
	}
	return l
}

// readAll 讀取整個集合並反序列化，鍵不存在時回傳空切片
func readAll[T any](ctx context.Context, store storage.Store, name string) ([]T, error) {
	data, err := store.ReadCollection(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []T{}, nil
	}

	var items []T
	if err := common.ParseJSONBytes(data, &items); err != nil {
		return nil, fmt.Errorf("decode collection %s: %w", name, err)
	}

	common.LogStorageRead(name, len(items))
	return items, nil
}

// writeAll 序列化並整份覆寫集合
func writeAll[T any](ctx context.Context, store storage.Store, name string, items []T) error {
	data, err := common.ToJSONBytes(items)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}

	if err := store.WriteCollection(ctx, name, data); err != nil {
		return err
	}

	common.LogStorageWrite(name, len(items))
	return nil
}
