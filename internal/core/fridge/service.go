// Package fridge 冷藏庫的讀取時衍生狀態。
// 期限狀態（過期、即將過期）每次讀取時以目前時間計算，不寫回儲存。
package fridge

import (
	"time"

	"umapedia/internal/pkg/common"
)

// UnknownIngredientName 懸空引用的顯示名稱
const UnknownIngredientName = "不明"

// ItemView 冷藏庫項目的顯示用視圖
type ItemView struct {
	common.FridgeItem
	IngredientName string `json:"ingredientName"`
	Resolved       bool   `json:"resolved"`
	Expired        bool   `json:"expired"`
	ExpiringSoon   bool   `json:"expiringSoon"`
}

// Service 冷藏庫視圖服務
// nowFn 可注入，測試時固定「現在」
type Service struct {
	nowFn func() time.Time
}

// NewService 建立冷藏庫視圖服務
func NewService() *Service {
	return &Service{nowFn: time.Now}
}

// NewServiceAt 建立使用固定時間來源的服務
func NewServiceAt(nowFn func() time.Time) *Service {
	return &Service{nowFn: nowFn}
}

// BuildViews 把冷藏庫項目組成顯示視圖
// 食材為弱引用：解析不到時名稱標為「不明」，絕不報錯
func (s *Service) BuildViews(items []common.FridgeItem, ingredients []common.Ingredient) []ItemView {
	now := s.nowFn()

	byID := make(map[string]common.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{
			FridgeItem:     item,
			IngredientName: UnknownIngredientName,
			Expired:        item.IsExpired(now),
		}
		// 「即將過期」只在未過期時成立
		view.ExpiringSoon = !view.Expired && item.IsExpiringSoon(now)
		if ing, ok := byID[item.IngredientID]; ok {
			view.IngredientName = ing.Name
			view.Resolved = true
		}
		out = append(out, view)
	}
	return out
}
