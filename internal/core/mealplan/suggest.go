// Package mealplan 獻立計畫的衍生邏輯。
package mealplan

import (
	"fmt"
	"math/rand"
	"strings"

	"umapedia/internal/pkg/common"
)

// SuggestionService 「AIシェフ」的獻立提案
// 從與冷藏庫食材有重疊的食譜中隨機挑一道；沒有重疊就從全部食譜挑，
// 連食譜都沒有時提示先登錄。只是隨機挑選，不是排序或推論。
type SuggestionService struct {
	rng *rand.Rand
}

// NewSuggestionService 建立提案服務
func NewSuggestionService(rng *rand.Rand) *SuggestionService {
	return &SuggestionService{rng: rng}
}

// Suggest 產生提案訊息
func (s *SuggestionService) Suggest(recipes []common.Recipe, fridge []common.FridgeItem, ingredients []common.Ingredient) string {
	fridgeIDs := make(map[string]bool, len(fridge))
	for _, item := range fridge {
		fridgeIDs[item.IngredientID] = true
	}

	var matchedRecipes []common.Recipe
	for _, r := range recipes {
		for _, id := range r.IngredientIDs {
			if fridgeIDs[id] {
				matchedRecipes = append(matchedRecipes, r)
				break
			}
		}
	}

	if len(matchedRecipes) > 0 {
		pick := matchedRecipes[s.rng.Intn(len(matchedRecipes))]

		byID := make(map[string]common.Ingredient, len(ingredients))
		for _, ing := range ingredients {
			byID[ing.ID] = ing
		}
		var names []string
		for _, id := range pick.IngredientIDs {
			if !fridgeIDs[id] {
				continue
			}
			// 懸空引用略過
			if ing, ok := byID[id]; ok {
				names = append(names, ing.Name)
			}
		}
		return fmt.Sprintf("「%s」はいかがですか？冷蔵庫の「%s」が活用できます！", pick.Title, strings.Join(names, "、"))
	}

	if len(recipes) > 0 {
		pick := recipes[s.rng.Intn(len(recipes))]
		return fmt.Sprintf("「%s」はいかがですか？", pick.Title)
	}

	return "レシピを登録するとAIシェフが提案できます 🍳"
}

// MealsForSlot 取得某日某餐別的所有獻立
// 同一格允許多筆，這裡只是過濾，不做唯一性假設
func MealsForSlot(plans []common.MealPlan, date string, period string) []common.MealPlan {
	out := make([]common.MealPlan, 0)
	for _, p := range plans {
		if p.Date == date && p.Period == period {
			out = append(out, p)
		}
	}
	return out
}
