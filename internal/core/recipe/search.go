package recipe

import (
	"strings"

	"umapedia/internal/pkg/common"
)

// Search 以關鍵字過濾食譜
// 比對料理名、タグ、以及可解析的食材名稱（大小寫不敏感的部分一致）。
// 懸空的食材引用直接略過，不視為錯誤。空關鍵字回傳全部。
func Search(recipes []common.Recipe, ingredients []common.Ingredient, query string) []common.Recipe {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return recipes
	}

	byID := make(map[string]common.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	out := make([]common.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if matches(r, byID, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r common.Recipe, byID map[string]common.Ingredient, q string) bool {
	if strings.Contains(strings.ToLower(r.Title), q) {
		return true
	}
	for _, tag := range r.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	for _, id := range r.IngredientIDs {
		ing, ok := byID[id]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(ing.Name), q) {
			return true
		}
	}
	return false
}
