package recipe

import (
	"fmt"
	"math"
	"regexp"
	"strconv"

	"umapedia/internal/pkg/common"
)

// BaseServings 食譜分量的基準人數
const BaseServings = 2

// ScaledIngredient 換算後的單一材料（顯示用，不落地）
type ScaledIngredient struct {
	IngredientID string `json:"ingredientId"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	Resolved     bool   `json:"resolved"` // 食材引用是否可解析
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)`)

// ScaleQuantity 依人數換算分量文字
// 取開頭的數字部分換算（「2本」→ 2），整數結果不帶小數、否則保留一位；
// 無法解析為數字的文字（「少々」）原樣回傳
func ScaleQuantity(qty string, servings int) string {
	if servings < 1 {
		servings = 1
	}

	m := leadingNumber.FindString(qty)
	if m == "" {
		return qty
	}
	num, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return qty
	}

	scaled := num * float64(servings) / float64(BaseServings)
	if scaled == math.Trunc(scaled) {
		return strconv.FormatFloat(scaled, 'f', -1, 64)
	}
	return fmt.Sprintf("%.1f", scaled)
}

// ScaleIngredients 依人數換算食譜的材料清單
// 懸空的食材引用不報錯，以 Resolved=false 標記，顯示層自行處理
func ScaleIngredients(r common.Recipe, ingredients []common.Ingredient, servings int) []ScaledIngredient {
	byID := make(map[string]common.Ingredient, len(ingredients))
	for _, ing := range ingredients {
		byID[ing.ID] = ing
	}

	out := make([]ScaledIngredient, 0, len(r.IngredientIDs))
	for _, id := range r.IngredientIDs {
		item := ScaledIngredient{IngredientID: id}
		if ing, ok := byID[id]; ok {
			item.Name = ing.Name
			item.Resolved = true
		}

		qty, ok := r.Quantities[id]
		if !ok || qty == "" {
			item.Quantity = "適量"
		} else {
			item.Quantity = ScaleQuantity(qty, servings)
		}
		out = append(out, item)
	}
	return out
}
