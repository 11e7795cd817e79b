// Package seed 首次啟動時寫入預設資料。
package seed

import (
	"context"

	"umapedia/internal/core/repository"
	"umapedia/internal/pkg/common"

	"go.uber.org/zap"
)

// 預設食材（出廠示範資料）
var defaultIngredients = []common.Ingredient{
	{Name: "にんじん", Category: common.CategoryVegetable},
	{Name: "たまねぎ", Category: common.CategoryVegetable},
	{Name: "じゃがいも", Category: common.CategoryVegetable},
	{Name: "鶏むね肉", Category: common.CategoryMeat},
	{Name: "豚バラ肉", Category: common.CategoryMeat},
	{Name: "サーモン", Category: common.CategorySeafood},
	{Name: "醤油", Category: common.CategorySeasoning},
	{Name: "卵", Category: common.CategoryDairy},
	{Name: "ご飯", Category: common.CategoryOther},
}

// defaultRecipes 以實際產生的食材 id 組出兩道預設食譜
func defaultRecipes(ids []string) []common.Recipe {
	return []common.Recipe{
		{
			Title:         "カレーライス",
			IngredientIDs: ids[:5],
			Quantities:    map[string]string{ids[0]: "2本", ids[1]: "1個", ids[3]: "300g"},
			Body:          "1. 野菜と肉を食べやすい大きさに切る。\n2. 肉と野菜を炒める。\n3. 水を加えて煮込む。\n4. カレールーを加えて溶かす。\n5. ご飯と一緒に盛り付けて完成。",
			Time:          45,
			Difficulty:    common.DifficultyEasy,
			Favorite:      false,
			Tags:          []string{"夕食", "子どもに人気"},
			ImageURL:      "https://images.unsplash.com/photo-1565557623262-b51c2513a641?auto=format&fit=crop&w=800&q=80",
			ThumbnailURL:  "https://images.unsplash.com/photo-1565557623262-b51c2513a641?auto=format&fit=crop&w=300&h=300&q=80",
		},
		{
			Title:         "親子丼",
			IngredientIDs: []string{ids[3], ids[1], ids[7]},
			Quantities:    map[string]string{ids[3]: "150g", ids[1]: "1/2個", ids[7]: "2個"},
			Body:          "1. たまねぎと鶏肉を薄切りにする。\n2. だし・醤油・みりんで煮る。\n3. 溶き卵を回しかけ、半熟になったら火を止める。\n4. ご飯の上に盛り付けて完成。",
			Time:          20,
			Difficulty:    common.DifficultyEasy,
			Favorite:      true,
			Tags:          []string{"和食", "時短"},
			ImageURL:      "https://images.unsplash.com/photo-1580476262798-bddd9f4b7369?auto=format&fit=crop&w=800&q=80",
			ThumbnailURL:  "https://images.unsplash.com/photo-1580476262798-bddd9f4b7369?auto=format&fit=crop&w=300&h=300&q=80",
		},
	}
}

// Run 在食材集合為空時寫入預設食材與食譜，否則什麼都不做
func Run(ctx context.Context, repos *repository.Repositories) error {
	existing, err := repos.Ingredients.GetAll(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		common.LogDebug("既有資料存在，略過初始資料寫入",
			zap.Int("食材數", len(existing)),
		)
		return nil
	}

	common.LogInfo("サンプルデータを生成中...")

	ids := make([]string, 0, len(defaultIngredients))
	for _, ing := range defaultIngredients {
		created, err := repos.Ingredients.Add(ctx, ing)
		if err != nil {
			return err
		}
		ids = append(ids, created.ID)
	}

	for _, r := range defaultRecipes(ids) {
		if _, err := repos.Recipes.Add(ctx, r); err != nil {
			return err
		}
	}

	common.LogInfo("サンプルデータの生成完了！")
	return nil
}
