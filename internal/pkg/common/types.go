package common

import "time"

// DateLayout 日曆日期的序列化格式（ISO，YYYY-MM-DD）
const DateLayout = "2006-01-02"

// Category 食材分類
type Category = string

// 固定的六種食材分類（沿用日文值作為儲存格式）
const (
	CategoryVegetable Category = "野菜"
	CategoryMeat      Category = "肉類"
	CategorySeafood   Category = "魚介類"
	CategorySeasoning Category = "調味料"
	CategoryDairy     Category = "乳製品"
	CategoryOther     Category = "その他"
)

// Categories 所有分類（固定順序）
var Categories = []Category{
	CategoryVegetable,
	CategoryMeat,
	CategorySeafood,
	CategorySeasoning,
	CategoryDairy,
	CategoryOther,
}

// IsValidCategory 檢查分類是否合法
func IsValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Difficulty 食譜難度
type Difficulty = string

const (
	DifficultyEasy   Difficulty = "簡単"
	DifficultyNormal Difficulty = "普通"
	DifficultyHard   Difficulty = "難しい"
)

// IsValidDifficulty 檢查難度是否合法
func IsValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyNormal || d == DifficultyHard
}

// MealPeriod 餐別
type MealPeriod = string

const (
	PeriodBreakfast MealPeriod = "朝食"
	PeriodLunch     MealPeriod = "昼食"
	PeriodDinner    MealPeriod = "夕食"
)

// IsValidPeriod 檢查餐別是否合法
func IsValidPeriod(p string) bool {
	return p == PeriodBreakfast || p == PeriodLunch || p == PeriodDinner
}

// Ingredient 食材
type Ingredient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Memo     string `json:"memo,omitempty"`
}

// Recipe 食譜
// Quantities 的鍵對應 IngredientIDs 中的食材 id，值為自由文字分量（例：2本、少々）
type Recipe struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	IngredientIDs []string          `json:"ingredientIds"`
	Quantities    map[string]string `json:"quantities"`
	Body          string            `json:"body"` // 換行分隔的步驟文字
	ImageURL      string            `json:"imageUrl,omitempty"`
	ThumbnailURL  string            `json:"thumbnailUrl,omitempty"` // 300x300
	Time          int               `json:"time"`                   // 分鐘
	Difficulty    string            `json:"difficulty"`
	Favorite      bool              `json:"favorite"`
	Tags          []string          `json:"tags"`
	CreatedAt     int64             `json:"createdAt"` // Unix 毫秒，建立時寫入後不再變動
}

// MealPlan 獻立（菜單計畫）
// RecipeID 與 CustomTitle 預期恰好填其中一個；同一 (date, period) 可有多筆
type MealPlan struct {
	ID          string `json:"id"`
	Date        string `json:"date"` // YYYY-MM-DD
	Period      string `json:"period"`
	RecipeID    string `json:"recipeId,omitempty"`
	CustomTitle string `json:"customTitle,omitempty"`
}

// FridgeItem 冷藏庫項目
// IngredientID 為對食材的弱引用，食材刪除後允許懸空
type FridgeItem struct {
	ID           string `json:"id"`
	IngredientID string `json:"ingredientId"`
	Quantity     string `json:"quantity"`
	ExpireDate   string `json:"expireDate"` // YYYY-MM-DD
}

// IsExpired 判斷是否已過期（讀取時計算，不儲存）
func (f FridgeItem) IsExpired(now time.Time) bool {
	d, err := time.Parse(DateLayout, f.ExpireDate)
	if err != nil {
		return false
	}
	return d.Before(now)
}

// IsExpiringSoon 判斷是否即將過期（0 ≤ 剩餘天數 ≤ 3）
func (f FridgeItem) IsExpiringSoon(now time.Time) bool {
	d, err := time.Parse(DateLayout, f.ExpireDate)
	if err != nil {
		return false
	}
	diff := d.Sub(now).Hours() / 24
	return diff >= 0 && diff <= 3
}
