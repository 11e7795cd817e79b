package recipe

import (
	"testing"

	"umapedia/internal/pkg/common"

	"github.com/stretchr/testify/assert"
)

func searchFixture() ([]common.Recipe, []common.Ingredient) {
	ingredients := []common.Ingredient{
		{ID: "i1", Name: "にんじん", Category: common.CategoryVegetable},
		{ID: "i2", Name: "鶏むね肉", Category: common.CategoryMeat},
	}
	recipes := []common.Recipe{
		{ID: "r1", Title: "カレーライス", IngredientIDs: []string{"i1"}, Tags: []string{"夕食", "子どもに人気"}},
		{ID: "r2", Title: "親子丼", IngredientIDs: []string{"i2", "gone"}, Tags: []string{"和食"}},
		{ID: "r3", Title: "Chicken Soup", IngredientIDs: []string{"i2"}, Tags: []string{"soup"}},
	}
	return recipes, ingredients
}

func TestSearchEmptyQueryReturnsAll(t *testing.T) {
	recipes, ingredients := searchFixture()
	assert.Len(t, Search(recipes, ingredients, ""), 3)
	assert.Len(t, Search(recipes, ingredients, "   "), 3)
}

func TestSearchByTitle(t *testing.T) {
	recipes, ingredients := searchFixture()

	got := Search(recipes, ingredients, "カレー")
	assert.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)

	// 英文標題大小寫不敏感
	got = Search(recipes, ingredients, "chicken")
	assert.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)
}

func TestSearchByTag(t *testing.T) {
	recipes, ingredients := searchFixture()

	got := Search(recipes, ingredients, "和食")
	assert.Len(t, got, 1)
	assert.Equal(t, "r2", got[0].ID)
}

func TestSearchByIngredientName(t *testing.T) {
	recipes, ingredients := searchFixture()

	// 鶏むね肉 被 r2 與 r3 引用
	got := Search(recipes, ingredients, "鶏むね")
	assert.Len(t, got, 2)
}

func TestSearchSkipsDanglingReferences(t *testing.T) {
	recipes, ingredients := searchFixture()

	// r2 引用了不存在的食材 id，不報錯也不影響其他條件
	got := Search(recipes, ingredients, "存在しない")
	assert.Empty(t, got)
}
