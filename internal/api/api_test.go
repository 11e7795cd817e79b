package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"umapedia/internal/core/repository"
	"umapedia/internal/core/state"
	"umapedia/internal/infrastructure/config"
	"umapedia/internal/infrastructure/storage"
	"umapedia/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	common.InitTestLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Version = "test"
	cfg.App.Env = "test"
	cfg.Storage.Backend = config.StorageBackendFile
	cfg.Image.MaxSizeBytes = 5 << 20
	cfg.Image.ThumbnailSize = 100
	cfg.Image.FetchTimeout = 5 * time.Second
	return cfg
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	st := state.New(repository.New(fs))
	require.NoError(t, st.Initialize(context.Background()))

	router, err := SetupRouter(testConfig(), st)
	require.NoError(t, err)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestRateLimitReturns429(t *testing.T) {
	fs, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	st := state.New(repository.New(fs))
	require.NoError(t, st.Initialize(context.Background()))

	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.Requests = 2
	cfg.RateLimit.Window = time.Minute

	router, err := SetupRouter(cfg, st)
	require.NoError(t, err)

	// 窗口內前兩個請求放行，第三個被擋
	rr := doJSON(t, router, http.MethodGet, "/api/v1/ingredients", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, router, http.MethodGet, "/api/v1/ingredients", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/ingredients", nil)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("Retry-After"))
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/live", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestIngredientLifecycle(t *testing.T) {
	router := newTestRouter(t)

	// 新增
	rr := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", common.Ingredient{
		Name:     "にんじん",
		Category: common.CategoryVegetable,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	var created common.Ingredient
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.NotEmpty(t, created.ID)

	// 列表
	rr = doJSON(t, router, http.MethodGet, "/api/v1/ingredients", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listResp struct {
		Ingredients []common.Ingredient `json:"ingredients"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Ingredients, 1)

	// 更新
	created.Memo = "セール品"
	rr = doJSON(t, router, http.MethodPut, "/api/v1/ingredients/"+created.ID, created)
	require.Equal(t, http.StatusOK, rr.Code)

	// 刪除，重複刪除也回 200
	rr = doJSON(t, router, http.MethodDelete, "/api/v1/ingredients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = doJSON(t, router, http.MethodDelete, "/api/v1/ingredients/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestIngredientValidationReturns400(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", common.Ingredient{
		Name:     "",
		Category: common.CategoryVegetable,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, common.ErrCodeInvalidRequest, resp.Code)
}

func TestRecipeSearchAndFavorite(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/recipes", common.Recipe{
		Title:      "カレーライス",
		Body:       "煮る",
		Time:       45,
		Difficulty: common.DifficultyEasy,
		Tags:       []string{"夕食"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var curry common.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &curry))

	rr = doJSON(t, router, http.MethodPost, "/api/v1/recipes", common.Recipe{
		Title:      "味噌汁",
		Body:       "だしに味噌を溶く",
		Time:       10,
		Difficulty: common.DifficultyEasy,
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	// 關鍵字過濾
	rr = doJSON(t, router, http.MethodGet, "/api/v1/recipes?q=カレー", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listResp struct {
		Recipes []common.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Recipes, 1)
	assert.Equal(t, "カレーライス", listResp.Recipes[0].Title)

	// 收藏切換
	rr = doJSON(t, router, http.MethodPost, "/api/v1/recipes/"+curry.ID+"/favorite", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var toggled common.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &toggled))
	assert.True(t, toggled.Favorite)
}

func TestRecipeGetWithServings(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/ingredients", common.Ingredient{
		Name:     "にんじん",
		Category: common.CategoryVegetable,
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var ing common.Ingredient
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ing))

	rr = doJSON(t, router, http.MethodPost, "/api/v1/recipes", common.Recipe{
		Title:         "カレーライス",
		Body:          "煮る",
		Time:          45,
		Difficulty:    common.DifficultyEasy,
		IngredientIDs: []string{ing.ID},
		Quantities:    map[string]string{ing.ID: "2本"},
	})
	require.Equal(t, http.StatusCreated, rr.Code)
	var curry common.Recipe
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &curry))

	rr = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+curry.ID+"?servings=4", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Servings          int `json:"servings"`
		ScaledIngredients []struct {
			Name     string `json:"name"`
			Quantity string `json:"quantity"`
		} `json:"scaledIngredients"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Servings)
	require.Len(t, resp.ScaledIngredients, 1)
	assert.Equal(t, "にんじん", resp.ScaledIngredients[0].Name)
	assert.Equal(t, "4", resp.ScaledIngredients[0].Quantity)

	// 不合法的 servings
	rr = doJSON(t, router, http.MethodGet, "/api/v1/recipes/"+curry.ID+"?servings=0", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// 不存在的食譜
	rr = doJSON(t, router, http.MethodGet, "/api/v1/recipes/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestMealPlanAndSuggest(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/mealplans", common.MealPlan{
		Date:        "2026-05-10",
		Period:      common.PeriodDinner,
		CustomTitle: "外食",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/mealplans?date=2026-05-10&period=夕食", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var listResp struct {
		MealPlans []common.MealPlan `json:"mealPlans"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	assert.Len(t, listResp.MealPlans, 1)

	// 其他日期為空
	rr = doJSON(t, router, http.MethodGet, "/api/v1/mealplans?date=2026-05-11", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	assert.Empty(t, listResp.MealPlans)

	// 沒有任何食譜時的提案
	rr = doJSON(t, router, http.MethodGet, "/api/v1/suggest", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var suggestResp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &suggestResp))
	assert.Contains(t, suggestResp.Message, "レシピを登録すると")
}

func TestFridgeViews(t *testing.T) {
	router := newTestRouter(t)

	rr := doJSON(t, router, http.MethodPost, "/api/v1/fridge", common.FridgeItem{
		IngredientID: "dangling",
		Quantity:     "1本",
		ExpireDate:   "2000-01-01",
	})
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = doJSON(t, router, http.MethodGet, "/api/v1/fridge", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var listResp struct {
		Items []struct {
			IngredientName string `json:"ingredientName"`
			Resolved       bool   `json:"resolved"`
			Expired        bool   `json:"expired"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listResp))
	require.Len(t, listResp.Items, 1)
	// 懸空引用顯示「不明」，過期狀態照算
	assert.Equal(t, "不明", listResp.Items[0].IngredientName)
	assert.False(t, listResp.Items[0].Resolved)
	assert.True(t, listResp.Items[0].Expired)
}
