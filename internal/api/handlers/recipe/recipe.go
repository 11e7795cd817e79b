package recipe

import (
	"net/http"
	"strconv"

	"umapedia/internal/core/image"
	corerecipe "umapedia/internal/core/recipe"
	"umapedia/internal/core/state"
	"umapedia/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食譜處理器
type Handler struct {
	state  *state.Store
	images *image.Service
}

// NewHandler 創建處理器
func NewHandler(st *state.Store, images *image.Service) *Handler {
	return &Handler{state: st, images: images}
}

// List 獲取食譜列表，支援 q 參數做關鍵字搜尋
func (h *Handler) List(c *gin.Context) {
	recipes := h.state.Recipes()
	if q := c.Query("q"); q != "" {
		recipes = corerecipe.Search(recipes, h.state.Ingredients(), q)
	}
	c.JSON(http.StatusOK, gin.H{
		"recipes": recipes,
	})
}

// Get 獲取單一食譜，servings 參數會附帶換算後的食材份量
func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	recipes := h.state.Recipes()
	var found *common.Recipe
	for i := range recipes {
		if recipes[i].ID == id {
			found = &recipes[i]
			break
		}
	}
	if found == nil {
		c.JSON(http.StatusNotFound, common.ErrorResponse{
			Code:    common.ErrCodeNotFound,
			Message: "找不到食譜",
		})
		return
	}

	resp := gin.H{"recipe": found}
	if raw := c.Query("servings"); raw != "" {
		servings, err := strconv.Atoi(raw)
		if err != nil || servings < 1 {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{
				Code:    common.ErrCodeInvalidRequest,
				Message: "servings 必須為正整數",
			})
			return
		}
		resp["servings"] = servings
		resp["scaledIngredients"] = corerecipe.ScaleIngredients(*found, h.state.Ingredients(), servings)
	}
	c.JSON(http.StatusOK, resp)
}

// Create 新增食譜，有圖片時順帶產生縮圖
func (h *Handler) Create(c *gin.Context) {
	var item common.Recipe
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式: " + err.Error(),
		})
		return
	}

	if item.ImageURL != "" && item.ThumbnailURL == "" {
		thumb, err := h.images.GenerateThumbnail(c.Request.Context(), item.ImageURL)
		if err != nil {
			// 縮圖失敗不阻擋建立
			common.LogWarn("縮圖產生失敗",
				zap.String("title", item.Title),
				zap.Error(err),
			)
		} else {
			item.ThumbnailURL = thumb
		}
	}

	created, err := h.state.AddRecipe(c.Request.Context(), item)
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}

	common.LogInfo("食譜已新增",
		zap.String("id", created.ID),
		zap.String("title", created.Title),
	)
	c.JSON(http.StatusCreated, created)
}

// Update 更新食譜
func (h *Handler) Update(c *gin.Context) {
	var item common.Recipe
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式: " + err.Error(),
		})
		return
	}
	item.ID = c.Param("id")

	updated, err := h.state.UpdateRecipe(c.Request.Context(), item)
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	if updated == nil {
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete 刪除食譜
func (h *Handler) Delete(c *gin.Context) {
	if err := h.state.RemoveRecipe(c.Request.Context(), c.Param("id")); err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// ToggleFavorite 切換收藏狀態
func (h *Handler) ToggleFavorite(c *gin.Context) {
	updated, err := h.state.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	if updated == nil {
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}
	c.JSON(http.StatusOK, updated)
}
