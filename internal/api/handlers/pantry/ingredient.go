package pantry

import (
	"net/http"

	"umapedia/internal/core/fridge"
	"umapedia/internal/core/state"
	"umapedia/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 食材與冰箱處理器
type Handler struct {
	state  *state.Store
	fridge *fridge.Service
}

// NewHandler 創建處理器
func NewHandler(st *state.Store, fr *fridge.Service) *Handler {
	return &Handler{state: st, fridge: fr}
}

// ListIngredients 獲取全部食材
func (h *Handler) ListIngredients(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"ingredients": h.state.Ingredients(),
	})
}

// CreateIngredient 新增食材
func (h *Handler) CreateIngredient(c *gin.Context) {
	var item common.Ingredient
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式: " + err.Error(),
		})
		return
	}

	created, err := h.state.AddIngredient(c.Request.Context(), item)
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}

	common.LogInfo("食材已新增",
		zap.String("id", created.ID),
		zap.String("name", created.Name),
	)
	c.JSON(http.StatusCreated, created)
}

// UpdateIngredient 更新食材
func (h *Handler) UpdateIngredient(c *gin.Context) {
	var item common.Ingredient
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式: " + err.Error(),
		})
		return
	}
	item.ID = c.Param("id")

	updated, err := h.state.UpdateIngredient(c.Request.Context(), item)
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	if updated == nil {
		// 不存在時不報錯，維持冪等
		c.JSON(http.StatusOK, gin.H{"updated": false})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteIngredient 刪除食材
func (h *Handler) DeleteIngredient(c *gin.Context) {
	if err := h.state.RemoveIngredient(c.Request.Context(), c.Param("id")); err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
