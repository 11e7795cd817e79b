package pantry

import (
	"net/http"

	"umapedia/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListFridge 獲取冷藏庫內容，附帶食材名稱與期限狀態
func (h *Handler) ListFridge(c *gin.Context) {
	views := h.fridge.BuildViews(h.state.Fridge(), h.state.Ingredients())
	c.JSON(http.StatusOK, gin.H{
		"items": views,
	})
}

// AddToFridge 新增冷藏庫項目
func (h *Handler) AddToFridge(c *gin.Context) {
	var item common.FridgeItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式: " + err.Error(),
		})
		return
	}

	created, err := h.state.AddToFridge(c.Request.Context(), item)
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}

	common.LogInfo("冷藏庫項目已新增",
		zap.String("id", created.ID),
		zap.String("ingredient_id", created.IngredientID),
	)
	c.JSON(http.StatusCreated, created)
}

// RemoveFromFridge 刪除冷藏庫項目
func (h *Handler) RemoveFromFridge(c *gin.Context) {
	if err := h.state.RemoveFromFridge(c.Request.Context(), c.Param("id")); err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
