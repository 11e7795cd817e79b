package mealplan

import (
	"net/http"

	coremealplan "umapedia/internal/core/mealplan"
	"umapedia/internal/core/state"
	"umapedia/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler 獻立處理器
type Handler struct {
	state      *state.Store
	suggestion *coremealplan.SuggestionService
}

// NewHandler 創建處理器
func NewHandler(st *state.Store, suggestion *coremealplan.SuggestionService) *Handler {
	return &Handler{state: st, suggestion: suggestion}
}

// List 獲取獻立列表，支援 date 與 period 過濾
func (h *Handler) List(c *gin.Context) {
	plans := h.state.MealPlans()

	date := c.Query("date")
	period := c.Query("period")
	if date != "" && period != "" {
		plans = coremealplan.MealsForSlot(plans, date, period)
	} else if date != "" {
		filtered := make([]common.MealPlan, 0)
		for _, p := range plans {
			if p.Date == date {
				filtered = append(filtered, p)
			}
		}
		plans = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"mealPlans": plans,
	})
}

// Create 新增獻立
func (h *Handler) Create(c *gin.Context) {
	var item common.MealPlan
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "無效的請求格式: " + err.Error(),
		})
		return
	}

	created, err := h.state.AddMealPlan(c.Request.Context(), item)
	if err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}

	common.LogInfo("獻立已新增",
		zap.String("id", created.ID),
		zap.String("date", created.Date),
		zap.String("period", created.Period),
	)
	c.JSON(http.StatusCreated, created)
}

// Delete 刪除獻立
func (h *Handler) Delete(c *gin.Context) {
	if err := h.state.RemoveMealPlan(c.Request.Context(), c.Param("id")); err != nil {
		status, resp := common.HTTPStatus(err)
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Suggest AIシェフ的獻立提案
func (h *Handler) Suggest(c *gin.Context) {
	message := h.suggestion.Suggest(
		h.state.Recipes(),
		h.state.Fridge(),
		h.state.Ingredients(),
	)
	c.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
