package api

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"umapedia/internal/api/handlers/health"
	mealplanHandler "umapedia/internal/api/handlers/mealplan"
	pantryHandler "umapedia/internal/api/handlers/pantry"
	recipeHandler "umapedia/internal/api/handlers/recipe"
	"umapedia/internal/api/middleware"
	"umapedia/internal/core/fridge"
	"umapedia/internal/core/image"
	"umapedia/internal/core/mealplan"
	"umapedia/internal/core/state"
	"umapedia/internal/infrastructure/config"
	"umapedia/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 30 * time.Second
	// 請求體大小限制 (10MB)
	maxBodySize = 10 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, stateStore *state.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 速率限制
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	common.LogInfo("Initializing services",
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.Int("thumbnail_size", cfg.Image.ThumbnailSize),
		zap.Duration("timeout", timeoutDuration),
	)

	// 初始化服務
	fridgeSvc := fridge.NewService()
	imageSvc := image.NewService(cfg.Image.ThumbnailSize, cfg.Image.MaxSizeBytes, cfg.Image.FetchTimeout)
	suggestionSvc := mealplan.NewSuggestionService(rand.New(rand.NewSource(time.Now().UnixNano())))

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		// 設置請求超時
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		// 創建新的請求上下文
		req := c.Request.WithContext(ctx)
		c.Request = req

		// 設置配置
		c.Set("config", cfg)

		// 處理請求
		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  common.ErrCodeRequestTimeout,
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		pantry := pantryHandler.NewHandler(stateStore, fridgeSvc)
		recipes := recipeHandler.NewHandler(stateStore, imageSvc)
		mealPlans := mealplanHandler.NewHandler(stateStore, suggestionSvc)

		// 食材路由
		ingredientGroup := api.Group("/ingredients")
		{
			ingredientGroup.GET("", pantry.ListIngredients)
			ingredientGroup.POST("", pantry.CreateIngredient)
			ingredientGroup.PUT("/:id", pantry.UpdateIngredient)
			ingredientGroup.DELETE("/:id", pantry.DeleteIngredient)
		}

		// 食譜路由，列表用 q 參數做關鍵字搜尋
		recipeGroup := api.Group("/recipes")
		{
			recipeGroup.GET("", recipes.List)
			recipeGroup.GET("/:id", recipes.Get)
			recipeGroup.POST("", recipes.Create)
			recipeGroup.PUT("/:id", recipes.Update)
			recipeGroup.DELETE("/:id", recipes.Delete)
			recipeGroup.POST("/:id/favorite", recipes.ToggleFavorite)
		}

		// 獻立路由
		mealPlanGroup := api.Group("/mealplans")
		{
			mealPlanGroup.GET("", mealPlans.List)
			mealPlanGroup.POST("", mealPlans.Create)
			mealPlanGroup.DELETE("/:id", mealPlans.Delete)
		}

		// 冷藏庫路由
		fridgeGroup := api.Group("/fridge")
		{
			fridgeGroup.GET("", pantry.ListFridge)
			fridgeGroup.POST("", pantry.AddToFridge)
			fridgeGroup.DELETE("/:id", pantry.RemoveFromFridge)
		}

		// AIシェフ提案
		api.GET("/suggest", mealPlans.Suggest)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
