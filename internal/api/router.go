package api

import (
	"time"

	authHandler "recipe-app-api/internal/api/handlers/auth"
	generatorHandler "recipe-app-api/internal/api/handlers/generator"
	"recipe-app-api/internal/api/handlers/health"
	mealplanHandler "recipe-app-api/internal/api/handlers/mealplan"
	recipeHandler "recipe-app-api/internal/api/handlers/recipe"
	saveHandler "recipe-app-api/internal/api/handlers/save"
	"recipe-app-api/internal/api/middleware"
	"recipe-app-api/internal/core/ai/gemini"
	"recipe-app-api/internal/core/auth"
	generatorService "recipe-app-api/internal/core/generator"
	"recipe-app-api/internal/core/image"
	mealplanService "recipe-app-api/internal/core/mealplan"
	recipeService "recipe-app-api/internal/core/recipe"
	saveStore "recipe-app-api/internal/core/save"
	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 請求體大小限制 (1MB)，這個 API 只收純 JSON
const maxBodySize = 1 << 20

// 唯一允許收藏食譜的使用者
var validSaveUsers = []string{"estanislao"}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config) (*gin.Engine, error) {
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

	// CORS 設置：允許前端開發伺服器來源
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 簽名密鑰用了不安全的預設值時提醒（部署風險）
	if cfg.Auth.SecretKey == config.InsecureDefaultSecretKey {
		common.LogWarn("SECRET_KEY 未設定，使用不安全的開發預設值")
	}

	// 初始化上游客戶端與各服務
	geminiClient := gemini.NewClient(&cfg.Gemini)
	imageResolver := image.NewResolver(&cfg.Image)

	recipeSvc := recipeService.NewService(geminiClient, imageResolver, cfg)
	generatorSvc := generatorService.NewService(geminiClient, imageResolver, cfg)
	mealplanSvc := mealplanService.NewService(geminiClient, imageResolver, cfg)
	store := saveStore.NewStore(validSaveUsers)
	authSvc := auth.NewService(auth.SeededStore(), cfg.Auth.SecretKey)

	common.LogInfo("Services initialized",
		zap.Bool("gemini_key_set", geminiClient.HasKey()),
		zap.Bool("image_keys_set", cfg.Image.HasImageKeys()),
		zap.String("model", cfg.Gemini.Model),
	)

	// 處理程序
	healthH := health.NewHandler(cfg)
	recipeH := recipeHandler.NewHandler(recipeSvc)
	generatorH := generatorHandler.NewHandler(generatorSvc)
	mealplanH := mealplanHandler.NewHandler(mealplanSvc)
	saveH := saveHandler.NewHandler(store)
	authH := authHandler.NewHandler(authSvc)

	// 基礎路由
	router.GET("/", healthH.Root)
	router.GET("/health", healthH.HealthCheck)

	// 食譜推薦與詳情
	router.POST("/recommend", recipeH.HandleRecommend)
	router.POST("/recipe-details", recipeH.HandleDetails)

	// 食譜生成
	router.POST("/generate", generatorH.HandleGenerate)
	router.POST("/generate-plan", mealplanH.HandleGeneratePlan)

	// 收藏
	router.POST("/save-recipe", saveH.HandleSave)
	router.GET("/saved-recipes/:username", saveH.HandleList)
	router.DELETE("/delete-recipe/:username/:recipe_name", saveH.HandleDelete)

	// 認證
	router.POST("/token", authH.HandleToken)
	router.POST("/request-verification", authH.HandleRequestVerification)
	router.POST("/verify-and-register", authH.HandleVerifyAndRegister)
	router.POST("/forgot-password", authH.HandleForgotPassword)
	router.POST("/reset-password", authH.HandleResetPassword)

	// 需要 token 的個人資料端點
	me := router.Group("/users", middleware.BearerAuth(authSvc))
	{
		me.GET("/me", authH.HandleMe)
		me.PUT("/me", authH.HandleUpdateMe)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
