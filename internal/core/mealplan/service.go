package mealplan

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recipe-app-api/internal/core/ai/gemini"
	"recipe-app-api/internal/core/image"
	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// 一週 7 天、每天 3 餐
const expectedMealCount = 21

// PlanEntry 週計畫中的單一餐
type PlanEntry struct {
	ID       string     `json:"id"`
	Day      string     `json:"day"`
	MealType string     `json:"mealType"`
	Recipe   PlanRecipe `json:"recipe"`
}

// PlanRecipe 餐點食譜，欄位對應前端狀態
type PlanRecipe struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Image        string   `json:"image"`
	PrepTime     int      `json:"prepTime"`
	Difficulty   string   `json:"difficulty"`
	CuisineType  string   `json:"cuisineType"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// rawEntry 生成模型輸出的原始餐點結構
type rawEntry struct {
	Day      string     `json:"day"`
	MealType string     `json:"mealType"`
	Recipe   *rawRecipe `json:"recipe"`
}

type rawRecipe struct {
	Title        string   `json:"title"`
	PrepTime     int      `json:"prepTime"`
	Difficulty   string   `json:"difficulty"`
	CuisineType  string   `json:"cuisineType"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	ImageKeyword string   `json:"imageKeyword"`
}

// isEmpty 模型偶爾會輸出空的 recipe 物件，這類項目整筆跳過
func (r *rawRecipe) isEmpty() bool {
	return r == nil || (r.Title == "" && len(r.Ingredients) == 0 && len(r.Instructions) == 0)
}

// Service 週間餐點計畫生成服務
type Service struct {
	ai     gemini.TextGenerator
	images image.Searcher
	config *config.Config
}

// NewService 創建餐點計畫服務
func NewService(ai gemini.TextGenerator, images image.Searcher, cfg *config.Config) *Service {
	return &Service{
		ai:     ai,
		images: images,
		config: cfg,
	}
}

// Generate 生成完整的 7 天 × 3 餐計畫
// 透過 responseMimeType 要求模型直接輸出 JSON 陣列，因此整個回應體
// 直接解析，不做大括號掃描，對多餘的說明文字零容忍
func (s *Service) Generate(ctx context.Context, allergies []string) ([]PlanEntry, error) {
	if !s.ai.HasKey() || !s.config.Image.HasImageKeys() {
		return nil, common.NewError(common.ErrCodeInternalError,
			"One or more API keys (GEMINI, PIXABAY, PEXELS, UNPLASH) are not set in the .env file.",
			http.StatusInternalServerError, nil)
	}

	prompt := buildPlanPrompt(allergies)

	genCfg := &gemini.GenerationConfig{
		Temperature:      0.8,
		TopP:             1,
		TopK:             1,
		MaxOutputTokens:  8192,
		ResponseMIMEType: "application/json",
	}

	text, err := s.ai.GenerateContent(ctx, prompt, genCfg)
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceUnavailable,
			fmt.Sprintf("An error occurred with an external API: %v", err), http.StatusServiceUnavailable, err)
	}

	var entries []rawEntry
	if err := common.ParseJSON(strings.TrimSpace(text), &entries); err != nil {
		common.LogError("meal plan 回應解析失敗",
			zap.Error(err),
			zap.String("response_preview", text),
		)
		return nil, common.NewError(common.ErrCodeInternalError,
			"Gemini response was not a valid list.", http.StatusInternalServerError, err)
	}

	plan := make([]PlanEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Recipe.isEmpty() {
			continue
		}
		plan = append(plan, s.buildEntry(ctx, entry))
	}

	// 模型可能漏給部分餐點，接受較短的計畫但留下紀錄
	if len(plan) < expectedMealCount {
		common.LogWarn("meal plan 餐點數量不足",
			zap.Int("expected", expectedMealCount),
			zap.Int("actual", len(plan)),
		)
	}

	return plan, nil
}

// buildEntry 為單一餐點補上圖片並產生新的識別碼
func (s *Service) buildEntry(ctx context.Context, entry rawEntry) PlanEntry {
	recipe := entry.Recipe

	imageKeyword := recipe.ImageKeyword
	if imageKeyword == "" {
		imageKeyword = recipe.Title
	}
	if imageKeyword == "" {
		imageKeyword = "delicious food"
	}

	formatted := PlanRecipe{
		ID:           fmt.Sprintf("recipe-%s", uuid.New()),
		Title:        recipe.Title,
		Image:        s.images.Resolve(ctx, imageKeyword),
		PrepTime:     recipe.PrepTime,
		Difficulty:   recipe.Difficulty,
		CuisineType:  recipe.CuisineType,
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
	}

	// 缺漏欄位補預設值
	if formatted.Title == "" {
		formatted.Title = "Unnamed Recipe"
	}
	if formatted.PrepTime == 0 {
		formatted.PrepTime = 30
	}
	if formatted.Difficulty == "" {
		formatted.Difficulty = "Medium"
	}
	if formatted.CuisineType == "" {
		formatted.CuisineType = "Various"
	}
	if formatted.Ingredients == nil {
		formatted.Ingredients = []string{}
	}
	if formatted.Instructions == nil {
		formatted.Instructions = []string{}
	}

	return PlanEntry{
		ID:       fmt.Sprintf("meal-%s", uuid.New()),
		Day:      entry.Day,
		MealType: entry.MealType,
		Recipe:   formatted,
	}
}

// buildPlanPrompt 組合一週 21 餐的 prompt，要求模型直接輸出 JSON 陣列
func buildPlanPrompt(allergies []string) string {
	allergyInfo := "None"
	if len(allergies) > 0 {
		allergyInfo = strings.Join(allergies, ", ")
	}

	return fmt.Sprintf(
		"Generate a complete 7-day meal plan, including Breakfast, Lunch, and Dinner for each day from Monday to Sunday. "+
			"Ensure the plan is varied, creative, and balanced, with no repeated meals. "+
			"The recipes should be suitable for a home cook.\n"+
			"CRITICAL: The meal plan MUST NOT contain any of the following allergens: %s.\n\n"+
			"Provide the response STRICTLY in the following JSON format. The output MUST be a valid JSON array containing exactly 21 meal objects. "+
			"Do not include any text, comments, or markdown formatting like ```json before or after the JSON array.\n"+
			"[\n"+
			"  {\n"+
			"    \"day\": \"Monday\",\n"+
			"    \"mealType\": \"Breakfast\",\n"+
			"    \"recipe\": {\n"+
			"      \"title\": \"Creative and appealing name of the recipe\",\n"+
			"      \"prepTime\": 20,\n"+
			"      \"difficulty\": \"Easy\",\n"+
			"      \"cuisineType\": \"e.g., American\",\n"+
			"      \"ingredients\": [\"Quantity Unit Ingredient Name\", \"e.g., 2 large Eggs\", \"e.g., 1 cup Flour\"],\n"+
			"      \"instructions\": [\"Step-by-step instruction 1.\", \"Step-by-step instruction 2.\"],\n"+
			"      \"imageKeyword\": \"a short, descriptive phrase for an image search, e.g., fluffy blueberry pancakes\"\n"+
			"    }\n"+
			"  },\n"+
			"  ...\n"+
			"]\n"+
			"Continue this structure for all 21 meals, ending with Sunday Dinner.",
		allergyInfo)
}
