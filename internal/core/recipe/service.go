package recipe

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"recipe-app-api/internal/core/ai/gemini"
	"recipe-app-api/internal/core/image"
	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Summary 推薦清單中的單一食譜摘要
type Summary struct {
	RecipeNumber string `json:"recipe_number"`
	RecipeName   string `json:"recipe_name"`
	CookTime     string `json:"cook_time"`
	Difficulty   string `json:"difficulty"`
	ImageURL     string `json:"image_url"`
}

// Detail 單一食譜的完整資訊
type Detail struct {
	RecipeName   string   `json:"recipe_name"`
	CookTime     string   `json:"cook_time"`
	Difficulty   string   `json:"difficulty"`
	ImageURL     string   `json:"image_url"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	Servings     string   `json:"servings"`
}

// DetailRequest 已知的食譜基本資料，查詢詳情時原樣帶回
type DetailRequest struct {
	RecipeName string
	CookTime   string
	Difficulty string
	ImageURL   string
}

// Service 食譜推薦與詳情服務
type Service struct {
	ai     gemini.TextGenerator
	images image.Searcher
	config *config.Config
}

// NewService 創建食譜服務
func NewService(ai gemini.TextGenerator, images image.Searcher, cfg *config.Config) *Service {
	return &Service{
		ai:     ai,
		images: images,
		config: cfg,
	}
}

// Recommend 依食材與過敏原推薦多道食譜
// 生成模型回傳半結構化文字，解析後逐筆補上圖片 URL
func (s *Service) Recommend(ctx context.Context, ingredients, allergies []string) ([]Summary, error) {
	if !s.ai.HasKey() || !s.config.Image.HasImageKeys() {
		return nil, common.ErrMissingAPIKeys
	}

	prompt := buildRecommendPrompt(ingredients, allergies)

	text, err := s.ai.GenerateContent(ctx, prompt, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalError,
			fmt.Sprintf("Request Error: %v", err), http.StatusInternalServerError, err)
	}

	blocks := ParseBlocks(text)
	common.LogInfo("推薦食譜解析完成",
		zap.Int("block_count", len(blocks)),
	)

	results := make([]Summary, 0, len(blocks))
	seen := make(map[string]bool, len(blocks))
	for _, block := range blocks {
		// 同名食譜只保留第一筆
		nameKey := strings.ToLower(block.Name)
		if seen[nameKey] {
			continue
		}
		seen[nameKey] = true

		results = append(results, Summary{
			RecipeNumber: block.Number,
			RecipeName:   block.Name,
			CookTime:     block.CookTime,
			Difficulty:   block.Difficulty,
			ImageURL:     s.images.Resolve(ctx, block.ImageKeyword),
		})
	}

	return results, nil
}

// buildRecommendPrompt 組合推薦食譜的 prompt，要求固定的五行格式
func buildRecommendPrompt(ingredients, allergies []string) string {
	ingredientList := strings.Join(ingredients, ", ")

	allergyPromptPart := ""
	if len(allergies) > 0 {
		allergyPromptPart = fmt.Sprintf(
			"The recipes MUST NOT contain any of the following allergens: %s.\n",
			strings.Join(allergies, ", "))
	}

	return fmt.Sprintf(
		"List common and popular recipes that use all or most of the following ingredients: %s. "+
			"%s"+
			"For each recipe, provide the following details in this exact format:\n\n"+
			"Recipe# (Number)\n"+
			"Recipe Name: (Name)\n"+
			"Time to Cook: (Approximate cooking time in minutes)\n"+
			"Difficulty: (Easy, Medium, or Hard)\n"+
			"Ensure a balanced variety of difficulties.\n"+
			"Image Keyword: (A specific and descriptive keyword for image search)\n\n"+
			"Try to match as many ingredients from the list as possible.\n"+
			"Do not include anything in Recipe Name Just the Recipe Name.",
		ingredientList, allergyPromptPart)
}

// Details 取得單一食譜的詳細資訊
// 已知的欄位（名稱、時間、難度、圖片）原樣帶回，其餘由生成模型補齊
func (s *Service) Details(ctx context.Context, req DetailRequest) (*Detail, error) {
	if !s.ai.HasKey() {
		return nil, common.NewError(common.ErrCodeInvalidRequest,
			"Gemini API key is not set properly in the .env file", http.StatusBadRequest, nil)
	}

	prompt := fmt.Sprintf(
		"Provide detailed information for the recipe '%s'. Respond strictly in the following JSON format:\n\n"+
			"{\n"+
			"  \"description\": \"A brief and enticing description of the recipe.\",\n"+
			"  \"ingredients\": [\"ingredient \", \"ingredient \", \"ingredient \"],\n"+
			"  \"instructions\": [\"Step 1 instruction.\", \"Step 2 instruction.\"],\n"+
			"  \"servings\": \"4 servings\"\n"+
			"}\n",
		req.RecipeName)

	text, err := s.ai.GenerateContent(ctx, prompt, nil)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalError,
			fmt.Sprintf("Request Error: %v", err), http.StatusInternalServerError, err)
	}

	raw, err := common.ExtractJSONObject(text)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalError,
			"Failed to locate JSON in Gemini response.", http.StatusInternalServerError, err)
	}

	var parsed struct {
		Description  string   `json:"description"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"instructions"`
		Servings     string   `json:"servings"`
	}
	if err := common.ParseJSON(raw, &parsed); err != nil {
		return nil, common.NewError(common.ErrCodeInternalError,
			fmt.Sprintf("General Error: %v", err), http.StatusInternalServerError, err)
	}

	// 缺漏欄位補上佔位文字，不視為失敗
	if parsed.Description == "" {
		parsed.Description = "No description available."
	}
	if len(parsed.Ingredients) == 0 {
		parsed.Ingredients = []string{"No ingredients listed."}
	}
	if len(parsed.Instructions) == 0 {
		parsed.Instructions = []string{"No instructions provided."}
	}
	if parsed.Servings == "" {
		parsed.Servings = "No servings information provided."
	}

	return &Detail{
		RecipeName:   req.RecipeName,
		CookTime:     req.CookTime,
		Difficulty:   req.Difficulty,
		ImageURL:     req.ImageURL,
		Description:  parsed.Description,
		Ingredients:  parsed.Ingredients,
		Instructions: parsed.Instructions,
		Servings:     parsed.Servings,
	}, nil
}
