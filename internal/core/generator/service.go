package generator

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

// GeneratedRecipe 單次生成的創意食譜
type GeneratedRecipe struct {
	Name         string   `json:"name"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	CookingTime  string   `json:"cookingTime"`
	Image        string   `json:"image"`
}

// Request 生成條件
type Request struct {
	MealType           string
	Allergies          []string
	PreviousRecipeName string
}

// Service 創意食譜生成服務
type Service struct {
	ai     gemini.TextGenerator
	images image.Searcher
	config *config.Config
}

// NewService 創建食譜生成服務
func NewService(ai gemini.TextGenerator, images image.Searcher, cfg *config.Config) *Service {
	return &Service{
		ai:     ai,
		images: images,
		config: cfg,
	}
}

// Generate 依餐別與過敏原生成一道創意食譜
// 使用較高的 temperature 增加多樣性，並依模型建議的關鍵字搜尋配圖
func (s *Service) Generate(ctx context.Context, req Request) (*GeneratedRecipe, error) {
	if !s.ai.HasKey() || !s.config.Image.HasImageKeys() {
		return nil, common.NewError(common.ErrCodeInternalError,
			"One or more API keys are not set in the .env file.", http.StatusInternalServerError, nil)
	}

	prompt := buildPrompt(req)

	genCfg := &gemini.GenerationConfig{
		Temperature:     0.9,
		TopP:            1,
		TopK:            1,
		MaxOutputTokens: 2048,
	}

	text, err := s.ai.GenerateContent(ctx, prompt, genCfg)
	if err != nil {
		return nil, common.NewError(common.ErrCodeServiceUnavailable,
			fmt.Sprintf("An error occurred with an external API: %v", err), http.StatusServiceUnavailable, err)
	}

	raw, err := common.ExtractJSONObject(text)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalError,
			"Failed to parse valid JSON from Gemini response.", http.StatusInternalServerError, err)
	}

	var parsed struct {
		Name         string   `json:"name"`
		Ingredients  []string `json:"ingredients"`
		Instructions []string `json:"instructions"`
		CookingTime  string   `json:"cookingTime"`
		ImageKeyword string   `json:"imageKeyword"`
	}
	if err := common.ParseJSON(raw, &parsed); err != nil {
		return nil, common.NewError(common.ErrCodeInternalError,
			"Could not parse the response from the recipe generation service.", http.StatusInternalServerError, err)
	}

	// 沒有建議關鍵字時退回食譜名稱
	imageKeyword := parsed.ImageKeyword
	if imageKeyword == "" {
		imageKeyword = parsed.Name
	}
	if imageKeyword == "" {
		imageKeyword = "food"
	}

	common.LogInfo("食譜生成完成",
		zap.String("meal_type", req.MealType),
		zap.String("recipe_name", parsed.Name),
	)

	return &GeneratedRecipe{
		Name:         parsed.Name,
		Ingredients:  parsed.Ingredients,
		Instructions: parsed.Instructions,
		CookingTime:  parsed.CookingTime,
		Image:        s.images.Resolve(ctx, imageKeyword),
	}, nil
}

// buildPrompt 組合生成 prompt，必要時加入避免重複的指示
func buildPrompt(req Request) string {
	allergyList := "None"
	if len(req.Allergies) > 0 {
		allergyList = strings.Join(req.Allergies, ", ")
	}

	avoidRecipeInstruction := ""
	if req.PreviousRecipeName != "" {
		avoidRecipeInstruction = fmt.Sprintf(
			"\nCrucially, do NOT generate the recipe named '%s' again. Please provide a different one.",
			req.PreviousRecipeName)
	}

	return fmt.Sprintf(
		"Generate a creative and unique single recipe suitable for '%s'. "+
			"If breakfast give like eg. simple like fried, if dinner give eg. dinner food eg food with sauce or soup\n"+
			"The recipe MUST NOT contain any of the following allergens: %s."+
			"%s\n\n"+
			"Provide the response strictly in the following JSON format. Do not include any text or markdown formatting before or after the JSON block:\n"+
			"{\n"+
			"  \"name\": \"The creative and appealing name of the recipe\",\n"+
			"  \"ingredients\": [\"Quantity Unit Ingredient Name\", \"e.g., 2 large Eggs\", \"e.g., 1 cup Flour\"],\n"+
			"  \"instructions\": [\"Step-by-step instruction 1.\", \"Step-by-step instruction 2.\", \"And so on...\"],\n"+
			"  \"cookingTime\": \"A string representing the total cooking time, e.g., 25 minutes\",\n"+
			"  \"imageKeyword\": \"A single, descriptive keyword phrase for an image search, e.g., spicy shakshuka with feta\"\n"+
			"}\n",
		req.MealType, allergyList, avoidRecipeInstruction)
}
