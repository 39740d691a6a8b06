package mealplan

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"recipe-app-api/internal/core/ai/gemini"
	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	response string
	err      error
	hasKey   bool
	prompts  []string
	genCfgs  []*gemini.GenerationConfig
}

func (s *stubGenerator) GenerateContent(ctx context.Context, prompt string, genCfg *gemini.GenerationConfig) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.genCfgs = append(s.genCfgs, genCfg)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) HasKey() bool {
	return s.hasKey
}

type stubSearcher struct {
	url string
}

func (s *stubSearcher) Resolve(ctx context.Context, keyword string) string {
	return s.url
}

func testConfig() *config.Config {
	return &config.Config{
		Image: config.ImageConfig{
			PixabayAPIKey:     "k1",
			PexelsAPIKey:      "k2",
			UnsplashAccessKey: "k3",
		},
	}
}

// fullPlanJSON 產生完整 21 餐的模型回應
func fullPlanJSON() string {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	meals := []string{"Breakfast", "Lunch", "Dinner"}

	var entries []string
	for _, day := range days {
		for _, meal := range meals {
			entries = append(entries, fmt.Sprintf(`{
				"day": %q,
				"mealType": %q,
				"recipe": {
					"title": "%s %s Dish",
					"prepTime": 20,
					"difficulty": "Easy",
					"cuisineType": "American",
					"ingredients": ["1 cup Something"],
					"instructions": ["Cook it."],
					"imageKeyword": "home cooked meal"
				}
			}`, day, meal, day, meal))
		}
	}
	return "[" + strings.Join(entries, ",") + "]"
}

func TestGenerateFullPlan(t *testing.T) {
	ai := &stubGenerator{hasKey: true, response: fullPlanJSON()}
	svc := NewService(ai, &stubSearcher{url: "https://img.example.com/meal.jpg"}, testConfig())

	plan, err := svc.Generate(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, plan, 21)

	first := plan[0]
	assert.Equal(t, "Monday", first.Day)
	assert.Equal(t, "Breakfast", first.MealType)
	assert.True(t, strings.HasPrefix(first.ID, "meal-"))
	assert.True(t, strings.HasPrefix(first.Recipe.ID, "recipe-"))
	assert.Equal(t, "Monday Breakfast Dish", first.Recipe.Title)
	assert.Equal(t, 20, first.Recipe.PrepTime)
	assert.Equal(t, "https://img.example.com/meal.jpg", first.Recipe.Image)

	last := plan[20]
	assert.Equal(t, "Sunday", last.Day)
	assert.Equal(t, "Dinner", last.MealType)

	// 每餐的識別碼皆不同
	seen := make(map[string]bool)
	for _, entry := range plan {
		assert.False(t, seen[entry.ID])
		seen[entry.ID] = true
	}
}

func TestGenerateUsesJSONResponseMode(t *testing.T) {
	ai := &stubGenerator{hasKey: true, response: fullPlanJSON()}
	svc := NewService(ai, &stubSearcher{url: "u"}, testConfig())

	_, err := svc.Generate(context.Background(), []string{"gluten"})
	require.NoError(t, err)

	require.Len(t, ai.genCfgs, 1)
	assert.Equal(t, "application/json", ai.genCfgs[0].ResponseMIMEType)
	assert.Equal(t, 8192, ai.genCfgs[0].MaxOutputTokens)

	require.Len(t, ai.prompts, 1)
	assert.Contains(t, ai.prompts[0], "MUST NOT contain any of the following allergens: gluten.")
}

func TestGenerateSkipsEmptyRecipes(t *testing.T) {
	response := `[
		{"day": "Monday", "mealType": "Breakfast", "recipe": {"title": "Oatmeal", "prepTime": 5, "difficulty": "Easy", "cuisineType": "American", "ingredients": ["Oats"], "instructions": ["Boil."], "imageKeyword": "oatmeal"}},
		{"day": "Monday", "mealType": "Lunch", "recipe": {}},
		{"day": "Monday", "mealType": "Dinner"}
	]`
	ai := &stubGenerator{hasKey: true, response: response}
	svc := NewService(ai, &stubSearcher{url: "u"}, testConfig())

	plan, err := svc.Generate(context.Background(), nil)
	require.NoError(t, err)

	// 空 recipe 的項目整筆跳過，較短的計畫仍被接受
	require.Len(t, plan, 1)
	assert.Equal(t, "Oatmeal", plan[0].Recipe.Title)
}

func TestGenerateFillsRecipeDefaults(t *testing.T) {
	response := `[
		{"day": "Monday", "mealType": "Breakfast", "recipe": {"ingredients": ["Something"]}}
	]`
	ai := &stubGenerator{hasKey: true, response: response}
	svc := NewService(ai, &stubSearcher{url: "u"}, testConfig())

	plan, err := svc.Generate(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, plan, 1)

	recipe := plan[0].Recipe
	assert.Equal(t, "Unnamed Recipe", recipe.Title)
	assert.Equal(t, 30, recipe.PrepTime)
	assert.Equal(t, "Medium", recipe.Difficulty)
	assert.Equal(t, "Various", recipe.CuisineType)
	assert.NotNil(t, recipe.Instructions)
	assert.Empty(t, recipe.Instructions)
}

func TestGenerateMissingKeys(t *testing.T) {
	ai := &stubGenerator{hasKey: true}
	cfg := testConfig()
	cfg.Image.PexelsAPIKey = ""
	svc := NewService(ai, &stubSearcher{url: "u"}, cfg)

	_, err := svc.Generate(context.Background(), nil)
	require.Error(t, err)

	var customErr *common.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusInternalServerError, customErr.Status)
	assert.Equal(t, "One or more API keys (GEMINI, PIXABAY, PEXELS, UNPLASH) are not set in the .env file.", customErr.Message)
}

func TestGenerateUpstreamError(t *testing.T) {
	ai := &stubGenerator{hasKey: true, err: errors.New("timeout")}
	svc := NewService(ai, &stubSearcher{url: "u"}, testConfig())

	_, err := svc.Generate(context.Background(), nil)
	require.Error(t, err)

	var customErr *common.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusServiceUnavailable, customErr.Status)
}

func TestGenerateInvalidResponse(t *testing.T) {
	ai := &stubGenerator{hasKey: true, response: `{"not": "a list"}`}
	svc := NewService(ai, &stubSearcher{url: "u"}, testConfig())

	_, err := svc.Generate(context.Background(), nil)
	require.Error(t, err)

	var customErr *common.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusInternalServerError, customErr.Status)
	assert.Equal(t, "Gemini response was not a valid list.", customErr.Message)
}
