package image

import (
	"context"

	"recipe-app-api/internal/infrastructure/config"
	"recipe-app-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultImageURL 所有供應商都沒有結果時的固定預設圖
const DefaultImageURL = "https://images.unsplash.com/photo-1546069901-ba9599a7e63c?w=800&q=80"

// Searcher 圖片搜尋的抽象，方便各服務在測試時替換
type Searcher interface {
	Resolve(ctx context.Context, keyword string) string
}

// Resolver 依固定優先序查詢三個圖片搜尋供應商
// Pixabay → Pexels → Unsplash，第一個命中的 URL 勝出
// 供應商的網路錯誤一律吞掉視為未命中，不往上傳遞
type Resolver struct {
	config   *config.ImageConfig
	pixabay  *resty.Client
	pexels   *resty.Client
	unsplash *resty.Client
}

// NewResolver 創建圖片搜尋服務
func NewResolver(cfg *config.ImageConfig) *Resolver {
	return &Resolver{
		config:   cfg,
		pixabay:  resty.New().SetBaseURL(cfg.PixabayBaseURL).SetTimeout(cfg.Timeout),
		pexels:   resty.New().SetBaseURL(cfg.PexelsBaseURL).SetTimeout(cfg.Timeout).SetHeader("Authorization", cfg.PexelsAPIKey),
		unsplash: resty.New().SetBaseURL(cfg.UnsplashBaseURL).SetTimeout(cfg.Timeout).SetHeader("Authorization", "Client-ID "+cfg.UnsplashAccessKey),
	}
}

// Resolve 以關鍵字搜尋圖片，回傳第一個命中的 URL，全部落空則回傳預設圖
func (r *Resolver) Resolve(ctx context.Context, keyword string) string {
	imageURL := r.searchPixabay(ctx, keyword)

	if imageURL == DefaultImageURL {
		imageURL = r.searchPexels(ctx, keyword)
	}

	if imageURL == DefaultImageURL {
		imageURL = r.searchUnsplash(ctx, keyword)
	}

	if imageURL == DefaultImageURL {
		common.LogDebug("所有圖片供應商皆未命中，使用預設圖",
			zap.String("keyword", keyword),
		)
	}

	return imageURL
}

// searchPixabay 查詢 Pixabay（主要來源）
func (r *Resolver) searchPixabay(ctx context.Context, keyword string) string {
	var result struct {
		Hits []struct {
			WebformatURL string `json:"webformatURL"`
		} `json:"hits"`
	}

	resp, err := r.pixabay.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":        r.config.PixabayAPIKey,
			"q":          keyword,
			"image_type": "photo",
			"safesearch": "true",
			"order":      "popular",
			"per_page":   "3",
		}).
		SetResult(&result).
		Get("")

	if err != nil || !resp.IsSuccess() {
		common.LogDebug("Pixabay 查詢未命中", zap.String("keyword", keyword), zap.Error(err))
		return DefaultImageURL
	}

	if len(result.Hits) > 0 && result.Hits[0].WebformatURL != "" {
		return result.Hits[0].WebformatURL
	}
	return DefaultImageURL
}

// searchPexels 查詢 Pexels（第一備援）
func (r *Resolver) searchPexels(ctx context.Context, keyword string) string {
	var result struct {
		Photos []struct {
			Src struct {
				Large string `json:"large"`
			} `json:"src"`
		} `json:"photos"`
	}

	resp, err := r.pexels.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    keyword,
			"per_page": "1",
		}).
		SetResult(&result).
		Get("/search")

	if err != nil || !resp.IsSuccess() {
		common.LogDebug("Pexels 查詢未命中", zap.String("keyword", keyword), zap.Error(err))
		return DefaultImageURL
	}

	if len(result.Photos) > 0 && result.Photos[0].Src.Large != "" {
		return result.Photos[0].Src.Large
	}
	return DefaultImageURL
}

// searchUnsplash 查詢 Unsplash（最後備援）
func (r *Resolver) searchUnsplash(ctx context.Context, keyword string) string {
	var result struct {
		Results []struct {
			Urls struct {
				Regular string `json:"regular"`
			} `json:"urls"`
		} `json:"results"`
	}

	resp, err := r.unsplash.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"query":    keyword,
			"per_page": "1",
		}).
		SetResult(&result).
		Get("/search/photos")

	if err != nil || !resp.IsSuccess() {
		common.LogDebug("Unsplash 查詢未命中", zap.String("keyword", keyword), zap.Error(err))
		return DefaultImageURL
	}

	if len(result.Results) > 0 && result.Results[0].Urls.Regular != "" {
		return result.Results[0].Urls.Regular
	}
	return DefaultImageURL
}
