package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-app-api/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// providerServer 模擬單一供應商：回傳固定 JSON 並記錄命中次數
type providerServer struct {
	server *httptest.Server
	hits   int
}

func newProviderServer(t *testing.T, status int, body string) *providerServer {
	t.Helper()
	p := &providerServer{}
	p.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.hits++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(p.server.Close)
	return p
}

const (
	pixabayHit  = `{"hits": [{"webformatURL": "https://pixabay.example.com/img.jpg"}]}`
	pixabayMiss = `{"hits": []}`

	pexelsHit  = `{"photos": [{"src": {"large": "https://pexels.example.com/img.jpg"}}]}`
	pexelsMiss = `{"photos": []}`

	unsplashHit  = `{"results": [{"urls": {"regular": "https://unsplash.example.com/img.jpg"}}]}`
	unsplashMiss = `{"results": []}`
)

func newTestResolver(pixabay, pexels, unsplash *providerServer) *Resolver {
	return NewResolver(&config.ImageConfig{
		PixabayAPIKey:     "pixabay-key",
		PexelsAPIKey:      "pexels-key",
		UnsplashAccessKey: "unsplash-key",
		PixabayBaseURL:    pixabay.server.URL,
		PexelsBaseURL:     pexels.server.URL,
		UnsplashBaseURL:   unsplash.server.URL,
		Timeout:           2 * time.Second,
	})
}

func TestResolvePixabayWins(t *testing.T) {
	pixabay := newProviderServer(t, http.StatusOK, pixabayHit)
	pexels := newProviderServer(t, http.StatusOK, pexelsHit)
	unsplash := newProviderServer(t, http.StatusOK, unsplashHit)

	r := newTestResolver(pixabay, pexels, unsplash)
	url := r.Resolve(context.Background(), "pasta")

	assert.Equal(t, "https://pixabay.example.com/img.jpg", url)
	assert.Equal(t, 1, pixabay.hits)

	// 主要來源命中後不再查詢備援
	assert.Zero(t, pexels.hits)
	assert.Zero(t, unsplash.hits)
}

func TestResolveFallsBackToPexels(t *testing.T) {
	pixabay := newProviderServer(t, http.StatusOK, pixabayMiss)
	pexels := newProviderServer(t, http.StatusOK, pexelsHit)
	unsplash := newProviderServer(t, http.StatusOK, unsplashHit)

	r := newTestResolver(pixabay, pexels, unsplash)
	url := r.Resolve(context.Background(), "pasta")

	assert.Equal(t, "https://pexels.example.com/img.jpg", url)
	assert.Equal(t, 1, pixabay.hits)
	assert.Equal(t, 1, pexels.hits)
	assert.Zero(t, unsplash.hits)
}

func TestResolveFallsBackToUnsplash(t *testing.T) {
	pixabay := newProviderServer(t, http.StatusOK, pixabayMiss)
	pexels := newProviderServer(t, http.StatusOK, pexelsMiss)
	unsplash := newProviderServer(t, http.StatusOK, unsplashHit)

	r := newTestResolver(pixabay, pexels, unsplash)
	url := r.Resolve(context.Background(), "pasta")

	assert.Equal(t, "https://unsplash.example.com/img.jpg", url)
	assert.Equal(t, 1, unsplash.hits)
}

func TestResolveAllMissReturnsDefault(t *testing.T) {
	pixabay := newProviderServer(t, http.StatusOK, pixabayMiss)
	pexels := newProviderServer(t, http.StatusOK, pexelsMiss)
	unsplash := newProviderServer(t, http.StatusOK, unsplashMiss)

	r := newTestResolver(pixabay, pexels, unsplash)
	url := r.Resolve(context.Background(), "no such dish")

	assert.Equal(t, DefaultImageURL, url)
}

func TestResolveProviderErrorsAreSwallowed(t *testing.T) {
	// 供應商回錯誤狀態碼時視為未命中，繼續往下查
	pixabay := newProviderServer(t, http.StatusTooManyRequests, `{"error": "rate limited"}`)
	pexels := newProviderServer(t, http.StatusInternalServerError, `oops`)
	unsplash := newProviderServer(t, http.StatusOK, unsplashHit)

	r := newTestResolver(pixabay, pexels, unsplash)
	url := r.Resolve(context.Background(), "pasta")

	assert.Equal(t, "https://unsplash.example.com/img.jpg", url)
}

func TestResolveSendsProviderCredentials(t *testing.T) {
	var pixabayQuery, pexelsAuth, unsplashAuth string

	pixabaySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pixabayQuery = r.URL.Query().Get("key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pixabayMiss))
	}))
	defer pixabaySrv.Close()

	pexelsSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pexelsAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pexelsMiss))
	}))
	defer pexelsSrv.Close()

	unsplashSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		unsplashAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(unsplashMiss))
	}))
	defer unsplashSrv.Close()

	r := NewResolver(&config.ImageConfig{
		PixabayAPIKey:     "pixabay-key",
		PexelsAPIKey:      "pexels-key",
		UnsplashAccessKey: "unsplash-key",
		PixabayBaseURL:    pixabaySrv.URL,
		PexelsBaseURL:     pexelsSrv.URL,
		UnsplashBaseURL:   unsplashSrv.URL,
		Timeout:           2 * time.Second,
	})

	url := r.Resolve(context.Background(), "pasta")
	require.Equal(t, DefaultImageURL, url)

	assert.Equal(t, "pixabay-key", pixabayQuery)
	assert.Equal(t, "pexels-key", pexelsAuth)
	assert.Equal(t, "Client-ID unsplash-key", unsplashAuth)
}
