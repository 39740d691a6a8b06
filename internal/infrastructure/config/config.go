package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureDefaultSecretKey 未設定 SECRET_KEY 時的開發用預設值
// 這是部署風險：正式環境必須透過環境變數覆蓋
const InsecureDefaultSecretKey = "a-secure-default-key-for-development"

// Config 應用配置
type Config struct {
	App      AppConfig    `mapstructure:"app"`
	Server   ServerConfig `mapstructure:"server"`
	Gemini   GeminiConfig `mapstructure:"gemini"`
	Image    ImageConfig  `mapstructure:"image"`
	Auth     AuthConfig   `mapstructure:"auth"`
	LogLevel string       `mapstructure:"log_level"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env      string `mapstructure:"env"`
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	Version  string `mapstructure:"version"`
	Name     string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// GeminiConfig Gemini 生成式語言 API 配置
type GeminiConfig struct {
	APIKey          string        `mapstructure:"api_key"`
	Model           string        `mapstructure:"model"`
	BaseURL         string        `mapstructure:"base_url"`
	Timeout         time.Duration `mapstructure:"timeout"`
	MaxOutputTokens int           `mapstructure:"max_output_tokens"`
}

// ImageConfig 圖片搜尋供應商配置
// BaseURL 欄位只有預設值，不綁定環境變數，測試時可直接替換
type ImageConfig struct {
	PixabayAPIKey     string        `mapstructure:"pixabay_api_key"`
	PexelsAPIKey      string        `mapstructure:"pexels_api_key"`
	UnsplashAccessKey string        `mapstructure:"unsplash_access_key"`
	PixabayBaseURL    string        `mapstructure:"pixabay_base_url"`
	PexelsBaseURL     string        `mapstructure:"pexels_base_url"`
	UnsplashBaseURL   string        `mapstructure:"unsplash_base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// AuthConfig 認證配置
type AuthConfig struct {
	SecretKey string `mapstructure:"secret_key"`
}

// HasImageKeys 檢查三個圖片供應商金鑰是否齊全
func (c *ImageConfig) HasImageKeys() bool {
	return c.PixabayAPIKey != "" && c.PexelsAPIKey != "" && c.UnsplashAccessKey != ""
}

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// 加載 .env 文件（不存在時略過，環境變數仍然生效）
	_ = godotenv.Load()

	// 設定預設值
	setDefaults()

	// 設定環境變數前綴
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 綁定環境變量
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.model", "GEMINI_MODEL")
	viper.BindEnv("image.pixabay_api_key", "PIXABAY_API_KEY")
	viper.BindEnv("image.pexels_api_key", "PEXELS_API_KEY")
	viper.BindEnv("image.unsplash_access_key", "UNSPLASH_ACCESS_KEY")
	viper.BindEnv("auth.secret_key", "SECRET_KEY")
	viper.BindEnv("server.host", "HOST")
	viper.BindEnv("server.port", "PORT")
	viper.BindEnv("log_level", "LOG_LEVEL")

	// 設定設定檔名稱和路徑
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	// 讀取設定檔
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 添加調試日誌（logger 尚未初始化，改用 fmt.Println）
	fmt.Println("Loading configuration",
		"gemini_api_key:", maskAPIKey(viper.GetString("gemini.api_key")),
		"gemini_model:", viper.GetString("gemini.model"))

	// 解析設定
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// maskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults() {
	// 應用程式設定
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.log_level", "info")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.name", "recipe-app-api")

	// 伺服器設定
	viper.SetDefault("server.host", "127.0.0.1")
	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "120s")
	viper.SetDefault("server.idle_timeout", "120s")

	// Gemini 設定
	viper.SetDefault("gemini.model", "gemini-1.5-flash")
	viper.SetDefault("gemini.base_url", "https://generativelanguage.googleapis.com/v1beta")
	viper.SetDefault("gemini.timeout", "60s")
	viper.SetDefault("gemini.max_output_tokens", 2048)

	// 圖片搜尋設定
	viper.SetDefault("image.pixabay_base_url", "https://pixabay.com/api/")
	viper.SetDefault("image.pexels_base_url", "https://api.pexels.com/v1")
	viper.SetDefault("image.unsplash_base_url", "https://api.unsplash.com")
	viper.SetDefault("image.timeout", "5s")

	// 認證設定
	viper.SetDefault("auth.secret_key", InsecureDefaultSecretKey)

	viper.SetDefault("log_level", "info")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port == 0 {
		return fmt.Errorf("server port is required")
	}

	// 缺少上游金鑰不是啟動錯誤：各端點會在呼叫上游前自行檢查並回報
	if config.Gemini.Timeout <= 0 {
		return fmt.Errorf("invalid gemini timeout")
	}
	if config.Image.Timeout <= 0 {
		return fmt.Errorf("invalid image search timeout")
	}

	return nil
}
