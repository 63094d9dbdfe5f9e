package workflow

import (
	"time"
)

// デフォルト値の定義なのだ
const (
	DefaultGeminiModel  = "gemini-3-flash-preview"
	DefaultVisionModel  = "gemini-3-flash-preview"
	DefaultImageModel   = "gemini-3-pro-image-preview"
	DefaultCorpusSource = "examples/menu_corpus.md"
	DefaultImagesDir    = "output/images"
	DefaultOutputDir    = "output"
	DefaultRetryLimit   = 3
	DefaultAspectRatio  = "1:1"
	DefaultRateInterval = 10 * time.Second
)

// Config は Go Menu Kit の各 Runner を動作させるための基本設定なのだ。
type Config struct {
	// --- AI Model Settings ---
	GeminiAPIKey string
	GeminiModel  string
	VisionModel  string
	ImageModel   string

	// --- Source & Output Settings ---
	CorpusSource string
	ImagesDir    string
	OutputDir    string

	// --- Generation Settings ---
	RetryLimit   int
	AspectRatio  string
	RateInterval time.Duration

	// --- Timeout & Retries ---
	RequestTimeout time.Duration
}

// NewConfig はデフォルト値で初期化された Config を作成し、必要最小限の値をセットして返すのだ。
func NewConfig(apiKey string) Config {
	cfg := DefaultConfig()
	cfg.GeminiAPIKey = apiKey
	return cfg
}

// DefaultConfig は推奨されるデフォルト設定を返すヘルパー関数なのだ。
func DefaultConfig() Config {
	return Config{
		GeminiModel:    DefaultGeminiModel,
		VisionModel:    DefaultVisionModel,
		ImageModel:     DefaultImageModel,
		CorpusSource:   DefaultCorpusSource,
		ImagesDir:      DefaultImagesDir,
		OutputDir:      DefaultOutputDir,
		RetryLimit:     DefaultRetryLimit,
		AspectRatio:    DefaultAspectRatio,
		RateInterval:   DefaultRateInterval,
		RequestTimeout: 5 * time.Minute,
	}
}
