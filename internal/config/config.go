package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultModel           = "gemini-3-flash-preview"
	DefaultVisionModel     = "gemini-3-flash-preview"
	DefaultImageModel      = "gemini-3-pro-image-preview"
	DefaultHTTPTimeout     = 30 * time.Second
	DefaultRetryLimit      = 3
	DefaultRateInterval    = 10 * time.Second
	DefaultCorpusSource    = "examples/menu_corpus.md" // 店舗資料のデフォルトパスなのだ
	DefaultImagesDir       = "output/images"           // 抽出画像とメニュー素材の置き場なのだ
	DefaultOutputDir       = "output"                  // 成果物の保存先ディレクトリなのだ
	DefaultBaseName        = "menu"                    // 版数付き保存のベース名なのだ
	DefaultReconstructFile = "output/reconstructed_menu.html"
	DefaultAspectRatio     = "1:1"
)

// Config はアプリケーション全体の環境設定（APIキーやクラウド設定）を保持する構造体なのだ。
type Config struct {
	ProjectID    string
	LocationID   string
	GeminiAPIKey string
	GeminiModel  string
	VisionModel  string
	ImageModel   string

	Options Options
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
func LoadConfig() *Config {
	cfg := &Config{
		ProjectID:    envutil.GetEnv("PROJECT_ID", ""),
		LocationID:   envutil.GetEnv("REGION", ""),
		GeminiAPIKey: envutil.GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:  envutil.GetEnv("GEMINI_MODEL", DefaultModel),
		VisionModel:  envutil.GetEnv("VISION_GEMINI_MODEL", DefaultVisionModel),
		ImageModel:   envutil.GetEnv("IMAGE_GEMINI_MODEL", DefaultImageModel),
	}
	return cfg
}

// LoadEnvFile はカレントディレクトリの .env を読み込むのだ。
// ファイルが無いのは通常運用なので、エラーは無視するのだ。
func LoadEnvFile() {
	_ = godotenv.Load()
}

// Options は CLI フラグから渡される実行時のパラメータなのだ。
type Options struct {
	// ソース入力関連
	CorpusSource string // --corpus
	PDFPath      string // --pdf
	BaseName     string // --base-name

	// 出力関連
	ImagesDir  string // --images-dir
	OutputDir  string // --output-dir
	OutputFile string // --output-file

	// AI挙動設定
	AIModel     string // --model: テキスト生成用のGeminiモデル
	VisionModel string // --vision-model: 画像キャプション用のGeminiモデル
	ImageModel  string // --image-model: 画像生成用のGeminiモデル
	AspectRatio string // --aspect-ratio

	// 実行制御
	SkipCaptions bool          // --skip-captions
	Render       bool          // --render
	RetryLimit   int           // --retry-limit
	HTTPTimeout  time.Duration // --http-timeout
	RateInterval time.Duration // --rate-interval
}
