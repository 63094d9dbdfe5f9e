package cmd

import (
	"fmt"
	"os"

	"github.com/shouni/go-menu-kit/internal/config"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
)

// opts は全サブコマンドで共有する実行時オプションなのだ。
// 各フラグは addAppFlags と各コマンドの init でここへ紐付けられるのだ。
var opts config.Options

// addAppFlags は、アプリケーション全般に適用されるグローバルフラグを定義するのだ。
func addAppFlags(rootCmd *cobra.Command) {
	// --- ソース入力関連 ---
	rootCmd.PersistentFlags().StringVarP(&opts.CorpusSource, "corpus", "c", config.DefaultCorpusSource, "店舗資料のパス（ローカル / gs://... / http(s) / PDF）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.PDFPath, "pdf", "p", "", "入力PDFのパスなのだ。")

	// --- 生成結果の出力設定 ---
	rootCmd.PersistentFlags().StringVarP(&opts.OutputDir, "output-dir", "o", config.DefaultOutputDir, "成果物の保存先ディレクトリ（ローカル or gs://...）なのだ。")
	rootCmd.PersistentFlags().StringVarP(&opts.ImagesDir, "images-dir", "i", config.DefaultImagesDir, "メニュー素材画像を置くディレクトリなのだ。")

	// --- AIモデル・挙動設定 ---
	rootCmd.PersistentFlags().StringVar(&opts.AIModel, "model", config.DefaultModel, "使用する Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.VisionModel, "vision-model", config.DefaultVisionModel, "画像キャプションに使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().StringVar(&opts.ImageModel, "image-model", config.DefaultImageModel, "画像生成に使う Gemini モデル名なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.HTTPTimeout, "http-timeout", config.DefaultHTTPTimeout, "Webリクエストのタイムアウトなのだ。")

	// --- 実行制御 ---
	rootCmd.PersistentFlags().IntVarP(&opts.RetryLimit, "retry-limit", "r", config.DefaultRetryLimit, "品質ゲートを通すまでの最大試行回数なのだ。")
	rootCmd.PersistentFlags().DurationVar(&opts.RateInterval, "rate-interval", config.DefaultRateInterval, "AI呼び出しの最小間隔なのだ。")
}

// preRunAppE は、コマンド実行前に環境変数などの必須チェックを行うのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	// .env があれば先に読み込んでおくのだ
	config.LoadEnvFile()

	// Gemini APIを利用するため、APIキーの存在チェックは欠かせないのだ！
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY が設定されていません。Gemini APIの利用には必須なのだ")
	}

	return nil
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
// main.go から呼び出されて、cobra のコマンドライン解析を開始するのだよ。
func Execute() {
	clibase.Execute(
		"ap-menu-go",
		addAppFlags,
		preRunAppE,
		generateCmd,
		extractCmd,
		mediaCmd,
		reconstructCmd,
	)
}
