package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/internal/config"
	"github.com/shouni/go-menu-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// mediaCmd は、販促メディアのプロンプト計画の生成のみを実行するのだ。
var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "店舗資料から販促メディアの計画（JSON）を生成するのだ。",
	Long: `店舗資料を解析し、ロゴ・バナーなどの静止画と紹介動画のプロンプト集を
JSON形式で出力するのだ。--render を付けると静止画は実際に描画まで行うのだよ。`,
	RunE: mediaCommand,
}

func init() {
	mediaCmd.Flags().BoolVar(&opts.Render, "render", false, "静止画プロンプトを実際に描画して保存するのだ。")
	mediaCmd.Flags().StringVar(&opts.AspectRatio, "aspect-ratio", config.DefaultAspectRatio, "描画する静止画のアスペクト比なのだ。")
}

func mediaCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 入力ソースの必須チェック (opts は addAppFlags で紐付け済みと想定)
	if opts.CorpusSource == "" {
		return fmt.Errorf("店舗資料（--corpus）を指定してほしいのだ")
	}

	// 2. 設定のロード
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.ImageModel = opts.ImageModel
	cfg.Options = opts

	slog.Info("メディア計画モードを起動するのだ！",
		"source", opts.CorpusSource,
		"render", opts.Render,
		"image_model", cfg.ImageModel)

	// 3. 実行
	err := pipeline.ExecuteMedia(ctx, cfg)
	if err != nil {
		return fmt.Errorf("メディア計画の生成中にエラーが発生したのだ: %w", err)
	}

	slog.Info("メディア計画の出力が完了したのだ！", "output_dir", opts.OutputDir)
	return nil
}
