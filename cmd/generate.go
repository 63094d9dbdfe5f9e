package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/internal/config"
	"github.com/shouni/go-menu-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// generateCmd は、AIによるメニューページ（単一HTML）の生成を実行するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "店舗資料からメニューページ（単一HTML）を生成させますなのだ。",
	Long: `店舗資料に問い合わせてメニュー品目とスタイル指示を取り出し、素材画像と
突き合わせた単一HTMLのメニューページを生成するのだ。品質ゲートを通過するまで
指摘を反映しながら作り直し、版数付きで保存するのだよ。`,
	RunE: generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&opts.BaseName, "base-name", "b", config.DefaultBaseName, "版数付き保存のベース名なのだ。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 1. 必須チェック
	if opts.CorpusSource == "" {
		return fmt.Errorf("店舗資料（--corpus）を指定してほしいのだ")
	}

	// 2. 環境変数等から基本設定をロードするのだ
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("メニュー生成パイプラインを起動するのだ！",
		"corpus", opts.CorpusSource,
		"text_model", cfg.GeminiModel,
		"base_name", opts.BaseName,
		"retry_limit", opts.RetryLimit)

	// 3. 更新した config を考慮しつつパイプラインを実行するのだ
	err := pipeline.ExecuteGenerate(ctx, cfg)
	if err != nil {
		return fmt.Errorf("パイプライン実行中にエラーが発生したのだ: %w", err)
	}

	slog.Info("すべての生成工程が完了したのだ！")
	return nil
}
