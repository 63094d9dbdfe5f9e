package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/internal/config"
	"github.com/shouni/go-menu-kit/internal/pipeline"

	"github.com/spf13/cobra"
)

// extractCmd は、PDFに埋め込まれた画像の抽出とAIによる整理を実行するためのサブコマンドなのだ。
// 抽出した画像はビジョンモデルの解析結果で内容に合った名前へ付け替えるのだ。
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "PDFから画像を抽出してAIの命名で整理するのだ。",
	Long: `入力PDFに埋め込まれた画像をすべて取り出し、ビジョンモデルの解析結果で
内容に合ったファイル名へ付け替えるのだ。あわせてキャプション一覧（JSON）も
保存するので、メニュー生成の素材としてそのまま使えるのだよ。`,
	RunE: extractCommand,
}

// init は、extract コマンドに必要なフラグを定義するための初期化関数なのだ。
func init() {
	extractCmd.Flags().BoolVar(&opts.SkipCaptions, "skip-captions", false, "ビジョンモデルによる解析とリネームを省略するのだ。")
}

// extractCommand は、extract サブコマンドの実行ロジック本体なのだ。
// 設定のバリデーションを行い、pipeline.ExecuteExtract を呼び出して一連の処理をキックするのだ。
func extractCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 必須となる入力ファイルの存在チェック
	if opts.PDFPath == "" {
		return fmt.Errorf("入力PDF（--pdf）を指定してほしいのだ")
	}

	// 1. 環境変数から基本設定をロード
	cfg := config.LoadConfig()

	// 2. コマンドライン引数の値を反映
	cfg.VisionModel = opts.VisionModel
	cfg.Options = opts

	slog.Info("画像抽出モードを起動するのだ！",
		"pdf", opts.PDFPath,
		"images_dir", opts.ImagesDir,
		"vision_model", cfg.VisionModel)

	// 3. パイプライン実行
	return pipeline.ExecuteExtract(ctx, cfg)
}
