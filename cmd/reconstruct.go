package cmd

import (
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/internal/config"
	"github.com/shouni/go-menu-kit/internal/pipeline"
	"github.com/shouni/go-menu-kit/pkg/asset"

	"github.com/spf13/cobra"
)

// reconstructCmd は、PDFの本文と抽出済み画像から元の資料を再現した
// 1枚のHTMLページを錬成するのだ！
var reconstructCmd = &cobra.Command{
	Use:   "reconstruct",
	Short: "PDFの内容を再現した単一HTMLを組み立てるのだ。",
	Long: `入力PDFの本文テキストと、extract コマンドで取り出した画像を組み合わせ、
元の資料を再現する単一HTMLページを生成するのだ。崩れやすいPDFのレイアウトを
Webページとして配り直したい場合に便利なのだ。`,
	Example: "  ap-menu-go reconstruct -p docs/menu.pdf --output-file output/menu_copy.html",
	RunE:    reconstructCommand,
}

func init() {
	reconstructCmd.Flags().StringVar(&opts.OutputFile, "output-file", config.DefaultReconstructFile, "複製ページの保存パス（ローカル or gs://...）なのだ。")
}

// reconstructCommand は、reconstruct サブコマンドの実行ロジック本体なのだ。
func reconstructCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// 必須チェック（念のためなのだ）
	if opts.PDFPath == "" {
		return fmt.Errorf("入力PDF（--pdf）を指定してほしいのだ")
	}

	// --output-file がユーザーによって指定されなかった場合、
	// --output-dir の下のデフォルト名へ保存するのだ
	if !cmd.Flags().Changed("output-file") {
		resolved, err := asset.ResolveOutputPath(opts.OutputDir, asset.DefaultReconstructFileName)
		if err != nil {
			return fmt.Errorf("出力パスの解決に失敗したのだ: %w", err)
		}
		opts.OutputFile = resolved
	}

	// 設定のロード
	cfg := config.LoadConfig()
	cfg.GeminiModel = opts.AIModel
	cfg.Options = opts

	slog.Info("複製ページの組み立てを開始するのだ！",
		"pdf", opts.PDFPath,
		"images_dir", opts.ImagesDir,
		"output_file", opts.OutputFile)

	// パイプライン実行（資料の再錬成なのだ！）
	if err := pipeline.ExecuteReconstruct(ctx, cfg); err != nil {
		return fmt.Errorf("複製ページの組み立てに失敗したのだ: %w", err)
	}

	slog.Info("完了なのだ！元の資料がWebページとして蘇ったのだよ。")
	return nil
}
