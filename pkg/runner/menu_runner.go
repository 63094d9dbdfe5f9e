package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-menu-kit/pkg/asset"
	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/generator"
	"github.com/shouni/go-menu-kit/pkg/parser"
	"github.com/shouni/go-menu-kit/pkg/quality"
	"github.com/shouni/go-menu-kit/pkg/retrieval"
)

// DocumentSaver は、合格したHTML文書をバージョン付きで永続化する契約です。
// 既存ファイルは決して上書きしません。
type DocumentSaver interface {
	SaveVersioned(outputDir, baseName, document string) (string, int, error)
}

// MenuGenerateOptions は生成ワークフローの実行時設定です。
type MenuGenerateOptions struct {
	// ImagesDir は品目に対応づける画像ファイルのディレクトリです。
	ImagesDir string
	// OutputDir はHTML成果物の保存先ディレクトリです。
	OutputDir string
	// RetryLimit は品質ゲートを含めた生成試行回数の上限です（1以上）。
	RetryLimit int
}

// MenuGenerateRunner は、資料の取得からHTML生成・品質検査・保存までの
// メニューページ生成ワークフロー全体を管理します。
type MenuGenerateRunner struct {
	retriever retrieval.Retriever
	composer  generator.PageComposer
	checker   quality.Checker
	saver     DocumentSaver
	opts      MenuGenerateOptions
}

// NewMenuGenerateRunner は依存関係を注入して初期化します。
func NewMenuGenerateRunner(
	retriever retrieval.Retriever,
	composer generator.PageComposer,
	checker quality.Checker,
	saver DocumentSaver,
	opts MenuGenerateOptions,
) *MenuGenerateRunner {
	return &MenuGenerateRunner{
		retriever: retriever,
		composer:  composer,
		checker:   checker,
		saver:     saver,
		opts:      opts,
	}
}

// Run はメニューページを生成し、品質ゲートを通過した版を保存します。
// 不合格の場合は検査の指摘を次の生成プロンプトへ持ち越して再試行し、
// 上限回数まで通過できなければエラーを返します。
func (r *MenuGenerateRunner) Run(ctx context.Context, baseName string) (domain.BuildResult, error) {
	// 1. 資料からメニュー品目とスタイル指示を取得
	items, err := r.fetchMenuItems(ctx)
	if err != nil {
		return domain.BuildResult{}, err
	}

	styleSpec, err := r.retriever.Query(ctx, retrieval.QuestionStyleGuide)
	if err != nil {
		return domain.BuildResult{}, fmt.Errorf("スタイル指示の取得に失敗しました: %w", err)
	}

	// 2. 画像ディレクトリを走査して品目と対応づけ
	images := asset.ListImages(r.opts.ImagesDir)
	items = asset.AssociateImages(items, images)

	slog.InfoContext(ctx, "MenuGenerateRunner: 生成を開始します",
		"items", len(items),
		"images", len(images),
		"retry_limit", r.opts.RetryLimit,
	)

	// 3. 生成と品質検査のループ
	var feedback []string
	for attempt := 1; attempt <= r.opts.RetryLimit; attempt++ {
		html, err := r.composer.Compose(ctx, items, styleSpec, images, feedback)
		if err != nil {
			return domain.BuildResult{}, fmt.Errorf("メニューページの生成に失敗しました (試行 %d 回目): %w", attempt, err)
		}

		report, err := r.checker.Check(ctx, html)
		if err != nil {
			return domain.BuildResult{}, fmt.Errorf("品質検査に失敗しました (試行 %d 回目): %w", attempt, err)
		}

		if report.Passed() {
			htmlPath, version, err := r.saver.SaveVersioned(r.opts.OutputDir, baseName, html)
			if err != nil {
				return domain.BuildResult{}, fmt.Errorf("メニューページの保存に失敗しました: %w", err)
			}

			slog.InfoContext(ctx, "品質ゲートを通過しました",
				"attempt", attempt,
				"path", htmlPath,
				"version", version,
			)
			return domain.BuildResult{HTMLPath: htmlPath, Version: version, Attempts: attempt}, nil
		}

		feedback = report.FeedbackItems
		slog.WarnContext(ctx, "品質ゲートを通過できなかったため再生成します",
			"attempt", attempt,
			"feedback_items", len(feedback),
		)
	}

	return domain.BuildResult{}, fmt.Errorf("品質ゲートを %d 回の試行で通過できませんでした (最終指摘: %s)",
		r.opts.RetryLimit, strings.Join(feedback, " / "))
}

// fetchMenuItems は資料への問い合わせ結果をメニュー品目一覧へ変換します。
func (r *MenuGenerateRunner) fetchMenuItems(ctx context.Context) (domain.MenuItems, error) {
	answer, err := r.retriever.Query(ctx, retrieval.QuestionMenuItems)
	if err != nil {
		return nil, fmt.Errorf("メニュー品目の取得に失敗しました: %w", err)
	}

	items, err := domain.ParseMenuItems(parser.ExtractJSONBlock(answer))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("資料からメニュー品目を1件も取得できませんでした")
	}
	return items, nil
}
