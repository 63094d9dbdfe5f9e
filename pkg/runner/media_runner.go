package runner

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"

	"github.com/shouni/go-menu-kit/pkg/asset"
	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/generator"

	imgdom "github.com/shouni/gemini-image-kit/pkg/domain"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// DocumentLoader は、資料ソースを本文テキストへ解決する契約です。
// retrieval.CorpusLoader がこれを満たします。
type DocumentLoader interface {
	Load(ctx context.Context, source string) (string, error)
}

// ImageRenderer は画像生成エンジンへのインターフェースです。
type ImageRenderer interface {
	GenerateMangaPage(ctx context.Context, req imgdom.ImagePageRequest) (*imgdom.ImageResponse, error)
}

// MediaOptions はメディア計画ワークフローの実行時設定です。
type MediaOptions struct {
	// Source は計画の元になる資料（PDF・Markdown・URL）です。
	Source string
	// OutputDir は計画JSONと描画画像の保存先ディレクトリです。
	OutputDir string
	// AspectRatio は描画する静止画の縦横比です。
	AspectRatio string
}

// MediaPromptRunner は、資料本文からの販促メディア計画の生成と、
// 計画に基づく静止画の描画を管理します。
type MediaPromptRunner struct {
	loader   DocumentLoader
	planner  generator.Planner
	renderer ImageRenderer
	store    ArtifactStore
	limiter  *rate.Limiter
	opts     MediaOptions
}

// NewMediaPromptRunner は依存関係を注入して初期化します。
func NewMediaPromptRunner(
	loader DocumentLoader,
	planner generator.Planner,
	renderer ImageRenderer,
	store ArtifactStore,
	limiter *rate.Limiter,
	opts MediaOptions,
) *MediaPromptRunner {
	return &MediaPromptRunner{
		loader:   loader,
		planner:  planner,
		renderer: renderer,
		store:    store,
		limiter:  limiter,
		opts:     opts,
	}
}

// Run は資料からメディア計画を生成してJSONで保存し、render 指定時は
// 計画内の静止画プロンプトを画像モデルで描画して保存します。
// 動画プロンプトは計画に載せるだけで描画しません。
func (r *MediaPromptRunner) Run(ctx context.Context, render bool) (domain.MediaResult, error) {
	text, err := r.loader.Load(ctx, r.opts.Source)
	if err != nil {
		return domain.MediaResult{}, fmt.Errorf("資料の読み込みに失敗しました (%s): %w", r.opts.Source, err)
	}

	plan, err := r.planner.Plan(ctx, text)
	if err != nil {
		return domain.MediaResult{}, fmt.Errorf("メディア計画の生成に失敗しました: %w", err)
	}

	planPath, err := asset.ResolveOutputPath(r.opts.OutputDir, asset.DefaultMediaPlanFileName)
	if err != nil {
		return domain.MediaResult{}, fmt.Errorf("計画の出力パス解決に失敗しました: %w", err)
	}
	if err := r.store.WriteJSON(ctx, planPath, plan); err != nil {
		return domain.MediaResult{}, fmt.Errorf("メディア計画の保存に失敗しました: %w", err)
	}

	result := domain.MediaResult{PlanPath: planPath}

	if plan.TotalAssets() == 0 {
		slog.WarnContext(ctx, "資料からメディア資産が1件も見つかりませんでした", "source", r.opts.Source)
		return result, nil
	}
	if !render {
		slog.InfoContext(ctx, "MediaPromptRunner: 計画のみを保存しました",
			"path", planPath,
			"image_prompts", len(plan.Images),
			"video_prompts", len(plan.Videos),
		)
		return result, nil
	}

	rendered, err := r.renderImages(ctx, plan.Images)
	if err != nil {
		return domain.MediaResult{}, err
	}
	result.RenderedPaths = rendered

	slog.InfoContext(ctx, "MediaPromptRunner: 描画が完了しました",
		"plan", planPath,
		"rendered", len(rendered),
	)
	return result, nil
}

// renderImages は静止画プロンプトを並列に描画して保存します。
// 1件でも失敗したら全体をエラーにします。
func (r *MediaPromptRunner) renderImages(ctx context.Context, prompts []domain.MediaImagePrompt) ([]string, error) {
	// ファイル名の衝突回避は描画前に直列で済ませる
	baseNames := assetBaseNames(prompts)

	rendered := make([]string, len(prompts))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, p := range prompts {
		eg.Go(func() error {
			if err := r.limiter.Wait(egCtx); err != nil {
				return fmt.Errorf("レート制限の待機に失敗しました: %w", err)
			}

			resp, err := r.renderer.GenerateMangaPage(egCtx, imgdom.ImagePageRequest{
				Prompt:      p.Prompt,
				AspectRatio: r.opts.AspectRatio,
			})
			if err != nil {
				return fmt.Errorf("メディア画像の生成に失敗しました (%s): %w", p.AssetName, err)
			}

			filename := baseNames[i] + getPreferredExtension(resp.MimeType)
			target, err := asset.ResolveOutputPath(r.opts.OutputDir, path.Join(asset.DefaultMediaDirName, filename))
			if err != nil {
				return fmt.Errorf("画像保存パスの生成に失敗しました (%s): %w", filename, err)
			}

			if err := r.store.WriteArtifact(egCtx, target, bytes.NewReader(resp.Data), resp.MimeType); err != nil {
				return fmt.Errorf("メディア画像の保存に失敗しました (path: %s): %w", target, err)
			}

			slog.InfoContext(egCtx, "メディア画像を保存しました",
				"asset", p.AssetName,
				"path", target,
			)
			rendered[i] = target
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return rendered, nil
}

// assetBaseNames は資産名をサニタイズし、重複には連番を付けます。
func assetBaseNames(prompts []domain.MediaImagePrompt) []string {
	names := make([]string, len(prompts))
	used := make(map[string]int)
	for i, p := range prompts {
		base := asset.SanitizeName(p.AssetName)
		if base == "" {
			base = fmt.Sprintf("asset_%d", i+1)
		}
		used[base]++
		if n := used[base]; n > 1 {
			base = fmt.Sprintf("%s_%d", base, n)
		}
		names[i] = base
	}
	return names
}

// getPreferredExtension はMIMEタイプから保存時の拡張子を決めます。
func getPreferredExtension(mimeType string) string {
	preferred := map[string]string{"image/png": ".png", "image/jpeg": ".jpg"}
	if ext, ok := preferred[mimeType]; ok {
		return ext
	}
	return ".png"
}
