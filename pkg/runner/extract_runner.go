package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/shouni/go-menu-kit/pkg/asset"
	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/vision"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// ArtifactStore は、JSONやバイナリの成果物を書き出す契約です。
// publisher.MenuPublisher がこれを満たします。
type ArtifactStore interface {
	WriteArtifact(ctx context.Context, path string, data io.Reader, mimeType string) error
	WriteJSON(ctx context.Context, path string, v any) error
}

// ImageExtractor は、PDFから画像を取り出す契約です。
type ImageExtractor interface {
	ExtractImages(pdfPath, outDir string) ([]string, error)
}

// PDFExtractRunner は、PDF資料からの画像抽出と、ビジョンモデルによる
// 内容ベースのリネーム・キャプション付けを管理します。
type PDFExtractRunner struct {
	extractor ImageExtractor
	captioner vision.Captioner
	store     ArtifactStore
	limiter   *rate.Limiter
	imagesDir string
}

// NewPDFExtractRunner は依存関係を注入して初期化します。
func NewPDFExtractRunner(
	extractor ImageExtractor,
	captioner vision.Captioner,
	store ArtifactStore,
	limiter *rate.Limiter,
	imagesDir string,
) *PDFExtractRunner {
	return &PDFExtractRunner{
		extractor: extractor,
		captioner: captioner,
		store:     store,
		limiter:   limiter,
		imagesDir: imagesDir,
	}
}

// Run はPDFの画像を抽出し、各画像をビジョンモデルで解析して内容に
// 沿った名前へ付け替え、キャプション一覧のJSONを書き出します。
// 個々の画像の解析失敗は元の名前のまま読み飛ばします。抽出画像一覧が
// メニュー生成の照合元になるため、一部の失敗で全体は止めません。
func (r *PDFExtractRunner) Run(ctx context.Context, pdfPath string, skipCaptions bool) (domain.ExtractResult, error) {
	files, err := r.extractor.ExtractImages(pdfPath, r.imagesDir)
	if err != nil {
		return domain.ExtractResult{}, fmt.Errorf("PDFからの画像抽出に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "PDFExtractRunner: 画像を抽出しました",
		"pdf", pdfPath,
		"count", len(files),
	)

	if skipCaptions || len(files) == 0 {
		return domain.ExtractResult{Images: files}, nil
	}

	// 1. ビジョン解析は並列、レート制限つき
	insights := make([]*domain.ImageInsight, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range files {
		if !asset.IsImageFile(name) {
			slog.WarnContext(ctx, "対応していない画像形式のため解析を読み飛ばします", "file", name)
			continue
		}
		eg.Go(func() error {
			if err := r.limiter.Wait(egCtx); err != nil {
				return fmt.Errorf("レート制限の待機に失敗しました: %w", err)
			}

			data, err := os.ReadFile(filepath.Join(r.imagesDir, name))
			if err != nil {
				slog.WarnContext(egCtx, "画像を読み込めないため解析を読み飛ばします", "file", name, "error", err)
				return nil
			}

			insight, err := r.captioner.Caption(egCtx, data, imageMimeType(name))
			if err != nil {
				slog.WarnContext(egCtx, "画像の解析に失敗したため元の名前を維持します", "file", name, "error", err)
				return nil
			}
			insights[i] = &insight
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return domain.ExtractResult{}, err
	}

	// 2. リネームは直列。衝突時の連番が決定的になるようにする
	finalNames := make([]string, len(files))
	var descriptions []domain.ImageDescription
	for i, name := range files {
		finalNames[i] = name
		insight := insights[i]
		if insight == nil {
			continue
		}

		renamed, err := r.renameByInsight(name, *insight)
		if err != nil {
			slog.WarnContext(ctx, "画像のリネームに失敗したため元の名前を維持します", "file", name, "error", err)
		} else {
			finalNames[i] = renamed
		}
		descriptions = append(descriptions, domain.ImageDescription{
			File:    finalNames[i],
			Caption: insight.Caption,
		})
	}

	// 3. キャプション一覧は画像ディレクトリの親に置く
	descPath := filepath.Join(filepath.Dir(r.imagesDir), asset.DefaultDescriptionsFileName)
	if err := r.store.WriteJSON(ctx, descPath, descriptions); err != nil {
		return domain.ExtractResult{}, fmt.Errorf("キャプション一覧の保存に失敗しました: %w", err)
	}

	slog.InfoContext(ctx, "PDFExtractRunner: 抽出が完了しました",
		"images", len(finalNames),
		"captioned", len(descriptions),
		"descriptions", descPath,
	)
	return domain.ExtractResult{Images: finalNames, DescriptionsPath: descPath}, nil
}

// renameByInsight は解析結果の名前でファイルを付け替え、最終的な
// ファイル名を返します。サニタイズ後の名前が空、または元の名前と同じ
// 場合は付け替えません。
func (r *PDFExtractRunner) renameByInsight(current string, insight domain.ImageInsight) (string, error) {
	base := asset.SanitizeName(insight.NewName)
	if base == "" {
		return current, nil
	}

	target := r.uniqueImageName(base, filepath.Ext(current), current)
	if target == current {
		return current, nil
	}

	if err := os.Rename(filepath.Join(r.imagesDir, current), filepath.Join(r.imagesDir, target)); err != nil {
		return "", err
	}
	return target, nil
}

// uniqueImageName はディレクトリ内で未使用の名前を連番付きで探します。
func (r *PDFExtractRunner) uniqueImageName(base, ext, current string) string {
	name := base + ext
	for counter := 2; ; counter++ {
		if name == current {
			return name
		}
		if _, err := os.Stat(filepath.Join(r.imagesDir, name)); errors.Is(err, fs.ErrNotExist) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, counter, ext)
	}
}

// imageMimeType は拡張子から画像のMIMEタイプを引きます。
func imageMimeType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".webp":
		return "image/webp"
	default:
		return "image/png"
	}
}
