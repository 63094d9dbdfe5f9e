package runner

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-menu-kit/pkg/asset"
	"github.com/shouni/go-menu-kit/pkg/generator"
)

// TextExtractor は、PDFから本文テキストを取り出す契約です。
type TextExtractor interface {
	ExtractText(pdfPath string) (string, error)
}

// DocumentReconstructRunner は、PDF資料の本文と抽出済み画像から
// 単一HTMLの複製ページを組み立てる工程を管理します。
type DocumentReconstructRunner struct {
	extractor     TextExtractor
	reconstructor generator.Reconstructor
	store         ArtifactStore
	imagesDir     string
}

// NewDocumentReconstructRunner は依存関係を注入して初期化します。
func NewDocumentReconstructRunner(
	extractor TextExtractor,
	reconstructor generator.Reconstructor,
	store ArtifactStore,
	imagesDir string,
) *DocumentReconstructRunner {
	return &DocumentReconstructRunner{
		extractor:     extractor,
		reconstructor: reconstructor,
		store:         store,
		imagesDir:     imagesDir,
	}
}

// Run はPDF本文をページ区切り付きで抽出し、画像ディレクトリの一覧と
// あわせてHTML複製を生成して outputFile へ書き出します。
// 画像ディレクトリが読めない場合は画像なしで続行します。
func (r *DocumentReconstructRunner) Run(ctx context.Context, pdfPath, outputFile string) (string, error) {
	text, err := r.extractor.ExtractText(pdfPath)
	if err != nil {
		return "", fmt.Errorf("PDF本文の抽出に失敗しました: %w", err)
	}

	images := asset.ListImages(r.imagesDir)

	slog.InfoContext(ctx, "DocumentReconstructRunner: 複製の生成を開始します",
		"pdf", pdfPath,
		"text_chars", len(text),
		"images", len(images),
	)

	html, err := r.reconstructor.Reconstruct(ctx, text, images)
	if err != nil {
		return "", fmt.Errorf("複製ページの生成に失敗しました: %w", err)
	}

	if err := r.store.WriteArtifact(ctx, outputFile, strings.NewReader(html), "text/html; charset=utf-8"); err != nil {
		return "", fmt.Errorf("複製ページの保存に失敗しました (path: %s): %w", outputFile, err)
	}

	slog.InfoContext(ctx, "DocumentReconstructRunner: 複製を保存しました", "path", outputFile)
	return outputFile, nil
}
