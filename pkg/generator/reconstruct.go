package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/pkg/parser"
	"github.com/shouni/go-menu-kit/pkg/prompts"
)

// DocumentReconstructor は、ページ区切り付きの資料本文と抽出済み画像の
// 一覧から、画像を文中に埋め込んだ単一HTML複製を生成します。
type DocumentReconstructor struct {
	textGen       TextGenerator
	promptBuilder prompts.PromptBuilder
}

// NewDocumentReconstructor は依存関係を注入して初期化します。
func NewDocumentReconstructor(textGen TextGenerator, pb prompts.PromptBuilder) *DocumentReconstructor {
	return &DocumentReconstructor{
		textGen:       textGen,
		promptBuilder: pb,
	}
}

// Reconstruct は1回の呼び出しで資料全体のHTML複製を生成します。
func (r *DocumentReconstructor) Reconstruct(ctx context.Context, pagesText string, images []string) (string, error) {
	data := prompts.TemplateData{
		Document:  pagesText,
		ImageList: images,
	}
	finalPrompt, err := r.promptBuilder.Build(prompts.ModeReconstruct, data)
	if err != nil {
		return "", fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "DocumentReconstructor: 資料の再構成を開始します", "images", len(images))

	raw, err := r.textGen.GenerateText(ctx, finalPrompt)
	if err != nil {
		return "", err
	}

	html, err := parser.ExtractHTMLDocument(raw)
	if err != nil {
		return "", fmt.Errorf("再構成ページの取り出しに失敗しました: %w", err)
	}
	return html, nil
}
