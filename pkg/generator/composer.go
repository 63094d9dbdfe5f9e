package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/parser"
	"github.com/shouni/go-menu-kit/pkg/prompts"
)

// MenuComposer は、メニュー品目・スタイル指示・画像一覧から
// 自己完結した1枚のHTMLメニューページを生成します。
type MenuComposer struct {
	textGen       TextGenerator
	promptBuilder prompts.PromptBuilder
}

// NewMenuComposer は依存関係を注入して初期化します。
func NewMenuComposer(textGen TextGenerator, pb prompts.PromptBuilder) *MenuComposer {
	return &MenuComposer{
		textGen:       textGen,
		promptBuilder: pb,
	}
}

// Compose は1回分の生成を実行し、doctype から </html> までの完全な
// HTML文書を返します。feedback は前回の品質検査の指摘で、2回目以降の
// 試行でのみ非空になります。
func (c *MenuComposer) Compose(ctx context.Context, items domain.MenuItems, styleSpec string, images []string, feedback []string) (string, error) {
	menuJSON, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("メニュー品目のJSON整形に失敗しました: %w", err)
	}

	data := prompts.TemplateData{
		MenuJSON:  string(menuJSON),
		StyleSpec: styleSpec,
		ImageList: images,
		Feedback:  feedback,
	}
	finalPrompt, err := c.promptBuilder.Build(prompts.ModeMenuPage, data)
	if err != nil {
		return "", fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "MenuComposer: HTMLページの生成を開始します",
		"items", len(items),
		"images", len(images),
		"feedback_items", len(feedback),
	)

	raw, err := c.textGen.GenerateText(ctx, finalPrompt)
	if err != nil {
		return "", err
	}

	html, err := parser.ExtractHTMLDocument(raw)
	if err != nil {
		return "", fmt.Errorf("生成されたページの取り出しに失敗しました: %w", err)
	}
	return html, nil
}
