// Package vision は、抽出画像のビジョンモデルによる解析を担います。
// 画像1枚につき、ファイル名にふさわしい短い呼称と顧客向けの説明文を
// 1回のマルチモーダル呼び出しで取得します。
package vision

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/parser"
	"github.com/shouni/go-menu-kit/pkg/prompts"

	"google.golang.org/genai"
)

// Captioner は、画像1枚の解析呼び出しの契約です。
// テスト時は決定的な応答を返す代替物に差し替えられます。
type Captioner interface {
	Caption(ctx context.Context, imageData []byte, mimeType string) (domain.ImageInsight, error)
}

// GeminiCaptioner は Captioner の実装です。画像バイト列とプロンプトを
// 1つのリクエストにまとめ、genai のマルチモーダル生成へ送ります。
type GeminiCaptioner struct {
	client        *genai.Client
	model         string
	promptBuilder prompts.PromptBuilder
}

// NewGeminiCaptioner は genai クライアントを初期化して Captioner を作ります。
func NewGeminiCaptioner(ctx context.Context, apiKey, model string, pb prompts.PromptBuilder) (*GeminiCaptioner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ビジョンクライアントの初期化に失敗しました: %w", err)
	}

	return &GeminiCaptioner{
		client:        client,
		model:         model,
		promptBuilder: pb,
	}, nil
}

// Caption は画像を解析し、新しいファイル名の候補と説明文を返します。
func (c *GeminiCaptioner) Caption(ctx context.Context, imageData []byte, mimeType string) (domain.ImageInsight, error) {
	finalPrompt, err := c.promptBuilder.Build(prompts.ModeImageCaption, prompts.TemplateData{})
	if err != nil {
		return domain.ImageInsight{}, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(finalPrompt),
			genai.NewPartFromBytes(imageData, mimeType),
		}, genai.RoleUser),
	}

	slog.InfoContext(ctx, "GeminiCaptioner: 画像を解析します",
		"model", c.model, "mime_type", mimeType, "bytes", len(imageData))

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return domain.ImageInsight{}, fmt.Errorf("ビジョンモデルの呼び出しに失敗しました (model: %s): %w", c.model, err)
	}

	return ParseInsight(resp.Text())
}

// ParseInsight はビジョンモデルの応答から解析結果を取り出します。
// new_name のない応答はリネームに使えないためエラーです。
func ParseInsight(raw string) (domain.ImageInsight, error) {
	var insight domain.ImageInsight
	if err := parser.DecodeJSON(raw, &insight); err != nil {
		return domain.ImageInsight{}, fmt.Errorf("ビジョン応答の解析に失敗しました: %w", err)
	}

	if insight.NewName == "" {
		return domain.ImageInsight{}, fmt.Errorf("ビジョン応答に new_name が含まれていません (応答抜粋: %q)",
			parser.Truncate(raw, 120))
	}
	return insight, nil
}
