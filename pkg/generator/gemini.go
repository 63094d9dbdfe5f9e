package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// GeminiTextGenerator は gemini クライアントを TextGenerator 契約へ適合させます。
// モデル名は構築時に固定され、以降の呼び出しで共有されます。
type GeminiTextGenerator struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiTextGenerator は依存関係を注入して初期化します。
func NewGeminiTextGenerator(aiClient gemini.GenerativeModel, model string) *GeminiTextGenerator {
	return &GeminiTextGenerator{
		aiClient: aiClient,
		model:    model,
	}
}

// GenerateText はプロンプトを送信し、応答本文をそのまま返します。
func (g *GeminiTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.aiClient.GenerateContent(ctx, prompt, g.model)
	if err != nil {
		return "", fmt.Errorf("Gemini API の呼び出しに失敗しました (model: %s): %w", g.model, err)
	}
	return resp.Text, nil
}
