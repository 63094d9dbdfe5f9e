package generator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/parser"
	"github.com/shouni/go-menu-kit/pkg/prompts"
)

// MediaPlanner は、資料本文を解析して画像・動画の生成プロンプト計画を作ります。
type MediaPlanner struct {
	textGen       TextGenerator
	promptBuilder prompts.PromptBuilder
}

// NewMediaPlanner は依存関係を注入して初期化します。
func NewMediaPlanner(textGen TextGenerator, pb prompts.PromptBuilder) *MediaPlanner {
	return &MediaPlanner{
		textGen:       textGen,
		promptBuilder: pb,
	}
}

// Plan は資料本文からメディア計画を生成します。
// 計画が空（資産が1つも見つからない）でもエラーにはしません。
func (p *MediaPlanner) Plan(ctx context.Context, documentText string) (domain.MediaPlan, error) {
	finalPrompt, err := p.promptBuilder.Build(prompts.ModeMediaPlan, prompts.TemplateData{Document: documentText})
	if err != nil {
		return domain.MediaPlan{}, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "MediaPlanner: メディア計画の生成を開始します")

	raw, err := p.textGen.GenerateText(ctx, finalPrompt)
	if err != nil {
		return domain.MediaPlan{}, err
	}

	var plan domain.MediaPlan
	if err := parser.DecodeJSON(raw, &plan); err != nil {
		return domain.MediaPlan{}, err
	}

	slog.InfoContext(ctx, "MediaPlanner: メディア計画を取得しました",
		"image_prompts", len(plan.Images),
		"video_prompts", len(plan.Videos),
	)
	return plan, nil
}
