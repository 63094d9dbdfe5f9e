// Package quality は、生成されたメニューページの品質検査を担います。
// 検査は要件チェックリストを携えたモデル呼び出しとして実現され、
// 判定は PASS / FAIL と改善項目の一覧で返されます。
package quality

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/generator"
	"github.com/shouni/go-menu-kit/pkg/parser"
	"github.com/shouni/go-menu-kit/pkg/prompts"
)

// Checker は、HTML候補1件の品質検査呼び出しの契約です。
// テスト時は決定的な判定を返す代替物に差し替えられます。
type Checker interface {
	Check(ctx context.Context, htmlDocument string) (domain.QCReport, error)
}

// GeminiChecker は Checker の実装です。候補文書をチェックリスト付きの
// プロンプトへ埋め込み、モデルの判定JSONを QCReport へ変換します。
type GeminiChecker struct {
	textGen       generator.TextGenerator
	promptBuilder prompts.PromptBuilder
}

// NewGeminiChecker は依存関係を注入して初期化します。
func NewGeminiChecker(textGen generator.TextGenerator, pb prompts.PromptBuilder) *GeminiChecker {
	return &GeminiChecker{
		textGen:       textGen,
		promptBuilder: pb,
	}
}

// Check は候補文書を検査し、判定と改善項目を返します。
// 検査エージェント側の失敗（呼び出し不能・判定が読めない）はエラーで、
// 呼び出し元が再試行の扱いを決めます。
func (c *GeminiChecker) Check(ctx context.Context, htmlDocument string) (domain.QCReport, error) {
	finalPrompt, err := c.promptBuilder.Build(prompts.ModeQualityCheck, prompts.TemplateData{Document: htmlDocument})
	if err != nil {
		return domain.QCReport{}, fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "GeminiChecker: 品質検査を開始します", "document_bytes", len(htmlDocument))

	raw, err := c.textGen.GenerateText(ctx, finalPrompt)
	if err != nil {
		return domain.QCReport{}, fmt.Errorf("品質検査エージェントの呼び出しに失敗しました: %w", err)
	}

	report, err := ParseReport(raw)
	if err != nil {
		return domain.QCReport{}, err
	}

	slog.InfoContext(ctx, "GeminiChecker: 判定を受領しました",
		"status", report.Status,
		"feedback_items", len(report.FeedbackItems),
	)
	return report, nil
}

// ParseReport は検査エージェントの応答から判定を取り出します。
// コードフェンスの有無を問わず、判定値の表記揺れは正規化します。
func ParseReport(raw string) (domain.QCReport, error) {
	var report domain.QCReport
	if err := parser.DecodeJSON(raw, &report); err != nil {
		return domain.QCReport{}, fmt.Errorf("品質判定の解析に失敗しました: %w", err)
	}

	report.Normalize()
	if !report.Valid() {
		return domain.QCReport{}, fmt.Errorf("品質判定が未知の値です (qc_status: %q, 応答抜粋: %q)",
			report.Status, parser.Truncate(raw, 120))
	}
	return report, nil
}
