// Package retrieval は、戦略資料への自然言語問い合わせを提供します。
// 資料全文を根拠としてモデルに回答させる方式で、回答は質問単位で
// キャッシュされます。
package retrieval

import "context"

// ワークフローが発行する固定の質問文です。
const (
	// QuestionMenuItems はメニュー品目の構造化JSONを要求します。
	QuestionMenuItems = "List all menu items with their name, price, and full customer-facing description in a structured JSON format."
	// QuestionStyleGuide はブランド・デザイン指示の構造化JSONを要求します。
	QuestionStyleGuide = "List all branding, design, and style guide details in a structured JSON format."
)

// Retriever は、資料への問い合わせ1回分の契約です。
// 応答はスキーマ検証をしない不透明なテキストとして扱われます。
type Retriever interface {
	Query(ctx context.Context, question string) (string, error)
}
