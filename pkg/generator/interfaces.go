// Package generator は、Gemini を使ったテキスト生成とその応答の
// ドメインモデルへの変換を担います。
package generator

import (
	"context"

	"github.com/shouni/go-menu-kit/pkg/domain"
)

// TextGenerator は、1回のテキスト生成呼び出しの契約です。
// テスト時は決定的な応答を返す代替物に差し替えられます。
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// PageComposer は、統合済みメニューデータから完全なHTML文書を生成する契約です。
type PageComposer interface {
	Compose(ctx context.Context, items domain.MenuItems, styleSpec string, images []string, feedback []string) (string, error)
}

// Planner は、資料本文からメディア資産の生成プロンプト計画を作る契約です。
type Planner interface {
	Plan(ctx context.Context, documentText string) (domain.MediaPlan, error)
}

// Reconstructor は、ページ区切り付きの資料本文と画像一覧からHTML複製を作る契約です。
type Reconstructor interface {
	Reconstruct(ctx context.Context, pagesText string, images []string) (string, error)
}
