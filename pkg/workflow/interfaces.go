package workflow

import (
	"context"

	"github.com/shouni/go-menu-kit/pkg/domain"
)

// Workflow は、メニュー資料処理の各工程を担当するRunnerを構築するためのインターフェースを定義します。
type Workflow interface {
	BuildMenuGenerateRunner() (MenuRunner, error)
	BuildExtractRunner() (ExtractRunner, error)
	BuildMediaRunner() (MediaRunner, error)
	BuildReconstructRunner() (ReconstructRunner, error)
}

// MenuRunner は、資料の取得からHTML生成・品質検査・バージョン付き保存までを行う責務を持ちます。
type MenuRunner interface {
	Run(ctx context.Context, baseName string) (domain.BuildResult, error)
}

// ExtractRunner は、PDF資料からの画像抽出と、内容に基づくリネーム・キャプション付けを行う責務を持ちます。
type ExtractRunner interface {
	Run(ctx context.Context, pdfPath string, skipCaptions bool) (domain.ExtractResult, error)
}

// MediaRunner は、資料からの販促メディア計画の生成と、計画に基づく静止画の描画を行う責務を持ちます。
type MediaRunner interface {
	Run(ctx context.Context, render bool) (domain.MediaResult, error)
}

// ReconstructRunner は、PDF資料の本文と抽出済み画像から単一HTMLの複製を組み立てる責務を持ちます。
type ReconstructRunner interface {
	Run(ctx context.Context, pdfPath, outputFile string) (string, error)
}
