package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-menu-kit/internal/config"
	"github.com/shouni/go-menu-kit/pkg/workflow"

	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
)

// ExecuteGenerate は、店舗資料への問い合わせからメニューページの生成・検品・
// 保存までを一気通貫で実行するのだ。
func ExecuteGenerate(ctx context.Context, cfg *config.Config) error {
	mgr, err := setupManager(ctx, cfg)
	if err != nil {
		return err
	}

	menuRunner, err := mgr.BuildMenuGenerateRunner()
	if err != nil {
		return fmt.Errorf("MenuGenerateRunnerの構築に失敗したのだ: %w", err)
	}

	slog.Info("メニューページの生成を開始するのだ...", "corpus", cfg.Options.CorpusSource)

	result, err := menuRunner.Run(ctx, cfg.Options.BaseName)
	if err != nil {
		return fmt.Errorf("メニューページの生成に失敗したのだ: %w", err)
	}

	slog.Info("メニューページが完成したのだ！",
		"path", result.HTMLPath, "version", result.Version, "attempts", result.Attempts)
	return nil
}

// ExecuteExtract は、PDFからの画像抽出とビジョンモデルによるキャプション付与・
// リネームを実行するのだ。
func ExecuteExtract(ctx context.Context, cfg *config.Config) error {
	mgr, err := setupManager(ctx, cfg)
	if err != nil {
		return err
	}

	extractRunner, err := mgr.BuildExtractRunner()
	if err != nil {
		return fmt.Errorf("PDFExtractRunnerの構築に失敗したのだ: %w", err)
	}

	slog.Info("PDFからの画像抽出を開始するのだ...", "pdf", cfg.Options.PDFPath)

	result, err := extractRunner.Run(ctx, cfg.Options.PDFPath, cfg.Options.SkipCaptions)
	if err != nil {
		return fmt.Errorf("画像抽出に失敗したのだ: %w", err)
	}

	slog.Info("画像の抽出が完了したのだ！",
		"count", len(result.Images), "descriptions", result.DescriptionsPath)
	return nil
}

// ExecuteMedia は、店舗資料からメディア計画（ロゴ・バナー・動画のプロンプト集）を
// 生成し、--render 指定時は静止画の描画まで実行するのだ。
func ExecuteMedia(ctx context.Context, cfg *config.Config) error {
	mgr, err := setupManager(ctx, cfg)
	if err != nil {
		return err
	}

	mediaRunner, err := mgr.BuildMediaRunner()
	if err != nil {
		return fmt.Errorf("MediaPromptRunnerの構築に失敗したのだ: %w", err)
	}

	slog.Info("メディア計画の生成を開始するのだ...", "source", cfg.Options.CorpusSource)

	result, err := mediaRunner.Run(ctx, cfg.Options.Render)
	if err != nil {
		return fmt.Errorf("メディア計画の生成に失敗したのだ: %w", err)
	}

	slog.Info("メディア計画が完成したのだ！",
		"plan", result.PlanPath, "rendered", len(result.RenderedPaths))
	return nil
}

// ExecuteReconstruct は、PDFの本文と抽出済み画像から元資料を再現する
// HTMLページを組み立てる最終ステージなのだ！
func ExecuteReconstruct(ctx context.Context, cfg *config.Config) error {
	mgr, err := setupManager(ctx, cfg)
	if err != nil {
		return err
	}

	reconRunner, err := mgr.BuildReconstructRunner()
	if err != nil {
		return fmt.Errorf("DocumentReconstructRunnerの構築に失敗したのだ: %w", err)
	}

	slog.Info("複製ページの組み立てを開始するのだ...", "pdf", cfg.Options.PDFPath)

	path, err := reconRunner.Run(ctx, cfg.Options.PDFPath, cfg.Options.OutputFile)
	if err != nil {
		return fmt.Errorf("複製ページの生成に失敗したのだ: %w", err)
	}

	slog.Info("複製ページが完成したのだ！", "path", path)
	return nil
}

// setupManager は、提供された設定と共有コンポーネントを使用して、ワークフローの
// Manager を初期化して返すのだ。初期化中にエラーが発生した場合は、
// Manager のポインタとエラーを返すのだ。
func setupManager(ctx context.Context, cfg *config.Config) (*workflow.Manager, error) {
	timeout := cfg.Options.HTTPTimeout
	if timeout <= 0 {
		timeout = config.DefaultHTTPTimeout
	}
	httpClient := httpkit.New(timeout)

	gcsFactory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client factory: %w", err)
	}

	reader, err := gcsFactory.NewInputReader()
	if err != nil {
		return nil, err
	}
	writer, err := gcsFactory.NewOutputWriter()
	if err != nil {
		return nil, err
	}

	mgr, err := workflow.New(ctx, workflow.ManagerArgs{
		Config:     newWorkflowConfig(cfg),
		HTTPClient: httpClient,
		Reader:     reader,
		Writer:     writer,
	})
	if err != nil {
		return nil, fmt.Errorf("Managerの構築に失敗したのだ: %w", err)
	}
	return mgr, nil
}

// newWorkflowConfig は、環境変数とCLIフラグの設定をワークフロー側の Config へ詰め替えるのだ。
func newWorkflowConfig(cfg *config.Config) workflow.Config {
	wfCfg := workflow.NewConfig(cfg.GeminiAPIKey)
	wfCfg.GeminiModel = cfg.GeminiModel
	wfCfg.VisionModel = cfg.VisionModel
	wfCfg.ImageModel = cfg.ImageModel
	wfCfg.CorpusSource = cfg.Options.CorpusSource
	wfCfg.ImagesDir = cfg.Options.ImagesDir
	wfCfg.OutputDir = cfg.Options.OutputDir
	wfCfg.RetryLimit = cfg.Options.RetryLimit
	wfCfg.AspectRatio = cfg.Options.AspectRatio
	wfCfg.RateInterval = cfg.Options.RateInterval
	return wfCfg
}
