package workflow

import (
	"fmt"

	"github.com/shouni/go-menu-kit/pkg/generator"
	"github.com/shouni/go-menu-kit/pkg/pdf"
	"github.com/shouni/go-menu-kit/pkg/quality"
	"github.com/shouni/go-menu-kit/pkg/retrieval"
	"github.com/shouni/go-menu-kit/pkg/runner"

	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// BuildMenuGenerateRunner は、メニューページの生成を担当する Runner を作成します。
func (m *Manager) BuildMenuGenerateRunner() (MenuRunner, error) {
	retriever, err := m.buildRetriever()
	if err != nil {
		return nil, err
	}

	composer := generator.NewMenuComposer(m.textGen, m.promptBuilder)
	checker := quality.NewGeminiChecker(m.textGen, m.promptBuilder)

	return runner.NewMenuGenerateRunner(retriever, composer, checker, m.pub, runner.MenuGenerateOptions{
		ImagesDir:  m.cfg.ImagesDir,
		OutputDir:  m.cfg.OutputDir,
		RetryLimit: m.cfg.RetryLimit,
	}), nil
}

// BuildExtractRunner は、PDFからの画像抽出を担当する Runner を作成します。
func (m *Manager) BuildExtractRunner() (ExtractRunner, error) {
	return runner.NewPDFExtractRunner(pdf.NewExtractor(), m.captioner, m.pub, m.limiter, m.cfg.ImagesDir), nil
}

// BuildMediaRunner は、メディア計画の生成と描画を担当する Runner を作成します。
func (m *Manager) BuildMediaRunner() (MediaRunner, error) {
	loader, err := m.buildLoader()
	if err != nil {
		return nil, err
	}

	planner := generator.NewMediaPlanner(m.textGen, m.promptBuilder)

	return runner.NewMediaPromptRunner(loader, planner, m.imageEngine, m.pub, m.limiter, runner.MediaOptions{
		Source:      m.cfg.CorpusSource,
		OutputDir:   m.cfg.OutputDir,
		AspectRatio: m.cfg.AspectRatio,
	}), nil
}

// BuildReconstructRunner は、PDF複製の組み立てを担当する Runner を作成します。
func (m *Manager) BuildReconstructRunner() (ReconstructRunner, error) {
	reconstructor := generator.NewDocumentReconstructor(m.textGen, m.promptBuilder)

	return runner.NewDocumentReconstructRunner(pdf.NewExtractor(), reconstructor, m.pub, m.cfg.ImagesDir), nil
}

// buildRetriever は、資料への問い合わせを担当する Retriever を作成します。
func (m *Manager) buildRetriever() (retrieval.Retriever, error) {
	loader, err := m.buildLoader()
	if err != nil {
		return nil, err
	}

	return retrieval.NewCorpusRetriever(loader, m.cfg.CorpusSource, m.textGen, m.promptBuilder), nil
}

// buildLoader は、資料ソースの形式判別付き読み込み器を作成します。
func (m *Manager) buildLoader() (*retrieval.CorpusLoader, error) {
	extractor, err := extract.NewExtractor(m.httpClient)
	if err != nil {
		return nil, fmt.Errorf("extractor の初期化に失敗しました: %w", err)
	}

	return retrieval.NewCorpusLoader(m.reader, extractor, pdf.NewExtractor()), nil
}
