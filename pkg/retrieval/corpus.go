package retrieval

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/go-menu-kit/pkg/generator"
	"github.com/shouni/go-menu-kit/pkg/prompts"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	defaultAnswerExpiration = 5 * time.Minute
	answerCleanupInterval   = 15 * time.Minute
)

// CorpusRetriever は Retriever の実装です。資料本文は最初の問い合わせで
// 一度だけ読み込み、以降の質問は本文を根拠にモデルへ回答させます。
// 同じ質問への回答はキャッシュされ、並行する同一質問は1回の呼び出しに
// 束ねられます。
type CorpusRetriever struct {
	loader        *CorpusLoader
	source        string
	textGen       generator.TextGenerator
	promptBuilder prompts.PromptBuilder

	loadOnce sync.Once
	corpus   string
	loadErr  error

	answers *cache.Cache
	group   singleflight.Group
}

// NewCorpusRetriever は、source の資料を根拠とする Retriever を作ります。
func NewCorpusRetriever(loader *CorpusLoader, source string, textGen generator.TextGenerator, pb prompts.PromptBuilder) *CorpusRetriever {
	return &CorpusRetriever{
		loader:        loader,
		source:        source,
		textGen:       textGen,
		promptBuilder: pb,
		answers:       cache.New(defaultAnswerExpiration, answerCleanupInterval),
	}
}

// NewCorpusRetrieverFromText は、読み込み済みの本文を直接根拠とする
// Retriever を作ります。
func NewCorpusRetrieverFromText(corpus string, textGen generator.TextGenerator, pb prompts.PromptBuilder) *CorpusRetriever {
	return &CorpusRetriever{
		corpus:        corpus,
		textGen:       textGen,
		promptBuilder: pb,
		answers:       cache.New(defaultAnswerExpiration, answerCleanupInterval),
	}
}

// Query は質問への回答テキストを返します。同一質問の再発行はモデルを
// 再呼び出ししません。
func (r *CorpusRetriever) Query(ctx context.Context, question string) (string, error) {
	if cached, ok := r.answers.Get(question); ok {
		return cached.(string), nil
	}

	v, err, _ := r.group.Do(question, func() (interface{}, error) {
		// 競り合いに敗れた側が到着する前に勝者が書いた値を拾います。
		if cached, ok := r.answers.Get(question); ok {
			return cached.(string), nil
		}

		answer, err := r.ask(ctx, question)
		if err != nil {
			return nil, err
		}

		r.answers.Set(question, answer, cache.DefaultExpiration)
		return answer, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (r *CorpusRetriever) ask(ctx context.Context, question string) (string, error) {
	corpus, err := r.loadCorpus(ctx)
	if err != nil {
		return "", err
	}

	finalPrompt, err := r.promptBuilder.Build(prompts.ModeCorpusAnswer, prompts.TemplateData{
		Corpus:   corpus,
		Question: question,
	})
	if err != nil {
		return "", fmt.Errorf("プロンプト生成に失敗: %w", err)
	}

	slog.InfoContext(ctx, "CorpusRetriever: 資料へ問い合わせます", "question", question)
	return r.textGen.GenerateText(ctx, finalPrompt)
}

// loadCorpus は資料本文を一度だけ読み込みます。失敗も一度きりで、
// 以降の問い合わせには同じエラーを返します。
func (r *CorpusRetriever) loadCorpus(ctx context.Context) (string, error) {
	r.loadOnce.Do(func() {
		if r.corpus != "" {
			return
		}
		text, err := r.loader.Load(ctx, r.source)
		if err != nil {
			r.loadErr = fmt.Errorf("資料の読み込みに失敗しました (%s): %w", r.source, err)
			return
		}
		r.corpus = text
		slog.InfoContext(ctx, "CorpusRetriever: 資料を読み込みました",
			"source", r.source, "chars", len(text))
	})
	return r.corpus, r.loadErr
}
