package workflow

import (
	"context"
	"fmt"

	"github.com/shouni/go-menu-kit/pkg/generator"
	"github.com/shouni/go-menu-kit/pkg/prompts"
	"github.com/shouni/go-menu-kit/pkg/publisher"
	"github.com/shouni/go-menu-kit/pkg/vision"

	imagekit "github.com/shouni/gemini-image-kit/pkg/generator"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

// ManagerArgs は Manager の構築に必要な依存関係の束です。
// PromptBuilder は省略可能で、nil の場合は既定のビルダーを新規作成します。
type ManagerArgs struct {
	Config        Config
	HTTPClient    httpkit.ClientInterface
	Reader        remoteio.InputReader
	Writer        remoteio.OutputWriter
	PromptBuilder prompts.PromptBuilder
}

// Manager は、ワークフローの各工程を担う Runner 群を構築・管理します。
type Manager struct {
	cfg           Config
	httpClient    httpkit.ClientInterface
	reader        remoteio.InputReader
	writer        remoteio.OutputWriter
	aiClient      gemini.GenerativeModel
	promptBuilder prompts.PromptBuilder
	textGen       *generator.GeminiTextGenerator
	captioner     vision.Captioner
	imageEngine   imagekit.ImageGenerator
	pub           *publisher.MenuPublisher
	limiter       *rate.Limiter
}

// New は、設定と依存関係を基に新しい Manager を初期化します。
func New(ctx context.Context, args ManagerArgs) (*Manager, error) {
	if args.Config.RetryLimit < 1 {
		return nil, fmt.Errorf("RetryLimit は1以上が必須です (指定値: %d)", args.Config.RetryLimit)
	}
	if args.HTTPClient == nil {
		return nil, fmt.Errorf("httpClient は必須です")
	}
	if args.Reader == nil {
		return nil, fmt.Errorf("InputReader は必須です")
	}
	if args.Writer == nil {
		return nil, fmt.Errorf("OutputWriter は必須です")
	}

	aiClient, err := initializeAIClient(ctx, args.Config.GeminiAPIKey)
	if err != nil {
		return nil, err
	}

	pb, err := initializePromptBuilder(args.PromptBuilder)
	if err != nil {
		return nil, err
	}

	captioner, err := vision.NewGeminiCaptioner(ctx, args.Config.GeminiAPIKey, args.Config.VisionModel, pb)
	if err != nil {
		return nil, err
	}

	imageEngine, err := buildImageEngine(args.Config, args.HTTPClient, aiClient, args.Reader)
	if err != nil {
		return nil, fmt.Errorf("画像生成エンジンの初期化に失敗しました: %w", err)
	}

	return &Manager{
		cfg:           args.Config,
		httpClient:    args.HTTPClient,
		reader:        args.Reader,
		writer:        args.Writer,
		aiClient:      aiClient,
		promptBuilder: pb,
		textGen:       generator.NewGeminiTextGenerator(aiClient, args.Config.GeminiModel),
		captioner:     captioner,
		imageEngine:   imageEngine,
		pub:           publisher.NewMenuPublisher(args.Writer),
		limiter:       rate.NewLimiter(rate.Every(args.Config.RateInterval), defaultRateBurst),
	}, nil
}

// initializeAIClient は gemini クライアントを初期化します。
func initializeAIClient(ctx context.Context, apiKey string) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(defaultGeminiTemperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// initializePromptBuilder は PromptBuilder を初期化します。
// 引数として既存のビルダーが渡された場合はそれを返し、nil の場合は新規作成します。
func initializePromptBuilder(pb prompts.PromptBuilder) (prompts.PromptBuilder, error) {
	if pb != nil {
		return pb, nil
	}

	builder, err := prompts.NewTextPromptBuilder()
	if err != nil {
		return nil, fmt.Errorf("TextPromptBuilder の新規作成に失敗しました: %w", err)
	}

	return builder, nil
}
