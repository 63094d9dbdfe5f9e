package runner

import (
	"context"
	"errors"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/shouni/go-menu-kit/pkg/domain"

	imgdom "github.com/shouni/gemini-image-kit/pkg/domain"
)

// fakeDocumentLoader は固定の本文テキストを返します。
type fakeDocumentLoader struct {
	text      string
	err       error
	gotSource string
}

func (f *fakeDocumentLoader) Load(_ context.Context, source string) (string, error) {
	f.gotSource = source
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

// fakePlanner は固定のメディア計画を返します。
type fakePlanner struct {
	plan    domain.MediaPlan
	err     error
	gotText string
}

func (f *fakePlanner) Plan(_ context.Context, documentText string) (domain.MediaPlan, error) {
	f.gotText = documentText
	if f.err != nil {
		return domain.MediaPlan{}, f.err
	}
	return f.plan, nil
}

// fakeImageRenderer は受け取ったリクエストを記録して固定の画像を返します。
type fakeImageRenderer struct {
	mu       sync.Mutex
	requests []imgdom.ImagePageRequest
	mimeType string
	err      error
}

func (f *fakeImageRenderer) GenerateMangaPage(_ context.Context, req imgdom.ImagePageRequest) (*imgdom.ImageResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	mime := f.mimeType
	if mime == "" {
		mime = "image/png"
	}
	return &imgdom.ImageResponse{Data: []byte("img:" + req.Prompt), MimeType: mime}, nil
}

func newMediaRunner(loader *fakeDocumentLoader, planner *fakePlanner, renderer *fakeImageRenderer, store *fakeArtifactStore, outputDir string) *MediaPromptRunner {
	return NewMediaPromptRunner(loader, planner, renderer, store, testLimiter(), MediaOptions{
		Source:      "examples/menu_corpus.md",
		OutputDir:   outputDir,
		AspectRatio: "1:1",
	})
}

func TestMediaPromptRunnerRun(t *testing.T) {
	ctx := context.Background()

	twoImagePlan := domain.MediaPlan{
		Images: []domain.MediaImagePrompt{
			{AssetName: "Logo", AssetType: "logo", Prompt: "a nautical rope logo"},
			{AssetName: "Hero Banner", AssetType: "hero", Prompt: "wide shot of a rustic dining room"},
		},
		Videos: []domain.MediaVideoPrompt{
			{AssetName: "Teaser", Prompt: "slow pan over fresh seafood"},
		},
	}

	t.Run("計画はJSONとして保存されるのだ", func(t *testing.T) {
		outDir := t.TempDir()
		loader := &fakeDocumentLoader{text: "corpus body"}
		planner := &fakePlanner{plan: twoImagePlan}
		renderer := &fakeImageRenderer{}
		store := &fakeArtifactStore{}
		r := newMediaRunner(loader, planner, renderer, store, outDir)

		result, err := r.Run(ctx, false)
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}

		wantPlan := filepath.Join(outDir, "media_prompts.json")
		if result.PlanPath != wantPlan {
			t.Errorf("計画のパスが期待と違うのだ: %q", result.PlanPath)
		}
		if len(store.jsonPaths) != 1 || store.jsonPaths[0] != wantPlan {
			t.Errorf("計画が保存されていないのだ: %+v", store.jsonPaths)
		}
		if planner.gotText != "corpus body" {
			t.Errorf("計画へ渡された本文が期待と違うのだ: %q", planner.gotText)
		}
		if loader.gotSource != "examples/menu_corpus.md" {
			t.Errorf("資料ソースが期待と違うのだ: %q", loader.gotSource)
		}
		if len(renderer.requests) != 0 || len(result.RenderedPaths) != 0 {
			t.Errorf("render 指定なしで描画されたのだ: %+v", result.RenderedPaths)
		}
	})

	t.Run("render 指定で静止画が保存されるのだ", func(t *testing.T) {
		outDir := t.TempDir()
		renderer := &fakeImageRenderer{}
		store := &fakeArtifactStore{}
		r := newMediaRunner(&fakeDocumentLoader{text: "corpus"}, &fakePlanner{plan: twoImagePlan}, renderer, store, outDir)

		result, err := r.Run(ctx, true)
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}

		want := []string{
			filepath.Join(outDir, "media", "logo.png"),
			filepath.Join(outDir, "media", "hero_banner.png"),
		}
		if len(result.RenderedPaths) != len(want) {
			t.Fatalf("描画数が期待と違うのだ: %+v", result.RenderedPaths)
		}
		for i, p := range want {
			if result.RenderedPaths[i] != p {
				t.Errorf("描画パスが期待と違うのだ: %q, 期待 %q", result.RenderedPaths[i], p)
			}
		}

		gotPaths := append([]string(nil), store.artifactPaths...)
		sort.Strings(gotPaths)
		sort.Strings(want)
		for i, p := range want {
			if gotPaths[i] != p {
				t.Errorf("保存先が期待と違うのだ: %q, 期待 %q", gotPaths[i], p)
			}
		}
		for _, req := range renderer.requests {
			if req.AspectRatio != "1:1" {
				t.Errorf("縦横比が伝わっていないのだ: %q", req.AspectRatio)
			}
		}
	})

	t.Run("資産が空でも計画ファイルは残るのだ", func(t *testing.T) {
		outDir := t.TempDir()
		renderer := &fakeImageRenderer{}
		store := &fakeArtifactStore{}
		r := newMediaRunner(&fakeDocumentLoader{text: "corpus"}, &fakePlanner{}, renderer, store, outDir)

		result, err := r.Run(ctx, true)
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}
		if len(store.jsonPaths) != 1 {
			t.Errorf("空の計画が保存されていないのだ: %+v", store.jsonPaths)
		}
		if len(renderer.requests) != 0 || len(result.RenderedPaths) != 0 {
			t.Errorf("空の計画で描画が動いたのだ: %+v", result.RenderedPaths)
		}
	})

	t.Run("重複する資産名には連番が付くのだ", func(t *testing.T) {
		outDir := t.TempDir()
		plan := domain.MediaPlan{Images: []domain.MediaImagePrompt{
			{AssetName: "Logo", Prompt: "version one"},
			{AssetName: "logo!", Prompt: "version two"},
		}}
		store := &fakeArtifactStore{}
		r := newMediaRunner(&fakeDocumentLoader{text: "corpus"}, &fakePlanner{plan: plan}, &fakeImageRenderer{}, store, outDir)

		result, err := r.Run(ctx, true)
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}
		if filepath.Base(result.RenderedPaths[0]) != "logo.png" || filepath.Base(result.RenderedPaths[1]) != "logo_2.png" {
			t.Errorf("連番の付き方が期待と違うのだ: %+v", result.RenderedPaths)
		}
	})

	t.Run("描画の失敗は全体をエラーにするのだ", func(t *testing.T) {
		wantErr := errors.New("render boom")
		renderer := &fakeImageRenderer{err: wantErr}
		r := newMediaRunner(&fakeDocumentLoader{text: "corpus"}, &fakePlanner{plan: twoImagePlan}, renderer, &fakeArtifactStore{}, t.TempDir())

		_, err := r.Run(ctx, true)
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていないのだ: %v", err)
		}
	})

	t.Run("資料の読み込み失敗は致命的なのだ", func(t *testing.T) {
		wantErr := errors.New("load boom")
		r := newMediaRunner(&fakeDocumentLoader{err: wantErr}, &fakePlanner{}, &fakeImageRenderer{}, &fakeArtifactStore{}, t.TempDir())

		_, err := r.Run(ctx, false)
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていないのだ: %v", err)
		}
	})

	t.Run("計画生成の失敗は致命的なのだ", func(t *testing.T) {
		wantErr := errors.New("plan boom")
		store := &fakeArtifactStore{}
		r := newMediaRunner(&fakeDocumentLoader{text: "corpus"}, &fakePlanner{err: wantErr}, &fakeImageRenderer{}, store, t.TempDir())

		_, err := r.Run(ctx, false)
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていないのだ: %v", err)
		}
		if len(store.jsonPaths) != 0 {
			t.Errorf("失敗した計画が保存されたのだ: %+v", store.jsonPaths)
		}
	})
}
