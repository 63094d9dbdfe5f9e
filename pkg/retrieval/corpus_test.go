package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shouni/go-menu-kit/pkg/prompts"
)

type countingTextGenerator struct {
	calls      int
	lastPrompt string
	response   string
	err        error
}

func (f *countingTextGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func newRetrieverUnderTest(t *testing.T, gen *countingTextGenerator) *CorpusRetriever {
	t.Helper()
	pb, err := prompts.NewTextPromptBuilder()
	if err != nil {
		t.Fatalf("プロンプトビルダーの構築に失敗したのだ: %v", err)
	}
	return NewCorpusRetrieverFromText("The Anchor & Olive strategic plan: Grilled Salmon $24", gen, pb)
}

func TestCorpusRetrieverQuery(t *testing.T) {
	t.Run("資料と質問がプロンプトへ載り回答が返るのだ", func(t *testing.T) {
		gen := &countingTextGenerator{response: `[{"name":"Grilled Salmon"}]`}
		r := newRetrieverUnderTest(t, gen)

		answer, err := r.Query(context.Background(), QuestionMenuItems)
		if err != nil {
			t.Fatalf("Query に失敗したのだ: %v", err)
		}
		if answer != `[{"name":"Grilled Salmon"}]` {
			t.Errorf("回答が期待と違うのだ: %q", answer)
		}
		if !strings.Contains(gen.lastPrompt, "strategic plan") {
			t.Error("資料本文がプロンプトに載らないのだ")
		}
		if !strings.Contains(gen.lastPrompt, QuestionMenuItems) {
			t.Error("質問文がプロンプトに載らないのだ")
		}
	})

	t.Run("同じ質問の再発行はモデルを呼ばないのだ", func(t *testing.T) {
		gen := &countingTextGenerator{response: "answer"}
		r := newRetrieverUnderTest(t, gen)

		for range 3 {
			if _, err := r.Query(context.Background(), QuestionMenuItems); err != nil {
				t.Fatalf("Query に失敗したのだ: %v", err)
			}
		}
		if gen.calls != 1 {
			t.Errorf("モデル呼び出し回数が期待と違うのだ: %d", gen.calls)
		}
	})

	t.Run("別の質問は別の呼び出しになるのだ", func(t *testing.T) {
		gen := &countingTextGenerator{response: "answer"}
		r := newRetrieverUnderTest(t, gen)

		if _, err := r.Query(context.Background(), QuestionMenuItems); err != nil {
			t.Fatal(err)
		}
		if _, err := r.Query(context.Background(), QuestionStyleGuide); err != nil {
			t.Fatal(err)
		}
		if gen.calls != 2 {
			t.Errorf("モデル呼び出し回数が期待と違うのだ: %d", gen.calls)
		}
	})

	t.Run("失敗した回答はキャッシュされないのだ", func(t *testing.T) {
		gen := &countingTextGenerator{err: errors.New("unavailable")}
		r := newRetrieverUnderTest(t, gen)

		if _, err := r.Query(context.Background(), QuestionMenuItems); err == nil {
			t.Fatal("エラーが返らないのだ")
		}

		gen.err = nil
		gen.response = "recovered"
		answer, err := r.Query(context.Background(), QuestionMenuItems)
		if err != nil {
			t.Fatalf("復帰後の Query に失敗したのだ: %v", err)
		}
		if answer != "recovered" || gen.calls != 2 {
			t.Errorf("復帰後の挙動が期待と違うのだ: answer=%q calls=%d", answer, gen.calls)
		}
	})
}
