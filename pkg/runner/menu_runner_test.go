package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shouni/go-menu-kit/pkg/domain"
	"github.com/shouni/go-menu-kit/pkg/retrieval"
)

// fakeRetriever は質問ごとに用意した回答を返すフェイクです。
type fakeRetriever struct {
	answers map[string]string
	errFor  map[string]error
	calls   []string
}

func (f *fakeRetriever) Query(_ context.Context, question string) (string, error) {
	f.calls = append(f.calls, question)
	if err, ok := f.errFor[question]; ok {
		return "", err
	}
	return f.answers[question], nil
}

// fakeComposer は呼び出し回数入りのHTMLを返し、受け取った引数を記録します。
type fakeComposer struct {
	err       error
	calls     int
	gotItems  domain.MenuItems
	gotStyle  string
	gotImages []string
	feedbacks [][]string
}

func (f *fakeComposer) Compose(_ context.Context, items domain.MenuItems, styleSpec string, images []string, feedback []string) (string, error) {
	f.calls++
	f.gotItems = items
	f.gotStyle = styleSpec
	f.gotImages = images
	f.feedbacks = append(f.feedbacks, append([]string(nil), feedback...))
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("<html>attempt %d</html>", f.calls), nil
}

// fakeChecker は事前に並べた判定を試行順に返します。
type fakeChecker struct {
	reports []domain.QCReport
	err     error
	docs    []string
}

func (f *fakeChecker) Check(_ context.Context, htmlDocument string) (domain.QCReport, error) {
	f.docs = append(f.docs, htmlDocument)
	if f.err != nil {
		return domain.QCReport{}, f.err
	}
	idx := len(f.docs) - 1
	if idx >= len(f.reports) {
		idx = len(f.reports) - 1
	}
	return f.reports[idx], nil
}

// fakeSaver は保存要求を記録し、固定のパスとバージョンを返します。
type fakeSaver struct {
	err     error
	calls   int
	gotDir  string
	gotBase string
	gotDoc  string
}

func (f *fakeSaver) SaveVersioned(outputDir, baseName, document string) (string, int, error) {
	f.calls++
	f.gotDir, f.gotBase, f.gotDoc = outputDir, baseName, document
	if f.err != nil {
		return "", 0, f.err
	}
	return filepath.Join(outputDir, baseName+".html"), 1, nil
}

const menuItemsAnswer = "```json\n" +
	`{"items": [{"name": "Grilled Salmon", "price": "$24", "description": "香ばしく焼き上げた鮭なのだ"}]}` +
	"\n```"

func newTestRetriever() *fakeRetriever {
	return &fakeRetriever{answers: map[string]string{
		retrieval.QuestionMenuItems:  menuItemsAnswer,
		retrieval.QuestionStyleGuide: `{"theme": "rustic", "primary_color": "#1B3A4B"}`,
	}}
}

func newTestOptions(t *testing.T) MenuGenerateOptions {
	t.Helper()
	return MenuGenerateOptions{
		ImagesDir:  filepath.Join(t.TempDir(), "no-images"),
		OutputDir:  t.TempDir(),
		RetryLimit: 3,
	}
}

func TestMenuGenerateRunnerRun(t *testing.T) {
	ctx := context.Background()

	t.Run("一回で合格すれば即保存されるのだ", func(t *testing.T) {
		composer := &fakeComposer{}
		checker := &fakeChecker{reports: []domain.QCReport{{Status: domain.QCStatusPass}}}
		saver := &fakeSaver{}
		r := NewMenuGenerateRunner(newTestRetriever(), composer, checker, saver, newTestOptions(t))

		result, err := r.Run(ctx, "menu")
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}
		if result.Attempts != 1 {
			t.Errorf("試行回数が期待と違うのだ: %d", result.Attempts)
		}
		if saver.calls != 1 || saver.gotBase != "menu" {
			t.Errorf("保存の呼び出しが期待と違うのだ: calls=%d base=%q", saver.calls, saver.gotBase)
		}
		if len(composer.feedbacks) != 1 || len(composer.feedbacks[0]) != 0 {
			t.Errorf("初回の生成に指摘が混ざったのだ: %+v", composer.feedbacks)
		}
		if result.HTMLPath == "" || result.Version != 1 {
			t.Errorf("保存結果が期待と違うのだ: %+v", result)
		}
	})

	t.Run("不合格の指摘は次の試行へ持ち越されるのだ", func(t *testing.T) {
		composer := &fakeComposer{}
		checker := &fakeChecker{reports: []domain.QCReport{
			{Status: domain.QCStatusFail, FeedbackItems: []string{"価格の通貨表記を揃えること"}},
			{Status: domain.QCStatusFail, FeedbackItems: []string{"画像のalt属性が欠けている", "CSSが外部参照になっている"}},
			{Status: domain.QCStatusPass},
		}}
		saver := &fakeSaver{}
		r := NewMenuGenerateRunner(newTestRetriever(), composer, checker, saver, newTestOptions(t))

		result, err := r.Run(ctx, "menu")
		if err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}
		if composer.calls != 3 || result.Attempts != 3 {
			t.Fatalf("試行回数が期待と違うのだ: calls=%d attempts=%d", composer.calls, result.Attempts)
		}
		if got := composer.feedbacks[1]; len(got) != 1 || got[0] != "価格の通貨表記を揃えること" {
			t.Errorf("2回目の指摘が期待と違うのだ: %+v", got)
		}
		if got := composer.feedbacks[2]; len(got) != 2 {
			t.Errorf("3回目の指摘が期待と違うのだ: %+v", got)
		}
		if saver.calls != 1 || saver.gotDoc != "<html>attempt 3</html>" {
			t.Errorf("合格した版が保存されていないのだ: calls=%d doc=%q", saver.calls, saver.gotDoc)
		}
	})

	t.Run("上限まで不合格なら保存せずエラーなのだ", func(t *testing.T) {
		composer := &fakeComposer{}
		checker := &fakeChecker{reports: []domain.QCReport{
			{Status: domain.QCStatusFail, FeedbackItems: []string{"レイアウトが崩れている"}},
		}}
		saver := &fakeSaver{}
		opts := newTestOptions(t)
		opts.RetryLimit = 2
		r := NewMenuGenerateRunner(newTestRetriever(), composer, checker, saver, opts)

		_, err := r.Run(ctx, "menu")
		if err == nil {
			t.Fatal("上限超過がエラーにならないのだ")
		}
		if saver.calls != 0 {
			t.Errorf("不合格なのに保存されたのだ: calls=%d", saver.calls)
		}
		if composer.calls != 2 {
			t.Errorf("試行回数が上限と違うのだ: %d", composer.calls)
		}
		if !strings.Contains(err.Error(), "レイアウトが崩れている") {
			t.Errorf("最終指摘がエラーに含まれないのだ: %v", err)
		}
	})

	t.Run("画像は品目へ対応づけられて渡されるのだ", func(t *testing.T) {
		imagesDir := t.TempDir()
		if err := os.WriteFile(filepath.Join(imagesDir, "grilled_salmon.png"), []byte("png"), 0o644); err != nil {
			t.Fatal(err)
		}

		composer := &fakeComposer{}
		checker := &fakeChecker{reports: []domain.QCReport{{Status: domain.QCStatusPass}}}
		opts := newTestOptions(t)
		opts.ImagesDir = imagesDir
		r := NewMenuGenerateRunner(newTestRetriever(), composer, checker, &fakeSaver{}, opts)

		if _, err := r.Run(ctx, "menu"); err != nil {
			t.Fatalf("Run に失敗したのだ: %v", err)
		}
		if len(composer.gotImages) != 1 || composer.gotImages[0] != "grilled_salmon.png" {
			t.Errorf("画像一覧が期待と違うのだ: %+v", composer.gotImages)
		}
		if len(composer.gotItems) != 1 || composer.gotItems[0].Image != "grilled_salmon.png" {
			t.Errorf("品目への対応づけが期待と違うのだ: %+v", composer.gotItems)
		}
	})

	t.Run("品目が空なら生成前に失敗するのだ", func(t *testing.T) {
		retriever := newTestRetriever()
		retriever.answers[retrieval.QuestionMenuItems] = `{"items": []}`
		composer := &fakeComposer{}
		r := NewMenuGenerateRunner(retriever, composer, &fakeChecker{}, &fakeSaver{}, newTestOptions(t))

		if _, err := r.Run(ctx, "menu"); err == nil {
			t.Fatal("空の品目一覧がエラーにならないのだ")
		}
		if composer.calls != 0 {
			t.Errorf("生成が呼ばれてしまったのだ: %d", composer.calls)
		}
	})

	t.Run("リトリーバーの失敗はそのまま伝わるのだ", func(t *testing.T) {
		wantErr := errors.New("retrieval boom")
		retriever := newTestRetriever()
		retriever.errFor = map[string]error{retrieval.QuestionStyleGuide: wantErr}
		r := NewMenuGenerateRunner(retriever, &fakeComposer{}, &fakeChecker{}, &fakeSaver{}, newTestOptions(t))

		_, err := r.Run(ctx, "menu")
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていないのだ: %v", err)
		}
	})

	t.Run("品質検査の失敗は致命的なのだ", func(t *testing.T) {
		wantErr := errors.New("checker boom")
		checker := &fakeChecker{err: wantErr}
		saver := &fakeSaver{}
		r := NewMenuGenerateRunner(newTestRetriever(), &fakeComposer{}, checker, saver, newTestOptions(t))

		_, err := r.Run(ctx, "menu")
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていないのだ: %v", err)
		}
		if saver.calls != 0 {
			t.Errorf("検査失敗なのに保存されたのだ: calls=%d", saver.calls)
		}
	})

	t.Run("保存の失敗はエラーになるのだ", func(t *testing.T) {
		wantErr := errors.New("saver boom")
		checker := &fakeChecker{reports: []domain.QCReport{{Status: domain.QCStatusPass}}}
		r := NewMenuGenerateRunner(newTestRetriever(), &fakeComposer{}, checker, &fakeSaver{err: wantErr}, newTestOptions(t))

		_, err := r.Run(ctx, "menu")
		if !errors.Is(err, wantErr) {
			t.Errorf("元のエラーが包まれていないのだ: %v", err)
		}
	})
}
