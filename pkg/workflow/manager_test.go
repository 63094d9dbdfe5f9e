package workflow

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// New の依存関係バリデーションを検証するのだ。外部APIに触れる手前で
// 失敗する経路だけを対象にするのだ。
func TestNewManagerValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("RetryLimit がゼロなら弾かれるのだ", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.RetryLimit = 0

		_, err := New(ctx, ManagerArgs{Config: cfg})
		if err == nil {
			t.Fatal("エラーが返るはずなのだ")
		}
		if !strings.Contains(err.Error(), "RetryLimit") {
			t.Errorf("RetryLimit のエラーではないのだ: %v", err)
		}
	})

	t.Run("HTTPClient が無ければ弾かれるのだ", func(t *testing.T) {
		_, err := New(ctx, ManagerArgs{Config: DefaultConfig()})
		if err == nil {
			t.Fatal("エラーが返るはずなのだ")
		}
		if !strings.Contains(err.Error(), "httpClient") {
			t.Errorf("httpClient のエラーではないのだ: %v", err)
		}
	})

	t.Run("InputReader が無ければ弾かれるのだ", func(t *testing.T) {
		_, err := New(ctx, ManagerArgs{
			Config:     DefaultConfig(),
			HTTPClient: httpkit.New(time.Second),
		})
		if err == nil {
			t.Fatal("エラーが返るはずなのだ")
		}
		if !strings.Contains(err.Error(), "InputReader") {
			t.Errorf("InputReader のエラーではないのだ: %v", err)
		}
	})
}
