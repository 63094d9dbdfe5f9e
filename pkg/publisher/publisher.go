// Package publisher は成果物の永続化を担います。
// 合格したメニューページは上書きしないバージョン採番付きでローカルへ、
// その他の成果物（計画JSON・描画画像・復元HTML）は remote-io の
// ライター経由（gs:// 対応）で保存します。
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultBaseName は保存ファイル名が空だった場合のフォールバックです。
	DefaultBaseName = "menu"

	htmlExt = ".html"
)

// ArtifactWriter は、成果物の書き出しに必要な最小限の契約です。
// remoteio.OutputWriter がこれを満たします（ローカルパスと gs:// の両対応）。
type ArtifactWriter interface {
	Write(ctx context.Context, path string, data io.Reader, mimeType string) error
}

// MenuPublisher は成果物の保存を一手に引き受けます。
type MenuPublisher struct {
	writer ArtifactWriter
}

// NewMenuPublisher は依存関係を注入して初期化します。
func NewMenuPublisher(writer ArtifactWriter) *MenuPublisher {
	return &MenuPublisher{writer: writer}
}

// SaveVersioned は最終文書を <dir>/<base>.html へ保存します。
// 既存ファイルがあれば <base>_v2.html, _v3.html, … と採番を進め、
// 使われていない名前を見つけるまで探します。ファイル作成は排他
// (O_EXCL) で行うため、確認と作成の間に他の実行が割り込んでも
// 上書きは起きず、負けた側は次の番号へ進みます。
// 戻り値は書き込んだフルパスと採番されたバージョン（初回は 1）です。
func (p *MenuPublisher) SaveVersioned(outputDir, baseName, document string) (string, int, error) {
	base := strings.TrimSuffix(baseName, htmlExt)
	if base == "" {
		base = DefaultBaseName
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", 0, fmt.Errorf("出力ディレクトリの作成に失敗しました (%s): %w", outputDir, err)
	}

	for version := 1; ; version++ {
		target := filepath.Join(outputDir, versionedFileName(base, version))

		f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", 0, fmt.Errorf("保存先ファイルの作成に失敗しました (%s): %w", target, err)
		}

		if _, err := f.WriteString(document); err != nil {
			f.Close()
			return "", 0, fmt.Errorf("文書の書き込みに失敗しました (%s): %w", target, err)
		}
		if err := f.Close(); err != nil {
			return "", 0, fmt.Errorf("保存先ファイルのクローズに失敗しました (%s): %w", target, err)
		}

		slog.Info("メニューページを保存しました", "path", target, "version", version)
		return target, version, nil
	}
}

// WriteArtifact はバージョン採番の不要な成果物をライター経由で保存します。
func (p *MenuPublisher) WriteArtifact(ctx context.Context, path string, data io.Reader, mimeType string) error {
	if err := p.writer.Write(ctx, path, data, mimeType); err != nil {
		return fmt.Errorf("成果物の書き込みに失敗しました (%s): %w", path, err)
	}
	return nil
}

// WriteJSON は値をインデント付きJSONへ整形して保存します。
func (p *MenuPublisher) WriteJSON(ctx context.Context, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("JSONへの整形に失敗しました (%s): %w", path, err)
	}
	return p.WriteArtifact(ctx, path, bytes.NewReader(data), "application/json; charset=utf-8")
}

// versionedFileName は採番規則を1箇所に集めます。
// 初回保存にはバージョン接尾辞を付けません。
func versionedFileName(base string, version int) string {
	if version <= 1 {
		return base + htmlExt
	}
	return fmt.Sprintf("%s_v%d%s", base, version, htmlExt)
}
