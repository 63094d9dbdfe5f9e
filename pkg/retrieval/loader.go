package retrieval

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shouni/go-menu-kit/pkg/pdf"

	"github.com/shouni/go-web-exact/v2/pkg/extract"
)

// SourceReader は、資料の読み出しに必要な最小限の契約です。
// remoteio.InputReader がこれを満たします（ローカルパスと gs:// の両対応）。
type SourceReader interface {
	Open(ctx context.Context, path string) (io.ReadCloser, error)
}

// CorpusLoader は資料ソースの形式を判別し、本文テキストへ解決します。
// PDFはローカル抽出、http(s) はWeb本文抽出、それ以外は reader 経由の
// 素読みです。
type CorpusLoader struct {
	reader    SourceReader
	extractor *extract.Extractor
	pdfEx     *pdf.Extractor
}

// NewCorpusLoader は依存関係を注入して初期化します。
func NewCorpusLoader(reader SourceReader, extractor *extract.Extractor, pdfEx *pdf.Extractor) *CorpusLoader {
	return &CorpusLoader{
		reader:    reader,
		extractor: extractor,
		pdfEx:     pdfEx,
	}
}

// Load は source の本文テキストを返します。
func (l *CorpusLoader) Load(ctx context.Context, source string) (string, error) {
	switch {
	case pdf.IsPDF(source):
		text, err := l.pdfEx.ExtractText(source)
		if err != nil {
			return "", fmt.Errorf("PDF資料の本文抽出に失敗しました: %w", err)
		}
		return text, nil

	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		text, _, err := l.extractor.FetchAndExtractText(ctx, source)
		if err != nil {
			return "", fmt.Errorf("Webページからの本文抽出に失敗しました (%s): %w", source, err)
		}
		return text, nil

	default:
		rc, err := l.reader.Open(ctx, source)
		if err != nil {
			return "", fmt.Errorf("資料ファイルを開けませんでした (%s): %w", source, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("資料ファイルの読み込みに失敗しました (%s): %w", source, err)
		}
		return string(data), nil
	}
}
