// Package pdf は、PDF資料からの画像・本文の取り出しを担います。
// 画像は pdfcpu、本文テキストは ledongthuc/pdf を使います（pdfcpu は
// プレーンテキスト抽出のAPIを持たないため）。
package pdf

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	ledongthuc "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor はローカルのPDFファイルを読む抽出器です。
type Extractor struct{}

// NewExtractor は Extractor を初期化します。
func NewExtractor() *Extractor {
	return &Extractor{}
}

// PageCount はPDFの総ページ数を返します。
func (e *Extractor) PageCount(pdfPath string) (int, error) {
	count, err := api.PageCountFile(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("PDFのページ数取得に失敗しました (%s): %w", pdfPath, err)
	}
	return count, nil
}

// ExtractImages はPDFに埋め込まれた画像を outDir へ書き出し、
// 書き出したファイル名の一覧を返します。ファイル名は
// image_p<ページ>_i<ページ内連番>.<形式> で、形式はコーデックの報告値です。
func (e *Extractor) ExtractImages(pdfPath, outDir string) ([]string, error) {
	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("PDFを開けませんでした (%s): %w", pdfPath, err)
	}
	defer f.Close()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("画像出力ディレクトリの作成に失敗しました (%s): %w", outDir, err)
	}

	var written []string
	perPage := make(map[int]int)

	digest := func(img model.Image, singleImgPerPage bool, maxPageDigits int) error {
		perPage[img.PageNr]++
		name := imageFileName(img.PageNr, perPage[img.PageNr], img.FileType)

		out, err := os.Create(filepath.Join(outDir, name))
		if err != nil {
			return fmt.Errorf("画像ファイルの作成に失敗しました (%s): %w", name, err)
		}
		defer out.Close()

		if _, err := io.Copy(out, img); err != nil {
			return fmt.Errorf("画像の書き出しに失敗しました (%s): %w", name, err)
		}

		written = append(written, name)
		return nil
	}

	if err := api.ExtractImages(f, nil, digest, nil); err != nil {
		return nil, fmt.Errorf("PDFからの画像抽出に失敗しました (%s): %w", pdfPath, err)
	}

	return written, nil
}

// ExtractText はPDFの本文をページ区切りマーカー付きの1つの文字列として
// 返します。個々のページの読み取り失敗は警告ログのうえ読み飛ばします
// （フォント埋め込みの事情で一部ページだけ失敗する資料があるため）。
func (e *Extractor) ExtractText(pdfPath string) (string, error) {
	f, reader, err := ledongthuc.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("PDFを開けませんでした (%s): %w", pdfPath, err)
	}
	defer f.Close()

	var sb strings.Builder
	total := reader.NumPage()
	for pageNr := 1; pageNr <= total; pageNr++ {
		page := reader.Page(pageNr)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			slog.Warn("ページ本文の抽出に失敗したため読み飛ばします",
				"path", pdfPath, "page", pageNr, "error", err)
			continue
		}
		writePageText(&sb, pageNr, text)
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("PDFから本文を抽出できませんでした (%s)", pdfPath)
	}
	return sb.String(), nil
}

// imageFileName は抽出画像の命名規則を1箇所に集めます。
func imageFileName(pageNr, index int, fileType string) string {
	return fmt.Sprintf("image_p%d_i%d.%s", pageNr, index, fileType)
}

// writePageText は1ページ分の本文をマーカーで挟んで書き込みます。
func writePageText(sb *strings.Builder, pageNr int, text string) {
	fmt.Fprintf(sb, "\n\n--- START OF PAGE %d ---\n%s\n--- END OF PAGE %d ---", pageNr, text, pageNr)
}

// IsPDF はパスがPDFファイルを指しているように見えるかを拡張子で判定します。
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}
