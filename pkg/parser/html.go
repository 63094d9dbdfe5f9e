package parser

import (
	"fmt"
	"strings"
)

const (
	doctypePrefix = "<!DOCTYPE"
	htmlCloseTag  = "</html>"
)

// ExtractHTMLDocument は AI 応答から完全な HTML ドキュメントを取り出します。
// コードフェンスや前置きの文章を取り除き、doctype 宣言から終了タグまでを
// 返します。完全なドキュメントが見つからない場合はエラーです。
func ExtractHTMLDocument(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if matches := HTMLBlockRegex.FindStringSubmatch(raw); len(matches) > 1 {
		raw = strings.TrimSpace(matches[1])
	}

	start := strings.Index(strings.ToUpper(raw), doctypePrefix)
	if start == -1 {
		return "", fmt.Errorf("応答に doctype 宣言が含まれていません (応答抜粋: %q)", Truncate(raw, 200))
	}

	end := strings.LastIndex(strings.ToLower(raw), htmlCloseTag)
	if end == -1 || end < start {
		return "", fmt.Errorf("応答に終了タグ %s が含まれていません (応答抜粋: %q)", htmlCloseTag, Truncate(raw, 200))
	}

	return raw[start : end+len(htmlCloseTag)], nil
}
