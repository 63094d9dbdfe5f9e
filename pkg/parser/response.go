package parser

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONBlock は AI 応答から JSON 本体を取り出します。
// コードフェンスを優先し、なければ最外のオブジェクトまたは配列を探し、
// どちらも見つからなければ応答全体をそのまま返します。
func ExtractJSONBlock(raw string) string {
	raw = strings.TrimSpace(raw)

	matches := JSONBlockRegex.FindStringSubmatch(raw)
	if len(matches) > 1 {
		return matches[1]
	}

	if block, ok := outermostJSON(raw); ok {
		return block
	}

	return raw
}

// outermostJSON はオブジェクトと配列のうち先に現れる方の最外ブロックを返します。
func outermostJSON(raw string) (string, bool) {
	objStart := strings.Index(raw, "{")
	arrStart := strings.Index(raw, "[")

	start, closer := objStart, "}"
	if objStart == -1 || (arrStart != -1 && arrStart < objStart) {
		start, closer = arrStart, "]"
	}
	if start == -1 {
		return "", false
	}

	end := strings.LastIndex(raw, closer)
	if end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// DecodeJSON は応答から JSON を抽出して v へデコードします。
// 失敗時は応答の抜粋つきでエラーを返します。
func DecodeJSON(raw string, v any) error {
	block := ExtractJSONBlock(raw)
	if err := json.Unmarshal([]byte(block), v); err != nil {
		return fmt.Errorf("AIからの応答に含まれるJSONの解析に失敗しました (応答抜粋: %q): %w", Truncate(raw, 200), err)
	}
	return nil
}

// Truncate は長い応答をログやエラーメッセージ向けに切り詰めます。
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
