package asset

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/shouni/go-menu-kit/pkg/domain"
)

var (
	// nonTokenRegex は照合トークンに残さない文字（英数字・空白・
	// ハイフン・アンダースコア以外）に一致します。
	nonTokenRegex = regexp.MustCompile(`[^a-z0-9\s_-]`)
	// separatorRegex は空白・ハイフン・アンダースコアの連続に一致します。
	separatorRegex = regexp.MustCompile(`[\s_-]+`)
)

// SanitizeName は品目名をファイル名照合用のトークンへ正規化します。
// 小文字化したうえで英数字と区切り文字以外を除去し、区切り文字の並びを
// アンダースコア1つに畳み込み、先頭・末尾に残った区切りは落とします。
// この変換は冪等です。
// 例: "Grilled Salmon" -> "grilled_salmon"
func SanitizeName(name string) string {
	token := strings.ToLower(name)
	token = nonTokenRegex.ReplaceAllString(token, "")
	token = separatorRegex.ReplaceAllString(token, "_")
	return strings.Trim(token, "_")
}

// AssociateImages は各品目に画像ファイルを高々1つ対応づけた一覧を返します。
// 照合はサニタイズ済みトークン同士の完全一致のみです。候補ファイルは
// ソートしてから先頭一致を採用するため、結果は入力順序に依らず決定的です。
// 同じトークンに正規化される品目が複数あれば、どちらも同じファイルを得ます。
// 一致しない品目は画像なしのまま返されます。
func AssociateImages(items domain.MenuItems, files []string) domain.MenuItems {
	result := make(domain.MenuItems, len(items))
	copy(result, items)

	if len(files) == 0 {
		return result
	}

	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	for i := range result {
		token := SanitizeName(result[i].Name)
		if token == "" {
			continue
		}
		for _, file := range sorted {
			base := strings.TrimSuffix(file, filepath.Ext(file))
			if SanitizeName(base) == token {
				result[i].Image = file
				break
			}
		}
	}

	return result
}
