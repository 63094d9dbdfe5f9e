package asset

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExtensions は一覧対象とする画像拡張子の許可リストです。
var imageExtensions = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".webp": {},
}

// ListImages は画像ディレクトリ内のファイル名（パスではない）の
// ソート済み一覧を返します。拡張子の照合は大文字小文字を区別せず、
// サブディレクトリは無視します。
// ディレクトリが存在しない・読めない場合は警告ログを出して空の一覧を
// 返します。メニューは画像なしでも描画できるため、致命的エラーには
// しません。
func ListImages(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		slog.Warn("画像ディレクトリを読み取れないため、画像なしで続行します", "dir", dir, "error", err)
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if IsImageFile(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	return files
}

// IsImageFile はファイル名が許可リストの画像拡張子を持つかを判定します。
func IsImageFile(name string) bool {
	_, ok := imageExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}
