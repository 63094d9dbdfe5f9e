package asset

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestListImages(t *testing.T) {
	t.Run("画像だけをソート済みで返すのだ", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"zucchini_soup.png", "apple_pie.jpg", "notes.txt", "menu.pdf"} {
			writeEmptyFile(t, filepath.Join(dir, name))
		}

		got := ListImages(dir)
		want := []string{"apple_pie.jpg", "zucchini_soup.png"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ListImages() = %v, 期待 %v", got, want)
		}
	})

	t.Run("拡張子は大文字でも一致するのだ", func(t *testing.T) {
		dir := t.TempDir()
		writeEmptyFile(t, filepath.Join(dir, "GRILLED_SALMON.PNG"))

		got := ListImages(dir)
		if len(got) != 1 || got[0] != "GRILLED_SALMON.PNG" {
			t.Errorf("大文字拡張子が受理されないのだ: %v", got)
		}
	})

	t.Run("サブディレクトリは無視するのだ", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.Mkdir(filepath.Join(dir, "thumbs.png"), 0o755); err != nil {
			t.Fatal(err)
		}
		writeEmptyFile(t, filepath.Join(dir, "salad.jpg"))

		got := ListImages(dir)
		want := []string{"salad.jpg"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("ListImages() = %v, 期待 %v", got, want)
		}
	})

	t.Run("存在しないディレクトリは空の一覧になるのだ", func(t *testing.T) {
		got := ListImages(filepath.Join(t.TempDir(), "no_such_dir"))
		if len(got) != 0 {
			t.Errorf("空であるべきなのだ: %v", got)
		}
	})
}

func TestIsImageFile(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"grilled_salmon.png", true},
		{"apple_pie.jpg", true},
		{"soup.jpeg", true},
		{"steak.webp", true},
		{"STEAK.WEBP", true},
		{"menu.pdf", false},
		{"readme.txt", false},
		{"noext", false},
	}

	for _, tc := range cases {
		if got := IsImageFile(tc.name); got != tc.want {
			t.Errorf("IsImageFile(%q) = %v, 期待 %v", tc.name, got, tc.want)
		}
	}
}

func writeEmptyFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
}
