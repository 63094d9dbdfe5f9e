package domain

import "sort"

// WithImages は画像が紐づいた品目だけを抽出して返します。
func (ms MenuItems) WithImages() MenuItems {
	matched := make(MenuItems, 0, len(ms))
	for _, item := range ms {
		if item.Image != "" {
			matched = append(matched, item)
		}
	}
	return matched
}

// UniqueImages は品目に紐づく画像ファイル名を重複なしで抽出します。
// 常に同じ結果を得るため、ソートした順で返します。
func (ms MenuItems) UniqueImages() []string {
	set := make(map[string]struct{})
	for _, item := range ms {
		if item.Image != "" {
			set[item.Image] = struct{}{}
		}
	}

	images := make([]string, 0, len(set))
	for name := range set {
		images = append(images, name)
	}
	sort.Strings(images)

	return images
}
