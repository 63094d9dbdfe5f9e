package domain

import (
	"encoding/json"
	"fmt"
)

// MenuItem はメニュー1品分の情報を保持します。
// Image は画像ディレクトリ内のファイル名（パスではない）で、
// 対応する画像が見つからなかった品目では空文字列のままです。
type MenuItem struct {
	Name        string `json:"name"`
	Price       string `json:"price"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
}

// MenuItems は品目一覧に対するヘルパーを提供するスライス型です。
type MenuItems []MenuItem

// MenuResponse はリトリーバーから返されるメニュー一覧の構造です。
// AI の応答揺れを吸収するため、items キーとトップレベル配列の
// 両方の形をパース側で受け付けます。
type MenuResponse struct {
	Items MenuItems `json:"items"`
}

// ParseMenuItems は抽出済みのJSON文字列からメニュー品目一覧を取り出します。
// トップレベル配列を優先し、{"items": [...]} 形式にもフォールバックします。
func ParseMenuItems(jsonBlock string) (MenuItems, error) {
	var items MenuItems
	if err := json.Unmarshal([]byte(jsonBlock), &items); err == nil {
		return items, nil
	}

	var resp MenuResponse
	if err := json.Unmarshal([]byte(jsonBlock), &resp); err != nil {
		return nil, fmt.Errorf("メニュー品目JSONの解析に失敗しました: %w", err)
	}
	return resp.Items, nil
}

// BuildResult はメニューページ生成ワークフロー全体の成果です。
type BuildResult struct {
	// HTMLPath は保存された最終ドキュメントのフルパスです。
	HTMLPath string
	// Version は採番されたバージョン番号です（初回保存は 1）。
	Version int
	// Attempts は品質ゲートを通過するまでに要した生成回数です。
	Attempts int
}
