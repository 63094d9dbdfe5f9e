package domain

// MediaPlan は販促用メディアアセットの生成プロンプト一式です。
// 動画プロンプトは計画の出力のみで、このキットでは描画しません。
type MediaPlan struct {
	Images []MediaImagePrompt `json:"images"`
	Videos []MediaVideoPrompt `json:"videos"`
}

// MediaImagePrompt は静止画アセット1件分の生成指示です。
type MediaImagePrompt struct {
	AssetName string `json:"asset_name"`
	AssetType string `json:"asset_type"`
	Prompt    string `json:"prompt"`
}

// MediaVideoPrompt は動画アセット1件分の生成指示です。
type MediaVideoPrompt struct {
	AssetName string `json:"asset_name"`
	Prompt    string `json:"prompt"`
}

// TotalAssets は計画に含まれるアセットの総数を返します。
func (p MediaPlan) TotalAssets() int {
	return len(p.Images) + len(p.Videos)
}

// MediaResult はメディア計画パイプラインの成果です。
type MediaResult struct {
	// PlanPath は保存された計画 JSON のパスです。
	PlanPath string
	// RenderedPaths は描画された静止画のパス一覧です（--render 時のみ）。
	RenderedPaths []string
}

// ImageInsight はビジョンモデルによる画像1枚の解析結果です。
type ImageInsight struct {
	NewName string `json:"new_name"`
	Caption string `json:"caption"`
}

// ImageDescription は画像ファイルとキャプションの対応を保持します。
// extract パイプラインの image_descriptions.json に列挙されます。
type ImageDescription struct {
	File    string `json:"file"`
	Caption string `json:"caption"`
}

// ExtractResult は PDF 画像抽出パイプラインの成果です。
type ExtractResult struct {
	// Images は抽出（とリネーム）後のファイル名一覧です。
	Images []string
	// DescriptionsPath はキャプション一覧 JSON のパスです。
	// キャプション生成をスキップした場合は空です。
	DescriptionsPath string
}
