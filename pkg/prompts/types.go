package prompts

import (
	_ "embed"
)

// プロンプトモード。Build に渡すキーです。
const (
	ModeMenuPage     = "menu_page"
	ModeQualityCheck = "quality_check"
	ModeCorpusAnswer = "corpus_answer"
	ModeMediaPlan    = "media_plan"
	ModeImageCaption = "image_caption"
	ModeReconstruct  = "reconstruct"
)

// TemplateData はプロンプトテンプレートに渡すデータ構造です。
// どのフィールドを参照するかはモードごとのテンプレートが決めます。
type TemplateData struct {
	// MenuJSON は統合済みメニュー品目一覧のJSON表現です。
	MenuJSON string
	// StyleSpec はリトリーバーから得たブランド・スタイル指示です。
	StyleSpec string
	// ImageList は参照可能な画像ファイル名（または「ファイル名: 説明」行）の一覧です。
	ImageList []string
	// Feedback は前回の品質検査で指摘された改善項目です。
	Feedback []string
	// Corpus は資料全文です。
	Corpus string
	// Question は資料への質問文です。
	Question string
	// Document は検査・解析対象の文書（HTML候補やPDF本文）です。
	Document string
}

var (
	//go:embed menu_page.md
	MenuPagePrompt string
	//go:embed quality_check.md
	QualityCheckPrompt string
	//go:embed corpus_answer.md
	CorpusAnswerPrompt string
	//go:embed media_plan.md
	MediaPlanPrompt string
	//go:embed image_caption.md
	ImageCaptionPrompt string
	//go:embed reconstruct.md
	ReconstructPrompt string
)

// allTemplates はモードとテンプレート文字列を紐づけるマップなのだ。
var allTemplates = map[string]string{
	ModeMenuPage:     MenuPagePrompt,
	ModeQualityCheck: QualityCheckPrompt,
	ModeCorpusAnswer: CorpusAnswerPrompt,
	ModeMediaPlan:    MediaPlanPrompt,
	ModeImageCaption: ImageCaptionPrompt,
	ModeReconstruct:  ReconstructPrompt,
}
