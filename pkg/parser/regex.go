package parser

import "regexp"

var (
	// JSONBlockRegex は ```json フェンスで囲まれた応答本体をキャプチャします。
	JSONBlockRegex = regexp.MustCompile("(?s)```(?:json)?\\s*(.*\\S)\\s*```")

	// HTMLBlockRegex は ```html フェンスで囲まれた応答本体をキャプチャします。
	HTMLBlockRegex = regexp.MustCompile("(?s)```(?:html)?\\s*(.*\\S)\\s*```")
)
