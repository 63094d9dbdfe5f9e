package domain

import "strings"

// 品質チェックエージェントが返す判定値です。
const (
	QCStatusPass = "PASS"
	QCStatusFail = "FAIL"
)

// QCReport は品質チェックエージェントの判定結果です。
// 1回の生成につき1件だけ作られ、ループ継続の判断に使われた後は
// 保存されません。
type QCReport struct {
	Status        string   `json:"qc_status"`
	FeedbackItems []string `json:"feedback_items"`
}

// Normalize は判定文字列の空白と大文字小文字の揺れを吸収します。
func (r *QCReport) Normalize() {
	r.Status = strings.ToUpper(strings.TrimSpace(r.Status))
}

// Passed は判定が合格かどうかを返します。
func (r QCReport) Passed() bool {
	return r.Status == QCStatusPass
}

// Valid は判定が既知の値のいずれかであるかを返します。
func (r QCReport) Valid() bool {
	return r.Status == QCStatusPass || r.Status == QCStatusFail
}
