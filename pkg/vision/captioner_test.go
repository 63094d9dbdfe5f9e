package vision

import "testing"

func TestParseInsight(t *testing.T) {
	t.Run("素のJSON応答を読み取れるのだ", func(t *testing.T) {
		insight, err := ParseInsight(`{"new_name": "grilled_salmon", "caption": "Citrus-glazed salmon on a dark plate."}`)
		if err != nil {
			t.Fatalf("ParseInsight に失敗したのだ: %v", err)
		}
		if insight.NewName != "grilled_salmon" {
			t.Errorf("new_name が期待と違うのだ: %q", insight.NewName)
		}
		if insight.Caption == "" {
			t.Error("caption が空なのだ")
		}
	})

	t.Run("コードフェンス付きの応答も読み取れるのだ", func(t *testing.T) {
		raw := "```json\n{\"new_name\": \"seafood_cioppino\", \"caption\": \"A rich tomato stew.\"}\n```"
		insight, err := ParseInsight(raw)
		if err != nil {
			t.Fatalf("ParseInsight に失敗したのだ: %v", err)
		}
		if insight.NewName != "seafood_cioppino" {
			t.Errorf("new_name が期待と違うのだ: %q", insight.NewName)
		}
	})

	t.Run("new_nameのない応答はエラーなのだ", func(t *testing.T) {
		if _, err := ParseInsight(`{"caption": "a dish"}`); err == nil {
			t.Error("new_name 欠落がエラーにならないのだ")
		}
	})

	t.Run("JSONでない応答はエラーなのだ", func(t *testing.T) {
		if _, err := ParseInsight("I see a plate of food."); err == nil {
			t.Error("不正な応答がエラーにならないのだ")
		}
	})
}
