package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Actions (info)
		"Uploading %s":                "%s をアップロード中",
		"Uploaded %s (%dx%d)":         "%s をアップロードしました (%dx%d)",
		"Cropping %s to %dx%d":        "%s を %dx%d に切り抜き中",
		"Background image set: %dx%d": "背景画像を設定しました: %dx%d",
		"Background image removed":    "背景画像を削除しました",
		"Preview ready: %dx%d":        "プレビューの準備ができました: %dx%d",
		"Exporting %s":                "%s を出力中",
		"Output saved to %s":          "出力を %s に保存しました",

		// Stages (debug)
		"Set %s":                                  "%s を更新",
		"Cropping %s from %dx%d %s to %dx%d":      "%s を %dx%d の %s から %dx%d へ切り抜き中",
		"Cropped: %d bytes":                       "切り抜き完了: %d バイト",
		"Capturing %dx%d region":                  "%dx%d の領域をキャプチャ中",
		"Capturing %dx%d scene in browser":        "ブラウザで %dx%d のシーンをキャプチャ中",
		"Captured: %dx%d":                         "キャプチャ完了: %dx%d",
		"Exported %s (%d bytes)":                  "%s を出力しました (%d バイト)",
		"Discarding preview of closed session %d": "閉じたセッション %d のプレビューを破棄します",

		// Warnings
		"Preview not yet available":                         "プレビューはまだ利用できません",
		"Background image could not be decoded: %v":         "背景画像をデコードできませんでした: %v",
		"Skipping unreadable background image":              "読み込めない背景画像をスキップします",
		"Filter not applied: %v":                            "フィルターを適用できませんでした: %v",
		"Stored settings are malformed, using defaults: %v": "保存された設定が不正なため既定値を使用します: %v",
		"Failed to read settings: %v":                       "設定の読み込みに失敗しました: %v",
		"Failed to save settings: %v":                       "設定の保存に失敗しました: %v",
		"Failed to read dark mode: %v":                      "ダークモードの読み込みに失敗しました: %v",
		"Failed to save dark mode: %v":                      "ダークモードの保存に失敗しました: %v",
		"Failed to read original image: %v":                 "元画像の読み込みに失敗しました: %v",
		"Failed to save original image: %v":                 "元画像の保存に失敗しました: %v",

		// Errors
		"Upload failed: %v":  "アップロードに失敗しました: %v",
		"Crop failed: %v":    "切り抜きに失敗しました: %v",
		"Preview failed: %v": "プレビューに失敗しました: %v",
		"Export failed: %v":  "出力に失敗しました: %v",
	})
}
