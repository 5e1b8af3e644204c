// Package main provides localization for the bannerkit CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Compose, crop and export banners.": "バナーを作成・切り抜き・書き出し",

		// Commands
		"Show the current composition.":                       "現在の構成を表示",
		"Set one composition field.":                          "構成の項目を1つ設定",
		"Restore the default composition.":                    "構成を初期値に戻す",
		"List fonts, animations, filters and sizes.":          "フォント・アニメーション・フィルター・サイズの一覧を表示",
		"Upload a background image and crop it.":              "背景画像をアップロードして切り抜き",
		"Re-crop the background image to the selected size.":  "背景画像を選択中のサイズで切り抜き直す",
		"Remove the background image.":                        "背景画像を削除",
		"Capture the banner and save preview.png.":            "バナーをキャプチャして preview.png に保存",
		"Capture the banner and save it as PNG, JPEG or PDF.": "バナーをキャプチャして PNG・JPEG・PDF で保存",
		"Show or switch the dark mode flag.":                  "ダークモードの表示・切り替え",
		"Show version information.":                           "バージョン情報を表示",

		// Command flags
		"Print the record as JSON":                            "構成をJSONで表示",
		"Keep the uploaded image uncropped":                   "アップロードした画像を切り抜かない",
		"Crop rectangle in source pixels (x,y,width,height)":  "元画像のピクセル単位の切り抜き範囲（x,y,幅,高さ）",
		"Export format (png, jpeg, pdf)":                      "書き出し形式（png, jpeg, pdf）",
		"Output execution summary to file (Markdown format)":  "実行サマリーをファイルに出力（Markdown形式）",

		// Global flags
		"Path to YAML configuration file":      "YAML設定ファイルのパス",
		"Store backend (file, redis)":          "保存先（file, redis）",
		"Path of the composition file":         "構成ファイルのパス",
		"Redis server address":                 "Redisサーバーのアドレス",
		"Capture backend (canvas, chrome)":     "キャプチャ方式（canvas, chrome）",
		"Path to Chrome executable":            "Chrome実行ファイルのパス",
		"Run browser in non-headless mode":     "ブラウザを非ヘッドレスモードで実行",
		"Directory for downloads":              "ダウンロード先のディレクトリ",
		"Enable debug output":                  "デバッグ出力を有効化",
		"Directory for debug output":           "デバッグ出力のディレクトリ",
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Log format (console, json)":           "ログ形式（console, json）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Set %s to %s":                  "%s を %s に設定しました",
		"Composition reset to defaults": "構成を初期値に戻しました",
		"Background image set: %dx%d":   "背景画像を設定しました: %dx%d",
		"Background image removed":      "背景画像を削除しました",
		"Output saved to %s":            "出力を %s に保存しました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Error: %v":                     "エラー: %v",
		"none":                          "なし",

		// Presets
		"Fonts":      "フォント",
		"Animations": "アニメーション",
		"Filters":    "フィルター",
		"Sizes":      "サイズ",

		// Version
		"bannerkit version %s": "bannerkit バージョン %s",
		"Go version: %s":       "Goバージョン: %s",
		"OS/Arch: %s/%s":       "OS/アーキテクチャ: %s/%s",

		// Error messages
		"field and value arguments are required": "項目と値の引数が必要です",
		"file argument is required":              "ファイル引数が必要です",
	})
}
