package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Pipeline progress
		"Probing %s":                     "%s を解析中",
		"Input duration: %s":             "入力の長さ: %s",
		"Output duration: %s":            "出力の長さ: %s",
		"Calculated video bitrate: %gk":  "計算されたビデオビットレート: %gk",
		"Running analysis pass":          "解析パスを実行中",
		"Running final pass":             "最終パスを実行中",
		"Single pass requested, skipping analysis pass": "シングルパス指定のため解析パスをスキップします",

		// Interactive mode
		"Running interactive mode.": "インタラクティブモードを実行中。",

		// Warnings / errors
		"Error during cleanup: %s":   "クリーンアップ中のエラー: %s",
		"Interrupted, shutting down": "中断されました。シャットダウン中",
		"Cannot proceed due to the following error: %s": "次のエラーのため続行できません: %s",
	})
}
