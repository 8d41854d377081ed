// Package main provides localization for the webm CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"create WebM videos within a given size limit": "サイズ制限内に収まるWebM動画を作成",

		// Input and time window
		"input video file":                       "入力動画ファイル",
		"start time of the fragment to encode":   "エンコードする区間の開始時刻",
		"duration of the fragment to encode":     "エンコードする区間の長さ",
		"end time of the fragment to encode":     "エンコードする区間の終了時刻",

		// Size and quality
		"output file size limit in MiB (default 8)":           "出力ファイルサイズの上限（MiB、デフォルト8）",
		"video bitrate in kbits (0 with --crf = constant quality)": "ビデオビットレート（kbit、--crf併用時の0は品質固定モード）",
		"encode with VP8/Vorbis instead of VP9/Opus":          "VP9/Opusの代わりにVP8/Vorbisでエンコード",
		"encode with AV1/Opus instead of VP9/Opus":            "VP9/Opusの代わりにAV1/Opusでエンコード",
		"constant rate factor, 0..63":                         "固定レートファクター（0..63）",
		"minimum quantizer, 0..63":                            "最小量子化係数（0..63）",
		"maximum quantizer, 0..63":                            "最大量子化係数（0..63）",

		// Geometry and filters
		"output video width, height scales to keep aspect":  "出力動画の幅（高さはアスペクト比を維持）",
		"output video height, width scales to keep aspect":  "出力動画の高さ（幅はアスペクト比を維持）",
		"video stream specifier, default v:0":               "ビデオストリーム指定子（デフォルト v:0）",
		"video filters inserted at the start of the chain":  "フィルタチェーン先頭に挿入するビデオフィルタ",
		"video filters appended to the end of the chain":    "フィルタチェーン末尾に追加するビデオフィルタ",

		// Audio
		"strip audio from the output":             "出力から音声を除去",
		"copy the source audio stream unchanged":  "音声ストリームを無変換でコピー",
		"force Opus audio":                        "音声をOpusに強制",
		"force Vorbis audio":                      "音声をVorbisに強制",
		"Opus audio bitrate in kbits, default 64": "Opus音声ビットレート（kbit、デフォルト64）",
		"Vorbis audio quality, -1..10":            "Vorbis音声品質（-1..10）",
		"external audio file":                     "外部音声ファイル",
		"audio stream specifier, default a:0":     "音声ストリーム指定子（デフォルト a:0）",
		"audio filters":                           "音声フィルタ",

		// Subtitles
		"burn the input file's subtitles into the video":   "入力ファイルの字幕を映像に焼き込み",
		"burn subtitles from an external file":             "外部ファイルの字幕を映像に焼き込み",
		"subtitle stream index inside the subtitle source": "字幕ソース内の字幕ストリーム番号",
		"subtitle delay in seconds":                        "字幕の遅延（秒）",
		"force subtitle style, ASS style overrides":        "字幕スタイルの強制（ASSスタイル上書き）",

		// Interactive mode and cover mode
		"run the interactive player session first":           "先にインタラクティブなプレイヤーセッションを実行",
		"raw options for the interactive player":             "インタラクティブプレイヤーへの生オプション",
		"show interactive mode help and exit":                "インタラクティブモードのヘルプを表示して終了",
		"cover mode: loop a picture over the --aa audio":     "カバーモード: --aaの音声に画像をループ",
		"raw loop options for cover mode, default \"-r 1 -loop 1\"": "カバーモードのループ用生オプション（デフォルト \"-r 1 -loop 1\"）",

		// Metadata and passthrough
		"title metadata; empty value uses the output basename": "タイトルメタデータ（空の値は出力ファイル名を使用）",
		"stamp creation time metadata":                         "作成日時メタデータを記録",
		"strip all metadata":                                   "全メタデータを除去",
		"raw encoder options placed before the output":         "出力前に置くエンコーダー生オプション",
		"raw encoder options placed before the input":          "入力前に置くエンコーダー生オプション",
		"raw encoder options placed after the input":           "入力後に置くエンコーダー生オプション",

		// Modes
		"skip the analysis pass":      "解析パスをスキップ",
		"skip the capability checks":  "機能チェックをスキップ",
		"verbose output":              "詳細出力",
		"suppress all log output":     "全ログ出力を抑制",
	})
}
