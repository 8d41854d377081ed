package interactive

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"Continue with these settings?":               "この設定で続行しますか?",
		"You haven't defined cut/crop or dumped info.": "カット/クロップの指定や情報ダンプがありません。",
		"Encode input video intact?":                  "入力映像をそのままエンコードしますか?",
	})
}

// SessionHelp is shown right before the player starts.
const SessionHelp = `Note: if your keyboard doesn't have keypad keys and you still want
to use appropriate actions (they're not mandatory to define the
cut or crop area), pass "--help-imode" flag to program to see how.

Press "c" first time to mark the start of the fragment.
Press it again to mark the end of the fragment.
Press "KP1" after "c" to define the fragment from
the start to the marked time.
Press "KP3" after "c" to define the fragment from
the marked time to the end of the video.

Select crop area with the mouse and adjust it precisely with
KP4/KP8/KP6/KP2 (move crop area left/up/right/down) and
KP7/KP9/-/+ (decrease/increase width/height).
Press "a" when you finished with crop.
Also you can press KP5 to init crop area at the center of video.

Press "i" to dump info about currently selected video/audio/sub
tracks and subtitles delay from the player.
Caution: it may redefine your appropriate passed options.

Once you defined cut fragment and/or crop area, close the
player and let the program do all hard work for calculating
the bitrate and encoding.`

// KeysHelp documents how to rebind the session hotkeys; shown by the
// --help-imode flag.
const KeysHelp = SessionHelp + `

You can redefine hotkeys by placing this to your input.conf and
changing the key (first column):

# This is the defaults:
c   script_binding webm_cut
KP1 script_binding webm_cut_from_start
KP3 script_binding webm_cut_to_end
a   script_binding webm_crop
KP5 script_binding webm_crop_init
KP7 script_binding webm_crop_w_dec
KP9 script_binding webm_crop_w_inc
-   script_binding webm_crop_h_dec
+   script_binding webm_crop_h_inc
KP4 script_binding webm_crop_x_dec
KP6 script_binding webm_crop_x_inc
KP8 script_binding webm_crop_y_dec
KP2 script_binding webm_crop_y_inc
i   script_binding webm_dump_info

You also can change some default options by creating webm.conf in your
lua-settings directory (see <http://mpv.io/manual/stable/#configuration>):

# This is the defaults:
crop_alpha=180  # Transparency of crop area
crop_x_step=2   # Precision of crop area adjusting from the keyboard
crop_y_step=2   # Precision of crop area adjusting from the keyboard`
