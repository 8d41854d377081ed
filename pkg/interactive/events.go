// Package interactive drives the player session where the user marks a
// cut fragment, a crop area and track selections, and merges the
// results back into the encode plan.
package interactive

import (
	"encoding/json"
	"math"
	"strings"
)

// CutEvent is a marked fragment; a negative side means "unbounded",
// i.e. the start or end of the file.
type CutEvent struct {
	Start float64
	End   float64
}

// CropEvent is the selected crop rectangle in pixels.
type CropEvent struct {
	W, H, X, Y int
}

// InfoEvent is the track/subtitle state dumped from the player.
// Negative stream indexes and empty paths mean "not selected".
type InfoEvent struct {
	VideoStream int     `json:"vs"`
	AudioStream int     `json:"as"`
	AudioFile   string  `json:"aa"`
	SubIndex    int     `json:"si"`
	SubFile     string  `json:"sa"`
	SubDelay    float64 `json:"sd"`
}

// Events holds the most recent event of each kind from a session; nil
// means the user never triggered that kind.
type Events struct {
	Cut  *CutEvent
	Crop *CropEvent
	Info *InfoEvent
}

// Empty reports whether the session produced nothing.
func (e Events) Empty() bool {
	return e.Cut == nil && e.Crop == nil && e.Info == nil
}

// ParseEvents extracts the session outcome from the player's captured
// stderr. Lines are scanned newest-first so a redefined cut or crop
// wins, stopping as soon as one event of each kind is found. Lines that
// fail to parse are ignored; the script may share the stream with
// player error output.
func ParseEvents(stderr string) Events {
	var ev Events
	lines := strings.Split(stderr, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		switch {
		case ev.Cut == nil && strings.HasPrefix(line, "cut="):
			ev.Cut = parseCut(line[len("cut="):])
		case ev.Crop == nil && strings.HasPrefix(line, "crop="):
			ev.Crop = parseCrop(line[len("crop="):])
		case ev.Info == nil && strings.HasPrefix(line, "info="):
			ev.Info = parseInfo(line[len("info="):])
		}
		if ev.Cut != nil && ev.Crop != nil && ev.Info != nil {
			break
		}
	}
	return ev
}

func parseCut(payload string) *CutEvent {
	var vals []float64
	if err := json.Unmarshal([]byte(payload), &vals); err != nil || len(vals) != 2 {
		return nil
	}
	cut := &CutEvent{
		Start: round3(vals[0]),
		End:   round3(vals[1]),
	}
	if cut.Start < 0 && cut.End < 0 {
		return nil
	}
	return cut
}

func parseCrop(payload string) *CropEvent {
	var vals []int
	if err := json.Unmarshal([]byte(payload), &vals); err != nil || len(vals) != 4 {
		return nil
	}
	for _, v := range vals {
		if v < 0 {
			return nil
		}
	}
	if vals[0] == 0 || vals[1] == 0 {
		return nil
	}
	return &CropEvent{W: vals[0], H: vals[1], X: vals[2], Y: vals[3]}
}

func parseInfo(payload string) *InfoEvent {
	// Keys absent from the payload must stay "not selected", not
	// become stream 0.
	info := InfoEvent{AudioStream: -1, SubIndex: -1}
	if err := json.Unmarshal([]byte(payload), &info); err != nil {
		return nil
	}
	if info.VideoStream < 0 {
		return nil
	}
	return &info
}

func round3(v float64) float64 {
	if v < 0 {
		return -1
	}
	return math.Round(v*1000) / 1000
}
