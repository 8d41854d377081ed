package interactive

import "testing"

func TestParseEventsCut(t *testing.T) {
	ev := ParseEvents("cut=[5,10]\nsome noise\ncut=[20.5,30]\n")
	if ev.Cut == nil {
		t.Fatal("expected a cut event")
	}
	if ev.Cut.Start != 20.5 || ev.Cut.End != 30 {
		t.Errorf("the most recent cut must win, got %+v", ev.Cut)
	}
	if ev.Crop != nil || ev.Info != nil {
		t.Errorf("unexpected extra events: %+v", ev)
	}
}

func TestParseEventsCutUnbounded(t *testing.T) {
	ev := ParseEvents("cut=[-1,42.5]\n")
	if ev.Cut == nil || ev.Cut.Start != -1 || ev.Cut.End != 42.5 {
		t.Errorf("unexpected cut: %+v", ev.Cut)
	}
}

func TestParseEventsCutRounding(t *testing.T) {
	ev := ParseEvents("cut=[1.23456,2.5]\n")
	if ev.Cut == nil || ev.Cut.Start != 1.235 {
		t.Errorf("cut positions must round to milliseconds: %+v", ev.Cut)
	}
}

func TestParseEventsCrop(t *testing.T) {
	ev := ParseEvents("crop=[640,480,10,20]\n")
	want := CropEvent{W: 640, H: 480, X: 10, Y: 20}
	if ev.Crop == nil || *ev.Crop != want {
		t.Errorf("crop = %+v, want %+v", ev.Crop, want)
	}
}

func TestParseEventsInfo(t *testing.T) {
	ev := ParseEvents(`info={"vs":0,"as":1,"aa":"","si":2,"sa":"subs.ass","sd":0.5}` + "\n")
	if ev.Info == nil {
		t.Fatal("expected an info event")
	}
	if ev.Info.VideoStream != 0 || ev.Info.AudioStream != 1 {
		t.Errorf("streams = %+v", ev.Info)
	}
	if ev.Info.SubIndex != 2 || ev.Info.SubFile != "subs.ass" || ev.Info.SubDelay != 0.5 {
		t.Errorf("subtitles = %+v", ev.Info)
	}
}

func TestParseEventsInfoPartialPayload(t *testing.T) {
	ev := ParseEvents(`info={"vs":0,"sd":0.25}` + "\n")
	if ev.Info == nil {
		t.Fatal("expected an info event")
	}
	if ev.Info.AudioStream != -1 || ev.Info.SubIndex != -1 {
		t.Errorf("missing keys must stay unselected, got %+v", ev.Info)
	}
	if ev.Info.VideoStream != 0 || ev.Info.SubDelay != 0.25 {
		t.Errorf("present keys lost: %+v", ev.Info)
	}
}

func TestParseEventsMalformedIgnored(t *testing.T) {
	cases := []struct {
		name   string
		stderr string
	}{
		{"cut wrong arity", "cut=[1]\n"},
		{"cut garbage", "cut=banana\n"},
		{"cut both unbounded", "cut=[-1,-1]\n"},
		{"crop wrong arity", "crop=[1,2,3]\n"},
		{"crop negative", "crop=[640,480,-1,0]\n"},
		{"crop empty area", "crop=[0,480,0,0]\n"},
		{"info garbage", "info=[]\n"},
		{"info no video", `info={"vs":-1,"as":-1,"aa":"","si":-1,"sa":"","sd":0}` + "\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if ev := ParseEvents(c.stderr); !ev.Empty() {
				t.Errorf("expected no events, got %+v", ev)
			}
		})
	}
}

func TestParseEventsAllKinds(t *testing.T) {
	stderr := "cut=[0.5,10]\n" +
		"crop=[320,240,0,0]\n" +
		`info={"vs":0,"as":-1,"aa":"","si":-1,"sa":"","sd":0}` + "\n" +
		"[vo/gpu] some player noise\n"
	ev := ParseEvents(stderr)
	if ev.Cut == nil || ev.Crop == nil || ev.Info == nil {
		t.Errorf("expected all three events, got %+v", ev)
	}
}
