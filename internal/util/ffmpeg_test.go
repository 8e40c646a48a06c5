package util

import "testing"

func TestParseProbeOutput(t *testing.T) {
	out := `{
		"streams": [
			{"codec_type": "audio"},
			{"codec_type": "video", "width": 1280, "height": 720}
		],
		"format": {"duration": "12.5", "size": "2048", "format_name": "mov,mp4,m4a"}
	}`

	info, err := parseProbeOutput(out, 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if info.Duration != 12.5 || info.Width != 1280 || info.Height != 720 || info.Size != 2048 || info.Format != "mov" {
		t.Fatalf("unexpected info: %+v", info)
	}

	info, err = parseProbeOutput(`{"streams": [], "format": {}}`, 99)
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if info.Duration != 0 || info.Size != 99 || info.Format != "unknown" {
		t.Fatalf("unexpected fallback info: %+v", info)
	}

	if _, err := parseProbeOutput("not json", 0); err == nil {
		t.Fatalf("expected decode error")
	}
}
