package captions

import (
	"strings"
	"testing"
)

func TestScriptVTT(t *testing.T) {
	t.Parallel()

	script := strings.Repeat("word ", 20) // 20 words -> 3 cues of 8/8/4
	doc := ScriptVTT(script)

	if !strings.HasPrefix(doc, "WEBVTT\n\n") {
		t.Fatal("missing WEBVTT header")
	}
	cues := strings.Count(doc, "-->")
	if cues != 3 {
		t.Fatalf("expected 3 cues, got %d", cues)
	}
	if !strings.Contains(doc, "00:00:00.000 --> 00:00:03.200") {
		t.Fatalf("first cue timing off:\n%s", doc)
	}
}

func TestVTTTime(t *testing.T) {
	t.Parallel()

	cases := map[float64]string{
		0:      "00:00:00.000",
		3.2:    "00:00:03.200",
		61.5:   "00:01:01.500",
		3661.0: "01:01:01.000",
	}
	for in, want := range cases {
		if got := vttTime(in); got != want {
			t.Errorf("vttTime(%v) = %q, want %q", in, got, want)
		}
	}
}
