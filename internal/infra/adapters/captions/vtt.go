package captions

import (
	"fmt"
	"strings"
)

// ScriptVTT builds a WebVTT document by pacing the script at roughly
// 2.5 words per second, chunked into short cue lines.
func ScriptVTT(script string) string {
	const wordsPerCue = 8
	const secPerWord = 0.4

	words := strings.Fields(script)
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")

	elapsed := 0.0
	for i := 0; i < len(words); i += wordsPerCue {
		end := i + wordsPerCue
		if end > len(words) {
			end = len(words)
		}
		cue := strings.Join(words[i:end], " ")
		dur := float64(end-i) * secPerWord
		b.WriteString(fmt.Sprintf("%s --> %s\n%s\n\n", vttTime(elapsed), vttTime(elapsed+dur), cue))
		elapsed += dur
	}
	return b.String()
}

func vttTime(sec float64) string {
	h := int(sec) / 3600
	m := (int(sec) % 3600) / 60
	s := int(sec) % 60
	ms := int((sec - float64(int(sec))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}
