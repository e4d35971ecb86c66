// Package transcript parses timestamped cue lines out of a markdown
// transcript and re-emits them as SRT, VTT, JSON or plain text.
package transcript

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/neurosnap/sentences"
)

// DefaultCueSeconds is the assumed cue length when a line carries only a
// start time, and the synthetic cue length for untimed transcripts.
const DefaultCueSeconds = 5.0

// Segment is one timed span of transcript text.
type Segment struct {
	Index   int     `json:"index"`
	Start   float64 `json:"start_time"`
	End     float64 `json:"end_time"`
	Text    string  `json:"text"`
	Speaker string  `json:"speaker,omitempty"`
}

var (
	// [00:00:00 - 00:00:05] text
	rangeCue = regexp.MustCompile(`^\[(\d{1,2}:\d{2}:\d{2})\s*-\s*(\d{1,2}:\d{2}:\d{2})\]\s*(.+)`)
	// [00:00:00] text
	startCue = regexp.MustCompile(`^\[(\d{1,2}:\d{2}:\d{2})\]\s*(.+)`)
	// **Speaker** [00:00:00]: text
	speakerCue = regexp.MustCompile(`^\*\*(.+?)\*\*\s*\[(\d{1,2}:\d{2}:\d{2})\]:\s*(.+)`)
)

// Parse extracts cue segments from markdown content. Lines without a
// recognized timestamp shape are ignored.
func Parse(content string) []Segment {
	var segments []Segment
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var seg Segment
		switch {
		case rangeCue.MatchString(line):
			m := rangeCue.FindStringSubmatch(line)
			seg = Segment{Start: parseTimestamp(m[1]), End: parseTimestamp(m[2]), Text: m[3]}
		case startCue.MatchString(line):
			m := startCue.FindStringSubmatch(line)
			start := parseTimestamp(m[1])
			seg = Segment{Start: start, End: start + DefaultCueSeconds, Text: m[2]}
		case speakerCue.MatchString(line):
			m := speakerCue.FindStringSubmatch(line)
			start := parseTimestamp(m[2])
			seg = Segment{Start: start, End: start + DefaultCueSeconds, Text: m[3], Speaker: m[1]}
		default:
			continue
		}

		seg.Index = len(segments) + 1
		segments = append(segments, seg)
	}
	return segments
}

// Segments parses content, falling back to per-sentence synthetic cues when
// the transcript carries no timestamps at all.
func Segments(content string) []Segment {
	if segs := Parse(content); len(segs) > 0 {
		return segs
	}
	return sentenceSegments(content)
}

// sentenceSegments splits untimed prose into one cue per sentence, each a
// fixed DefaultCueSeconds long. Markdown headings are dropped first.
func sentenceSegments(content string) []Segment {
	var body []string
	for _, line := range strings.Split(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		body = append(body, line)
	}
	text := strings.TrimSpace(strings.Join(body, "\n"))
	if text == "" {
		return nil
	}

	tokenizer := sentences.NewSentenceTokenizer(nil)
	var segments []Segment
	for _, s := range tokenizer.Tokenize(text) {
		sentence := strings.TrimSpace(s.Text)
		if sentence == "" {
			continue
		}
		i := len(segments)
		segments = append(segments, Segment{
			Index: i + 1,
			Start: float64(i) * DefaultCueSeconds,
			End:   float64(i+1) * DefaultCueSeconds,
			Text:  sentence,
		})
	}
	return segments
}

// parseTimestamp converts HH:MM:SS or MM:SS to seconds. Unparseable parts
// count as zero.
func parseTimestamp(ts string) float64 {
	parts := strings.Split(ts, ":")
	var total float64
	for _, p := range parts {
		v, _ := strconv.ParseFloat(p, 64)
		total = total*60 + v
	}
	return total
}

func clockParts(seconds float64) (h, m, s, ms int) {
	whole := int(seconds)
	h = whole / 3600
	m = (whole % 3600) / 60
	s = whole % 60
	ms = int((seconds - float64(whole)) * 1000)
	return h, m, s, ms
}

func srtTimestamp(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

func vttTimestamp(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

// ToSRT renders SubRip subtitles.
func ToSRT(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&b, "%d\n%s --> %s\n", seg.Index, srtTimestamp(seg.Start), srtTimestamp(seg.End))
		if seg.Speaker != "" {
			fmt.Fprintf(&b, "[%s] %s\n\n", seg.Speaker, seg.Text)
		} else {
			fmt.Fprintf(&b, "%s\n\n", seg.Text)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// ToVTT renders WebVTT subtitles.
func ToVTT(segments []Segment) string {
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, seg := range segments {
		fmt.Fprintf(&b, "%s --> %s\n", vttTimestamp(seg.Start), vttTimestamp(seg.End))
		if seg.Speaker != "" {
			fmt.Fprintf(&b, "<v %s>%s\n\n", seg.Speaker, seg.Text)
		} else {
			fmt.Fprintf(&b, "%s\n\n", seg.Text)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

type jsonTranscript struct {
	Format   string    `json:"format"`
	Version  string    `json:"version"`
	Segments []Segment `json:"segments"`
}

// ToJSON renders the segments as a structured document.
func ToJSON(segments []Segment) (string, error) {
	data, err := json.MarshalIndent(jsonTranscript{
		Format:   "docpipe transcript",
		Version:  "1.0",
		Segments: segments,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode transcript: %w", err)
	}
	return string(data), nil
}

// ToTXT renders plain text, one cue per line with an optional speaker prefix.
func ToTXT(segments []Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		if seg.Speaker != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", seg.Speaker, seg.Text))
		} else {
			lines = append(lines, seg.Text)
		}
	}
	return strings.Join(lines, "\n")
}

// Render converts segments to the named format: srt, vtt, json or txt.
func Render(segments []Segment, format string) (string, error) {
	switch format {
	case "srt":
		return ToSRT(segments), nil
	case "vtt":
		return ToVTT(segments), nil
	case "json":
		return ToJSON(segments)
	case "txt":
		return ToTXT(segments), nil
	default:
		return "", fmt.Errorf("unsupported format %q (want srt, vtt, json or txt)", format)
	}
}
