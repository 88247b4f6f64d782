// Package transcript holds the speech-recognition output shared by the
// transcription backends, the cut-point extractor and the transcript cache.
package transcript

import "strings"

// Word is a single recognized word with timing.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Segment is a span of recognized speech.
type Segment struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words,omitempty"`
}

// Transcript is the ordered recognition result for one media file.
type Transcript struct {
	Language string    `json:"language,omitempty"`
	Segments []Segment `json:"segments"`
}

// Text joins the trimmed segment texts with single spaces.
func (t Transcript) Text() string {
	parts := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		if text := strings.TrimSpace(seg.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// End returns the latest segment end time, or 0 for an empty transcript.
func (t Transcript) End() float64 {
	var end float64
	for _, seg := range t.Segments {
		if seg.End > end {
			end = seg.End
		}
	}
	return end
}
