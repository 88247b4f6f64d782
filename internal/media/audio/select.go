package audio

import (
	"strconv"
	"strings"

	"cutter/internal/language"
	"cutter/internal/media/ffprobe"
)

// Selection describes the audio stream chosen for transcription.
type Selection struct {
	Primary      ffprobe.Stream
	PrimaryIndex int
	// Candidates is the number of audio streams considered.
	Candidates int
}

// Found reports whether any audio stream was selected.
func (s Selection) Found() bool {
	return s.PrimaryIndex >= 0
}

// PrimaryLabel returns a human-readable summary of the selected stream.
func (s Selection) PrimaryLabel() string {
	if s.PrimaryIndex < 0 {
		return ""
	}
	return formatStreamSummary(s.Primary)
}

// Select returns the audio stream most likely to carry the spoken track in
// the preferred language. Ranking, highest weight first: language match,
// main programme audio over commentary or described audio, the default
// disposition, then channel count. Earlier streams win ties.
func Select(streams []ffprobe.Stream, preferredLanguage string) Selection {
	candidates := buildCandidates(streams, preferredLanguage)
	if len(candidates) == 0 {
		return Selection{PrimaryIndex: -1}
	}

	best := candidates[0]
	bestScore := scoreCandidate(best)
	for _, cand := range candidates[1:] {
		if score := scoreCandidate(cand); score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return Selection{
		Primary:      best.stream,
		PrimaryIndex: best.stream.Index,
		Candidates:   len(candidates),
	}
}

type candidate struct {
	stream         ffprobe.Stream
	order          int
	languageMatch  bool
	secondary      bool
	channels       int
	defaultFlagged bool
}

func scoreCandidate(cand candidate) float64 {
	score := 0.0
	if cand.languageMatch {
		score += 1000
	}
	if !cand.secondary {
		score += 500
	}
	if cand.defaultFlagged {
		score += 100
	}
	// Channel count only separates otherwise equal streams.
	score += float64(min(cand.channels, 8))
	score -= float64(cand.order) * 0.1
	return score
}

func buildCandidates(streams []ffprobe.Stream, preferredLanguage string) []candidate {
	result := make([]candidate, 0, len(streams))
	order := 0
	for _, stream := range streams {
		if !strings.EqualFold(stream.CodecType, "audio") {
			continue
		}
		result = append(result, candidate{
			stream:         stream,
			order:          order,
			languageMatch:  language.Matches(language.ExtractFromTags(stream.Tags), preferredLanguage),
			secondary:      isSecondary(stream),
			channels:       channelCount(stream),
			defaultFlagged: stream.Disposition["default"] == 1,
		})
		order++
	}
	return result
}

var secondaryKeywords = []string{
	"commentary",
	"director",
	"description",
	"descriptive",
	"audio description",
	"karaoke",
}

func isSecondary(stream ffprobe.Stream) bool {
	if stream.Disposition["comment"] == 1 || stream.Disposition["visual_impaired"] == 1 {
		return true
	}
	title := strings.ToLower(strings.TrimSpace(stream.Tags["title"]))
	if title == "" {
		title = strings.ToLower(strings.TrimSpace(stream.Tags["handler_name"]))
	}
	for _, keyword := range secondaryKeywords {
		if strings.Contains(title, keyword) {
			return true
		}
	}
	return false
}

func channelCount(stream ffprobe.Stream) int {
	if stream.Channels > 0 {
		return stream.Channels
	}
	layout := strings.ToLower(strings.TrimSpace(stream.ChannelLayout))
	switch {
	case layout == "":
		return 0
	case layout == "mono":
		return 1
	case layout == "stereo":
		return 2
	}
	total := 0
	for _, part := range strings.Split(layout, ".") {
		part = strings.Trim(part, "abcdefghijklmnopqrstuvwxyz ()")
		if n, err := strconv.Atoi(part); err == nil {
			total += n
		}
	}
	return total
}

func formatStreamSummary(stream ffprobe.Stream) string {
	parts := make([]string, 0, 4)
	if lang := language.ExtractFromTags(stream.Tags); lang != "" {
		parts = append(parts, lang)
	}
	codec := stream.CodecLong
	if codec == "" {
		codec = stream.CodecName
	}
	if codec != "" {
		parts = append(parts, codec)
	}
	if channels := channelCount(stream); channels > 0 {
		parts = append(parts, strconv.Itoa(channels)+"ch")
	}
	if title := strings.TrimSpace(stream.Tags["title"]); title != "" {
		parts = append(parts, title)
	}
	if len(parts) == 0 {
		return "audio"
	}
	return strings.Join(parts, " | ")
}
