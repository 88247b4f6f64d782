package ffprobe

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "audio"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
			BitRate:  "32000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestHasVideoIgnoresCoverArt(t *testing.T) {
	audioOnly := Result{Streams: []Stream{
		{CodecType: "audio"},
		{CodecType: "video", Disposition: map[string]int{"attached_pic": 1}},
	}}
	if audioOnly.HasVideo() {
		t.Fatal("expected cover art to be ignored")
	}
	withVideo := Result{Streams: []Stream{{CodecType: "video"}, {CodecType: "audio"}}}
	if !withVideo.HasVideo() {
		t.Fatal("expected video stream to be detected")
	}
}

const sampleProbe = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1920, "height": 1080},
    {"index": 1, "codec_name": "aac", "codec_type": "audio", "channels": 2,
     "tags": {"language": "eng"}, "disposition": {"default": 1}}
  ],
  "format": {"filename": "take.mp4", "nb_streams": 2, "duration": "12.480000"}
}`

func TestProberDuration(t *testing.T) {
	var gotName string
	var gotArgs []string
	prober := NewProber("/opt/ffprobe").WithRunner(func(_ context.Context, name string, args ...string) ([]byte, error) {
		gotName = name
		gotArgs = args
		return []byte(sampleProbe), nil
	})

	seconds, err := prober.Duration(context.Background(), "/videos/take.mp4")
	if err != nil {
		t.Fatalf("Duration returned error: %v", err)
	}
	if seconds != 12.48 {
		t.Fatalf("unexpected duration: %v", seconds)
	}
	if gotName != "/opt/ffprobe" {
		t.Fatalf("unexpected binary: %q", gotName)
	}
	if last := gotArgs[len(gotArgs)-1]; last != "/videos/take.mp4" {
		t.Fatalf("expected path as final argument, got %q", last)
	}

	result, err := prober.Inspect(context.Background(), "/videos/take.mp4")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.Streams[1].Tags["language"] != "eng" || result.Streams[1].Disposition["default"] != 1 {
		t.Fatalf("expected tags and disposition to decode, got %+v", result.Streams[1])
	}
}

func TestProberDurationRejectsMissingValue(t *testing.T) {
	for _, payload := range []string{
		`{"format": {}}`,
		`{"format": {"duration": "N/A"}}`,
		`{"format": {"duration": "0.000"}}`,
	} {
		prober := NewProber("").WithRunner(func(context.Context, string, ...string) ([]byte, error) {
			return []byte(payload), nil
		})
		if _, err := prober.Duration(context.Background(), "clip.mp4"); !errors.Is(err, ErrNoDuration) {
			t.Fatalf("payload %s: expected ErrNoDuration, got %v", payload, err)
		}
	}
}

func TestProberPropagatesCommandFailure(t *testing.T) {
	prober := NewProber("").WithRunner(func(context.Context, string, ...string) ([]byte, error) {
		return []byte("No such file or directory"), errors.New("exit status 1")
	})
	_, err := prober.Duration(context.Background(), "missing.mp4")
	if err == nil || !strings.Contains(err.Error(), "No such file or directory") {
		t.Fatalf("expected stderr in error, got %v", err)
	}
}
