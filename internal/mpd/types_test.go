package mpd

import (
	"testing"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

func TestStatusFromAttrs(t *testing.T) {
	tests := []struct {
		name  string
		attrs gompd.Attrs
		want  PlaybackStatus
	}{
		{
			name:  "playing with times",
			attrs: gompd.Attrs{"state": "play", "elapsed": "83.500", "duration": "296.000"},
			want: PlaybackStatus{
				State:    Playing,
				Elapsed:  83500 * time.Millisecond,
				Duration: 296 * time.Second,
				HasTime:  true,
			},
		},
		{
			name:  "paused",
			attrs: gompd.Attrs{"state": "pause", "elapsed": "10", "duration": "20"},
			want: PlaybackStatus{
				State:    Paused,
				Elapsed:  10 * time.Second,
				Duration: 20 * time.Second,
				HasTime:  true,
			},
		},
		{
			name:  "stopped without times",
			attrs: gompd.Attrs{"state": "stop"},
			want:  PlaybackStatus{State: Stopped},
		},
		{
			name:  "unknown state maps to stopped",
			attrs: gompd.Attrs{"state": "weird"},
			want:  PlaybackStatus{State: Stopped},
		},
		{
			name:  "legacy time attribute",
			attrs: gompd.Attrs{"state": "play", "time": "61:180"},
			want: PlaybackStatus{
				State:    Playing,
				Elapsed:  61 * time.Second,
				Duration: 180 * time.Second,
				HasTime:  true,
			},
		},
		{
			name:  "malformed legacy time",
			attrs: gompd.Attrs{"state": "play", "time": "oops"},
			want:  PlaybackStatus{State: Playing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := statusFromAttrs(tt.attrs)
			if got != tt.want {
				t.Errorf("statusFromAttrs() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTrackFromAttrs(t *testing.T) {
	track := trackFromAttrs(gompd.Attrs{
		"file":   "music/albumX/track1.flac",
		"Artist": "Some Artist",
		"Title":  "Some Song",
	})
	if track == nil {
		t.Fatal("trackFromAttrs() = nil")
	}
	want := Track{File: "music/albumX/track1.flac", Artist: "Some Artist", Title: "Some Song"}
	if *track != want {
		t.Errorf("trackFromAttrs() = %+v, want %+v", *track, want)
	}

	if trackFromAttrs(gompd.Attrs{}) != nil {
		t.Error("attrs without file should yield no track")
	}
}

func TestSameDir(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"same album", "music/albumX/track1.flac", "music/albumX/track2.flac", true},
		{"different album", "music/albumX/track1.flac", "music/albumY/track1.flac", false},
		{"root level", "track1.flac", "track2.flac", true},
		{"nested vs flat", "albumX/track1.flac", "track1.flac", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Track{File: tt.a}
			b := Track{File: tt.b}
			if got := a.SameDir(b); got != tt.want {
				t.Errorf("SameDir() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTrackDescribe(t *testing.T) {
	tests := []struct {
		name  string
		track Track
		want  string
	}{
		{"full metadata", Track{Artist: "Artist", Title: "Song"}, "Artist - Song"},
		{"missing artist", Track{Title: "Song"}, "Unknown artist - Song"},
		{"missing title", Track{Artist: "Artist"}, "Artist - Unknown song"},
		{"bare file", Track{File: "x.flac"}, "Unknown artist - Unknown song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.track.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatusDescribe(t *testing.T) {
	tests := []struct {
		name   string
		status PlaybackStatus
		want   string
	}{
		{
			"playing with times",
			PlaybackStatus{State: Playing, Elapsed: 83 * time.Second, Duration: 296 * time.Second, HasTime: true},
			"Playing - 01:23 / 04:56",
		},
		{"stopped", PlaybackStatus{State: Stopped}, "Stopped"},
		{"paused without times", PlaybackStatus{State: Paused}, "Paused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.Describe(); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}
