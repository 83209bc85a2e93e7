package mpd

import (
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	gompd "github.com/fhs/gompd/v2/mpd"
)

// PlayState is the playback state reported by the server.
type PlayState int

const (
	Stopped PlayState = iota
	Playing
	Paused
)

func (s PlayState) String() string {
	switch s {
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	default:
		return "Stopped"
	}
}

// Track identifies a single playable item in the MPD database.
// Equality is by full identity (all fields).
type Track struct {
	File   string
	Artist string
	Title  string
}

// SameDir reports whether both tracks live in the same database directory.
// Album art is stored per directory, so this is the proxy for "same album".
// MPD URIs always use forward slashes regardless of platform.
func (t Track) SameDir(other Track) bool {
	return path.Dir(t.File) == path.Dir(other.File)
}

// Describe returns a one-line human description of the track.
func (t Track) Describe() string {
	artist := t.Artist
	if artist == "" {
		artist = "Unknown artist"
	}
	title := t.Title
	if title == "" {
		title = "Unknown song"
	}
	return artist + " - " + title
}

// PlaybackStatus is a snapshot of the server's playback state.
// It is rebuilt from scratch on every poll, never mutated in place.
type PlaybackStatus struct {
	State    PlayState
	Elapsed  time.Duration
	Duration time.Duration
	HasTime  bool
}

// Describe returns a one-line human description of the status,
// e.g. "Playing - 01:23 / 04:56".
func (s PlaybackStatus) Describe() string {
	if !s.HasTime {
		return s.State.String()
	}
	return fmt.Sprintf("%s - %s / %s", s.State, formatDuration(s.Elapsed), formatDuration(s.Duration))
}

func formatDuration(d time.Duration) string {
	secs := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func statusFromAttrs(attrs gompd.Attrs) PlaybackStatus {
	var st PlaybackStatus
	switch attrs["state"] {
	case "play":
		st.State = Playing
	case "pause":
		st.State = Paused
	default:
		st.State = Stopped
	}

	elapsed, eok := parseSeconds(attrs["elapsed"])
	total, dok := parseSeconds(attrs["duration"])
	if eok && dok {
		st.Elapsed = elapsed
		st.Duration = total
		st.HasTime = true
		return st
	}

	// Older servers report "time" as "elapsed:total" in whole seconds.
	if t := attrs["time"]; t != "" {
		if e, d, ok := strings.Cut(t, ":"); ok {
			es, eerr := strconv.Atoi(e)
			ds, derr := strconv.Atoi(d)
			if eerr == nil && derr == nil {
				st.Elapsed = time.Duration(es) * time.Second
				st.Duration = time.Duration(ds) * time.Second
				st.HasTime = true
			}
		}
	}
	return st
}

func parseSeconds(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return time.Duration(f * float64(time.Second)), true
}

func trackFromAttrs(attrs gompd.Attrs) *Track {
	file := attrs["file"]
	if file == "" {
		return nil
	}
	return &Track{
		File:   file,
		Artist: attrs["Artist"],
		Title:  attrs["Title"],
	}
}
