// Package art owns the album-art acquisition and conversion lifecycle: a
// three-phase state machine that coordinates at most one background worker
// and exchanges exclusive ownership of the MPD connection with the fetch
// worker.
package art

import (
	"bytes"
	"image"
	_ "image/gif"  // GIF decoder for album art
	_ "image/jpeg" // JPEG decoder for album art
	_ "image/png"  // PNG decoder for album art
	"time"

	"github.com/rs/zerolog/log"

	_ "golang.org/x/image/bmp"  // BMP decoder for album art
	_ "golang.org/x/image/webp" // WebP decoder for album art

	"mpdart/internal/mpd"
	"mpdart/internal/ui/layout"
)

// Client is the playback-protocol connection as the artwork pipeline and UI
// see it. It is a single exclusively owned resource: exactly one of the
// foreground loop or a running fetch worker holds it at any time.
type Client interface {
	Status() (mpd.PlaybackStatus, error)
	CurrentTrack() (*mpd.Track, error)
	AlbumArt(uri string) ([]byte, error)
	Pause(pause bool) error
	Next() error
	Previous() error
	Close() error
}

// Converter turns a decoded image into styled text rows of the given cell
// dimensions. Implementations run on a background worker and must not touch
// shared state.
type Converter interface {
	Convert(img image.Image, cols, rows int) ([]string, error)
}

// Rendered is a finished conversion: ANSI-styled character rows plus the
// source image dimensions they were derived from.
type Rendered struct {
	Cols, Rows  int
	ImageWidth  int
	ImageHeight int
	Lines       []string
}

// Context is the immutable layout snapshot taken when a conversion starts,
// so the worker's sizing does not chase a viewport that resizes mid-flight.
type Context struct {
	ViewportWidth  int
	ViewportHeight int
	FontAspect     float64
}

// Phase is the machine's current lifecycle phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseFetching
	PhaseConverting
)

func (p Phase) String() string {
	switch p {
	case PhaseFetching:
		return "fetching"
	case PhaseConverting:
		return "converting"
	default:
		return "idle"
	}
}

type fetchResult struct {
	client Client
	data   []byte
}

// Machine is the acquisition/conversion state machine. It must only be
// driven from the foreground loop; workers report back exclusively through
// their result channel, which doubles as the join handle (buffered, capacity
// one, consumed exactly once).
type Machine struct {
	converter Converter

	phase   Phase
	ready   *Rendered
	fetch   chan fetchResult
	convert chan *Rendered
}

// NewMachine returns an idle machine with no artwork.
func NewMachine(converter Converter) *Machine {
	return &Machine{converter: converter}
}

// Phase returns the current lifecycle phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Ready returns the last successfully converted artwork, or nil. Only an
// idle machine can hold artwork.
func (m *Machine) Ready() *Rendered {
	return m.ready
}

// SetIdle forces the machine to idle holding the given artwork. Used for
// normal completion and for discarding superseded results.
func (m *Machine) SetIdle(r *Rendered) {
	log.Debug().Msg("art: setting idle")
	m.phase = PhaseIdle
	m.ready = r
	m.fetch = nil
	m.convert = nil
}

// StartFetching moves the client into a background worker that fetches
// artwork for track (a nil track fetches nothing). The worker always hands
// the client back through the result, regardless of outcome. The caller
// must own the client and the machine must not already be fetching; a
// violated precondition is logged and ignored.
func (m *Machine) StartFetching(client Client, track *mpd.Track) {
	if m.phase == PhaseFetching {
		log.Error().Msg("art: StartFetching called while a fetch is in flight")
		return
	}
	log.Info().Interface("track", track).Msg("art: starting fetch")

	ch := make(chan fetchResult, 1)
	go func() {
		var data []byte
		if track != nil {
			start := time.Now()
			var err error
			data, err = client.AlbumArt(track.File)
			if err != nil {
				log.Warn().Err(err).Str("file", track.File).Msg("art: fetch failed")
				data = nil
			}
			log.Info().Dur("elapsed", time.Since(start)).Int("bytes", len(data)).Msg("art: fetch done")
		}
		ch <- fetchResult{client: client, data: data}
	}()

	m.phase = PhaseFetching
	m.ready = nil
	m.fetch = ch
}

// TryFinishFetching polls a running fetch without blocking. It returns
// ok == false while no fetch is in flight or the worker has not finished.
// On completion the machine returns to idle and ownership of the client
// moves back to the caller along with the fetched bytes, which are nil when
// the track had no artwork. This is the only path that returns the client
// to the foreground.
func (m *Machine) TryFinishFetching() (client Client, data []byte, ok bool) {
	if m.phase != PhaseFetching {
		return nil, nil, false
	}
	select {
	case res := <-m.fetch:
		m.SetIdle(nil)
		return res.client, res.data, true
	default:
		return nil, nil, false
	}
}

// StartConverting spawns a background worker that decodes data, sizes the
// result against the snapshot in ctx, and converts it to styled rows. Any
// failure makes the worker yield nil; nothing here is fatal. The machine
// must be idle; a violated precondition is logged and ignored.
func (m *Machine) StartConverting(data []byte, ctx Context) {
	if m.phase != PhaseIdle {
		log.Error().Stringer("phase", m.phase).Msg("art: StartConverting called while busy")
		return
	}
	log.Info().Int("bytes", len(data)).Msg("art: starting conversion")

	ch := make(chan *Rendered, 1)
	go func() {
		ch <- convertWorker(data, ctx, m.converter)
	}()

	m.phase = PhaseConverting
	m.ready = nil
	m.convert = ch
}

// TryFinishConverting polls a running conversion without blocking. ok
// reports completion; on completion the machine returns to idle and r is
// the converted artwork, nil when decoding or conversion failed.
func (m *Machine) TryFinishConverting() (r *Rendered, ok bool) {
	if m.phase != PhaseConverting {
		return nil, false
	}
	select {
	case res := <-m.convert:
		m.SetIdle(nil)
		return res, true
	default:
		return nil, false
	}
}

func convertWorker(data []byte, ctx Context, converter Converter) *Rendered {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Msg("art: error decoding image")
		return nil
	}

	bounds := img.Bounds()
	imageAspect := float64(bounds.Dx()) / float64(bounds.Dy())
	cols, rows := layout.ArtSize(ctx.ViewportWidth, ctx.ViewportHeight, ctx.FontAspect, imageAspect)
	log.Info().
		Str("format", format).
		Int("image_width", bounds.Dx()).
		Int("image_height", bounds.Dy()).
		Float64("image_aspect", imageAspect).
		Int("cols", cols).
		Int("rows", rows).
		Msg("art: converting")

	lines, err := converter.Convert(img, cols, rows)
	if err != nil {
		log.Warn().Err(err).Msg("art: error converting image")
		return nil
	}

	return &Rendered{
		Cols:        cols,
		Rows:        rows,
		ImageWidth:  bounds.Dx(),
		ImageHeight: bounds.Dy(),
		Lines:       lines,
	}
}
