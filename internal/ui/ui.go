// Package ui implements the mpdart terminal interface: a periodic playback
// poll driving the artwork state machine, and a centered art panel view.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"

	"mpdart/internal/art"
	"mpdart/internal/mpd"
	"mpdart/internal/ui/layout"
	"mpdart/internal/ui/panel"
	"mpdart/internal/ui/render"
)

var placeholderStyle = lipgloss.NewStyle().Faint(true)

// TickMsg drives one update-loop pass.
type TickMsg time.Time

// Model is the bubbletea model. The MPD client field is nil exactly while a
// fetch worker owns the connection; every other moment the foreground owns
// it.
type Model struct {
	client  art.Client
	machine *art.Machine

	fontAspect float64
	interval   time.Duration

	width  int
	height int
	track  *mpd.Track
	status mpd.PlaybackStatus

	err error
}

// New builds the model around a connected client.
func New(client art.Client, converter art.Converter, fontAspect float64, interval time.Duration) Model {
	return Model{
		client:     client,
		machine:    art.NewMachine(converter),
		fontAspect: fontAspect,
		interval:   interval,
	}
}

// Err returns the connectivity error that terminated the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init schedules an immediate first update pass.
func (m Model) Init() tea.Cmd {
	return func() tea.Msg { return TickMsg(time.Now()) }
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles terminal events and the periodic tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		if err := m.updateState(); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		if m.client != nil {
			_ = m.client.Close()
		}
		return m, tea.Quit
	case " ", "n", "p":
		// Playback commands need the connection; while a fetch worker
		// holds it the key is dropped rather than queued.
		if m.client == nil {
			log.Debug().Str("key", msg.String()).Msg("ignoring key, connection busy fetching")
			return m, nil
		}
		if err := m.playbackCommand(msg.String()); err != nil {
			m.err = err
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) playbackCommand(key string) error {
	switch key {
	case " ":
		switch m.status.State {
		case mpd.Playing:
			return m.client.Pause(true)
		case mpd.Paused:
			return m.client.Pause(false)
		}
		return nil
	case "n":
		return m.client.Next()
	case "p":
		return m.client.Previous()
	}
	return nil
}

// updateState runs one pass of the update loop. Any client error is a
// connectivity failure and aborts the session; artwork failures never
// surface here, they resolve inside the machine.
func (m *Model) updateState() error {
	var fetched []byte
	haveFetched := false

	if m.client == nil {
		client, data, ok := m.machine.TryFinishFetching()
		if !ok {
			// Still blocked on the art download; without the
			// connection nothing else can run this tick.
			return nil
		}
		m.client = client
		fetched = data
		haveFetched = data != nil
	}

	status, err := m.client.Status()
	if err != nil {
		return err
	}
	m.status = status

	track, err := m.client.CurrentTrack()
	if err != nil {
		return err
	}
	changed := artChanged(m.track, track)
	m.track = track

	switch {
	case changed:
		log.Debug().Msg("album art changed")
		// Any bytes fetched for the previous track are stale now.
		fetched = nil
		client := m.client
		m.client = nil
		m.machine.StartFetching(client, track)
	case haveFetched:
		m.machine.StartConverting(fetched, art.Context{
			ViewportWidth:  m.width,
			ViewportHeight: m.height,
			FontAspect:     m.fontAspect,
		})
	case m.machine.Phase() == art.PhaseConverting:
		if rendered, ok := m.machine.TryFinishConverting(); ok && rendered != nil {
			m.machine.SetIdle(rendered)
		}
	}
	return nil
}

// artChanged reports whether the track transition requires a fresh artwork
// fetch. Tracks in the same directory share their art, so moving within an
// album is not a change.
func artChanged(oldTrack, newTrack *mpd.Track) bool {
	switch {
	case oldTrack == nil && newTrack == nil:
		return false
	case oldTrack == nil || newTrack == nil:
		return true
	case *oldTrack == *newTrack:
		return false
	default:
		return !oldTrack.SameDir(*newTrack)
	}
}

func (m Model) trackDesc() string {
	if m.track == nil {
		return "No song playing"
	}
	return m.track.Describe()
}

// View renders the art panel centered in the viewport: the converted art
// when idle with a result, otherwise a dimmed phase message.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	var p panel.Panel

	if rendered := m.machine.Ready(); rendered != nil {
		p.Width = rendered.Cols + (layout.HorizBorderWidth+layout.HorizPadding)*2
		p.Height = rendered.Rows + (layout.VertBorderWidth+layout.VertPadding)*2
		p.Content = rendered.Lines
		p.VertPad = layout.VertPadding
	} else {
		var message string
		switch m.machine.Phase() {
		case art.PhaseFetching:
			message = "Fetching image"
		case art.PhaseConverting:
			message = "Converting image"
		default:
			message = "No image"
		}
		width, height, vertPad := layout.MessageBox(m.width, m.height, m.fontAspect)
		p.Width = width
		p.Height = height
		p.VertPad = vertPad
		p.Content = []string{placeholderStyle.Render(message)}
	}

	// Border labels carry a surrounding space each side and sit between the
	// corner and one fill cell, so the text itself gets six columns less
	// than the panel.
	labelWidth := max(p.Width-6, 0)
	p.Title = " " + render.Clip(m.trackDesc(), labelWidth) + " "
	p.Footer = " " + render.Clip(m.status.Describe(), labelWidth) + " "

	x, y := layout.Center(m.width, m.height, p.Width, p.Height)
	return p.Place(m.width, m.height, x, y)
}
