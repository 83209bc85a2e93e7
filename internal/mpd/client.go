// Package mpd provides a typed wrapper around the gompd MPD client.
package mpd

import (
	"fmt"

	gompd "github.com/fhs/gompd/v2/mpd"
	"github.com/rs/zerolog/log"
)

// Client is a single MPD connection with exclusive ownership: it is either
// held by the foreground update loop or moved into a background art fetch,
// never both. No internal locking, callers must not share it across
// goroutines.
type Client struct {
	conn *gompd.Client
}

// Connect dials the MPD server. A non-empty password is sent during the
// handshake.
func Connect(host string, port int, password string) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", host, port)
	log.Info().Str("addr", addr).Msg("connecting to MPD")

	var (
		conn *gompd.Client
		err  error
	)
	if password != "" {
		conn, err = gompd.DialAuthenticated("tcp", addr, password)
	} else {
		conn, err = gompd.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to MPD at %s: %w", addr, err)
	}
	return &Client{conn: conn}, nil
}

// Close terminates the connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Status returns a fresh snapshot of the server's playback status.
func (c *Client) Status() (PlaybackStatus, error) {
	attrs, err := c.conn.Status()
	if err != nil {
		return PlaybackStatus{}, fmt.Errorf("query status: %w", err)
	}
	return statusFromAttrs(attrs), nil
}

// CurrentTrack returns the currently playing track, or nil when the queue is
// empty or playback is stopped with no current song.
func (c *Client) CurrentTrack() (*Track, error) {
	attrs, err := c.conn.CurrentSong()
	if err != nil {
		return nil, fmt.Errorf("query current song: %w", err)
	}
	return trackFromAttrs(attrs), nil
}

// AlbumArt fetches cover art for the given database URI. It tries embedded
// artwork first, then the directory-level cover file. A missing picture is
// not an error: both bytes and error are nil.
func (c *Client) AlbumArt(uri string) ([]byte, error) {
	data, err := c.conn.ReadPicture(uri)
	if err == nil && len(data) > 0 {
		return data, nil
	}
	if err != nil {
		log.Debug().Err(err).Str("uri", uri).Msg("no embedded picture")
	}

	data, err = c.conn.AlbumArt(uri)
	if err != nil {
		log.Warn().Err(err).Str("uri", uri).Msg("no album art")
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}

// Pause toggles between playing and paused. No-op when stopped.
func (c *Client) Pause(pause bool) error {
	if err := c.conn.Pause(pause); err != nil {
		return fmt.Errorf("pause: %w", err)
	}
	return nil
}

// Next skips to the next track in the queue.
func (c *Client) Next() error {
	if err := c.conn.Next(); err != nil {
		return fmt.Errorf("next track: %w", err)
	}
	return nil
}

// Previous skips to the previous track in the queue.
func (c *Client) Previous() error {
	if err := c.conn.Previous(); err != nil {
		return fmt.Errorf("previous track: %w", err)
	}
	return nil
}
