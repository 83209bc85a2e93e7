package art

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"mpdart/internal/mpd"
)

type fakeClient struct {
	art    []byte
	artErr error
	block  chan struct{} // when set, AlbumArt waits for close
	calls  int
}

func (c *fakeClient) AlbumArt(uri string) ([]byte, error) {
	c.calls++
	if c.block != nil {
		<-c.block
	}
	return c.art, c.artErr
}

func (c *fakeClient) Status() (mpd.PlaybackStatus, error) { return mpd.PlaybackStatus{}, nil }
func (c *fakeClient) CurrentTrack() (*mpd.Track, error)   { return nil, nil }
func (c *fakeClient) Pause(bool) error                    { return nil }
func (c *fakeClient) Next() error                         { return nil }
func (c *fakeClient) Previous() error                     { return nil }
func (c *fakeClient) Close() error                        { return nil }

type fakeConverter struct {
	lines []string
	err   error
	block chan struct{}

	gotCols int
	gotRows int
}

func (c *fakeConverter) Convert(_ image.Image, cols, rows int) ([]string, error) {
	if c.block != nil {
		<-c.block
	}
	c.gotCols = cols
	c.gotRows = rows
	return c.lines, c.err
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func waitFetch(t *testing.T, m *Machine) (Client, []byte) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if client, data, ok := m.TryFinishFetching(); ok {
			return client, data
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("fetch did not finish")
	return nil, nil
}

func waitConvert(t *testing.T, m *Machine) *Rendered {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if rendered, ok := m.TryFinishConverting(); ok {
			return rendered
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("conversion did not finish")
	return nil
}

func testContext() Context {
	return Context{ViewportWidth: 98, ViewportHeight: 40, FontAspect: 0.5}
}

func TestFetchReturnsClientAndBytes(t *testing.T) {
	client := &fakeClient{art: []byte{1, 2, 3}}
	m := NewMachine(&fakeConverter{})

	m.StartFetching(client, &mpd.Track{File: "albumX/track1.flac"})
	if m.Phase() != PhaseFetching {
		t.Fatalf("phase = %v, want fetching", m.Phase())
	}

	got, data := waitFetch(t, m)
	if got != client {
		t.Error("client was not handed back")
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("data = %v, want fetched art", data)
	}
	if m.Phase() != PhaseIdle || m.Ready() != nil {
		t.Errorf("machine should be idle with no art, phase = %v", m.Phase())
	}
}

func TestFetchNilTrackYieldsNoBytes(t *testing.T) {
	client := &fakeClient{art: []byte{9}}
	m := NewMachine(&fakeConverter{})

	m.StartFetching(client, nil)
	got, data := waitFetch(t, m)
	if got != client {
		t.Error("client was not handed back")
	}
	if data != nil {
		t.Errorf("data = %v, want nil for nil track", data)
	}
	if client.calls != 0 {
		t.Errorf("AlbumArt called %d times for nil track", client.calls)
	}
}

func TestFetchErrorStillReturnsClient(t *testing.T) {
	client := &fakeClient{artErr: errors.New("no such picture")}
	m := NewMachine(&fakeConverter{})

	m.StartFetching(client, &mpd.Track{File: "albumX/track1.flac"})
	got, data := waitFetch(t, m)
	if got != client {
		t.Error("client must come back even when the fetch fails")
	}
	if data != nil {
		t.Errorf("data = %v, want nil on fetch failure", data)
	}
}

func TestFetchDiscardsPreviousArt(t *testing.T) {
	m := NewMachine(&fakeConverter{})
	m.SetIdle(&Rendered{Lines: []string{"old"}})

	m.StartFetching(&fakeClient{}, nil)
	if m.Ready() != nil {
		t.Error("starting a fetch must discard the previous art")
	}
	waitFetch(t, m)
}

func TestSecondStartFetchingIgnored(t *testing.T) {
	block := make(chan struct{})
	first := &fakeClient{block: block}
	m := NewMachine(&fakeConverter{})

	m.StartFetching(first, &mpd.Track{File: "a/t.flac"})
	m.StartFetching(&fakeClient{}, &mpd.Track{File: "b/t.flac"})

	close(block)
	got, _ := waitFetch(t, m)
	if got != first {
		t.Error("second StartFetching must not replace the in-flight worker")
	}
	if _, _, ok := m.TryFinishFetching(); ok {
		t.Error("fetch result was consumed twice")
	}
}

func TestTryFinishFetchingWhileIdle(t *testing.T) {
	m := NewMachine(&fakeConverter{})
	if _, _, ok := m.TryFinishFetching(); ok {
		t.Error("idle machine reported a finished fetch")
	}
}

func TestConvertSuccess(t *testing.T) {
	conv := &fakeConverter{lines: []string{"row0", "row1"}}
	m := NewMachine(conv)

	m.StartConverting(pngBytes(t, 10, 10), testContext())
	if m.Phase() != PhaseConverting {
		t.Fatalf("phase = %v, want converting", m.Phase())
	}

	rendered := waitConvert(t, m)
	if rendered == nil {
		t.Fatal("conversion yielded nil")
	}
	// Square image in a 98x40 viewport with 0.5 font aspect is
	// height-constrained: 60x30 cells.
	if conv.gotCols != 60 || conv.gotRows != 30 {
		t.Errorf("converter got %dx%d, want 60x30", conv.gotCols, conv.gotRows)
	}
	if rendered.Cols != 60 || rendered.Rows != 30 {
		t.Errorf("rendered size %dx%d, want 60x30", rendered.Cols, rendered.Rows)
	}
	if rendered.ImageWidth != 10 || rendered.ImageHeight != 10 {
		t.Errorf("image size %dx%d, want 10x10", rendered.ImageWidth, rendered.ImageHeight)
	}
	if len(rendered.Lines) != 2 {
		t.Errorf("got %d lines, want 2", len(rendered.Lines))
	}

	m.SetIdle(rendered)
	if m.Ready() != rendered {
		t.Error("SetIdle did not retain the art")
	}
}

func TestConvertUndecodableBytes(t *testing.T) {
	m := NewMachine(&fakeConverter{lines: []string{"x"}})

	m.StartConverting([]byte("definitely not an image"), testContext())
	if rendered := waitConvert(t, m); rendered != nil {
		t.Errorf("rendered = %v, want nil for undecodable bytes", rendered)
	}
	if m.Phase() != PhaseIdle || m.Ready() != nil {
		t.Error("failed conversion must resolve to idle with no art")
	}
}

func TestConvertConverterFailure(t *testing.T) {
	m := NewMachine(&fakeConverter{err: errors.New("boom")})

	m.StartConverting(pngBytes(t, 4, 4), testContext())
	if rendered := waitConvert(t, m); rendered != nil {
		t.Errorf("rendered = %v, want nil on converter failure", rendered)
	}
}

func TestStartConvertingWhileBusyIgnored(t *testing.T) {
	block := make(chan struct{})
	conv := &fakeConverter{lines: []string{"x"}, block: block}
	m := NewMachine(conv)

	m.StartConverting(pngBytes(t, 4, 4), testContext())
	m.StartConverting(pngBytes(t, 4, 4), testContext())
	if m.Phase() != PhaseConverting {
		t.Fatalf("phase = %v, want converting", m.Phase())
	}

	close(block)
	if rendered := waitConvert(t, m); rendered == nil {
		t.Error("first conversion should still complete")
	}
	if _, ok := m.TryFinishConverting(); ok {
		t.Error("conversion result was consumed twice")
	}
}
