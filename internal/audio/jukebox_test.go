package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePlayer struct {
	path    string
	playing bool
	volume  float64
	closed  bool
}

func (p *fakePlayer) Play()               { p.playing = true }
func (p *fakePlayer) Pause()              { p.playing = false }
func (p *fakePlayer) IsPlaying() bool     { return p.playing }
func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Close() error        { p.closed = true; return nil }

type fakeDevice struct {
	players []*fakePlayer
	fail    bool
}

func (d *fakeDevice) open(path string) (Player, error) {
	if d.fail {
		return nil, errors.New("autoplay blocked")
	}
	p := &fakePlayer{path: path}
	d.players = append(d.players, p)
	return p, nil
}

func (d *fakeDevice) last() *fakePlayer {
	return d.players[len(d.players)-1]
}

var playlist = []Track{{Name: "a", Path: "a.mp3"}, {Name: "b", Path: "b.mp3"}, {Name: "c", Path: "c.mp3"}}

func TestRejectedStartCanRetry(t *testing.T) {
	dev := &fakeDevice{fail: true}
	j := NewJukebox(playlist, dev.open)

	err := j.Start()
	require.ErrorIs(t, err, ErrNotStarted)
	assert.False(t, j.Started())

	dev.fail = false
	require.NoError(t, j.Start())
	assert.True(t, j.Started())
	assert.True(t, dev.last().playing)
	assert.Equal(t, 0.5, dev.last().volume)
}

func TestAutoAdvanceWraps(t *testing.T) {
	dev := &fakeDevice{}
	j := NewJukebox(playlist, dev.open)
	require.NoError(t, j.Start())

	for _, want := range []string{"b.mp3", "c.mp3", "a.mp3"} {
		prev := dev.last()
		prev.playing = false
		j.Update()
		assert.True(t, prev.closed)
		assert.Equal(t, want, dev.last().path)
	}

	j.Previous()
	assert.Equal(t, "c.mp3", dev.last().path)
}

func TestSkipBeforeStartOnlySelects(t *testing.T) {
	dev := &fakeDevice{}
	j := NewJukebox(playlist, dev.open)
	j.Next()
	assert.Empty(t, dev.players)
	cur, ok := j.Current()
	require.True(t, ok)
	assert.Equal(t, "b", cur.Name)
}

func TestVolumeAndMute(t *testing.T) {
	dev := &fakeDevice{}
	j := NewJukebox(playlist, dev.open)
	require.NoError(t, j.Start())

	j.SetVolume(1.7)
	assert.Equal(t, 1.0, j.Volume())
	j.ToggleMute()
	assert.Zero(t, dev.last().volume)
	j.ToggleMute()
	assert.Equal(t, 1.0, dev.last().volume)
}

func TestStateRestore(t *testing.T) {
	dev := &fakeDevice{}
	j := NewJukebox(playlist, dev.open)
	j.Restore(State{CurrentTrackIndex: 2, Volume: 0.25, Muted: true})
	assert.Equal(t, State{CurrentTrackIndex: 2, Volume: 0.25, Muted: true}, j.State())

	j.Restore(State{CurrentTrackIndex: 9, Volume: 0.25})
	assert.Equal(t, 2, j.State().CurrentTrackIndex)
}

func TestEmptyPlaylistIsSilent(t *testing.T) {
	j := NewJukebox(nil, (&fakeDevice{}).open)
	assert.NoError(t, j.Start())
	assert.False(t, j.Started())
	j.Next()
	j.Update()
}

func TestScanTracks(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp3", "a.MP3", "notes.txt", ".hidden.mp3"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755))

	tracks, err := ScanTracks(dir)
	require.NoError(t, err)
	require.Len(t, tracks, 2)
	assert.Equal(t, "a", tracks[0].Name)
	assert.Equal(t, filepath.Join(dir, "b.mp3"), tracks[1].Path)

	_, err = ScanTracks(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
