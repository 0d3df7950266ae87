// Package audio plays the background music playlist.
package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNotStarted is returned when playback could not begin. The jukebox stays
// unstarted so a later user gesture can retry.
var ErrNotStarted = errors.New("audio: playback not started")

// Track is one playable file.
type Track struct {
	Name string
	Path string
}

// ScanTracks lists the mp3 files in dir, sorted by name.
func ScanTracks(dir string) ([]Track, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read music directory: %w", err)
	}

	var tracks []Track
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		name := entry.Name()
		if !strings.EqualFold(filepath.Ext(name), ".mp3") {
			continue
		}
		tracks = append(tracks, Track{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	sort.Slice(tracks, func(i, j int) bool { return tracks[i].Name < tracks[j].Name })
	return tracks, nil
}

// Player is one decoded, playing track.
type Player interface {
	Play()
	Pause()
	IsPlaying() bool
	SetVolume(v float64)
	Close() error
}

// Opener starts decoding the file at path.
type Opener func(path string) (Player, error)

// State is the persisted part of the jukebox.
type State struct {
	CurrentTrackIndex int     `json:"currentTrackIndex"`
	Volume            float64 `json:"volume"`
	Muted             bool    `json:"muted"`
}

// Jukebox cycles through a playlist.
type Jukebox struct {
	tracks  []Track
	open    Opener
	current Player

	index   int
	volume  float64
	muted   bool
	started bool
}

// NewJukebox creates a stopped jukebox at half volume.
func NewJukebox(tracks []Track, open Opener) *Jukebox {
	return &Jukebox{tracks: tracks, open: open, volume: 0.5}
}

// Tracks returns the playlist.
func (j *Jukebox) Tracks() []Track {
	return j.tracks
}

// Started reports whether playback has begun.
func (j *Jukebox) Started() bool {
	return j.started
}

// Current returns the selected track, if any.
func (j *Jukebox) Current() (Track, bool) {
	if len(j.tracks) == 0 {
		return Track{}, false
	}
	return j.tracks[j.index], true
}

// Start begins playback of the selected track. It is a no-op once started or
// when the playlist is empty.
func (j *Jukebox) Start() error {
	if j.started || len(j.tracks) == 0 {
		return nil
	}
	j.started = true
	if err := j.playCurrent(); err != nil {
		j.started = false
		log.Printf("Warning: Music did not start: %v", err)
		return fmt.Errorf("%w: %v", ErrNotStarted, err)
	}
	return nil
}

func (j *Jukebox) playCurrent() error {
	j.stop()
	t := j.tracks[j.index]
	p, err := j.open(t.Path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", t.Name, err)
	}
	j.current = p
	j.applyVolume()
	p.Play()
	return nil
}

func (j *Jukebox) stop() {
	if j.current == nil {
		return
	}
	j.current.Pause()
	if err := j.current.Close(); err != nil {
		log.Printf("Warning: Closing track: %v", err)
	}
	j.current = nil
}

// Update advances to the next track when the current one finishes.
func (j *Jukebox) Update() {
	if !j.started || j.current == nil || j.current.IsPlaying() {
		return
	}
	j.Next()
}

// Next moves to the following track, wrapping around.
func (j *Jukebox) Next() {
	j.skip(1)
}

// Previous moves to the preceding track, wrapping around.
func (j *Jukebox) Previous() {
	j.skip(-1)
}

func (j *Jukebox) skip(step int) {
	n := len(j.tracks)
	if n == 0 {
		return
	}
	j.index = ((j.index+step)%n + n) % n
	if !j.started {
		return
	}
	if err := j.playCurrent(); err != nil {
		j.started = false
		log.Printf("Warning: Music stopped: %v", err)
	}
}

// Volume returns the configured volume in [0,1].
func (j *Jukebox) Volume() float64 {
	return j.volume
}

// SetVolume clamps v into [0,1] and applies it.
func (j *Jukebox) SetVolume(v float64) {
	j.volume = max(0, min(1, v))
	j.applyVolume()
}

// Muted reports the mute flag.
func (j *Jukebox) Muted() bool {
	return j.muted
}

// ToggleMute flips the mute flag.
func (j *Jukebox) ToggleMute() {
	j.muted = !j.muted
	j.applyVolume()
}

func (j *Jukebox) applyVolume() {
	if j.current == nil {
		return
	}
	if j.muted {
		j.current.SetVolume(0)
		return
	}
	j.current.SetVolume(j.volume)
}

// State captures the persisted settings.
func (j *Jukebox) State() State {
	return State{CurrentTrackIndex: j.index, Volume: j.volume, Muted: j.muted}
}

// Restore applies persisted settings. An out-of-range track index keeps the
// current selection.
func (j *Jukebox) Restore(s State) {
	if s.CurrentTrackIndex >= 0 && s.CurrentTrackIndex < len(j.tracks) && s.CurrentTrackIndex != j.index {
		j.index = s.CurrentTrackIndex
		if j.started {
			if err := j.playCurrent(); err != nil {
				j.started = false
				log.Printf("Warning: Music stopped: %v", err)
			}
		}
	}
	j.muted = s.Muted
	j.SetVolume(s.Volume)
}

// Close stops playback.
func (j *Jukebox) Close() {
	j.stop()
	j.started = false
}
